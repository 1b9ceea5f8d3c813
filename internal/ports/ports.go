// internal/ports/ports.go
package ports

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=ports

import (
	"context"
	"time"

	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
)

// CartPersistencePort stores opaque cart snapshots under a namespace.
// Load returns (nil, nil) when nothing is stored for the namespace.
type CartPersistencePort interface {
	Load(ctx context.Context, namespace string) ([]byte, error)
	Save(ctx context.Context, namespace string, snapshot []byte) error
	Delete(ctx context.Context, namespace string) error
	Ping(ctx context.Context) error
}

type BorrowRequestAPIPort interface {
	CreateBorrowRequest(ctx context.Context, req *domain.NewBorrowRequest) (*domain.BorrowRequest, error)
	GetBorrowRequest(ctx context.Context, id int64) (*domain.BorrowRequest, error)
	ListBorrowRequests(ctx context.Context, q domain.PageQuery) (*domain.RequestPage, error)
	ListUserBorrowRequests(ctx context.Context, userID int64) ([]domain.BorrowRequest, error)
	UpdateBorrowRequestStatus(ctx context.Context, id int64, status domain.RequestStatus) error
}

type BorrowingAPIPort interface {
	GetBorrowing(ctx context.Context, id int64) (*domain.Borrowing, error)
	ListUserBorrowings(ctx context.Context, userID int64) ([]domain.Borrowing, error)
	ListBorrowings(ctx context.Context, q domain.PageQuery) (*domain.BorrowingPage, error)
	UpdateBorrowingStatus(ctx context.Context, id int64, status domain.BorrowingStatus) error
}

// LibraryAPIPort is the full external REST contract.
type LibraryAPIPort interface {
	BorrowRequestAPIPort
	BorrowingAPIPort
}

// RevocationStorePort remembers logged-out tokens, keyed by a digest of the
// token, until the given instant. Entries past that instant may be forgotten.
type RevocationStorePort interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
