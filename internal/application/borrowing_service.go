package application

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
	"github.com/mahabubulhasibshawon/library-borrow/internal/ports"
)

type BorrowingService struct {
	api      ports.BorrowingAPIPort
	inflight singleflight.Group
	now      func() time.Time
	logger   *zap.Logger
}

func NewBorrowingService(api ports.BorrowingAPIPort, logger *zap.Logger) *BorrowingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BorrowingService{api: api, now: time.Now, logger: logger}
}

func (s *BorrowingService) ListPage(ctx context.Context, q domain.PageQuery) (*domain.BorrowingPage, error) {
	return s.api.ListBorrowings(ctx, q.Normalize())
}

func (s *BorrowingService) ListForUser(ctx context.Context, id *domain.Identity) ([]domain.Borrowing, error) {
	if id == nil || id.UserID <= 0 {
		return nil, domain.ErrNoIdentity
	}
	return s.api.ListUserBorrowings(ctx, id.UserID)
}

// MarkReturned closes a BORROWED or OVERDUE loan. The caller must pass
// confirmed=true; the action cannot be undone from the desk.
func (s *BorrowingService) MarkReturned(ctx context.Context, id int64, confirmed bool) (*domain.Borrowing, error) {
	cmd := domain.ReturnBorrowing{BorrowingID: id, Confirmed: confirmed}
	if !confirmed {
		return nil, domain.ErrConfirmationRequired
	}

	v, err, _ := s.inflight.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		current, err := s.api.GetBorrowing(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := cmd.Validate(current); err != nil {
			return nil, err
		}
		if err := s.api.UpdateBorrowingStatus(ctx, id, domain.BorrowingReturned); err != nil {
			return nil, err
		}
		returned := cmd.Apply(*current, s.now())
		return &returned, nil
	})
	if err != nil {
		s.logger.Warn("Mark returned failed", zap.Int64("borrowing_id", id), zap.Error(err))
		return nil, err
	}

	returned := *v.(*domain.Borrowing)
	s.logger.Info("Borrowing returned",
		zap.Int64("borrowing_id", id),
		zap.Int64("book_id", returned.Book.ID),
	)
	return &returned, nil
}
