// internal/domain/models.go
package domain

import "time"

// Identity is the authenticated principal a call is made on behalf of.
// A nil *Identity means a guest session.
type Identity struct {
	UserID int64
	Email  string
	Role   Role
	Token  string
}

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// CartItem is a candidate book staged in a user's cart.
type CartItem struct {
	ID       int64
	Title    string
	Author   string
	CoverURL string
	Category string
	Selected bool
}

// BookSummary is a catalog entry as added to the cart, before selection state exists.
type BookSummary struct {
	ID       int64
	Title    string
	Author   string
	CoverURL string
	Category string
}

type PaymentMethod string

const (
	PaymentCOD PaymentMethod = "COD"
	PaymentQR  PaymentMethod = "QR"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCOD || p == PaymentQR
}

// ContactInfo is the delivery / requester block of a borrow request.
type ContactInfo struct {
	Name    string `validate:"required,max=255"`
	Phone   string `validate:"required,max=32"`
	Address string `validate:"required,max=1000"`
	Note    string `validate:"max=500"`
}

// NewBorrowRequest is the submission payload sent to the library API.
type NewBorrowRequest struct {
	UserID        int64
	BookIDs       []int64
	Contact       ContactInfo
	PaymentMethod PaymentMethod
	ShippingFee   float64
}

type BorrowRequest struct {
	ID            int64
	UserID        int64
	UserFullName  string
	UserEmail     string
	Contact       ContactInfo
	PaymentMethod PaymentMethod
	ShippingFee   float64
	Status        RequestStatus
	CreatedAt     time.Time
	BookIDs       []int64
	Borrowings    []Borrowing
}

// TotalBooks prefers materialised borrowings and falls back to the requested ids.
func (r *BorrowRequest) TotalBooks() int {
	if len(r.Borrowings) > 0 {
		return len(r.Borrowings)
	}
	return len(r.BookIDs)
}

type BookRef struct {
	ID     int64
	Title  string
	Author string
}

type Borrowing struct {
	ID           int64
	UserID       int64
	UserFullName string
	UserEmail    string
	Book         BookRef
	BorrowDate   time.Time
	DueDate      time.Time
	ReturnDate   *time.Time
	Status       BorrowingStatus
}

// PageQuery is the admin list contract: zero-based page, fixed size, optional keyword.
type PageQuery struct {
	Page    int
	Size    int
	Keyword string
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Normalize clamps the query into the range the API accepts.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 0 {
		q.Page = 0
	}
	if q.Size <= 0 {
		q.Size = DefaultPageSize
	}
	if q.Size > MaxPageSize {
		q.Size = MaxPageSize
	}
	return q
}

// PageInfo carries the server's authoritative page count.
type PageInfo struct {
	Page       int
	Size       int
	TotalPages int
}

func (p PageInfo) HasNext() bool {
	return p.Page+1 < p.TotalPages
}

func (p PageInfo) HasPrev() bool {
	return p.Page > 0
}

type RequestPage struct {
	PageInfo
	Content []BorrowRequest
}

type BorrowingPage struct {
	PageInfo
	Content []Borrowing
}
