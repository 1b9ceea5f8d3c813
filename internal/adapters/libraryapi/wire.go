package libraryapi

import (
	"fmt"
	"time"

	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
)

// Wire shapes of the library REST API. They are shared with the stub server so
// both sides of the contract are compiled against the same definitions.

type CreateBorrowRequestBody struct {
	UserID        int64   `json:"userId" validate:"required,gt=0"`
	BookIDs       []int64 `json:"bookIds" validate:"required,min=1,dive,gt=0"`
	Name          string  `json:"name" validate:"required"`
	Phone         string  `json:"phone" validate:"required"`
	Address       string  `json:"address" validate:"required"`
	Note          string  `json:"note,omitempty" validate:"max=500"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=COD QR"`
	ShippingFee   float64 `json:"shippingFee" validate:"gte=0"`
}

type BookBody struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

type BorrowingBody struct {
	ID           int64    `json:"id"`
	UserID       int64    `json:"userId"`
	UserFullName *string  `json:"userFullName,omitempty"`
	UserEmail    *string  `json:"userEmail,omitempty"`
	BorrowDate   string   `json:"borrowDate"`
	DueDate      string   `json:"dueDate"`
	ReturnDate   *string  `json:"returnDate"`
	Status       string   `json:"status"`
	Book         BookBody `json:"book"`
}

type BorrowRequestBody struct {
	ID            int64           `json:"id"`
	UserID        int64           `json:"userId"`
	UserFullName  *string         `json:"userFullName,omitempty"`
	UserEmail     *string         `json:"userEmail,omitempty"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	Note          *string         `json:"note"`
	PaymentMethod string          `json:"paymentMethod"`
	ShippingFee   float64         `json:"shippingFee"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"createdAt"`
	BookIDs       []int64         `json:"bookIds,omitempty"`
	Borrowings    []BorrowingBody `json:"borrowings,omitempty"`
	TotalBooks    *int            `json:"totalBooks,omitempty"`
}

// PageBody is the paginated list envelope. Content must be present (possibly
// empty) and TotalPages must be set.
type PageBody[T any] struct {
	Content    []T  `json:"content"`
	TotalPages *int `json:"totalPages"`
}

type ErrorBody struct {
	Message string `json:"message"`
}

// TimeLayout is the layout the desk and the stub emit.
const TimeLayout = time.RFC3339

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTime accepts RFC3339 and the zone-less layouts Spring backends emit,
// reading the latter as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: bad timestamp %q", domain.ErrMalformedResponse, s)
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrMalformedResponse, fmt.Sprintf(format, args...))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (b BorrowingBody) ToDomain() (domain.Borrowing, error) {
	if b.ID <= 0 {
		return domain.Borrowing{}, malformed("borrowing without id")
	}
	if b.UserID <= 0 {
		return domain.Borrowing{}, malformed("borrowing %d without userId", b.ID)
	}
	if b.Book.ID <= 0 {
		return domain.Borrowing{}, malformed("borrowing %d without book", b.ID)
	}
	status := domain.BorrowingStatus(b.Status)
	if !status.Valid() {
		return domain.Borrowing{}, malformed("borrowing %d has status %q", b.ID, b.Status)
	}
	borrowDate, err := ParseTime(b.BorrowDate)
	if err != nil {
		return domain.Borrowing{}, err
	}
	dueDate, err := ParseTime(b.DueDate)
	if err != nil {
		return domain.Borrowing{}, err
	}

	var returnDate *time.Time
	if b.ReturnDate != nil && *b.ReturnDate != "" {
		t, err := ParseTime(*b.ReturnDate)
		if err != nil {
			return domain.Borrowing{}, err
		}
		returnDate = &t
	}
	if (status == domain.BorrowingReturned) != (returnDate != nil) {
		return domain.Borrowing{}, malformed("borrowing %d: returnDate must be set exactly when RETURNED", b.ID)
	}

	return domain.Borrowing{
		ID:           b.ID,
		UserID:       b.UserID,
		UserFullName: deref(b.UserFullName),
		UserEmail:    deref(b.UserEmail),
		Book:         domain.BookRef{ID: b.Book.ID, Title: b.Book.Title, Author: b.Book.Author},
		BorrowDate:   borrowDate,
		DueDate:      dueDate,
		ReturnDate:   returnDate,
		Status:       status,
	}, nil
}

func (b BorrowRequestBody) ToDomain() (domain.BorrowRequest, error) {
	if b.ID <= 0 {
		return domain.BorrowRequest{}, malformed("borrow request without id")
	}
	if b.UserID <= 0 {
		return domain.BorrowRequest{}, malformed("borrow request %d without userId", b.ID)
	}
	status := domain.RequestStatus(b.Status)
	if !status.Valid() {
		return domain.BorrowRequest{}, malformed("borrow request %d has status %q", b.ID, b.Status)
	}
	payment := domain.PaymentMethod(b.PaymentMethod)
	if !payment.Valid() {
		return domain.BorrowRequest{}, malformed("borrow request %d has payment method %q", b.ID, b.PaymentMethod)
	}
	createdAt, err := ParseTime(b.CreatedAt)
	if err != nil {
		return domain.BorrowRequest{}, err
	}

	borrowings := make([]domain.Borrowing, 0, len(b.Borrowings))
	for _, bb := range b.Borrowings {
		br, err := bb.ToDomain()
		if err != nil {
			return domain.BorrowRequest{}, err
		}
		borrowings = append(borrowings, br)
	}

	return domain.BorrowRequest{
		ID:           b.ID,
		UserID:       b.UserID,
		UserFullName: deref(b.UserFullName),
		UserEmail:    deref(b.UserEmail),
		Contact: domain.ContactInfo{
			Name:    b.Name,
			Phone:   b.Phone,
			Address: b.Address,
			Note:    deref(b.Note),
		},
		PaymentMethod: payment,
		ShippingFee:   b.ShippingFee,
		Status:        status,
		CreatedAt:     createdAt,
		BookIDs:       append([]int64(nil), b.BookIDs...),
		Borrowings:    borrowings,
	}, nil
}

// BorrowingFromDomain renders a domain borrowing in wire form.
func BorrowingFromDomain(b domain.Borrowing) BorrowingBody {
	body := BorrowingBody{
		ID:           b.ID,
		UserID:       b.UserID,
		UserFullName: strPtr(b.UserFullName),
		UserEmail:    strPtr(b.UserEmail),
		BorrowDate:   FormatTime(b.BorrowDate),
		DueDate:      FormatTime(b.DueDate),
		Status:       b.Status.String(),
		Book:         BookBody{ID: b.Book.ID, Title: b.Book.Title, Author: b.Book.Author},
	}
	if b.ReturnDate != nil {
		s := FormatTime(*b.ReturnDate)
		body.ReturnDate = &s
	}
	return body
}

// BorrowRequestFromDomain renders a domain request in wire form.
func BorrowRequestFromDomain(r domain.BorrowRequest) BorrowRequestBody {
	body := BorrowRequestBody{
		ID:            r.ID,
		UserID:        r.UserID,
		UserFullName:  strPtr(r.UserFullName),
		UserEmail:     strPtr(r.UserEmail),
		Name:          r.Contact.Name,
		Phone:         r.Contact.Phone,
		Address:       r.Contact.Address,
		Note:          strPtr(r.Contact.Note),
		PaymentMethod: string(r.PaymentMethod),
		ShippingFee:   r.ShippingFee,
		Status:        r.Status.String(),
		CreatedAt:     FormatTime(r.CreatedAt),
		BookIDs:       append([]int64(nil), r.BookIDs...),
	}
	total := r.TotalBooks()
	body.TotalBooks = &total
	for _, b := range r.Borrowings {
		body.Borrowings = append(body.Borrowings, BorrowingFromDomain(b))
	}
	return body
}
