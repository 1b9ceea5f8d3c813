package grpc

import (
	"time"

	"github.com/mahabubulhasibshawon/library-borrow/internal/application"
	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
)

// Messages of the borrowdesk.BorrowDesk service, carried by the JSON codec.

type Book struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`
	CoverURL string `json:"coverUrl,omitempty"`
	Category string `json:"category,omitempty"`
}

type CartItem struct {
	Book
	Selected bool `json:"selected"`
}

type GetCartRequest struct{}

type AddToCartRequest struct {
	Book Book `json:"book"`
}

type CartItemRequest struct {
	BookID int64 `json:"bookId"`
}

type ClearCartRequest struct{}

type CartResponse struct {
	Items         []CartItem `json:"items"`
	SelectedCount int        `json:"selectedCount"`
}

type SubmitBorrowRequestRequest struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Note          string `json:"note,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
}

type SubmitBorrowRequestResponse struct {
	Request BorrowRequest `json:"request"`
	Cart    CartResponse  `json:"cart"`
}

type Borrowing struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	UserFullName string     `json:"userFullName,omitempty"`
	UserEmail    string     `json:"userEmail,omitempty"`
	BookID       int64      `json:"bookId"`
	BookTitle    string     `json:"bookTitle"`
	BookAuthor   string     `json:"bookAuthor,omitempty"`
	BorrowDate   time.Time  `json:"borrowDate"`
	DueDate      time.Time  `json:"dueDate"`
	ReturnDate   *time.Time `json:"returnDate,omitempty"`
	Status       string     `json:"status"`
}

type BorrowRequest struct {
	ID            int64       `json:"id"`
	UserID        int64       `json:"userId"`
	UserFullName  string      `json:"userFullName,omitempty"`
	UserEmail     string      `json:"userEmail,omitempty"`
	Name          string      `json:"name"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	Note          string      `json:"note,omitempty"`
	PaymentMethod string      `json:"paymentMethod"`
	ShippingFee   float64     `json:"shippingFee"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
	BookIDs       []int64     `json:"bookIds,omitempty"`
	TotalBooks    int         `json:"totalBooks"`
	Borrowings    []Borrowing `json:"borrowings,omitempty"`
}

type BorrowRequestResponse struct {
	Request BorrowRequest `json:"request"`
}

type ListMyBorrowRequestsRequest struct{}

type BorrowRequestList struct {
	Requests []BorrowRequest `json:"requests"`
}

type RequestIDRequest struct {
	RequestID int64 `json:"requestId"`
}

type ListMyBorrowingsRequest struct{}

type Alerts struct {
	Overdue int `json:"overdue"`
	DueSoon int `json:"dueSoon"`
}

type BorrowingList struct {
	Borrowings []Borrowing `json:"borrowings"`
	Alerts     Alerts      `json:"alerts"`
}

type Stats struct {
	Total         int `json:"total"`
	Borrowing     int `json:"borrowing"`
	Returned      int `json:"returned"`
	Overdue       int `json:"overdue"`
	OnTimePercent int `json:"onTimePercent"`
}

type ProfileSummaryRequest struct{}

// ProfileSummaryResponse degrades per region: a failed region carries its
// error message and no data.
type ProfileSummaryResponse struct {
	Borrowings      []Borrowing     `json:"borrowings"`
	Stats           Stats           `json:"stats"`
	Alerts          Alerts          `json:"alerts"`
	BorrowingsError string          `json:"borrowingsError,omitempty"`
	TotalRequests   int             `json:"totalRequests"`
	RecentRequests  []BorrowRequest `json:"recentRequests"`
	RequestsError   string          `json:"requestsError,omitempty"`
}

type PageRequest struct {
	Page    int    `json:"page"`
	Size    int    `json:"size"`
	Keyword string `json:"keyword,omitempty"`
}

type Page struct {
	Page       int  `json:"page"`
	Size       int  `json:"size"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
	HasPrev    bool `json:"hasPrev"`
}

type RequestPageResponse struct {
	Page
	Content []BorrowRequest `json:"content"`
}

type BorrowingPageResponse struct {
	Page
	Content []Borrowing `json:"content"`
}

type UpdateStatusRequest struct {
	RequestID int64  `json:"requestId"`
	Status    string `json:"status"`
}

type MarkReturnedRequest struct {
	BorrowingID int64 `json:"borrowingId"`
	Confirmed   bool  `json:"confirmed"`
}

type BorrowingResponse struct {
	Borrowing Borrowing `json:"borrowing"`
}

type LogoutRequest struct{}

type LogoutResponse struct {
	Message string `json:"message"`
}

func toCartResponse(items []domain.CartItem) CartResponse {
	resp := CartResponse{Items: make([]CartItem, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, CartItem{
			Book: Book{
				ID:       it.ID,
				Title:    it.Title,
				Author:   it.Author,
				CoverURL: it.CoverURL,
				Category: it.Category,
			},
			Selected: it.Selected,
		})
		if it.Selected {
			resp.SelectedCount++
		}
	}
	return resp
}

func toBorrowing(b domain.Borrowing) Borrowing {
	return Borrowing{
		ID:           b.ID,
		UserID:       b.UserID,
		UserFullName: b.UserFullName,
		UserEmail:    b.UserEmail,
		BookID:       b.Book.ID,
		BookTitle:    b.Book.Title,
		BookAuthor:   b.Book.Author,
		BorrowDate:   b.BorrowDate,
		DueDate:      b.DueDate,
		ReturnDate:   b.ReturnDate,
		Status:       b.Status.String(),
	}
}

func toBorrowings(bs []domain.Borrowing) []Borrowing {
	out := make([]Borrowing, 0, len(bs))
	for _, b := range bs {
		out = append(out, toBorrowing(b))
	}
	return out
}

func toBorrowRequest(r domain.BorrowRequest) BorrowRequest {
	out := BorrowRequest{
		ID:            r.ID,
		UserID:        r.UserID,
		UserFullName:  r.UserFullName,
		UserEmail:     r.UserEmail,
		Name:          r.Contact.Name,
		Phone:         r.Contact.Phone,
		Address:       r.Contact.Address,
		Note:          r.Contact.Note,
		PaymentMethod: string(r.PaymentMethod),
		ShippingFee:   r.ShippingFee,
		Status:        r.Status.String(),
		CreatedAt:     r.CreatedAt,
		BookIDs:       r.BookIDs,
		TotalBooks:    r.TotalBooks(),
	}
	if len(r.Borrowings) > 0 {
		out.Borrowings = toBorrowings(r.Borrowings)
	}
	return out
}

func toBorrowRequests(rs []domain.BorrowRequest) []BorrowRequest {
	out := make([]BorrowRequest, 0, len(rs))
	for _, r := range rs {
		out = append(out, toBorrowRequest(r))
	}
	return out
}

func toPage(p domain.PageInfo) Page {
	return Page{Page: p.Page, Size: p.Size, TotalPages: p.TotalPages, HasNext: p.HasNext(), HasPrev: p.HasPrev()}
}

func toAlerts(a application.DueAlerts) Alerts {
	return Alerts{Overdue: a.Overdue, DueSoon: a.DueSoon}
}

func toStats(s application.BorrowingStats) Stats {
	return Stats{
		Total:         s.Total,
		Borrowing:     s.Borrowing,
		Returned:      s.Returned,
		Overdue:       s.Overdue,
		OnTimePercent: s.OnTimePercent,
	}
}
