package stubapi

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/mahabubulhasibshawon/library-borrow/internal/adapters/libraryapi"
	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
)

// POST /borrow-requests
func (s *Server) createRequest(c echo.Context) error {
	var body libraryapi.CreateBorrowRequestBody
	if err := c.Bind(&body); err != nil {
		return fail(c, http.StatusBadRequest, "invalid json")
	}
	if err := c.Validate(&body); err != nil {
		return fail(c, http.StatusBadRequest, "validation error: "+err.Error())
	}
	if !canSee(c, body.UserID) {
		return fail(c, http.StatusForbidden, "forbidden")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int64]bool, len(body.BookIDs))
	for _, id := range body.BookIDs {
		if _, ok := s.books[id]; !ok {
			return fail(c, http.StatusBadRequest, "unknown book "+strconv.FormatInt(id, 10))
		}
		if seen[id] {
			return fail(c, http.StatusBadRequest, "duplicate book "+strconv.FormatInt(id, 10))
		}
		seen[id] = true
	}

	req := &domain.BorrowRequest{
		ID:           s.nextRequest,
		UserID:       body.UserID,
		UserFullName: body.Name,
		UserEmail:    caller(c).Email,
		Contact: domain.ContactInfo{
			Name:    body.Name,
			Phone:   body.Phone,
			Address: body.Address,
			Note:    body.Note,
		},
		PaymentMethod: domain.PaymentMethod(body.PaymentMethod),
		ShippingFee:   body.ShippingFee,
		Status:        domain.RequestPending,
		CreatedAt:     s.now().UTC(),
		BookIDs:       append([]int64(nil), body.BookIDs...),
	}
	s.nextRequest++
	s.requests[req.ID] = req

	s.logger.Info("Borrow request created", zap.Int64("request_id", req.ID), zap.Int64("user_id", req.UserID))
	return c.JSON(http.StatusCreated, libraryapi.BorrowRequestFromDomain(s.renderRequestLocked(req)))
}

// GET /borrow-requests/filter (admin)
func (s *Server) filterRequests(c echo.Context) error {
	q := pageQuery(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.promoteOverdueLocked()

	matched := make([]domain.BorrowRequest, 0)
	for _, r := range s.sortedRequestsLocked() {
		view := s.renderRequestLocked(r)
		if s.requestMatches(view, q.Keyword) {
			matched = append(matched, view)
		}
	}
	content, total := paginate(matched, q)
	out := make([]libraryapi.BorrowRequestBody, 0, len(content))
	for _, r := range content {
		out = append(out, libraryapi.BorrowRequestFromDomain(r))
	}
	return c.JSON(http.StatusOK, libraryapi.PageBody[libraryapi.BorrowRequestBody]{Content: out, TotalPages: &total})
}

// GET /borrow-requests/user/:id
func (s *Server) userRequests(c echo.Context) error {
	userID, ok := pathID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if !canSee(c, userID) {
		return fail(c, http.StatusForbidden, "forbidden")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.promoteOverdueLocked()

	out := make([]libraryapi.BorrowRequestBody, 0)
	for _, r := range s.sortedRequestsLocked() {
		if r.UserID == userID {
			out = append(out, libraryapi.BorrowRequestFromDomain(s.renderRequestLocked(r)))
		}
	}
	return c.JSON(http.StatusOK, out)
}

// GET /borrow-requests/:id
func (s *Server) getRequest(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.promoteOverdueLocked()

	r, ok := s.requests[id]
	if !ok {
		return fail(c, http.StatusNotFound, "borrow request not found")
	}
	if !canSee(c, r.UserID) {
		return fail(c, http.StatusForbidden, "forbidden")
	}
	return c.JSON(http.StatusOK, libraryapi.BorrowRequestFromDomain(s.renderRequestLocked(r)))
}

// PUT /borrow-requests/:id/status?status=
// Admins may move a PENDING request to any terminal state; owners may only cancel.
func (s *Server) updateRequestStatus(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	target := domain.RequestStatus(strings.ToUpper(c.QueryParam("status")))
	if !target.Valid() {
		return fail(c, http.StatusBadRequest, "invalid status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.requests[id]
	if !ok {
		return fail(c, http.StatusNotFound, "borrow request not found")
	}
	owner := caller(c).UserID == r.UserID
	if !isAdmin(c) && !(owner && target == domain.RequestCanceled) {
		return fail(c, http.StatusForbidden, "forbidden")
	}
	if !domain.CanTransition(r.Status, target) {
		return fail(c, http.StatusConflict, "cannot move request from "+r.Status.String()+" to "+target.String())
	}

	r.Status = target
	if target == domain.RequestApproved {
		s.materialiseLocked(r)
	}
	s.logger.Info("Borrow request status changed", zap.Int64("request_id", id), zap.String("status", target.String()))
	return c.JSON(http.StatusOK, libraryapi.BorrowRequestFromDomain(s.renderRequestLocked(r)))
}

// GET /borrowings/me?userId=
func (s *Server) myBorrowings(c echo.Context) error {
	userID, err := strconv.ParseInt(c.QueryParam("userId"), 10, 64)
	if err != nil || userID <= 0 {
		return fail(c, http.StatusBadRequest, "invalid userId")
	}
	if !canSee(c, userID) {
		return fail(c, http.StatusForbidden, "forbidden")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.promoteOverdueLocked()

	out := make([]libraryapi.BorrowingBody, 0)
	for _, b := range s.sortedBorrowingsLocked() {
		if b.UserID == userID {
			out = append(out, libraryapi.BorrowingFromDomain(*b))
		}
	}
	return c.JSON(http.StatusOK, out)
}

// GET /borrowings/filter (admin)
func (s *Server) filterBorrowings(c echo.Context) error {
	q := pageQuery(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.promoteOverdueLocked()

	matched := make([]domain.Borrowing, 0)
	for _, b := range s.sortedBorrowingsLocked() {
		if borrowingMatches(*b, q.Keyword) {
			matched = append(matched, *b)
		}
	}
	content, total := paginate(matched, q)
	out := make([]libraryapi.BorrowingBody, 0, len(content))
	for _, b := range content {
		out = append(out, libraryapi.BorrowingFromDomain(b))
	}
	return c.JSON(http.StatusOK, libraryapi.PageBody[libraryapi.BorrowingBody]{Content: out, TotalPages: &total})
}

// GET /borrowings/:id
func (s *Server) getBorrowing(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.promoteOverdueLocked()

	b, ok := s.borrowings[id]
	if !ok {
		return fail(c, http.StatusNotFound, "borrowing not found")
	}
	if !canSee(c, b.UserID) {
		return fail(c, http.StatusForbidden, "forbidden")
	}
	return c.JSON(http.StatusOK, libraryapi.BorrowingFromDomain(*b))
}

// PUT /borrowings/:id/status?status= (admin). Only RETURNED may be written;
// OVERDUE is derived from the due date.
func (s *Server) updateBorrowingStatus(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if domain.BorrowingStatus(strings.ToUpper(c.QueryParam("status"))) != domain.BorrowingReturned {
		return fail(c, http.StatusBadRequest, "invalid status")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.borrowings[id]
	if !ok {
		return fail(c, http.StatusNotFound, "borrowing not found")
	}
	if !b.Status.Returnable() {
		return fail(c, http.StatusConflict, "borrowing already returned")
	}
	now := s.now().UTC()
	b.Status = domain.BorrowingReturned
	b.ReturnDate = &now

	s.logger.Info("Borrowing returned", zap.Int64("borrowing_id", id))
	return c.JSON(http.StatusOK, libraryapi.BorrowingFromDomain(*b))
}

// materialiseLocked creates one BORROWED loan per requested book.
func (s *Server) materialiseLocked(r *domain.BorrowRequest) {
	now := s.now().UTC()
	due := now.AddDate(0, 0, s.loanDays)
	for _, bookID := range r.BookIDs {
		book := s.books[bookID]
		loan := &domain.Borrowing{
			ID:           s.nextLoan,
			UserID:       r.UserID,
			UserFullName: r.UserFullName,
			UserEmail:    r.UserEmail,
			Book:         domain.BookRef{ID: book.ID, Title: book.Title, Author: book.Author},
			BorrowDate:   now,
			DueDate:      due,
			Status:       domain.BorrowingBorrowed,
		}
		s.nextLoan++
		s.borrowings[loan.ID] = loan
		s.byRequest[r.ID] = append(s.byRequest[r.ID], loan.ID)
	}
}

func (s *Server) promoteOverdueLocked() {
	now := s.now()
	for _, b := range s.borrowings {
		if b.Status == domain.BorrowingBorrowed && now.After(b.DueDate) {
			b.Status = domain.BorrowingOverdue
		}
	}
}

func (s *Server) renderRequestLocked(r *domain.BorrowRequest) domain.BorrowRequest {
	view := *r
	view.BookIDs = append([]int64(nil), r.BookIDs...)
	view.Borrowings = nil
	for _, id := range s.byRequest[r.ID] {
		view.Borrowings = append(view.Borrowings, *s.borrowings[id])
	}
	return view
}

// Newest first.
func (s *Server) sortedRequestsLocked() []*domain.BorrowRequest {
	out := make([]*domain.BorrowRequest, 0, len(s.requests))
	for _, r := range s.requests {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s *Server) sortedBorrowingsLocked() []*domain.Borrowing {
	out := make([]*domain.Borrowing, 0, len(s.borrowings))
	for _, b := range s.borrowings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s *Server) requestMatches(r domain.BorrowRequest, keyword string) bool {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return true
	}
	fields := []string{r.Contact.Name, r.Contact.Phone, r.UserEmail, r.UserFullName}
	for _, id := range r.BookIDs {
		fields = append(fields, s.books[id].Title)
	}
	return containsAny(fields, kw)
}

func borrowingMatches(b domain.Borrowing, keyword string) bool {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return true
	}
	return containsAny([]string{b.Book.Title, b.Book.Author, b.UserFullName, b.UserEmail}, kw)
}

func containsAny(fields []string, kw string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), kw) {
			return true
		}
	}
	return false
}

func pageQuery(c echo.Context) domain.PageQuery {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	return domain.PageQuery{Page: page, Size: size, Keyword: c.QueryParam("keyword")}.Normalize()
}

func paginate[T any](items []T, q domain.PageQuery) ([]T, int) {
	total := (len(items) + q.Size - 1) / q.Size
	start := q.Page * q.Size
	if start >= len(items) {
		return []T{}, total
	}
	end := start + q.Size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total
}
