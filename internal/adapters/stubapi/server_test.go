package stubapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahabubulhasibshawon/library-borrow/internal/adapters/libraryapi"
	"github.com/mahabubulhasibshawon/library-borrow/pkg/auth"
)

var testSecret = []byte("stub-secret")

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func bearer(t *testing.T, userID int64, role string) string {
	t.Helper()
	tok, err := auth.GenerateToken(testSecret, userID, "u@example.com", role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func call(t *testing.T, s *Server, method, target, authz, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

const createBody = `{"userId":7,"bookIds":[101,104],"name":"An","phone":"0900","address":"1 Le Loi","paymentMethod":"COD","shippingFee":15000}`

func TestServer_RequiresToken(t *testing.T) {
	s := New(Options{Secret: testSecret})

	rec := call(t, s, http.MethodGet, "/borrowings/me?userId=7", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = call(t, s, http.MethodGet, "/borrowings/me?userId=7", "Bearer garbage", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestServer_Authorization(t *testing.T) {
	s := New(Options{Secret: testSecret})
	user := bearer(t, 7, "USER")
	other := bearer(t, 8, "USER")

	rec := call(t, s, http.MethodPost, "/borrow-requests", user, createBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	tests := []struct {
		name   string
		method string
		target string
		authz  string
		want   int
	}{
		{"user cannot filter requests", http.MethodGet, "/borrow-requests/filter", user, http.StatusForbidden},
		{"user cannot filter borrowings", http.MethodGet, "/borrowings/filter", user, http.StatusForbidden},
		{"user cannot read another user's requests", http.MethodGet, "/borrow-requests/user/7", other, http.StatusForbidden},
		{"user cannot read another user's request", http.MethodGet, "/borrow-requests/1", other, http.StatusForbidden},
		{"owner cannot approve", http.MethodPut, "/borrow-requests/1/status?status=APPROVED", user, http.StatusForbidden},
		{"user cannot return a loan", http.MethodPut, "/borrowings/1/status?status=RETURNED", user, http.StatusForbidden},
		{"owner reads own request", http.MethodGet, "/borrow-requests/1", user, http.StatusOK},
		{"unknown request", http.MethodGet, "/borrow-requests/99", user, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, s, tt.method, tt.target, tt.authz, "")
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestServer_CreateValidation(t *testing.T) {
	s := New(Options{Secret: testSecret})
	user := bearer(t, 7, "USER")

	tests := []struct {
		name string
		body string
		want int
	}{
		{"no books", `{"userId":7,"bookIds":[],"name":"An","phone":"1","address":"x","paymentMethod":"COD"}`, http.StatusBadRequest},
		{"bad payment", `{"userId":7,"bookIds":[101],"name":"An","phone":"1","address":"x","paymentMethod":"CARD"}`, http.StatusBadRequest},
		{"missing phone", `{"userId":7,"bookIds":[101],"name":"An","address":"x","paymentMethod":"QR"}`, http.StatusBadRequest},
		{"unknown book", `{"userId":7,"bookIds":[999],"name":"An","phone":"1","address":"x","paymentMethod":"QR"}`, http.StatusBadRequest},
		{"duplicate book", `{"userId":7,"bookIds":[101,101],"name":"An","phone":"1","address":"x","paymentMethod":"QR"}`, http.StatusBadRequest},
		{"other user", `{"userId":8,"bookIds":[101],"name":"An","phone":"1","address":"x","paymentMethod":"QR"}`, http.StatusForbidden},
		{"not json", `{`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(t, s, http.MethodPost, "/borrow-requests", user, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestServer_OwnerCancelsPendingOnce(t *testing.T) {
	s := New(Options{Secret: testSecret})
	user := bearer(t, 7, "USER")
	admin := bearer(t, 1, "ADMIN")

	require.Equal(t, http.StatusCreated, call(t, s, http.MethodPost, "/borrow-requests", user, createBody).Code)

	rec := call(t, s, http.MethodPut, "/borrow-requests/1/status?status=CANCELED", user, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = call(t, s, http.MethodPut, "/borrow-requests/1/status?status=APPROVED", admin, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = call(t, s, http.MethodPut, "/borrow-requests/1/status?status=BOGUS", admin, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_ApprovalMaterialisesLoansAndPromotesOverdue(t *testing.T) {
	clk := &clock{t: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
	s := New(Options{Secret: testSecret, LoanDays: 7, Now: clk.now})
	user := bearer(t, 7, "USER")
	admin := bearer(t, 1, "ADMIN")

	require.Equal(t, http.StatusCreated, call(t, s, http.MethodPost, "/borrow-requests", user, createBody).Code)
	require.Equal(t, http.StatusOK, call(t, s, http.MethodPut, "/borrow-requests/1/status?status=approved", admin, "").Code)

	var loans []libraryapi.BorrowingBody
	rec := call(t, s, http.MethodGet, "/borrowings/me?userId=7", user, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &loans))
	require.Len(t, loans, 2)
	for _, l := range loans {
		assert.Equal(t, "BORROWED", l.Status)
		assert.Equal(t, "2026-05-08T08:00:00Z", l.DueDate)
	}

	rec = call(t, s, http.MethodPut, "/borrowings/1/status?status=RETURNED", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = call(t, s, http.MethodPut, "/borrowings/1/status?status=RETURNED", admin, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	rec = call(t, s, http.MethodPut, "/borrowings/2/status?status=OVERDUE", admin, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	clk.t = clk.t.AddDate(0, 0, 8)

	var loan libraryapi.BorrowingBody
	rec = call(t, s, http.MethodGet, "/borrowings/2", user, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &loan))
	assert.Equal(t, "OVERDUE", loan.Status)

	rec = call(t, s, http.MethodGet, "/borrowings/1", user, "")
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &loan))
	assert.Equal(t, "RETURNED", loan.Status)
	require.NotNil(t, loan.ReturnDate)
}

func TestServer_FilterPagesAndSearches(t *testing.T) {
	s := New(Options{Secret: testSecret})
	user := bearer(t, 7, "USER")
	admin := bearer(t, 1, "ADMIN")

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusCreated, call(t, s, http.MethodPost, "/borrow-requests", user, createBody).Code)
	}
	other := `{"userId":7,"bookIds":[105],"name":"Binh","phone":"0911","address":"2 Hai Ba Trung","paymentMethod":"QR"}`
	require.Equal(t, http.StatusCreated, call(t, s, http.MethodPost, "/borrow-requests", user, other).Code)

	var page libraryapi.PageBody[libraryapi.BorrowRequestBody]
	rec := call(t, s, http.MethodGet, "/borrow-requests/filter?page=1&size=3", admin, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &page))
	require.NotNil(t, page.TotalPages)
	assert.Equal(t, 2, *page.TotalPages)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(1), page.Content[0].ID)

	rec = call(t, s, http.MethodGet, "/borrow-requests/filter?keyword=clean", admin, "")
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Binh", page.Content[0].Name)

	rec = call(t, s, http.MethodGet, "/borrow-requests/filter?page=9", admin, "")
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &page))
	assert.NotNil(t, page.Content)
	assert.Empty(t, page.Content)
}

func TestDevTokens(t *testing.T) {
	user, admin, err := DevTokens(testSecret, time.Hour)
	require.NoError(t, err)

	s := New(Options{Secret: testSecret})
	rec := call(t, s, http.MethodGet, "/borrow-requests/filter", "Bearer "+user, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = call(t, s, http.MethodGet, "/borrow-requests/filter", "Bearer "+admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	claims, err := auth.ValidateToken(testSecret, user)
	require.NoError(t, err)
	assert.Equal(t, int64(2), claims.UserID)
	assert.Equal(t, "USER", claims.Role)
}
