package libraryapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
	"github.com/mahabubulhasibshawon/library-borrow/internal/ports"
	"github.com/mahabubulhasibshawon/library-borrow/pkg/auth"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 4 << 20

// NewHTTPClient returns an http.Client tuned for talking to a single API host.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxConnsPerHost:     100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// Client is the strict REST client for the library API. The bearer token in
// the call's context (auth.WithToken) is forwarded on every request.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *zap.Logger
}

var _ ports.LibraryAPIPort = (*Client)(nil)

func New(baseURL string, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse library api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("library api url %q must be http or https", baseURL)
	}
	if httpClient == nil {
		httpClient = NewHTTPClient(10 * time.Second)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{base: u, http: httpClient, logger: logger}, nil
}

func (c *Client) CreateBorrowRequest(ctx context.Context, req *domain.NewBorrowRequest) (*domain.BorrowRequest, error) {
	body := CreateBorrowRequestBody{
		UserID:        req.UserID,
		BookIDs:       req.BookIDs,
		Name:          req.Contact.Name,
		Phone:         req.Contact.Phone,
		Address:       req.Contact.Address,
		Note:          req.Contact.Note,
		PaymentMethod: string(req.PaymentMethod),
		ShippingFee:   req.ShippingFee,
	}
	var out BorrowRequestBody
	if err := c.do(ctx, http.MethodPost, "/borrow-requests", nil, body, &out); err != nil {
		return nil, err
	}
	created, err := out.ToDomain()
	if err != nil {
		return nil, err
	}
	if created.Status != domain.RequestPending {
		return nil, malformed("new borrow request %d is %s, want PENDING", created.ID, created.Status)
	}
	if len(created.BookIDs) == 0 {
		created.BookIDs = append([]int64(nil), req.BookIDs...)
	}
	return &created, nil
}

func (c *Client) GetBorrowRequest(ctx context.Context, id int64) (*domain.BorrowRequest, error) {
	var out BorrowRequestBody
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/borrow-requests/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	r, err := out.ToDomain()
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) ListBorrowRequests(ctx context.Context, q domain.PageQuery) (*domain.RequestPage, error) {
	var out PageBody[BorrowRequestBody]
	if err := c.do(ctx, http.MethodGet, "/borrow-requests/filter", pageParams(q), nil, &out); err != nil {
		return nil, err
	}
	info, err := pageInfo(q, out.Content == nil, out.TotalPages)
	if err != nil {
		return nil, err
	}
	page := &domain.RequestPage{PageInfo: info, Content: make([]domain.BorrowRequest, 0, len(out.Content))}
	for _, b := range out.Content {
		r, err := b.ToDomain()
		if err != nil {
			return nil, err
		}
		page.Content = append(page.Content, r)
	}
	return page, nil
}

func (c *Client) ListUserBorrowRequests(ctx context.Context, userID int64) ([]domain.BorrowRequest, error) {
	var out []BorrowRequestBody
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/borrow-requests/user/%d", userID), nil, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, malformed("user borrow requests: expected array")
	}
	requests := make([]domain.BorrowRequest, 0, len(out))
	for _, b := range out {
		r, err := b.ToDomain()
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, nil
}

func (c *Client) UpdateBorrowRequestStatus(ctx context.Context, id int64, status domain.RequestStatus) error {
	q := url.Values{"status": {status.String()}}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/borrow-requests/%d/status", id), q, nil, nil)
}

func (c *Client) GetBorrowing(ctx context.Context, id int64) (*domain.Borrowing, error) {
	var out BorrowingBody
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/borrowings/%d", id), nil, nil, &out); err != nil {
		return nil, err
	}
	b, err := out.ToDomain()
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (c *Client) ListUserBorrowings(ctx context.Context, userID int64) ([]domain.Borrowing, error) {
	q := url.Values{"userId": {strconv.FormatInt(userID, 10)}}
	var out []BorrowingBody
	if err := c.do(ctx, http.MethodGet, "/borrowings/me", q, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, malformed("user borrowings: expected array")
	}
	borrowings := make([]domain.Borrowing, 0, len(out))
	for _, b := range out {
		br, err := b.ToDomain()
		if err != nil {
			return nil, err
		}
		borrowings = append(borrowings, br)
	}
	return borrowings, nil
}

func (c *Client) ListBorrowings(ctx context.Context, q domain.PageQuery) (*domain.BorrowingPage, error) {
	var out PageBody[BorrowingBody]
	if err := c.do(ctx, http.MethodGet, "/borrowings/filter", pageParams(q), nil, &out); err != nil {
		return nil, err
	}
	info, err := pageInfo(q, out.Content == nil, out.TotalPages)
	if err != nil {
		return nil, err
	}
	page := &domain.BorrowingPage{PageInfo: info, Content: make([]domain.Borrowing, 0, len(out.Content))}
	for _, b := range out.Content {
		br, err := b.ToDomain()
		if err != nil {
			return nil, err
		}
		page.Content = append(page.Content, br)
	}
	return page, nil
}

func (c *Client) UpdateBorrowingStatus(ctx context.Context, id int64, status domain.BorrowingStatus) error {
	q := url.Values{"status": {status.String()}}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/borrowings/%d/status", id), q, nil, nil)
}

func pageParams(q domain.PageQuery) url.Values {
	q = q.Normalize()
	v := url.Values{
		"page": {strconv.Itoa(q.Page)},
		"size": {strconv.Itoa(q.Size)},
	}
	if kw := strings.TrimSpace(q.Keyword); kw != "" {
		v.Set("keyword", kw)
	}
	return v
}

func pageInfo(q domain.PageQuery, contentMissing bool, totalPages *int) (domain.PageInfo, error) {
	if contentMissing {
		return domain.PageInfo{}, malformed("page without content")
	}
	if totalPages == nil || *totalPages < 0 {
		return domain.PageInfo{}, malformed("page without totalPages")
	}
	q = q.Normalize()
	return domain.PageInfo{Page: q.Page, Size: q.Size, TotalPages: *totalPages}, nil
}

// do performs one API call. A nil out means the response body is ignored.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := auth.TokenFromContext(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Library API call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("x_request_id", requestID),
			zap.Error(err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	c.logger.Debug("Library API call",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
		zap.String("x_request_id", requestID),
	)

	if err := statusError(resp.StatusCode, data); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return malformed("%s %s: empty body", method, path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return malformed("%s %s: %v", method, path, err)
	}
	return nil
}

func statusError(code int, body []byte) error {
	if code >= 200 && code < 300 {
		return nil
	}
	msg := errorMessage(body)
	switch code {
	case http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		if msg == "" {
			return domain.ErrNotFound
		}
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	}
	return &domain.APIError{StatusCode: code, Message: msg}
}

func errorMessage(body []byte) string {
	var eb ErrorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Message != "" {
		return eb.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
