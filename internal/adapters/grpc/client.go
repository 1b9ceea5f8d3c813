package grpc

import (
	"context"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// Client is a typed client for borrowdesk.BorrowDesk. Without a token it calls
// as a guest, and guest cart calls need a session set with WithGuestSession.
type Client struct {
	cc           grpc.ClientConnInterface
	token        string
	guestSession string
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Dial opens a connection that speaks the desk's JSON codec.
func Dial(target string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append(opts, grpc.WithDefaultCallOptions(grpc.CallContentSubtype(codecName)))
	return grpc.NewClient(target, opts...)
}

// NewGuestSession mints an id for an anonymous client's cart. Keep it for as
// long as the guest's cart should survive.
func NewGuestSession() string {
	return uuid.NewString()
}

// WithToken returns a copy of c that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	return &Client{cc: c.cc, token: token, guestSession: c.guestSession}
}

// WithGuestSession returns a copy of c whose guest calls use session's cart.
func (c *Client) WithGuestSession(session string) *Client {
	return &Client{cc: c.cc, token: c.token, guestSession: session}
}

func (c *Client) invoke(ctx context.Context, method string, in, out interface{}) error {
	if c.token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.token)
	}
	if c.guestSession != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, guestSessionHeader, c.guestSession)
	}
	return c.cc.Invoke(ctx, fullMethod(method), in, out, grpc.CallContentSubtype(codecName))
}

func call[T any](ctx context.Context, c *Client, method string, in interface{}) (*T, error) {
	out := new(T)
	if err := c.invoke(ctx, method, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetCart(ctx context.Context) (*CartResponse, error) {
	return call[CartResponse](ctx, c, "GetCart", &GetCartRequest{})
}

func (c *Client) AddToCart(ctx context.Context, book Book) (*CartResponse, error) {
	return call[CartResponse](ctx, c, "AddToCart", &AddToCartRequest{Book: book})
}

func (c *Client) RemoveFromCart(ctx context.Context, bookID int64) (*CartResponse, error) {
	return call[CartResponse](ctx, c, "RemoveFromCart", &CartItemRequest{BookID: bookID})
}

func (c *Client) ToggleSelection(ctx context.Context, bookID int64) (*CartResponse, error) {
	return call[CartResponse](ctx, c, "ToggleSelection", &CartItemRequest{BookID: bookID})
}

func (c *Client) ClearCart(ctx context.Context) (*CartResponse, error) {
	return call[CartResponse](ctx, c, "ClearCart", &ClearCartRequest{})
}

func (c *Client) SubmitBorrowRequest(ctx context.Context, req *SubmitBorrowRequestRequest) (*SubmitBorrowRequestResponse, error) {
	return call[SubmitBorrowRequestResponse](ctx, c, "SubmitBorrowRequest", req)
}

func (c *Client) ListMyBorrowRequests(ctx context.Context) (*BorrowRequestList, error) {
	return call[BorrowRequestList](ctx, c, "ListMyBorrowRequests", &ListMyBorrowRequestsRequest{})
}

func (c *Client) CancelMyBorrowRequest(ctx context.Context, requestID int64) (*BorrowRequestResponse, error) {
	return call[BorrowRequestResponse](ctx, c, "CancelMyBorrowRequest", &RequestIDRequest{RequestID: requestID})
}

func (c *Client) ListMyBorrowings(ctx context.Context) (*BorrowingList, error) {
	return call[BorrowingList](ctx, c, "ListMyBorrowings", &ListMyBorrowingsRequest{})
}

func (c *Client) GetProfileSummary(ctx context.Context) (*ProfileSummaryResponse, error) {
	return call[ProfileSummaryResponse](ctx, c, "GetProfileSummary", &ProfileSummaryRequest{})
}

func (c *Client) Logout(ctx context.Context) (*LogoutResponse, error) {
	return call[LogoutResponse](ctx, c, "Logout", &LogoutRequest{})
}

func (c *Client) ListBorrowRequests(ctx context.Context, req *PageRequest) (*RequestPageResponse, error) {
	return call[RequestPageResponse](ctx, c, "ListBorrowRequests", req)
}

func (c *Client) GetBorrowRequest(ctx context.Context, requestID int64) (*BorrowRequestResponse, error) {
	return call[BorrowRequestResponse](ctx, c, "GetBorrowRequest", &RequestIDRequest{RequestID: requestID})
}

func (c *Client) UpdateBorrowRequestStatus(ctx context.Context, requestID int64, status string) (*BorrowRequestResponse, error) {
	return call[BorrowRequestResponse](ctx, c, "UpdateBorrowRequestStatus", &UpdateStatusRequest{RequestID: requestID, Status: status})
}

func (c *Client) ListBorrowings(ctx context.Context, req *PageRequest) (*BorrowingPageResponse, error) {
	return call[BorrowingPageResponse](ctx, c, "ListBorrowings", req)
}

func (c *Client) MarkBorrowingReturned(ctx context.Context, borrowingID int64, confirmed bool) (*BorrowingResponse, error) {
	return call[BorrowingResponse](ctx, c, "MarkBorrowingReturned", &MarkReturnedRequest{BorrowingID: borrowingID, Confirmed: confirmed})
}
