// internal/adapters/grpc/server_test.go
package grpc

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/mahabubulhasibshawon/library-borrow/internal/adapters/libraryapi"
	"github.com/mahabubulhasibshawon/library-borrow/internal/adapters/memory"
	"github.com/mahabubulhasibshawon/library-borrow/internal/adapters/stubapi"
	"github.com/mahabubulhasibshawon/library-borrow/internal/application"
	"github.com/mahabubulhasibshawon/library-borrow/pkg/auth"
)

const bufSize = 1024 * 1024

var testSecret = []byte("desk-test-secret")

func setupTestServer(t *testing.T) *Client {
	t.Helper()

	stub := stubapi.New(stubapi.Options{Secret: testSecret})
	api := httptest.NewServer(stub.Handler())
	t.Cleanup(api.Close)

	libClient, err := libraryapi.New(api.URL, nil, nil)
	require.NoError(t, err)

	authService := application.NewAuthService(testSecret, memory.NewRevocationStore())
	srv := NewServer(authService, memory.NewCartStore(), libClient, application.DefaultShippingFee, zap.NewNop())

	lis := bufconn.Listen(bufSize)
	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		LoggingInterceptor(zap.NewNop()),
		AuthInterceptor(authService),
	))
	RegisterBorrowDeskServer(grpcServer, srv)
	go func() {
		_ = grpcServer.Serve(lis)
	}()
	t.Cleanup(grpcServer.Stop)

	conn, err := Dial("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewClient(conn)
}

func token(t *testing.T, userID int64, role string) string {
	t.Helper()
	tok, err := auth.GenerateToken(testSecret, userID, "reader@example.com", role, time.Hour)
	require.NoError(t, err)
	return tok
}

func requireCode(t *testing.T, err error, want codes.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, status.Code(err), err.Error())
}

var contact = &SubmitBorrowRequestRequest{
	Name:          "Nguyen Van An",
	Phone:         "0900000000",
	Address:       "1 Le Loi, District 1",
	PaymentMethod: "cod",
}

func TestGRPCServer_GuestCart(t *testing.T) {
	guest := setupTestServer(t).WithGuestSession(NewGuestSession())
	ctx := context.Background()

	_, err := guest.AddToCart(ctx, Book{ID: 101, Title: "The Go Programming Language"})
	require.NoError(t, err)
	_, err = guest.AddToCart(ctx, Book{ID: 102, Title: "Designing Data-Intensive Applications"})
	require.NoError(t, err)
	_, err = guest.AddToCart(ctx, Book{ID: 101, Title: "duplicate"})
	require.NoError(t, err)

	cart, err := guest.ToggleSelection(ctx, 102)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, "The Go Programming Language", cart.Items[0].Title)
	assert.Equal(t, 1, cart.SelectedCount)

	_, err = guest.AddToCart(ctx, Book{ID: 0})
	requireCode(t, err, codes.InvalidArgument)

	_, err = guest.SubmitBorrowRequest(ctx, contact)
	requireCode(t, err, codes.Unauthenticated)

	cart, err = guest.RemoveFromCart(ctx, 101)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(102), cart.Items[0].ID)

	cart, err = guest.ClearCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = guest.WithToken("not-a-token").GetCart(ctx)
	requireCode(t, err, codes.Unauthenticated)
}

func TestGRPCServer_CartIsolatedPerIdentity(t *testing.T) {
	guest := setupTestServer(t).WithGuestSession(NewGuestSession())
	user := guest.WithToken(token(t, 7, "USER"))
	other := guest.WithToken(token(t, 8, "USER"))
	ctx := context.Background()

	_, err := guest.AddToCart(ctx, Book{ID: 101})
	require.NoError(t, err)
	_, err = user.AddToCart(ctx, Book{ID: 103})
	require.NoError(t, err)

	cart, err := user.GetCart(ctx)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(103), cart.Items[0].ID)

	cart, err = other.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestGRPCServer_GuestsDoNotShareCarts(t *testing.T) {
	anonymous := setupTestServer(t)
	alice := anonymous.WithGuestSession(NewGuestSession())
	bob := anonymous.WithGuestSession(NewGuestSession())
	ctx := context.Background()

	_, err := alice.AddToCart(ctx, Book{ID: 101, Title: "The Go Programming Language"})
	require.NoError(t, err)

	cart, err := bob.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart.Items, "second guest sees the first guest's cart")

	_, err = bob.AddToCart(ctx, Book{ID: 102})
	require.NoError(t, err)
	_, err = bob.ClearCart(ctx)
	require.NoError(t, err)

	cart, err = alice.GetCart(ctx)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(101), cart.Items[0].ID)

	// The same session id reaches the same cart from a new client value.
	again := anonymous.WithGuestSession(strings.ToUpper(alice.guestSession))
	cart, err = again.GetCart(ctx)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestGRPCServer_GuestCartNeedsSession(t *testing.T) {
	anonymous := setupTestServer(t)
	ctx := context.Background()

	_, err := anonymous.GetCart(ctx)
	requireCode(t, err, codes.InvalidArgument)
	_, err = anonymous.AddToCart(ctx, Book{ID: 101})
	requireCode(t, err, codes.InvalidArgument)

	for _, bad := range []string{"guest", "00000000-0000-0000-0000-000000000000", "../cart:7"} {
		_, err = anonymous.WithGuestSession(bad).GetCart(ctx)
		requireCode(t, err, codes.InvalidArgument)
	}

	// Signed-in callers never need a guest session.
	cart, err := anonymous.WithToken(token(t, 7, "USER")).GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestGRPCServer_ConcurrentCartWritesAllLand(t *testing.T) {
	anonymous := setupTestServer(t)
	user := anonymous.WithToken(token(t, 7, "USER"))
	ctx := context.Background()

	const books = 40
	var wg sync.WaitGroup
	for i := 1; i <= books; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := user.AddToCart(ctx, Book{ID: id})
			assert.NoError(t, err)
			// Unrelated guests hash onto arbitrary stripes meanwhile.
			_, err = anonymous.WithGuestSession(NewGuestSession()).AddToCart(ctx, Book{ID: id})
			assert.NoError(t, err)
		}(int64(i))
	}
	wg.Wait()

	cart, err := user.GetCart(ctx)
	require.NoError(t, err)
	assert.Len(t, cart.Items, books)
}

func TestGRPCServer_BorrowLifecycle(t *testing.T) {
	guest := setupTestServer(t)
	user := guest.WithToken(token(t, 7, "USER"))
	admin := guest.WithToken(token(t, 1, "ADMIN"))
	ctx := context.Background()

	t.Run("Submit_EmptySelection", func(t *testing.T) {
		_, err := user.SubmitBorrowRequest(ctx, contact)
		requireCode(t, err, codes.InvalidArgument)
	})

	for _, id := range []int64{101, 102} {
		_, err := user.AddToCart(ctx, Book{ID: id})
		require.NoError(t, err)
	}

	t.Run("Submit_InvalidContact", func(t *testing.T) {
		_, err := user.SubmitBorrowRequest(ctx, &SubmitBorrowRequestRequest{Name: "An", Address: "x"})
		requireCode(t, err, codes.InvalidArgument)

		cart, err := user.GetCart(ctx)
		require.NoError(t, err)
		assert.Len(t, cart.Items, 2)
	})

	var requestID int64
	t.Run("Submit_Success", func(t *testing.T) {
		resp, err := user.SubmitBorrowRequest(ctx, contact)
		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Request.Status)
		assert.Equal(t, []int64{101, 102}, resp.Request.BookIDs)
		assert.Equal(t, "COD", resp.Request.PaymentMethod)
		assert.Equal(t, application.DefaultShippingFee, resp.Request.ShippingFee)
		assert.Empty(t, resp.Cart.Items)
		requestID = resp.Request.ID
	})
	require.NotZero(t, requestID)

	t.Run("Admin_RequiresRole", func(t *testing.T) {
		_, err := user.UpdateBorrowRequestStatus(ctx, requestID, "APPROVED")
		requireCode(t, err, codes.PermissionDenied)
		_, err = guest.ListBorrowRequests(ctx, &PageRequest{})
		requireCode(t, err, codes.Unauthenticated)
	})

	t.Run("Admin_Approve", func(t *testing.T) {
		page, err := admin.ListBorrowRequests(ctx, &PageRequest{Size: 10})
		require.NoError(t, err)
		require.Len(t, page.Content, 1)
		assert.Equal(t, 1, page.TotalPages)
		assert.False(t, page.HasNext)

		resp, err := admin.UpdateBorrowRequestStatus(ctx, requestID, "approved")
		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Request.Status)

		_, err = admin.UpdateBorrowRequestStatus(ctx, requestID, "REJECTED")
		requireCode(t, err, codes.FailedPrecondition)

		_, err = admin.UpdateBorrowRequestStatus(ctx, requestID, "PENDING")
		requireCode(t, err, codes.FailedPrecondition)

		got, err := admin.GetBorrowRequest(ctx, requestID)
		require.NoError(t, err)
		assert.Len(t, got.Request.Borrowings, 2)
		assert.Equal(t, 2, got.Request.TotalBooks)
	})

	var loanID int64
	t.Run("User_SeesLoans", func(t *testing.T) {
		list, err := user.ListMyBorrowings(ctx)
		require.NoError(t, err)
		require.Len(t, list.Borrowings, 2)
		for _, b := range list.Borrowings {
			assert.Equal(t, "BORROWED", b.Status)
		}
		assert.Equal(t, Alerts{}, list.Alerts)
		loanID = list.Borrowings[0].ID
	})

	t.Run("Admin_MarkReturned", func(t *testing.T) {
		_, err := admin.MarkBorrowingReturned(ctx, loanID, false)
		requireCode(t, err, codes.InvalidArgument)

		resp, err := admin.MarkBorrowingReturned(ctx, loanID, true)
		require.NoError(t, err)
		assert.Equal(t, "RETURNED", resp.Borrowing.Status)
		assert.NotNil(t, resp.Borrowing.ReturnDate)

		_, err = admin.MarkBorrowingReturned(ctx, loanID, true)
		requireCode(t, err, codes.FailedPrecondition)

		_, err = admin.MarkBorrowingReturned(ctx, 999, true)
		requireCode(t, err, codes.NotFound)

		page, err := admin.ListBorrowings(ctx, &PageRequest{Size: 1})
		require.NoError(t, err)
		assert.Len(t, page.Content, 1)
		assert.Equal(t, 2, page.TotalPages)
		assert.True(t, page.HasNext)
	})

	t.Run("User_CancelsOwnPending", func(t *testing.T) {
		_, err := user.AddToCart(ctx, Book{ID: 105})
		require.NoError(t, err)
		resp, err := user.SubmitBorrowRequest(ctx, contact)
		require.NoError(t, err)

		other := guest.WithToken(token(t, 8, "USER"))
		_, err = other.CancelMyBorrowRequest(ctx, resp.Request.ID)
		requireCode(t, err, codes.PermissionDenied)

		canceled, err := user.CancelMyBorrowRequest(ctx, resp.Request.ID)
		require.NoError(t, err)
		assert.Equal(t, "CANCELED", canceled.Request.Status)

		_, err = user.CancelMyBorrowRequest(ctx, requestID)
		requireCode(t, err, codes.FailedPrecondition)
	})

	t.Run("User_ProfileSummary", func(t *testing.T) {
		summary, err := user.GetProfileSummary(ctx)
		require.NoError(t, err)
		assert.Empty(t, summary.BorrowingsError)
		assert.Empty(t, summary.RequestsError)
		assert.Equal(t, Stats{Total: 2, Borrowing: 1, Returned: 1, Overdue: 0, OnTimePercent: 100}, summary.Stats)
		assert.Equal(t, 2, summary.TotalRequests)
		require.Len(t, summary.RecentRequests, 2)

		mine, err := user.ListMyBorrowRequests(ctx)
		require.NoError(t, err)
		assert.Len(t, mine.Requests, 2)
	})

	t.Run("Logout_RevokesToken", func(t *testing.T) {
		session := guest.WithToken(token(t, 9, "USER"))
		_, err := session.GetCart(ctx)
		require.NoError(t, err)

		resp, err := session.Logout(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Message)

		_, err = session.GetCart(ctx)
		requireCode(t, err, codes.Unauthenticated)

		_, err = guest.Logout(ctx)
		requireCode(t, err, codes.Unauthenticated)
	})
}
