// internal/adapters/grpc/server.go
package grpc

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mahabubulhasibshawon/library-borrow/internal/application"
	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
	"github.com/mahabubulhasibshawon/library-borrow/internal/ports"
)

// cartLockStripes bounds the lock table; namespaces sharing a stripe only
// serialise against each other.
const cartLockStripes = 256

type Server struct {
	authService       *application.AuthService
	carts             ports.CartPersistencePort
	submissionService *application.SubmissionService
	requestService    *application.RequestService
	borrowingService  *application.BorrowingService
	profileService    *application.ProfileService
	latest            *application.LatestWins
	cartLocks         [cartLockStripes]sync.Mutex
	now               func() time.Time
	logger            *zap.Logger
}

var _ BorrowDeskServer = (*Server)(nil)

func NewServer(authService *application.AuthService, carts ports.CartPersistencePort, api ports.LibraryAPIPort, shippingFee float64, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		authService:       authService,
		carts:             carts,
		submissionService: application.NewSubmissionService(api, shippingFee, logger),
		requestService:    application.NewRequestService(api, logger),
		borrowingService:  application.NewBorrowingService(api, logger),
		profileService:    application.NewProfileService(api, logger),
		latest:            application.NewLatestWins(),
		now:               time.Now,
		logger:            logger,
	}
}

// cartOwner is the signed-in caller, or the guest session the client sent.
func cartOwner(ctx context.Context) application.CartOwner {
	if id := identityFrom(ctx); id != nil {
		return application.UserOwner(id)
	}
	return application.GuestOwner(guestSession(ctx))
}

// withCart runs fn on the caller's cart. Calls for one namespace are
// serialised so concurrent RPCs never lose each other's writes.
func (s *Server) withCart(ctx context.Context, fn func(*application.CartStore) error) (*application.CartStore, error) {
	owner := cartOwner(ctx)
	ns, err := application.CartNamespace(owner)
	if err != nil {
		return nil, err
	}
	mu := &s.cartLocks[xxhash.Sum64String(ns)%cartLockStripes]
	mu.Lock()
	defer mu.Unlock()

	cart, err := application.OpenCart(ctx, s.carts, s.logger, owner)
	if err != nil {
		return nil, err
	}
	if fn != nil {
		if err := fn(cart); err != nil {
			return nil, err
		}
	}
	return cart, nil
}

func (s *Server) cartResponse(ctx context.Context, fn func(*application.CartStore) error) (*CartResponse, error) {
	cart, err := s.withCart(ctx, fn)
	if err != nil {
		return nil, s.toStatus(err)
	}
	resp := toCartResponse(cart.Items())
	return &resp, nil
}

func (s *Server) GetCart(ctx context.Context, req *GetCartRequest) (*CartResponse, error) {
	return s.cartResponse(ctx, nil)
}

func (s *Server) AddToCart(ctx context.Context, req *AddToCartRequest) (*CartResponse, error) {
	book := domain.BookSummary{
		ID:       req.Book.ID,
		Title:    req.Book.Title,
		Author:   req.Book.Author,
		CoverURL: req.Book.CoverURL,
		Category: req.Book.Category,
	}
	return s.cartResponse(ctx, func(c *application.CartStore) error {
		return c.AddToCart(ctx, book)
	})
}

func (s *Server) RemoveFromCart(ctx context.Context, req *CartItemRequest) (*CartResponse, error) {
	return s.cartResponse(ctx, func(c *application.CartStore) error {
		return c.RemoveFromCart(ctx, req.BookID)
	})
}

func (s *Server) ToggleSelection(ctx context.Context, req *CartItemRequest) (*CartResponse, error) {
	return s.cartResponse(ctx, func(c *application.CartStore) error {
		return c.ToggleSelection(ctx, req.BookID)
	})
}

func (s *Server) ClearCart(ctx context.Context, req *ClearCartRequest) (*CartResponse, error) {
	return s.cartResponse(ctx, func(c *application.CartStore) error {
		return c.ClearCart(ctx)
	})
}

func (s *Server) SubmitBorrowRequest(ctx context.Context, req *SubmitBorrowRequestRequest) (*SubmitBorrowRequestResponse, error) {
	id := identityFrom(ctx)
	sub := application.Submission{
		Contact: domain.ContactInfo{
			Name:    req.Name,
			Phone:   req.Phone,
			Address: req.Address,
			Note:    req.Note,
		},
		PaymentMethod: domain.PaymentMethod(strings.ToUpper(strings.TrimSpace(req.PaymentMethod))),
	}

	var created *domain.BorrowRequest
	cart, err := s.withCart(ctx, func(c *application.CartStore) error {
		var err error
		created, err = s.submissionService.Submit(ctx, id, c, sub)
		return err
	})
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &SubmitBorrowRequestResponse{
		Request: toBorrowRequest(*created),
		Cart:    toCartResponse(cart.Items()),
	}, nil
}

func (s *Server) ListMyBorrowRequests(ctx context.Context, req *ListMyBorrowRequestsRequest) (*BorrowRequestList, error) {
	id := identityFrom(ctx)
	requests, err := application.Latest(s.latest, latestKey(id, "my-requests"), func() ([]domain.BorrowRequest, error) {
		return s.requestService.ListForUser(ctx, id)
	})
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &BorrowRequestList{Requests: toBorrowRequests(requests)}, nil
}

func (s *Server) CancelMyBorrowRequest(ctx context.Context, req *RequestIDRequest) (*BorrowRequestResponse, error) {
	updated, err := s.requestService.CancelOwn(ctx, identityFrom(ctx), req.RequestID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &BorrowRequestResponse{Request: toBorrowRequest(*updated)}, nil
}

func (s *Server) ListMyBorrowings(ctx context.Context, req *ListMyBorrowingsRequest) (*BorrowingList, error) {
	id := identityFrom(ctx)
	borrowings, err := application.Latest(s.latest, latestKey(id, "my-borrowings"), func() ([]domain.Borrowing, error) {
		return s.borrowingService.ListForUser(ctx, id)
	})
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &BorrowingList{
		Borrowings: toBorrowings(borrowings),
		Alerts:     toAlerts(application.ComputeAlerts(borrowings, s.now())),
	}, nil
}

func (s *Server) GetProfileSummary(ctx context.Context, req *ProfileSummaryRequest) (*ProfileSummaryResponse, error) {
	id := identityFrom(ctx)
	summary, err := application.Latest(s.latest, latestKey(id, "profile"), func() (*application.ProfileSummary, error) {
		return s.profileService.Summary(ctx, id)
	})
	if err != nil {
		return nil, s.toStatus(err)
	}

	resp := &ProfileSummaryResponse{
		Borrowings:     toBorrowings(summary.Borrowings),
		Stats:          toStats(summary.Stats),
		Alerts:         toAlerts(summary.Alerts),
		TotalRequests:  len(summary.Requests),
		RecentRequests: toBorrowRequests(summary.RecentRequests),
	}
	if summary.BorrowingsErr != nil {
		resp.BorrowingsError = summary.BorrowingsErr.Error()
	}
	if summary.RequestsErr != nil {
		resp.RequestsError = summary.RequestsErr.Error()
	}
	return resp, nil
}

func (s *Server) Logout(ctx context.Context, req *LogoutRequest) (*LogoutResponse, error) {
	id := identityFrom(ctx)
	if id == nil {
		return nil, status.Error(codes.Unauthenticated, "Unauthorized")
	}
	if err := s.authService.Logout(ctx, id.Token); err != nil {
		return nil, s.toStatus(err)
	}
	return &LogoutResponse{Message: "Successfully logged out"}, nil
}

func (s *Server) ListBorrowRequests(ctx context.Context, req *PageRequest) (*RequestPageResponse, error) {
	q := domain.PageQuery{Page: req.Page, Size: req.Size, Keyword: req.Keyword}
	page, err := application.Latest(s.latest, latestKey(identityFrom(ctx), "requests"), func() (*domain.RequestPage, error) {
		return s.requestService.ListPage(ctx, q)
	})
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &RequestPageResponse{Page: toPage(page.PageInfo), Content: toBorrowRequests(page.Content)}, nil
}

func (s *Server) GetBorrowRequest(ctx context.Context, req *RequestIDRequest) (*BorrowRequestResponse, error) {
	r, err := s.requestService.Get(ctx, req.RequestID)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &BorrowRequestResponse{Request: toBorrowRequest(*r)}, nil
}

func (s *Server) UpdateBorrowRequestStatus(ctx context.Context, req *UpdateStatusRequest) (*BorrowRequestResponse, error) {
	target := domain.RequestStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	updated, err := s.requestService.UpdateStatus(ctx, req.RequestID, target)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &BorrowRequestResponse{Request: toBorrowRequest(*updated)}, nil
}

func (s *Server) ListBorrowings(ctx context.Context, req *PageRequest) (*BorrowingPageResponse, error) {
	q := domain.PageQuery{Page: req.Page, Size: req.Size, Keyword: req.Keyword}
	page, err := application.Latest(s.latest, latestKey(identityFrom(ctx), "borrowings"), func() (*domain.BorrowingPage, error) {
		return s.borrowingService.ListPage(ctx, q)
	})
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &BorrowingPageResponse{Page: toPage(page.PageInfo), Content: toBorrowings(page.Content)}, nil
}

func (s *Server) MarkBorrowingReturned(ctx context.Context, req *MarkReturnedRequest) (*BorrowingResponse, error) {
	returned, err := s.borrowingService.MarkReturned(ctx, req.BorrowingID, req.Confirmed)
	if err != nil {
		return nil, s.toStatus(err)
	}
	return &BorrowingResponse{Borrowing: toBorrowing(*returned)}, nil
}

// latestKey scopes result ordering to one principal and one resource.
func latestKey(id *domain.Identity, resource string) string {
	if id == nil {
		return "guest:" + resource
	}
	return fmt.Sprintf("%d:%s:%s", id.UserID, id.Email, resource)
}
