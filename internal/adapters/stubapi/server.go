// Package stubapi is an in-memory implementation of the library REST API.
// It applies the server-side rules the borrow desk relies on and is used for
// local development and tests.
package stubapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/mahabubulhasibshawon/library-borrow/internal/adapters/libraryapi"
	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
	"github.com/mahabubulhasibshawon/library-borrow/pkg/auth"
)

const DefaultLoanDays = 14

type Book struct {
	ID     int64
	Title  string
	Author string
}

// DefaultBooks is the seeded catalogue.
func DefaultBooks() []Book {
	return []Book{
		{ID: 101, Title: "The Go Programming Language", Author: "Alan Donovan"},
		{ID: 102, Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann"},
		{ID: 103, Title: "Dế Mèn phiêu lưu ký", Author: "Tô Hoài"},
		{ID: 104, Title: "Số đỏ", Author: "Vũ Trọng Phụng"},
		{ID: 105, Title: "Clean Architecture", Author: "Robert C. Martin"},
	}
}

type Options struct {
	Secret   []byte
	LoanDays int
	Books    []Book
	Logger   *zap.Logger
	Now      func() time.Time
}

type Server struct {
	echo     *echo.Echo
	secret   []byte
	loanDays int
	logger   *zap.Logger
	now      func() time.Time

	mu          sync.Mutex
	books       map[int64]Book
	requests    map[int64]*domain.BorrowRequest
	borrowings  map[int64]*domain.Borrowing
	byRequest   map[int64][]int64
	nextRequest int64
	nextLoan    int64
}

type requestValidator struct {
	v *validator.Validate
}

func (rv *requestValidator) Validate(i interface{}) error {
	return rv.v.Struct(i)
}

func New(opts Options) *Server {
	if opts.LoanDays <= 0 {
		opts.LoanDays = DefaultLoanDays
	}
	if opts.Books == nil {
		opts.Books = DefaultBooks()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		echo:        echo.New(),
		secret:      opts.Secret,
		loanDays:    opts.LoanDays,
		logger:      opts.Logger,
		now:         opts.Now,
		books:       make(map[int64]Book, len(opts.Books)),
		requests:    map[int64]*domain.BorrowRequest{},
		borrowings:  map[int64]*domain.Borrowing{},
		byRequest:   map[int64][]int64{},
		nextRequest: 1,
		nextLoan:    1,
	}
	for _, b := range opts.Books {
		s.books[b.ID] = b
	}

	e := s.echo
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{v: validator.New()}
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))
	e.Use(s.accessLog())
	e.Use(s.authenticate())

	e.POST("/borrow-requests", s.createRequest)
	e.GET("/borrow-requests/filter", s.filterRequests, requireAdmin)
	e.GET("/borrow-requests/user/:id", s.userRequests)
	e.GET("/borrow-requests/:id", s.getRequest)
	e.PUT("/borrow-requests/:id/status", s.updateRequestStatus)
	e.GET("/borrowings/me", s.myBorrowings)
	e.GET("/borrowings/filter", s.filterBorrowings, requireAdmin)
	e.GET("/borrowings/:id", s.getBorrowing)
	e.PUT("/borrowings/:id/status", s.updateBorrowingStatus, requireAdmin)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(addr string) error {
	err := s.echo.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) accessLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			s.logger.Debug("stub api",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("took", time.Since(start)),
				zap.String("x_request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	}
}

const claimsKey = "claims"

func (s *Server) authenticate() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return fail(c, http.StatusUnauthorized, "unauthorized")
			}
			claims, err := auth.ValidateToken(s.secret, token)
			if err != nil || claims.UserID <= 0 {
				return fail(c, http.StatusUnauthorized, "unauthorized")
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !isAdmin(c) {
			return fail(c, http.StatusForbidden, "forbidden")
		}
		return next(c)
	}
}

func caller(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsKey).(*auth.Claims)
	return claims
}

func isAdmin(c echo.Context) bool {
	claims := caller(c)
	return claims != nil && strings.EqualFold(claims.Role, string(domain.RoleAdmin))
}

func canSee(c echo.Context, userID int64) bool {
	return isAdmin(c) || caller(c).UserID == userID
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, libraryapi.ErrorBody{Message: msg})
}

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// DevTokens issues a USER (id 2) and an ADMIN (id 1) token for local use.
func DevTokens(secret []byte, ttl time.Duration) (user, admin string, err error) {
	user, err = auth.GenerateToken(secret, 2, "reader@library.local", string(domain.RoleUser), ttl)
	if err != nil {
		return "", "", err
	}
	admin, err = auth.GenerateToken(secret, 1, "admin@library.local", string(domain.RoleAdmin), ttl)
	if err != nil {
		return "", "", err
	}
	return user, admin, nil
}
