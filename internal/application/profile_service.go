package application

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
	"github.com/mahabubulhasibshawon/library-borrow/internal/ports"
)

const recentRequestCount = 3

// ProfileSummary is the user-facing status view. Each region carries its own
// error so one failed fetch does not blank the other.
type ProfileSummary struct {
	Borrowings     []domain.Borrowing
	Stats          BorrowingStats
	Alerts         DueAlerts
	BorrowingsErr  error
	Requests       []domain.BorrowRequest
	RecentRequests []domain.BorrowRequest
	RequestsErr    error
}

type ProfileService struct {
	requests   ports.BorrowRequestAPIPort
	borrowings ports.BorrowingAPIPort
	now        func() time.Time
	logger     *zap.Logger
}

func NewProfileService(api ports.LibraryAPIPort, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{requests: api, borrowings: api, now: time.Now, logger: logger}
}

// Summary fetches requests and borrowings concurrently and derives stats and
// alerts from fresh data on every call. An expired session fails the whole
// call so the caller can send the user to re-authenticate.
func (s *ProfileService) Summary(ctx context.Context, id *domain.Identity) (*ProfileSummary, error) {
	if id == nil || id.UserID <= 0 {
		return nil, domain.ErrNoIdentity
	}

	var out ProfileSummary
	var g errgroup.Group
	g.Go(func() error {
		out.Borrowings, out.BorrowingsErr = s.borrowings.ListUserBorrowings(ctx, id.UserID)
		return nil
	})
	g.Go(func() error {
		out.Requests, out.RequestsErr = s.requests.ListUserBorrowRequests(ctx, id.UserID)
		return nil
	})
	_ = g.Wait()

	for _, err := range []error{out.BorrowingsErr, out.RequestsErr} {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil, err
		}
	}

	if out.BorrowingsErr != nil {
		s.logger.Warn("Profile borrowings unavailable", zap.Int64("user_id", id.UserID), zap.Error(out.BorrowingsErr))
	} else {
		out.Stats = ComputeStats(out.Borrowings)
		out.Alerts = ComputeAlerts(out.Borrowings, s.now())
	}
	if out.RequestsErr != nil {
		s.logger.Warn("Profile requests unavailable", zap.Int64("user_id", id.UserID), zap.Error(out.RequestsErr))
	} else {
		out.RecentRequests = RecentRequests(out.Requests, recentRequestCount)
	}
	return &out, nil
}
