package application

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
	"github.com/mahabubulhasibshawon/library-borrow/internal/ports"
)

// RequestService drives the borrow request state machine. The server stays the
// source of truth: every transition is checked against a fresh read and applied
// to the returned view only after the API confirmed it.
type RequestService struct {
	api      ports.BorrowRequestAPIPort
	inflight singleflight.Group
	logger   *zap.Logger
}

func NewRequestService(api ports.BorrowRequestAPIPort, logger *zap.Logger) *RequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{api: api, logger: logger}
}

func (s *RequestService) Get(ctx context.Context, id int64) (*domain.BorrowRequest, error) {
	return s.api.GetBorrowRequest(ctx, id)
}

func (s *RequestService) ListPage(ctx context.Context, q domain.PageQuery) (*domain.RequestPage, error) {
	return s.api.ListBorrowRequests(ctx, q.Normalize())
}

func (s *RequestService) ListForUser(ctx context.Context, id *domain.Identity) ([]domain.BorrowRequest, error) {
	if id == nil || id.UserID <= 0 {
		return nil, domain.ErrNoIdentity
	}
	return s.api.ListUserBorrowRequests(ctx, id.UserID)
}

// UpdateStatus moves a PENDING request to a terminal state.
func (s *RequestService) UpdateStatus(ctx context.Context, id int64, target domain.RequestStatus) (*domain.BorrowRequest, error) {
	cmd := domain.RequestStatusChange{RequestID: id, Target: target}
	if !target.Terminal() {
		return nil, fmt.Errorf("%w: target %q", domain.ErrInvalidTransition, target)
	}

	key := fmt.Sprintf("%d:%s", id, target)
	v, err, shared := s.inflight.Do(key, func() (interface{}, error) {
		current, err := s.api.GetBorrowRequest(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := cmd.Validate(current); err != nil {
			return nil, err
		}
		if err := s.api.UpdateBorrowRequestStatus(ctx, id, target); err != nil {
			return nil, err
		}
		updated := cmd.Apply(*current)
		return &updated, nil
	})
	if err != nil {
		s.logger.Warn("Borrow request status update failed",
			zap.Int64("request_id", id),
			zap.String("target", target.String()),
			zap.Error(err),
		)
		return nil, err
	}

	updated := *v.(*domain.BorrowRequest)
	s.logger.Info("Borrow request status updated",
		zap.Int64("request_id", id),
		zap.String("status", updated.Status.String()),
		zap.Bool("coalesced", shared),
	)
	return &updated, nil
}

// CancelOwn lets a requester withdraw a request that is still PENDING.
func (s *RequestService) CancelOwn(ctx context.Context, who *domain.Identity, id int64) (*domain.BorrowRequest, error) {
	if who == nil || who.UserID <= 0 {
		return nil, domain.ErrNoIdentity
	}
	current, err := s.api.GetBorrowRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.UserID != who.UserID {
		return nil, domain.ErrForbidden
	}
	return s.UpdateStatus(ctx, id, domain.RequestCanceled)
}
