package grpc

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/mahabubulhasibshawon/library-borrow/internal/application"
	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
	"github.com/mahabubulhasibshawon/library-borrow/pkg/auth"
)

type identityKey struct{}

func withIdentity(ctx context.Context, id *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// identityFrom returns nil for guests.
func identityFrom(ctx context.Context) *domain.Identity {
	id, _ := ctx.Value(identityKey{}).(*domain.Identity)
	return id
}

// AuthInterceptor resolves the bearer token and enforces the access level of
// each BorrowDesk method. Cart methods accept guests; a token that is present
// but invalid is still rejected so the client re-authenticates.
func AuthInterceptor(authService *application.AuthService) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		name, ok := strings.CutPrefix(info.FullMethod, "/"+ServiceName+"/")
		if !ok {
			return handler(ctx, req)
		}
		need, ok := methodAccess[name]
		if !ok {
			return nil, status.Error(codes.Unimplemented, "unknown method")
		}

		token := bearerToken(ctx)
		if token == "" {
			if need == accessGuest {
				return handler(ctx, req)
			}
			return nil, status.Error(codes.Unauthenticated, "missing authorization")
		}
		id, err := authService.Resolve(ctx, token)
		if errors.Is(err, domain.ErrUnauthenticated) {
			return nil, status.Error(codes.Unauthenticated, "invalid token")
		}
		if err != nil {
			return nil, status.Error(codes.Unavailable, "cannot verify token")
		}
		if need == accessAdmin && !id.IsAdmin() {
			return nil, status.Error(codes.PermissionDenied, "admin role required")
		}

		ctx = withIdentity(ctx, id)
		ctx = auth.WithToken(ctx, token)
		return handler(ctx, req)
	}
}

func bearerToken(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	authHeader := md.Get("authorization")
	if len(authHeader) == 0 {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader[0], "Bearer "))
}

// guestSessionHeader carries the opaque id an anonymous client minted for its cart.
const guestSessionHeader = "x-guest-session"

func guestSession(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	v := md.Get(guestSessionHeader)
	if len(v) == 0 {
		return ""
	}
	return strings.TrimSpace(v[0])
}

// LoggingInterceptor logs one line per call with its outcome code.
func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		code := status.Code(err)

		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", code.String()),
			zap.Duration("took", time.Since(start)),
		}
		switch code {
		case codes.OK:
			logger.Debug("rpc", fields...)
		case codes.Internal, codes.Unavailable, codes.Unknown:
			logger.Error("rpc", append(fields, zap.Error(err))...)
		default:
			logger.Info("rpc", append(fields, zap.Error(err))...)
		}
		return resp, err
	}
}

// toStatus maps service errors onto gRPC codes.
func (s *Server) toStatus(err error) error {
	var apiErr *domain.APIError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNoIdentity), errors.Is(err, domain.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	case domain.IsValidation(err), errors.Is(err, domain.ErrConfirmationRequired),
		errors.Is(err, domain.ErrNoGuestSession):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, domain.ErrSuperseded):
		return status.Error(codes.Aborted, err.Error())
	case errors.Is(err, domain.ErrMalformedResponse):
		return status.Error(codes.Unavailable, err.Error())
	case errors.As(err, &apiErr):
		switch {
		case apiErr.Temporary():
			return status.Error(codes.Unavailable, apiErr.Error())
		case apiErr.StatusCode == 409:
			return status.Error(codes.FailedPrecondition, apiErr.Error())
		default:
			return status.Error(codes.InvalidArgument, apiErr.Error())
		}
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	s.logger.Error("Unhandled service error", zap.Error(err))
	return status.Error(codes.Internal, "internal error")
}
