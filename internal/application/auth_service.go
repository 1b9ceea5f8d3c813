// internal/application/auth_service.go
package application

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
	"github.com/mahabubulhasibshawon/library-borrow/internal/ports"
	"github.com/mahabubulhasibshawon/library-borrow/pkg/auth"
)

// AuthService turns bearer tokens issued by the auth subsystem into identities.
// Logged-out tokens stay revoked in the revocation store until they would have
// expired anyway.
type AuthService struct {
	secret      []byte
	revocations ports.RevocationStorePort
}

func NewAuthService(secret []byte, revocations ports.RevocationStorePort) *AuthService {
	return &AuthService{secret: secret, revocations: revocations}
}

// Resolve returns an error wrapping domain.ErrUnauthenticated for a bad or
// revoked token. Any other error means the revocation store was unreachable.
func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}
	claims, err := auth.ValidateToken(s.secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	revoked, err := s.revocations.IsRevoked(ctx, tokenDigest(token))
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: token revoked", domain.ErrUnauthenticated)
	}
	if claims.UserID <= 0 && claims.Email == "" {
		return nil, fmt.Errorf("%w: token carries no subject", domain.ErrUnauthenticated)
	}

	role := domain.Role(strings.ToUpper(claims.Role))
	if role != domain.RoleAdmin {
		role = domain.RoleUser
	}
	return &domain.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   role,
		Token:  token,
	}, nil
}

// Logout revokes the token for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	claims, err := auth.ValidateToken(s.secret, token)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
	}
	if err := s.revocations.Revoke(ctx, tokenDigest(token), claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// tokenDigest keeps raw bearer tokens out of the revocation store.
func tokenDigest(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
