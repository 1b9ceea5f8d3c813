package application

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"

	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
)

const (
	cartKeyPrefix   = "cart:"
	guestCartPrefix = cartKeyPrefix + "guest:"
)

// CartOwner identifies whose cart a call touches. Signed-in callers carry an
// Identity; anonymous callers carry the opaque session id their client minted.
type CartOwner struct {
	Identity     *domain.Identity
	GuestSession string
}

// GuestOwner is shorthand for an anonymous owner.
func GuestOwner(session string) CartOwner {
	return CartOwner{GuestSession: session}
}

// UserOwner is shorthand for a signed-in owner.
func UserOwner(id *domain.Identity) CartOwner {
	return CartOwner{Identity: id}
}

// CartNamespace derives the persistence key for an owner's cart.
// Emails are hashed so raw addresses never end up in storage keys. A guest
// without a well-formed session id has no cart and gets ErrNoGuestSession.
func CartNamespace(owner CartOwner) (string, error) {
	if id := owner.Identity; id != nil {
		if id.UserID > 0 {
			return cartKeyPrefix + strconv.FormatInt(id.UserID, 10), nil
		}
		if email := strings.ToLower(strings.TrimSpace(id.Email)); email != "" {
			sum := blake2b.Sum256([]byte(email))
			return cartKeyPrefix + "email:" + hex.EncodeToString(sum[:]), nil
		}
	}
	session, err := uuid.Parse(strings.TrimSpace(owner.GuestSession))
	if err != nil || session == uuid.Nil {
		return "", domain.ErrNoGuestSession
	}
	return guestCartPrefix + session.String(), nil
}
