package application

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mahabubulhasibshawon/library-borrow/internal/domain"
	"github.com/mahabubulhasibshawon/library-borrow/internal/ports"
)

// ErrCartNotLoaded is returned by mutations before a namespace was loaded successfully.
var ErrCartNotLoaded = errors.New("cart not loaded")

// CartStore is one session's view of a cart. Every mutation is written through
// to the persistence port before it becomes visible.
type CartStore struct {
	mu        sync.Mutex
	checkout  sync.Mutex // held for a whole submission
	store     ports.CartPersistencePort
	logger    *zap.Logger
	namespace string
	loaded    bool
	items     []domain.CartItem
}

func NewCartStore(store ports.CartPersistencePort, logger *zap.Logger) *CartStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartStore{store: store, logger: logger}
}

// OpenCart returns a store already loaded for the given owner.
func OpenCart(ctx context.Context, store ports.CartPersistencePort, logger *zap.Logger, owner CartOwner) (*CartStore, error) {
	c := NewCartStore(store, logger)
	if err := c.SwitchIdentity(ctx, owner); err != nil {
		return nil, err
	}
	return c, nil
}

// SwitchIdentity re-derives the namespace and reloads the cart stored there.
// On any failure the store is left unloaded, never holding the previous owner's items.
func (c *CartStore) SwitchIdentity(ctx context.Context, owner CartOwner) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loaded = false
	c.items = nil

	ns, err := CartNamespace(owner)
	if err != nil {
		c.namespace = ""
		return err
	}
	c.namespace = ns

	data, err := c.store.Load(ctx, ns)
	if err != nil {
		return fmt.Errorf("load cart %s: %w", ns, err)
	}
	items, err := decodeSnapshot(data)
	if err != nil {
		c.logger.Warn("Discarding unreadable cart snapshot",
			zap.String("namespace", ns),
			zap.Error(err),
		)
		items = nil
	}
	c.items = items
	c.loaded = true
	return nil
}

func (c *CartStore) Namespace() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.namespace
}

// Items returns the whole cart in insertion order.
func (c *CartStore) Items() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]domain.CartItem(nil), c.items...)
}

func (c *CartStore) SelectedItems() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	var selected []domain.CartItem
	for _, it := range c.items {
		if it.Selected {
			selected = append(selected, it)
		}
	}
	return selected
}

func (c *CartStore) IsInCart(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.indexOf(id) >= 0
}

// AddToCart appends the book selected. Adding an id already present is a no-op.
func (c *CartStore) AddToCart(ctx context.Context, book domain.BookSummary) error {
	if book.ID <= 0 {
		return &domain.ValidationError{Fields: map[string]string{"id": "must be positive"}}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return ErrCartNotLoaded
	}
	if c.indexOf(book.ID) >= 0 {
		return nil
	}

	next := make([]domain.CartItem, len(c.items), len(c.items)+1)
	copy(next, c.items)
	next = append(next, domain.CartItem{
		ID:       book.ID,
		Title:    book.Title,
		Author:   book.Author,
		CoverURL: book.CoverURL,
		Category: book.Category,
		Selected: true,
	})
	return c.commit(ctx, next)
}

func (c *CartStore) RemoveFromCart(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return ErrCartNotLoaded
	}
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}

	next := make([]domain.CartItem, 0, len(c.items)-1)
	next = append(next, c.items[:i]...)
	next = append(next, c.items[i+1:]...)
	return c.commit(ctx, next)
}

func (c *CartStore) ToggleSelection(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return ErrCartNotLoaded
	}
	i := c.indexOf(id)
	if i < 0 {
		return nil
	}

	next := append([]domain.CartItem(nil), c.items...)
	next[i].Selected = !next[i].Selected
	return c.commit(ctx, next)
}

// ClearCart empties the cart and erases the persisted snapshot.
func (c *CartStore) ClearCart(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return ErrCartNotLoaded
	}
	if err := c.store.Delete(ctx, c.namespace); err != nil {
		return fmt.Errorf("clear cart %s: %w", c.namespace, err)
	}
	c.items = nil
	return nil
}

// commit persists next and only then makes it the visible state. Callers hold c.mu.
func (c *CartStore) commit(ctx context.Context, next []domain.CartItem) error {
	data, err := encodeSnapshot(next)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := c.store.Save(ctx, c.namespace, data); err != nil {
		return fmt.Errorf("save cart %s: %w", c.namespace, err)
	}
	c.items = next
	return nil
}

func (c *CartStore) indexOf(id int64) int {
	for i, it := range c.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}
