package memory

import (
	"context"
	"strings"
	"sync"

	domain "github.com/heritage-semijoias/api/internal/domain"
	"github.com/heritage-semijoias/api/internal/repositories"
)

// Store keeps carts and identification drafts in process memory. It is the
// default backend for local development and tests.
type Store struct {
	mu     sync.RWMutex
	carts  map[string]domain.Cart
	drafts map[string]domain.IdentificationForm
}

var (
	_ repositories.CartStore  = (*Store)(nil)
	_ repositories.DraftStore = (*Store)(nil)
)

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{
		carts:  make(map[string]domain.Cart),
		drafts: make(map[string]domain.IdentificationForm),
	}
}

// Load returns a copy of the stored cart.
func (s *Store) Load(_ context.Context, cartID string) (domain.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cart, ok := s.carts[strings.TrimSpace(cartID)]
	if !ok {
		return domain.Cart{}, repositories.NewNotFoundError("memory.carts.load")
	}
	return cloneCart(cart), nil
}

// Save stores a copy of the cart keyed by its ID.
func (s *Store) Save(_ context.Context, cart domain.Cart) error {
	id := strings.TrimSpace(cart.ID)
	if id == "" {
		return repositories.NewNotFoundError("memory.carts.save")
	}

	s.mu.Lock()
	s.carts[id] = cloneCart(cart)
	s.mu.Unlock()
	return nil
}

// Delete removes the cart and its draft. Deleting a missing cart is not an error.
func (s *Store) Delete(_ context.Context, cartID string) error {
	id := strings.TrimSpace(cartID)

	s.mu.Lock()
	delete(s.carts, id)
	delete(s.drafts, id)
	s.mu.Unlock()
	return nil
}

// LoadDraft returns the stored identification draft for the cart.
func (s *Store) LoadDraft(_ context.Context, cartID string) (domain.IdentificationForm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	draft, ok := s.drafts[strings.TrimSpace(cartID)]
	if !ok {
		return domain.IdentificationForm{}, repositories.NewNotFoundError("memory.drafts.load")
	}
	return draft, nil
}

// SaveDraft stores the identification draft keyed by cart ID.
func (s *Store) SaveDraft(_ context.Context, cartID string, form domain.IdentificationForm) error {
	id := strings.TrimSpace(cartID)
	if id == "" {
		return repositories.NewNotFoundError("memory.drafts.save")
	}

	s.mu.Lock()
	s.drafts[id] = form
	s.mu.Unlock()
	return nil
}

func cloneCart(cart domain.Cart) domain.Cart {
	clone := cart
	if cart.Items != nil {
		clone.Items = make([]domain.CartItem, len(cart.Items))
		copy(clone.Items, cart.Items)
	}
	return clone
}
