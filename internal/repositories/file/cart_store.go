package file

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	domain "github.com/heritage-semijoias/api/internal/domain"
	"github.com/heritage-semijoias/api/internal/repositories"
)

// Store persists carts and identification drafts as a single JSON file. A
// missing or corrupt file resets to empty state instead of failing; the cart
// is ephemeral data and losing it is preferable to refusing to serve.
type Store struct {
	path string

	mu   sync.Mutex
	data storeData
}

type storeData struct {
	Carts  map[string]domain.Cart               `json:"carts"`
	Drafts map[string]domain.IdentificationForm `json:"drafts"`
}

var (
	_ repositories.CartStore  = (*Store)(nil)
	_ repositories.DraftStore = (*Store)(nil)
)

// NewStore opens the blob at path, resetting to empty on any read or parse failure.
func NewStore(path string) (*Store, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, errors.New("file store: path is required")
	}

	store := &Store{path: trimmed}
	store.data = loadData(trimmed)
	return store, nil
}

func loadData(path string) storeData {
	empty := storeData{
		Carts:  make(map[string]domain.Cart),
		Drafts: make(map[string]domain.IdentificationForm),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return empty
	}

	var data storeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return empty
	}
	if data.Carts == nil {
		data.Carts = make(map[string]domain.Cart)
	}
	if data.Drafts == nil {
		data.Drafts = make(map[string]domain.IdentificationForm)
	}
	return data
}

// Load returns the stored cart for the ID.
func (s *Store) Load(_ context.Context, cartID string) (domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.data.Carts[strings.TrimSpace(cartID)]
	if !ok {
		return domain.Cart{}, repositories.NewNotFoundError("file.carts.load")
	}
	return cloneCart(cart), nil
}

// Save stores the cart and flushes the blob to disk.
func (s *Store) Save(_ context.Context, cart domain.Cart) error {
	id := strings.TrimSpace(cart.ID)
	if id == "" {
		return repositories.NewNotFoundError("file.carts.save")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Carts[id] = cloneCart(cart)
	return s.flush()
}

// Delete removes the cart and its draft, then flushes.
func (s *Store) Delete(_ context.Context, cartID string) error {
	id := strings.TrimSpace(cartID)

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data.Carts, id)
	delete(s.data.Drafts, id)
	return s.flush()
}

// LoadDraft returns the stored identification draft for the cart.
func (s *Store) LoadDraft(_ context.Context, cartID string) (domain.IdentificationForm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, ok := s.data.Drafts[strings.TrimSpace(cartID)]
	if !ok {
		return domain.IdentificationForm{}, repositories.NewNotFoundError("file.drafts.load")
	}
	return draft, nil
}

// SaveDraft stores the identification draft and flushes the blob to disk.
func (s *Store) SaveDraft(_ context.Context, cartID string, form domain.IdentificationForm) error {
	id := strings.TrimSpace(cartID)
	if id == "" {
		return repositories.NewNotFoundError("file.drafts.save")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Drafts[id] = form
	return s.flush()
}

// flush writes the blob atomically via a sibling temp file. Callers hold s.mu.
func (s *Store) flush() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return repositories.NewUnavailableError("file.flush", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".carts-*")
	if err != nil {
		return repositories.NewUnavailableError("file.flush", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return repositories.NewUnavailableError("file.flush", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return repositories.NewUnavailableError("file.flush", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return repositories.NewUnavailableError("file.flush", err)
	}
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
