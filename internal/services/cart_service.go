package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	domain "github.com/heritage-semijoias/api/internal/domain"
	repositories "github.com/heritage-semijoias/api/internal/repositories"
)

var (
	// ErrCartInvalidInput indicates the caller supplied malformed parameters.
	ErrCartInvalidInput = errors.New("cart service: invalid input")
	// ErrCartItemNotFound indicates the referenced line does not exist in the cart.
	ErrCartItemNotFound = errors.New("cart service: item not found")
	// ErrCartUnavailable indicates the backing store failed.
	ErrCartUnavailable = errors.New("cart service: unavailable")
)

var (
	errCartStoreRequired = errors.New("cart service: store dependency is required")
	errCartClockRequired = errors.New("cart service: clock dependency is required")
)

// CartServiceDeps wires the cart service dependencies.
type CartServiceDeps struct {
	Store       repositories.CartStore
	Clock       func() time.Time
	IDGenerator func() string
	Logger      Logger
}

type cartService struct {
	store repositories.CartStore
	now   func() time.Time
	idGen func() string
	log   Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewCartService validates dependencies and returns a CartService.
func NewCartService(deps CartServiceDeps) (CartService, error) {
	if deps.Store == nil {
		return nil, errCartStoreRequired
	}
	if deps.Clock == nil {
		return nil, errCartClockRequired
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string { return ulid.Make().String() }
	}
	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}
	return &cartService{
		store: deps.Store,
		now:   func() time.Time { return deps.Clock().UTC() },
		idGen: idGen,
		log:   logger,
		locks: map[string]*sync.Mutex{},
	}, nil
}

func (s *cartService) CreateCart(ctx context.Context) (domain.Cart, error) {
	now := s.now()
	cart := domain.Cart{
		ID:        s.idGen(),
		Items:     []domain.CartItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, cart); err != nil {
		s.log(ctx, "cart.create_failed", map[string]any{"error": err.Error()})
		return domain.Cart{}, s.translateRepoError(err)
	}
	s.log(ctx, "cart.created", map[string]any{"cart_id": cart.ID})
	return cart, nil
}

func (s *cartService) GetCart(ctx context.Context, cartID string) (domain.Cart, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return domain.Cart{}, ErrCartInvalidInput
	}
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *cartService) AddItem(ctx context.Context, cmd AddCartItemCommand) (domain.Cart, error) {
	cmd.CartID = strings.TrimSpace(cmd.CartID)
	cmd.Item.ID = strings.TrimSpace(cmd.Item.ID)
	if cmd.CartID == "" || cmd.Item.ID == "" {
		return domain.Cart{}, ErrCartInvalidInput
	}
	if cmd.Item.Price < 0 {
		return domain.Cart{}, ErrCartInvalidInput
	}
	return s.mutate(ctx, cmd.CartID, func(cart *domain.Cart) error {
		item := cmd.Item
		item.Qty = domain.ClampQuantity(item.Qty)
		for i := range cart.Items {
			if cart.Items[i].ID != item.ID {
				continue
			}
			merged := cart.Items[i].Qty + item.Qty
			cart.Items[i].Qty = domain.ClampQuantity(merged)
			return nil
		}
		cart.Items = append(cart.Items, item)
		return nil
	})
}

func (s *cartService) SetQuantity(ctx context.Context, cmd SetCartQuantityCommand) (domain.Cart, error) {
	cmd.CartID = strings.TrimSpace(cmd.CartID)
	cmd.ItemID = strings.TrimSpace(cmd.ItemID)
	if cmd.CartID == "" || cmd.ItemID == "" {
		return domain.Cart{}, ErrCartInvalidInput
	}
	return s.mutate(ctx, cmd.CartID, func(cart *domain.Cart) error {
		for i := range cart.Items {
			if cart.Items[i].ID != cmd.ItemID {
				continue
			}
			cart.Items[i].Qty = domain.ClampQuantity(cmd.Quantity)
			return nil
		}
		return ErrCartItemNotFound
	})
}

func (s *cartService) RemoveItem(ctx context.Context, cartID, itemID string) (domain.Cart, error) {
	cartID = strings.TrimSpace(cartID)
	itemID = strings.TrimSpace(itemID)
	if cartID == "" || itemID == "" {
		return domain.Cart{}, ErrCartInvalidInput
	}
	return s.mutate(ctx, cartID, func(cart *domain.Cart) error {
		// Removing an absent line is a no-op.
		filtered := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ID == itemID {
				continue
			}
			filtered = append(filtered, item)
		}
		cart.Items = filtered
		return nil
	})
}

func (s *cartService) ClearCart(ctx context.Context, cartID string) (domain.Cart, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return domain.Cart{}, ErrCartInvalidInput
	}
	return s.mutate(ctx, cartID, func(cart *domain.Cart) error {
		cart.Items = []domain.CartItem{}
		return nil
	})
}

// mutate applies fn under the per-cart lock and persists the result. A cart
// that does not exist yet (or whose stored blob was unreadable) starts empty.
func (s *cartService) mutate(ctx context.Context, cartID string, fn func(*domain.Cart) error) (domain.Cart, error) {
	lock := s.cartLock(cartID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.load(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	if err := fn(&cart); err != nil {
		return domain.Cart{}, err
	}
	cart.UpdatedAt = s.now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = cart.UpdatedAt
	}
	if err := s.store.Save(ctx, cart); err != nil {
		s.log(ctx, "cart.save_failed", map[string]any{"cart_id": cartID, "error": err.Error()})
		return domain.Cart{}, s.translateRepoError(err)
	}
	return cart, nil
}

func (s *cartService) load(ctx context.Context, cartID string) (domain.Cart, error) {
	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		if isRepoNotFound(err) {
			// Absent and corrupt blobs both reset to an empty cart.
			s.log(ctx, "cart.reset_empty", map[string]any{"cart_id": cartID})
			return domain.Cart{ID: cartID, Items: []domain.CartItem{}}, nil
		}
		s.log(ctx, "cart.load_failed", map[string]any{"cart_id": cartID, "error": err.Error()})
		return domain.Cart{}, s.translateRepoError(err)
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return cart, nil
}

func (s *cartService) cartLock(cartID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[cartID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[cartID] = lock
	}
	return lock
}

func (s *cartService) translateRepoError(err error) error {
	if err == nil {
		return nil
	}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		if repoErr.IsNotFound() {
			return ErrCartItemNotFound
		}
	}
	return ErrCartUnavailable
}
