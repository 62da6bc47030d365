package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/heritage-semijoias/api/internal/domain"
	"github.com/heritage-semijoias/api/internal/repositories"
)

const (
	cartKeyPrefix  = "cart:"
	draftKeyPrefix = "cart:draft:"

	defaultTTL = 30 * 24 * time.Hour
)

// Store persists carts and identification drafts as JSON blobs in Redis with
// a sliding expiry. An unreadable blob is treated as absent.
type Store struct {
	client redis.UniversalClient
	ttl    time.Duration
}

var (
	_ repositories.CartStore  = (*Store)(nil)
	_ repositories.DraftStore = (*Store)(nil)
)

// NewStore wraps the Redis client. A non-positive ttl falls back to 30 days.
func NewStore(client redis.UniversalClient, ttl time.Duration) (*Store, error) {
	if client == nil {
		return nil, errors.New("redis store: client is required")
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Store{client: client, ttl: ttl}, nil
}

// Ping verifies backend connectivity, used by readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Load fetches and decodes the cart blob.
func (s *Store) Load(ctx context.Context, cartID string) (domain.Cart, error) {
	raw, err := s.client.Get(ctx, cartKeyPrefix+strings.TrimSpace(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, repositories.NewNotFoundError("redis.carts.load")
	}
	if err != nil {
		return domain.Cart{}, repositories.NewUnavailableError("redis.carts.load", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(raw, &cart); err != nil {
		// Corrupt blob resolves to an empty cart rather than a hard failure.
		return domain.Cart{}, repositories.NewNotFoundError("redis.carts.load")
	}
	return cart, nil
}

// Save encodes the cart and stores it with the configured expiry.
func (s *Store) Save(ctx context.Context, cart domain.Cart) error {
	id := strings.TrimSpace(cart.ID)
	if id == "" {
		return repositories.NewNotFoundError("redis.carts.save")
	}

	raw, err := json.Marshal(cart)
	if err != nil {
		return repositories.NewUnavailableError("redis.carts.save", err)
	}
	if err := s.client.Set(ctx, cartKeyPrefix+id, raw, s.ttl).Err(); err != nil {
		return repositories.NewUnavailableError("redis.carts.save", err)
	}
	return nil
}

// Delete removes the cart and its draft.
func (s *Store) Delete(ctx context.Context, cartID string) error {
	id := strings.TrimSpace(cartID)
	if err := s.client.Del(ctx, cartKeyPrefix+id, draftKeyPrefix+id).Err(); err != nil {
		return repositories.NewUnavailableError("redis.carts.delete", err)
	}
	return nil
}

// LoadDraft fetches and decodes the identification draft blob.
func (s *Store) LoadDraft(ctx context.Context, cartID string) (domain.IdentificationForm, error) {
	raw, err := s.client.Get(ctx, draftKeyPrefix+strings.TrimSpace(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.IdentificationForm{}, repositories.NewNotFoundError("redis.drafts.load")
	}
	if err != nil {
		return domain.IdentificationForm{}, repositories.NewUnavailableError("redis.drafts.load", err)
	}

	var form domain.IdentificationForm
	if err := json.Unmarshal(raw, &form); err != nil {
		return domain.IdentificationForm{}, repositories.NewNotFoundError("redis.drafts.load")
	}
	return form, nil
}

// SaveDraft encodes the draft and stores it with the configured expiry.
func (s *Store) SaveDraft(ctx context.Context, cartID string, form domain.IdentificationForm) error {
	id := strings.TrimSpace(cartID)
	if id == "" {
		return repositories.NewNotFoundError("redis.drafts.save")
	}

	raw, err := json.Marshal(form)
	if err != nil {
		return repositories.NewUnavailableError("redis.drafts.save", err)
	}
	if err := s.client.Set(ctx, draftKeyPrefix+id, raw, s.ttl).Err(); err != nil {
		return repositories.NewUnavailableError("redis.drafts.save", err)
	}
	return nil
}
