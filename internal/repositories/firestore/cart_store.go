package firestore

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "github.com/heritage-semijoias/api/internal/domain"
	pfirestore "github.com/heritage-semijoias/api/internal/platform/firestore"
	"github.com/heritage-semijoias/api/internal/repositories"
)

const (
	cartCollection  = "carts"
	draftCollection = "checkout_drafts"
)

type cartItemDocument struct {
	ID      string `firestore:"id"`
	Name    string `firestore:"name"`
	Price   int64  `firestore:"price"`
	Image   string `firestore:"image,omitempty"`
	Variant string `firestore:"variant,omitempty"`
	Qty     int    `firestore:"qty"`
}

type cartDocument struct {
	Items     []cartItemDocument `firestore:"items"`
	CreatedAt time.Time          `firestore:"createdAt"`
	UpdatedAt time.Time          `firestore:"updatedAt"`
}

type draftDocument struct {
	Name         string `firestore:"name,omitempty"`
	Email        string `firestore:"email,omitempty"`
	Phone        string `firestore:"phone,omitempty"`
	Document     string `firestore:"document,omitempty"`
	CEP          string `firestore:"cep,omitempty"`
	Street       string `firestore:"street,omitempty"`
	Number       string `firestore:"number,omitempty"`
	Complement   string `firestore:"complement,omitempty"`
	Neighborhood string `firestore:"neighborhood,omitempty"`
	City         string `firestore:"city,omitempty"`
	State        string `firestore:"state,omitempty"`
}

// CartStore persists carts and identification drafts in Firestore.
type CartStore struct {
	carts  *pfirestore.BaseRepository[cartDocument]
	drafts *pfirestore.BaseRepository[draftDocument]
}

var (
	_ repositories.CartStore  = (*CartStore)(nil)
	_ repositories.DraftStore = (*CartStore)(nil)
)

// NewCartStore constructs a Firestore-backed cart store.
func NewCartStore(provider *pfirestore.Provider) (*CartStore, error) {
	if provider == nil {
		return nil, errors.New("cart store requires firestore provider")
	}
	return &CartStore{
		carts:  pfirestore.NewBaseRepository[cartDocument](provider, cartCollection, nil, nil),
		drafts: pfirestore.NewBaseRepository[draftDocument](provider, draftCollection, nil, nil),
	}, nil
}

// Load fetches the cart document and maps it to the domain cart.
func (s *CartStore) Load(ctx context.Context, cartID string) (domain.Cart, error) {
	doc, err := s.carts.Get(ctx, strings.TrimSpace(cartID))
	if err != nil {
		return domain.Cart{}, err
	}

	items := make([]domain.CartItem, 0, len(doc.Data.Items))
	for _, item := range doc.Data.Items {
		items = append(items, domain.CartItem{
			ID:      item.ID,
			Name:    item.Name,
			Price:   item.Price,
			Image:   item.Image,
			Variant: item.Variant,
			Qty:     item.Qty,
		})
	}

	return domain.Cart{
		ID:        doc.ID,
		Items:     items,
		CreatedAt: doc.Data.CreatedAt,
		UpdatedAt: doc.Data.UpdatedAt,
	}, nil
}

// Save upserts the cart document using the cart ID as document identifier.
func (s *CartStore) Save(ctx context.Context, cart domain.Cart) error {
	id := strings.TrimSpace(cart.ID)
	if id == "" {
		return errors.New("cart store: cart id is required")
	}

	now := time.Now().UTC()
	updatedAt := cart.UpdatedAt.UTC()
	if updatedAt.IsZero() {
		updatedAt = now
	}
	createdAt := cart.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = updatedAt
	}

	items := make([]cartItemDocument, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, cartItemDocument{
			ID:      item.ID,
			Name:    item.Name,
			Price:   item.Price,
			Image:   item.Image,
			Variant: item.Variant,
			Qty:     item.Qty,
		})
	}

	_, err := s.carts.Set(ctx, id, cartDocument{
		Items:     items,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	})
	return err
}

// Delete removes the cart document and its draft.
func (s *CartStore) Delete(ctx context.Context, cartID string) error {
	id := strings.TrimSpace(cartID)
	if err := s.carts.Delete(ctx, id); err != nil {
		return err
	}
	return s.drafts.Delete(ctx, id)
}

// LoadDraft fetches the identification draft for the cart.
func (s *CartStore) LoadDraft(ctx context.Context, cartID string) (domain.IdentificationForm, error) {
	doc, err := s.drafts.Get(ctx, strings.TrimSpace(cartID))
	if err != nil {
		return domain.IdentificationForm{}, err
	}

	d := doc.Data
	return domain.IdentificationForm{
		Name:         d.Name,
		Email:        d.Email,
		Phone:        d.Phone,
		Document:     d.Document,
		CEP:          d.CEP,
		Street:       d.Street,
		Number:       d.Number,
		Complement:   d.Complement,
		Neighborhood: d.Neighborhood,
		City:         d.City,
		State:        d.State,
	}, nil
}

// SaveDraft upserts the identification draft keyed by cart ID.
func (s *CartStore) SaveDraft(ctx context.Context, cartID string, form domain.IdentificationForm) error {
	id := strings.TrimSpace(cartID)
	if id == "" {
		return errors.New("cart store: cart id is required")
	}

	_, err := s.drafts.Set(ctx, id, draftDocument{
		Name:         form.Name,
		Email:        form.Email,
		Phone:        form.Phone,
		Document:     form.Document,
		CEP:          form.CEP,
		Street:       form.Street,
		Number:       form.Number,
		Complement:   form.Complement,
		Neighborhood: form.Neighborhood,
		City:         form.City,
		State:        form.State,
	})
	return err
}
