package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	domain "github.com/heritage-semijoias/api/internal/domain"
	"github.com/heritage-semijoias/api/internal/repositories"
)

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "carts.json")
	ctx := context.Background()

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	cart := domain.Cart{
		ID: "cart-1",
		Items: []domain.CartItem{
			{ID: "anel-solitario", Name: "Anel Solitário", Price: 12990, Qty: 1},
		},
	}
	if err := store.Save(ctx, cart); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := store.SaveDraft(ctx, "cart-1", domain.IdentificationForm{Name: "Ana"}); err != nil {
		t.Fatalf("SaveDraft returned error: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore on existing file returned error: %v", err)
	}

	loaded, err := reopened.Load(ctx, "cart-1")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].ID != "anel-solitario" {
		t.Fatalf("unexpected reloaded cart %+v", loaded)
	}

	draft, err := reopened.LoadDraft(ctx, "cart-1")
	if err != nil {
		t.Fatalf("LoadDraft returned error: %v", err)
	}
	if draft.Name != "Ana" {
		t.Fatalf("unexpected reloaded draft %+v", draft)
	}
}

func TestStoreCorruptFileResetsToEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "carts.json")
	if err := os.WriteFile(path, []byte(`{not valid json`), 0o644); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	_, err = store.Load(context.Background(), "anything")
	var repoErr repositories.RepositoryError
	if !errors.As(err, &repoErr) || !repoErr.IsNotFound() {
		t.Fatalf("expected not found from empty reset, got %v", err)
	}
}

func TestStoreMissingFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(filepath.Join(dir, "never-written.json"))
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	if _, err := store.Load(context.Background(), "cart-1"); err == nil {
		t.Fatal("expected not found on fresh store")
	}
}

func TestStoreDeleteFlushes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "carts.json")
	ctx := context.Background()

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	if err := store.Save(ctx, domain.Cart{ID: "cart-1"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := store.Delete(ctx, "cart-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}
	if _, err := reopened.Load(ctx, "cart-1"); err == nil {
		t.Fatal("expected deleted cart to stay gone after reopen")
	}
}
