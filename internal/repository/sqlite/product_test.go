package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ekaracan/vetaris/internal/apperror"
	"github.com/ekaracan/vetaris/internal/model"
	"github.com/ekaracan/vetaris/internal/repository"
)

// money builds a Money amount for test fixtures.
func money(s string) model.Money {
	return model.MoneyFromDecimal(decimal.RequireFromString(s))
}

func createTestProduct(t *testing.T, db *DB, name, price string, active bool) *model.Product {
	t.Helper()
	product := &model.Product{
		Name:     name,
		Price:    money(price),
		Category: "General",
		IsActive: active,
	}
	if err := db.CreateProduct(context.Background(), product); err != nil {
		t.Fatalf("failed to create test product: %v", err)
	}
	return product
}

// =========================================================================
// Create / Get TESTS
// =========================================================================

func TestCreateProduct(t *testing.T) {
	db := newTestDB(t)

	product := createTestProduct(t, db, "Walnut Cutting Board", "149.90", true)

	if product.ID == 0 {
		t.Error("CreateProduct() did not set product.ID")
	}
	if product.CreatedAt.IsZero() {
		t.Error("CreateProduct() did not set product.CreatedAt")
	}

	got, err := db.GetProductByID(context.Background(), product.ID)
	if err != nil {
		t.Fatalf("GetProductByID() error = %v", err)
	}
	// Prices are stored as TEXT so the decimal must round-trip exactly.
	if !got.Price.Equal(decimal.RequireFromString("149.90")) {
		t.Errorf("GetProductByID() price = %s, want 149.90", got.Price)
	}
}

func TestGetProductByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetProductByID(context.Background(), 404)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetProductByID(unknown) error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// List TESTS
// =========================================================================

func TestListProducts_ActiveOnlyByDefault(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	createTestProduct(t, db, "Visible", "10", true)
	hidden := createTestProduct(t, db, "Hidden", "20", false)

	active, err := db.ListProducts(ctx, repository.ProductListOptions{})
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(active) != 1 || active[0].Name != "Visible" {
		t.Errorf("default ListProducts() = %+v, want only the active product", active)
	}

	all, err := db.ListProducts(ctx, repository.ProductListOptions{IncludeInactive: true})
	if err != nil {
		t.Fatalf("ListProducts(IncludeInactive) error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListProducts(IncludeInactive) returned %d products, want 2", len(all))
	}

	// Inactive products stay reachable by ID for order history.
	if _, err := db.GetProductByID(ctx, hidden.ID); err != nil {
		t.Errorf("GetProductByID(inactive) error = %v, want nil", err)
	}
}

func TestListProducts_InsertionOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := createTestProduct(t, db, "First", "1", true)
	second := createTestProduct(t, db, "Second", "2", true)

	products, err := db.ListProducts(ctx, repository.ProductListOptions{})
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(products) != 2 || products[0].ID != first.ID || products[1].ID != second.ID {
		t.Errorf("ListProducts() order = %+v, want insertion order", products)
	}
}

// =========================================================================
// Update TESTS
// =========================================================================

func TestUpdateProduct_PartialPatch(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	product := createTestProduct(t, db, "Olive Oil Soap", "25.00", true)

	newPrice := money("27.50")
	newStock := 40
	updated, err := db.UpdateProduct(ctx, product.ID, model.ProductPatch{
		Price: &newPrice,
		Stock: &newStock,
	})
	if err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}

	if !updated.Price.Equal(newPrice.Decimal) {
		t.Errorf("UpdateProduct() price = %s, want %s", updated.Price, newPrice)
	}
	if updated.Stock != 40 {
		t.Errorf("UpdateProduct() stock = %d, want 40", updated.Stock)
	}
	// Fields outside the patch stay put.
	if updated.Name != "Olive Oil Soap" {
		t.Errorf("UpdateProduct() name = %q, want unchanged", updated.Name)
	}
}

func TestUpdateProduct_EmptyPatchIsNoOp(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	product := createTestProduct(t, db, "Unchanged", "5", true)

	got, err := db.UpdateProduct(ctx, product.ID, model.ProductPatch{})
	if err != nil {
		t.Fatalf("UpdateProduct(empty) error = %v", err)
	}
	if got.Name != "Unchanged" || !got.Price.Equal(product.Price.Decimal) {
		t.Errorf("UpdateProduct(empty) changed the record: %+v", got)
	}

	// An empty patch on an unknown id must still be NotFound.
	_, err = db.UpdateProduct(ctx, 9999, model.ProductPatch{})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateProduct(empty, unknown id) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateProduct_UnknownID(t *testing.T) {
	db := newTestDB(t)

	name := "Renamed"
	_, err := db.UpdateProduct(context.Background(), 9999, model.ProductPatch{Name: &name})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateProduct(unknown id) error = %v, want ErrNotFound", err)
	}
}

func TestUpdateProduct_SoftDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	product := createTestProduct(t, db, "Retired", "9.90", true)

	inactive := false
	if _, err := db.UpdateProduct(ctx, product.ID, model.ProductPatch{IsActive: &inactive}); err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}

	active, err := db.ListProducts(ctx, repository.ProductListOptions{})
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(active) != 0 {
		t.Errorf("default ListProducts() after soft delete = %d products, want 0", len(active))
	}
}
