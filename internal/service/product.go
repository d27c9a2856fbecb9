package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ekaracan/vetaris/internal/apperror"
	"github.com/ekaracan/vetaris/internal/model"
	"github.com/ekaracan/vetaris/internal/repository"
)

// DefaultCategory is applied when a product is created without one.
const DefaultCategory = "General"

// ProductService handles business logic for the product catalog.
type ProductService struct {
	repo   repository.ProductRepository
	logger *slog.Logger
}

func NewProductService(repo repository.ProductRepository, logger *slog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

// ProductInput carries the fields accepted when creating a product.
// IsActive is a pointer so "absent" (default true) and "explicitly false"
// can be told apart.
type ProductInput struct {
	Name        string      `json:"name"`
	Price       model.Money `json:"price"`
	Image       string      `json:"image"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Stock       int         `json:"stock"`
	IsActive    *bool       `json:"is_active"`
}

// List returns catalog products. Soft-deleted products are hidden unless
// includeInactive is set.
func (s *ProductService) List(ctx context.Context, includeInactive bool) ([]model.Product, error) {
	products, err := s.repo.ListProducts(ctx, repository.ProductListOptions{
		IncludeInactive: includeInactive,
	})
	if err != nil {
		s.logger.Error("failed to list products", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

// Create validates and persists a new product, applying defaults for
// omitted optional fields: stock 0, category "General", active true.
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperror.ValidationFailed("name", "product name is required")
	}
	if in.Price.IsNegative() {
		return nil, apperror.ValidationFailed("price", "price must not be negative")
	}
	if in.Stock < 0 {
		return nil, apperror.ValidationFailed("stock", "stock must not be negative")
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = DefaultCategory
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	product := &model.Product{
		Name:        name,
		Price:       in.Price,
		Image:       in.Image,
		Description: in.Description,
		Category:    category,
		Stock:       in.Stock,
		IsActive:    isActive,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		s.logger.Error("failed to create product",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating product: %w", err)
	}

	s.logger.Info("product created",
		slog.Int64("id", product.ID),
		slog.String("name", product.Name),
	)

	return product, nil
}

// Update applies a partial update. Only fields present in the patch change;
// an empty patch is a no-op that still returns the current record. The
// patch type itself is the allow-list — nothing outside it can be written.
func (s *ProductService) Update(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperror.ValidationFailed("name", "product name must not be empty")
	}
	if patch.Price != nil && patch.Price.IsNegative() {
		return nil, apperror.ValidationFailed("price", "price must not be negative")
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, apperror.ValidationFailed("stock", "stock must not be negative")
	}

	product, err := s.repo.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	if !patch.IsEmpty() {
		s.logger.Info("product updated", slog.Int64("id", id))
	}

	return product, nil
}

// Deactivate soft-deletes a product. The row stays in place so historical
// order items keep resolving; it just disappears from the default listing.
func (s *ProductService) Deactivate(ctx context.Context, id int64) error {
	inactive := false
	if _, err := s.repo.UpdateProduct(ctx, id, model.ProductPatch{IsActive: &inactive}); err != nil {
		return err
	}
	s.logger.Info("product deactivated", slog.Int64("id", id))
	return nil
}
