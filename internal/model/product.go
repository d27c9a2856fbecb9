package model

import "time"

// Product is a catalog entry.
//
// Price uses Money (shopspring/decimal with fixed scale) rather than float64:
// currency must survive storage and JSON round-trips without binary-float
// rounding, and it marshals to a JSON string ("49.90") with both fraction
// digits intact. The sqlite layer stores it as TEXT.
//
// Products are soft-deleted (IsActive=false) so historical order items can
// keep referencing them.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       Money     `json:"price"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductPatch is a partial update for a product. A nil field means "leave it
// alone"; a non-nil field means "set it to this value". The fields listed here
// are the complete allow-list of what a caller can mutate — there is no path
// from a patch to any column outside the products table.
type ProductPatch struct {
	Name        *string `json:"name"`
	Price       *Money  `json:"price"`
	Image       *string `json:"image"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Stock       *int    `json:"stock"`
	IsActive    *bool   `json:"is_active"`
}

// IsEmpty reports whether the patch names no fields at all.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Image == nil &&
		p.Description == nil && p.Category == nil && p.Stock == nil && p.IsActive == nil
}
