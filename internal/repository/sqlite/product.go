package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ekaracan/vetaris/internal/apperror"
	"github.com/ekaracan/vetaris/internal/model"
	"github.com/ekaracan/vetaris/internal/repository"
)

// compile-time check that *DB implements repository.ProductRepository
var _ repository.ProductRepository = (*DB)(nil)

const productColumns = `id, name, price, image, description, category, stock, is_active, created_at`

func scanProduct(row interface{ Scan(...any) error }) (*model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.Image, &p.Description,
		&p.Category, &p.Stock, &p.IsActive, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListProducts returns products in insertion order. By default only active
// products are visible; soft-deleted rows appear only when the caller asks
// for inactive ones too.
func (db *DB) ListProducts(ctx context.Context, opts repository.ProductListOptions) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY id`
	if !opts.IncludeInactive {
		query = `SELECT ` + productColumns + ` FROM products WHERE is_active = 1 ORDER BY id`
	}

	rows, err := db.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing products: %w", err)
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning product row: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating products: %w", err)
	}

	return products, nil
}

// GetProductByID retrieves a single product, active or not. Soft-deleted
// products stay reachable here so order history can still resolve them.
func (db *DB) GetProductByID(ctx context.Context, id int64) (*model.Product, error) {
	p, err := scanProduct(db.conn.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id,
	))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("product", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqlite: getting product %d: %w", id, err)
	}
	return p, nil
}

// CreateProduct inserts a new product and fills in the generated ID.
func (db *DB) CreateProduct(ctx context.Context, product *model.Product) error {
	product.CreatedAt = time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO products (name, price, image, description, category, stock, is_active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		product.Name,
		product.Price,
		product.Image,
		product.Description,
		product.Category,
		product.Stock,
		product.IsActive,
		product.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting product %s: %w", product.Name, err)
	}

	product.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading inserted product id: %w", err)
	}

	return nil
}

// UpdateProduct applies a partial update. Each assignment below is guarded
// by a nil check on the patch field; the column names are compile-time
// constants — caller input never reaches the SQL text, only its values do.
func (db *DB) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error) {
	set := make([]string, 0, 7)
	args := make([]any, 0, 8)

	if patch.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Price != nil {
		set = append(set, "price = ?")
		args = append(args, *patch.Price)
	}
	if patch.Image != nil {
		set = append(set, "image = ?")
		args = append(args, *patch.Image)
	}
	if patch.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *patch.Description)
	}
	if patch.Category != nil {
		set = append(set, "category = ?")
		args = append(args, *patch.Category)
	}
	if patch.Stock != nil {
		set = append(set, "stock = ?")
		args = append(args, *patch.Stock)
	}
	if patch.IsActive != nil {
		set = append(set, "is_active = ?")
		args = append(args, *patch.IsActive)
	}

	if len(set) > 0 {
		args = append(args, id)
		res, err := db.conn.ExecContext(ctx,
			`UPDATE products SET `+strings.Join(set, ", ")+` WHERE id = ?`, args...,
		)
		if err != nil {
			return nil, fmt.Errorf("sqlite: updating product %d: %w", id, err)
		}
		rowsAffected, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("sqlite: checking rows affected: %w", err)
		}
		if rowsAffected == 0 {
			return nil, apperror.NotFound("product", strconv.FormatInt(id, 10))
		}
	}

	// Return the record as persisted — also covers the empty-patch no-op,
	// which must still report NotFound for unknown ids.
	return db.GetProductByID(ctx, id)
}
