// Package repository defines the storage interfaces for the application.
//
// Services program against these interfaces, not against a concrete driver.
// The sqlite subpackage provides the real implementation; tests substitute
// in-memory fakes.
package repository

import (
	"context"

	"github.com/ekaracan/vetaris/internal/model"
)

// ProductListOptions filters a product listing. The default (zero value)
// returns active products only.
type ProductListOptions struct {
	IncludeInactive bool
}

// PostListOptions filters a post listing. The default returns published
// posts only.
type PostListOptions struct {
	IncludeUnpublished bool
}

type UserRepository interface {
	// CreateUser inserts a new user. Returns apperror.ErrConflict if the
	// email is already registered.
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	// SetAdmin flips the admin flag. Only cmd/seed calls this; there is no
	// HTTP route that reaches it.
	SetAdmin(ctx context.Context, id int64, isAdmin bool) error
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	// GetSessionByToken returns apperror.ErrUnauthenticated for unknown
	// tokens. Expiry is the caller's concern — the row is returned as stored.
	GetSessionByToken(ctx context.Context, token string) (*model.Session, error)
	// DeleteSession is idempotent: deleting an unknown token is a no-op.
	DeleteSession(ctx context.Context, token string) error
}

type ProductRepository interface {
	ListProducts(ctx context.Context, opts ProductListOptions) ([]model.Product, error)
	GetProductByID(ctx context.Context, id int64) (*model.Product, error)
	CreateProduct(ctx context.Context, product *model.Product) error
	// UpdateProduct applies a partial update and returns the resulting
	// record. Only fields present in the patch are touched.
	UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (*model.Product, error)
}

type OrderRepository interface {
	// CreateOrder inserts the order row and all item rows in one
	// transaction. On any failure the whole unit is rolled back — an order
	// with zero items must never be persisted.
	CreateOrder(ctx context.Context, order *model.Order) error
	// ListOrdersByUser returns the user's orders newest-first, items nested.
	ListOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error)
	// ListAllOrders returns every order newest-first with the buyer's email
	// populated, items nested.
	ListAllOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) error
}

type PostRepository interface {
	ListPosts(ctx context.Context, opts PostListOptions) ([]model.Post, error)
	GetPostByID(ctx context.Context, id int64) (*model.Post, error)
	GetPostBySlug(ctx context.Context, slug string) (*model.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	CreatePost(ctx context.Context, post *model.Post) error
	UpdatePost(ctx context.Context, id int64, patch model.PostPatch) (*model.Post, error)
	DeletePost(ctx context.Context, id int64) error
}
