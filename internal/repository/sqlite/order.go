package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ekaracan/vetaris/internal/apperror"
	"github.com/ekaracan/vetaris/internal/model"
	"github.com/ekaracan/vetaris/internal/repository"
)

// compile-time check that *DB implements repository.OrderRepository
var _ repository.OrderRepository = (*DB)(nil)

// CreateOrder inserts the order row and all of its item rows inside a single
// transaction. If any item insert fails, the deferred Rollback undoes the
// order insert too — the store never holds an order with zero items.
func (db *DB) CreateOrder(ctx context.Context, order *model.Order) error {
	order.CreatedAt = time.Now().UTC()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning order transaction: %w", err)
	}
	// Rollback after a successful Commit is a no-op.
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO orders (reference, user_id, total_amount, status, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		order.Reference,
		order.UserID,
		order.TotalAmount,
		order.Status,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting order for user %d: %w", order.UserID, err)
	}

	order.ID, err = res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading inserted order id: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		itemRes, err := tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, product_id, product_name, quantity, price_at_purchase)
			 VALUES (?, ?, ?, ?, ?)`,
			item.OrderID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			item.PriceAtPurchase,
		)
		if err != nil {
			return fmt.Errorf("sqlite: inserting item %d of order %d: %w", i, order.ID, err)
		}
		item.ID, err = itemRes.LastInsertId()
		if err != nil {
			return fmt.Errorf("sqlite: reading inserted order item id: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing order %d: %w", order.ID, err)
	}

	return nil
}

// ListOrdersByUser returns the user's orders newest-first with their items
// nested. Items are fetched per order — not the fastest possible shape, but
// order counts per customer are small.
func (db *DB) ListOrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, reference, user_id, total_amount, status, created_at
		 FROM orders
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing orders for user %d: %w", userID, err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Reference, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating orders: %w", err)
	}

	for i := range orders {
		items, err := db.orderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// ListAllOrders returns every order newest-first, joined with the buyer's
// email for the admin view.
func (db *DB) ListAllOrders(ctx context.Context) ([]model.Order, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT o.id, o.reference, o.user_id, u.email, o.total_amount, o.status, o.created_at
		 FROM orders o
		 JOIN users u ON u.id = o.user_id
		 ORDER BY o.created_at DESC, o.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing all orders: %w", err)
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.Reference, &o.UserID, &o.UserEmail, &o.TotalAmount, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating orders: %w", err)
	}

	for i := range orders {
		items, err := db.orderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}

	return orders, nil
}

// UpdateOrderStatus sets the status of an existing order.
func (db *DB) UpdateOrderStatus(ctx context.Context, id int64, status string) error {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE orders SET status = ? WHERE id = ?`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating status of order %d: %w", id, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("order", strconv.FormatInt(id, 10))
	}

	return nil
}

func (db *DB) orderItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, order_id, product_id, product_name, quantity, price_at_purchase
		 FROM order_items
		 WHERE order_id = ?
		 ORDER BY id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing items of order %d: %w", orderID, err)
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.PriceAtPurchase); err != nil {
			return nil, fmt.Errorf("sqlite: scanning order item row: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating order items: %w", err)
	}

	return items, nil
}
