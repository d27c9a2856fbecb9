package model

import "time"

// Order is a recorded purchase. An order and its items are created as one
// atomic unit — an order with zero items never exists in the store.
//
// UserEmail is only populated by the admin listing (joined from users);
// omitempty keeps it out of the customer-facing JSON.
type Order struct {
	ID          int64       `json:"id"`
	Reference   string      `json:"reference"`
	UserID      int64       `json:"user_id"`
	UserEmail   string      `json:"user_email,omitempty"`
	TotalAmount Money       `json:"total_amount"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	Items       []OrderItem `json:"items"`
}

// OrderItem is a line on an order. ProductName and PriceAtPurchase are
// denormalized snapshots taken at purchase time: editing the product later
// must not rewrite order history.
type OrderItem struct {
	ID              int64  `json:"id"`
	OrderID         int64  `json:"order_id"`
	ProductID       int64  `json:"product_id"`
	ProductName     string `json:"product_name"`
	Quantity        int    `json:"quantity"`
	PriceAtPurchase Money  `json:"price_at_purchase"`
}

// StatusPreparing is the status every new order starts in. Status is
// otherwise a free-form string set by admins.
const StatusPreparing = "Preparing"
