package handler

import (
	"log/slog"
	"net/http"

	"github.com/ekaracan/vetaris/internal/auth"
	"github.com/ekaracan/vetaris/internal/model"
	"github.com/ekaracan/vetaris/internal/service"
)

// OrderHandler manages order creation and the customer/admin order views.
type OrderHandler struct {
	orders *service.OrderService
	logger *slog.Logger
}

func NewOrderHandler(orders *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, logger: logger}
}

type createOrderRequest struct {
	Items []service.OrderItemInput `json:"items"`
	Total model.Money              `json:"total"`
}

// HandleCreate records an order for the authenticated caller.
//
// HTTP: POST /api/orders (RequiresSession)
// BODY: {"items":[{"id":1,"name":"A","price":"10","quantity":2}],"total":"20"}
//
// The order and all of its items are persisted atomically.
func (h *OrderHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	order, err := h.orders.Create(r.Context(), identity.UserID, req.Items, req.Total)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"order_id":  order.ID,
		"reference": order.Reference,
	})
}

// HandleListMine returns the caller's own orders with nested items.
//
// HTTP: GET /api/orders (RequiresSession)
func (h *OrderHandler) HandleListMine(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	orders, err := h.orders.ListForUser(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

// HandleListAll returns every order with the buyer's email.
//
// HTTP: GET /api/admin/orders (RequiresAdmin)
func (h *OrderHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateStatus sets an order's fulfilment status.
//
// HTTP: PUT /api/admin/orders/{id}/status (RequiresAdmin)
func (h *OrderHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.orders.UpdateStatus(r.Context(), id, req.Status); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"order_id": id,
		"status":   req.Status,
	})
}
