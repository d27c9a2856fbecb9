package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ekaracan/vetaris/internal/apperror"
	"github.com/ekaracan/vetaris/internal/model"
	"github.com/ekaracan/vetaris/internal/service"
)

// ProductHandler manages CRUD operations for catalog products.
type ProductHandler struct {
	products *service.ProductService
	logger   *slog.Logger
}

func NewProductHandler(products *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

// HandleList returns active catalog products.
//
// HTTP: GET /api/products
//
// Soft-deleted products never appear here — the public listing must not
// reveal what was removed from the catalog.
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), false)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// HandleListAll returns every product, soft-deleted rows included — the
// admin catalog page needs to see what it can restore.
//
// HTTP: GET /api/admin/products (RequiresAdmin)
func (h *ProductHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context(), true)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// HandleCreate adds a product to the catalog.
//
// HTTP: POST /api/products (RequiresAdmin)
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.ProductInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.products.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// HandleUpdate applies a partial update to a product.
//
// HTTP: PUT /api/products/{id} (RequiresAdmin)
//
// Only the fields present in the body change; an empty body {} is a no-op
// that returns the current record.
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var patch model.ProductPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.products.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// HandleDelete soft-deletes a product.
//
// HTTP: DELETE /api/products/{id} (RequiresAdmin)
//
// The row is kept (is_active=false) so order history stays intact.
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.products.Deactivate(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID extracts the numeric {id} path parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperror.ValidationFailed("id", "id must be an integer")
	}
	return id, nil
}
