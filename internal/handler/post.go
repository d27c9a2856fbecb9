package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ekaracan/vetaris/internal/model"
	"github.com/ekaracan/vetaris/internal/service"
)

// PostHandler manages the public blog and its admin CRUD.
type PostHandler struct {
	posts  *service.PostService
	logger *slog.Logger
}

func NewPostHandler(posts *service.PostService, logger *slog.Logger) *PostHandler {
	return &PostHandler{posts: posts, logger: logger}
}

// HandleList returns published posts, newest first.
//
// HTTP: GET /api/posts
func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context(), false)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// HandleListAll returns every post, drafts included.
//
// HTTP: GET /api/admin/posts (RequiresAdmin)
func (h *PostHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context(), true)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

// HandleGet returns a single post by numeric ID or slug.
//
// HTTP: GET /api/posts/{idOrSlug}
func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Get(r.Context(), chi.URLParam(r, "idOrSlug"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// HandleCreate publishes a new post.
//
// HTTP: POST /api/posts (RequiresAdmin)
//
// The slug is generated server-side from the title and returned with the
// created record.
func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.PostInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.posts.Create(r.Context(), in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

// HandleUpdate applies a partial update to a post.
//
// HTTP: PUT /api/posts/{id} (RequiresAdmin)
func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var patch model.PostPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.posts.Update(r.Context(), id, patch)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

// HandleDelete removes a post permanently.
//
// HTTP: DELETE /api/posts/{id} (RequiresAdmin)
func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.posts.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
