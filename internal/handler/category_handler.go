package handler

import (
	"net/http"

	"github.com/AdamZoda/voiture/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CategoryHandler handles category listing and the guarded mutations.
type CategoryHandler struct {
	service service.CategoryService
	logger  zerolog.Logger
}

// NewCategoryHandler creates a new category handler.
func NewCategoryHandler(service service.CategoryService, logger zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  logger.With().Str("handler", "category").Logger(),
	}
}

// GetAll handles GET /api/categories requests. The product form reads
// its selector options from here: the full category table, unlike the
// gallery facets which only know categories in use.
func (h *CategoryHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

// Create handles POST /api/admin/categories requests. A duplicate name
// comes back as a 409 with its own code so the form can show the
// "already exists" message instead of the generic failure one.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if !decodeJSON(w, r, &req, h.logger) {
		return
	}

	category, err := h.service.Create(r.Context(), req.Name)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, category)
}

// Delete handles DELETE /api/admin/categories/{name} requests.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if err := h.service.Delete(r.Context(), name); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
