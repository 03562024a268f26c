package handler

import (
	"net/http"

	"github.com/AdamZoda/voiture/internal/catalog"
	"github.com/AdamZoda/voiture/internal/model"
	"github.com/AdamZoda/voiture/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// ProductHandler handles the public gallery/detail endpoints and the
// guarded product mutations.
type ProductHandler struct {
	service        service.ProductService
	whatsAppNumber string
	logger         zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, whatsAppNumber string, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service:        service,
		whatsAppNumber: whatsAppNumber,
		logger:         logger.With().Str("handler", "product").Logger(),
	}
}

// GalleryResponse is the shape of the public gallery listing.
// Categories are the filter options derived from the loaded products,
// so a category without products does not appear here.
type GalleryResponse struct {
	Featured   []model.Product `json:"featured"`
	Products   []model.Product `json:"products"`
	Categories []string        `json:"categories"`
}

// DetailResponse is the shape of the public product detail view.
type DetailResponse struct {
	Product  model.Product `json:"product"`
	Price    string        `json:"price_display"`
	OrderURL string        `json:"order_url"`
}

// Gallery handles GET /api/products?search=&category= requests.
func (h *ProductHandler) Gallery(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.GetAll(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	search := r.URL.Query().Get("search")
	category := r.URL.Query().Get("category")

	filtered := catalog.Filter(products, search, category)
	featured, regular := catalog.Partition(filtered)

	writeJSON(w, http.StatusOK, GalleryResponse{
		Featured:   catalog.DisplayFeatured(featured),
		Products:   regular,
		Categories: catalog.Facets(products),
	})
}

// Detail handles GET /api/products/{id} requests. A missing product is
// a plain 404; the client falls back to the gallery either way.
func (h *ProductHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, DetailResponse{
		Product:  *product,
		Price:    catalog.FormatPrice(product.Price),
		OrderURL: catalog.OrderLink(h.whatsAppNumber, *product),
	})
}

// Create handles POST /api/admin/products requests.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input model.ProductInput
	if !decodeJSON(w, r, &input, h.logger) {
		return
	}

	product, err := h.service.Create(r.Context(), input)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// Update handles PUT /api/admin/products/{id} requests.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var input model.ProductInput
	if !decodeJSON(w, r, &input, h.logger) {
		return
	}

	product, err := h.service.Update(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// Delete handles DELETE /api/admin/products/{id} requests.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
