package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// discountCatalog is the read side of the discount code catalog
type discountCatalog interface {
	Lookup(code string) (float64, bool)
	GetStats() map[string]interface{}
}

// DiscountHandler handles HTTP requests for discount code lookups
type DiscountHandler struct {
	catalog discountCatalog
	log     *slog.Logger
}

// NewDiscountHandler creates a new DiscountHandler
func NewDiscountHandler(catalog discountCatalog, log *slog.Logger) *DiscountHandler {
	return &DiscountHandler{
		catalog: catalog,
		log:     log,
	}
}

// GetDiscount handles GET /api/discount/{code}
func (h *DiscountHandler) GetDiscount(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	multiplier, ok := h.catalog.Lookup(code)
	if !ok {
		WriteJSON(w, http.StatusNotFound, map[string]interface{}{
			"valid":   false,
			"code":    code,
			"message": "Discount code not found",
		}, h.log)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"valid":      true,
		"code":       code,
		"multiplier": multiplier,
	}, h.log)
}

// GetStats handles GET /api/discount/stats
func (h *DiscountHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.catalog.GetStats(), h.log)
}
