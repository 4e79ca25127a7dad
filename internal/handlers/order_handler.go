package handlers

import (
	"context"
	"log/slog"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/models"
)

const (
	msgInvalidBody    = "Invalid request body."
	msgInternalServer = "Internal server error."
)

// orderProcessor runs the order workflow
type orderProcessor interface {
	ProcessOrder(ctx context.Context, req models.OrderRequest) (*models.OrderConfirmation, error)
}

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orders orderProcessor
	log    *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders orderProcessor, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		log:    log,
	}
}

// CreateOrder handles POST /api/order
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	log := h.log.With("request_id", chimiddleware.GetReqID(r.Context()))

	var req models.OrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		log.Warn("failed to decode order request", "error", err)
		WriteFailure(w, http.StatusBadRequest, msgInvalidBody, log)
		return
	}

	confirmation, err := h.orders.ProcessOrder(r.Context(), req)
	if err != nil {
		if failure, ok := models.AsFailure(err); ok {
			WriteFailure(w, http.StatusUnprocessableEntity, failure.Error(), log)
			return
		}

		log.Error("failed to process order", "error", err)
		WriteFailure(w, http.StatusInternalServerError, msgInternalServer, log)
		return
	}

	WriteJSON(w, http.StatusOK, confirmation, log)
}
