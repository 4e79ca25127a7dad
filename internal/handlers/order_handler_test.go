package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/service"
)

type acceptingMailer struct{}

func (acceptingMailer) Send(context.Context, string, string, string) bool { return true }

type brokenProcessor struct{}

func (brokenProcessor) ProcessOrder(context.Context, models.OrderRequest) (*models.OrderConfirmation, error) {
	return nil, errors.New("boom")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newOrderHandler(policy service.Policy) *OrderHandler {
	log := discardLogger()
	svc := service.NewOrderService(policy, service.Dependencies{
		Mailer: acceptingMailer{},
		Logger: log,
	})
	return NewOrderHandler(svc, log)
}

const referenceOrder = `{
	"customerName": "John Doe",
	"email": "john.doe@example.com",
	"items": [
		{"id": 1, "quantity": 2, "price": 19.99},
		{"id": 2, "quantity": 1, "price": 9.99}
	],
	"discountCode": "SAVE10",
	"paymentMethod": "credit_card",
	"cardNumber": "1234567812345678",
	"cardExpiry": "12/25",
	"cardCVC": "123",
	"giftWrap": true
}`

func TestOrderHandler_CreateOrder(t *testing.T) {
	tests := []struct {
		name           string
		policy         service.Policy
		requestBody    string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "successful order",
			policy:         service.LegacyPolicy,
			requestBody:    referenceOrder,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing customer name",
			policy:         service.LegacyPolicy,
			requestBody:    `{"email": "john.doe@example.com", "items": [{"id": 1, "quantity": 1, "price": 1}]}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "Customer name is required.",
		},
		{
			name:           "empty items",
			policy:         service.RefactoredPolicy,
			requestBody:    `{"customerName": "John", "email": "john.doe@example.com", "items": []}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "At least one item is required.",
		},
		{
			name:           "paypal with bad email",
			policy:         service.RefactoredPolicy,
			requestBody:    `{"customerName": "John", "email": "john.doe@example.com", "items": [{"id": 1, "quantity": 1, "price": 1}], "paymentMethod": "paypal", "paypalEmail": "x"}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "Invalid PayPal email.",
		},
		{
			name:           "non-numeric item id",
			policy:         service.LegacyPolicy,
			requestBody:    `{"customerName": "John", "email": "john.doe@example.com", "items": [{"id": "abc", "quantity": 1, "price": 1}]}`,
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body.",
		},
		{
			name:           "invalid JSON",
			policy:         service.LegacyPolicy,
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "Invalid request body.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newOrderHandler(tt.policy)

			req := httptest.NewRequest(http.MethodPost, "/api/order", bytes.NewReader([]byte(tt.requestBody)))
			w := httptest.NewRecorder()

			handler.CreateOrder(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tt.expectedStatus, w.Body.String())
			}

			if tt.expectedStatus == http.StatusOK {
				var confirmation models.OrderConfirmation
				if err := json.NewDecoder(w.Body).Decode(&confirmation); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if confirmation.Status != "success" || confirmation.OrderID == "" {
					t.Errorf("unexpected confirmation %+v", confirmation)
				}
				if confirmation.TotalPrice < 50.962 || confirmation.TotalPrice > 50.964 {
					t.Errorf("TotalPrice = %v, want about 50.963", confirmation.TotalPrice)
				}
				return
			}

			var message string
			if err := json.NewDecoder(w.Body).Decode(&message); err != nil {
				t.Fatalf("failure body is not a JSON string: %v", err)
			}
			if message != tt.expectedError {
				t.Errorf("message = %q, want %q", message, tt.expectedError)
			}
		})
	}
}

func TestOrderHandler_CreateOrder_InternalError(t *testing.T) {
	handler := NewOrderHandler(brokenProcessor{}, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/order", bytes.NewReader([]byte(referenceOrder)))
	w := httptest.NewRecorder()

	handler.CreateOrder(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
