package models

import "encoding/json"

// PaymentMethod identifies one of the simulated authorization paths
type PaymentMethod string

const (
	PaymentCreditCard   PaymentMethod = "credit_card"
	PaymentPayPal       PaymentMethod = "paypal"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// Supported reports whether m is one of the known payment methods
func (m PaymentMethod) Supported() bool {
	switch m {
	case PaymentCreditCard, PaymentPayPal, PaymentBankTransfer:
		return true
	}
	return false
}

// OrderRequest represents an incoming order submission.
// Unknown JSON fields are ignored.
type OrderRequest struct {
	CustomerName  string        `json:"customerName"`
	Email         string        `json:"email"`
	Items         []LineItem    `json:"items"`
	DiscountCode  string        `json:"discountCode,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`

	PaymentDetails
}

// PaymentDetails holds the method-specific payment fields.
// Only the fields of the selected method are inspected.
type PaymentDetails struct {
	CardNumber    string `json:"cardNumber,omitempty"`
	CardExpiry    string `json:"cardExpiry,omitempty"`
	CardCVC       string `json:"cardCVC,omitempty"`
	PayPalEmail   string `json:"paypalEmail,omitempty"`
	AccountNumber string `json:"accountNumber,omitempty"`
}

// LineItem represents a single product entry in an order.
// ID keeps the raw JSON number so a missing or malformed id stays detectable.
type LineItem struct {
	ID       json.Number `json:"id"`
	Quantity float64     `json:"quantity"`
	Price    float64     `json:"price"`
}

// Amount returns quantity × price
func (i LineItem) Amount() float64 {
	return i.Quantity * i.Price
}

// OrderConfirmation is the success record returned for a processed order
type OrderConfirmation struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	OrderID    string  `json:"orderId"`
	TotalPrice float64 `json:"totalPrice"`
}

const (
	StatusSuccess  = "success"
	MessageSuccess = "Order processed successfully."
)

// NewOrderConfirmation builds the success record for an order
func NewOrderConfirmation(orderID string, total float64) *OrderConfirmation {
	return &OrderConfirmation{
		Status:     StatusSuccess,
		Message:    MessageSuccess,
		OrderID:    orderID,
		TotalPrice: total,
	}
}
