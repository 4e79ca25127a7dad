// Package payment simulates payment authorization. No external gateway is
// contacted: an authorization succeeds whenever the method-specific fields
// are well formed.
package payment

import (
	"context"
	"log/slog"
	"regexp"

	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/validation"
)

const (
	cardNumberLength = 16
	cardCVCLength    = 3
)

var cardExpiryPattern = regexp.MustCompile(`^\d{2}/\d{2}$`)

// Authorizer authorizes a charge of total using the given method
type Authorizer interface {
	Authorize(ctx context.Context, method models.PaymentMethod, details models.PaymentDetails, total float64) error
}

// Simulator is an Authorizer that only checks field shape
type Simulator struct {
	log *slog.Logger
}

// NewSimulator creates a payment simulator. A nil logger uses slog.Default().
func NewSimulator(log *slog.Logger) *Simulator {
	if log == nil {
		log = slog.Default()
	}
	return &Simulator{log: log}
}

// Authorize validates the method and its fields. The method is checked
// before any method-specific field.
func (s *Simulator) Authorize(ctx context.Context, method models.PaymentMethod, details models.PaymentDetails, total float64) error {
	if !method.Supported() {
		return models.ErrPaymentMethodInvalid
	}

	var err error
	switch method {
	case models.PaymentCreditCard:
		err = authorizeCreditCard(details)
	case models.PaymentPayPal:
		err = authorizePayPal(details)
	case models.PaymentBankTransfer:
		err = authorizeBankTransfer(details)
	default:
		return models.ErrPaymentFailed
	}
	if err != nil {
		return err
	}

	s.log.DebugContext(ctx, "payment authorized",
		"method", string(method),
		"amount", total,
	)
	return nil
}

// authorizeCreditCard only checks the card number length, not its digits
func authorizeCreditCard(d models.PaymentDetails) error {
	if len(d.CardNumber) != cardNumberLength {
		return models.ErrCardNumberInvalid
	}
	// no calendar check on the expiry
	if !cardExpiryPattern.MatchString(d.CardExpiry) {
		return models.ErrCardExpiryInvalid
	}
	if !validation.IsNumeric(d.CardCVC) || len(d.CardCVC) != cardCVCLength {
		return models.ErrCardCVCInvalid
	}
	return nil
}

func authorizePayPal(d models.PaymentDetails) error {
	if !validation.IsEmail(d.PayPalEmail) {
		return models.ErrPayPalEmailInvalid
	}
	return nil
}

func authorizeBankTransfer(d models.PaymentDetails) error {
	if !validation.IsNumeric(d.AccountNumber) {
		return models.ErrAccountNumberInvalid
	}
	return nil
}
