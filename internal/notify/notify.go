package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

const (
	orderIDPrefix       = "order_"
	ConfirmationSubject = "Order Confirmation"
)

// Mailer sends a message and reports whether it was accepted
type Mailer interface {
	Send(ctx context.Context, address, subject, body string) bool
}

// IDGenerator produces order identifiers
type IDGenerator interface {
	NewOrderID() string
}

// ConfirmationBody returns the confirmation email text for an order
func ConfirmationBody(orderID string) string {
	return fmt.Sprintf("Thank you for your order! Your order ID is %s", orderID)
}

// LogMailer records messages in the log instead of delivering them
type LogMailer struct {
	log *slog.Logger
}

// NewLogMailer creates a LogMailer. A nil logger uses slog.Default().
func NewLogMailer(log *slog.Logger) *LogMailer {
	if log == nil {
		log = slog.Default()
	}
	return &LogMailer{log: log}
}

// Send logs the message and always reports success
func (m *LogMailer) Send(ctx context.Context, address, subject, body string) bool {
	m.log.InfoContext(ctx, "confirmation email sent",
		"to", address,
		"subject", subject,
		"body", body,
	)
	return true
}

// UUIDGenerator builds ids from time-ordered UUIDv7 values, e.g.
// order_0192f3a1c2b47d3e9a0b1c2d3e4f5a6b
type UUIDGenerator struct{}

// NewOrderID returns a new collision-resistant order id
func (UUIDGenerator) NewOrderID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// v7 only fails when the random source does
		id = uuid.New()
	}
	return orderIDPrefix + strings.ReplaceAll(id.String(), "-", "")
}
