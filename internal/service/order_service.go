package service

import (
	"context"
	"log/slog"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/notify"
	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/payment"
	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/pricing"
	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/validation"
)

// Stage names a step of the order workflow
type Stage string

const (
	StageValidating  Stage = "validating"
	StagePricing     Stage = "pricing"
	StageAuthorizing Stage = "authorizing"
	StageFinalizing  Stage = "finalizing"
)

// StageError reports the stage at which an order failed.
// Its text is the underlying failure message, unchanged.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return e.Err.Error()
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Dependencies are the collaborators of an OrderService. Nil fields get defaults:
// the built-in discount catalog, the payment simulator, a LogMailer and UUIDGenerator.
type Dependencies struct {
	Discounts pricing.DiscountLookup
	Payments  payment.Authorizer
	Mailer    notify.Mailer
	IDs       notify.IDGenerator
	Logger    *slog.Logger
}

// OrderService runs the order workflow: validate, price, authorize, finalize.
// It holds no per-order state and is safe for concurrent use.
type OrderService struct {
	policy   Policy
	pricing  *pricing.Engine
	payments payment.Authorizer
	mailer   notify.Mailer
	ids      notify.IDGenerator
	log      *slog.Logger
}

// NewOrderService creates a new order service
func NewOrderService(policy Policy, deps Dependencies) *OrderService {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Payments == nil {
		deps.Payments = payment.NewSimulator(deps.Logger)
	}
	if deps.Mailer == nil {
		deps.Mailer = notify.NewLogMailer(deps.Logger)
	}
	if deps.IDs == nil {
		deps.IDs = notify.UUIDGenerator{}
	}

	return &OrderService{
		policy: policy,
		pricing: pricing.NewEngine(deps.Discounts, pricing.Options{
			UnknownDiscount: policy.UnknownDiscount,
			ValidateItems:   policy.ItemValidation == ItemsInline,
		}),
		payments: deps.Payments,
		mailer:   deps.Mailer,
		ids:      deps.IDs,
		log:      deps.Logger,
	}
}

// Policy returns the policy the service was built with
func (s *OrderService) Policy() Policy {
	return s.policy
}

// ProcessOrder validates, prices, authorizes and confirms an order.
// Every business failure is a *StageError wrapping a models.Failure.
func (s *OrderService) ProcessOrder(ctx context.Context, req models.OrderRequest) (*models.OrderConfirmation, error) {
	log := s.log.With("request_id", chimiddleware.GetReqID(ctx))

	log.DebugContext(ctx, "order stage", "stage", StageValidating)
	if err := s.validate(&req); err != nil {
		return nil, s.fail(ctx, log, StageValidating, err)
	}

	log.DebugContext(ctx, "order stage", "stage", StagePricing)
	total, err := s.pricing.ComputeTotal(req.Items, req.DiscountCode)
	if err != nil {
		return nil, s.fail(ctx, log, StagePricing, err)
	}

	log.DebugContext(ctx, "order stage", "stage", StageAuthorizing, "total", total)
	if err := s.payments.Authorize(ctx, req.PaymentMethod, req.PaymentDetails, total); err != nil {
		if _, ok := models.AsFailure(err); !ok {
			log.ErrorContext(ctx, "payment authorizer error", "error", err)
			err = models.ErrPaymentFailed
		}
		return nil, s.fail(ctx, log, StageAuthorizing, err)
	}

	log.DebugContext(ctx, "order stage", "stage", StageFinalizing)
	orderID := s.ids.NewOrderID()
	if !s.mailer.Send(ctx, req.Email, notify.ConfirmationSubject, notify.ConfirmationBody(orderID)) {
		// payment stays authorized; there is no compensation step
		log.WarnContext(ctx, "confirmation not sent after payment authorization",
			"order_id", orderID,
			"total", total,
		)
		return nil, s.fail(ctx, log, StageFinalizing, models.ErrConfirmationNotSent)
	}

	log.InfoContext(ctx, "order processed",
		"order_id", orderID,
		"total", total,
		"items_count", len(req.Items),
		"payment_method", string(req.PaymentMethod),
	)
	return models.NewOrderConfirmation(orderID, total), nil
}

func (s *OrderService) validate(req *models.OrderRequest) error {
	if err := validation.ValidateOrderRequest(req); err != nil {
		return err
	}
	if s.policy.ItemValidation == ItemsPrepass {
		return validation.ValidateItems(req.Items)
	}
	return nil
}

func (s *OrderService) fail(ctx context.Context, log *slog.Logger, stage Stage, err error) error {
	log.InfoContext(ctx, "order rejected", "stage", stage, "reason", err.Error())
	return &StageError{Stage: stage, Err: err}
}
