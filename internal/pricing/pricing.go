// Package pricing computes order totals: line item subtotal, discount code
// and shipping surcharge, in that order. Amounts are plain float64 with no
// rounding applied.
package pricing

import (
	"fmt"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/coupon"
	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/models"
	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/validation"
)

// DiscountPolicy decides what happens to a discount code the catalog does not know
type DiscountPolicy string

const (
	// DiscountReject fails the order with models.ErrDiscountCodeInvalid
	DiscountReject DiscountPolicy = "reject"
	// DiscountIgnore prices the order as if no code was given
	DiscountIgnore DiscountPolicy = "ignore"
)

// ParseDiscountPolicy converts a config value into a DiscountPolicy
func ParseDiscountPolicy(s string) (DiscountPolicy, error) {
	switch p := DiscountPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case DiscountReject, DiscountIgnore:
		return p, nil
	}
	return "", fmt.Errorf("invalid discount policy: %q (must be reject or ignore)", s)
}

// DiscountLookup resolves a discount code to a price multiplier
type DiscountLookup interface {
	Lookup(code string) (float64, bool)
}

// ShippingTier adds Cost when the discounted total is strictly below Below
type ShippingTier struct {
	Below float64
	Cost  float64
}

// ShippingTiers are checked in order; totals at or above the last bound ship free
var ShippingTiers = []ShippingTier{
	{Below: 50, Cost: 5.99},
	{Below: 100, Cost: 3.99},
}

// Options configures an Engine
type Options struct {
	UnknownDiscount DiscountPolicy
	// ValidateItems checks each line item while summing
	ValidateItems bool
}

// Engine computes order totals
type Engine struct {
	discounts DiscountLookup
	opts      Options
}

// NewEngine creates a pricing engine. A nil lookup uses coupon.NewCatalog().
// An empty UnknownDiscount defaults to DiscountReject.
func NewEngine(discounts DiscountLookup, opts Options) *Engine {
	if discounts == nil {
		discounts = coupon.NewCatalog()
	}
	if opts.UnknownDiscount == "" {
		opts.UnknownDiscount = DiscountReject
	}
	return &Engine{
		discounts: discounts,
		opts:      opts,
	}
}

// ComputeTotal returns subtotal, discounted, plus shipping
func (e *Engine) ComputeTotal(items []models.LineItem, discountCode string) (float64, error) {
	total, err := e.Subtotal(items)
	if err != nil {
		return 0, err
	}

	total, err = e.ApplyDiscount(total, discountCode)
	if err != nil {
		return 0, err
	}

	return ApplyShipping(total), nil
}

// Subtotal sums quantity × price over items
func (e *Engine) Subtotal(items []models.LineItem) (float64, error) {
	var total float64
	for _, item := range items {
		if e.opts.ValidateItems {
			if err := validation.ValidateItem(item); err != nil {
				return 0, err
			}
		}
		total += item.Amount()
	}
	return total, nil
}

// ApplyDiscount multiplies total by the code's rate. An empty code is a no-op.
func (e *Engine) ApplyDiscount(total float64, code string) (float64, error) {
	if code == "" {
		return total, nil
	}

	rate, ok := e.discounts.Lookup(code)
	if !ok {
		if e.opts.UnknownDiscount == DiscountIgnore {
			return total, nil
		}
		return 0, models.ErrDiscountCodeInvalid
	}

	return total * rate, nil
}

// ShippingCost returns the surcharge for a discounted total
func ShippingCost(total float64) float64 {
	for _, tier := range ShippingTiers {
		if total < tier.Below {
			return tier.Cost
		}
	}
	return 0
}

// ApplyShipping adds the shipping surcharge to total
func ApplyShipping(total float64) float64 {
	return total + ShippingCost(total)
}
