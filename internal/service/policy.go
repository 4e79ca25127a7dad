package service

import (
	"fmt"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/pricing"
)

// ItemValidation selects when line items are checked
type ItemValidation string

const (
	// ItemsInline checks each item while the subtotal is summed
	ItemsInline ItemValidation = "inline"
	// ItemsPrepass checks all items during validation, before pricing
	ItemsPrepass ItemValidation = "prepass"
	// ItemsOff skips item checks entirely
	ItemsOff ItemValidation = "off"
)

// Policy holds the switches on which the legacy and refactored workflows differ
type Policy struct {
	ItemValidation  ItemValidation
	UnknownDiscount pricing.DiscountPolicy
}

var (
	// LegacyPolicy checks items while summing and rejects unknown discount codes
	LegacyPolicy = Policy{
		ItemValidation:  ItemsInline,
		UnknownDiscount: pricing.DiscountReject,
	}

	// RefactoredPolicy never checks items and ignores unknown discount codes
	RefactoredPolicy = Policy{
		ItemValidation:  ItemsOff,
		UnknownDiscount: pricing.DiscountIgnore,
	}
)

// PolicyByName returns the preset called "legacy" or "refactored"
func PolicyByName(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "legacy":
		return LegacyPolicy, nil
	case "refactored":
		return RefactoredPolicy, nil
	}
	return Policy{}, fmt.Errorf("unknown order policy: %q (must be legacy or refactored)", name)
}

// ParseItemValidation converts a config value into an ItemValidation
func ParseItemValidation(s string) (ItemValidation, error) {
	switch v := ItemValidation(strings.ToLower(strings.TrimSpace(s))); v {
	case ItemsInline, ItemsPrepass, ItemsOff:
		return v, nil
	}
	return "", fmt.Errorf("invalid item validation: %q (must be inline, prepass or off)", s)
}

// Validate checks that both switches hold known values
func (p Policy) Validate() error {
	if _, err := ParseItemValidation(string(p.ItemValidation)); err != nil {
		return err
	}
	if _, err := pricing.ParseDiscountPolicy(string(p.UnknownDiscount)); err != nil {
		return err
	}
	return nil
}
