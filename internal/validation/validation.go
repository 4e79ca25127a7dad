// Package validation checks the shape of an order submission before pricing.
package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/Lixing-Zhang/kart-challenge/order-processor/internal/models"
)

// numericLiteral accepts decimal and exponent forms with surrounding
// whitespace ("1e2", ".12", " 12"). Hex, inf and nan are not numbers here.
var numericLiteral = regexp.MustCompile(`^[ \t\n\r\v\f]*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?[ \t\n\r\v\f]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("numeric_literal", func(fl validator.FieldLevel) bool {
		return numericLiteral.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ValidateOrderRequest checks the required order fields and returns the
// first failing rule: customer name, then email, then items.
func ValidateOrderRequest(req *models.OrderRequest) error {
	if err := validateCustomerName(req.CustomerName); err != nil {
		return err
	}

	if !IsEmail(req.Email) {
		return models.ErrEmailInvalid
	}

	if len(req.Items) == 0 {
		return models.ErrItemsRequired
	}

	return nil
}

// ValidateItems checks every line item in order and stops at the first bad one
func ValidateItems(items []models.LineItem) error {
	for _, item := range items {
		if err := ValidateItem(item); err != nil {
			return err
		}
	}
	return nil
}

// ValidateItem checks id, quantity and price of a single line item
func ValidateItem(item models.LineItem) error {
	if item.ID == "" {
		return models.ErrItemIDInvalid
	}
	if _, err := item.ID.Float64(); err != nil {
		return models.ErrItemIDInvalid
	}

	// negated so NaN fails too
	if !(item.Quantity > 0) {
		return models.ErrItemQuantityInvalid
	}

	if !(item.Price > 0) {
		return models.ErrItemPriceInvalid
	}

	return nil
}

// IsEmail reports whether s is a syntactically valid email address
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// IsNumeric reports whether s is a numeric string: optionally signed, with an
// optional fraction and exponent, surrounding whitespace allowed
func IsNumeric(s string) bool {
	return validate.Var(s, "required,numeric_literal") == nil
}

func validateCustomerName(name string) error {
	if name == "" {
		return models.ErrCustomerNameRequired
	}
	return nil
}
