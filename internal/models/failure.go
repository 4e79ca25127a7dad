package models

import "errors"

// Failure is a business-rule rejection. Its text is returned to callers verbatim.
type Failure string

func (f Failure) Error() string {
	return string(f)
}

const (
	ErrCustomerNameRequired Failure = "Customer name is required."
	ErrEmailInvalid         Failure = "A valid email is required."
	ErrItemsRequired        Failure = "At least one item is required."

	ErrItemIDInvalid       Failure = "Item ID must be a number."
	ErrItemQuantityInvalid Failure = "Item quantity must be a positive number."
	ErrItemPriceInvalid    Failure = "Item price must be a positive number."

	ErrDiscountCodeInvalid Failure = "Invalid discount code."

	ErrPaymentMethodInvalid Failure = "Invalid payment method."
	ErrCardNumberInvalid    Failure = "Invalid credit card number."
	ErrCardExpiryInvalid    Failure = "Invalid card expiry date."
	ErrCardCVCInvalid       Failure = "Invalid card CVC."
	ErrPayPalEmailInvalid   Failure = "Invalid PayPal email."
	ErrAccountNumberInvalid Failure = "Invalid bank account number."
	ErrPaymentFailed        Failure = "Payment processing failed."

	ErrConfirmationNotSent Failure = "Failed to send confirmation email."
)

// AsFailure extracts the Failure carried by err, if any
func AsFailure(err error) (Failure, bool) {
	var f Failure
	if errors.As(err, &f) {
		return f, true
	}
	return "", false
}
