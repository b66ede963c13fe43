package services

import (
	"slices"

	apperrors "moneymind/internal/errors"
)

// Catalog holds the allowed category and payment method labels. The lists
// come from configuration so deployments can extend them without a code
// change; matching is exact and case sensitive.
type Catalog struct {
	Categories     []string
	PaymentMethods []string
}

// ValidateCategory checks that the label is in the allowed category set.
func (c Catalog) ValidateCategory(category string) error {
	if !slices.Contains(c.Categories, category) {
		return apperrors.ErrUnknownCategory
	}
	return nil
}

// ValidatePaymentMethod checks that the label is in the allowed payment
// method set.
func (c Catalog) ValidatePaymentMethod(method string) error {
	if !slices.Contains(c.PaymentMethods, method) {
		return apperrors.ErrUnknownPaymentMethod
	}
	return nil
}
