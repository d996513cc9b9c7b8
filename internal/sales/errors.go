package sales

import (
	pkgerrors "github.com/angelmondragon/fuelstation-backend/pkg/errors"
)

const (
	MessageIncompleteForm    = "Please fill in all fields correctly"
	MessageInvalidFuel       = "Invalid fuel selection"
	MessageInsufficientStock = "Insufficient fuel stock"
)

// Rejection reasons used as metric labels and log fields.
const (
	ReasonIncompleteForm    = "incomplete_form"
	ReasonInvalidFuel       = "invalid_fuel"
	ReasonInsufficientStock = "insufficient_stock"
)

func errIncompleteForm(field string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, MessageIncompleteForm).
		WithDetails(map[string]any{"reason": ReasonIncompleteForm, "field": field})
}

func errInvalidFuel() error {
	return pkgerrors.New(pkgerrors.CodeValidation, MessageInvalidFuel).
		WithDetails(map[string]any{"reason": ReasonInvalidFuel, "field": "fuel_id"})
}

func errInsufficientStock() error {
	return pkgerrors.New(pkgerrors.CodeValidation, MessageInsufficientStock).
		WithDetails(map[string]any{"reason": ReasonInsufficientStock, "field": "quantity"})
}

// RejectionReason extracts the reason from a workflow rejection, or "" for any
// other error.
func RejectionReason(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		return ""
	}
	details, ok := typed.Details().(map[string]any)
	if !ok {
		return ""
	}
	reason, _ := details["reason"].(string)
	return reason
}
