package models

import "errors"

var (
	// ErrValidation marks malformed input: negative price/quantity,
	// missing required field, and similar construction-time failures.
	ErrValidation = errors.New("validation failed")

	// ErrIllegalTransition marks an order status change that is not in the
	// allowed-next set for the current status.
	ErrIllegalTransition = errors.New("illegal status transition")
)
