package services

import "errors"

// Rejection classes the HTTP layer maps onto statuses. Bad credentials and
// unknown identity share one error to avoid account enumeration.
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrAccountLocked      = errors.New("account temporarily locked")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrInvalidRole        = errors.New("invalid role")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidLeadStatus  = errors.New("invalid lead status")
	ErrNegativeAmount     = errors.New("financial fields must be non-negative")
	ErrInvalidPeriod      = errors.New("invalid target period")
	ErrAdminNotDeletable  = errors.New("administrator accounts cannot be deleted")
)
