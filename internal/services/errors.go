package services

import "errors"

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrEmptyOrder         = errors.New("order must contain at least one line")
	ErrInvalidPayment     = errors.New("invalid payment method")
	ErrUnknownProduct     = errors.New("unknown product")
	ErrUnknownModifier    = errors.New("unknown modifier")
	ErrNothingToClose     = errors.New("no sales to close")
	ErrExportFailed       = errors.New("export failed")
	ErrArchiveUnavailable = errors.New("closing archive is not configured")
	ErrDayRolledOver      = errors.New("business day changed, retry")
)
