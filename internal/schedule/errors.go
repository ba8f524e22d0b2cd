package schedule

import "errors"

var (
	// ErrInvalidInstallmentCount is returned when an installment split is
	// requested with fewer than MinInstallments or more than MaxInstallments
	// parts.
	ErrInvalidInstallmentCount = errors.New("invalid installment count")

	// ErrInstallmentTooSmall is returned when the total is too small to give
	// every installment at least one cent.
	ErrInstallmentTooSmall = errors.New("installment amount rounds to zero")
)
