package validators

import (
	"errors"
	"fmt"
)

// ErrValidation is the common parent of every validation failure. The
// specific reason is wrapped next to it, so both errors.Is(err,
// ErrValidation) and errors.Is(err, ErrEmptyDescription) hold.
var ErrValidation = errors.New("validation error")

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyDescription    = errors.New("description is required")
	ErrNonPositiveAmount   = errors.New("amount must be greater than zero")
	ErrSubCentAmount       = errors.New("amount must not have more than two decimal places")
	ErrEmptyCategory       = errors.New("category is required")
	ErrInvalidKind         = errors.New("kind must be income or expense")
	ErrMissingPaymentDate  = errors.New("payment date is required")
	ErrInvalidMode         = errors.New("mode must be single, installments or recurring")
	ErrInvalidInstallments = errors.New("installments must be between 2 and 24")
	ErrInstallmentTooSmall = errors.New("amount is too small to split into that many installments")
	ErrInvalidFixedDay     = errors.New("fixed day must be between 1 and 31")
	ErrEmptyPatch          = errors.New("at least one field must be provided for update")

	ErrEmptyUsername    = errors.New("username is required")
	ErrEmptyPassword    = errors.New("password is required")
	ErrWeakPassword     = errors.New("password must have at least 8 characters with upper-case, lower-case and a digit")
	ErrSamePassword     = errors.New("new password must differ from the current one")
	ErrInvalidRole      = errors.New("role must be admin or standard")
	ErrEmptyGroup       = errors.New("group is required")
	ErrInvalidUserEmail = errors.New("invalid email")
)

func invalid(reason error) error {
	return fmt.Errorf("%w: %w", ErrValidation, reason)
}
