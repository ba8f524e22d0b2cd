package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-family-finance/internal/schedule"
	"github.com/MKhiriev/go-family-finance/models"
	"github.com/shopspring/decimal"
)

// Field names accepted by [FinanceValidator.Validate].
const (
	FieldKind        = "kind"
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldPaymentDate = "payment_date"
	FieldMode        = "mode"

	FieldPatch = "patch"

	FieldUsername    = "username"
	FieldPassword    = "password"
	FieldRole        = "role"
	FieldEmail       = "email"
	FieldGroup       = "group"
	FieldNewPassword = "new_password"
)

const minPasswordLength = 8

// FinanceValidator validates transaction drafts and patches, account
// requests and credentials.
type FinanceValidator struct{}

// NewFinanceValidator returns a ready [FinanceValidator].
func NewFinanceValidator() Validator {
	return &FinanceValidator{}
}

// Validate dispatches on the dynamic type of obj. Value and pointer forms
// are both accepted. Without fields every rule of the type is checked.
//
// Supported types: [models.TransactionDraft], [models.TransactionPatch],
// [models.NewUser], [models.Credentials], [models.PasswordChange],
// [models.GroupChange] and [models.Role].
func (v *FinanceValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.TransactionDraft:
		return v.validateDraft(value, fields...)
	case *models.TransactionDraft:
		return v.validateDraft(*value, fields...)
	case models.TransactionPatch:
		return v.validatePatch(value)
	case *models.TransactionPatch:
		return v.validatePatch(*value)
	case models.NewUser:
		return v.validateNewUser(value, fields...)
	case *models.NewUser:
		return v.validateNewUser(*value, fields...)
	case models.Credentials:
		return v.validateCredentials(value)
	case *models.Credentials:
		return v.validateCredentials(*value)
	case models.PasswordChange:
		return v.validatePasswordChange(value)
	case *models.PasswordChange:
		return v.validatePasswordChange(*value)
	case models.GroupChange:
		return v.validateGroupChange(value)
	case *models.GroupChange:
		return v.validateGroupChange(*value)
	case models.Role:
		if !value.Valid() {
			return invalid(ErrInvalidRole)
		}
		return nil
	default:
		return ErrUnsupportedType
	}
}

func (v *FinanceValidator) validateDraft(draft models.TransactionDraft, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKind, FieldDescription, FieldAmount, FieldCategory, FieldPaymentDate, FieldMode}
	}

	for _, f := range fields {
		switch f {
		case FieldKind:
			if !draft.Kind.Valid() {
				return invalid(ErrInvalidKind)
			}
		case FieldDescription:
			if strings.TrimSpace(draft.Description) == "" {
				return invalid(ErrEmptyDescription)
			}
		case FieldAmount:
			if err := validateAmount(draft.Amount); err != nil {
				return err
			}
		case FieldCategory:
			if strings.TrimSpace(draft.Category) == "" {
				return invalid(ErrEmptyCategory)
			}
		case FieldPaymentDate:
			if draft.PaymentDate.IsZero() {
				return invalid(ErrMissingPaymentDate)
			}
		case FieldMode:
			if err := validateMode(draft); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateAmount accepts positive amounts stored exactly in cents.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalid(ErrNonPositiveAmount)
	}
	if !amount.Equal(amount.Round(2)) {
		return invalid(ErrSubCentAmount)
	}
	return nil
}

func validateMode(draft models.TransactionDraft) error {
	switch draft.Mode {
	case "", models.PaymentSingle:
	case models.PaymentInstallments:
		if draft.Installments < schedule.MinInstallments || draft.Installments > schedule.MaxInstallments {
			return invalid(ErrInvalidInstallments)
		}
		if !schedule.InstallmentAmount(draft.Amount, draft.Installments).IsPositive() {
			return invalid(ErrInstallmentTooSmall)
		}
	case models.PaymentRecurring:
		// zero falls back to the payment day
		if draft.FixedDay < 0 || draft.FixedDay > 31 {
			return invalid(ErrInvalidFixedDay)
		}
	default:
		return invalid(ErrInvalidMode)
	}
	return nil
}

// validatePatch rejects patches that change nothing and values that would
// break the row's invariants. Blank strings are allowed: they are ignored.
func (v *FinanceValidator) validatePatch(patch models.TransactionPatch) error {
	if patch.IsEmpty() {
		return invalid(ErrEmptyPatch)
	}
	if patch.Amount != nil {
		if err := validateAmount(*patch.Amount); err != nil {
			return err
		}
	}
	if patch.Kind != nil && *patch.Kind != "" && !patch.Kind.Valid() {
		return invalid(ErrInvalidKind)
	}
	return nil
}

func (v *FinanceValidator) validateNewUser(user models.NewUser, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword, FieldRole, FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if strings.TrimSpace(user.Username) == "" {
				return invalid(ErrEmptyUsername)
			}
		case FieldPassword:
			if err := CheckPasswordStrength(user.Password); err != nil {
				return err
			}
		case FieldRole:
			if user.Role != "" && !user.Role.Valid() {
				return invalid(ErrInvalidRole)
			}
		case FieldEmail:
			if user.Email == "" {
				continue
			}
			if _, err := mail.ParseAddress(user.Email); err != nil {
				return invalid(ErrInvalidUserEmail)
			}
		case FieldGroup:
			if strings.TrimSpace(user.Group) == "" {
				return invalid(ErrEmptyGroup)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *FinanceValidator) validateCredentials(credentials models.Credentials) error {
	if strings.TrimSpace(credentials.Username) == "" {
		return invalid(ErrEmptyUsername)
	}
	if credentials.Password == "" {
		return invalid(ErrEmptyPassword)
	}
	return nil
}

func (v *FinanceValidator) validatePasswordChange(change models.PasswordChange) error {
	if change.CurrentPassword == "" {
		return invalid(ErrEmptyPassword)
	}
	if change.CurrentPassword == change.NewPassword {
		return invalid(ErrSamePassword)
	}
	return CheckPasswordStrength(change.NewPassword)
}

func (v *FinanceValidator) validateGroupChange(change models.GroupChange) error {
	if strings.TrimSpace(change.Group) == "" {
		return invalid(ErrEmptyGroup)
	}
	return nil
}

// CheckPasswordStrength requires at least eight characters including an
// upper-case letter, a lower-case letter and a digit.
func CheckPasswordStrength(password string) error {
	if password == "" {
		return invalid(ErrEmptyPassword)
	}
	if len([]rune(password)) < minPasswordLength {
		return invalid(ErrWeakPassword)
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return invalid(ErrWeakPassword)
	}

	return nil
}
