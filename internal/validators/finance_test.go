// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-family-finance/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func validDraft() models.TransactionDraft {
	return models.TransactionDraft{
		Kind:          models.Expense,
		PaymentDate:   models.NewDate(2024, time.January, 15),
		Description:   "Groceries",
		Amount:        decimal.RequireFromString("100.00"),
		Category:      "Groceries",
		PaymentMethod: "Cash",
		Mode:          models.PaymentSingle,
	}
}

func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// Dispatch
// ---------------------------------------------------------------------------

func TestValidate_Dispatch(t *testing.T) {
	v := NewFinanceValidator()
	ctx := context.Background()

	t.Run("unsupported type", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, "a string"), ErrUnsupportedType)
	})

	t.Run("draft value and pointer", func(t *testing.T) {
		d := validDraft()
		require.NoError(t, v.Validate(ctx, d))
		require.NoError(t, v.Validate(ctx, &d))
	})

	t.Run("unknown field", func(t *testing.T) {
		require.ErrorIs(t, v.Validate(ctx, validDraft(), "nope"), ErrUnknownField)
	})

	t.Run("role", func(t *testing.T) {
		require.NoError(t, v.Validate(ctx, models.RoleAdmin))
		require.ErrorIs(t, v.Validate(ctx, models.Role("root")), ErrInvalidRole)
	})
}

// ---------------------------------------------------------------------------
// Transaction drafts
// ---------------------------------------------------------------------------

func TestValidateDraft(t *testing.T) {
	v := NewFinanceValidator()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(d *models.TransactionDraft)
		want   error
	}{
		{"valid single", func(d *models.TransactionDraft) {}, nil},
		{"empty description", func(d *models.TransactionDraft) { d.Description = "  " }, ErrEmptyDescription},
		{"zero amount", func(d *models.TransactionDraft) { d.Amount = decimal.Zero }, ErrNonPositiveAmount},
		{"negative amount", func(d *models.TransactionDraft) { d.Amount = decimal.NewFromInt(-5) }, ErrNonPositiveAmount},
		{"sub-cent amount", func(d *models.TransactionDraft) { d.Amount = decimal.RequireFromString("0.001") }, ErrSubCentAmount},
		{"trailing zero decimals", func(d *models.TransactionDraft) { d.Amount = decimal.RequireFromString("12.500") }, nil},
		{"empty category", func(d *models.TransactionDraft) { d.Category = "" }, ErrEmptyCategory},
		{"unknown kind", func(d *models.TransactionDraft) { d.Kind = "transfer" }, ErrInvalidKind},
		{"missing payment date", func(d *models.TransactionDraft) { d.PaymentDate = models.Date{} }, ErrMissingPaymentDate},
		{"unknown mode", func(d *models.TransactionDraft) { d.Mode = "weekly" }, ErrInvalidMode},
		{"one installment", func(d *models.TransactionDraft) {
			d.Mode = models.PaymentInstallments
			d.Installments = 1
		}, ErrInvalidInstallments},
		{"too many installments", func(d *models.TransactionDraft) {
			d.Mode = models.PaymentInstallments
			d.Installments = 25
		}, ErrInvalidInstallments},
		{"installments below one cent", func(d *models.TransactionDraft) {
			d.Amount = decimal.RequireFromString("0.01")
			d.Mode = models.PaymentInstallments
			d.Installments = 3
		}, ErrInstallmentTooSmall},
		{"smallest splittable amount", func(d *models.TransactionDraft) {
			d.Amount = decimal.RequireFromString("0.02")
			d.Mode = models.PaymentInstallments
			d.Installments = 2
		}, nil},
		{"valid installments", func(d *models.TransactionDraft) {
			d.Mode = models.PaymentInstallments
			d.Installments = 24
		}, nil},
		{"recurring without fixed day", func(d *models.TransactionDraft) { d.Mode = models.PaymentRecurring }, nil},
		{"recurring fixed day 32", func(d *models.TransactionDraft) {
			d.Mode = models.PaymentRecurring
			d.FixedDay = 32
		}, ErrInvalidFixedDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)

			err := v.Validate(ctx, d)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrValidation)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateDraft_FieldScoping(t *testing.T) {
	v := NewFinanceValidator()

	d := validDraft()
	d.Description = ""

	assert.NoError(t, v.Validate(context.Background(), d, FieldAmount, FieldKind))
	assert.ErrorIs(t, v.Validate(context.Background(), d, FieldDescription), ErrEmptyDescription)
}

// ---------------------------------------------------------------------------
// Transaction patches
// ---------------------------------------------------------------------------

func TestValidatePatch(t *testing.T) {
	v := NewFinanceValidator()
	ctx := context.Background()

	zero := decimal.Zero
	subCent := decimal.RequireFromString("9.999")
	badKind := models.TransactionKind("gift")
	yes := true

	assert.ErrorIs(t, v.Validate(ctx, models.TransactionPatch{}), ErrEmptyPatch)
	assert.ErrorIs(t, v.Validate(ctx, models.TransactionPatch{Description: strPtr(" ")}), ErrEmptyPatch)
	assert.ErrorIs(t, v.Validate(ctx, models.TransactionPatch{Amount: &zero}), ErrNonPositiveAmount)
	assert.ErrorIs(t, v.Validate(ctx, models.TransactionPatch{Amount: &subCent}), ErrSubCentAmount)
	assert.ErrorIs(t, v.Validate(ctx, &models.TransactionPatch{Kind: &badKind}), ErrInvalidKind)
	assert.NoError(t, v.Validate(ctx, models.TransactionPatch{OnCard: &yes}))
	assert.NoError(t, v.Validate(ctx, models.TransactionPatch{Category: strPtr("Rent"), Person: strPtr("")}))
}

// ---------------------------------------------------------------------------
// Accounts
// ---------------------------------------------------------------------------

func TestValidateNewUser(t *testing.T) {
	v := NewFinanceValidator()
	ctx := context.Background()

	valid := models.NewUser{Username: "ana", Password: "Secret123", Role: models.RoleStandard}
	require.NoError(t, v.Validate(ctx, valid))

	noName := valid
	noName.Username = ""
	assert.ErrorIs(t, v.Validate(ctx, noName), ErrEmptyUsername)

	badRole := valid
	badRole.Role = "owner"
	assert.ErrorIs(t, v.Validate(ctx, badRole), ErrInvalidRole)

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.ErrorIs(t, v.Validate(ctx, badEmail), ErrInvalidUserEmail)

	weak := valid
	weak.Password = "secret"
	assert.ErrorIs(t, v.Validate(ctx, &weak), ErrWeakPassword)

	assert.ErrorIs(t, v.Validate(ctx, valid, FieldGroup), ErrEmptyGroup)
}

func TestValidateCredentials(t *testing.T) {
	v := NewFinanceValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.Credentials{Username: "ana", Password: "x"}))
	assert.ErrorIs(t, v.Validate(ctx, models.Credentials{Password: "x"}), ErrEmptyUsername)
	assert.ErrorIs(t, v.Validate(ctx, models.Credentials{Username: "ana"}), ErrEmptyPassword)
}

func TestValidatePasswordChange(t *testing.T) {
	v := NewFinanceValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.PasswordChange{CurrentPassword: "Old12345", NewPassword: "New12345"}))
	assert.ErrorIs(t, v.Validate(ctx, models.PasswordChange{NewPassword: "New12345"}), ErrEmptyPassword)
	assert.ErrorIs(t, v.Validate(ctx, models.PasswordChange{CurrentPassword: "Same1234", NewPassword: "Same1234"}), ErrSamePassword)
	assert.ErrorIs(t, v.Validate(ctx, models.PasswordChange{CurrentPassword: "Old12345", NewPassword: "short"}), ErrWeakPassword)
}

func TestValidateGroupChange(t *testing.T) {
	v := NewFinanceValidator()

	assert.NoError(t, v.Validate(context.Background(), models.GroupChange{Group: "family", Shared: true}))
	assert.ErrorIs(t, v.Validate(context.Background(), models.GroupChange{Group: " "}), ErrEmptyGroup)
}

func TestCheckPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		want     error
	}{
		{"", ErrEmptyPassword},
		{"Ab1", ErrWeakPassword},
		{"abcdefgh1", ErrWeakPassword},
		{"ABCDEFGH1", ErrWeakPassword},
		{"Abcdefghi", ErrWeakPassword},
		{"Abcdefg1", nil},
		{"Çãoçãoç1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := CheckPasswordStrength(tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
