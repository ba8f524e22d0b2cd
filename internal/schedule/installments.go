package schedule

import (
	"fmt"

	"github.com/MKhiriev/go-family-finance/models"
	"github.com/shopspring/decimal"
)

const (
	MinInstallments = 2
	MaxInstallments = 24
)

// InstallmentAmount is the amount carried by each of count installments of
// total, rounded to cents.
func InstallmentAmount(total decimal.Decimal, count int) decimal.Decimal {
	return total.Div(decimal.NewFromInt(int64(count))).Round(2)
}

// SplitInstallments turns base into count monthly installments.
//
// Every part carries total/count rounded to cents; the rounding drift is
// accepted rather than pushed into the last part. Installment i falls on
// base.PaymentDate moved i-1 months forward on the same day of month
// (clamped), and card installments are then moved onto their statement date.
func SplitInstallments(base models.Transaction, count, billingDay int) ([]models.Transaction, error) {
	if count < MinInstallments || count > MaxInstallments {
		return nil, fmt.Errorf("%w: got %d, want %d..%d", ErrInvalidInstallmentCount, count, MinInstallments, MaxInstallments)
	}

	part := InstallmentAmount(base.Amount, count)
	if !part.IsPositive() {
		return nil, fmt.Errorf("%w: %s split into %d parts", ErrInstallmentTooSmall, base.Amount, count)
	}
	start := base.PaymentDate

	parts := make([]models.Transaction, 0, count)
	for i := 1; i <= count; i++ {
		t := base
		t.Amount = part
		t.Description = fmt.Sprintf("%s (%d/%d)", base.Description, i, count)
		t.Installments = count
		t.InstallmentIndex = i
		t.Recurring = false
		t.FixedDay = nil

		due := AddMonthsClamped(start, i-1, start.Day())
		if t.OnCard {
			due = ShiftToBillingCycle(due, billingDay)
		}
		t.PaymentDate = due

		parts = append(parts, t)
	}

	return parts, nil
}
