// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package schedule holds the pure calendar logic of the finance core:
// billing-cycle shifting, month arithmetic with end-of-month clamping,
// installment splitting and the projection of recurring templates onto the
// months that have already come due.
//
// Nothing in this package performs I/O; callers hand the results to the
// store.
package schedule

import (
	"time"

	"github.com/MKhiriev/go-family-finance/models"
)

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthIndex maps a date onto a linear month counter so that the number of
// months between two dates is a plain subtraction.
func MonthIndex(d models.Date) int {
	return d.Year()*12 + int(d.Month()) - 1
}

// AddMonthsClamped returns the date n months after base with the day set to
// targetDay, clamped to the last day of the resulting month.
//
//	AddMonthsClamped(2024-01-31, 1, 31) == 2024-02-29
func AddMonthsClamped(base models.Date, n, targetDay int) models.Date {
	idx := MonthIndex(base) + n
	year, month := idx/12, time.Month(idx%12+1)

	return models.NewDate(year, month, clampDay(year, month, targetDay))
}

// ShiftToBillingCycle maps a card purchase date onto the statement it will
// appear on: the month after the purchase, at billingDay. A December
// purchase lands in January of the following year.
func ShiftToBillingCycle(purchase models.Date, billingDay int) models.Date {
	return AddMonthsClamped(purchase, 1, billingDay)
}

func clampDay(year int, month time.Month, day int) int {
	if day < 1 {
		return 1
	}
	if last := DaysIn(year, month); day > last {
		return last
	}
	return day
}
