package models

import "github.com/shopspring/decimal"

// MonthlySummary aggregates the visible, non-deleted transactions whose
// payment date falls in Period.
type MonthlySummary struct {
	Period             string                     `json:"period"`
	Income             decimal.Decimal            `json:"income"`
	Expense            decimal.Decimal            `json:"expense"`
	Balance            decimal.Decimal            `json:"balance"`
	Transactions       int                        `json:"transactions"`
	ExpenseByCategory  map[string]decimal.Decimal `json:"expense_by_category"`
	TotalByPaymentMode map[string]decimal.Decimal `json:"total_by_payment_method"`
}

// SystemStats is the admin overview of the whole installation.
type SystemStats struct {
	Users            int `json:"users"`
	Admins           int `json:"admins"`
	ActiveUsers      int `json:"active_users"`
	SharedUsers      int `json:"shared_users"`
	PrivateUsers     int `json:"private_users"`
	Groups           int `json:"groups"`
	Transactions     int `json:"transactions"`
	IncomeRows       int `json:"income_rows"`
	ExpenseRows      int `json:"expense_rows"`
	DeletedRows      int `json:"deleted_rows"`
	RecurringRecords int `json:"recurring_records"`
}

// Catalog lists the categories and payment methods offered to users.
type Catalog struct {
	Categories     []string `json:"categories"`
	PaymentMethods []string `json:"payment_methods"`
}

// SweepResult reports how many occurrences a recurrence sweep created.
type SweepResult struct {
	Created int `json:"created"`
}
