package models

import "github.com/shopspring/decimal"

// PaymentMode selects how a draft is turned into stored transactions.
type PaymentMode string

const (
	// PaymentSingle stores one transaction.
	PaymentSingle PaymentMode = "single"
	// PaymentInstallments splits the amount across Installments monthly rows.
	PaymentInstallments PaymentMode = "installments"
	// PaymentRecurring stores a template that the recurrence sweep repeats
	// every month on FixedDay.
	PaymentRecurring PaymentMode = "recurring"
)

// TransactionDraft is the user's intent to record money moving.
//
// For card purchases PaymentDate holds the purchase date; the stored payment
// date is the statement date derived from it.
type TransactionDraft struct {
	Kind             TransactionKind `json:"kind"`
	RegisteredOn     Date            `json:"registered_on"`
	PaymentDate      Date            `json:"payment_date"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	Category         string          `json:"category"`
	PaymentMethod    string          `json:"payment_method"`
	Person           string          `json:"person"`
	ResponsibleParty string          `json:"responsible_party"`
	OnCard           *bool           `json:"on_card,omitempty"`
	Investment       bool            `json:"investment"`
	MealVoucher      bool            `json:"meal_voucher"`

	Mode         PaymentMode `json:"mode"`
	Installments int         `json:"installments,omitempty"`
	FixedDay     int         `json:"fixed_day,omitempty"`
}

// IsCard resolves the card flag: an explicit value wins over detection from
// the payment method name.
func (d TransactionDraft) IsCard() bool {
	if d.OnCard != nil {
		return *d.OnCard
	}
	return IsCardPaymentMethod(d.PaymentMethod)
}

// ToTransaction builds the base transaction shared by every row the draft
// produces. Ownership and sharing fields are left for the store to stamp.
func (d TransactionDraft) ToTransaction() Transaction {
	responsible := d.ResponsibleParty
	if responsible == "" {
		responsible = DefaultResponsibleParty
	}
	method := d.PaymentMethod
	if method == "" {
		method = DefaultPaymentMethod
	}
	person := d.Person
	if person == "" {
		person = responsible
	}

	return Transaction{
		RegisteredOn:     d.RegisteredOn,
		PaymentDate:      d.PaymentDate,
		Person:           person,
		ResponsibleParty: responsible,
		Category:         d.Category,
		Kind:             d.Kind,
		Amount:           d.Amount,
		Description:      d.Description,
		OnCard:           d.IsCard(),
		Investment:       d.Investment,
		MealVoucher:      d.MealVoucher,
		PaymentMethod:    method,
		Installments:     1,
		InstallmentIndex: 1,
		Status:           StatusActive,
	}
}
