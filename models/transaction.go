package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TransactionKind tells income rows from expense rows.
type TransactionKind string

const (
	Income  TransactionKind = "income"
	Expense TransactionKind = "expense"
)

// Valid reports whether k is one of the known kinds.
func (k TransactionKind) Valid() bool {
	return k == Income || k == Expense
}

// TransactionStatus is the soft-delete state of a transaction.
// The only allowed transition is Active -> Deleted.
type TransactionStatus string

const (
	StatusActive  TransactionStatus = "active"
	StatusDeleted TransactionStatus = "deleted"
)

// Defaults applied to drafts that leave the corresponding field empty.
const (
	DefaultResponsibleParty = "Both"
	DefaultPaymentMethod    = "Cash"
	DefaultGroup            = "default"
)

// Transaction is the atomic financial event.
//
// Group and Shared are a snapshot of the owner's sharing settings taken at
// insert time; they are never re-derived from the owner's current record.
//
// TemplateID and Period are set only on rows materialised by the recurrence
// sweep and together with OwnerID form its deduplication key.
type Transaction struct {
	ID               int64             `json:"id"`
	RegisteredOn     Date              `json:"registered_on"`
	PaymentDate      Date              `json:"payment_date"`
	Person           string            `json:"person"`
	ResponsibleParty string            `json:"responsible_party"`
	Category         string            `json:"category"`
	Kind             TransactionKind   `json:"kind"`
	Amount           decimal.Decimal   `json:"amount"`
	Description      string            `json:"description"`
	Recurring        bool              `json:"recurring"`
	FixedDay         *int              `json:"fixed_day,omitempty"`
	OnCard           bool              `json:"on_card"`
	Investment       bool              `json:"investment"`
	MealVoucher      bool              `json:"meal_voucher"`
	PaymentMethod    string            `json:"payment_method"`
	Installments     int               `json:"installments"`
	InstallmentIndex int               `json:"installment_index"`
	Status           TransactionStatus `json:"status"`
	OwnerID          int64             `json:"owner_id"`
	Group            string            `json:"group"`
	Shared           bool              `json:"shared"`
	TemplateID       *int64            `json:"template_id,omitempty"`
	Period           *string           `json:"period,omitempty"`
}

// IsTemplate reports whether t drives the recurrence sweep.
func (t Transaction) IsTemplate() bool {
	return t.Recurring && t.TemplateID == nil && t.Status != StatusDeleted
}

// EffectiveFixedDay returns the fixed day of month, falling back to the day
// of the payment date when it is unset.
func (t Transaction) EffectiveFixedDay() int {
	if t.FixedDay != nil && *t.FixedDay > 0 {
		return *t.FixedDay
	}
	return t.PaymentDate.Day()
}

// IsCardPaymentMethod reports whether a payment method name denotes a credit
// card, i.e. purchases that land on next month's statement.
func IsCardPaymentMethod(method string) bool {
	m := strings.ToLower(method)
	for _, marker := range []string{"cred", "créd", "cart"} {
		if strings.Contains(m, marker) {
			return true
		}
	}
	return false
}

// TransactionPatch carries a partial update. Nil fields and empty strings
// leave the stored value unchanged.
type TransactionPatch struct {
	RegisteredOn     *Date            `json:"registered_on,omitempty"`
	PaymentDate      *Date            `json:"payment_date,omitempty"`
	Person           *string          `json:"person,omitempty"`
	ResponsibleParty *string          `json:"responsible_party,omitempty"`
	Category         *string          `json:"category,omitempty"`
	Kind             *TransactionKind `json:"kind,omitempty"`
	Amount           *decimal.Decimal `json:"amount,omitempty"`
	Description      *string          `json:"description,omitempty"`
	PaymentMethod    *string          `json:"payment_method,omitempty"`
	OnCard           *bool            `json:"on_card,omitempty"`
	Investment       *bool            `json:"investment,omitempty"`
	MealVoucher      *bool            `json:"meal_voucher,omitempty"`
}

// IsEmpty reports whether the patch would change nothing.
func (p TransactionPatch) IsEmpty() bool {
	return (p.RegisteredOn == nil || p.RegisteredOn.IsZero()) &&
		(p.PaymentDate == nil || p.PaymentDate.IsZero()) &&
		isBlank(p.Person) &&
		isBlank(p.ResponsibleParty) &&
		isBlank(p.Category) &&
		(p.Kind == nil || *p.Kind == "") &&
		p.Amount == nil &&
		isBlank(p.Description) &&
		isBlank(p.PaymentMethod) &&
		p.OnCard == nil &&
		p.Investment == nil &&
		p.MealVoucher == nil
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// TransactionFilter narrows a visibility-scoped listing. Zero values mean
// "no restriction".
type TransactionFilter struct {
	From     Date
	To       Date
	Category string
	Search   string
}
