package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-family-finance/internal/config"
	"github.com/MKhiriev/go-family-finance/internal/events"
	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/internal/schedule"
	"github.com/MKhiriev/go-family-finance/internal/store"
	"github.com/MKhiriev/go-family-finance/internal/validators"
	"github.com/MKhiriev/go-family-finance/models"
	"github.com/shopspring/decimal"
)

// transactionService builds stored rows from drafts and delegates every
// read and write to the visibility-scoped repository.
type transactionService struct {
	transactions store.TransactionRepository
	publisher    events.Publisher

	billingDay int
	catalog    models.Catalog

	// today is replaced in tests.
	today func() models.Date

	logger *logger.Logger
}

// NewTransactionService constructs a [TransactionService]. The billing day
// and the catalog come from cfg.
func NewTransactionService(transactions store.TransactionRepository, publisher events.Publisher, cfg config.Finance, logger *logger.Logger) TransactionService {
	return &transactionService{
		transactions: transactions,
		publisher:    publisher,
		billingDay:   cfg.BillingDay,
		catalog: models.Catalog{
			Categories:     cfg.Categories,
			PaymentMethods: cfg.PaymentMethods,
		},
		today:  models.Today,
		logger: logger,
	}
}

// Create stores the rows described by draft:
//   - single: one row; card purchases are moved onto their statement date;
//   - installments: draft.Installments monthly rows, see [schedule.SplitInstallments];
//   - recurring: one template row whose fixed day defaults to the purchase day.
func (s *transactionService) Create(ctx context.Context, uc models.UserContext, draft models.TransactionDraft) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	rows, err := s.buildRows(draft)
	if err != nil {
		log.Err(err).Str("func", "transactionService.Create").Int64("user_id", uc.ID).Msg("failed to build transactions from draft")
		return nil, err
	}

	saved, err := s.transactions.Insert(ctx, uc, rows...)
	if err != nil {
		return nil, fmt.Errorf("failed to save transactions: %w", err)
	}

	log.Info().
		Str("func", "transactionService.Create").
		Int64("user_id", uc.ID).
		Str("mode", string(draft.Mode)).
		Int("count", len(saved)).
		Msg("transactions created")

	if err = s.publisher.Publish(ctx, models.NewTransactionsCreatedEvent(uc.ID, saved)); err != nil {
		log.Warn().Err(err).Str("func", "transactionService.Create").Msg("failed to publish transactions created event")
	}

	return saved, nil
}

func (s *transactionService) buildRows(draft models.TransactionDraft) ([]models.Transaction, error) {
	base := draft.ToTransaction()
	if base.RegisteredOn.IsZero() {
		base.RegisteredOn = s.today()
	}

	switch draft.Mode {
	case models.PaymentInstallments:
		rows, err := schedule.SplitInstallments(base, draft.Installments, s.billingDay)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", validators.ErrValidation, err)
		}
		return rows, nil

	case models.PaymentRecurring:
		fixedDay := draft.FixedDay
		if fixedDay == 0 {
			fixedDay = base.PaymentDate.Day()
		}
		base.Recurring = true
		base.FixedDay = &fixedDay
		if base.OnCard {
			base.PaymentDate = schedule.ShiftToBillingCycle(base.PaymentDate, s.billingDay)
		}
		return []models.Transaction{base}, nil

	default:
		if base.OnCard {
			base.PaymentDate = schedule.ShiftToBillingCycle(base.PaymentDate, s.billingDay)
		}
		return []models.Transaction{base}, nil
	}
}

func (s *transactionService) List(ctx context.Context, uc models.UserContext, filter models.TransactionFilter) ([]models.Transaction, error) {
	return s.transactions.List(ctx, uc, filter)
}

func (s *transactionService) Update(ctx context.Context, uc models.UserContext, id int64, patch models.TransactionPatch) (models.Transaction, error) {
	return s.transactions.Update(ctx, id, patch, uc)
}

func (s *transactionService) Delete(ctx context.Context, uc models.UserContext, id int64) error {
	return s.transactions.SoftDelete(ctx, id, uc)
}

// MonthlySummary totals the visible rows paid in period. Expense totals are
// also broken down by category and by payment method.
func (s *transactionService) MonthlySummary(ctx context.Context, uc models.UserContext, period string) (models.MonthlySummary, error) {
	first, err := s.parsePeriod(period)
	if err != nil {
		return models.MonthlySummary{}, err
	}
	last := models.NewDate(first.Year(), first.Month(), schedule.DaysIn(first.Year(), first.Month()))

	rows, err := s.transactions.List(ctx, uc, models.TransactionFilter{From: first, To: last})
	if err != nil {
		return models.MonthlySummary{}, fmt.Errorf("failed to list transactions for summary: %w", err)
	}

	summary := models.MonthlySummary{
		Period:             first.Period(),
		Income:             decimal.Zero,
		Expense:            decimal.Zero,
		ExpenseByCategory:  make(map[string]decimal.Decimal),
		TotalByPaymentMode: make(map[string]decimal.Decimal),
		Transactions:       len(rows),
	}

	for _, row := range rows {
		switch row.Kind {
		case models.Income:
			summary.Income = summary.Income.Add(row.Amount)
		case models.Expense:
			summary.Expense = summary.Expense.Add(row.Amount)
			summary.ExpenseByCategory[row.Category] = summary.ExpenseByCategory[row.Category].Add(row.Amount)
			summary.TotalByPaymentMode[row.PaymentMethod] = summary.TotalByPaymentMode[row.PaymentMethod].Add(row.Amount)
		}
	}
	summary.Balance = summary.Income.Sub(summary.Expense)

	return summary, nil
}

func (s *transactionService) parsePeriod(period string) (models.Date, error) {
	period = strings.TrimSpace(period)
	if period == "" {
		today := s.today()
		return models.NewDate(today.Year(), today.Month(), 1), nil
	}

	t, err := time.Parse("2006-01", period)
	if err != nil {
		return models.Date{}, fmt.Errorf("%w: %w", validators.ErrValidation, ErrInvalidPeriod)
	}

	return models.NewDate(t.Year(), t.Month(), 1), nil
}

func (s *transactionService) Catalog(ctx context.Context) models.Catalog {
	return s.catalog
}
