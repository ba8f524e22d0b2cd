package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-family-finance/internal/config"
	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/internal/mock"
	"github.com/MKhiriev/go-family-finance/internal/schedule"
	"github.com/MKhiriev/go-family-finance/internal/store"
	"github.com/MKhiriev/go-family-finance/internal/validators"
	"github.com/MKhiriev/go-family-finance/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testFinance = config.Finance{
	BillingDay:     10,
	Categories:     []string{"Groceries", "Rent"},
	PaymentMethods: []string{"Cash", "Credit card"},
}

func newTestTransactionSvc(t *testing.T, ctrl *gomock.Controller) (*transactionService, *mock.MockTransactionRepository, *mock.MockPublisher) {
	t.Helper()
	repo := mock.NewMockTransactionRepository(ctrl)
	publisher := mock.NewMockPublisher(ctrl)

	svc := NewTransactionService(repo, publisher, testFinance, logger.Nop()).(*transactionService)
	svc.today = func() models.Date { return models.NewDate(2024, time.March, 20) }

	return svc, repo, publisher
}

func expenseDraft(mode models.PaymentMode) models.TransactionDraft {
	return models.TransactionDraft{
		Kind:          models.Expense,
		PaymentDate:   models.NewDate(2024, time.March, 5),
		Description:   "TV",
		Amount:        decimal.RequireFromString("300.00"),
		Category:      "Home",
		PaymentMethod: "Cash",
		Mode:          mode,
	}
}

// echoInsert returns the rows it receives with sequential ids, the way the
// repository does after a successful insert.
func echoInsert(_ context.Context, uc models.UserContext, rows ...models.Transaction) ([]models.Transaction, error) {
	out := make([]models.Transaction, len(rows))
	for i, r := range rows {
		r.ID = int64(i + 1)
		r.OwnerID = uc.ID
		out[i] = r
	}
	return out, nil
}

var standardUser = models.UserContext{ID: 3, Role: models.RoleStandard, Group: "family"}

// ── Create ───────────────────────────────────────────────────────────────────

func TestTransactionService_Create_Single(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, publisher := newTestTransactionSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().Insert(ctx, standardUser, gomock.Any()).DoAndReturn(
		func(ctx context.Context, uc models.UserContext, rows ...models.Transaction) ([]models.Transaction, error) {
			require.Len(t, rows, 1)
			assert.Equal(t, models.NewDate(2024, time.March, 5), rows[0].PaymentDate)
			assert.Equal(t, models.NewDate(2024, time.March, 20), rows[0].RegisteredOn, "registered on defaults to today")
			assert.False(t, rows[0].OnCard)
			return echoInsert(ctx, uc, rows...)
		},
	)
	publisher.EXPECT().Publish(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, event models.TransactionEvent) error {
			assert.Equal(t, models.EventTransactionsCreated, event.Type)
			assert.Equal(t, []int64{1}, event.TransactionIDs)
			return nil
		},
	)

	saved, err := svc.Create(ctx, standardUser, expenseDraft(models.PaymentSingle))
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestTransactionService_Create_SingleCardIsShifted(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, publisher := newTestTransactionSvc(t, ctrl)
	ctx := context.Background()

	draft := expenseDraft(models.PaymentSingle)
	draft.PaymentMethod = "Credit card"

	repo.EXPECT().Insert(ctx, standardUser, gomock.Any()).DoAndReturn(
		func(ctx context.Context, uc models.UserContext, rows ...models.Transaction) ([]models.Transaction, error) {
			assert.True(t, rows[0].OnCard)
			assert.Equal(t, models.NewDate(2024, time.April, 10), rows[0].PaymentDate)
			return echoInsert(ctx, uc, rows...)
		},
	)
	publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	_, err := svc.Create(ctx, standardUser, draft)
	require.NoError(t, err)
}

func TestTransactionService_Create_Installments(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, publisher := newTestTransactionSvc(t, ctrl)
	ctx := context.Background()

	draft := expenseDraft(models.PaymentInstallments)
	draft.Installments = 3

	repo.EXPECT().Insert(ctx, standardUser, gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, uc models.UserContext, rows ...models.Transaction) ([]models.Transaction, error) {
			require.Len(t, rows, 3)
			for i, r := range rows {
				assert.True(t, decimal.RequireFromString("100.00").Equal(r.Amount))
				assert.Equal(t, i+1, r.InstallmentIndex)
				assert.Equal(t, 3, r.Installments)
			}
			assert.Equal(t, "TV (3/3)", rows[2].Description)
			assert.Equal(t, models.NewDate(2024, time.May, 5), rows[2].PaymentDate)
			return echoInsert(ctx, uc, rows...)
		},
	)
	publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	saved, err := svc.Create(ctx, standardUser, draft)
	require.NoError(t, err)
	assert.Len(t, saved, 3)
}

func TestTransactionService_Create_InvalidInstallmentCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestTransactionSvc(t, ctrl)

	draft := expenseDraft(models.PaymentInstallments)
	draft.Installments = 40

	_, err := svc.Create(context.Background(), standardUser, draft)
	assert.ErrorIs(t, err, validators.ErrValidation)
}

func TestTransactionService_Create_InstallmentsBelowOneCentNeverReachStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	// no repository expectations: any Insert call fails the test
	svc, _, _ := newTestTransactionSvc(t, ctrl)

	draft := expenseDraft(models.PaymentInstallments)
	draft.Amount = decimal.RequireFromString("0.01")
	draft.Installments = 3

	_, err := svc.Create(context.Background(), standardUser, draft)
	assert.ErrorIs(t, err, validators.ErrValidation)
	assert.ErrorIs(t, err, schedule.ErrInstallmentTooSmall)
}

func TestTransactionService_Create_RecurringTemplate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, publisher := newTestTransactionSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().Insert(ctx, standardUser, gomock.Any()).DoAndReturn(
		func(ctx context.Context, uc models.UserContext, rows ...models.Transaction) ([]models.Transaction, error) {
			require.Len(t, rows, 1)
			assert.True(t, rows[0].Recurring)
			require.NotNil(t, rows[0].FixedDay)
			assert.Equal(t, 5, *rows[0].FixedDay, "fixed day defaults to the purchase day")
			return echoInsert(ctx, uc, rows...)
		},
	)
	publisher.EXPECT().Publish(ctx, gomock.Any()).Return(nil)

	_, err := svc.Create(ctx, standardUser, expenseDraft(models.PaymentRecurring))
	require.NoError(t, err)
}

func TestTransactionService_Create_PublishFailureIsNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, publisher := newTestTransactionSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().Insert(ctx, standardUser, gomock.Any()).DoAndReturn(echoInsert)
	publisher.EXPECT().Publish(ctx, gomock.Any()).Return(errors.New("broker down"))

	saved, err := svc.Create(ctx, standardUser, expenseDraft(models.PaymentSingle))
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestTransactionService_Create_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestTransactionSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().Insert(ctx, standardUser, gomock.Any()).Return(nil, store.ErrExecutingStatement)

	_, err := svc.Create(ctx, standardUser, expenseDraft(models.PaymentSingle))
	assert.ErrorIs(t, err, store.ErrExecutingStatement)
}

// ── Update / Delete ──────────────────────────────────────────────────────────

func TestTransactionService_UpdateAndDelete_Delegate(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestTransactionSvc(t, ctrl)
	ctx := context.Background()

	desc := "Rent"
	patch := models.TransactionPatch{Description: &desc}

	repo.EXPECT().Update(ctx, int64(9), patch, standardUser).Return(models.Transaction{ID: 9, Description: desc}, nil)
	repo.EXPECT().SoftDelete(ctx, int64(9), standardUser).Return(store.ErrPermissionDenied)

	updated, err := svc.Update(ctx, standardUser, 9, patch)
	require.NoError(t, err)
	assert.Equal(t, "Rent", updated.Description)

	assert.ErrorIs(t, svc.Delete(ctx, standardUser, 9), store.ErrPermissionDenied)
}

// ── MonthlySummary ───────────────────────────────────────────────────────────

func TestTransactionService_MonthlySummary(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestTransactionSvc(t, ctrl)
	ctx := context.Background()

	filter := models.TransactionFilter{
		From: models.NewDate(2024, time.February, 1),
		To:   models.NewDate(2024, time.February, 29),
	}
	repo.EXPECT().List(ctx, standardUser, filter).Return([]models.Transaction{
		{Kind: models.Income, Amount: decimal.RequireFromString("1000"), Category: "Salary", PaymentMethod: "Transfer"},
		{Kind: models.Expense, Amount: decimal.RequireFromString("120.50"), Category: "Groceries", PaymentMethod: "Cash"},
		{Kind: models.Expense, Amount: decimal.RequireFromString("79.50"), Category: "Groceries", PaymentMethod: "Credit card"},
		{Kind: models.Expense, Amount: decimal.RequireFromString("300"), Category: "Rent", PaymentMethod: "Cash"},
	}, nil)

	summary, err := svc.MonthlySummary(ctx, standardUser, "2024-02")
	require.NoError(t, err)

	assert.Equal(t, "2024-02", summary.Period)
	assert.Equal(t, 4, summary.Transactions)
	assert.True(t, decimal.RequireFromString("1000").Equal(summary.Income))
	assert.True(t, decimal.RequireFromString("500").Equal(summary.Expense))
	assert.True(t, decimal.RequireFromString("500").Equal(summary.Balance))
	assert.True(t, decimal.RequireFromString("200").Equal(summary.ExpenseByCategory["Groceries"]))
	assert.True(t, decimal.RequireFromString("420.50").Equal(summary.TotalByPaymentMode["Cash"]))
	assert.NotContains(t, summary.ExpenseByCategory, "Salary")
}

func TestTransactionService_MonthlySummary_DefaultsToCurrentMonth(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestTransactionSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().List(ctx, standardUser, models.TransactionFilter{
		From: models.NewDate(2024, time.March, 1),
		To:   models.NewDate(2024, time.March, 31),
	}).Return(nil, nil)

	summary, err := svc.MonthlySummary(ctx, standardUser, "")
	require.NoError(t, err)
	assert.Equal(t, "2024-03", summary.Period)
	assert.True(t, summary.Balance.IsZero())
}

func TestTransactionService_MonthlySummary_InvalidPeriod(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestTransactionSvc(t, ctrl)

	_, err := svc.MonthlySummary(context.Background(), standardUser, "March")
	assert.ErrorIs(t, err, ErrInvalidPeriod)
	assert.ErrorIs(t, err, validators.ErrValidation)
}

func TestTransactionService_Catalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestTransactionSvc(t, ctrl)

	catalog := svc.Catalog(context.Background())
	assert.Equal(t, []string{"Groceries", "Rent"}, catalog.Categories)
	assert.Equal(t, []string{"Cash", "Credit card"}, catalog.PaymentMethods)
}
