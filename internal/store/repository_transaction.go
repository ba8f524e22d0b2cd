package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/models"
)

// transactionRepository is the database/sql implementation of
// [TransactionRepository]. Statements are built with the dialect-specific
// squirrel builder held by [DB].
type transactionRepository struct {
	*DB
	logger *logger.Logger
}

// NewTransactionRepository constructs a [TransactionRepository] on db.
func NewTransactionRepository(db *DB, logger *logger.Logger) TransactionRepository {
	return &transactionRepository{
		DB:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID,
		&t.RegisteredOn,
		&t.PaymentDate,
		&t.Person,
		&t.ResponsibleParty,
		&t.Category,
		&t.Kind,
		&t.Amount,
		&t.Description,
		&t.Recurring,
		&t.FixedDay,
		&t.OnCard,
		&t.Investment,
		&t.MealVoucher,
		&t.PaymentMethod,
		&t.Installments,
		&t.InstallmentIndex,
		&t.Status,
		&t.OwnerID,
		&t.Group,
		&t.Shared,
		&t.TemplateID,
		&t.Period,
	)
	return t, err
}

// List returns the non-deleted transactions visible to uc ordered by
// payment date and id, both descending.
func (r *transactionRepository) List(ctx context.Context, uc models.UserContext, filter models.TransactionFilter) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTransactionsQuery(r.builder, uc, filter)
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.List").
			Int64("user_id", uc.ID).
			Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.List").
			Int64("user_id", uc.ID).
			Msg("failed to execute query for listing transactions")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return r.collect(ctx, rows, "transactionRepository.List")
}

func (r *transactionRepository) collect(ctx context.Context, rows *sql.Rows, funcName string) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	results := make([]models.Transaction, 0, 32)
	for rows.Next() {
		t, scanErr := scanTransaction(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan transaction row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, t)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", funcName).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// Insert writes drafts in one database transaction. Owner, group and
// shared are taken from uc and the status is forced to active, whatever
// the drafts carry. On failure no row is left behind.
func (r *transactionRepository) Insert(ctx context.Context, uc models.UserContext, drafts ...models.Transaction) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	if len(drafts) == 0 {
		return nil, nil
	}

	saved := make([]models.Transaction, 0, len(drafts))
	err := r.inTx(ctx, "transactionRepository.Insert", func(tx *sql.Tx) error {
		saved = saved[:0]
		for idx, draft := range drafts {
			draft.OwnerID = uc.ID
			draft.Group = uc.Group
			draft.Shared = uc.Shared
			draft.Status = models.StatusActive

			query, args, err := buildInsertTransactionQuery(r.builder, draft)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}

			if err = tx.QueryRowContext(ctx, query, args...).Scan(&draft.ID); err != nil {
				log.Err(err).
					Str("func", "transactionRepository.Insert").
					Int("iteration", idx).
					Int64("user_id", uc.ID).
					Msg("failed to insert transaction")
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}

			saved = append(saved, draft)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("func", "transactionRepository.Insert").
		Int64("user_id", uc.ID).
		Int("count", len(saved)).
		Msg("transactions inserted")

	return saved, nil
}

// checkOwnership resolves a live transaction visible to uc and verifies
// that uc owns it.
func (r *transactionRepository) checkOwnership(ctx context.Context, tx *sql.Tx, id int64, uc models.UserContext) error {
	query, args, err := buildFindVisibleOwnerQuery(r.builder, id, uc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var ownerID int64
	err = tx.QueryRowContext(ctx, query, args...).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTransactionNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if ownerID != uc.ID {
		return ErrPermissionDenied
	}

	return nil
}

// Update applies the non-empty fields of patch and returns the stored row.
//
// Errors:
//   - [ErrTransactionNotFound] if the row is missing, deleted or not visible.
//   - [ErrPermissionDenied] if the row is visible but owned by another user.
func (r *transactionRepository) Update(ctx context.Context, id int64, patch models.TransactionPatch, uc models.UserContext) (models.Transaction, error) {
	log := logger.FromContext(ctx)

	var updated models.Transaction
	err := r.inTx(ctx, "transactionRepository.Update", func(tx *sql.Tx) error {
		if err := r.checkOwnership(ctx, tx, id, uc); err != nil {
			return err
		}

		if set := patchSetMap(patch); len(set) > 0 {
			query, args, err := buildUpdateTransactionQuery(r.builder, id, set)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		query, args, err := buildGetTransactionQuery(r.builder, id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if updated, err = scanTransaction(tx.QueryRowContext(ctx, query, args...)); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.Update").
			Int64("transaction_id", id).
			Int64("user_id", uc.ID).
			Msg("failed to update transaction")
		return models.Transaction{}, err
	}

	return updated, nil
}

// SoftDelete sets the status of a transaction to deleted. The row is kept.
// It performs the same visibility and ownership checks as Update.
func (r *transactionRepository) SoftDelete(ctx context.Context, id int64, uc models.UserContext) error {
	log := logger.FromContext(ctx)

	err := r.inTx(ctx, "transactionRepository.SoftDelete", func(tx *sql.Tx) error {
		if err := r.checkOwnership(ctx, tx, id, uc); err != nil {
			return err
		}

		query, args, err := buildSoftDeleteQuery(r.builder, id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.SoftDelete").
			Int64("transaction_id", id).
			Int64("user_id", uc.ID).
			Msg("failed to soft-delete transaction")
		return err
	}

	log.Info().
		Str("func", "transactionRepository.SoftDelete").
		Int64("transaction_id", id).
		Msg("transaction soft-deleted")

	return nil
}

// ListRecurringTemplates returns live recurring rows that are not
// materialised occurrences, optionally restricted to one owner.
func (r *transactionRepository) ListRecurringTemplates(ctx context.Context, ownerID *int64) ([]models.Transaction, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTemplatesQuery(r.builder, ownerID)
	if err != nil {
		log.Err(err).Str("func", "transactionRepository.ListRecurringTemplates").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "transactionRepository.ListRecurringTemplates").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return r.collect(ctx, rows, "transactionRepository.ListRecurringTemplates")
}

// MaterializeOccurrences stores the occurrences of one template in a single
// database transaction. Periods that already exist are skipped up front,
// and the unique (owner_id, template_id, period) key turns a concurrent
// duplicate into a no-op, so only rows actually written are counted.
func (r *transactionRepository) MaterializeOccurrences(ctx context.Context, templateID int64, occurrences []models.Transaction) (int, error) {
	log := logger.FromContext(ctx)

	if len(occurrences) == 0 {
		return 0, nil
	}

	var created int
	err := r.inTx(ctx, "transactionRepository.MaterializeOccurrences", func(tx *sql.Tx) error {
		created = 0

		existing, err := r.materializedPeriods(ctx, tx, templateID)
		if err != nil {
			return err
		}

		for _, occurrence := range occurrences {
			if occurrence.Period == nil {
				continue
			}
			if _, ok := existing[*occurrence.Period]; ok {
				continue
			}

			query, args, err := buildInsertOccurrenceQuery(r.builder, occurrence)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}

			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}

			affected, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			created += int(affected)
		}

		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "transactionRepository.MaterializeOccurrences").
			Int64("template_id", templateID).
			Msg("failed to materialize occurrences")
		return 0, err
	}

	return created, nil
}

func (r *transactionRepository) materializedPeriods(ctx context.Context, tx *sql.Tx, templateID int64) (map[string]struct{}, error) {
	query, args, err := buildMaterializedPeriodsQuery(r.builder, templateID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	periods := make(map[string]struct{})
	for rows.Next() {
		var period sql.NullString
		if err = rows.Scan(&period); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if period.Valid {
			periods[period.String] = struct{}{}
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return periods, nil
}

// Stats fills the transaction counters of [models.SystemStats].
func (r *transactionRepository) Stats(ctx context.Context) (models.SystemStats, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildTransactionStatsQuery(r.builder)
	if err != nil {
		return models.SystemStats{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var stats models.SystemStats
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(
		&stats.Transactions,
		&stats.IncomeRows,
		&stats.ExpenseRows,
		&stats.DeletedRows,
		&stats.RecurringRecords,
	)
	if err != nil {
		log.Err(err).Str("func", "transactionRepository.Stats").Msg("failed to count transactions")
		return models.SystemStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return stats, nil
}
