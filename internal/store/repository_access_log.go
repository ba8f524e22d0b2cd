package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/models"
)

type accessLogRepository struct {
	*DB
	logger *logger.Logger
}

// NewAccessLogRepository constructs an [AccessLogRepository] on db.
func NewAccessLogRepository(db *DB, logger *logger.Logger) AccessLogRepository {
	return &accessLogRepository{
		DB:     db,
		logger: logger,
	}
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (db *DB) appendAccessLog(ctx context.Context, ex execer, entry models.AccessLog) error {
	query, args, err := buildInsertAccessLogQuery(db.builder, entry)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = ex.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Append stores one audit entry outside of any other unit of work.
func (r *accessLogRepository) Append(ctx context.Context, entry models.AccessLog) error {
	if err := r.appendAccessLog(ctx, r.DB.DB, entry); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "accessLogRepository.Append").
			Int64("user_id", entry.UserID).
			Str("action", string(entry.Action)).
			Msg("failed to append access log")
		return err
	}
	return nil
}

// List returns the newest entries first. A zero limit returns everything.
func (r *accessLogRepository) List(ctx context.Context, limit uint64) ([]models.AccessLog, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListAccessLogsQuery(r.builder, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "accessLogRepository.List").Msg("failed to list access logs")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.AccessLog, 0, 64)
	for rows.Next() {
		var entry models.AccessLog
		if err = rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.Description, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entries = append(entries, entry)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}
