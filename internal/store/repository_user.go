package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/models"
)

// userRepository is the database/sql implementation of [UserRepository].
// It handles account creation, lookup and the admin state changes against
// the "users" table.
type userRepository struct {
	*DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
		&u.Name,
		&u.Email,
		&u.Active,
		&u.Group,
		&u.Shared,
		&u.MayShare,
		&u.CreatedAt,
		&u.LastLoginAt,
	)
	return u, err
}

// Create persists a new user together with its USER_CREATED audit row and
// returns the user with its generated ID.
//
// A taken username is reported as [ErrUsernameAlreadyExists]. When
// audit.UserID is zero it is set to the new user's id.
func (r *userRepository) Create(ctx context.Context, user models.User, audit models.AccessLog) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	err := r.inTx(ctx, "userRepository.Create", func(tx *sql.Tx) error {
		query, args, err := buildInsertUserQuery(r.builder, user)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		if err = tx.QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
			if r.errorClassificator.IsUniqueViolation(err) {
				return ErrUsernameAlreadyExists
			}
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}

		if audit.UserID == 0 {
			audit.UserID = user.ID
		}
		return r.appendAccessLog(ctx, tx, audit)
	})
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.Create").
			Str("username", user.Username).
			Msg("failed to create user")
		return models.User{}, err
	}

	return user, nil
}

// FindByUsername returns the user with the given login name or
// [ErrNoUserWasFound].
func (r *userRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, "userRepository.FindByUsername", sq.Eq{"username": username})
}

// FindByID returns the user with the given id or [ErrNoUserWasFound].
func (r *userRepository) FindByID(ctx context.Context, id int64) (models.User, error) {
	return r.findOne(ctx, "userRepository.FindByID", sq.Eq{"id": id})
}

func (r *userRepository) findOne(ctx context.Context, funcName string, where sq.Sqlizer) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserQuery(r.builder, where)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to find user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// List returns every user, admins first, then ordered by username.
func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery(r.builder)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "userRepository.List").Msg("failed to list users")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 16)
	for rows.Next() {
		user, scanErr := scanUser(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// TouchLastLogin stamps the last login time and records the LOGIN entry.
func (r *userRepository) TouchLastLogin(ctx context.Context, id int64, audit models.AccessLog) error {
	return r.updateWithAudit(ctx, "userRepository.TouchLastLogin", id, map[string]any{
		"last_login_at": time.Now().UTC(),
	}, audit)
}

// SetActive activates or deactivates an account.
func (r *userRepository) SetActive(ctx context.Context, id int64, active bool, audit models.AccessLog) error {
	return r.updateWithAudit(ctx, "userRepository.SetActive", id, map[string]any{
		"active": active,
	}, audit)
}

// SetRole changes the role of an account.
func (r *userRepository) SetRole(ctx context.Context, id int64, role models.Role, audit models.AccessLog) error {
	return r.updateWithAudit(ctx, "userRepository.SetRole", id, map[string]any{
		"role": string(role),
	}, audit)
}

// SetGroup moves an account to another sharing group.
func (r *userRepository) SetGroup(ctx context.Context, id int64, change models.GroupChange, audit models.AccessLog) error {
	return r.updateWithAudit(ctx, "userRepository.SetGroup", id, map[string]any{
		"group_id": change.Group,
		"shared":   change.Shared,
	}, audit)
}

// SetPasswordHash replaces the stored password hash.
func (r *userRepository) SetPasswordHash(ctx context.Context, id int64, hash string, audit models.AccessLog) error {
	return r.updateWithAudit(ctx, "userRepository.SetPasswordHash", id, map[string]any{
		"password_hash": hash,
	}, audit)
}

// updateWithAudit changes one user row and appends audit in the same
// database transaction. [ErrNoUserWasFound] is returned when no row matched.
func (r *userRepository) updateWithAudit(ctx context.Context, funcName string, id int64, set map[string]any, audit models.AccessLog) error {
	log := logger.FromContext(ctx)

	err := r.inTx(ctx, funcName, func(tx *sql.Tx) error {
		query, args, err := buildUpdateUserQuery(r.builder, id, set)
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
		if affected == 0 {
			return ErrNoUserWasFound
		}

		return r.appendAccessLog(ctx, tx, audit)
	})
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Int64("user_id", id).
			Msg("failed to update user")
		return err
	}

	return nil
}

// Stats fills the user counters of [models.SystemStats].
func (r *userRepository) Stats(ctx context.Context) (models.SystemStats, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUserStatsQuery(r.builder)
	if err != nil {
		return models.SystemStats{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var stats models.SystemStats
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(
		&stats.Users,
		&stats.Admins,
		&stats.ActiveUsers,
		&stats.SharedUsers,
		&stats.PrivateUsers,
		&stats.Groups,
	)
	if err != nil {
		log.Err(err).Str("func", "userRepository.Stats").Msg("failed to count users")
		return models.SystemStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return stats, nil
}
