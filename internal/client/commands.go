package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-family-finance/internal/adapter"
	"github.com/MKhiriev/go-family-finance/models"
)

type command struct {
	minArgs    int
	maxArgs    int
	needsLogin bool
	// run returns the value to print; nil prints "ok".
	run func(ctx context.Context, server adapter.ServerAdapter, args []string) (any, error)
}

var commands = map[string]command{
	"version": {run: func(ctx context.Context, s adapter.ServerAdapter, _ []string) (any, error) {
		return s.Version(ctx)
	}},
	"me": {needsLogin: true, run: func(ctx context.Context, s adapter.ServerAdapter, _ []string) (any, error) {
		return s.Me(ctx)
	}},
	"password": {minArgs: 2, maxArgs: 2, needsLogin: true, run: func(ctx context.Context, s adapter.ServerAdapter, args []string) (any, error) {
		return nil, s.ChangePassword(ctx, models.PasswordChange{CurrentPassword: args[0], NewPassword: args[1]})
	}},
	"list": {maxArgs: 2, needsLogin: true, run: listTransactions},
	"add": {minArgs: 1, maxArgs: 1, needsLogin: true, run: func(ctx context.Context, s adapter.ServerAdapter, args []string) (any, error) {
		var draft models.TransactionDraft
		if err := json.Unmarshal([]byte(args[0]), &draft); err != nil {
			return nil, fmt.Errorf("%w: draft: %w", ErrUsage, err)
		}
		return s.CreateTransaction(ctx, draft)
	}},
	"update": {minArgs: 2, maxArgs: 2, needsLogin: true, run: func(ctx context.Context, s adapter.ServerAdapter, args []string) (any, error) {
		id, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		var patch models.TransactionPatch
		if err = json.Unmarshal([]byte(args[1]), &patch); err != nil {
			return nil, fmt.Errorf("%w: patch: %w", ErrUsage, err)
		}
		return s.UpdateTransaction(ctx, id, patch)
	}},
	"delete": {minArgs: 1, maxArgs: 1, needsLogin: true, run: func(ctx context.Context, s adapter.ServerAdapter, args []string) (any, error) {
		id, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		return nil, s.DeleteTransaction(ctx, id)
	}},
	"sweep": {needsLogin: true, run: func(ctx context.Context, s adapter.ServerAdapter, _ []string) (any, error) {
		return s.SweepRecurrences(ctx)
	}},
	"summary": {maxArgs: 1, needsLogin: true, run: func(ctx context.Context, s adapter.ServerAdapter, args []string) (any, error) {
		var period string
		if len(args) == 1 {
			period = args[0]
		}
		return s.MonthlySummary(ctx, period)
	}},
	"catalog": {needsLogin: true, run: func(ctx context.Context, s adapter.ServerAdapter, _ []string) (any, error) {
		return s.Catalog(ctx)
	}},
	"users": {needsLogin: true, run: func(ctx context.Context, s adapter.ServerAdapter, _ []string) (any, error) {
		return s.ListUsers(ctx)
	}},
	"user-add": {minArgs: 1, maxArgs: 1, needsLogin: true, run: func(ctx context.Context, s adapter.ServerAdapter, args []string) (any, error) {
		var user models.NewUser
		if err := json.Unmarshal([]byte(args[0]), &user); err != nil {
			return nil, fmt.Errorf("%w: user: %w", ErrUsage, err)
		}
		return s.CreateUser(ctx, user)
	}},
	"user-status": {minArgs: 2, maxArgs: 2, needsLogin: true, run: func(ctx context.Context, s adapter.ServerAdapter, args []string) (any, error) {
		id, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		active, err := strconv.ParseBool(args[1])
		if err != nil {
			return nil, fmt.Errorf("%w: status must be true or false", ErrUsage)
		}
		return nil, s.SetUserActive(ctx, id, active)
	}},
	"user-role": {minArgs: 2, maxArgs: 2, needsLogin: true, run: func(ctx context.Context, s adapter.ServerAdapter, args []string) (any, error) {
		id, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		return nil, s.SetUserRole(ctx, id, models.Role(args[1]))
	}},
	"user-group": {minArgs: 2, maxArgs: 3, needsLogin: true, run: func(ctx context.Context, s adapter.ServerAdapter, args []string) (any, error) {
		id, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		change := models.GroupChange{Group: args[1]}
		if len(args) == 3 {
			if change.Shared, err = strconv.ParseBool(args[2]); err != nil {
				return nil, fmt.Errorf("%w: shared must be true or false", ErrUsage)
			}
		}
		return nil, s.SetUserGroup(ctx, id, change)
	}},
	"stats": {needsLogin: true, run: func(ctx context.Context, s adapter.ServerAdapter, _ []string) (any, error) {
		return s.Stats(ctx)
	}},
	"logs": {maxArgs: 1, needsLogin: true, run: func(ctx context.Context, s adapter.ServerAdapter, args []string) (any, error) {
		var limit uint64
		if len(args) == 1 {
			var err error
			if limit, err = strconv.ParseUint(args[0], 10, 64); err != nil {
				return nil, fmt.Errorf("%w: limit must be a positive number", ErrUsage)
			}
		}
		return s.AccessLogs(ctx, limit)
	}},
}

func listTransactions(ctx context.Context, s adapter.ServerAdapter, args []string) (any, error) {
	var filter models.TransactionFilter
	var err error
	if len(args) > 0 {
		if filter.From, err = models.ParseDate(args[0]); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUsage, err)
		}
	}
	if len(args) > 1 {
		if filter.To, err = models.ParseDate(args[1]); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUsage, err)
		}
	}
	return s.ListTransactions(ctx, filter)
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive number", ErrUsage)
	}
	return id, nil
}
