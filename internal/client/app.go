package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/MKhiriev/go-family-finance/internal/adapter"
	"github.com/MKhiriev/go-family-finance/internal/config"
	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/models"
)

// Usage lists the supported commands.
const Usage = `usage: finance-client [flags] <command> [args]

commands:
  version                          print the server version
  me                               show the logged-in user
  password <current> <new>         change the password
  list [from] [to]                 list visible transactions (YYYY-MM-DD)
  add <draft-json>                 record a transaction draft
  update <id> <patch-json>         change an own transaction
  delete <id>                      soft-delete an own transaction
  sweep                            materialise due recurring transactions
  summary [YYYY-MM]                monthly summary, current month by default
  catalog                          categories and payment methods
  users                            list users (admin)
  user-add <user-json>             create a user (admin)
  user-status <id> <true|false>    activate or deactivate a user (admin)
  user-role <id> <admin|standard>  change a user's role (admin)
  user-group <id> <group> [shared] move a user to a group (admin)
  stats                            installation statistics (admin)
  logs [limit]                     recent access log entries (admin)
`

type App struct {
	server      adapter.ServerAdapter
	credentials config.ClientCredentials
	command     []string
	out         io.Writer
	logger      *logger.Logger
}

func NewApp(server adapter.ServerAdapter, cfg *config.ClientConfig, out io.Writer, logger *logger.Logger) *App {
	return &App{
		server:      server,
		credentials: cfg.Credentials,
		command:     cfg.Command,
		out:         out,
		logger:      logger,
	}
}

func (a *App) Run(ctx context.Context) error {
	if len(a.command) == 0 {
		return ErrNoCommand
	}

	name, args := a.command[0], a.command[1:]
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	if len(args) < cmd.minArgs || len(args) > cmd.maxArgs {
		return fmt.Errorf("%w for %s", ErrUsage, name)
	}

	if cmd.needsLogin {
		user, err := a.server.Login(ctx, models.Credentials{
			Username: a.credentials.Username,
			Password: a.credentials.Password,
		})
		if err != nil {
			return fmt.Errorf("login: %w", err)
		}
		a.logger.Debug().Str("username", user.Username).Str("command", name).Msg("running command")
	}

	result, err := cmd.run(ctx, a.server, args)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return a.print(result)
}

func (a *App) print(result any) error {
	if result == nil {
		_, err := fmt.Fprintln(a.out, "ok")
		return err
	}
	if s, ok := result.(string); ok {
		_, err := fmt.Fprintln(a.out, s)
		return err
	}

	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
