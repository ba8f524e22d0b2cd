package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the HTTP endpoint address used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientCredentials are used to obtain a token before running a command.
type ClientCredentials struct {
	Username string
	Password string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport address and timeout.
	Adapter ClientAdapter
	// Credentials contains the login used by every command.
	Credentials ClientCredentials
	// Command is the positional arguments left after flag parsing, e.g.
	// ["summary", "2024-03"].
	Command []string
}

// GetClientConfig builds and validates a client-specific config view from
// the merged configuration sources.
//
// Unlike [GetStructuredConfig] it does not require server-only settings
// such as the DSN or token sign key.
func GetClientConfig() (*ClientConfig, error) {
	return getClientConfig(osArgs())
}

func getClientConfig(args []string) (*ClientConfig, error) {
	cfg, rest, err := newConfigBuilder().
		withDotEnv(".env").
		withEnv().
		withFlags(args).
		withJSON().
		build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Credentials: ClientCredentials{
			Username: cfg.Adapter.Username,
			Password: cfg.Adapter.Password,
		},
		Command: rest,
	}

	return clientCfg, clientCfg.validate()
}
