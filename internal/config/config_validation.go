// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// Defaults filled in by applyDefaults when no source sets the value.
const (
	DefaultDriver         = DriverPostgres
	DefaultBillingDay     = 10
	DefaultTokenIssuer    = "go-family-finance"
	DefaultTokenDuration  = 24 * time.Hour
	DefaultRequestTimeout = 30 * time.Second
	DefaultExchange       = "finance"
	DefaultRoutingKey     = "transactions.created"
)

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DefaultCategories is offered when FINANCE_CATEGORIES is not configured.
var DefaultCategories = []string{
	"Bills", "Clothing", "Delivery", "Education", "Emergencies", "Entertainment",
	"Fuel", "Gifts", "Groceries", "Health", "Hobbies", "Housing", "Income",
	"Internet", "Investment", "Leisure", "Other", "Personal", "Pets", "Rent",
	"Salary", "Services", "Streaming", "Taxes", "Transport", "Travel",
}

// DefaultPaymentMethods is offered when FINANCE_PAYMENT_METHODS is not
// configured. "Credit card" is detected as a card method.
var DefaultPaymentMethods = []string{
	"Bank slip", "Credit card", "Account debit", "Debit card", "Cash", "Pix",
	"Transfer", "Meal voucher",
}

func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = DefaultDriver
	}
	if cfg.Finance.BillingDay == 0 {
		cfg.Finance.BillingDay = DefaultBillingDay
	}
	if len(cfg.Finance.Categories) == 0 {
		cfg.Finance.Categories = DefaultCategories
	}
	if len(cfg.Finance.PaymentMethods) == 0 {
		cfg.Finance.PaymentMethods = DefaultPaymentMethods
	}
	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Adapter.RequestTimeout == 0 {
		cfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Events.Exchange == "" {
		cfg.Events.Exchange = DefaultExchange
	}
	if cfg.Events.RoutingKey == "" {
		cfg.Events.RoutingKey = DefaultRoutingKey
	}
}

// validate checks that the merged [StructuredConfig] can start the server.
func (cfg *StructuredConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: empty DSN", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.DB.Driver != DriverPostgres && cfg.Storage.DB.Driver != DriverSQLite {
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: empty address", ErrInvalidServerConfigs)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: empty token sign key", ErrInvalidAppConfigs)
	}

	if cfg.Finance.BillingDay < 1 || cfg.Finance.BillingDay > 31 {
		return fmt.Errorf("%w: billing day %d out of 1..31", ErrInvalidFinanceConfigs, cfg.Finance.BillingDay)
	}

	if cfg.Workers.SweepInterval < 0 {
		return fmt.Errorf("%w: negative sweep interval", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
