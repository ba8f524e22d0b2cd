package service

import (
	"github.com/MKhiriev/go-family-finance/internal/config"
	"github.com/MKhiriev/go-family-finance/internal/events"
	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/internal/store"
	"github.com/MKhiriev/go-family-finance/models"
)

type Services struct {
	TransactionService TransactionService
	RecurrenceService  RecurrenceService
	AuthService        AuthService
	UserService        UserService
	AppInfoService     AppInfoService
}

func NewServices(storages *store.Storages, publisher events.Publisher, cfg *config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	transactions := NewTransactionService(storages.TransactionRepository, publisher, cfg.Finance, logger)
	auth := NewAuthService(storages.UserRepository, cfg.App, logger)
	users := NewUserService(storages, logger)

	return &Services{
		TransactionService: NewTransactionValidationService().Wrap(transactions),
		RecurrenceService:  NewRecurrenceService(storages.TransactionRepository, publisher, cfg.Finance, logger),
		AuthService:        NewAuthValidationService().Wrap(auth),
		UserService:        NewUserValidationService().Wrap(users),
		AppInfoService:     appInfo,
	}, nil
}
