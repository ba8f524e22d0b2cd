package store

import "github.com/MKhiriev/go-family-finance/internal/logger"

// Storages bundles the repositories built on one [DB].
type Storages struct {
	TransactionRepository TransactionRepository
	UserRepository        UserRepository
	AccessLogRepository   AccessLogRepository
}

// NewStorages constructs every repository on top of db.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		TransactionRepository: NewTransactionRepository(db, logger),
		UserRepository:        NewUserRepository(db, logger),
		AccessLogRepository:   NewAccessLogRepository(db, logger),
	}
}
