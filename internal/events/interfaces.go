// Package events publishes domain events about stored transactions to a
// message broker. Publishing is best effort: a failure is logged by the
// caller and never rolls back the stored rows.
package events

//go:generate mockgen -source=interfaces.go -destination=../mock/events_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-family-finance/models"
)

// Publisher sends transaction events.
type Publisher interface {
	Publish(ctx context.Context, event models.TransactionEvent) error
	Close() error
}
