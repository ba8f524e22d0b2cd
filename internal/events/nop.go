package events

import (
	"context"

	"github.com/MKhiriev/go-family-finance/models"
)

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, models.TransactionEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
