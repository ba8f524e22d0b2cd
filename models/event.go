package models

import "time"

// EventType names a published domain event.
type EventType string

const (
	// EventTransactionsCreated is emitted after a create request commits.
	EventTransactionsCreated EventType = "transactions.created"
	// EventOccurrencesMaterialized is emitted after the sweep stores new
	// occurrences of a template.
	EventOccurrencesMaterialized EventType = "occurrences.materialized"
)

// TransactionEvent is the message body published to the broker. It carries
// ids only; consumers read the rows they need.
type TransactionEvent struct {
	Type           EventType `json:"type"`
	OwnerID        int64     `json:"owner_id"`
	TemplateID     *int64    `json:"template_id,omitempty"`
	TransactionIDs []int64   `json:"transaction_ids,omitempty"`
	Count          int       `json:"count"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewTransactionsCreatedEvent describes rows stored by one create request.
func NewTransactionsCreatedEvent(ownerID int64, saved []Transaction) TransactionEvent {
	ids := make([]int64, 0, len(saved))
	for _, t := range saved {
		ids = append(ids, t.ID)
	}

	return TransactionEvent{
		Type:           EventTransactionsCreated,
		OwnerID:        ownerID,
		TransactionIDs: ids,
		Count:          len(ids),
		OccurredAt:     time.Now().UTC(),
	}
}

// NewOccurrencesMaterializedEvent describes one template's sweep result.
func NewOccurrencesMaterializedEvent(template Transaction, created int) TransactionEvent {
	templateID := template.ID
	return TransactionEvent{
		Type:       EventOccurrencesMaterialized,
		OwnerID:    template.OwnerID,
		TemplateID: &templateID,
		Count:      created,
		OccurredAt: time.Now().UTC(),
	}
}
