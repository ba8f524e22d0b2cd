package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-family-finance/internal/config"
	"github.com/MKhiriev/go-family-finance/internal/events"
	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/internal/schedule"
	"github.com/MKhiriev/go-family-finance/internal/store"
	"github.com/MKhiriev/go-family-finance/models"
)

type recurrenceService struct {
	transactions store.TransactionRepository
	publisher    events.Publisher
	billingDay   int
	today        func() models.Date
	logger       *logger.Logger
}

// NewRecurrenceService constructs a [RecurrenceService].
func NewRecurrenceService(transactions store.TransactionRepository, publisher events.Publisher, cfg config.Finance, logger *logger.Logger) RecurrenceService {
	return &recurrenceService{
		transactions: transactions,
		publisher:    publisher,
		billingDay:   cfg.BillingDay,
		today:        models.Today,
		logger:       logger,
	}
}

// Sweep materialises every due occurrence up to today. Each template is
// stored in its own database transaction; a template that fails is logged
// and skipped so the others still run. Running Sweep twice creates nothing
// the second time.
func (s *recurrenceService) Sweep(ctx context.Context, uc *models.UserContext) (int, error) {
	log := logger.FromContext(ctx)

	var ownerID *int64
	if uc != nil && !uc.IsAdmin() {
		id := uc.ID
		ownerID = &id
	}

	templates, err := s.transactions.ListRecurringTemplates(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to list recurring templates: %w", err)
	}

	today := s.today()
	total := 0
	for _, template := range templates {
		occurrences := schedule.DueOccurrences(template, today, s.billingDay)
		if len(occurrences) == 0 {
			continue
		}

		created, err := s.transactions.MaterializeOccurrences(ctx, template.ID, occurrences)
		if err != nil {
			log.Err(err).
				Str("func", "recurrenceService.Sweep").
				Int64("template_id", template.ID).
				Int64("owner_id", template.OwnerID).
				Msg("failed to materialize template, skipping")
			continue
		}
		if created == 0 {
			continue
		}
		total += created

		if err = s.publisher.Publish(ctx, models.NewOccurrencesMaterializedEvent(template, created)); err != nil {
			log.Warn().Err(err).
				Str("func", "recurrenceService.Sweep").
				Int64("template_id", template.ID).
				Msg("failed to publish occurrences event")
		}
	}

	log.Info().
		Str("func", "recurrenceService.Sweep").
		Int("templates", len(templates)).
		Int("created", total).
		Msg("recurrence sweep finished")

	return total, nil
}
