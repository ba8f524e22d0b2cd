package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/internal/service"
	"github.com/rs/zerolog"
)

// RecurrenceWorker materialises due recurring transactions for every owner
// once at startup and then on every tick.
type RecurrenceWorker struct {
	recurrence service.RecurrenceService
	interval   time.Duration
	logger     *logger.Logger
}

func NewRecurrenceWorker(recurrence service.RecurrenceService, interval time.Duration, log *logger.Logger) *RecurrenceWorker {
	child := log.GetChildLogger()
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("worker", "recurrence")
	})

	return &RecurrenceWorker{
		recurrence: recurrence,
		interval:   interval,
		logger:     child,
	}
}

func (w *RecurrenceWorker) Run(ctx context.Context) error {
	w.logger.Info().Dur("interval", w.interval).Msg("recurrence worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.sweep(ctx)

		select {
		case <-ctx.Done():
			w.logger.Info().Msg("recurrence worker stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// sweep never fails the worker: a broken run is retried on the next tick.
func (w *RecurrenceWorker) sweep(ctx context.Context) {
	created, err := w.recurrence.Sweep(w.logger.WithContext(ctx), nil)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Err(err).Str("func", "*RecurrenceWorker.sweep").Msg("recurrence sweep failed")
		}
		return
	}

	if created > 0 {
		w.logger.Info().Int("created", created).Msg("recurring transactions materialised")
	}
}
