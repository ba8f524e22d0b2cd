// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-family-finance/internal/config"
	"github.com/MKhiriev/go-family-finance/internal/logger"
	"github.com/MKhiriev/go-family-finance/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingWorker counts its runs and blocks until cancelled.
type blockingWorker struct {
	runs atomic.Int32
}

func (m *blockingWorker) Run(ctx context.Context) error {
	m.runs.Add(1)
	<-ctx.Done()
	return nil
}

type failingWorker struct{ err error }

func (f failingWorker) Run(context.Context) error { return f.err }

func TestWorkers_Run_AllWorkersStartAndStop(t *testing.T) {
	w1, w2 := &blockingWorker{}, &blockingWorker{}
	ws := &Workers{workers: []Worker{w1, w2}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ws.Run(ctx) }()

	require.Eventually(t, func() bool {
		return w1.runs.Load() == 1 && w2.runs.Load() == 1
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWorkers_Run_FirstErrorCancelsOthers(t *testing.T) {
	boom := errors.New("boom")
	blocker := &blockingWorker{}
	ws := &Workers{workers: []Worker{blocker, failingWorker{err: boom}}}

	err := ws.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{}
	assert.NoError(t, ws.Run(context.Background()))
}

func TestNewWorkers_SweepIntervalToggle(t *testing.T) {
	services := &service.Services{RecurrenceService: &fakeRecurrence{}}

	disabled := NewWorkers(services, config.Workers{}, logger.Nop())
	assert.Empty(t, disabled.workers)

	enabled := NewWorkers(services, config.Workers{SweepInterval: time.Minute}, logger.Nop())
	require.Len(t, enabled.workers, 1)
	assert.IsType(t, &RecurrenceWorker{}, enabled.workers[0])
}
