// NetraGPT - conversational chatbot backend
// License: MIT
//
// Copyright (c) 2026 NetraGPT contributors

// Package sweeper runs the scheduled expired-session sweep. The orchestrator
// already sweeps probabilistically per request; the cron schedule covers idle
// periods when no requests arrive to trigger the coin flip.
package sweeper

import (
	"context"
	"time"

	"github.com/adhocore/gronx"

	"github.com/DMWllc/netragpt/pkg/logger"
	"github.com/DMWllc/netragpt/pkg/session"
	"github.com/DMWllc/netragpt/pkg/telemetry"
)

type Sweeper struct {
	store    *session.Store
	metrics  *telemetry.Store
	schedule string
	gron     *gronx.Gronx
	tick     time.Duration
}

func New(store *session.Store, metrics *telemetry.Store, schedule string) *Sweeper {
	if schedule == "" {
		schedule = "*/5 * * * *"
	}
	return &Sweeper{
		store:    store,
		metrics:  metrics,
		schedule: schedule,
		gron:     gronx.New(),
		tick:     time.Minute,
	}
}

// Valid reports whether the configured cron expression parses.
func (sw *Sweeper) Valid() bool {
	return sw.gron.IsValid(sw.schedule)
}

// Run blocks until ctx is cancelled, sweeping whenever the schedule is due.
func (sw *Sweeper) Run(ctx context.Context) {
	logger.InfoCF("sweeper", "Session sweeper started", map[string]interface{}{
		"schedule": sw.schedule,
	})

	ticker := time.NewTicker(sw.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.InfoC("sweeper", "Session sweeper stopped")
			return
		case now := <-ticker.C:
			due, err := sw.gron.IsDue(sw.schedule, now)
			if err != nil {
				logger.WarnCF("sweeper", "Bad sweep schedule", map[string]interface{}{
					"schedule": sw.schedule,
					"error":    err.Error(),
				})
				continue
			}
			if !due {
				continue
			}
			sw.sweep()
		}
	}
}

func (sw *Sweeper) sweep() {
	removed := sw.store.SweepExpired()
	if removed == 0 {
		return
	}
	if sw.metrics != nil {
		if err := sw.metrics.Record("sessions_swept", float64(removed), map[string]string{"source": "cron"}); err != nil {
			logger.WarnCF("sweeper", "Failed to record sweep metric", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}
