package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Syncer is the minimal interface the poller needs from the sync use-case.
type Syncer interface {
	// Reconcile runs one synchronization pass for the user.
	Reconcile(ctx context.Context, username string) error
}

// Poller periodically reconciles the active user's jobs with the backend.
// Cancellation is cooperative: Stop prevents the next tick from being
// scheduled, and cancelling the tick context makes a pass already in flight
// discard its responses instead of committing them.
type Poller struct {
	interval time.Duration
	syncer   Syncer
	username string
	log      *zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller constructs a poller that reconciles every `interval`.
// If interval <= 0 it defaults to 1500ms.
func NewPoller(interval time.Duration, syncer Syncer, username string, logger *zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = 1500 * time.Millisecond
	}
	plog := logger.With().Str("component", "Poller").Logger()
	return &Poller{
		interval: interval,
		syncer:   syncer,
		username: username,
		log:      &plog,
		done:     make(chan struct{}),
	}
}

// Start begins the polling loop in a background goroutine.
// Calling Start on a running poller has no effect.
func (p *Poller) Start(parentCtx context.Context) {
	if p.ctx != nil {
		// already started
		return
	}
	ctx, cancel := context.WithCancel(parentCtx)
	p.ctx = ctx
	p.cancel = cancel

	go p.loop()
}

func (p *Poller) loop() {
	ticker := time.NewTicker(p.interval)
	defer func() {
		ticker.Stop()
		close(p.done)
	}()

	p.log.Info().Dur("interval", p.interval).Str("username", p.username).Msg("poller started")
	for {
		select {
		case <-p.ctx.Done():
			p.log.Info().Msg("poller stopping")
			return
		case <-ticker.C:
			p.runOnce()
		}
	}
}

// runOnce executes a single reconciliation pass with a bounded timeout.
// A failed pass is logged and retried on the next tick.
func (p *Poller) runOnce() {
	runCtx, cancel := context.WithTimeout(p.ctx, 30*time.Second)
	defer cancel()
	if err := p.syncer.Reconcile(runCtx, p.username); err != nil && runCtx.Err() == nil {
		p.log.Warn().Err(err).Msg("reconciliation pass failed")
	}
}

// Stop cancels the poller and waits for the loop to finish. It is idempotent.
func (p *Poller) Stop() {
	if p.cancel == nil {
		// not started
		return
	}
	p.cancel()
	<-p.done
	// reset for potential restart
	p.ctx = nil
	p.cancel = nil
	p.done = make(chan struct{})
	p.log.Info().Msg("poller stopped")
}
