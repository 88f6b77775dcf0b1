//go:build !integration

package sched_test

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"smart-ocr-client/internal/infra/sched"
)

type countingSyncer struct {
	passes   atomic.Int64
	lastUser atomic.Value
}

func (c *countingSyncer) Reconcile(ctx context.Context, username string) error {
	c.passes.Add(1)
	c.lastUser.Store(username)
	return nil
}

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}

func TestPoller(t *testing.T) {
	t.Run("ticks repeatedly for the configured user", func(t *testing.T) {
		syncer := &countingSyncer{}
		p := sched.NewPoller(10*time.Millisecond, syncer, "alice", newTestLogger())
		p.Start(context.Background())
		defer p.Stop()

		waitFor(t, time.Second, func() bool { return syncer.passes.Load() >= 3 })
		if got := syncer.lastUser.Load(); got != "alice" {
			t.Errorf("username = %v", got)
		}
	})

	t.Run("stop halts ticking", func(t *testing.T) {
		syncer := &countingSyncer{}
		p := sched.NewPoller(10*time.Millisecond, syncer, "alice", newTestLogger())
		p.Start(context.Background())
		waitFor(t, time.Second, func() bool { return syncer.passes.Load() >= 1 })
		p.Stop()

		after := syncer.passes.Load()
		time.Sleep(50 * time.Millisecond)
		if got := syncer.passes.Load(); got != after {
			t.Errorf("poller ticked after Stop: %d -> %d", after, got)
		}
	})

	t.Run("start is a no-op while running", func(t *testing.T) {
		syncer := &countingSyncer{}
		p := sched.NewPoller(10*time.Millisecond, syncer, "alice", newTestLogger())
		p.Start(context.Background())
		p.Start(context.Background())
		defer p.Stop()

		waitFor(t, time.Second, func() bool { return syncer.passes.Load() >= 2 })
	})

	t.Run("stop is idempotent and permits restart", func(t *testing.T) {
		syncer := &countingSyncer{}
		p := sched.NewPoller(10*time.Millisecond, syncer, "alice", newTestLogger())
		p.Stop() // never started

		p.Start(context.Background())
		waitFor(t, time.Second, func() bool { return syncer.passes.Load() >= 1 })
		p.Stop()
		p.Stop()

		first := syncer.passes.Load()
		p.Start(context.Background())
		defer p.Stop()
		waitFor(t, time.Second, func() bool { return syncer.passes.Load() > first })
	})

	t.Run("parent context cancellation stops the loop", func(t *testing.T) {
		syncer := &countingSyncer{}
		p := sched.NewPoller(10*time.Millisecond, syncer, "alice", newTestLogger())
		ctx, cancel := context.WithCancel(context.Background())
		p.Start(ctx)
		waitFor(t, time.Second, func() bool { return syncer.passes.Load() >= 1 })
		cancel()

		time.Sleep(30 * time.Millisecond)
		after := syncer.passes.Load()
		time.Sleep(50 * time.Millisecond)
		if got := syncer.passes.Load(); got != after {
			t.Errorf("poller ticked after cancellation: %d -> %d", after, got)
		}
	})
}
