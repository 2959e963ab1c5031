package autoscroll

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// DefaultInterval is the delay between automatic advances when none is configured
const DefaultInterval = 10 * time.Second

// Timer calls advance once per interval while running.
//
// The timer shares its owner's lock: Start, Stop, Toggle and Running must be
// called with mu held, and advance is always invoked with mu held. A tick that
// races with Stop is discarded, so no advance happens after Stop returns.
type Timer struct {
	logger   *zap.Logger
	clock    clockwork.Clock
	interval time.Duration
	mu       sync.Locker
	advance  func()

	ticker clockwork.Ticker
	cancel context.CancelFunc
	wg     sync.WaitGroup // Tracks the tick goroutine
}

// NewTimer creates a stopped timer. A non-positive interval uses DefaultInterval.
func NewTimer(
	logger *zap.Logger,
	clock clockwork.Clock,
	interval time.Duration,
	mu sync.Locker,
	advance func(),
) *Timer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Timer{
		logger:   logger,
		clock:    clock,
		interval: interval,
		mu:       mu,
		advance:  advance,
	}
}

// Interval returns the delay between advances
func (t *Timer) Interval() time.Duration {
	return t.interval
}

// Running reports whether the timer is scheduled
func (t *Timer) Running() bool {
	return t.cancel != nil
}

// Start schedules a fresh countdown, restarting it if already running
func (t *Timer) Start() {
	t.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.ticker = t.clock.NewTicker(t.interval)

	t.wg.Add(1)
	go t.run(ctx, t.ticker)

	t.logger.Debug("Auto-scroll started", zap.Duration("interval", t.interval))
}

// Stop cancels the schedule. Stopping a stopped timer is a no-op.
func (t *Timer) Stop() {
	if t.cancel == nil {
		return
	}

	t.cancel()
	t.ticker.Stop()
	t.cancel = nil
	t.ticker = nil

	t.logger.Debug("Auto-scroll stopped")
}

// Toggle flips between running and stopped and returns the new state
func (t *Timer) Toggle() bool {
	if t.Running() {
		t.Stop()
	} else {
		t.Start()
	}
	return t.Running()
}

// Shutdown stops the timer and waits for its goroutine to exit.
// It acquires mu itself, so it must be called without holding it.
func (t *Timer) Shutdown() {
	t.mu.Lock()
	t.Stop()
	t.mu.Unlock()

	t.wg.Wait()
}

func (t *Timer) run(ctx context.Context, ticker clockwork.Ticker) {
	defer t.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			t.mu.Lock()
			// Stop may have won the race for the lock
			if ctx.Err() == nil {
				t.advance()
			}
			t.mu.Unlock()
		}
	}
}
