package timer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// WatcherOption configures the watcher.
type WatcherOption func(*Watcher)

// WithWatchInterval sets how often the watcher looks at the board.
func WithWatchInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.interval = d
	}
}

// WithPauseNudge sets how long a timer may sit paused before the watcher
// mentions it.
func WithPauseNudge(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.pauseNudge = d
	}
}

// Watcher periodically looks at the whole board and nudges about things
// the supervisor no longer reports: timers left ringing after escalation
// ran out, and timers forgotten in the paused state. Runs on a slower cycle
// than the supervisor (default: 1 minute).
type Watcher struct {
	board      *Board
	notifier   domain.Notifier
	log        *logger.Logger
	interval   time.Duration
	pauseNudge time.Duration
	now        func() time.Time
}

// NewWatcher creates a watcher over board.
func NewWatcher(board *Board, notifier domain.Notifier, log *logger.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		board:      board,
		notifier:   notifier,
		log:        log,
		interval:   1 * time.Minute,
		pauseNudge: 5 * time.Minute,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run starts the watcher loop. Blocks until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("watcher started (interval=%s)", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("watcher stopped")
			return
		case <-ticker.C:
			w.check(ctx)
		}
	}
}

// check runs one watcher cycle.
func (w *Watcher) check(ctx context.Context) {
	timers, err := w.board.List(ctx)
	if err != nil {
		w.log.Error("watcher: listing timers: %v", err)
		return
	}

	msg := w.buildMessage(timers)
	if msg == "" {
		w.log.Debug("watcher: %d timers, nothing to report", len(timers))
		return
	}
	if err := w.notifier.Notify(ctx, msg); err != nil {
		w.log.Error("watcher: notify: %v", err)
	}
}

// buildMessage decides what to say about the board, or "" for nothing.
func (w *Watcher) buildMessage(timers []*domain.Timer) string {
	now := w.now()

	var fired, stale []string
	for _, t := range timers {
		w.log.Debug("watcher: timer %s (%s) status=%s remaining=%s escalation=%d",
			t.ID, t.Name, t.Status, t.Remaining.Round(time.Second), t.EscalationLevel)

		switch t.Status {
		case domain.TimerFired:
			fired = append(fired, t.Name)
		case domain.TimerPaused:
			if !t.PausedAt.IsZero() && now.Sub(t.PausedAt) >= w.pauseNudge {
				stale = append(stale, fmt.Sprintf("%s (%s left)", t.Name, FormatClock(t.Remaining)))
			}
		}
	}

	// Ringing timers take priority, something needs attention.
	if len(fired) > 0 {
		return fmt.Sprintf("[Watcher] Heads up, %s still ringing. Say \"dismiss\" when you're on it.", joinNames(fired))
	}
	if len(stale) > 0 {
		return fmt.Sprintf("[Watcher] %s paused for a while. Your food isn't cooking itself.", joinNames(stale))
	}
	return ""
}

// joinNames joins names as "a", "a and b", or "a, b and c".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
