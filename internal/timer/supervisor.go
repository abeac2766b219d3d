// Package timer implements the kitchen timer board and the background
// supervisor that counts running timers down and rings when they expire.
package timer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// Option tunes a Supervisor.
type Option func(*Supervisor)

// WithTickInterval sets the countdown step. Default 1s.
func WithTickInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.tickInterval = d
	}
}

// WithNotifyCooldown sets the gap between alarms for a timer that keeps ringing.
func WithNotifyCooldown(d time.Duration) Option {
	return func(s *Supervisor) {
		s.notifyCooldown = d
	}
}

// WithMaxEscalation caps how many times a ringing timer is re-announced.
func WithMaxEscalation(level int) Option {
	return func(s *Supervisor) {
		s.maxEscalation = level
	}
}

// WithReminderInterval sets how often running timers send periodic reminders.
// Zero disables reminders.
func WithReminderInterval(d time.Duration) Option {
	return func(s *Supervisor) {
		s.reminderInterval = d
	}
}

// WithAlmostDoneThreshold sets how close to expiry a timer must be to
// trigger the "almost done" warning.
func WithAlmostDoneThreshold(d time.Duration) Option {
	return func(s *Supervisor) {
		s.almostDoneThreshold = d
	}
}

// WithWatcher enables the board watcher on its own slower cycle.
func WithWatcher(opts ...WatcherOption) Option {
	return func(s *Supervisor) {
		s.watch = true
		s.watcherOpts = opts
	}
}

// Supervisor counts running timers down on the board and announces them
// through the notifier as they run out.
type Supervisor struct {
	board               *Board
	notifier            domain.Notifier
	log                 *logger.Logger
	tickInterval        time.Duration
	notifyCooldown      time.Duration
	maxEscalation       int
	reminderInterval    time.Duration
	almostDoneThreshold time.Duration

	watch       bool
	watcherOpts []WatcherOption
	watcher     *Watcher

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
}

// New creates a timer supervisor over board.
func New(board *Board, notifier domain.Notifier, log *logger.Logger, opts ...Option) *Supervisor {
	s := &Supervisor{
		board:               board,
		notifier:            notifier,
		log:                 log,
		tickInterval:        1 * time.Second,
		notifyCooldown:      15 * time.Second,
		maxEscalation:       3,
		reminderInterval:    5 * time.Minute,
		almostDoneThreshold: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches the countdown loop and returns immediately.
func (s *Supervisor) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.log.Warn("timer supervisor already running")
		return
	}

	childCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	go s.loop(childCtx)

	if s.watch {
		s.watcher = NewWatcher(s.board, s.notifier, s.log, s.watcherOpts...)
		go s.watcher.Run(childCtx)
	}

	s.log.Info("timer supervisor started (tick=%s, cooldown=%s)", s.tickInterval, s.notifyCooldown)
}

// Stop shuts the supervisor down. Safe to call more than once.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.running = false
	s.log.Info("timer supervisor stopped")
}

// loop is the main tick loop.
func (s *Supervisor) loop(ctx context.Context) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// notice is a notification decided under the board lock and sent after it.
type notice struct {
	msg    string
	urgent bool
}

// tick runs one cycle: decrement timers, then deliver notifications.
func (s *Supervisor) tick(ctx context.Context) {
	var out []notice
	now := time.Now()

	err := s.board.sweep(ctx, func(t *domain.Timer) bool {
		n, changed := s.advance(t, now)
		if n != nil {
			out = append(out, *n)
		}
		return changed
	})
	if err != nil {
		s.log.Error("supervisor: sweeping timers: %v", err)
	}

	for _, n := range out {
		send := s.notifier.Notify
		if n.urgent {
			send = s.notifier.NotifyUrgent
		}
		if err := send(ctx, n.msg); err != nil {
			s.log.Error("supervisor: notify: %v", err)
		}
	}
}

// advance moves a single timer forward by one tick.
func (s *Supervisor) advance(t *domain.Timer, now time.Time) (*notice, bool) {
	switch t.Status {
	case domain.TimerRunning:
		t.Remaining -= s.tickInterval

		if t.Remaining <= 0 {
			t.Remaining = 0
			t.Status = domain.TimerFired
			t.EscalationLevel = 0
			s.log.Debug("timer %s (%s) fired", t.ID, t.Name)
			msg := escalationMessage(t)
			t.LastNotified = now
			t.EscalationLevel = 1
			return &notice{msg: msg, urgent: true}, true
		}

		// "Almost done" warning, once, when remaining crosses the threshold.
		if !t.WarnedAlmost && t.Remaining <= s.almostDoneThreshold && t.Duration > s.almostDoneThreshold*2 {
			t.WarnedAlmost = true
			t.LastRemindedAt = now
			return &notice{msg: fmt.Sprintf("[Timer] %s: almost done, %s left.", t.Name, formatRemaining(t.Remaining))}, true
		}

		if s.reminderInterval > 0 && t.Duration > s.reminderInterval {
			var due bool
			if t.LastRemindedAt.IsZero() {
				due = t.Duration-t.Remaining >= s.reminderInterval
			} else {
				due = now.Sub(t.LastRemindedAt) >= s.reminderInterval
			}
			if due {
				t.LastRemindedAt = now
				return &notice{msg: fmt.Sprintf("[Timer] %s: %s remaining.", t.Name, formatRemaining(t.Remaining))}, true
			}
		}
		return nil, true

	case domain.TimerFired:
		if t.EscalationLevel > s.maxEscalation {
			return nil, false // Stop nagging.
		}
		if !t.LastNotified.IsZero() && now.Sub(t.LastNotified) < s.notifyCooldown {
			return nil, false
		}
		msg := escalationMessage(t)
		t.LastNotified = now
		t.EscalationLevel++
		return &notice{msg: msg}, true
	}
	return nil, false
}

// escalationMessage returns a message based on the escalation level.
func escalationMessage(t *domain.Timer) string {
	switch t.EscalationLevel {
	case 0:
		return fmt.Sprintf("[Timer] %s is up.", t.Name)
	case 1:
		return fmt.Sprintf("[Timer] %s -- check it now.", t.Name)
	case 2:
		return fmt.Sprintf("[Timer] %s. Now.", t.Name)
	default:
		return fmt.Sprintf("[Timer] %s is still ringing.", t.Name)
	}
}

// formatRemaining returns a human-friendly spoken duration for timer reminders.
// Rounds to the nearest minute once there's at least 1 minute left.
func formatRemaining(d time.Duration) string {
	d = d.Round(time.Second)
	totalSec := int(d.Seconds())
	if totalSec < 60 {
		if totalSec == 1 {
			return "1 second"
		}
		return fmt.Sprintf("%d seconds", totalSec)
	}
	m := (totalSec + 30) / 60
	if m == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", m)
}
