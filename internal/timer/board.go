package timer

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// CountdownName is the name of the standalone countdown driven by the
// "+1 / +5 / +10 min" buttons.
const CountdownName = "Countdown"

// Board owns the set of kitchen timers. Every read-modify-write goes through
// the board's lock so the supervisor and user commands never overwrite each
// other.
type Board struct {
	mu    sync.Mutex
	store domain.TimerStore
	log   *logger.Logger
	now   func() time.Time
}

// NewBoard creates a board backed by store.
func NewBoard(store domain.TimerStore, log *logger.Logger) *Board {
	return &Board{store: store, log: log, now: time.Now}
}

// Add creates an idle timer. The name is required and minutes must be positive.
func (b *Board) Add(ctx context.Context, name string, minutes float64) (*domain.Timer, error) {
	name = strings.TrimSpace(name)
	d, err := minutesToDuration(minutes)
	if name == "" || err != nil {
		return nil, domain.ErrInvalidTimer
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	t := &domain.Timer{
		ID:        uuid.New().String(),
		Name:      name,
		Duration:  d,
		Remaining: d,
		Status:    domain.TimerIdle,
		CreatedAt: b.now(),
	}
	if err := b.store.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("saving timer: %w", err)
	}
	b.log.Info("timer added: %s (%s)", t.Name, d)
	return t, nil
}

// Get returns a timer by ID.
func (b *Board) Get(ctx context.Context, id string) (*domain.Timer, error) {
	return b.store.Load(ctx, id)
}

// List returns all timers in creation order.
func (b *Board) List(ctx context.Context) ([]*domain.Timer, error) {
	return b.store.List(ctx)
}

// Toggle starts an idle or paused timer and pauses a running one.
func (b *Board) Toggle(ctx context.Context, id string) (*domain.Timer, error) {
	return b.update(ctx, id, func(t *domain.Timer) error {
		switch t.Status {
		case domain.TimerRunning:
			t.Status = domain.TimerPaused
			t.PausedAt = b.now()
		case domain.TimerIdle, domain.TimerPaused:
			t.Status = domain.TimerRunning
			t.StartedAt = b.now()
		case domain.TimerFired:
			return domain.ErrTimerFired
		}
		return nil
	})
}

// Reset puts the timer back to its full duration, idle.
func (b *Board) Reset(ctx context.Context, id string) (*domain.Timer, error) {
	return b.update(ctx, id, func(t *domain.Timer) error {
		resetTimer(t)
		return nil
	})
}

// AddTime extends a timer by minutes. A fired timer comes back paused with
// the added time on the clock.
func (b *Board) AddTime(ctx context.Context, id string, minutes float64) (*domain.Timer, error) {
	d, err := minutesToDuration(minutes)
	if err != nil {
		return nil, err
	}
	return b.update(ctx, id, func(t *domain.Timer) error {
		if t.Status == domain.TimerFired {
			t.Remaining = 0
			t.Status = domain.TimerPaused
			t.PausedAt = b.now()
			t.EscalationLevel = 0
			t.LastNotified = time.Time{}
		}
		t.Remaining += d
		if t.Remaining > t.Duration {
			t.Duration = t.Remaining
		}
		t.WarnedAlmost = false
		return nil
	})
}

// Countdown adds minutes to the standalone countdown, creating it on first use.
func (b *Board) Countdown(ctx context.Context, minutes float64) (*domain.Timer, error) {
	timers, err := b.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing timers: %w", err)
	}
	for _, t := range timers {
		if t.Name == CountdownName {
			return b.AddTime(ctx, t.ID, minutes)
		}
	}
	return b.Add(ctx, CountdownName, minutes)
}

// Dismiss acknowledges a fired timer, resetting it to idle.
func (b *Board) Dismiss(ctx context.Context, id string) (*domain.Timer, error) {
	return b.update(ctx, id, func(t *domain.Timer) error {
		if t.Status != domain.TimerFired {
			return fmt.Errorf("%s is %s, not ringing", t.Name, t.Status)
		}
		resetTimer(t)
		return nil
	})
}

// DismissAll acknowledges every fired timer and returns them.
func (b *Board) DismissAll(ctx context.Context) ([]*domain.Timer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	timers, err := b.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing timers: %w", err)
	}
	var out []*domain.Timer
	for _, t := range timers {
		if t.Status != domain.TimerFired {
			continue
		}
		resetTimer(t)
		if err := b.store.Save(ctx, t); err != nil {
			return out, fmt.Errorf("saving timer %s: %w", t.ID, err)
		}
		out = append(out, t)
	}
	return out, nil
}

// Delete removes a timer.
func (b *Board) Delete(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting timer: %w", err)
	}
	return nil
}

// Resolve finds a timer from a user reference: a 1-based list position,
// an ID or ID prefix, or a name (exact, then unique prefix).
func (b *Board) Resolve(ctx context.Context, ref string) (*domain.Timer, error) {
	ref = strings.TrimSpace(ref)
	timers, err := b.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing timers: %w", err)
	}
	if ref == "" {
		if len(timers) == 1 {
			return timers[0], nil
		}
		return nil, fmt.Errorf("which timer? %w", domain.ErrNotFound)
	}

	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(timers) {
			return timers[n-1], nil
		}
		return nil, fmt.Errorf("timer #%d: %w", n, domain.ErrNotFound)
	}

	lower := strings.ToLower(ref)
	for _, t := range timers {
		if t.ID == ref || strings.ToLower(t.Name) == lower {
			return t, nil
		}
	}

	var match *domain.Timer
	for _, t := range timers {
		if strings.HasPrefix(strings.ToLower(t.Name), lower) || (len(ref) >= 4 && strings.HasPrefix(t.ID, ref)) {
			if match != nil {
				return nil, fmt.Errorf("%q matches more than one timer", ref)
			}
			match = t
		}
	}
	if match == nil {
		return nil, fmt.Errorf("timer %q: %w", ref, domain.ErrNotFound)
	}
	return match, nil
}

// update loads, mutates and saves a timer under the board lock.
func (b *Board) update(ctx context.Context, id string, fn func(*domain.Timer) error) (*domain.Timer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	t, err := b.store.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading timer %s: %w", id, err)
	}
	if err := fn(t); err != nil {
		return nil, err
	}
	if err := b.store.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("saving timer %s: %w", id, err)
	}
	return t, nil
}

// sweep runs fn on every timer under the board lock and saves the timers
// for which fn reports a change.
func (b *Board) sweep(ctx context.Context, fn func(*domain.Timer) bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	timers, err := b.store.List(ctx)
	if err != nil {
		return fmt.Errorf("listing timers: %w", err)
	}
	for _, t := range timers {
		if !fn(t) {
			continue
		}
		if err := b.store.Save(ctx, t); err != nil {
			return fmt.Errorf("saving timer %s: %w", t.ID, err)
		}
	}
	return nil
}

func resetTimer(t *domain.Timer) {
	t.Remaining = t.Duration
	t.Status = domain.TimerIdle
	t.EscalationLevel = 0
	t.LastNotified = time.Time{}
	t.LastRemindedAt = time.Time{}
	t.WarnedAlmost = false
}

func minutesToDuration(minutes float64) (time.Duration, error) {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) || minutes <= 0 {
		return 0, domain.ErrInvalidTimer
	}
	d := time.Duration(minutes * float64(time.Minute)).Round(time.Second)
	if d <= 0 {
		return 0, domain.ErrInvalidTimer
	}
	return d, nil
}

// FormatClock renders a duration as m:ss, the way the timer cards show it.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
