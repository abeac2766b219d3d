package timer

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// collectingNotifier captures messages for assertions.
type collectingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *collectingNotifier) Notify(_ context.Context, msg string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return nil
}

func (n *collectingNotifier) NotifyUrgent(_ context.Context, msg string) error {
	return n.Notify(context.Background(), msg)
}

func (n *collectingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func (n *collectingNotifier) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.messages) == 0 {
		return ""
	}
	return n.messages[len(n.messages)-1]
}

func TestWatcherPausedNudge(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	board, store := newTestBoard()
	notifier := &collectingNotifier{}
	ctx := context.Background()

	if err := store.Save(ctx, &domain.Timer{
		ID:        "p",
		Name:      "Sauce",
		Duration:  10 * time.Minute,
		Remaining: 4 * time.Minute,
		Status:    domain.TimerPaused,
		PausedAt:  time.Now().Add(-10 * time.Minute),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}

	w := NewWatcher(board, notifier, log, WithPauseNudge(5*time.Minute))
	w.check(ctx)

	if notifier.count() != 1 {
		t.Fatalf("expected one nudge, got %d", notifier.count())
	}
	if msg := notifier.last(); !strings.Contains(msg, "Sauce (4:00 left)") {
		t.Fatalf("unexpected nudge %q", msg)
	}
}

func TestWatcherFiredTakesPriority(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	board, store := newTestBoard()
	notifier := &collectingNotifier{}
	ctx := context.Background()

	timers := []*domain.Timer{
		{ID: "1", Name: "Sauce", Status: domain.TimerPaused, PausedAt: time.Now().Add(-time.Hour)},
		{ID: "2", Name: "Cake", Status: domain.TimerFired},
		{ID: "3", Name: "Bread", Status: domain.TimerFired},
	}
	for _, tm := range timers {
		if err := store.Save(ctx, tm); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	w := NewWatcher(board, notifier, log)
	w.check(ctx)

	if msg := notifier.last(); !strings.Contains(msg, "Cake and Bread still ringing") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestWatcherQuietBoard(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	board, _ := newTestBoard()
	notifier := &collectingNotifier{}
	ctx := context.Background()

	if _, err := board.Add(ctx, "Tea", 3); err != nil {
		t.Fatalf("add: %v", err)
	}

	w := NewWatcher(board, notifier, log)
	w.check(ctx)

	if notifier.count() != 0 {
		t.Fatalf("expected silence, got %q", notifier.last())
	}
}

func TestWatcherRunsWithSupervisor(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	board, store := newTestBoard()
	notifier := &collectingNotifier{}
	ctx := context.Background()

	if err := store.Save(ctx, &domain.Timer{ID: "x", Name: "Soup", Status: domain.TimerFired, EscalationLevel: 99}); err != nil {
		t.Fatalf("save: %v", err)
	}

	sup := New(board, notifier, log,
		WithTickInterval(time.Hour),
		WithWatcher(WithWatchInterval(30*time.Millisecond)),
	)
	sup.Start(ctx)
	time.Sleep(100 * time.Millisecond)
	sup.Stop()

	if notifier.count() == 0 {
		t.Fatal("expected the watcher to report the ringing timer")
	}
}

func TestJoinNames(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, ""},
		{[]string{"a"}, "a"},
		{[]string{"a", "b"}, "a and b"},
		{[]string{"a", "b", "c"}, "a, b and c"},
	}
	for _, tt := range tests {
		if got := joinNames(tt.in); got != tt.want {
			t.Errorf("joinNames(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
