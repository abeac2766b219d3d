package domain

import "time"

// Timer is a named kitchen countdown.
type Timer struct {
	ID              string
	Name            string
	Duration        time.Duration
	Remaining       time.Duration
	Status          TimerStatus
	CreatedAt       time.Time
	StartedAt       time.Time // last transition to running
	PausedAt        time.Time // last transition to paused
	LastNotified    time.Time
	LastRemindedAt  time.Time // last periodic reminder
	WarnedAlmost    bool      // true after the "almost done" warning
	EscalationLevel int
}

// Clone returns a copy safe to hand across goroutines.
func (t *Timer) Clone() *Timer {
	c := *t
	return &c
}

// TimerStatus represents the state of a timer.
type TimerStatus int

const (
	TimerIdle TimerStatus = iota
	TimerRunning
	TimerPaused
	TimerFired
)

// String returns a human-readable timer status.
func (t TimerStatus) String() string {
	switch t {
	case TimerIdle:
		return "idle"
	case TimerRunning:
		return "running"
	case TimerPaused:
		return "paused"
	case TimerFired:
		return "fired"
	default:
		return "unknown"
	}
}
