package domain

import "context"

// TimerStore persists kitchen timers. The only implementation is in-memory;
// timers are lost on exit.
type TimerStore interface {
	Save(ctx context.Context, t *Timer) error
	Load(ctx context.Context, id string) (*Timer, error)
	Delete(ctx context.Context, id string) error
	// List returns timers in creation order.
	List(ctx context.Context) ([]*Timer, error)
}

// NoteStore persists notes.
type NoteStore interface {
	Save(ctx context.Context, n *Note) error
	Load(ctx context.Context, id string) (*Note, error)
	Delete(ctx context.Context, id string) error
	// List returns notes newest first.
	List(ctx context.Context) ([]*Note, error)
}

// IntentParser converts raw user input into structured intents.
// The active screen decides what free text means.
type IntentParser interface {
	Parse(ctx context.Context, input string, screen Screen) (*Intent, error)
}

// Notifier delivers messages to the user. Implementations can write to
// stdout or use text-to-speech.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// SpeechProvider handles voice input/output. Listen is speech-to-text,
// Speak sends text through the TTS pipeline. The no-op implementation is
// used when voice is disabled.
type SpeechProvider interface {
	Listen(ctx context.Context) (string, error)
	Speak(ctx context.Context, text string) error
}

// Completer sends a single prompt to a language model and returns its reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
