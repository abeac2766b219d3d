package chat

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// Option configures the Chef.
type Option func(*Chef)

// WithMood sets the starting mood.
func WithMood(m domain.Mood) Option {
	return func(c *Chef) { c.mood = m }
}

// WithContext adds live kitchen context (e.g. running timers) to every prompt.
func WithContext(fn func(ctx context.Context) string) Option {
	return func(c *Chef) { c.contextFn = fn }
}

// WithPicker replaces the random welcome-line picker. pick(n) must return a
// value in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(c *Chef) { c.pick = pick }
}

// Chef holds the assistant conversation: history, mood and the pinned
// message. Safe for concurrent use; the model call runs without the lock.
type Chef struct {
	completer domain.Completer
	log       *logger.Logger
	contextFn func(ctx context.Context) string
	pick      func(n int) int
	now       func() time.Time

	mu      sync.Mutex
	mood    domain.Mood
	history []domain.ChatMessage
	gen     int // bumped on every history reset
}

// NewChef creates the assistant. A nil completer leaves chat unavailable:
// messages are recorded and answered with the apology line.
func NewChef(completer domain.Completer, log *logger.Logger, opts ...Option) *Chef {
	c := &Chef{
		completer: completer,
		log:       log,
		mood:      domain.MoodCheerful,
		pick:      rand.Intn,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.resetLocked()
	return c
}

// Available reports whether a model is configured.
func (c *Chef) Available() bool { return c.completer != nil }

// Mood returns the current mood.
func (c *Chef) Mood() domain.Mood {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mood
}

// SetMood switches the tone and restarts the conversation with a welcome
// line for the new mood.
func (c *Chef) SetMood(m domain.Mood) error {
	if _, ok := moodPrompts[m]; !ok {
		return fmt.Errorf("unknown mood %q", m)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mood = m
	c.resetLocked()
	c.log.Info("chat mood set to %s", m)
	return nil
}

// resetLocked replaces the history with one welcome line. Caller holds mu
// (or is the constructor).
func (c *Chef) resetLocked() {
	lines := welcomeLines[c.mood]
	c.history = []domain.ChatMessage{c.message(domain.SenderBot, lines[c.pick(len(lines))])}
	c.gen++
}

func (c *Chef) message(from domain.Sender, text string) domain.ChatMessage {
	return domain.ChatMessage{ID: uuid.New().String(), Text: text, Sender: from, At: c.now()}
}

// Send records the user's message, asks the model and records the reply.
// On failure the apology line is recorded and the error returned.
func (c *Chef) Send(ctx context.Context, text string) (domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.ChatMessage{}, domain.ErrEmptyMessage
	}

	c.mu.Lock()
	c.history = append(c.history, c.message(domain.SenderUser, text))
	mood, gen := c.mood, c.gen
	c.mu.Unlock()

	reply, err := c.ask(ctx, mood, text)

	c.mu.Lock()
	defer c.mu.Unlock()

	msg := c.message(domain.SenderBot, reply)
	if err != nil {
		msg.Text = Apology
	}
	// A mood change while the model was thinking starts a new conversation;
	// the stale reply is not added to it.
	if gen == c.gen {
		c.history = append(c.history, msg)
	}
	return msg, err
}

func (c *Chef) ask(ctx context.Context, mood domain.Mood, text string) (string, error) {
	if c.completer == nil {
		return "", domain.ErrChatUnavailable
	}
	var extra string
	if c.contextFn != nil {
		extra = c.contextFn(ctx)
	}
	reply, err := c.completer.Complete(ctx, BuildPrompt(mood, text, extra))
	if err != nil {
		c.log.Error("chat: completion failed: %v", err)
		return "", fmt.Errorf("asking %s: %w", AssistantName, err)
	}
	if strings.TrimSpace(reply) == "" {
		reply = NoResponse
	}
	return reply, nil
}

// SendQuickReply sends the i-th (1-based) canned prompt.
func (c *Chef) SendQuickReply(ctx context.Context, i int) (domain.ChatMessage, error) {
	if i < 1 || i > len(quickReplies) {
		return domain.ChatMessage{}, fmt.Errorf("quick reply %d: %w", i, domain.ErrNoMessage)
	}
	return c.Send(ctx, quickReplies[i-1])
}

// Listen takes one utterance from the speech provider and sends it.
func (c *Chef) Listen(ctx context.Context, sp domain.SpeechProvider) (heard string, reply domain.ChatMessage, err error) {
	heard, err = sp.Listen(ctx)
	if err != nil {
		return "", domain.ChatMessage{}, fmt.Errorf("listening: %w", err)
	}
	reply, err = c.Send(ctx, heard)
	return strings.TrimSpace(heard), reply, err
}

// Messages returns a copy of the conversation.
func (c *Chef) Messages() []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ChatMessage, len(c.history))
	copy(out, c.history)
	return out
}

// Last returns the most recent message.
func (c *Chef) Last() (domain.ChatMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.history) == 0 {
		return domain.ChatMessage{}, false
	}
	return c.history[len(c.history)-1], true
}

// Pin marks the i-th (1-based) message as the only pinned one.
func (c *Chef) Pin(i int) (domain.ChatMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 1 || i > len(c.history) {
		return domain.ChatMessage{}, fmt.Errorf("message %d: %w", i, domain.ErrNoMessage)
	}
	for j := range c.history {
		c.history[j].Pinned = j == i-1
	}
	return c.history[i-1], nil
}

// Unpin clears the pinned message. It reports whether anything was pinned.
func (c *Chef) Unpin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	found := false
	for j := range c.history {
		if c.history[j].Pinned {
			c.history[j].Pinned = false
			found = true
		}
	}
	return found
}

// Pinned returns the pinned message, if any.
func (c *Chef) Pinned() (domain.ChatMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.history {
		if m.Pinned {
			return m, true
		}
	}
	return domain.ChatMessage{}, false
}
