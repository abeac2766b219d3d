package speech

import (
	"context"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*SpeakingNotifier)(nil)

// SpeakingNotifier prints through the wrapped notifier and reads the same
// message aloud. Urgent messages (a timer going off) jump the queue.
type SpeakingNotifier struct {
	text    domain.Notifier
	speaker *Speaker
	log     *logger.Logger
}

// NewSpeakingNotifier creates a notifier that both prints and speaks.
func NewSpeakingNotifier(text domain.Notifier, speaker *Speaker, log *logger.Logger) *SpeakingNotifier {
	return &SpeakingNotifier{text: text, speaker: speaker, log: log}
}

// Notify prints the message and queues it at normal priority.
func (n *SpeakingNotifier) Notify(ctx context.Context, message string) error {
	if err := n.text.Notify(ctx, message); err != nil {
		return err
	}
	n.speaker.Say(message, PriorityNormal)
	return nil
}

// NotifyUrgent prints the message and queues it at high priority.
func (n *SpeakingNotifier) NotifyUrgent(ctx context.Context, message string) error {
	if err := n.text.NotifyUrgent(ctx, message); err != nil {
		return err
	}
	n.speaker.Say(message, PriorityHigh)
	return nil
}
