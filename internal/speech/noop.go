// Package speech reads text aloud through Azure neural voices and takes
// push-to-talk voice input through a local Whisper model.
package speech

import (
	"context"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.SpeechProvider = (*NoOp)(nil)
	_ domain.SpeechProvider = (*Provider)(nil)
)

// NoOp is the speech provider used when voice is disabled.
type NoOp struct {
	log *logger.Logger
}

// NewNoOp creates a no-op speech provider.
func NewNoOp(log *logger.Logger) *NoOp {
	return &NoOp{log: log}
}

// Listen always fails with ErrNotImplemented.
func (n *NoOp) Listen(ctx context.Context) (string, error) {
	return "", domain.ErrNotImplemented
}

// Speak only logs.
func (n *NoOp) Speak(ctx context.Context, text string) error {
	n.log.Debug("speech no-op: would say %q", text)
	return nil
}

// Provider pairs a Listener and a Speaker. Either may be nil; the missing
// half falls back to NoOp behaviour.
type Provider struct {
	ear   *Listener
	mouth *Speaker
	noop  *NoOp
}

// NewProvider creates a speech provider from whichever halves are available.
func NewProvider(ear *Listener, mouth *Speaker, log *logger.Logger) *Provider {
	return &Provider{ear: ear, mouth: mouth, noop: NewNoOp(log)}
}

// Listen records one utterance.
func (p *Provider) Listen(ctx context.Context) (string, error) {
	if p.ear == nil {
		return p.noop.Listen(ctx)
	}
	return p.ear.Listen(ctx)
}

// Speak queues text for read-aloud.
func (p *Provider) Speak(ctx context.Context, text string) error {
	if p.mouth == nil {
		return p.noop.Speak(ctx, text)
	}
	return p.mouth.Speak(ctx, text)
}

// CanListen reports whether voice input is configured.
func (p *Provider) CanListen() bool { return p.ear != nil }
