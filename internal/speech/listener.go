package speech

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"

	audiotranscriber "github.com/sklyt/whisper/pkg"

	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// ErrNothingHeard is returned when a recording holds no usable speech.
var ErrNothingHeard = errors.New("nothing heard")

// envAnnotation matches whisper annotations like "(keyboard clicking)"
// or "[laughter]".
var envAnnotation = regexp.MustCompile(`[\(\[][a-zA-Z][a-zA-Z_\s]*[\)\]]`)

// timestampPrefix matches "[00:00:00.000 --> 00:00:05.000]".
var timestampPrefix = regexp.MustCompile(`^\[[0-9:.\s\->]+\]\s*`)

var hallucinations = []string{
	"...",
	"you",
	"thank you.",
	"thanks for watching!",
	"thank you for watching.",
	"bye.",
	"the end.",
}

// ListenerOption configures the Listener.
type ListenerOption func(*Listener)

// WithRecordDuration sets how long one push-to-talk recording lasts.
func WithRecordDuration(d time.Duration) ListenerOption {
	return func(l *Listener) { l.duration = d }
}

// WithTempDir sets the directory for temporary WAV files.
func WithTempDir(dir string) ListenerOption {
	return func(l *Listener) { l.tempDir = dir }
}

// WithInterrupt stops the given speaker when recording starts so the
// microphone does not pick up read-aloud output.
func WithInterrupt(s *Speaker) ListenerOption {
	return func(l *Listener) { l.speaker = s }
}

// Listener is push-to-talk speech-to-text through a local Whisper model:
// each Listen records one chunk and returns its transcription.
type Listener struct {
	whisperBin string
	modelPath  string
	tempDir    string
	duration   time.Duration
	speaker    *Speaker
	log        *logger.Logger

	// record captures and transcribes one chunk.
	record func(ctx context.Context, d time.Duration) (string, error)

	mu sync.Mutex
}

// NewListener creates a listener for the whisper-cli binary and GGML model.
func NewListener(whisperBin, modelPath string, log *logger.Logger, opts ...ListenerOption) *Listener {
	l := &Listener{
		whisperBin: whisperBin,
		modelPath:  modelPath,
		tempDir:    ".kitchenpal-stt",
		duration:   5 * time.Second,
		log:        log,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.record = l.recordWhisper

	if _, err := exec.LookPath(whisperBin); err != nil {
		log.Warn("listener: whisper binary %q not found in PATH: %v", whisperBin, err)
	}
	return l
}

// Listen records for the configured duration and returns what was said.
// Only one recording runs at a time.
func (l *Listener) Listen(ctx context.Context) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.speaker != nil {
		l.speaker.Interrupt()
	}

	l.log.Debug("listener: recording %s", l.duration)
	raw, err := l.record(ctx, l.duration)
	if err != nil {
		return "", fmt.Errorf("recording: %w", err)
	}

	text := cleanTranscription(raw)
	l.log.Debug("listener: heard %q (raw %q)", text, raw)
	if text == "" {
		return "", ErrNothingHeard
	}
	return text, nil
}

func (l *Listener) recordWhisper(ctx context.Context, d time.Duration) (string, error) {
	var (
		result string
		wg     sync.WaitGroup
	)
	wg.Add(1)
	callback := func(text string) {
		result = text
		wg.Done()
	}

	verbose := l.log.GetLevel() >= logger.LevelVerbose
	t, err := audiotranscriber.NewTranscriber(l.whisperBin, l.modelPath, l.tempDir, "wav", callback, verbose)
	if err != nil {
		return "", fmt.Errorf("transcriber init: %w", err)
	}
	if err := t.Start(); err != nil {
		return "", fmt.Errorf("recording start: %w", err)
	}

	select {
	case <-time.After(d):
	case <-ctx.Done():
	}
	t.Stop()
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	return result, nil
}

// cleanTranscription flattens whisper output to one line and drops
// annotations, timestamps and the usual silent-clip hallucinations.
func cleanTranscription(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = timestampPrefix.ReplaceAllString(s, "")
	s = envAnnotation.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")

	lower := strings.ToLower(s)
	for _, h := range hallucinations {
		if lower == h {
			return ""
		}
	}
	return s
}
