package speech

import (
	"context"
	"sync"
	"time"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// Synthesizer turns text into a WAV clip in the current voice.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Voice() Voice
	SetVoice(v Voice)
}

// Sink plays a WAV clip, blocking until done. Stop cuts it short.
type Sink interface {
	Play(wav []byte) error
	Stop()
}

var _ Synthesizer = (*AzureClient)(nil)

// SpeakerOption configures the Speaker.
type SpeakerOption func(*Speaker)

// WithCacheSize bounds the number of clips kept in memory.
func WithCacheSize(n int) SpeakerOption {
	return func(s *Speaker) {
		s.cacheSize = n
	}
}

// Speaker reads text aloud one utterance at a time. Say queues; a single
// goroutine started by Start synthesizes (through the cache) and plays.
// Higher priority items go first.
type Speaker struct {
	tts       Synthesizer
	sink      Sink
	log       *logger.Logger
	cache     *AudioCache
	cacheSize int

	mu          sync.Mutex
	queue       []SpeechRequest
	notify      chan struct{}
	speaking    bool
	interrupted bool
	lastSpoken  string
}

// NewSpeaker creates a speaker. Call Start before anything is heard.
func NewSpeaker(tts Synthesizer, sink Sink, log *logger.Logger, opts ...SpeakerOption) *Speaker {
	s := &Speaker{
		tts:       tts,
		sink:      sink,
		log:       log,
		notify:    make(chan struct{}, 1),
		cacheSize: 64,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = NewAudioCache(s.cacheSize, log)
	return s
}

// Say queues text at the given priority. Non-blocking. Text that is empty
// after cleaning is dropped. Anything at PriorityNormal or above flushes
// pending low-priority items.
func (s *Speaker) Say(text string, priority Priority) {
	text = CleanForSpeech(text)
	if text == "" {
		return
	}

	s.mu.Lock()
	if priority >= PriorityNormal {
		s.flushLowLocked()
	}
	s.queue = append(s.queue, SpeechRequest{Text: text, Priority: priority, QueuedAt: time.Now()})
	n := len(s.queue)
	s.mu.Unlock()

	s.log.Debug("speaker: queued (priority=%d, queue_len=%d): %s", priority, n, truncate(text, 60))

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Speak queues text at normal priority.
func (s *Speaker) Speak(_ context.Context, text string) error {
	s.Say(text, PriorityNormal)
	return nil
}

func (s *Speaker) flushLowLocked() {
	n := 0
	for _, item := range s.queue {
		if item.Priority > PriorityLow {
			s.queue[n] = item
			n++
		}
	}
	s.queue = s.queue[:n]
}

// Speaking reports whether a clip is being synthesized or played.
func (s *Speaker) Speaking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speaking
}

// QueueLen returns the number of pending utterances.
func (s *Speaker) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// LastSpoken returns the most recent utterance taken off the queue.
func (s *Speaker) LastSpoken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSpoken
}

// Interrupt stops playback and drops everything queued.
func (s *Speaker) Interrupt() {
	s.mu.Lock()
	s.queue = s.queue[:0]
	s.interrupted = true
	s.mu.Unlock()

	s.sink.Stop()
	s.log.Debug("speaker: interrupted")
}

// SetVoice switches the accent. Clips already cached for the old voice stay
// cached under it.
func (s *Speaker) SetVoice(a domain.Accent) {
	v := VoiceFor(a)
	s.tts.SetVoice(v)
	s.log.Info("speaker: voice set to %s (%s)", v.Name, v.Lang)
}

// Voice returns the current voice.
func (s *Speaker) Voice() Voice { return s.tts.Voice() }

// Cache exposes the clip cache for stats.
func (s *Speaker) Cache() *AudioCache { return s.cache }

// Start runs the playback loop until ctx is cancelled. Non-blocking.
func (s *Speaker) Start(ctx context.Context) {
	go s.loop(ctx)
	s.log.Info("speaker started")
}

func (s *Speaker) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.log.Info("speaker stopped")
			return
		case <-s.notify:
			s.drain(ctx)
		}
	}
}

func (s *Speaker) drain(ctx context.Context) {
	for ctx.Err() == nil {
		item, ok := s.dequeue()
		if !ok {
			return
		}
		s.speak(ctx, item)

		s.mu.Lock()
		s.speaking = false
		s.mu.Unlock()
	}
}

// dequeue pops the highest-priority item (FIFO within a priority) and
// marks the speaker busy.
func (s *Speaker) dequeue() (SpeechRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.queue) == 0 {
		return SpeechRequest{}, false
	}
	best := 0
	for i, item := range s.queue {
		if item.Priority > s.queue[best].Priority {
			best = i
		}
	}
	item := s.queue[best]
	s.queue = append(s.queue[:best], s.queue[best+1:]...)
	s.speaking = true
	s.interrupted = false
	s.lastSpoken = item.Text
	return item, true
}

func (s *Speaker) speak(ctx context.Context, req SpeechRequest) {
	s.log.Debug("speaker: speaking (priority=%d, waited=%s): %s",
		req.Priority, time.Since(req.QueuedAt).Round(time.Millisecond), truncate(req.Text, 60))

	audio, err := s.synthesize(ctx, req.Text)
	if err != nil {
		s.log.Error("speaker: synthesis failed: %v", err)
		return
	}

	s.mu.Lock()
	abort := s.interrupted
	s.mu.Unlock()
	if abort {
		return
	}

	if err := s.sink.Play(audio); err != nil {
		s.log.Error("speaker: playback failed: %v", err)
	}
}

func (s *Speaker) synthesize(ctx context.Context, text string) ([]byte, error) {
	voice := s.tts.Voice().Name
	if audio, ok := s.cache.Get(voice, text); ok {
		return audio, nil
	}
	audio, err := s.tts.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}
	s.cache.Put(voice, text, audio)
	return audio, nil
}

// Prefetch synthesizes texts in the background so their first Say plays
// without a network round trip. Already cached texts are skipped.
func (s *Speaker) Prefetch(ctx context.Context, texts ...string) {
	voice := s.tts.Voice().Name
	for _, text := range texts {
		text = CleanForSpeech(text)
		if text == "" || s.cache.Has(voice, text) {
			continue
		}
		go func(t string) {
			audio, err := s.tts.Synthesize(ctx, t)
			if err != nil {
				s.log.Debug("prefetch: %v", err)
				return
			}
			s.cache.Put(voice, t, audio)
		}(text)
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
