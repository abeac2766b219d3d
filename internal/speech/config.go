package speech

import (
	"time"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
)

// Default Azure TTS settings.
const (
	DefaultVoice       = "en-US-AvaNeural"
	DefaultAudioFormat = "riff-24khz-16bit-mono-pcm"

	SampleRate   = 24000
	ChannelCount = 1
	BitDepth     = 16
)

// Environment variable names for Azure credentials.
const (
	EnvAzureSpeechKey    = "AZURE_SPEECH_KEY"
	EnvAzureSpeechRegion = "AZURE_SPEECH_REGION"
)

// Voice is an Azure neural voice and the language tag it speaks.
type Voice struct {
	Name string
	Lang string
}

var voices = map[domain.Accent]Voice{
	domain.AccentUS:    {Name: DefaultVoice, Lang: "en-US"},
	domain.AccentUK:    {Name: "en-GB-SoniaNeural", Lang: "en-GB"},
	domain.AccentIndia: {Name: "en-IN-NeerjaNeural", Lang: "en-IN"},
}

// VoiceFor returns the voice for an accent, falling back to US English.
func VoiceFor(a domain.Accent) Voice {
	if v, ok := voices[a]; ok {
		return v
	}
	return voices[domain.AccentUS]
}

// Priority levels for the speech queue.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityNormal
	PriorityHigh
)

// SpeechRequest is a queued utterance.
type SpeechRequest struct {
	Text     string
	Priority Priority
	QueuedAt time.Time
}
