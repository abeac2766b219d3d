package speech

import (
	"context"
	"encoding/binary"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanForSpeech(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"[Timer] Pasta is up.", "Pasta is up."},
		{"\x1b[1;31m[Watcher]\x1b[0m Eggs still ringing", "Eggs still ringing"},
		{"Hi! I'm **Chef Gemini**, your AI kitchen buddy. What's cooking today? 🍳", "Hi! I'm Chef Gemini, your AI kitchen buddy. What's cooking today?"},
		{"## Steps\n1. Boil water\n- add `salt`", "Steps Boil water add salt"},
		{"See [this guide](https://example.com) 👩‍🍳", "See this guide"},
		{"Heat to 180°C", "Heat to 180°C"},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanForSpeech(tt.in), "input %q", tt.in)
	}
}

func TestCleanTranscription(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  two cups\n to tablespoons ", "two cups to tablespoons"},
		{"[BLANK_AUDIO]", ""},
		{"(keyboard clicking) set a timer", "set a timer"},
		{"[00:00:00.000 --> 00:00:02.000] hello chef", "hello chef"},
		{"Thank you.", ""},
		{"you", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanTranscription(tt.in), "input %q", tt.in)
	}
}

func TestListenerListen(t *testing.T) {
	l := NewListener("whisper-cli-missing", "model.bin", quietLog(), WithRecordDuration(time.Millisecond))

	l.record = func(context.Context, time.Duration) (string, error) { return " (typing) 100 grams to ounces\n", nil }
	got, err := l.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "100 grams to ounces", got)

	l.record = func(context.Context, time.Duration) (string, error) { return "[BLANK_AUDIO]", nil }
	_, err = l.Listen(context.Background())
	assert.ErrorIs(t, err, ErrNothingHeard)

	l.record = func(context.Context, time.Duration) (string, error) { return "", errors.New("no mic") }
	_, err = l.Listen(context.Background())
	assert.ErrorContains(t, err, "no mic")
}

func TestListenerInterruptsSpeaker(t *testing.T) {
	s, _, sink := newTestSpeaker()
	s.Say("long answer", PriorityNormal)

	l := NewListener("whisper-cli-missing", "model.bin", quietLog(), WithInterrupt(s))
	l.record = func(context.Context, time.Duration) (string, error) { return "stop", nil }

	_, err := l.Listen(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, s.QueueLen())
	assert.Equal(t, 1, sink.stops)
}

func wav(chunks ...[]byte) []byte {
	out := []byte("RIFF\x00\x00\x00\x00WAVE")
	return append(out, concat(chunks...)...)
}

func chunk(id string, data []byte) []byte {
	b := make([]byte, 8, 8+len(data))
	copy(b, id)
	binary.LittleEndian.PutUint32(b[4:], uint32(len(data)))
	return append(b, data...)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestExtractPCM(t *testing.T) {
	pcm := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	fmtChunk := chunk("fmt ", make([]byte, 16))
	oddChunk := append(chunk("LIST", []byte{9, 9, 9}), 0)

	got, err := extractPCM(wav(fmtChunk, oddChunk, chunk("data", pcm)))
	require.NoError(t, err)
	assert.Equal(t, pcm, got)

	_, err = extractPCM([]byte("short"))
	assert.Error(t, err)

	bad := wav(fmtChunk, chunk("data", pcm))
	copy(bad, "RIFX")
	_, err = extractPCM(bad)
	assert.Error(t, err)

	_, err = extractPCM(wav(fmtChunk, chunk("junk", make([]byte, 24))))
	assert.ErrorContains(t, err, "data chunk not found")
}

func TestAudioCacheEvictsOldest(t *testing.T) {
	c := NewAudioCache(2, quietLog())
	c.Put("v", "a", []byte("1"))
	c.Put("v", "b", []byte("2"))
	c.Put("v", "c", []byte("3"))

	assert.Equal(t, 2, c.Len())
	assert.False(t, c.Has("v", "a"))
	got, ok := c.Get("v", "c")
	require.True(t, ok)
	assert.Equal(t, "3", string(got))
	assert.False(t, c.Has("other", "c"))
}

func TestFormatDurationSpeech(t *testing.T) {
	assert.Equal(t, "45 seconds", FormatDurationSpeech(45*time.Second))
	assert.Equal(t, "1 minute", FormatDurationSpeech(time.Minute))
	assert.Equal(t, "2 minutes 1 second", FormatDurationSpeech(121*time.Second))
	assert.Equal(t, "1 hour 30 minutes", FormatDurationSpeech(90*time.Minute))
	assert.Equal(t, "2 hours", FormatDurationSpeech(2*time.Hour))
}
