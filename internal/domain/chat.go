package domain

import (
	"fmt"
	"strings"
	"time"
)

// Sender identifies who wrote a chat message.
type Sender int

const (
	SenderUser Sender = iota
	SenderBot
)

// String returns a human-readable sender.
func (s Sender) String() string {
	if s == SenderBot {
		return "bot"
	}
	return "user"
}

// ChatMessage is a single line of the assistant conversation.
type ChatMessage struct {
	ID     string
	Text   string
	Sender Sender
	At     time.Time
	Pinned bool
}

// Mood selects the assistant's tone.
type Mood string

const (
	MoodCheerful     Mood = "cheerful"
	MoodFriendly     Mood = "friendly"
	MoodProfessional Mood = "professional"
)

// Moods returns all moods in display order.
func Moods() []Mood {
	return []Mood{MoodCheerful, MoodFriendly, MoodProfessional}
}

// ParseMood resolves a mood name, case-insensitively.
func ParseMood(s string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Moods() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mood %q", s)
}

// Accent selects the read-aloud voice.
type Accent string

const (
	AccentUS    Accent = "us"
	AccentUK    Accent = "uk"
	AccentIndia Accent = "india"
)

// Accents returns all accents in display order.
func Accents() []Accent {
	return []Accent{AccentUS, AccentUK, AccentIndia}
}

// ParseAccent resolves an accent name. "en-GB"-style tags are accepted too.
func ParseAccent(s string) (Accent, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "us", "en-us", "american":
		return AccentUS, nil
	case "uk", "en-gb", "british":
		return AccentUK, nil
	case "india", "in", "en-in", "indian":
		return AccentIndia, nil
	}
	return "", fmt.Errorf("unknown voice %q", s)
}
