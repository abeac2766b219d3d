package domain

import (
	"fmt"
	"strings"
)

// Screen is one of the top-level views of the app.
type Screen int

const (
	ScreenConverter Screen = iota
	ScreenTimers
	ScreenNotes
	ScreenChat
)

// Screens returns all screens in tab order.
func Screens() []Screen {
	return []Screen{ScreenConverter, ScreenTimers, ScreenNotes, ScreenChat}
}

// String returns the screen name.
func (s Screen) String() string {
	switch s {
	case ScreenConverter:
		return "converter"
	case ScreenTimers:
		return "timers"
	case ScreenNotes:
		return "notes"
	case ScreenChat:
		return "chat"
	default:
		return "unknown"
	}
}

// Title returns the tab label.
func (s Screen) Title() string {
	switch s {
	case ScreenConverter:
		return "Converter"
	case ScreenTimers:
		return "Timer"
	case ScreenNotes:
		return "Notes"
	case ScreenChat:
		return "ChatBot"
	default:
		return "?"
	}
}

// ParseScreen resolves a screen by name or tab label.
func ParseScreen(s string) (Screen, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "converter", "convert", "conversion", "conv":
		return ScreenConverter, nil
	case "timers", "timer":
		return ScreenTimers, nil
	case "notes", "note":
		return ScreenNotes, nil
	case "chat", "chatbot", "bot", "chef":
		return ScreenChat, nil
	}
	return 0, fmt.Errorf("unknown screen %q", s)
}

// Theme is the colour scheme of the UI.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// ParseTheme resolves a theme name.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", fmt.Errorf("unknown theme %q", s)
}
