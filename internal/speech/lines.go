package speech

// Every string KitchenPal says out loud lives here. Keep lines short; the
// voice handles inflection.

import (
	"fmt"
	"math/rand"
	"time"
)

// ── Global ───────────────────────────────────────────────────────

func LineWelcome() string {
	return "Kitchen Pal is ready. What are we measuring?"
}

func LineBye() string {
	return "Bye. Enjoy your meal."
}

func LineNothingToRepeat() string {
	return "I haven't said anything yet."
}

func LineUnknown(input string) string {
	return fmt.Sprintf("Didn't catch that: %s.", input)
}

// ── Converter ────────────────────────────────────────────────────

// LineConverted reads a conversion result. Units are spoken by their
// full names.
func LineConverted(amount, from, value, to string) string {
	return fmt.Sprintf("%s %s is %s %s.", amount, from, value, to)
}

func LineCannotConvert(from, to string) string {
	return fmt.Sprintf("I can't turn %s into %s.", from, to)
}

// ── Timers ───────────────────────────────────────────────────────

func LineTimerStarted(name string, d time.Duration) string {
	return fmt.Sprintf("%s timer set for %s.", name, FormatDurationSpeech(d))
}

func LineTimerPaused(name string) string {
	return fmt.Sprintf("%s paused.", name)
}

func LineTimerResumed(name string) string {
	return fmt.Sprintf("%s running.", name)
}

func LineTimerDismissed(name string) string {
	return fmt.Sprintf("%s dismissed.", name)
}

func LineNoTimers() string {
	return "No timers running."
}

// ── Notes ────────────────────────────────────────────────────────

func LineNoteSaved(recipe bool) string {
	if recipe {
		return "Recipe saved."
	}
	return "Note saved."
}

// ── Chat ─────────────────────────────────────────────────────────

func LineChatDisabled() string {
	return "Chef Gemini is not available. Set GEMINI_API_KEY to enable it."
}

var thinkingFillers = []string{
	"Let me think about that.",
	"Good question. Give me a second.",
	"Hmm, one moment.",
	"Hang on, asking the chef.",
	"One second.",
	"Let me look into that for you.",
}

// LineThinking returns a random filler spoken while the model answers.
func LineThinking() string {
	return thinkingFillers[rand.Intn(len(thinkingFillers))]
}

// ThinkingFillers returns every thinking filler for prefetching.
func ThinkingFillers() []string {
	out := make([]string, len(thinkingFillers))
	copy(out, thinkingFillers)
	return out
}

// ── Voice input ──────────────────────────────────────────────────

var listeningFillers = []string{
	"I'm listening.",
	"Listening.",
	"Go ahead.",
	"Yes chef?",
}

// LineListening returns a random cue spoken before recording starts.
func LineListening() string {
	return listeningFillers[rand.Intn(len(listeningFillers))]
}

// ListeningFillers returns every listening cue for prefetching.
func ListeningFillers() []string {
	out := make([]string, len(listeningFillers))
	copy(out, listeningFillers)
	return out
}

func LineNothingHeard() string {
	return "I didn't hear anything."
}

// FormatDurationSpeech returns a duration the way a person says it.
func FormatDurationSpeech(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	var out string
	if h > 0 {
		out = plural(h, "hour")
		if m > 0 {
			out += " " + plural(m, "minute")
		}
		return out
	}
	switch {
	case m == 0:
		return plural(s, "second")
	case s == 0:
		return plural(m, "minute")
	default:
		return plural(m, "minute") + " " + plural(s, "second")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
