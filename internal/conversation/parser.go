// Package conversation provides intent parsing and user notification implementations.
package conversation

import (
	"context"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/hammamikhairi/kitchenpal/internal/convert"
	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches user input to intents using keywords and simple
// patterns. Input no rule claims is interpreted by the active screen.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex   *regexp.Regexp
	intent  domain.IntentType
	payload func(m []string) string // nil = no payload
	screens []domain.Screen         // empty = every screen
}

// group carries capture group i as the payload.
func group(i int) func([]string) string {
	return func(m []string) string { return strings.TrimSpace(m[i]) }
}

func fixed(s string) func([]string) string {
	return func([]string) string { return s }
}

func rule(expr string, intent domain.IntentType, payload func([]string) string, screens ...domain.Screen) patternRule {
	return patternRule{regex: regexp.MustCompile(`(?i)^` + expr + `$`), intent: intent, payload: payload, screens: screens}
}

const screenNames = `(converter|convert|conversion|conv|timers?|notes?|chat|chatbot|bot|chef)`

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		// ── global ──
		rule(`(quit|exit|bye|q)`, domain.IntentQuit, nil),
		rule(`(help|h|\?)`, domain.IntentHelp, nil),
		rule(`(?:toggle |switch )?theme(?:\s+(light|dark))?`, domain.IntentToggleTheme, group(1)),
		rule(`(light|dark)(?: mode| theme)?`, domain.IntentToggleTheme, group(1)),
		rule(`(?:go to|goto|open|show|switch to|screen|tab)\s+`+screenNames, domain.IntentSwitchScreen, group(1)),
		rule(`(converter|timers|notes|chat|chatbot)`, domain.IntentSwitchScreen, group(1)),
		rule(`(?:repeat|again|say that again|what did you say|come again)`, domain.IntentRepeatLast, nil),

		// ── converter ──
		rule(`(?:list )?units(?:\s+(volume|mass|weight|temperature|temp))?`, domain.IntentListUnits, group(1)),
		rule(`(?:common|common conversions|cheat ?sheet|table)`, domain.IntentCommonTable, nil),
		rule(`convert\s+note\s+(.+\s+(?:to|in|into)\s+.+)`, domain.IntentScaleNote, group(1)),
		rule(`scale\s+(.+\s+(?:to|in|into)\s+.+)`, domain.IntentScaleNote, group(1)),
		rule(`convert\s+(.+)`, domain.IntentConvert, group(1)),

		// ── timers ──
		rule(`(?:add|new|set|start)\s+(?:a\s+)?timer\s+(.+)`, domain.IntentAddTimer, group(1)),
		rule(`timer\s+(.+)`, domain.IntentAddTimer, group(1)),
		rule(`add\s+(\d+(?:\.\d+)?)\s*(?:m|min|mins|minutes?)?\s+to\s+(.+)`, domain.IntentAddTime, func(m []string) string {
			return strings.TrimSpace(m[2]) + " " + m[1]
		}),
		rule(`(?:toggle|pause|resume|start|stop)(?:\s+timer)?(?:\s+(.+))?`, domain.IntentToggleTimer, group(1)),
		rule(`reset(?:\s+timer)?(?:\s+(.+))?`, domain.IntentResetTimer, group(1)),
		rule(`(?:delete|remove|rm)\s+timer\s+(.+)`, domain.IntentDeleteTimer, group(1)),
		rule(`(?:delete|remove|rm)\s+note\s+(.+)`, domain.IntentDeleteNote, group(1)),
		rule(`(?:delete|remove|rm)\s+(.+)`, domain.IntentDeleteTimer, group(1), domain.ScreenTimers),
		rule(`(?:delete|remove|rm)\s+(.+)`, domain.IntentDeleteNote, group(1), domain.ScreenNotes),
		rule(`(?:dismiss|ok|okay|got it|silence|shh)(?:\s+(.+))?`, domain.IntentDismissTimer, group(1)),
		rule(`(?:list timers|status|running)`, domain.IntentListTimers, nil),
		rule(`(\d{1,2})`, domain.IntentToggleTimer, group(1), domain.ScreenTimers),

		// ── notes ──
		rule(`(?:note|add note|new note|jot)\s+(.+)`, domain.IntentAddNote, group(1)),
		rule(`(?:recipe|add recipe|new recipe)\s+(.+)`, domain.IntentAddRecipe, group(1)),
		rule(`(?:list notes|all notes)`, domain.IntentListNotes, nil),
		rule(`(?:favorites|favourites|favs|list favorites)`, domain.IntentListNotes, fixed("favorites")),
		rule(`(?:search|find)\s+(.+)`, domain.IntentSearchNotes, group(1),
			domain.ScreenConverter, domain.ScreenTimers, domain.ScreenNotes),
		rule(`(?:fav|favorite|favourite|star|unstar|unfav)\s+(.+)`, domain.IntentFavoriteNote, group(1)),

		// ── chat ──
		rule(`(?:ask|hey chef|chef)[,:]?\s+(.+)`, domain.IntentAskChef, group(1)),
		rule(`(?:quick|suggest)\s+(\d)`, domain.IntentQuickReply, group(1)),
		rule(`(\d)`, domain.IntentQuickReply, group(1), domain.ScreenChat),
		rule(`(?:mood|tone)\s+(\S+)`, domain.IntentSetMood, group(1)),
		rule(`(?:voice|accent)\s+(\S+)`, domain.IntentSetVoice, group(1)),
		rule(`(?:speak|read|read it|say it|read aloud|read last)`, domain.IntentSpeakLast, nil),
		rule(`(?:listen|mic|talk|voice)`, domain.IntentVoiceInput, nil),
		rule(`pin\s+(\d+)`, domain.IntentPin, group(1)),
		rule(`unpin`, domain.IntentUnpin, nil),
		rule(`(?:history|messages)`, domain.IntentHistory, nil),
	}
	return p
}

// Parse converts user input into an intent. Parsing never fails; input
// nothing understands comes back as IntentUnknown with the text as payload.
func (p *KeywordParser) Parse(ctx context.Context, input string, screen domain.Screen) (*domain.Intent, error) {
	trimmed := strings.Join(strings.Fields(input), " ")
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input on %s: %q", screen, trimmed)

	for _, r := range p.patterns {
		if len(r.screens) > 0 && !slices.Contains(r.screens, screen) {
			continue
		}
		m := r.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		p.log.Debug("matched intent: %s", r.intent)
		intent := &domain.Intent{Type: r.intent}
		if r.payload != nil {
			intent.Payload = r.payload(m)
		}
		return intent, nil
	}

	intent := p.freeText(trimmed, screen)
	p.log.Debug("free text on %s: %s", screen, intent.Type)
	return intent, nil
}

// freeText decides what unmatched input means on the given screen.
func (p *KeywordParser) freeText(s string, screen domain.Screen) *domain.Intent {
	switch screen {
	case domain.ScreenChat:
		return &domain.Intent{Type: domain.IntentAskChef, Payload: s}
	case domain.ScreenNotes:
		return &domain.Intent{Type: domain.IntentAddNote, Payload: s}
	}

	if _, err := convert.ParseQuery(s); err == nil {
		return &domain.Intent{Type: domain.IntentConvert, Payload: s}
	}
	if isQuestion(s) {
		return &domain.Intent{Type: domain.IntentAskChef, Payload: s}
	}

	switch screen {
	case domain.ScreenConverter:
		// Let the converter report why it could not read the query.
		return &domain.Intent{Type: domain.IntentConvert, Payload: s}
	case domain.ScreenTimers:
		if endsWithNumber(s) {
			return &domain.Intent{Type: domain.IntentAddTimer, Payload: s}
		}
	}
	return &domain.Intent{Type: domain.IntentUnknown, Payload: s}
}

// questionPrefixes are common English question starters.
var questionPrefixes = []string{
	"how", "what", "why", "when", "where", "who", "which",
	"can", "could", "should", "would", "will", "do", "does", "is", "are",
	"am i", "tell me", "explain", "give me", "suggest",
}

// isQuestion returns true if the input looks like a question.
func isQuestion(s string) bool {
	if strings.HasSuffix(s, "?") {
		return true
	}
	lower := strings.ToLower(s)
	for _, prefix := range questionPrefixes {
		if strings.HasPrefix(lower, prefix+" ") || lower == prefix {
			return true
		}
	}
	return false
}

func endsWithNumber(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(fields[len(fields)-1], 64)
	return err == nil
}
