package commands

import (
	"context"
	"strings"
	"time"

	"github.com/hammamikhairi/kitchenpal/internal/chat"
	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
	"github.com/hammamikhairi/kitchenpal/internal/notes"
	"github.com/hammamikhairi/kitchenpal/internal/speech"
	"github.com/hammamikhairi/kitchenpal/internal/timer"
)

// view is the part of the terminal UI the handlers draw on.
// *display.UI implements it.
type view interface {
	PrintTitle(text string)
	PrintLine(text string)
	PrintHint(text string)
	PrintUrgent(text string)
	PrintChat(text string)
	PrintCard(title string, lines []string)
	PrintVoice(text string)

	Theme() domain.Theme
	SetTheme(t domain.Theme)
	Screen() domain.Screen
	SetScreen(s domain.Screen)
	Quit()
}

type app struct {
	parser domain.IntentParser
	board  *timer.Board
	keeper *notes.Keeper
	chef   *chat.Chef
	voice  *speech.Provider
	mouth  *speech.Speaker // nil when read-aloud is off
	log    *logger.Logger
	ui     view

	last      string        // last line said, replayed by "repeat"
	quitDelay time.Duration // lets the goodbye line start before exit
}

// say prints a line and queues it for read-aloud at the given priority.
// Use for conversational lines; cards and lists are printed, not spoken.
func (a *app) say(text string, priority speech.Priority) {
	a.ui.PrintLine(text)
	a.speak(text, priority)
}

// sayUrgent prints an alert and queues it at high priority.
func (a *app) sayUrgent(text string) {
	a.ui.PrintUrgent(text)
	a.speak(text, speech.PriorityHigh)
}

// speak queues text for read-aloud without printing it.
func (a *app) speak(text string, priority speech.Priority) {
	a.last = text
	if a.mouth != nil {
		a.mouth.Say(text, priority)
	}
}

func (a *app) run(ctx context.Context, input <-chan string) {
	a.say(speech.LineWelcome(), speech.PriorityNormal)
	a.ui.PrintHint("Type 'help' for commands, 'quit' to exit.")
	a.showScreen(ctx, a.ui.Screen())

	for {
		var line string
		var ok bool

		select {
		case <-ctx.Done():
			return
		case line, ok = <-input:
			if !ok {
				return
			}
		}

		if a.dispatch(ctx, line) {
			return
		}
	}
}

// dispatch parses one input line and handles it. It reports whether the
// user asked to quit.
func (a *app) dispatch(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	intent, err := a.parser.Parse(ctx, line, a.ui.Screen())
	if err != nil {
		a.log.Error("parsing input: %v", err)
		return false
	}

	a.log.Debug("intent: %s (payload=%q)", intent.Type, intent.Payload)
	a.handleIntent(ctx, intent)
	return intent.Type == domain.IntentQuit
}

func (a *app) handleIntent(ctx context.Context, intent *domain.Intent) {
	// A new request cuts off whatever is being read aloud, except the
	// requests that are about the speech itself.
	switch intent.Type {
	case domain.IntentRepeatLast, domain.IntentSetVoice:
	default:
		if a.mouth != nil {
			a.mouth.Interrupt()
		}
	}

	switch intent.Type {
	// Global.
	case domain.IntentQuit:
		a.quit()
	case domain.IntentHelp:
		a.showHelp()
	case domain.IntentSwitchScreen:
		a.switchScreen(ctx, intent.Payload)
	case domain.IntentToggleTheme:
		a.toggleTheme(intent.Payload)
	case domain.IntentRepeatLast:
		a.repeatLast()

	// Converter.
	case domain.IntentConvert:
		a.convert(intent.Payload)
	case domain.IntentListUnits:
		a.listUnits(intent.Payload)
	case domain.IntentCommonTable:
		a.commonTable()

	// Timers.
	case domain.IntentAddTimer:
		a.addTimer(ctx, intent.Payload)
	case domain.IntentToggleTimer:
		a.toggleTimer(ctx, intent.Payload)
	case domain.IntentResetTimer:
		a.resetTimer(ctx, intent.Payload)
	case domain.IntentDeleteTimer:
		a.deleteTimer(ctx, intent.Payload)
	case domain.IntentAddTime:
		a.addTime(ctx, intent.Payload)
	case domain.IntentDismissTimer:
		a.dismissTimer(ctx, intent.Payload)
	case domain.IntentListTimers:
		a.listTimers(ctx)

	// Notes.
	case domain.IntentAddNote:
		a.addNote(ctx, intent.Payload)
	case domain.IntentAddRecipe:
		a.addRecipe(ctx, intent.Payload)
	case domain.IntentListNotes:
		a.listNotes(ctx, intent.Payload)
	case domain.IntentSearchNotes:
		a.searchNotes(ctx, intent.Payload)
	case domain.IntentFavoriteNote:
		a.favoriteNote(ctx, intent.Payload)
	case domain.IntentDeleteNote:
		a.deleteNote(ctx, intent.Payload)
	case domain.IntentScaleNote:
		a.convertNote(ctx, intent.Payload)

	// Chat.
	case domain.IntentAskChef:
		a.askChef(ctx, intent.Payload)
	case domain.IntentQuickReply:
		a.quickReply(ctx, intent.Payload)
	case domain.IntentSetMood:
		a.setMood(intent.Payload)
	case domain.IntentSetVoice:
		a.setVoice(intent.Payload)
	case domain.IntentSpeakLast:
		a.speakLast(ctx)
	case domain.IntentVoiceInput:
		a.voiceInput(ctx)
	case domain.IntentPin:
		a.pin(intent.Payload)
	case domain.IntentUnpin:
		a.unpin()
	case domain.IntentHistory:
		a.history()

	default:
		a.say(speech.LineUnknown(intent.Payload), speech.PriorityLow)
	}
}
