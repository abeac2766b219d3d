package commands

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/kitchenpal/internal/chat"
	"github.com/hammamikhairi/kitchenpal/internal/conversation"
	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/logger"
	"github.com/hammamikhairi/kitchenpal/internal/notes"
	"github.com/hammamikhairi/kitchenpal/internal/speech"
	"github.com/hammamikhairi/kitchenpal/internal/storage"
	"github.com/hammamikhairi/kitchenpal/internal/timer"
)

// recorder is a view that keeps everything printed.
type recorder struct {
	out    []string
	theme  domain.Theme
	screen domain.Screen
	quit   bool
}

func (r *recorder) add(kind, text string) { r.out = append(r.out, kind+": "+text) }

func (r *recorder) PrintTitle(text string)  { r.add("title", text) }
func (r *recorder) PrintLine(text string)   { r.add("line", text) }
func (r *recorder) PrintHint(text string)   { r.add("hint", text) }
func (r *recorder) PrintUrgent(text string) { r.add("urgent", text) }
func (r *recorder) PrintChat(text string)   { r.add("chat", text) }
func (r *recorder) PrintVoice(text string)  { r.add("voice", text) }
func (r *recorder) PrintCard(title string, lines []string) {
	r.add("card", title+"\n"+strings.Join(lines, "\n"))
}

func (r *recorder) Theme() domain.Theme       { return r.theme }
func (r *recorder) SetTheme(t domain.Theme)   { r.theme = t }
func (r *recorder) Screen() domain.Screen     { return r.screen }
func (r *recorder) SetScreen(s domain.Screen) { r.screen = s }
func (r *recorder) Quit()                     { r.quit = true }

func (r *recorder) String() string { return strings.Join(r.out, "\n") }

// take returns what was printed since the last call.
func (r *recorder) take() string {
	s := r.String()
	r.out = nil
	return s
}

type fakeCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func newTestApp(t *testing.T, completer domain.Completer) (*app, *recorder) {
	t.Helper()
	log := logger.New(logger.LevelOff, io.Discard)
	board := timer.NewBoard(storage.NewMemoryTimerStore(log), log)

	rec := &recorder{theme: domain.ThemeLight, screen: domain.ScreenConverter}
	a := &app{
		parser: conversation.NewKeywordParser(log),
		board:  board,
		keeper: notes.NewKeeper(storage.NewMemoryNoteStore(log), log),
		chef: chat.NewChef(completer, log,
			chat.WithPicker(func(int) int { return 0 }),
			chat.WithContext(func(ctx context.Context) string { return timerContext(ctx, board) }),
		),
		voice: speech.NewProvider(nil, nil, log),
		log:   log,
		ui:    rec,
	}
	return a, rec
}

// send dispatches lines in order and returns the output of the last one.
func send(a *app, rec *recorder, lines ...string) string {
	for _, l := range lines {
		rec.take()
		a.dispatch(context.Background(), l)
	}
	return rec.take()
}

func TestConverterScreen(t *testing.T) {
	a, rec := newTestApp(t, nil)

	assert.Equal(t, "line: 2 cups = 32.00 tablespoons", send(a, rec, "2 cups to tbsp"))
	assert.Equal(t, "2 cups is 32.00 tablespoons.", a.last)

	assert.Equal(t, "line: 0 celsius = 32.00 fahrenheit", send(a, rec, "convert 0 c to f"))
	assert.Equal(t, "line: 0 cups = 0.00 tablespoons", send(a, rec, "cups to tbsp"), "no amount converts zero")
	assert.Equal(t, "line: I can't turn cups into celsius.", send(a, rec, "1 cup to celsius"))
	assert.Contains(t, send(a, rec, "2 cups to bananas"), "urgent: unknown unit")

	out := send(a, rec, "common")
	assert.Contains(t, out, "card: Common Conversions")
	assert.Contains(t, out, "1 cup = 16 tbsp")

	out = send(a, rec, "units temperature")
	assert.Contains(t, out, "Units: temperature")
	assert.NotContains(t, out, "Cups")
}

func TestTimerScreen(t *testing.T) {
	a, rec := newTestApp(t, nil)
	ctx := context.Background()

	out := send(a, rec, "timers")
	assert.Equal(t, domain.ScreenTimers, rec.screen)
	assert.Contains(t, out, "hint: No timers yet.")

	assert.Equal(t, "line: pasta timer set for 10 minutes.", send(a, rec, "timer pasta 10"))
	timers, err := a.board.List(ctx)
	require.NoError(t, err)
	require.Len(t, timers, 1)
	assert.Equal(t, domain.TimerRunning, timers[0].Status)

	assert.Equal(t, "line: pasta paused.", send(a, rec, "pause pasta"))
	assert.Equal(t, "line: pasta running.", send(a, rec, "1"))
	assert.Equal(t, "line: Added 5 minutes to pasta.", send(a, rec, "add 5 to pasta"))

	out = send(a, rec, "status")
	assert.Contains(t, out, "1. pasta")
	assert.Contains(t, out, "15:00")

	assert.Equal(t, "line: Countdown timer set for 2 minutes 30 seconds.", send(a, rec, "timer 2.5"))
	assert.Equal(t, "line: rice timer set for 20 minutes.", send(a, rec, "rice for 20"))
	assert.Equal(t, "line: Nothing is ringing.", send(a, rec, "ok"))
	assert.Equal(t, "line: pasta deleted.", send(a, rec, "delete pasta"))
	assert.Contains(t, send(a, rec, "reset nope"), "urgent:")
	assert.Equal(t, "line: Didn't catch that: blah.", send(a, rec, "blah"))
}

func TestDismissRingingTimer(t *testing.T) {
	a, rec := newTestApp(t, nil)
	ctx := context.Background()

	assert.Equal(t, "line: No timers running.", send(a, rec, "status"))

	log := logger.New(logger.LevelOff, io.Discard)
	store := storage.NewMemoryTimerStore(log)
	a.board = timer.NewBoard(store, log)
	ring := func(name string) {
		require.NoError(t, store.Save(ctx, &domain.Timer{ID: name + "-id", Name: name, Duration: time.Minute, Status: domain.TimerFired}))
	}
	ring("eggs")
	ring("toast")

	assert.Contains(t, send(a, rec, "pause toast"), "hint: toast is ringing.")
	assert.Equal(t, "line: eggs dismissed.", send(a, rec, "dismiss eggs"))

	ring("rice")
	assert.Equal(t, "line: 2 timers dismissed.", send(a, rec, "ok"))

	timers, err := a.board.List(ctx)
	require.NoError(t, err)
	for _, tm := range timers {
		assert.Equal(t, domain.TimerIdle, tm.Status, tm.Name)
		assert.Equal(t, time.Minute, tm.Remaining, tm.Name)
	}
}

func TestNotesScreen(t *testing.T) {
	a, rec := newTestApp(t, nil)

	assert.Contains(t, send(a, rec, "notes"), "hint: No notes yet.")
	assert.Equal(t, domain.ScreenNotes, rec.screen)

	assert.Contains(t, send(a, rec, "buy eggs"), "line: Note saved.")
	assert.Contains(t, send(a, rec, "note [shopping] milk"), "hint: Shopping ·")
	assert.Contains(t, send(a, rec, "note [fancy] caviar"), "Styles: default, recipe, shopping, important")

	out := send(a, rec, "recipe Pancakes | 1 cup flour; 2 eggs | mix; fry")
	assert.Contains(t, out, "line: Recipe saved.")
	assert.Contains(t, out, "card: Pancakes\nRecipe ·")
	assert.Contains(t, out, "- 1 cup flour")
	assert.Contains(t, out, "2) fry")

	out = send(a, rec, "convert note pancakes to ml")
	assert.Contains(t, out, "card: Pancakes in milliliters")
	assert.Contains(t, out, "- 236.59 milliliters flour")
	assert.Contains(t, out, "- 2 eggs  (unchanged)")

	out = send(a, rec, "search eggs")
	assert.Contains(t, out, "Pancakes")
	assert.Contains(t, out, "buy eggs")
	assert.NotContains(t, out, "milk")

	assert.Equal(t, "line: Added to favorites.", send(a, rec, "fav pancakes"))
	out = send(a, rec, "favorites")
	assert.Contains(t, out, "1. ★ Pancakes")
	assert.NotContains(t, out, "milk")

	assert.Equal(t, "line: Note deleted.", send(a, rec, "delete milk"))
	assert.Equal(t, "hint: No favorite notes.", send(a, rec, "fav pancakes", "favorites"))
}

func TestChatScreen(t *testing.T) {
	fc := &fakeCompleter{reply: "Try **shakshuka**."}
	a, rec := newTestApp(t, fc)

	out := send(a, rec, "chat")
	assert.Contains(t, out, "card: Conversation\n1. Chef Gemini: Hi!")
	assert.Contains(t, out, "card: Quick prompts\n1. What can I cook today?")

	out = send(a, rec, "what can I make with eggs?")
	assert.Contains(t, out, "chat: Try **shakshuka**.")
	require.NotEmpty(t, fc.prompts)
	last := fc.prompts[len(fc.prompts)-1]
	assert.Contains(t, last, "User query: what can I make with eggs?")

	out = send(a, rec, "2")
	assert.Contains(t, out, "hint: > Give me a snack recipe")
	assert.Contains(t, fc.prompts[len(fc.prompts)-1], "User query: Give me a snack recipe")

	assert.Contains(t, send(a, rec, "pin 2"), "hint: Pinned: what can I make with eggs?")
	assert.Contains(t, send(a, rec, "history"), "card: Pinned\nwhat can I make with eggs?")
	assert.Equal(t, "hint: Unpinned.", send(a, rec, "unpin"))
	assert.Equal(t, "hint: Nothing is pinned.", send(a, rec, "unpin"))

	assert.Contains(t, send(a, rec, "read"), "hint: Read-aloud is off.")
	assert.Contains(t, send(a, rec, "listen"), "hint: Voice input is off.")

	out = send(a, rec, "mood professional")
	assert.Contains(t, out, "hint: Mood: professional")
	assert.Contains(t, out, "chat: Greetings.")
	assert.Len(t, a.chef.Messages(), 1)
}

func TestChatErrors(t *testing.T) {
	a, rec := newTestApp(t, nil)
	assert.Equal(t, "line: "+speech.LineChatDisabled(), send(a, rec, "ask how long do eggs boil"))

	fc := &fakeCompleter{err: errors.New("quota exceeded")}
	a, rec = newTestApp(t, fc)
	out := send(a, rec, "ask how long do eggs boil")
	assert.Contains(t, out, "urgent: "+chat.Apology)
}

func TestTimerContext(t *testing.T) {
	a, _ := newTestApp(t, nil)
	ctx := context.Background()
	assert.Empty(t, timerContext(ctx, a.board))

	tm, err := a.board.Add(ctx, "pasta", 10)
	require.NoError(t, err)
	assert.Empty(t, timerContext(ctx, a.board), "idle timers are not mentioned")

	_, err = a.board.Toggle(ctx, tm.ID)
	require.NoError(t, err)
	assert.Equal(t, "The user has these kitchen timers running: pasta (10:00 left).", timerContext(ctx, a.board))
}

func TestGlobalIntents(t *testing.T) {
	a, rec := newTestApp(t, nil)

	assert.Equal(t, "hint: Theme: dark", send(a, rec, "dark"))
	assert.Equal(t, domain.ThemeDark, rec.theme)
	assert.Equal(t, "hint: Theme: light", send(a, rec, "theme"))

	assert.Equal(t, "line: I haven't said anything yet.", send(a, rec, "repeat"))
	send(a, rec, "1 tbsp to tsp")
	assert.Equal(t, "line: 1 tablespoons is 3.00 teaspoons.", send(a, rec, "repeat"))

	out := send(a, rec, "help")
	assert.Contains(t, out, "card: Converter commands")
	assert.Contains(t, out, "card: Anywhere")

	assert.False(t, rec.quit)
	quit := a.dispatch(context.Background(), "quit")
	assert.True(t, quit)
	assert.True(t, rec.quit)
	assert.Contains(t, rec.String(), "line: Bye. Enjoy your meal.")
}

func TestParseTimerArgs(t *testing.T) {
	tests := []struct {
		in      string
		name    string
		minutes float64
		wantErr bool
	}{
		{"pasta 10", "pasta", 10, false},
		{"pasta for 10 minutes", "pasta", 10, false},
		{"soft boiled eggs 6m", "soft boiled eggs", 6, false},
		{"15", "", 15, false},
		{"1/2", "", 0.5, false},
		{"pasta", "", 0, true},
		{"", "", 0, true},
	}
	for _, tt := range tests {
		name, minutes, err := parseTimerArgs(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, domain.ErrInvalidTimer, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.name, name, tt.in)
		assert.InDelta(t, tt.minutes, minutes, 1e-9, tt.in)
	}
}

func TestSplitHelpers(t *testing.T) {
	ref, unit, ok := splitTarget("my pancakes to fl oz")
	require.True(t, ok)
	assert.Equal(t, "my pancakes", ref)
	assert.Equal(t, "fl oz", unit)

	ref, unit, ok = splitTarget("bread in into grams")
	require.True(t, ok)
	assert.Equal(t, "bread in", ref)
	assert.Equal(t, "grams", unit)

	_, _, ok = splitTarget("pancakes")
	assert.False(t, ok)

	style, text := splitStyle("[Important] defrost chicken")
	assert.Equal(t, "Important", style)
	assert.Equal(t, "defrost chicken", text)

	style, text = splitStyle("just text")
	assert.Empty(t, style)
	assert.Equal(t, "just text", text)
}
