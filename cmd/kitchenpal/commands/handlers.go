package commands

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hammamikhairi/kitchenpal/internal/chat"
	"github.com/hammamikhairi/kitchenpal/internal/convert"
	"github.com/hammamikhairi/kitchenpal/internal/domain"
	"github.com/hammamikhairi/kitchenpal/internal/notes"
	"github.com/hammamikhairi/kitchenpal/internal/speech"
	"github.com/hammamikhairi/kitchenpal/internal/timer"
)

// ── Global ───────────────────────────────────────────────────────

var helpAnywhere = []string{
	"converter, timers, notes, chat   Switch screen",
	"theme [light|dark]               Toggle the colour theme",
	"repeat                           Say the last line again",
	"help                             Show this message",
	"quit                             Exit",
}

var helpScreens = map[domain.Screen][]string{
	domain.ScreenConverter: {
		"2 cups to tbsp                   Convert (just type it)",
		"units [volume|temperature]       List the units",
		"common                           Common conversions",
	},
	domain.ScreenTimers: {
		"timer pasta 10                   Start a 10 minute timer",
		"timer 5                          Add 5 minutes to the countdown",
		"pause / start <timer>            Toggle a timer (or type its number)",
		"add 5 to <timer>                 Add minutes",
		"reset <timer>                    Back to full time",
		"delete <timer>                   Remove a timer",
		"ok [timer]                       Dismiss a ringing timer",
		"status                           List timers",
	},
	domain.ScreenNotes: {
		"<text>                           New note (just type it)",
		"note [shopping] <text>           New note with a style",
		"recipe <title> | <ing; ing> | <step; step>",
		"list notes / favorites           Show notes",
		"search <text>                    Find notes",
		"fav <note>                       Toggle favorite",
		"delete <note>                    Remove a note",
		"convert note <note> to <unit>    Convert a recipe's ingredients",
	},
	domain.ScreenChat: {
		"<question>                       Ask Chef Gemini (just type it)",
		"1, 2, 3                          Quick prompts",
		"mood cheerful|friendly|professional",
		"read                             Read the last reply aloud",
		"listen                           Ask by voice",
		"voice us|uk|india                Read-aloud accent",
		"pin <n> / unpin                  Pin a message",
		"history                          Show the conversation",
	},
}

func (a *app) showHelp() {
	s := a.ui.Screen()
	a.ui.PrintCard(s.Title()+" commands", helpScreens[s])
	a.ui.PrintCard("Anywhere", helpAnywhere)
}

func (a *app) quit() {
	a.say(speech.LineBye(), speech.PriorityNormal)
	if a.mouth != nil && a.quitDelay > 0 {
		time.Sleep(a.quitDelay)
	}
	a.ui.Quit()
}

func (a *app) switchScreen(ctx context.Context, name string) {
	s, err := domain.ParseScreen(name)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	a.ui.SetScreen(s)
	a.ui.PrintTitle(s.Title())
	a.showScreen(ctx, s)
}

// showScreen prints what a screen shows when it is opened.
func (a *app) showScreen(ctx context.Context, s domain.Screen) {
	switch s {
	case domain.ScreenConverter:
		a.commonTable()
		a.ui.PrintHint("Type a conversion like '2 cups to tbsp'.")
	case domain.ScreenTimers:
		if !a.timerCard(ctx) {
			a.ui.PrintHint("No timers yet. Try 'timer pasta 10'.")
		}
	case domain.ScreenNotes:
		if !a.noteCards(ctx, "") {
			a.ui.PrintHint("No notes yet. Just type one.")
		}
	case domain.ScreenChat:
		if !a.chef.Available() {
			a.ui.PrintHint(speech.LineChatDisabled())
		}
		a.history()
		a.ui.PrintCard("Quick prompts", numbered(chat.QuickReplies()))
	}
}

func (a *app) toggleTheme(name string) {
	t := a.ui.Theme().Toggle()
	if name != "" {
		parsed, err := domain.ParseTheme(name)
		if err != nil {
			a.ui.PrintUrgent(err.Error())
			return
		}
		t = parsed
	}
	a.ui.SetTheme(t)
	a.ui.PrintHint("Theme: " + string(t))
}

func (a *app) repeatLast() {
	last := a.last
	if a.mouth != nil {
		if s := a.mouth.LastSpoken(); s != "" {
			last = s
		}
	}
	if last == "" {
		a.say(speech.LineNothingToRepeat(), speech.PriorityLow)
		return
	}
	a.say(last, speech.PriorityNormal)
}

// ── Converter ────────────────────────────────────────────────────

func (a *app) convert(query string) {
	req, err := parseConversion(query)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		a.ui.PrintHint("Try: 2 cups to tbsp, 350 f in c, 100 g to oz")
		return
	}

	res, err := convert.Do(req)
	if errors.Is(err, domain.ErrUnsupportedConversion) {
		a.say(speech.LineCannotConvert(spokenUnit(req.From), spokenUnit(req.To)), speech.PriorityLow)
		return
	}
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}

	a.ui.PrintLine(res.String())
	a.speak(speech.LineConverted(
		convert.FormatAmount(res.Amount), spokenUnit(res.From),
		convert.FormatValue(res.Value), spokenUnit(res.To),
	), speech.PriorityNormal)
}

// parseConversion reads a typed query. A query with no amount converts
// zero, the way an empty amount box does.
func parseConversion(query string) (convert.Request, error) {
	req, err := convert.ParseQuery(query)
	if err == nil || !errors.Is(err, domain.ErrInvalidAmount) {
		return req, err
	}
	if zero, zerr := convert.ParseQuery("0 " + query); zerr == nil {
		return zero, nil
	}
	return req, err
}

func spokenUnit(u domain.Unit) string {
	return strings.ToLower(u.Label())
}

func (a *app) listUnits(family string) {
	families := []domain.Family{domain.FamilyVolumeMass, domain.FamilyTemperature}
	if family != "" {
		f, err := parseFamily(family)
		if err != nil {
			a.ui.PrintUrgent(err.Error())
			return
		}
		families = []domain.Family{f}
	}
	for _, f := range families {
		var lines []string
		for _, u := range domain.UnitsOf(f) {
			lines = append(lines, fmt.Sprintf("%-14s %s", u.Label(), u.Short()))
		}
		a.ui.PrintCard("Units: "+f.String(), lines)
	}
}

func (a *app) commonTable() {
	a.ui.PrintCard("Common Conversions", convert.Common())
}

// ── Timers ───────────────────────────────────────────────────────

// parseTimerArgs reads "<name> [for] <minutes> [min]". The name may be
// empty, which means the standalone countdown.
func parseTimerArgs(s string) (name string, minutes float64, err error) {
	fields := strings.Fields(s)
	if n := len(fields); n > 1 && isMinuteWord(fields[n-1]) {
		fields = fields[:n-1]
	}
	if len(fields) == 0 {
		return "", 0, domain.ErrInvalidTimer
	}

	last := strings.ToLower(fields[len(fields)-1])
	for _, suffix := range []string{"minutes", "minute", "mins", "min", "m"} {
		if trimmed := strings.TrimSuffix(last, suffix); trimmed != last && trimmed != "" {
			last = trimmed
			break
		}
	}
	minutes = convert.ParseAmount(last)
	if math.IsNaN(minutes) {
		return "", 0, fmt.Errorf("how many minutes? %w", domain.ErrInvalidTimer)
	}

	name = " " + strings.Join(fields[:len(fields)-1], " ")
	name = strings.TrimSpace(strings.TrimSuffix(name, " for"))
	return name, minutes, nil
}

func isMinuteWord(s string) bool {
	switch strings.ToLower(s) {
	case "m", "min", "mins", "minute", "minutes":
		return true
	}
	return false
}

func (a *app) addTimer(ctx context.Context, args string) {
	name, minutes, err := parseTimerArgs(args)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		a.ui.PrintHint("Try: timer pasta 10")
		return
	}

	var t *domain.Timer
	if name == "" {
		t, err = a.board.Countdown(ctx, minutes)
	} else {
		t, err = a.board.Add(ctx, name, minutes)
	}
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}

	// Setting a timer means starting it.
	if t.Status == domain.TimerIdle {
		if t, err = a.board.Toggle(ctx, t.ID); err != nil {
			a.ui.PrintUrgent(err.Error())
			return
		}
	}
	a.say(speech.LineTimerStarted(t.Name, t.Remaining), speech.PriorityNormal)
}

// resolveTimer finds a timer or explains why it could not.
func (a *app) resolveTimer(ctx context.Context, ref string) (*domain.Timer, bool) {
	t, err := a.board.Resolve(ctx, ref)
	if err == nil {
		return t, true
	}
	if timers, lerr := a.board.List(ctx); lerr == nil && len(timers) == 0 {
		a.say(speech.LineNoTimers(), speech.PriorityLow)
		return nil, false
	}
	a.ui.PrintUrgent(err.Error())
	return nil, false
}

func (a *app) toggleTimer(ctx context.Context, ref string) {
	t, ok := a.resolveTimer(ctx, ref)
	if !ok {
		return
	}
	updated, err := a.board.Toggle(ctx, t.ID)
	if errors.Is(err, domain.ErrTimerFired) {
		a.ui.PrintHint(fmt.Sprintf("%s is ringing. Type 'ok' to dismiss it or 'add 5 to %s'.", t.Name, t.Name))
		return
	}
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	if updated.Status == domain.TimerRunning {
		a.say(speech.LineTimerResumed(updated.Name), speech.PriorityNormal)
		return
	}
	a.say(speech.LineTimerPaused(updated.Name), speech.PriorityNormal)
}

func (a *app) resetTimer(ctx context.Context, ref string) {
	t, ok := a.resolveTimer(ctx, ref)
	if !ok {
		return
	}
	t, err := a.board.Reset(ctx, t.ID)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	a.say(fmt.Sprintf("%s reset to %s.", t.Name, timer.FormatClock(t.Duration)), speech.PriorityNormal)
}

func (a *app) deleteTimer(ctx context.Context, ref string) {
	t, ok := a.resolveTimer(ctx, ref)
	if !ok {
		return
	}
	if err := a.board.Delete(ctx, t.ID); err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	a.say(t.Name+" deleted.", speech.PriorityNormal)
}

// addTime handles "<ref> <minutes>".
func (a *app) addTime(ctx context.Context, payload string) {
	fields := strings.Fields(payload)
	if len(fields) < 2 {
		a.ui.PrintHint("Try: add 5 to pasta")
		return
	}
	minutes := convert.ParseAmount(fields[len(fields)-1])
	if math.IsNaN(minutes) {
		a.ui.PrintUrgent(fmt.Sprintf("%q is not a number of minutes", fields[len(fields)-1]))
		return
	}
	ref := strings.TrimPrefix(strings.Join(fields[:len(fields)-1], " "), "the ")

	t, ok := a.resolveTimer(ctx, ref)
	if !ok {
		return
	}
	t, err := a.board.AddTime(ctx, t.ID, minutes)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	added := time.Duration(minutes * float64(time.Minute))
	a.say(fmt.Sprintf("Added %s to %s.", speech.FormatDurationSpeech(added), t.Name), speech.PriorityNormal)
}

func (a *app) dismissTimer(ctx context.Context, ref string) {
	if ref != "" {
		t, ok := a.resolveTimer(ctx, ref)
		if !ok {
			return
		}
		t, err := a.board.Dismiss(ctx, t.ID)
		if err != nil {
			a.ui.PrintUrgent(err.Error())
			return
		}
		a.say(speech.LineTimerDismissed(t.Name), speech.PriorityNormal)
		return
	}

	// A bare "ok" is about whatever is ringing.
	fired, err := a.board.DismissAll(ctx)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	switch len(fired) {
	case 0:
		a.say("Nothing is ringing.", speech.PriorityLow)
	case 1:
		a.say(speech.LineTimerDismissed(fired[0].Name), speech.PriorityNormal)
	default:
		a.say(fmt.Sprintf("%d timers dismissed.", len(fired)), speech.PriorityNormal)
	}
}

func (a *app) listTimers(ctx context.Context) {
	if !a.timerCard(ctx) {
		a.say(speech.LineNoTimers(), speech.PriorityLow)
	}
}

// timerCard prints the timer list. It reports whether there was anything
// to show.
func (a *app) timerCard(ctx context.Context) bool {
	timers, err := a.board.List(ctx)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return true
	}
	if len(timers) == 0 {
		return false
	}
	lines := make([]string, 0, len(timers))
	for i, t := range timers {
		lines = append(lines, fmt.Sprintf("%d. %-14s %6s  %s", i+1, t.Name, timer.FormatClock(t.Remaining), t.Status))
	}
	a.ui.PrintCard("Timers", lines)
	return true
}

// ── Notes ────────────────────────────────────────────────────────

// splitStyle takes a "[style]" prefix off a note.
func splitStyle(s string) (style, text string) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		if end := strings.Index(s, "]"); end > 0 {
			return strings.TrimSpace(s[1:end]), strings.TrimSpace(s[end+1:])
		}
	}
	return "", s
}

func (a *app) addNote(ctx context.Context, payload string) {
	style, text := splitStyle(payload)
	n, err := a.keeper.Add(ctx, domain.NoteDraft{Text: text, Style: style})
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		if errors.Is(err, domain.ErrUnknownPreset) {
			a.ui.PrintHint("Styles: " + strings.Join(presetNames(), ", "))
		}
		return
	}
	a.say(speech.LineNoteSaved(false), speech.PriorityLow)
	a.ui.PrintHint(n.Style.Name + " · " + notes.FormatDate(n.CreatedAt))
}

// addRecipe handles "title | ing; ing | step; step".
func (a *app) addRecipe(ctx context.Context, payload string) {
	parts := strings.SplitN(payload, "|", 3)
	d := domain.NoteDraft{Text: parts[0], Style: "Recipe", IsRecipe: true}
	if len(parts) > 1 {
		d.Ingredients = strings.Split(parts[1], ";")
	}
	if len(parts) > 2 {
		d.Instructions = strings.Split(parts[2], ";")
	}

	n, err := a.keeper.Add(ctx, d)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		a.ui.PrintHint("Try: recipe Pancakes | 1 cup flour; 2 eggs | mix; fry")
		return
	}
	a.say(speech.LineNoteSaved(true), speech.PriorityLow)
	a.printNote(0, n)
}

func (a *app) listNotes(ctx context.Context, filter string) {
	if a.noteCards(ctx, filter) {
		return
	}
	if filter == "favorites" {
		a.ui.PrintHint("No favorite notes.")
		return
	}
	a.ui.PrintHint("No notes yet.")
}

// noteCards prints all notes, or only favorites. It reports whether there
// was anything to show.
func (a *app) noteCards(ctx context.Context, filter string) bool {
	list, err := a.keeper.List(ctx)
	if filter == "favorites" {
		list, err = a.keeper.Favorites(ctx)
	}
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return true
	}
	for i, n := range list {
		a.printNote(i+1, n)
	}
	return len(list) > 0
}

func (a *app) searchNotes(ctx context.Context, q string) {
	found, err := a.keeper.Search(ctx, q)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	if len(found) == 0 {
		a.ui.PrintHint(fmt.Sprintf("No notes match %q.", q))
		return
	}
	for i, n := range found {
		a.printNote(i+1, n)
	}
}

// printNote prints one note card; pos 0 leaves out the list number.
func (a *app) printNote(pos int, n *domain.Note) {
	title := n.Text
	if n.Favorite {
		title = "★ " + title
	}
	if pos > 0 {
		title = fmt.Sprintf("%d. %s", pos, title)
	}

	lines := []string{n.Style.Name + " · " + notes.FormatDate(n.CreatedAt)}
	for _, ing := range n.Ingredients {
		lines = append(lines, "- "+ing)
	}
	for i, step := range n.Instructions {
		lines = append(lines, fmt.Sprintf("%d) %s", i+1, step))
	}
	a.ui.PrintCard(title, lines)
}

func (a *app) favoriteNote(ctx context.Context, ref string) {
	n, err := a.keeper.Resolve(ctx, ref)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	n, err = a.keeper.ToggleFavorite(ctx, n.ID)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	if n.Favorite {
		a.say("Added to favorites.", speech.PriorityLow)
		return
	}
	a.say("Removed from favorites.", speech.PriorityLow)
}

func (a *app) deleteNote(ctx context.Context, ref string) {
	n, err := a.keeper.Resolve(ctx, ref)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	if err := a.keeper.Delete(ctx, n.ID); err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	a.say("Note deleted.", speech.PriorityLow)
}

// convertNote handles "<note ref> to <unit>".
func (a *app) convertNote(ctx context.Context, payload string) {
	ref, unit, ok := splitTarget(payload)
	if !ok {
		a.ui.PrintHint("Try: convert note 1 to grams")
		return
	}
	to, err := domain.ParseUnit(unit)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	n, err := a.keeper.Resolve(ctx, ref)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	converted, err := a.keeper.ConvertIngredients(ctx, n.ID, to)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}

	lines := make([]string, 0, len(converted))
	for _, c := range converted {
		if c.Err != nil {
			lines = append(lines, "- "+c.Text+"  (unchanged)")
			continue
		}
		lines = append(lines, "- "+c.Text)
	}
	a.ui.PrintCard(fmt.Sprintf("%s in %s", n.Text, spokenUnit(to)), lines)
}

// splitTarget splits "<ref> to <unit>" at the last connector.
func splitTarget(s string) (ref, unit string, ok bool) {
	lower := strings.ToLower(s)
	best := -1
	var sep string
	for _, c := range []string{" to ", " into ", " in "} {
		if i := strings.LastIndex(lower, c); i > best {
			best, sep = i, c
		}
	}
	if best <= 0 {
		return "", "", false
	}
	ref = strings.TrimSpace(s[:best])
	unit = strings.TrimSpace(s[best+len(sep):])
	return ref, unit, ref != "" && unit != ""
}

func presetNames() []string {
	var out []string
	for _, p := range notes.Presets() {
		out = append(out, strings.ToLower(p.Name))
	}
	return out
}

// ── Chat ─────────────────────────────────────────────────────────

func (a *app) askChef(ctx context.Context, text string) {
	if !a.chef.Available() {
		a.say(speech.LineChatDisabled(), speech.PriorityLow)
		return
	}
	a.thinking()
	reply, err := a.chef.Send(ctx, text)
	a.showReply(reply, err)
}

func (a *app) quickReply(ctx context.Context, payload string) {
	i, err := strconv.Atoi(strings.TrimSpace(payload))
	prompts := chat.QuickReplies()
	if err != nil || i < 1 || i > len(prompts) {
		a.ui.PrintCard("Quick prompts", numbered(prompts))
		return
	}
	if !a.chef.Available() {
		a.say(speech.LineChatDisabled(), speech.PriorityLow)
		return
	}
	a.ui.PrintHint("> " + prompts[i-1])
	a.thinking()
	reply, err := a.chef.SendQuickReply(ctx, i)
	a.showReply(reply, err)
}

// thinking prints and speaks a filler while the model answers.
func (a *app) thinking() {
	filler := speech.LineThinking()
	a.ui.PrintHint(filler)
	if a.mouth != nil {
		a.mouth.Say(filler, speech.PriorityHigh)
	}
}

func (a *app) showReply(reply domain.ChatMessage, err error) {
	if err != nil {
		a.log.Error("chat: %v", err)
		if errors.Is(err, domain.ErrEmptyMessage) {
			return
		}
		a.sayUrgent(chat.Apology)
		return
	}
	a.ui.PrintChat(reply.Text)
}

func (a *app) setMood(name string) {
	m, err := domain.ParseMood(name)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	if err := a.chef.SetMood(m); err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	a.ui.PrintHint("Mood: " + string(m))
	if greeting, ok := a.chef.Last(); ok {
		a.ui.PrintChat(greeting.Text)
	}
}

func (a *app) setVoice(name string) {
	accent, err := domain.ParseAccent(name)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	if a.mouth == nil {
		a.ui.PrintHint(fmt.Sprintf("Read-aloud is off. Set %s and %s to enable it.", speech.EnvAzureSpeechKey, speech.EnvAzureSpeechRegion))
		return
	}
	a.mouth.SetVoice(accent)
	a.say("Voice set to "+string(accent)+".", speech.PriorityNormal)
}

// speakLast reads the latest chat message aloud.
func (a *app) speakLast(ctx context.Context) {
	msg, ok := a.chef.Last()
	if !ok {
		a.say(speech.LineNothingToRepeat(), speech.PriorityLow)
		return
	}
	if a.mouth == nil {
		a.ui.PrintHint(fmt.Sprintf("Read-aloud is off. Set %s and %s to enable it.", speech.EnvAzureSpeechKey, speech.EnvAzureSpeechRegion))
		return
	}
	a.last = msg.Text
	if err := a.voice.Speak(ctx, msg.Text); err != nil {
		a.ui.PrintUrgent(err.Error())
	}
}

// voiceInput records one utterance. On the chat screen it goes straight
// to the chef; elsewhere it is handled like typed input.
func (a *app) voiceInput(ctx context.Context) {
	if !a.voice.CanListen() {
		a.ui.PrintHint("Voice input is off. It needs the whisper CLI and a GGML model (see speech.whisper_model).")
		return
	}
	a.ui.PrintHint(speech.LineListening())

	if a.ui.Screen() == domain.ScreenChat && a.chef.Available() {
		heard, reply, err := a.chef.Listen(ctx, a.voice)
		if errors.Is(err, speech.ErrNothingHeard) {
			a.say(speech.LineNothingHeard(), speech.PriorityLow)
			return
		}
		if heard != "" {
			a.ui.PrintVoice(heard)
		}
		a.showReply(reply, err)
		return
	}

	heard, err := a.voice.Listen(ctx)
	if errors.Is(err, speech.ErrNothingHeard) {
		a.say(speech.LineNothingHeard(), speech.PriorityLow)
		return
	}
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	a.ui.PrintVoice(heard)
	a.dispatch(ctx, heard)
}

func (a *app) pin(payload string) {
	i, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil {
		a.ui.PrintHint("Try: pin 2")
		return
	}
	msg, err := a.chef.Pin(i)
	if err != nil {
		a.ui.PrintUrgent(err.Error())
		return
	}
	a.ui.PrintHint("Pinned: " + truncate(msg.Text, 60))
}

func (a *app) unpin() {
	if a.chef.Unpin() {
		a.ui.PrintHint("Unpinned.")
		return
	}
	a.ui.PrintHint("Nothing is pinned.")
}

func (a *app) history() {
	if p, ok := a.chef.Pinned(); ok {
		a.ui.PrintCard("Pinned", []string{p.Text})
	}
	msgs := a.chef.Messages()
	lines := make([]string, 0, len(msgs))
	for i, m := range msgs {
		who := "You"
		if m.Sender == domain.SenderBot {
			who = chat.AssistantName
		}
		lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, who, truncate(m.Text, 100)))
	}
	a.ui.PrintCard("Conversation", lines)
}

// ── Helpers ──────────────────────────────────────────────────────

func numbered(items []string) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = fmt.Sprintf("%d. %s", i+1, s)
	}
	return out
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}
