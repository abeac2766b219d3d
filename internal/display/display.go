// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type keeps a status bar (screen tabs, theme and running timers)
// and an input prompt at the bottom of the terminal. All application
// output is printed above the rendered area via Program.Println / Printf,
// so concurrent writes never garble the display.
package display

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
)

const promptText = "pal> "

// TimerSource lists the timers shown in the status bar.
type TimerSource interface {
	List(ctx context.Context) ([]*domain.Timer, error)
}

// viewState is what the status bar shows besides timers. Swapped
// atomically so app goroutines can change it while the UI renders.
type viewState struct {
	theme  domain.Theme
	screen domain.Screen
	styles styles
}

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may
// safely call the Print helpers and read from [UI.InputChan] at any
// time after [UI.WaitReady] returns.
type UI struct {
	program *tea.Program
	inputCh chan string
	readyCh chan struct{}
	quitCh  chan struct{}
	timers  TimerSource
	done    atomic.Bool
	state   atomic.Pointer[viewState]
	width   atomic.Int64
}

// NewUI creates the display. Call Run() to start.
func NewUI(timers TimerSource, theme domain.Theme, screen domain.Screen) *UI {
	u := &UI{
		timers:  timers,
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
	u.state.Store(&viewState{theme: theme, screen: screen, styles: newStyles(theme)})
	u.width.Store(int64(termWidth()))
	return u
}

func (u *UI) view() *viewState { return u.state.Load() }

// Theme returns the active theme.
func (u *UI) Theme() domain.Theme { return u.view().theme }

// Screen returns the active screen.
func (u *UI) Screen() domain.Screen { return u.view().screen }

// SetTheme switches the colour scheme.
func (u *UI) SetTheme(t domain.Theme) {
	cur := u.view()
	u.state.Store(&viewState{theme: t, screen: cur.screen, styles: newStyles(t)})
	u.redraw()
}

// SetScreen switches the active tab.
func (u *UI) SetScreen(s domain.Screen) {
	cur := u.view()
	u.state.Store(&viewState{theme: cur.theme, screen: s, styles: cur.styles})
	u.redraw()
}

func (u *UI) redraw() {
	if u.program != nil && !u.done.Load() {
		go u.program.Send(redrawMsg{})
	}
}

// Width returns the terminal width last reported.
func (u *UI) Width() int { return int(u.width.Load()) }

// Println prints a line above the prompt. Thread-safe.
// If the program hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...any) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the prompt on its own line. Thread-safe.
func (u *UI) Printf(format string, a ...any) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// ── Styled print helpers ─────────────────────────────────────────

// PrintTitle prints a section heading, e.g. the screen name on switch.
func (u *UI) PrintTitle(text string) {
	u.Println(u.view().styles.title.Render("  " + text))
}

// PrintLine prints regular output.
func (u *UI) PrintLine(text string) {
	u.Println(u.view().styles.primary.Render("  " + text))
}

// PrintHint prints a secondary/dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(u.view().styles.secondary.Render("  " + text))
}

// PrintUrgent prints an error or alert line.
func (u *UI) PrintUrgent(text string) {
	u.Println(u.view().styles.urgent.Render("  " + text))
}

// PrintChat prints an assistant reply rendered as markdown.
func (u *UI) PrintChat(text string) {
	v := u.view()
	width := u.Width() - 4
	u.Println(v.styles.chat.Render("  Chef Gemini:"))
	u.Println(RenderMarkdown(text, v.theme, width))
}

// PrintCard prints lines in a bordered box under a heading.
func (u *UI) PrintCard(title string, lines []string) {
	s := u.view().styles
	body := s.title.Render(title) + "\n" + s.primary.Render(strings.Join(lines, "\n"))
	u.Println(s.card.Render(body))
}

// PrintVoice prints a voice-recognised input line.
func (u *UI) PrintVoice(text string) {
	s := u.view().styles
	u.Println(s.secondary.Render("[voice] ") + s.primary.Render(text))
}

// PrintUserInput echoes the user's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	s := u.view().styles
	u.Println(s.prompt.Render("pal") + s.secondary.Render("> ") + s.userEcho.Render(text))
}

// PrintBanner prints the startup banner.
func (u *UI) PrintBanner() {
	u.Println(RenderBanner(u.view().styles.banner, u.Width()))
}

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	ti := textinput.New()
	// A plain-text prompt keeps the textinput width math correct; styled
	// prompts add ANSI bytes that break its offset calculations.
	ti.Prompt = promptText
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60 // updated on first WindowSizeMsg

	m := model{
		ui:      u,
		input:   ti,
		inputCh: u.inputCh,
		readyCh: u.readyCh,
		echoFn:  u.PrintUserInput,
	}
	m.applyInputStyles()

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	ui      *UI
	input   textinput.Model
	inputCh chan<- string
	readyCh chan struct{}
	echoFn  func(string)
	timers  []timerInfo
	theme   domain.Theme
	width   int
}

type timerInfo struct {
	label     string
	remaining time.Duration
	status    domain.TimerStatus
}

// Messages.
type (
	tickMsg   time.Time
	redrawMsg struct{}
)

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh),
	)
}

func signalReady(ch chan struct{}) tea.Cmd {
	return func() tea.Msg {
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *model) applyInputStyles() {
	v := m.ui.view()
	m.theme = v.theme
	m.input.PromptStyle = v.styles.prompt
	m.input.TextStyle = v.styles.userEcho
	m.input.Cursor.Style = v.styles.prompt
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) != "" {
				m.inputCh <- v
				// Echo from a Cmd so Update never blocks on Println.
				echoFn := m.echoFn
				return m, func() tea.Msg {
					echoFn(v)
					return nil
				}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.ui.width.Store(int64(msg.Width))
		if msg.Width > len(promptText) {
			m.input.Width = msg.Width - len(promptText)
		}
		return m, nil

	case redrawMsg:
		m.applyInputStyles()
		m.refreshTimers()
		return m, nil

	case tickMsg:
		if m.theme != m.ui.Theme() {
			m.applyInputStyles()
		}
		m.refreshTimers()
		return m, tea.Batch(tickCmd(), tea.SetWindowTitle(m.titleStr()))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *model) refreshTimers() {
	if m.ui.timers == nil {
		return
	}
	timers, err := m.ui.timers.List(context.Background())
	if err != nil {
		return
	}
	m.timers = m.timers[:0]
	for _, t := range timers {
		if t.Status == domain.TimerIdle {
			continue
		}
		m.timers = append(m.timers, timerInfo{label: t.Name, remaining: t.Remaining, status: t.Status})
	}
}

func (m model) titleStr() string {
	if len(m.timers) == 0 {
		return "KitchenPal"
	}
	p := make([]string, 0, len(m.timers))
	for _, t := range m.timers {
		p = append(p, t.label+": "+t.short())
	}
	return "KitchenPal | " + strings.Join(p, " | ")
}

func (t timerInfo) short() string {
	switch t.status {
	case domain.TimerFired:
		return "DONE!"
	case domain.TimerPaused:
		return fmtDuration(t.remaining) + " (paused)"
	default:
		return fmtDuration(t.remaining)
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.renderBar())
	b.WriteByte('\n')
	// Blank line before prompt for visual separation.
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}

func (m model) renderBar() string {
	v := m.ui.view()
	s := v.styles

	var tabs []string
	for _, scr := range domain.Screens() {
		if scr == v.screen {
			tabs = append(tabs, s.tabActive.Render(scr.Title()))
		} else {
			tabs = append(tabs, s.tab.Render(scr.Title()))
		}
	}
	content := strings.Join(tabs, "") + s.sep.Render(" │ ") + s.label.Render(string(v.theme))

	for _, t := range m.timers {
		content += s.sep.Render("  │  ") + s.label.Render(t.label+": ")
		switch t.status {
		case domain.TimerFired:
			content += s.fired.Render("DONE!")
		case domain.TimerPaused:
			content += s.paused.Render(fmtDuration(t.remaining) + " paused")
		default:
			content += s.running.Render(fmtDuration(t.remaining))
		}
	}

	w := m.width
	if w <= 0 {
		w = 80
	}
	return s.bar.Width(w).Render(content)
}

// ── Helpers ──────────────────────────────────────────────────────

func fmtDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	if m == 0 {
		return fmt.Sprintf("%ds", s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
