package display

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
)

// palette is the set of colours one theme uses.
type palette struct {
	barBg, barFg     string
	tabActiveBg      string
	tabActiveFg      string
	accent           string
	primary          string
	secondary        string
	separator        string
	running, paused  string
	fired            string
	chat             string
	title            string
	banner           string
	cardBorder       string
	userEcho, prompt string
}

var palettes = map[domain.Theme]palette{
	domain.ThemeDark: {
		barBg: "#27272a", barFg: "#a1a1aa",
		tabActiveBg: "#3f3f46", tabActiveFg: "#fafafa",
		accent:  "#fde68a",
		primary: "#d4d4d8", secondary: "#71717a", separator: "#52525b",
		running: "#fde68a", paused: "#a1a1aa", fired: "#fca5a5",
		chat: "#bae6fd", title: "#bbf7d0", banner: "#94a3b8",
		cardBorder: "#52525b",
		userEcho:   "#a1a1aa", prompt: "#94a3b8",
	},
	domain.ThemeLight: {
		barBg: "#e4e4e7", barFg: "#3f3f46",
		tabActiveBg: "#0369a1", tabActiveFg: "#ffffff",
		accent:  "#b45309",
		primary: "#18181b", secondary: "#71717a", separator: "#a1a1aa",
		running: "#a16207", paused: "#52525b", fired: "#b91c1c",
		chat: "#075985", title: "#15803d", banner: "#475569",
		cardBorder: "#a1a1aa",
		userEcho:   "#52525b", prompt: "#334155",
	},
}

// styles are the lipgloss styles derived from a palette.
type styles struct {
	bar       lipgloss.Style
	tab       lipgloss.Style
	tabActive lipgloss.Style
	label     lipgloss.Style
	sep       lipgloss.Style
	running   lipgloss.Style
	paused    lipgloss.Style
	fired     lipgloss.Style

	banner    lipgloss.Style
	chat      lipgloss.Style
	title     lipgloss.Style
	primary   lipgloss.Style
	secondary lipgloss.Style
	urgent    lipgloss.Style
	userEcho  lipgloss.Style
	prompt    lipgloss.Style
	card      lipgloss.Style
}

func newStyles(t domain.Theme) styles {
	p, ok := palettes[t]
	if !ok {
		p = palettes[domain.ThemeLight]
	}
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }

	return styles{
		bar:       lipgloss.NewStyle().Background(lipgloss.Color(p.barBg)).Foreground(lipgloss.Color(p.barFg)),
		tab:       lipgloss.NewStyle().Background(lipgloss.Color(p.barBg)).Foreground(lipgloss.Color(p.barFg)).Padding(0, 1),
		tabActive: lipgloss.NewStyle().Background(lipgloss.Color(p.tabActiveBg)).Foreground(lipgloss.Color(p.tabActiveFg)).Bold(true).Padding(0, 1),
		label:     fg(p.barFg).Background(lipgloss.Color(p.barBg)),
		sep:       fg(p.separator).Background(lipgloss.Color(p.barBg)),
		running:   fg(p.running).Background(lipgloss.Color(p.barBg)),
		paused:    fg(p.paused).Background(lipgloss.Color(p.barBg)).Italic(true),
		fired:     fg(p.fired).Background(lipgloss.Color(p.barBg)).Bold(true),

		banner:    fg(p.banner),
		chat:      fg(p.chat),
		title:     fg(p.title).Bold(true),
		primary:   fg(p.primary),
		secondary: fg(p.secondary),
		urgent:    fg(p.fired),
		userEcho:  fg(p.userEcho),
		prompt:    fg(p.prompt),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.cardBorder)).
			Padding(0, 2),
	}
}
