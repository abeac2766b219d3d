package display

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"

	"github.com/hammamikhairi/kitchenpal/internal/domain"
)

type rendererKey struct {
	theme domain.Theme
	width int
}

var (
	renderersMu sync.Mutex
	renderers   = map[rendererKey]*glamour.TermRenderer{}
)

// RenderMarkdown renders chat replies for the terminal. The style follows
// the app theme rather than glamour's auto-detection, which would query the
// terminal while Bubble Tea owns it. Falls back to the raw text.
func RenderMarkdown(text string, theme domain.Theme, width int) string {
	if width <= 0 {
		width = 80
	}
	r := renderer(theme, width)
	if r == nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.Trim(out, "\n")
}

func renderer(theme domain.Theme, width int) *glamour.TermRenderer {
	key := rendererKey{theme, width}

	renderersMu.Lock()
	defer renderersMu.Unlock()
	if r, ok := renderers[key]; ok {
		return r
	}

	style := glamourstyles.LightStyleConfig
	if theme == domain.ThemeDark {
		style = glamourstyles.DarkStyleConfig
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[key] = r
	return r
}
