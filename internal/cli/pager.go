package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/recipecard/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// pagerChromeHeight is the title line plus the separator and hint bar.
const pagerChromeHeight = 3

// pagerModel shows read-only content in a scrolling viewport.
type pagerModel struct {
	title   string
	content string
	vp      viewport.Model
	ready   bool
	width   int
}

func newPagerModel(title, content string) pagerModel {
	return pagerModel{title: title, content: content}
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := max(msg.Height-pagerChromeHeight, 1)
		if !m.ready {
			m.vp = viewport.New(msg.Width, height)
			m.vp.KeyMap = pagerKeyMap()
			m.vp.MouseWheelEnabled = true
			m.vp.MouseWheelDelta = 3
			m.vp.SetContent(m.content)
			m.ready = true
			return m, nil
		}
		m.vp.Width = msg.Width
		m.vp.Height = height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	if !m.ready {
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m pagerModel) View() string {
	if !m.ready {
		return ""
	}
	hints := []string{
		scrollIndicator(m.vp),
		formatter.Dim("↑↓ j/k pgup/pgdn: scroll"),
		formatter.Dim("q: quit"),
	}
	sep := formatter.Dim(strings.Repeat("─", max(m.width, 20)))
	return formatter.Bold(m.title) + "\n" + m.vp.View() + "\n" + sep + "\n" + strings.Join(hints, "  ")
}

// pagerKeyMap scrolls with arrows, vi keys and paging keys. q stays free to
// quit.
func pagerKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ", "f")),
		PageUp:       key.NewBinding(key.WithKeys("pgup", "b")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u", "u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d", "d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

// scrollIndicator returns a dim scroll position string for the status bar.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	pct := int(vp.ScrollPercent() * 100)
	return formatter.Dim(fmt.Sprintf("[%d%%]", pct))
}
