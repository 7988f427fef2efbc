package components

import (
	"canopy/internal/tui"

	"charm.land/bubbles/v2/help"
	tea "charm.land/bubbletea/v2"
)

// helpView shows the full key binding reference.
type helpView struct {
	help   help.Model
	styles tui.Styles
}

func newHelp(width, height int) *helpView {
	h := help.New()
	h.ShowAll = true
	h.SetWidth(width)
	return &helpView{help: h, styles: tui.DefaultStyles()}
}

func (m *helpView) Init() tea.Cmd { return nil }

func (m *helpView) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(msg.Width, msg.Height)
	}
	return m, nil
}

func (m *helpView) View() string {
	return m.styles.Border.Render(m.help.View(tui.Keys))
}

func (m *helpView) Title() string { return "Help" }

func (m *helpView) HelpText() string { return "esc back" }

func (m *helpView) SetSize(width, height int) {
	m.help.SetWidth(width)
}
