package components

import (
	"fmt"
	"io"

	"canopy/internal/tui"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
)

// menuEntry is one navigable destination on the main menu.
type menuEntry struct {
	title  string
	desc   string
	target tui.Key
}

func (e menuEntry) FilterValue() string { return e.title }

// menuDelegate renders entries as a title and dimmed description with a
// cursor marker.
type menuDelegate struct {
	styles tui.Styles
}

func (d menuDelegate) Height() int                             { return 1 }
func (d menuDelegate) Spacing() int                            { return 0 }
func (d menuDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d menuDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	entry, ok := item.(menuEntry)
	if !ok {
		return
	}
	line := fmt.Sprintf("%s  %s", entry.title, d.styles.Dim.Render(entry.desc))
	if index == m.Index() {
		line = d.styles.Selected.Render("> ") + line
	} else {
		line = "  " + line
	}
	fmt.Fprint(w, line)
}

// menu is the root component: a static list of destinations.
type menu struct {
	list   list.Model
	styles tui.Styles
}

func newMenu(width, height int) *menu {
	styles := tui.DefaultStyles()
	entries := []list.Item{
		menuEntry{title: "Tasks", desc: "run configured tasks", target: TaskListKey()},
		menuEntry{title: "Help", desc: "key bindings", target: HelpKey()},
	}

	l := list.New(entries, menuDelegate{styles: styles}, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)

	return &menu{list: l, styles: styles}
}

func (m *menu) Init() tea.Cmd { return nil }

func (m *menu) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, tui.Keys.Enter) {
			if entry, ok := m.list.SelectedItem().(menuEntry); ok {
				return m, func() tea.Msg { return tui.NavigateMsg{Key: entry.target} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *menu) View() string {
	return m.list.View()
}

func (m *menu) Title() string { return "Menu" }

func (m *menu) HelpText() string { return "" }

func (m *menu) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
