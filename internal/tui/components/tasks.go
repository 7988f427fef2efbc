package components

import (
	"fmt"
	"io"

	"canopy/internal/task"
	"canopy/internal/tui"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/list"
	tea "charm.land/bubbletea/v2"
)

// taskItem wraps a task for the bubbles list.
type taskItem struct {
	task task.Task
}

func (i taskItem) FilterValue() string { return i.task.Name }

type taskDelegate struct {
	styles tui.Styles
}

func (d taskDelegate) Height() int                             { return 1 }
func (d taskDelegate) Spacing() int                            { return 0 }
func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(taskItem)
	if !ok {
		return
	}
	line := fmt.Sprintf("%s  %s", ti.task.Name, d.styles.Dim.Render(ti.task.String()))
	if index == m.Index() {
		line = d.styles.Selected.Render("> ") + line
	} else {
		line = "  " + line
	}
	fmt.Fprint(w, line)
}

// taskList shows the configured tasks; selecting one navigates to its output
// component. The list rebuilds itself from the shared source when a config
// reload is broadcast.
type taskList struct {
	list   list.Model
	source *task.Source
	styles tui.Styles
}

func newTaskList(source *task.Source, width, height int) *taskList {
	styles := tui.DefaultStyles()
	l := list.New(taskItems(source.All()), taskDelegate{styles: styles}, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	return &taskList{list: l, source: source, styles: styles}
}

func taskItems(tasks []task.Task) []list.Item {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{task: t}
	}
	return items
}

func (m *taskList) Init() tea.Cmd { return nil }

func (m *taskList) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tui.ConfigChangedMsg:
		m.list.SetItems(taskItems(m.source.All()))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, tui.Keys.Enter) {
			if item, ok := m.list.SelectedItem().(taskItem); ok {
				target := TaskOutputKey(item.task.ID)
				return m, func() tea.Msg { return tui.NavigateMsg{Key: target} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *taskList) View() string {
	if len(m.list.Items()) == 0 {
		return m.styles.Dim.Render("no tasks configured. add [[tasks]] entries to the config file")
	}
	return m.list.View()
}

func (m *taskList) Title() string { return "Tasks" }

func (m *taskList) HelpText() string { return "↑/↓ select · enter open · esc back" }

func (m *taskList) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
