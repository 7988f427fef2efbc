package components

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"canopy/internal/task"
	"canopy/internal/tui"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"
)

// taskDoneMsg carries the outcome of one task run back to the component that
// started it. It is addressed: the router delivers it to this key even when
// the component is in the background, and drops it if the key was evicted.
type taskDoneMsg struct {
	key    tui.Key
	result task.Result
}

func (m taskDoneMsg) RouteKey() tui.Key { return m.key }

// taskOutput shows one task's captured output in a viewport. State (scroll
// position, last result) survives navigation because the instance lives in
// the cache under its key. The task definition is re-read from the shared
// source on a config reload, so a re-run always executes the current command.
type taskOutput struct {
	ctx    context.Context
	key    tui.Key
	id     int
	source *task.Source
	task   task.Task
	styles tui.Styles

	viewport viewport.Model
	running  bool
	hasRun   bool
	result   task.Result
}

func newTaskOutput(ctx context.Context, key tui.Key, source *task.Source, width, height int) (tui.Component, error) {
	id, err := strconv.Atoi(key.ID)
	if err != nil {
		return nil, fmt.Errorf("bad task key %q: %w", key.ID, err)
	}
	t, ok := source.Get(id)
	if !ok {
		return nil, fmt.Errorf("no task with id %d", id)
	}

	vp := viewport.New()
	m := &taskOutput{
		ctx:      ctx,
		key:      key,
		id:       id,
		source:   source,
		task:     t,
		styles:   tui.DefaultStyles(),
		viewport: vp,
	}
	m.SetSize(width, height)
	return m, nil
}

// Init starts the first run. Subsequent navigations find the instance cached
// and do not re-run; the user re-runs explicitly.
func (m *taskOutput) Init() tea.Cmd {
	if m.hasRun || m.running {
		return nil
	}
	return m.run()
}

// run returns the side effect as a command: the runtime executes it on its
// own goroutine and feeds the addressed result back into the event stream.
// The component itself never blocks.
func (m *taskOutput) run() tea.Cmd {
	m.running = true
	t, k := m.task, m.key
	ctx := m.ctx
	return func() tea.Msg {
		return taskDoneMsg{key: k, result: task.Run(ctx, t)}
	}
}

func (m *taskOutput) Update(msg tea.Msg) (tui.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case taskDoneMsg:
		m.running = false
		m.hasRun = true
		m.result = msg.result
		m.viewport.SetContent(m.contentView())
		m.viewport.GotoTop()
		return m, nil

	case tui.ConfigChangedMsg:
		// Pick up an edited definition; a run already in flight finishes with
		// the old one. A task removed by the reload keeps its last definition
		// so the captured output stays attributable.
		if t, ok := m.source.Get(m.id); ok {
			m.task = t
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, tui.Keys.Run):
			if m.running {
				return m, nil
			}
			return m, m.run()

		case key.Matches(msg, tui.Keys.Copy):
			if !m.hasRun {
				return m, nil
			}
			if err := clipboard.WriteAll(m.result.Output); err != nil {
				return m, func() tea.Msg { return tui.StatusMsg(fmt.Sprintf("copy failed: %v", err)) }
			}
			return m, func() tea.Msg { return tui.StatusMsg("output copied") }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// contentView renders the result for the viewport.
func (m *taskOutput) contentView() string {
	out := m.result.Output
	if m.result.Err != nil {
		out += "\n" + m.styles.Error.Render(fmt.Sprintf("error: %v", m.result.Err))
	}
	if m.hasRun {
		out += "\n" + m.styles.Dim.Render(fmt.Sprintf("finished in %s", m.result.Duration.Round(time.Millisecond)))
	}
	return out
}

func (m *taskOutput) View() string {
	if m.running {
		return m.styles.Dim.Render(fmt.Sprintf("running %s ...", m.task.String()))
	}
	if !m.hasRun {
		return m.styles.Dim.Render("press r to run")
	}
	return m.viewport.View()
}

func (m *taskOutput) Title() string {
	return fmt.Sprintf("Task: %s", m.task.Name)
}

func (m *taskOutput) HelpText() string {
	return "r run · c copy · pgup/pgdn scroll · esc back"
}

func (m *taskOutput) SetSize(width, height int) {
	m.viewport.SetWidth(width)
	m.viewport.SetHeight(height)
}
