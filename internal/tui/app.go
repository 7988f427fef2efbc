package tui

import (
	"context"
	"fmt"
	"strings"

	"canopy/internal/config"
	"canopy/internal/logger"
	"canopy/internal/version"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// appState is the root composer's lifecycle state.
type appState int

const (
	// stateRunning routes events normally.
	stateRunning appState = iota
	// stateConfirmQuit shows the soft-quit prompt; y confirms, anything
	// else cancels. Non-key events (results, resizes) still flow.
	stateConfirmQuit
	// stateTerminated is absorbing: no further events are routed.
	stateTerminated
)

// AppModel is the root Bubble Tea model: it owns the navigator, router and
// dimensions, fans every incoming message out to the right subset of
// components, forwards their commands to the runtime, and composes the final
// frame (header, current component, helpline) with the layout engine.
type AppModel struct {
	ctx    context.Context
	cfg    config.AppConfig
	nav    *Navigator
	router *Router

	styles Styles
	help   help.Model

	// dims is the whole terminal; updated only by a resize event,
	// immediately before the resize is broadcast.
	dims  Dimensions
	state appState

	// status is a transient helpline note (last error, copy confirmation).
	status string

	// helpKey, when set, is the component navigated to on the help binding.
	helpKey *Key

	// ready flips after the first resize; nothing sensible renders before.
	ready bool
}

// NewAppModel builds the root model. first is the initial history entry;
// helpKey, if non-nil, is the component navigated to on the help binding.
func NewAppModel(ctx context.Context, cfg config.AppConfig, makers map[Kind]Maker, first Key, helpKey *Key) (AppModel, error) {
	nav, err := NewNavigator(first, makers, cfg.UI.CacheSize)
	if err != nil {
		return AppModel{}, err
	}
	m := AppModel{
		ctx:     ctx,
		cfg:     cfg,
		nav:     nav,
		router:  NewRouter(ctx, nav),
		styles:  DefaultStyles(),
		help:    help.New(),
		helpKey: helpKey,
	}
	return m, nil
}

// Init implements tea.Model.
func (m AppModel) Init() tea.Cmd {
	comp, err := m.nav.CurrentComponent()
	if err != nil {
		return nil
	}
	return logger.RecoverTUI(m.ctx, comp.Init())
}

// Update implements tea.Model. Exactly one message is fully routed before
// the next is accepted, which is what makes "same key, same instance,
// mutated in place" safe without locking.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateTerminated {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Dimensions update first, then the broadcast, so every component
		// recomputes from the new size in the same pass.
		m.dims = Dimensions{Width: msg.Width, Height: msg.Height}
		m.ready = true
		w, h := m.contentArea()
		m.help.SetWidth(w)
		m.nav.SetSize(w, h)
		cmd := m.router.Dispatch(tea.WindowSizeMsg{Width: w, Height: h})
		return m, logger.RecoverTUI(m.ctx, cmd)

	case tea.KeyMsg:
		return m.updateKey(msg)

	case NavigateMsg:
		return m.navigate(msg.Key, m.nav.Push)

	case ReplaceMsg:
		return m.navigate(msg.Key, m.nav.Replace)

	case GoBackMsg:
		if !m.nav.Pop() {
			return m.requestQuit()
		}
		return m, nil

	case QuitMsg:
		return m.requestQuit()

	case StatusMsg:
		m.status = string(msg)
		return m, nil

	case ConfigChangedMsg:
		m.cfg = msg.Config
		m.nav.Cache().SetMaxSize(msg.Config.UI.CacheSize)
		cmd := m.router.Dispatch(msg)
		return m, logger.RecoverTUI(m.ctx, cmd)
	}

	// Everything else: results, ticks, unknown messages.
	cmd := m.router.Dispatch(msg)
	return m, logger.RecoverTUI(m.ctx, cmd)
}

// updateKey handles global bindings first; only unconsumed keys reach the
// current component.
func (m AppModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Force quit bypasses the confirm prompt entirely.
	if key.Matches(msg, Keys.ForceQuit) {
		m.state = stateTerminated
		return m, tea.Quit
	}

	if m.state == stateConfirmQuit {
		switch msg.String() {
		case "y", "Y":
			m.state = stateTerminated
			return m, tea.Quit
		default:
			// Any other key cancels; no component is perturbed.
			m.state = stateRunning
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m.requestQuit()

	case key.Matches(msg, Keys.Help) && m.helpKey != nil:
		if m.nav.Current() == *m.helpKey {
			m.nav.Pop()
			return m, nil
		}
		return m.navigate(*m.helpKey, m.nav.Push)

	case key.Matches(msg, Keys.Back):
		if !m.nav.Pop() {
			return m.requestQuit()
		}
		return m, nil
	}

	m.status = ""
	cmd := m.router.Dispatch(msg)
	return m, logger.RecoverTUI(m.ctx, cmd)
}

// navigate applies a push or replace. On failure the previous entry stays
// current: a bad navigation degrades to a status note, never corrupt history.
func (m AppModel) navigate(target Key, op func(Key) error) (tea.Model, tea.Cmd) {
	if err := op(target); err != nil {
		logger.Error(m.ctx, "navigation to %s refused: %v", target, err)
		m.status = fmt.Sprintf("cannot open %s", target)
		return m, nil
	}
	comp, err := m.nav.CurrentComponent()
	if err != nil {
		return m, nil
	}
	w, h := m.contentArea()
	comp.SetSize(w, h)
	return m, logger.RecoverTUI(m.ctx, comp.Init())
}

// requestQuit enters the confirm state, or quits outright when the prompt is
// disabled in config.
func (m AppModel) requestQuit() (tea.Model, tea.Cmd) {
	if !m.cfg.UI.ConfirmQuit {
		m.state = stateTerminated
		return m, tea.Quit
	}
	m.state = stateConfirmQuit
	return m, nil
}

// contentArea derives the component area from the terminal minus the
// measured chrome. The chrome is measured, not assumed: if the header ever
// grows a second line, the body shrinks by exactly that much with no other
// change.
func (m AppModel) contentArea() (int, int) {
	chrome := lipgloss.Height(m.headerView()) + lipgloss.Height(m.helplineView())
	h := m.dims.Height - chrome
	if h < 1 {
		h = 1
	}
	w := m.dims.Width
	if w < 1 {
		w = 1
	}
	return w, h
}

// View implements tea.Model: header (intrinsic), current component
// (remainder), helpline (intrinsic), composed by the layout engine.
func (m AppModel) View() tea.View {
	if !m.ready {
		v := tea.NewView("Initializing...")
		v.AltScreen = true
		return v
	}

	frame := Compose(Vertical, m.dims,
		Section{Content: m.headerView(), Rule: Intrinsic()},
		Section{Content: m.bodyView(), Rule: Remainder()},
		Section{Content: m.helplineView(), Rule: Intrinsic()},
	)
	v := tea.NewView(frame)
	v.AltScreen = true
	return v
}

// headerView renders the one-line chrome: application name, current
// component title, history breadcrumb.
func (m AppModel) headerView() string {
	comp, err := m.nav.CurrentComponent()
	title := ""
	if err == nil {
		title = comp.Title()
	}

	name := m.styles.Header.Render(version.ApplicationName)
	crumb := ""
	if depth := m.nav.Depth(); depth > 1 {
		crumb = m.styles.Breadcrumb.Render(strings.Repeat("‹", depth-1) + " ")
	}
	return ClipWidth(name+" "+crumb+title, m.dims.Width)
}

// bodyView renders the current component behind a panic guard: a render
// fault degrades to an error notice for one frame instead of a dead process.
func (m AppModel) bodyView() (out string) {
	comp, err := m.nav.CurrentComponent()
	if err != nil {
		return m.styles.Error.Render(fmt.Sprintf("no view: %v", err))
	}
	defer func() {
		if r := recover(); r != nil {
			logger.Error(m.ctx, "component %s panicked in View: %v", m.nav.Current(), r)
			out = m.styles.Error.Render("render error, see log")
		}
	}()
	return comp.View()
}

// helplineView renders the bottom line: quit prompt, transient status, or
// the current component's key help.
func (m AppModel) helplineView() string {
	switch {
	case m.state == stateConfirmQuit:
		return m.styles.Prompt.Render("Quit? (y/N)")
	case m.status != "":
		return m.styles.Status.Render(ClipWidth(m.status, m.dims.Width))
	}

	if comp, err := m.nav.CurrentComponent(); err == nil {
		if text := comp.HelpText(); text != "" {
			return m.styles.Helpline.Render(ClipWidth(text, m.dims.Width))
		}
	}
	return m.help.View(Keys)
}
