package tui

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"canopy/internal/config"
)

func newTestApp(t *testing.T, confirmQuit bool, maker Maker, helpKey *Key) AppModel {
	t.Helper()
	cfg := config.Default()
	cfg.UI.ConfirmQuit = confirmQuit

	m, err := NewAppModel(context.Background(), cfg, testMakers(maker), Key{Kind: kindAlpha, ID: "root"}, helpKey)
	if err != nil {
		t.Fatalf("NewAppModel: %v", err)
	}
	return resize(m, 80, 24)
}

func resize(m AppModel, w, h int) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(AppModel)
}

func press(m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(AppModel), cmd
}

func TestAppQuitConfirmFlow(t *testing.T) {
	m := newTestApp(t, true, newCountingMaker(), nil)

	m, cmd := press(m, keyPress('q'))
	if m.state != stateConfirmQuit {
		t.Fatalf("state after q = %v, want %v", m.state, stateConfirmQuit)
	}
	if cmd != nil {
		t.Error("entering the confirm prompt produced a command")
	}
	if !strings.Contains(m.helplineView(), "Quit?") {
		t.Errorf("helpline %q missing quit prompt", m.helplineView())
	}

	m, cmd = press(m, keyPress('y'))
	if m.state != stateTerminated {
		t.Errorf("state after y = %v, want %v", m.state, stateTerminated)
	}
	if cmd == nil {
		t.Error("confirmed quit produced no command")
	}
}

func TestAppQuitPromptCancelled(t *testing.T) {
	m := newTestApp(t, true, newCountingMaker(), nil)
	root := m.nav.Cache().Get(Key{Kind: kindAlpha, ID: "root"}).(*fakeComponent)
	updatesBefore := root.updates

	m, _ = press(m, keyPress('q'))
	m, cmd := press(m, keyPress('x'))

	if m.state != stateRunning {
		t.Errorf("state after cancel = %v, want %v", m.state, stateRunning)
	}
	if cmd != nil {
		t.Error("cancelling the prompt produced a command")
	}
	// Neither the q nor the cancelling key reaches any component.
	if root.updates != updatesBefore {
		t.Errorf("prompt keys leaked to the current component: %d updates", root.updates-updatesBefore)
	}
}

func TestAppTerminatedAbsorbsEverything(t *testing.T) {
	m := newTestApp(t, false, newCountingMaker(), nil)
	m, _ = press(m, keyPress('q'))
	if m.state != stateTerminated {
		t.Fatalf("state = %v, want %v", m.state, stateTerminated)
	}

	root := m.nav.Cache().Get(Key{Kind: kindAlpha, ID: "root"}).(*fakeComponent)
	updatesBefore := root.updates

	m, cmd := press(m, keyPress('j'))
	if cmd != nil {
		t.Error("terminated model produced a command")
	}
	m, cmd = press(m, bumpMsg{})
	if cmd != nil {
		t.Error("terminated model routed a broadcast")
	}
	if root.updates != updatesBefore {
		t.Error("terminated model still delivered to components")
	}
}

func TestAppForceQuitBypassesPrompt(t *testing.T) {
	m := newTestApp(t, true, newCountingMaker(), nil)

	m, cmd := press(m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if m.state != stateTerminated {
		t.Errorf("state after ctrl+c = %v, want %v", m.state, stateTerminated)
	}
	if cmd == nil {
		t.Error("force quit produced no command")
	}
}

func TestAppQuitWithoutConfirm(t *testing.T) {
	m := newTestApp(t, false, newCountingMaker(), nil)

	m, cmd := press(m, keyPress('q'))
	if m.state != stateTerminated {
		t.Errorf("state = %v, want %v with the prompt disabled", m.state, stateTerminated)
	}
	if cmd == nil {
		t.Error("quit produced no command")
	}
}

func TestAppEscapePopsThenRequestsQuit(t *testing.T) {
	m := newTestApp(t, true, newCountingMaker(), nil)
	m, _ = press(m, NavigateMsg{Key: Key{Kind: kindBeta, ID: "1"}})
	if m.nav.Depth() != 2 {
		t.Fatalf("Depth after navigate = %d, want 2", m.nav.Depth())
	}

	m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.nav.Depth() != 1 {
		t.Errorf("Depth after esc = %d, want 1", m.nav.Depth())
	}
	if m.state != stateRunning {
		t.Errorf("state after popping = %v, want %v", m.state, stateRunning)
	}

	// At the root there is nothing to pop; esc asks to quit instead.
	m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.state != stateConfirmQuit {
		t.Errorf("state after esc at root = %v, want %v", m.state, stateConfirmQuit)
	}
}

func TestAppHelpToggles(t *testing.T) {
	helpKey := Key{Kind: kindGamma, ID: "help"}
	m := newTestApp(t, true, newCountingMaker(), &helpKey)

	m, _ = press(m, keyPress('?'))
	if m.nav.Current() != helpKey {
		t.Fatalf("Current after ? = %s, want %s", m.nav.Current(), helpKey)
	}

	m, _ = press(m, keyPress('?'))
	if m.nav.Current() == helpKey {
		t.Error("second ? did not leave the help component")
	}
	if m.nav.Depth() != 1 {
		t.Errorf("Depth after toggling help = %d, want 1", m.nav.Depth())
	}
}

func TestAppResizeBroadcastsContentArea(t *testing.T) {
	m := newTestApp(t, true, newCountingMaker(), nil)
	m, _ = press(m, NavigateMsg{Key: Key{Kind: kindBeta, ID: "1"}})

	m = resize(m, 100, 40)

	wantW, wantH := m.contentArea()
	for _, key := range m.nav.Cache().Keys() {
		comp := m.nav.Cache().Get(key).(*fakeComponent)
		size, ok := comp.lastMsg.(tea.WindowSizeMsg)
		if !ok {
			t.Fatalf("component %s last saw %T, want tea.WindowSizeMsg", key, comp.lastMsg)
		}
		if size.Width != wantW || size.Height != wantH {
			t.Errorf("component %s sized %dx%d, want content area %dx%d", key, size.Width, size.Height, wantW, wantH)
		}
	}
	if wantH >= 40 {
		t.Errorf("content height %d not reduced by chrome", wantH)
	}
}

func TestAppFailedNavigationDegradesToStatus(t *testing.T) {
	m := newTestApp(t, true, newCountingMaker(), nil)

	m, cmd := press(m, NavigateMsg{Key: Key{Kind: Kind(999), ID: "x"}})
	if cmd != nil {
		t.Error("failed navigation produced a command")
	}
	if m.nav.Depth() != 1 {
		t.Errorf("failed navigation grew history to depth %d", m.nav.Depth())
	}
	if m.status == "" {
		t.Error("failed navigation left no status note")
	}

	// The next ordinary key clears the note.
	m, _ = press(m, keyPress('j'))
	if m.status != "" {
		t.Errorf("status %q not cleared by the next key", m.status)
	}
}

func TestAppStatusMessageShownInHelpline(t *testing.T) {
	m := newTestApp(t, true, newCountingMaker(), nil)

	m, _ = press(m, StatusMsg("copied"))
	if !strings.Contains(m.helplineView(), "copied") {
		t.Errorf("helpline %q missing status note", m.helplineView())
	}
}

func TestAppConfigReloadAppliesCacheSize(t *testing.T) {
	m := newTestApp(t, true, newCountingMaker(), nil)
	offHistory := Key{Kind: kindBeta, ID: "1"}
	m, _ = press(m, NavigateMsg{Key: offHistory})
	m, _ = press(m, tea.KeyPressMsg{Code: tea.KeyEscape})

	cfg := m.cfg
	cfg.UI.CacheSize = 1
	m, _ = press(m, ConfigChangedMsg{Config: cfg})

	if m.cfg.UI.CacheSize != 1 {
		t.Errorf("cfg not updated: CacheSize = %d", m.cfg.UI.CacheSize)
	}
	// The shrink evicts the off-history entry; the pinned root survives.
	if m.nav.Cache().Contains(offHistory) {
		t.Error("off-history entry survived the shrunk bound")
	}
	if !m.nav.Cache().Contains(Key{Kind: kindAlpha, ID: "root"}) {
		t.Error("root evicted by the shrunk bound")
	}
}

func TestAppGoBackAtRootRequestsQuit(t *testing.T) {
	m := newTestApp(t, true, newCountingMaker(), nil)

	m, _ = press(m, GoBackMsg{})
	if m.state != stateConfirmQuit {
		t.Errorf("state after GoBackMsg at root = %v, want %v", m.state, stateConfirmQuit)
	}
}

func TestAppViewRendersFullFrame(t *testing.T) {
	m := newTestApp(t, true, newCountingMaker(), nil)

	frame := m.View().Content
	if lines := strings.Count(frame, "\n") + 1; lines != 24 {
		t.Errorf("frame has %d lines, want 24", lines)
	}
	if !strings.Contains(frame, "fake:") {
		t.Error("frame missing the current component's content")
	}
}

func TestAppViewSurvivesRenderPanic(t *testing.T) {
	m := newTestApp(t, true, newCountingMaker(), nil)
	m.nav.Cache().Get(Key{Kind: kindAlpha, ID: "root"}).(*fakeComponent).panicOnView = true

	frame := m.View().Content
	if frame == "" {
		t.Error("render panic produced an empty frame")
	}
	if !strings.Contains(frame, "render error") {
		t.Errorf("frame %q missing the render error notice", frame)
	}
}
