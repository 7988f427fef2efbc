package tui

import (
	tea "charm.land/bubbletea/v2"
)

// fakeComponent instruments delivery counting for router and cache tests.
type fakeComponent struct {
	id      string
	updates int
	counter int // incremented by bumpMsg, proves state persistence
	lastMsg tea.Msg
	width   int
	height  int

	panicOnUpdate bool
	panicOnView   bool

	// deliveries, when shared across components, records delivery order.
	deliveries *[]string
}

// bumpMsg increments a fake component's counter.
type bumpMsg struct{}

// addressedBump is a bumpMsg delivered to one specific key.
type addressedBump struct {
	key Key
}

func (m addressedBump) RouteKey() Key { return m.key }

func (c *fakeComponent) Init() tea.Cmd { return nil }

func (c *fakeComponent) Update(msg tea.Msg) (Component, tea.Cmd) {
	if c.panicOnUpdate {
		panic("fake update failure")
	}
	c.updates++
	c.lastMsg = msg
	if c.deliveries != nil {
		*c.deliveries = append(*c.deliveries, c.id)
	}
	switch msg.(type) {
	case bumpMsg, addressedBump:
		c.counter++
	}
	return c, nil
}

func (c *fakeComponent) View() string {
	if c.panicOnView {
		panic("fake view failure")
	}
	return "fake:" + c.id
}

func (c *fakeComponent) Title() string    { return c.id }
func (c *fakeComponent) HelpText() string { return "" }

func (c *fakeComponent) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// countingMaker tracks how many times each key was constructed.
type countingMaker struct {
	made map[Key]int
}

func newCountingMaker() *countingMaker {
	return &countingMaker{made: make(map[Key]int)}
}

func (m *countingMaker) Make(key Key, width, height int) (Component, error) {
	m.made[key]++
	return &fakeComponent{id: key.String(), width: width, height: height}, nil
}

// keyPress builds a printable key press message.
func keyPress(r rune) tea.Msg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}
