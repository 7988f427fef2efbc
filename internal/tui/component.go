package tui

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
)

// Kind identifies a class of component (task list, task output, help...).
// Applications define their own kinds and register a Maker per kind.
type Kind int

// Key identifies an instance of a component: a kind plus the domain entity
// it is bound to. Keys are comparable and used for cache lookups and history
// entries. Two requests for the same key always resolve to the same live
// instance.
type Key struct {
	Kind Kind
	ID   string
}

func (k Key) String() string {
	if k.ID == "" {
		return fmt.Sprintf("kind(%d)", int(k.Kind))
	}
	return fmt.Sprintf("kind(%d):%s", int(k.Kind), k.ID)
}

// Component is the interface all navigable components implement. Components
// are value-like: Update returns the component to keep, and the cache entry
// holding it is the sole owner of its lifetime.
//
// Update and View run on the single UI loop and must not block; long-running
// work is returned as a tea.Cmd, which the runtime executes concurrently and
// feeds back into the event stream as a message.
type Component interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Component, tea.Cmd)
	View() string

	Title() string
	HelpText() string
	SetSize(width, height int)
}

// Maker constructs the component for a key. Construction is lazy: a maker is
// invoked the first time its key is navigated to, never eagerly for all
// possible keys.
type Maker interface {
	Make(key Key, width, height int) (Component, error)
}

// MakerFunc adapts a function to the Maker interface.
type MakerFunc func(key Key, width, height int) (Component, error)

func (f MakerFunc) Make(key Key, width, height int) (Component, error) {
	return f(key, width, height)
}
