package tui

import "canopy/internal/config"

// Navigation messages. Components request navigation by returning these from
// Update as commands; they never call into the navigator directly, which
// keeps dispatch a single synchronous pass with no re-entrant routing.
type (
	// NavigateMsg pushes a new entry onto the history stack.
	NavigateMsg struct {
		Key Key
	}

	// ReplaceMsg swaps the current entry without growing history depth.
	ReplaceMsg struct {
		Key Key
	}

	// GoBackMsg pops the current entry. At the root it is a quit request.
	GoBackMsg struct{}

	// QuitMsg requests application exit, subject to the confirm prompt.
	QuitMsg struct{}

	// StatusMsg puts a transient note in the helpline.
	StatusMsg string

	// ConfigChangedMsg is broadcast when the config file is reloaded.
	ConfigChangedMsg struct {
		Config config.AppConfig
	}
)

// Addressed messages are delivered only to the component with the given key,
// whether or not it is the current one: a background component must still
// receive the results of its own pending work. A message addressed to a key
// that is no longer cached is dropped silently.
type Addressed interface {
	RouteKey() Key
}
