package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"canopy/internal/logger"
)

// RouteClass is the delivery mode for an event. The classification is fixed
// configuration, a pure function of the message type, not dynamic state.
type RouteClass int

const (
	// RouteGlobal events are handled by the root composer before any
	// component sees them: quit, navigation, help.
	RouteGlobal RouteClass = iota

	// RouteCurrent events go only to the current component (or, for
	// Addressed messages, to the addressed component). The default for
	// input: scrolling and selection must not leak to background components.
	RouteCurrent

	// RouteBroadcast events go to every live component in stable order,
	// used for environment-wide facts such as a terminal resize.
	RouteBroadcast
)

// Classify maps a message to its delivery mode. Unrecognized message types
// default to broadcast: under-delivery silently breaks components, while
// over-delivery is wasted work a component is free to ignore.
func Classify(msg tea.Msg) RouteClass {
	switch msg.(type) {
	case NavigateMsg, ReplaceMsg, GoBackMsg, QuitMsg, StatusMsg:
		return RouteGlobal
	case tea.KeyMsg:
		return RouteCurrent
	case tea.WindowSizeMsg, ConfigChangedMsg:
		return RouteBroadcast
	}
	if _, ok := msg.(Addressed); ok {
		return RouteCurrent
	}
	return RouteBroadcast
}

// Router delivers classified events to the component tree and folds the
// updated components back into the cache. Dispatch is one synchronous pass:
// a component's Update never triggers nested dispatch; any follow-up is a
// returned command the runtime feeds back in as a later message.
type Router struct {
	ctx context.Context
	nav *Navigator
}

// NewRouter builds a router over nav.
func NewRouter(ctx context.Context, nav *Navigator) *Router {
	return &Router{ctx: ctx, nav: nav}
}

// Dispatch delivers msg per its route class and returns the batched commands
// the invoked components produced. Global messages are the root composer's
// concern and yield nil here.
func (r *Router) Dispatch(msg tea.Msg) tea.Cmd {
	switch Classify(msg) {
	case RouteGlobal:
		return nil
	case RouteCurrent:
		return r.dispatchCurrent(msg)
	default:
		return r.dispatchBroadcast(msg)
	}
}

// dispatchCurrent delivers to exactly one component: the addressed one if the
// message carries a key, otherwise the current one.
func (r *Router) dispatchCurrent(msg tea.Msg) tea.Cmd {
	cache := r.nav.Cache()

	if addressed, ok := msg.(Addressed); ok {
		key := addressed.RouteKey()
		comp := cache.Get(key)
		if comp == nil {
			// Result for work whose owner was evicted; the work is simply
			// abandoned. Recreating the component here would resurrect
			// state the cache policy decided to drop.
			logger.Trace(r.ctx, "dropping message for evicted component %s", key)
			return nil
		}
		return r.deliver(key, comp, msg)
	}

	key := r.nav.Current()
	comp, err := r.nav.CurrentComponent()
	if err != nil {
		logger.Error(r.ctx, "current component unavailable: %v", err)
		return nil
	}
	return r.deliver(key, comp, msg)
}

// dispatchBroadcast delivers to every live component exactly once, iterating
// a snapshot of the cache's recency order. Peek keeps the broadcast from
// counting as use: receiving a resize must not save a component from
// eviction.
func (r *Router) dispatchBroadcast(msg tea.Msg) tea.Cmd {
	cache := r.nav.Cache()
	var cmds []tea.Cmd
	for _, key := range cache.Keys() {
		comp := cache.Peek(key)
		if comp == nil {
			continue
		}
		if cmd := r.deliver(key, comp, msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// deliver invokes one component's Update behind a panic guard and folds the
// result back into the cache. A panicking component keeps its prior state and
// the loop continues; one bad component must not take down the whole frame.
func (r *Router) deliver(key Key, comp Component, msg tea.Msg) (cmd tea.Cmd) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error(r.ctx, "component %s panicked in Update: %v", key, rec)
			cmd = nil
		}
	}()

	updated, cmd := comp.Update(msg)
	if updated != nil {
		r.nav.Cache().Put(key, updated)
	}
	return cmd
}
