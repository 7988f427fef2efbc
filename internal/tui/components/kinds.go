// Package components holds the demo application's component kinds: the main
// menu, the task list, one output view per task, and the help screen. Each
// kind registers a maker; instances are constructed lazily on first
// navigation and live in the composition core's cache.
package components

import (
	"context"
	"strconv"

	"canopy/internal/task"
	"canopy/internal/tui"
)

const (
	KindMenu tui.Kind = iota
	KindTaskList
	KindTaskOutput
	KindHelp
)

// MenuKey is the root history entry.
func MenuKey() tui.Key { return tui.Key{Kind: KindMenu} }

// TaskListKey addresses the single task list component.
func TaskListKey() tui.Key { return tui.Key{Kind: KindTaskList} }

// TaskOutputKey addresses the output view of one task. This is the
// high-cardinality kind: one potential key per configured task.
func TaskOutputKey(taskID int) tui.Key {
	return tui.Key{Kind: KindTaskOutput, ID: strconv.Itoa(taskID)}
}

// HelpKey addresses the help screen.
func HelpKey() tui.Key { return tui.Key{Kind: KindHelp} }

// Makers returns the maker registry for all demo kinds. Task kinds resolve
// through source at construction time, not a startup snapshot, so components
// made after a config reload see the reloaded definitions.
func Makers(ctx context.Context, source *task.Source) map[tui.Kind]tui.Maker {
	return map[tui.Kind]tui.Maker{
		KindMenu: tui.MakerFunc(func(key tui.Key, width, height int) (tui.Component, error) {
			return newMenu(width, height), nil
		}),
		KindTaskList: tui.MakerFunc(func(key tui.Key, width, height int) (tui.Component, error) {
			return newTaskList(source, width, height), nil
		}),
		KindTaskOutput: tui.MakerFunc(func(key tui.Key, width, height int) (tui.Component, error) {
			return newTaskOutput(ctx, key, source, width, height)
		}),
		KindHelp: tui.MakerFunc(func(key tui.Key, width, height int) (tui.Component, error) {
			return newHelp(width, height), nil
		}),
	}
}
