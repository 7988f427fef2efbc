package logger

import (
	"context"

	tea "charm.land/bubbletea/v2"
)

// RestoreTerminal, when set, is invoked before reporting a fatal panic so the
// terminal is left usable. The TUI package installs it while a program runs.
var RestoreTerminal func()

// Recover traps panics and displays them using FatalWithStackSkip.
// Usage: defer logger.Recover(ctx)
func Recover(ctx context.Context) {
	if r := recover(); r != nil {
		// Suppress further panics during recovery
		defer func() { _ = recover() }()

		if RestoreTerminal != nil {
			RestoreTerminal()
		}

		// An intentional panic from Fatal has already been logged
		if _, ok := r.(FatalError); ok {
			panic(r)
		}

		// Skip 2 frames: Recover + runtime.gopanic
		FatalWithStackSkip(ctx, 2, "panic: %v", r)
	}
}

// RecoverTUI wraps a tea.Cmd so a panic inside the command restores the
// terminal and is reported as a fatal error instead of killing the process
// with a garbled screen.
func RecoverTUI(ctx context.Context, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		defer func() {
			if r := recover(); r != nil {
				defer func() { _ = recover() }()

				if RestoreTerminal != nil {
					RestoreTerminal()
				}
				if _, ok := r.(FatalError); ok {
					return
				}
				FatalWithStackSkip(ctx, 2, "command panic: %v", r)
			}
		}()
		return cmd()
	}
}
