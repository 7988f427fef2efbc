package tui

import (
	"context"

	"canopy/internal/config"
	"canopy/internal/logger"

	tea "charm.land/bubbletea/v2"
)

// Start builds the root model and runs the Bubble Tea program until it
// terminates. The runtime is the external scheduler: every command returned
// by a component runs on its own goroutine and its result message is
// re-injected into the single event stream this loop consumes.
//
// onReload, if non-nil, runs on every config reload before the change is
// broadcast, so shared state (the task source) is current by the time any
// component handles the ConfigChangedMsg.
func Start(ctx context.Context, cfg config.AppConfig, makers map[Kind]Maker, first Key, helpKey *Key, onReload func(config.AppConfig)) error {
	logger.Info(ctx, "starting TUI at %s", first)

	model, err := NewAppModel(ctx, cfg, makers, first, helpKey)
	if err != nil {
		return err
	}

	program := tea.NewProgram(model)

	// Let fatal-panic recovery unwind the terminal before printing.
	logger.RestoreTerminal = program.Kill
	defer func() { logger.RestoreTerminal = nil }()

	// Config edits land in the event stream as a broadcast.
	watchCtx, cancelWatch := context.WithCancel(ctx)
	defer cancelWatch()
	go func() {
		err := config.Watch(watchCtx, func(conf config.AppConfig) {
			if onReload != nil {
				onReload(conf)
			}
			program.Send(ConfigChangedMsg{Config: conf})
		})
		if err != nil && watchCtx.Err() == nil {
			logger.Warn(ctx, "config watcher stopped: %v", err)
		}
	}()

	_, err = program.Run()
	return err
}
