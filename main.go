package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"canopy/cmd"
	"canopy/internal/logger"
	"canopy/internal/version"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	slog.SetDefault(logger.NewLogger())
	ctx := context.Background()

	// Recover from logger.FatalError so the deferred cleanup below runs and
	// the terminal is restored before the process exits.
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(logger.FatalError); ok {
				exitCode = 1
			} else {
				panic(r)
			}
		}
		if exitCode != 0 {
			fmt.Fprintf(os.Stderr, "%s did not finish running successfully.\n", version.ApplicationName)
		}
	}()

	if err := cmd.Execute(ctx); err != nil {
		logger.Error(ctx, "%v", err)
		return 1
	}
	return 0
}
