package cmd

import (
	"github.com/spf13/pflag"
)

// InitFlags defines the pflags used for argument validation and help.
func InitFlags() {
	// Modifiers
	pflag.BoolP("verbose", "v", false, "Verbose output")
	pflag.BoolP("debug", "x", false, "Debug output")
	pflag.BoolP("help", "h", false, "Show help")
	pflag.BoolP("version", "V", false, "Show version")

	// Startup view
	pflag.StringP("view", "w", "", "Start at a view (menu, tasks, help)")

	// Configuration
	pflag.Bool("config-show", false, "Print the active configuration and exit")
	pflag.Bool("config-init", false, "Write a default config file and exit")
	pflag.Bool("no-confirm-quit", false, "Quit without the confirm prompt")
}
