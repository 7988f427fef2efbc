package cmd

import (
	"fmt"
	"os"

	"canopy/internal/version"

	"github.com/spf13/pflag"
)

// printUsage writes the help text to stderr.
func printUsage() {
	fmt.Fprintf(os.Stderr, "%s: a navigable terminal dashboard for configured tasks\n\n", version.ApplicationName)
	fmt.Fprintf(os.Stderr, "Usage:\n  %s [flags]\n\nFlags:\n", version.CommandName)
	pflag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nConfig file: %s\n", configHint())
}

func configHint() string {
	return "$XDG_CONFIG_HOME/" + version.CommandName + "/" + version.CommandName + ".toml"
}
