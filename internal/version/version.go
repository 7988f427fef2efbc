package version

import (
	"os"
	"path/filepath"
	"strings"
)

// ApplicationName is the human-readable name of the application.
var ApplicationName = "Canopy"

// CommandName is the name of the executable command.
// It is initialized dynamically from the executable filename.
var CommandName = "canopy"

// Version is the current version of the application.
// This is intended to be overwritten at build time using:
// -ldflags "-X canopy/internal/version.Version=vX.Y.Z"
var Version = "v0.0.0-dev"

// Commit is the git commit hash of the build.
var Commit = "none"

// BuildDate is the date the binary was built.
var BuildDate = "unknown"

func init() {
	// Dynamically determine the command name from the executable
	baseName := filepath.Base(os.Args[0])
	ext := filepath.Ext(baseName)
	CommandName = strings.TrimSuffix(baseName, ext)

	// Fallback for dev runs (go run produces a temp binary name)
	if strings.EqualFold(CommandName, "main") || strings.HasPrefix(CommandName, "__") {
		CommandName = "canopy"
	}
}
