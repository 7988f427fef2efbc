package config

import (
	"fmt"
	"os"
	"path/filepath"

	"canopy/internal/version"

	"github.com/adrg/xdg"
	"github.com/gofrs/flock"
	toml "github.com/pelletier/go-toml/v2"
)

// DirOverride redirects the config directory, used by tests.
var DirOverride string

// AppConfig holds the application configuration settings.
type AppConfig struct {
	UI    UIConfig     `toml:"ui"`
	Tasks []TaskConfig `toml:"tasks"`
}

// UIConfig holds user interface related settings.
type UIConfig struct {
	Borders     bool `toml:"borders"`
	ConfirmQuit bool `toml:"confirm_quit"`
	CacheSize   int  `toml:"cache_size"` // max cached components, 0 = unbounded
}

// TaskConfig declares a runnable task shown in the task list.
type TaskConfig struct {
	Name    string   `toml:"name"`
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
}

// Default returns the built-in configuration used when no file exists.
func Default() AppConfig {
	return AppConfig{
		UI: UIConfig{
			Borders:     true,
			ConfirmQuit: true,
			CacheSize:   100,
		},
		Tasks: []TaskConfig{
			{Name: "disk usage", Command: "df", Args: []string{"-h"}},
			{Name: "uptime", Command: "uptime"},
			{Name: "processes", Command: "ps", Args: []string{"aux"}},
		},
	}
}

// Dir returns the directory holding the config file.
func Dir() string {
	if DirOverride != "" {
		return DirOverride
	}
	return filepath.Join(xdg.ConfigHome, version.CommandName)
}

// FilePath returns the full path of the config file.
func FilePath() string {
	return filepath.Join(Dir(), version.CommandName+".toml")
}

// Load reads the configuration file, falling back to defaults for a missing
// file. A malformed file is an error; silently reverting a user's settings
// to defaults would be worse than failing.
func Load() (AppConfig, error) {
	conf := Default()

	data, err := os.ReadFile(FilePath())
	if os.IsNotExist(err) {
		return conf, nil
	}
	if err != nil {
		return conf, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, &conf); err != nil {
		return conf, fmt.Errorf("parsing %s: %w", FilePath(), err)
	}
	if conf.UI.CacheSize < 0 {
		conf.UI.CacheSize = 0
	}
	return conf, nil
}

// Save writes the configuration file. A file lock guards against a second
// running instance writing at the same time.
func Save(conf AppConfig) error {
	if err := os.MkdirAll(Dir(), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	lock := flock.New(FilePath() + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("locking config: %w", err)
	}
	defer lock.Unlock()

	data, err := toml.Marshal(conf)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	// Write-then-rename so a crash mid-write never leaves a truncated file
	tmp := FilePath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return os.Rename(tmp, FilePath())
}
