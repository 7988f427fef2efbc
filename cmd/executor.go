package cmd

import (
	"context"
	"fmt"
	"os"

	"canopy/internal/config"
	"canopy/internal/logger"
	"canopy/internal/task"
	"canopy/internal/tui"
	"canopy/internal/tui/components"
	"canopy/internal/version"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
)

// Execute parses the command line and runs the selected action. The default
// action, with no flags, is starting the TUI at the main menu.
func Execute(ctx context.Context) error {
	InitFlags()
	pflag.Usage = printUsage
	pflag.Parse()

	if b, _ := pflag.CommandLine.GetBool("help"); b {
		printUsage()
		return nil
	}
	if b, _ := pflag.CommandLine.GetBool("version"); b {
		fmt.Printf("%s %s (%s, built %s)\n", version.ApplicationName, version.Version, version.Commit, version.BuildDate)
		return nil
	}

	if b, _ := pflag.CommandLine.GetBool("debug"); b {
		logger.SetLevel(logger.LevelDebug)
	} else if b, _ := pflag.CommandLine.GetBool("verbose"); b {
		logger.SetLevel(logger.LevelInfo)
	}

	conf, err := config.Load()
	if err != nil {
		return err
	}

	if b, _ := pflag.CommandLine.GetBool("config-init"); b {
		if err := config.Save(conf); err != nil {
			return err
		}
		fmt.Println(config.FilePath())
		return nil
	}
	if b, _ := pflag.CommandLine.GetBool("config-show"); b {
		data, err := toml.Marshal(conf)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	if b, _ := pflag.CommandLine.GetBool("no-confirm-quit"); b {
		conf.UI.ConfirmQuit = false
	}

	first := components.MenuKey()
	switch view, _ := pflag.CommandLine.GetString("view"); view {
	case "", "menu":
	case "tasks":
		first = components.TaskListKey()
	case "help":
		first = components.HelpKey()
	default:
		return fmt.Errorf("unknown view %q (want menu, tasks, or help)", view)
	}

	source := task.NewSource(conf)
	helpKey := components.HelpKey()
	return tui.Start(ctx, conf, components.Makers(ctx, source), first, &helpKey, source.Update)
}
