// Command raidbot runs a Discord bot answering /raid-list with the
// participants of a Raid-Helper event.
//
// Usage:
//
//	export DISCORD_BOT_TOKEN="your-bot-token"
//	raidbot serve
//
// The same lists are available from the command line:
//
//	raidbot list https://raid-helper.dev/api/v2/events/<id> --status tank --status healer
//	raidbot categories https://raid-helper.dev/api/v2/events/<id>
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/tzrikka/xdg"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli/v3"
)

const (
	ConfigDirName  = "raidbot"
	ConfigFileName = "config.toml"
)

func main() {
	// .env is optional; the environment and the config file may provide everything.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warnf("Failed to load .env file: %+v", err)
	}

	if err := newCommand(configFile()).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCommand(configFilePath altsrc.StringSourcer) *cli.Command {
	version := "(devel)"
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		version = buildInfo.Main.Version
	}

	return &cli.Command{
		Name:    "raidbot",
		Usage:   "List Raid-Helper event participants on Discord and the command line",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				Sources: cli.EnvVars("RAIDBOT_DEBUG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "connect to Discord and answer /raid-list",
				Flags:  append(discordFlags(configFilePath), fetchFlags(configFilePath)...),
				Action: serve,
			},
			{
				Name:      "list",
				Usage:     "print participant names, sorted alphabetically",
				ArgsUsage: "URL",
				Flags: append(fetchFlags(configFilePath), &cli.StringSliceFlag{
					Name:    "status",
					Aliases: []string{"s"},
					Usage:   "one or more statuses to include, case-insensitive (default: all)",
				}),
				Action: list,
			},
			{
				Name:      "categories",
				Usage:     "print the status categories of an event",
				ArgsUsage: "URL",
				Flags:     fetchFlags(configFilePath),
				Action:    categories,
			},
		},
	}
}

// configFile returns the path to the app's configuration file.
// It also creates an empty file if it doesn't already exist.
func configFile() altsrc.StringSourcer {
	path, err := xdg.CreateFile(xdg.ConfigHome, ConfigDirName, ConfigFileName)
	if err != nil {
		logger.Errorf("Failed to create config file: %+v", err)
		os.Exit(1)
	}
	return altsrc.StringSourcer(path)
}

// initLog sets the output level of the shared logger.
func initLog(debugMode bool) {
	if debugMode {
		logger.SetOutputLevel(logger.DebugLevel)
		return
	}
	logger.SetOutputLevel(logger.InfoLevel)
}
