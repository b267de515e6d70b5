package main

import (
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"

	"github.com/oklahomer/go-sarah-raidbot/raidhelper"
)

// discordFlags defines CLI flags to configure the Discord connection. These flags can
// also be set using environment variables and the application's configuration file.
func discordFlags(configFilePath altsrc.StringSourcer) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "token",
			Usage: "Discord bot token",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("DISCORD_BOT_TOKEN"),
				toml.TOML("discord.token", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "application-id",
			Usage: "application owning the slash commands (default: the bot user)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("DISCORD_APPLICATION_ID"),
				toml.TOML("discord.application_id", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "guild-id",
			Usage: "register commands in this guild only (default: global)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("DISCORD_GUILD_ID"),
				toml.TOML("discord.guild_id", configFilePath),
			),
		},
	}
}

// fetchFlags defines CLI flags to configure the Raid-Helper client.
func fetchFlags(configFilePath altsrc.StringSourcer) []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:  "fetch-timeout",
			Usage: "timeout of a single event download",
			Value: raidhelper.DefaultTimeout,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("RAIDHELPER_TIMEOUT"),
				toml.TOML("raidhelper.timeout", configFilePath),
			),
		},
		&cli.FloatFlag{
			Name:  "fetch-rate",
			Usage: "maximum event downloads per second",
			Value: float64(raidhelper.DefaultRate),
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("RAIDHELPER_RATE"),
				toml.TOML("raidhelper.rate", configFilePath),
			),
		},
	}
}
