package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"
	"github.com/urfave/cli/v3"

	"github.com/oklahomer/go-sarah-raidbot/discord"
	"github.com/oklahomer/go-sarah-raidbot/raidlist"
)

// serve runs the Discord bot until SIGINT or SIGTERM.
func serve(ctx context.Context, cmd *cli.Command) error {
	initLog(cmd.Bool("debug"))

	settings := newBotSettings(cmd)
	if err := validateSettings(settings); err != nil {
		return err
	}

	config := discord.NewConfig()
	config.Token = settings.Token
	config.ApplicationID = settings.ApplicationID
	config.GuildID = settings.GuildID
	config.Commands = []*discordgo.ApplicationCommand{raidlist.ApplicationCommand()}

	adapter, err := discord.NewAdapter(config)
	if err != nil {
		return fmt.Errorf("failed to create adapter: %w", err)
	}
	sarah.RegisterBot(sarah.NewBot(adapter))

	props, err := raidlist.NewCommandProps(settings.Fetch.newFetcher())
	if err != nil {
		return fmt.Errorf("failed to build %s command: %w", raidlist.CommandName, err)
	}
	sarah.RegisterCommandProps(props)

	// Set up a context that cancels on SIGINT or SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Infof("Starting bot...")

	// Start go-sarah's lifecycle management.
	err = sarah.Run(ctx, sarah.NewConfig())
	if err != nil {
		return fmt.Errorf("failed to run: %w", err)
	}

	// Block until shutdown signal.
	<-ctx.Done()

	logger.Infof("Shutting down...")
	return nil
}
