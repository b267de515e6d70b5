package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestNewConfig(t *testing.T) {
	config := NewConfig()

	if config.Token != "" {
		t.Errorf("Expected empty token, got %q", config.Token)
	}

	if config.ApplicationID != "" {
		t.Errorf("Expected empty ApplicationID, got %q", config.ApplicationID)
	}

	if config.GuildID != "" {
		t.Errorf("Expected empty GuildID, got %q", config.GuildID)
	}

	if config.HelpCommand != "help" {
		t.Errorf("Expected HelpCommand to be %q, got %q", "help", config.HelpCommand)
	}

	expectedIntents := discordgo.IntentsGuilds | discordgo.IntentsDirectMessages
	if config.Intents != expectedIntents {
		t.Errorf("Expected Intents to be %d, got %d", expectedIntents, config.Intents)
	}

	if len(config.Commands) != 0 {
		t.Errorf("Expected no commands, got %d", len(config.Commands))
	}
}
