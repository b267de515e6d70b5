package discord

import "github.com/bwmarrin/discordgo"

// Config contains configuration variables for the Discord Adapter.
type Config struct {
	// Token is the Discord bot token used for authentication.
	Token string `json:"token" yaml:"token"`

	// ApplicationID is the application that owns the registered slash commands.
	// When empty, the bot user's ID reported on Ready is used.
	ApplicationID string `json:"application_id" yaml:"application_id"`

	// GuildID limits command registration to a single guild.
	// Commands are registered globally when this is empty.
	GuildID string `json:"guild_id" yaml:"guild_id"`

	// HelpCommand is the slash command name that triggers help.
	// When a user invokes this command, the input is converted to sarah.HelpInput.
	// Leave empty to disable the help command.
	HelpCommand string `json:"help_command" yaml:"help_command"`

	// Intents declares the Gateway Intents the bot requires.
	Intents discordgo.Intent `json:"intents" yaml:"intents"`

	// Commands are the application commands registered on Ready.
	Commands []*discordgo.ApplicationCommand `json:"-" yaml:"-"`
}

// NewConfig creates and returns a new Config instance with default settings.
// Token is empty and must be set before use.
func NewConfig() *Config {
	return &Config{
		Token:         "",
		ApplicationID: "",
		GuildID:       "",
		HelpCommand:   "help",
		Intents:       discordgo.IntentsGuilds | discordgo.IntentsDirectMessages,
		Commands:      []*discordgo.ApplicationCommand{},
	}
}
