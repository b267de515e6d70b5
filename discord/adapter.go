package discord

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"
)

const (
	// DISCORD is a designated sarah.BotType for Discord integration.
	DISCORD sarah.BotType = "discord"
)

// busyMessage is sent when an acknowledged interaction could not be handed to the worker.
const busyMessage = "The bot is busy right now. Please try again later."

// session is an internal interface that abstracts the discordgo.Session methods
// used by the Adapter. This allows mocking the session in tests.
// *discordgo.Session satisfies this interface.
type session interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// AdapterOption defines a function signature for Adapter's functional options.
type AdapterOption func(adapter *Adapter)

// WithSession creates an AdapterOption with the given *discordgo.Session.
// Use this to inject a pre-configured session.
// If this option is not given, NewAdapter creates a new session from Config.Token.
func WithSession(session *discordgo.Session) AdapterOption {
	return func(adapter *Adapter) {
		adapter.session = session
	}
}

// Adapter is a sarah.Adapter implementation for Discord slash commands.
type Adapter struct {
	config  *Config
	session session

	// commandsMutex guards commandsSynced; Ready fires again after every non-resumed reconnect.
	commandsMutex  sync.Mutex
	commandsSynced bool
}

var _ sarah.Adapter = (*Adapter)(nil)

// NewAdapter creates a new Adapter with the given Config and options.
func NewAdapter(config *Config, options ...AdapterOption) (*Adapter, error) {
	adapter := &Adapter{
		config: config,
	}

	for _, opt := range options {
		opt(adapter)
	}

	if adapter.session == nil {
		if config.Token == "" {
			return nil, ErrEmptyToken
		}

		s, err := discordgo.New("Bot " + config.Token)
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord session: %w", err)
		}
		s.Identify.Intents = config.Intents
		adapter.session = s
	}

	return adapter, nil
}

// BotType returns a designated BotType for Discord integration.
func (a *Adapter) BotType() sarah.BotType {
	return DISCORD
}

// Run establishes a connection with Discord and blocks until the context is canceled.
func (a *Adapter) Run(ctx context.Context, enqueueInput func(sarah.Input) error, notifyErr func(error)) {
	a.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		a.handleReady(r)
	})
	a.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		a.handleInteraction(s, i, enqueueInput)
	})

	err := a.session.Open()
	if err != nil {
		notifyErr(sarah.NewBotNonContinuableError(fmt.Sprintf("failed to open Discord session: %s", err.Error())))
		return
	}

	// Block until the context is canceled.
	<-ctx.Done()

	if closeErr := a.session.Close(); closeErr != nil {
		logger.Errorf("Failed to close Discord session: %+v", closeErr)
	}
}

// handleReady registers the application commands once the gateway session is established.
func (a *Adapter) handleReady(r *discordgo.Ready) {
	if r.User != nil {
		logger.Infof("Logged in as %s", r.User.String())
	}

	appID := a.config.ApplicationID
	if appID == "" && r.User != nil {
		appID = r.User.ID
	}
	if appID == "" {
		logger.Errorf("Application ID is unknown. Skipping command registration.")
		return
	}

	a.commandsMutex.Lock()
	defer a.commandsMutex.Unlock()
	if a.commandsSynced {
		logger.Debugf("Application commands are already synced.")
		return
	}

	synced, err := a.session.ApplicationCommandBulkOverwrite(appID, a.config.GuildID, a.commands())
	if err != nil {
		// Left unsynced so that the next Ready retries.
		logger.Errorf("Failed to register application commands: %+v", err)
		return
	}
	a.commandsSynced = true

	logger.Infof("Synced %d command(s)", len(synced))
}

// commands returns the configured application commands plus the help command when enabled.
func (a *Adapter) commands() []*discordgo.ApplicationCommand {
	commands := make([]*discordgo.ApplicationCommand, 0, len(a.config.Commands)+1)
	hasHelp := false
	for _, c := range a.config.Commands {
		if c.Name == a.config.HelpCommand {
			hasHelp = true
		}
		commands = append(commands, c)
	}

	if a.config.HelpCommand != "" && !hasHelp {
		commands = append(commands, &discordgo.ApplicationCommand{
			Name:        a.config.HelpCommand,
			Description: "Show available commands",
		})
	}

	return commands
}

// handleInteraction acknowledges an incoming slash command and routes it to enqueueInput.
func (a *Adapter) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate, enqueueInput func(sarah.Input) error) {
	input, err := InteractionToInput(i)
	if err != nil {
		// Components, autocompletes and user-less interactions are not handled.
		logger.Debugf("Skipping interaction: %+v", err)
		return
	}
	input.guildName = guildName(s, i.GuildID)

	// Discord requires an acknowledgement within 3 seconds; the actual reply is sent as a follow-up.
	err = a.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		logger.Errorf("Failed to acknowledge interaction %s: %+v", i.ID, err)
		return
	}

	var enqueueErr error
	if a.config.HelpCommand != "" && input.CommandName() == a.config.HelpCommand {
		enqueueErr = enqueueInput(sarah.NewHelpInput(input))
	} else {
		enqueueErr = enqueueInput(input)
	}
	if enqueueErr != nil {
		logger.Errorf("Failed to enqueue input: %+v", enqueueErr)
		_, err := a.session.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{Content: busyMessage})
		if err != nil {
			logger.Errorf("Failed to send busy message for interaction %s: %+v", i.ID, err)
		}
	}
}

// guildName resolves the guild's name from the session state cache.
// An empty string is returned when the state or the guild is unavailable.
func guildName(s *discordgo.Session, guildID string) string {
	if guildID == "" || s == nil || s.State == nil {
		return ""
	}

	g, err := s.State.Guild(guildID)
	if err != nil {
		return ""
	}
	return g.Name
}

// SendMessage sends the given message to Discord as an interaction follow-up.
func (a *Adapter) SendMessage(_ context.Context, output sarah.Output) {
	destination, ok := output.Destination().(*InteractionReply)
	if !ok || destination == nil || destination.Interaction == nil {
		logger.Errorf("Destination is not instance of *InteractionReply. %#v.", output.Destination())
		return
	}

	var params *discordgo.WebhookParams
	switch content := output.Content().(type) {
	case string:
		params = &discordgo.WebhookParams{Content: content}

	case *discordgo.WebhookParams:
		params = content

	case *sarah.CommandHelps:
		lines := make([]string, 0, len(*content))
		for _, h := range *content {
			lines = append(lines, fmt.Sprintf("**/%s**: %s", h.Identifier, h.Instruction))
		}
		params = &discordgo.WebhookParams{Content: strings.Join(lines, "\n")}

	default:
		logger.Warnf("Unexpected output %#v", output)
		return
	}

	_, err := a.session.FollowupMessageCreate(destination.Interaction, true, params)
	if err != nil {
		logger.Errorf("Failed to send follow-up for interaction %s: %+v", destination.Interaction.ID, err)
	}
}

// NewResponse creates a *sarah.CommandResponse with the given content.
// content is either a string or a *discordgo.WebhookParams when attachments are needed.
func NewResponse(input sarah.Input, content interface{}) (*sarah.CommandResponse, error) {
	if _, ok := input.(*Input); !ok {
		return nil, fmt.Errorf("%T is not a *discord.Input", input)
	}

	return &sarah.CommandResponse{
		Content: content,
	}, nil
}
