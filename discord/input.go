package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-sarah/v4"
)

// InteractionReply represents the interaction to answer as sarah.OutputDestination.
// Replies are delivered as follow-up messages of the deferred interaction response.
type InteractionReply struct {
	Interaction *discordgo.Interaction
}

var _ sarah.OutputDestination = (*InteractionReply)(nil)

// Input is a sarah.Input implementation that represents a received slash command.
type Input struct {
	Event       *discordgo.InteractionCreate
	senderKey   string
	text        string
	sentAt      time.Time
	commandName string
	options     map[string]interface{}
	user        *discordgo.User
	guildName   string
	replyTo     *InteractionReply
}

var _ sarah.Input = (*Input)(nil)

// SenderKey returns a unique key representing the sender in the channel.
func (i *Input) SenderKey() string {
	return i.senderKey
}

// Message returns a textual form of the invocation such as "/raid-list url:https://...".
func (i *Input) Message() string {
	return i.text
}

// SentAt returns when the interaction was created.
func (i *Input) SentAt() time.Time {
	return i.sentAt
}

// ReplyTo returns the interaction to answer.
func (i *Input) ReplyTo() sarah.OutputDestination {
	return i.replyTo
}

// CommandName returns the invoked slash command's name without the leading slash.
func (i *Input) CommandName() string {
	return i.commandName
}

// OptionString returns the string value of the named option.
// An empty string is returned when the option is absent or is not a string.
func (i *Input) OptionString(name string) string {
	s, _ := i.options[name].(string)
	return s
}

// UserName returns the invoking user's name.
func (i *Input) UserName() string {
	if i.user == nil || i.user.Username == "" {
		return "unknown"
	}
	return i.user.Username
}

// Location describes where the command was invoked.
// The guild's name is used when it was resolved from the session state, its ID otherwise.
func (i *Input) Location() string {
	if i.Event.GuildID == "" {
		return "DM"
	}
	if i.guildName != "" {
		return "Guild: " + i.guildName
	}
	return "Guild: " + i.Event.GuildID
}

// InteractionToInput converts a *discordgo.InteractionCreate event to *Input.
// Only application command interactions are supported.
func InteractionToInput(i *discordgo.InteractionCreate) (*Input, error) {
	if i == nil || i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return nil, ErrNotInteraction
	}

	data, ok := i.Data.(discordgo.ApplicationCommandInteractionData)
	if !ok {
		return nil, ErrNotInteraction
	}

	user := interactionUser(i.Interaction)
	if user == nil {
		return nil, ErrNoAuthor
	}

	options := make(map[string]interface{}, len(data.Options))
	parts := []string{"/" + data.Name}
	for _, opt := range data.Options {
		if opt == nil {
			continue
		}
		options[opt.Name] = opt.Value
		parts = append(parts, fmt.Sprintf("%s:%v", opt.Name, opt.Value))
	}

	sentAt, err := discordgo.SnowflakeTimestamp(i.ID)
	if err != nil {
		sentAt = time.Now()
	}

	return &Input{
		Event:       i,
		senderKey:   fmt.Sprintf("%s_%s", i.ChannelID, user.ID),
		text:        strings.Join(parts, " "),
		sentAt:      sentAt,
		commandName: data.Name,
		options:     options,
		user:        user,
		replyTo:     &InteractionReply{Interaction: i.Interaction},
	}, nil
}

// interactionUser returns the guild member's user or, in DMs, the user.
func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}
