// Package raidlist provides the /raid-list slash command.
//
// The command downloads a Raid-Helper event and replies with its participants
// in signup order, one "name<TAB>class" line each, attached as a text file.
package raidlist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"

	"github.com/oklahomer/go-sarah-raidbot/discord"
	"github.com/oklahomer/go-sarah-raidbot/raidhelper"
)

const (
	// CommandName is the slash command name.
	CommandName = "raid-list"

	// OptionURL is the required option holding the Raid-Helper JSON URL.
	OptionURL = "url"

	// OptionStatus is the optional option narrowing the list to some statuses.
	OptionStatus = "status"

	// AttachmentName is the file name of the attached participant list.
	AttachmentName = "raid_participants.txt"
)

const (
	msgInvalidURL     = "Invalid URL. Please provide a " + raidhelper.Domain + " URL."
	msgNoParticipants = "No participants found in this raid."
)

// ApplicationCommand returns the /raid-list definition to register with Discord.
func ApplicationCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        CommandName,
		Description: "Fetch and display Raid-Helper participants",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptionURL,
				Description: "Raid-Helper JSON URL",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        OptionStatus,
				Description: "Only list these statuses, e.g. \"tank healer\"",
				Required:    false,
			},
		},
	}
}

// NewCommandProps builds the sarah.CommandProps for /raid-list.
func NewCommandProps(fetcher raidhelper.Fetcher) (*sarah.CommandProps, error) {
	h := &handler{fetcher: fetcher}
	return sarah.NewCommandPropsBuilder().
		BotType(discord.DISCORD).
		Identifier(CommandName).
		MatchFunc(match).
		Func(h.respond).
		Instruction("Input /" + CommandName + " with a " + raidhelper.Domain + " JSON URL to list participants in signup order.").
		Build()
}

func match(input sarah.Input) bool {
	in, ok := input.(*discord.Input)
	return ok && in.CommandName() == CommandName
}

type handler struct {
	fetcher raidhelper.Fetcher
}

func (h *handler) respond(ctx context.Context, input sarah.Input) (*sarah.CommandResponse, error) {
	in, ok := input.(*discord.Input)
	if !ok {
		return nil, fmt.Errorf("%T is not a *discord.Input", input)
	}

	rawURL := in.OptionString(OptionURL)
	logger.Infof("[RAID-LIST] Request from %s in %s | URL: %s", in.UserName(), in.Location(), rawURL)

	params := h.reply(ctx, in.UserName(), rawURL, raidhelper.ParseStatuses(in.OptionString(OptionStatus)))
	return discord.NewResponse(input, params)
}

// reply builds the follow-up for one invocation. Failures become visible messages.
func (h *handler) reply(ctx context.Context, user string, rawURL string, statuses []string) *discordgo.WebhookParams {
	event, err := h.fetcher.FetchEvent(ctx, rawURL)
	if err != nil {
		return errorReply(user, rawURL, err)
	}

	logger.Debugf("Fetched event %s with %d signup(s)", event.EventID(), len(event.SignUps))

	signUps := raidhelper.FilterByStatus(event.SignUps, statuses)
	if len(signUps) == 0 {
		logger.Infof("No participants found for URL: %s", rawURL)
		return &discordgo.WebhookParams{Content: msgNoParticipants}
	}

	formatted := raidhelper.FormatParticipants(signUps)
	logger.Infof("Successfully sent %d participants to %s", len(signUps), user)

	return &discordgo.WebhookParams{
		Content: fmt.Sprintf("Found %d participants:", len(signUps)),
		Files: []*discordgo.File{
			{
				Name:        AttachmentName,
				ContentType: "text/plain; charset=utf-8",
				Reader:      strings.NewReader(formatted),
			},
		},
	}
}

func errorReply(user string, rawURL string, err error) *discordgo.WebhookParams {
	var msg string
	switch {
	case errors.Is(err, raidhelper.ErrInvalidURL):
		logger.Warnf("Invalid URL rejected from %s: %s", user, rawURL)
		msg = msgInvalidURL

	case errors.Is(err, raidhelper.ErrFetchFailed):
		msg = fmt.Sprintf("Failed to fetch data: %s", err.Error())
		logger.Errorf("HTTP error for %s: %s", user, msg)

	default:
		msg = fmt.Sprintf("An error occurred: %s", err.Error())
		logger.Errorf("Unexpected error for %s: %+v", user, err)
	}

	return &discordgo.WebhookParams{Content: msg}
}
