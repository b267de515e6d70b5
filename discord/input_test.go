package discord

import (
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
)

func TestInteractionToInput(t *testing.T) {
	i := newInteraction("raid-list",
		&discordgo.ApplicationCommandInteractionDataOption{
			Name:  "url",
			Type:  discordgo.ApplicationCommandOptionString,
			Value: "https://raid-helper.dev/api/v2/events/1",
		},
		&discordgo.ApplicationCommandInteractionDataOption{
			Name:  "status",
			Type:  discordgo.ApplicationCommandOptionString,
			Value: "tank",
		},
	)

	input, err := InteractionToInput(i)
	if err != nil {
		t.Fatalf("Unexpected error: %+v", err)
	}

	t.Run("SenderKey", func(t *testing.T) {
		expected := "ch-1_user-1"
		if input.SenderKey() != expected {
			t.Errorf("Expected SenderKey %q, got %q", expected, input.SenderKey())
		}
	})

	t.Run("Message", func(t *testing.T) {
		expected := "/raid-list url:https://raid-helper.dev/api/v2/events/1 status:tank"
		if input.Message() != expected {
			t.Errorf("Expected Message %q, got %q", expected, input.Message())
		}
	})

	t.Run("SentAt", func(t *testing.T) {
		expected := time.Date(2016, time.April, 30, 11, 18, 25, 796*int(time.Millisecond), time.UTC)
		if !input.SentAt().Equal(expected) {
			t.Errorf("Expected SentAt %v, got %v", expected, input.SentAt())
		}
	})

	t.Run("ReplyTo", func(t *testing.T) {
		dest, ok := input.ReplyTo().(*InteractionReply)
		if !ok {
			t.Fatal("ReplyTo should return *InteractionReply")
		}
		if dest.Interaction != i.Interaction {
			t.Error("Expected ReplyTo to point at the received interaction")
		}
	})

	t.Run("CommandName", func(t *testing.T) {
		if input.CommandName() != "raid-list" {
			t.Errorf("Expected CommandName %q, got %q", "raid-list", input.CommandName())
		}
	})

	t.Run("OptionString", func(t *testing.T) {
		if input.OptionString("status") != "tank" {
			t.Errorf("Expected status option %q, got %q", "tank", input.OptionString("status"))
		}
		if input.OptionString("missing") != "" {
			t.Errorf("Expected empty value for missing option, got %q", input.OptionString("missing"))
		}
	})

	t.Run("UserName and Location", func(t *testing.T) {
		if input.UserName() != "raider" {
			t.Errorf("Expected UserName %q, got %q", "raider", input.UserName())
		}
		if input.Location() != "Guild: guild-1" {
			t.Errorf("Expected Location %q, got %q", "Guild: guild-1", input.Location())
		}
	})

	t.Run("Event preserved", func(t *testing.T) {
		if input.Event != i {
			t.Error("Original event should be preserved in Input")
		}
	})
}

func TestInteractionToInput_DirectMessage(t *testing.T) {
	i := newInteraction("raid-list")
	i.GuildID = ""
	i.Member = nil
	i.User = &discordgo.User{ID: "user-2", Username: "dm-user"}

	input, err := InteractionToInput(i)
	if err != nil {
		t.Fatalf("Unexpected error: %+v", err)
	}

	if input.UserName() != "dm-user" {
		t.Errorf("Expected UserName %q, got %q", "dm-user", input.UserName())
	}

	if input.Location() != "DM" {
		t.Errorf("Expected Location %q, got %q", "DM", input.Location())
	}
}

func TestInteractionToInput_Errors(t *testing.T) {
	t.Run("nil event", func(t *testing.T) {
		_, err := InteractionToInput(nil)
		if err != ErrNotInteraction {
			t.Errorf("Expected ErrNotInteraction, got %+v", err)
		}
	})

	t.Run("ping interaction", func(t *testing.T) {
		i := newInteraction("raid-list")
		i.Type = discordgo.InteractionPing

		_, err := InteractionToInput(i)
		if err != ErrNotInteraction {
			t.Errorf("Expected ErrNotInteraction, got %+v", err)
		}
	})

	t.Run("no user", func(t *testing.T) {
		i := newInteraction("raid-list")
		i.Member = nil

		_, err := InteractionToInput(i)
		if err != ErrNoAuthor {
			t.Errorf("Expected ErrNoAuthor, got %+v", err)
		}
	})

	t.Run("invalid snowflake falls back to now", func(t *testing.T) {
		i := newInteraction("raid-list")
		i.ID = "not-a-snowflake"

		before := time.Now()
		input, err := InteractionToInput(i)
		if err != nil {
			t.Fatalf("Unexpected error: %+v", err)
		}

		if input.SentAt().Before(before) {
			t.Errorf("Expected SentAt to fall back to current time, got %v", input.SentAt())
		}
	})
}
