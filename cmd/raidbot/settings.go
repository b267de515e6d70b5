package main

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/urfave/cli/v3"
	"golang.org/x/time/rate"

	"github.com/oklahomer/go-sarah-raidbot/raidhelper"
)

// fetchSettings configures the Raid-Helper client.
type fetchSettings struct {
	Timeout time.Duration `flag:"fetch-timeout" validate:"gt=0"`
	Rate    float64       `flag:"fetch-rate" validate:"gt=0"`

	domain string
}

// raidHelperDomain is the API host accepted by the CLI's fetcher.
var raidHelperDomain = raidhelper.Domain

// botSettings configures the Discord bot.
type botSettings struct {
	Token         string `flag:"token" validate:"required"`
	ApplicationID string `flag:"application-id" validate:"omitempty,numeric"`
	GuildID       string `flag:"guild-id" validate:"omitempty,numeric"`
	Fetch         fetchSettings
}

func newFetchSettings(cmd *cli.Command) fetchSettings {
	return fetchSettings{
		Timeout: cmd.Duration("fetch-timeout"),
		Rate:    cmd.Float("fetch-rate"),
		domain:  raidHelperDomain,
	}
}

func newBotSettings(cmd *cli.Command) botSettings {
	return botSettings{
		Token:         strings.TrimSpace(cmd.String("token")),
		ApplicationID: cmd.String("application-id"),
		GuildID:       cmd.String("guild-id"),
		Fetch:         newFetchSettings(cmd),
	}
}

// newFetcher creates a Raid-Helper client from the given settings.
func (s fetchSettings) newFetcher() *raidhelper.Client {
	return raidhelper.NewClient(
		raidhelper.WithDomain(s.domain),
		raidhelper.WithTimeout(s.Timeout),
		raidhelper.WithLimiter(rate.NewLimiter(rate.Limit(s.Rate), 1)),
	)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("flag")
	})
	return v
}

// validateSettings reports invalid settings by flag name.
func validateSettings(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	msgs := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("--%s is required", fe.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("--%s is invalid: %v (%s)", fe.Field(), fe.Value(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
