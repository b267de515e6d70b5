// Package discord provides a sarah.Adapter implementation for Discord slash commands.
//
// This package bridges go-sarah's bot framework with Discord application
// commands using discordgo for the underlying API integration. It registers
// the configured application commands once the gateway session is ready,
// acknowledges each slash command interaction with a deferred response,
// converts it into sarah.Input and delivers sarah.Output as interaction
// follow-up messages.
package discord
