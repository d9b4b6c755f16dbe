package commands

import (
	"warden-bot/commands/defs"

	"github.com/bwmarrin/discordgo"
)

// GenerateCommands returns every slash command the bot registers.
func GenerateCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		defs.Warn,
		defs.Warnings,
		defs.ClearWarns,
		defs.Mute,
		defs.Unmute,
		defs.Ban,
		defs.Unban,
		defs.Probate,
		defs.Unprobate,
		defs.WarnSet,
		defs.ModConfig,
		defs.Remind,
		defs.Status,
	}
}
