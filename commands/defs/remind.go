package defs

import "github.com/bwmarrin/discordgo"

var Remind = &discordgo.ApplicationCommand{
	Name:        "remind",
	Description: "Send yourself a reminder after a delay",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duration",
			Description: "How long to wait, e.g. 45s, 10m, 2h, 1d",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "text",
			Description: "What to remind you about",
			Required:    true,
		},
	},
}
