package defs

import "github.com/bwmarrin/discordgo"

var managePerm = int64(discordgo.PermissionManageServer)

var WarnSet = &discordgo.ApplicationCommand{
	Name:                     "warnset",
	Description:              "Configure automatic punishments for warn counts",
	DefaultMemberPermissions: &managePerm,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "action",
			Description: "What to do with the punishment table",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "set", Value: "set"},
				{Name: "unset", Value: "unset"},
				{Name: "list", Value: "list"},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "count",
			Description: "Warn count that triggers the punishment (1-100)",
			Required:    false,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "punishment",
			Description: "Punishment to apply at that count",
			Required:    false,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "kick", Value: "kick"},
				{Name: "ban", Value: "ban"},
				{Name: "mute", Value: "mute"},
				{Name: "probate", Value: "probate"},
			},
		},
	},
}

var ModConfig = &discordgo.ApplicationCommand{
	Name:                     "modconfig",
	Description:              "Configure the guild's moderation settings",
	DefaultMemberPermissions: &managePerm,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "setting",
			Description: "Which setting to change",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "muterole", Value: "muterole"},
				{Name: "probationrole", Value: "probationrole"},
				{Name: "logchannel", Value: "logchannel"},
				{Name: "muteduration", Value: "muteduration"},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "value",
			Description: "Role ID, channel ID, or duration (e.g. 12h)",
			Required:    true,
		},
	},
}

var Status = &discordgo.ApplicationCommand{
	Name:                     "status",
	Description:              "Show bot and host status",
	DefaultMemberPermissions: &managePerm,
}
