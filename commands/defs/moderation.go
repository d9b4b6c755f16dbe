package defs

import "github.com/bwmarrin/discordgo"

var (
	moderatePerm = int64(discordgo.PermissionModerateMembers)
	kickPerm     = int64(discordgo.PermissionKickMembers)
	banPerm      = int64(discordgo.PermissionBanMembers)
)

var Warn = &discordgo.ApplicationCommand{
	Name:                     "warn",
	Description:              "Warn a user and apply any configured escalation",
	DefaultMemberPermissions: &moderatePerm,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to warn",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the warning",
			Required:    false,
		},
	},
}

var Warnings = &discordgo.ApplicationCommand{
	Name:                     "warnings",
	Description:              "List a user's warnings",
	DefaultMemberPermissions: &moderatePerm,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user whose warnings to list",
			Required:    true,
		},
	},
}

var ClearWarns = &discordgo.ApplicationCommand{
	Name:                     "clearwarns",
	Description:              "Delete one warning by ID, or all of a user's warnings",
	DefaultMemberPermissions: &moderatePerm,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user whose warnings to delete",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "id",
			Description: "Delete only the warning with this ID",
			Required:    false,
		},
	},
}

var Mute = &discordgo.ApplicationCommand{
	Name:                     "mute",
	Description:              "Mute a user",
	DefaultMemberPermissions: &moderatePerm,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to mute",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duration",
			Description: "Mute duration, e.g. 30m, 12h, 3d (defaults to the guild's auto-mute duration)",
			Required:    false,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the mute",
			Required:    false,
		},
	},
}

var Unmute = &discordgo.ApplicationCommand{
	Name:                     "unmute",
	Description:              "Lift a user's mute",
	DefaultMemberPermissions: &moderatePerm,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to unmute",
			Required:    true,
		},
	},
}

var Ban = &discordgo.ApplicationCommand{
	Name:                     "ban",
	Description:              "Ban a user, optionally for a limited time",
	DefaultMemberPermissions: &banPerm,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to ban",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "duration",
			Description: "Ban duration, e.g. 12h, 7d, 2w (omit for permanent)",
			Required:    false,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the ban",
			Required:    false,
		},
	},
}

var Unban = &discordgo.ApplicationCommand{
	Name:                     "unban",
	Description:              "Lift a user's ban",
	DefaultMemberPermissions: &banPerm,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "user_id",
			Description: "ID of the user to unban",
			Required:    true,
		},
	},
}

var Probate = &discordgo.ApplicationCommand{
	Name:                     "probate",
	Description:              "Strip a user's roles and place them on probation",
	DefaultMemberPermissions: &kickPerm,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user to place on probation",
			Required:    true,
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "reason",
			Description: "Reason for the probation",
			Required:    false,
		},
	},
}

var Unprobate = &discordgo.ApplicationCommand{
	Name:                     "unprobate",
	Description:              "Lift a user's probation and restore their roles",
	DefaultMemberPermissions: &kickPerm,
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        "user",
			Description: "The user whose probation to lift",
			Required:    true,
		},
	},
}
