package handlers

import (
	"fmt"
	"log"

	"warden-bot/bot"
	"warden-bot/utils"
	"warden-bot/utils/database"

	"github.com/bwmarrin/discordgo"
)

// HandleModConfig updates one of the guild's moderation settings.
func HandleModConfig(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !utils.HasGuildPermission(i, discordgo.PermissionManageServer) {
		utils.SendErrorResponse(s, i, "You do not have permission to change moderation settings.")
		return
	}

	opts := optionMap(i)
	setting := stringOption(opts, "setting")
	value := stripIDMarkup(stringOption(opts, "value"))

	settings, err := database.GetGuildSettings(b.DB, i.GuildID)
	if err != nil {
		log.Printf("Error loading settings for guild %s: %v", i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to load the guild settings.")
		return
	}

	var confirmation string
	switch setting {
	case "muterole":
		settings.MuteRoleID = value
		confirmation = fmt.Sprintf("Mute role set to <@&%s>.", value)
	case "probationrole":
		settings.ProbationRoleID = value
		confirmation = fmt.Sprintf("Probation role set to <@&%s>.", value)
	case "logchannel":
		settings.ModLogChannelID = value
		confirmation = fmt.Sprintf("Moderation log channel set to <#%s>.", value)
	case "muteduration":
		duration, err := utils.ParseDuration(value)
		if err != nil || duration <= 0 {
			utils.SendErrorResponse(s, i, "Invalid duration. Use forms like 30m, 12h, 3d.")
			return
		}
		settings.MuteDurationSeconds = int64(duration.Seconds())
		confirmation = fmt.Sprintf("Auto-mute duration set to %s.", duration)
	default:
		utils.SendErrorResponse(s, i, "Unknown setting.")
		return
	}

	if err := database.SaveGuildSettings(b.DB, *settings); err != nil {
		log.Printf("Error saving settings for guild %s: %v", i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to save the guild settings.")
		return
	}
	utils.SendSimpleResponse(s, i, confirmation)
}
