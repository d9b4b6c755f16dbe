package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"warden-bot/bot"
	"warden-bot/model"
	"warden-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleBan bans a member, permanently or for a duration; timed bans get an
// automatic unban scheduled.
func HandleBan(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !utils.HasGuildPermission(i, discordgo.PermissionBanMembers) {
		utils.SendErrorResponse(s, i, "You do not have permission to ban members.")
		return
	}

	opts := optionMap(i)
	target := opts["user"].UserValue(s)
	reason := stringOption(opts, "reason")
	if reason == "" {
		reason = "No reason given"
	}

	var duration time.Duration
	if durationStr := stringOption(opts, "duration"); durationStr != "" {
		var err error
		duration, err = utils.ParseDuration(durationStr)
		if err != nil || duration <= 0 {
			utils.SendErrorResponse(s, i, "Invalid duration. Use forms like 12h, 7d, 2w.")
			return
		}
	}

	if err := b.Moderation.ApplyBan(i.GuildID, target.ID, i.Member.User.ID, reason, duration); err != nil {
		log.Printf("Error banning user %s in guild %s: %v", target.ID, i.GuildID, err)
		if errors.Is(err, model.ErrPermissionDenied) {
			utils.SendErrorResponse(s, i, "The bot lacks permission to ban that member.")
		} else {
			utils.SendErrorResponse(s, i, "Failed to ban the member.")
		}
		return
	}

	if duration > 0 {
		utils.SendPublicResponse(s, i, fmt.Sprintf("⛔ Banned %s for %s. Reason: %s", target.Mention(), duration, reason))
	} else {
		utils.SendPublicResponse(s, i, fmt.Sprintf("⛔ Banned %s. Reason: %s", target.Mention(), reason))
	}
}

// HandleUnban lifts a ban ahead of any scheduled expiry.
func HandleUnban(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !utils.HasGuildPermission(i, discordgo.PermissionBanMembers) {
		utils.SendErrorResponse(s, i, "You do not have permission to unban members.")
		return
	}

	opts := optionMap(i)
	userID := stripIDMarkup(stringOption(opts, "user_id"))
	if userID == "" {
		utils.SendErrorResponse(s, i, "Provide the ID of the user to unban.")
		return
	}

	if err := b.Moderation.LiftBan(i.GuildID, userID, i.Member.User.ID, false); err != nil {
		log.Printf("Error unbanning user %s in guild %s: %v", userID, i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to unban the user.")
		return
	}
	utils.SendPublicResponse(s, i, fmt.Sprintf("✅ Unbanned <@%s>.", userID))
}
