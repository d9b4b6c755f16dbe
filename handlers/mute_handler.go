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

// HandleMute applies the guild's mute role with an optional duration; the
// matching unmute is scheduled automatically.
func HandleMute(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !utils.HasGuildPermission(i, discordgo.PermissionModerateMembers) {
		utils.SendErrorResponse(s, i, "You do not have permission to mute members.")
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
			utils.SendErrorResponse(s, i, "Invalid duration. Use forms like 30m, 12h, 3d.")
			return
		}
	}

	if err := b.Moderation.ApplyMute(i.GuildID, target.ID, i.Member.User.ID, reason, duration); err != nil {
		log.Printf("Error muting user %s in guild %s: %v", target.ID, i.GuildID, err)
		switch {
		case errors.Is(err, model.ErrConfiguration):
			utils.SendErrorResponse(s, i, "No mute role is configured. Run `/modconfig setting:muterole` first.")
		case errors.Is(err, model.ErrPermissionDenied):
			utils.SendErrorResponse(s, i, "The bot lacks permission to manage that member's roles.")
		default:
			utils.SendErrorResponse(s, i, "Failed to mute the member.")
		}
		return
	}
	utils.SendPublicResponse(s, i, fmt.Sprintf("🔇 Muted %s. Reason: %s", target.Mention(), reason))
}

// HandleUnmute lifts a mute ahead of its scheduled expiry.
func HandleUnmute(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !utils.HasGuildPermission(i, discordgo.PermissionModerateMembers) {
		utils.SendErrorResponse(s, i, "You do not have permission to unmute members.")
		return
	}

	opts := optionMap(i)
	target := opts["user"].UserValue(s)

	if err := b.Moderation.LiftMute(i.GuildID, target.ID, i.Member.User.ID, false); err != nil {
		log.Printf("Error unmuting user %s in guild %s: %v", target.ID, i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to unmute the member.")
		return
	}
	utils.SendPublicResponse(s, i, fmt.Sprintf("🔊 Unmuted %s.", target.Mention()))
}
