package handlers

import (
	"errors"
	"fmt"
	"log"

	"warden-bot/bot"
	"warden-bot/model"
	"warden-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleProbate strips a member's roles and places them on probation until
// it is lifted manually.
func HandleProbate(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !utils.HasGuildPermission(i, discordgo.PermissionKickMembers) {
		utils.SendErrorResponse(s, i, "You do not have permission to probate members.")
		return
	}

	opts := optionMap(i)
	target := opts["user"].UserValue(s)
	reason := stringOption(opts, "reason")
	if reason == "" {
		reason = "No reason given"
	}

	if err := b.Moderation.ApplyProbation(i.GuildID, target.ID, i.Member.User.ID, reason); err != nil {
		log.Printf("Error probating user %s in guild %s: %v", target.ID, i.GuildID, err)
		switch {
		case errors.Is(err, model.ErrConfiguration):
			utils.SendErrorResponse(s, i, "No probation role is configured. Run `/modconfig setting:probationrole` first.")
		case errors.Is(err, model.ErrPermissionDenied):
			utils.SendErrorResponse(s, i, "The bot lacks permission to manage that member's roles.")
		default:
			utils.SendErrorResponse(s, i, "Failed to place the member on probation.")
		}
		return
	}
	utils.SendPublicResponse(s, i, fmt.Sprintf("🚧 %s placed on probation. Reason: %s", target.Mention(), reason))
}

// HandleUnprobate lifts a probation and restores the stripped roles.
func HandleUnprobate(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !utils.HasGuildPermission(i, discordgo.PermissionKickMembers) {
		utils.SendErrorResponse(s, i, "You do not have permission to lift probations.")
		return
	}

	opts := optionMap(i)
	target := opts["user"].UserValue(s)

	if err := b.Moderation.LiftProbation(i.GuildID, target.ID, i.Member.User.ID); err != nil {
		log.Printf("Error lifting probation of user %s in guild %s: %v", target.ID, i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to lift the probation.")
		return
	}
	utils.SendPublicResponse(s, i, fmt.Sprintf("✅ Probation of %s lifted.", target.Mention()))
}
