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

// HandleWarn records a warning, notifies the member, and applies any
// punishment the guild's escalation table maps to the new warn count.
func HandleWarn(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !utils.HasGuildPermission(i, discordgo.PermissionModerateMembers) {
		utils.SendErrorResponse(s, i, "You do not have permission to warn members.")
		return
	}

	opts := optionMap(i)
	target := opts["user"].UserValue(s)
	reason := stringOption(opts, "reason")
	if reason == "" {
		reason = "No reason given"
	}
	if target.Bot {
		utils.SendErrorResponse(s, i, "Bots cannot be warned.")
		return
	}

	count, err := b.Moderation.RecordInfraction(i.GuildID, target.ID, i.Member.User.ID, reason)
	if err != nil {
		log.Printf("Error recording warn for user %s in guild %s: %v", target.ID, i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to record the warning.")
		return
	}

	// The member hears about the warn before any punishment lands.
	b.Moderation.Notify(target.ID, fmt.Sprintf("You have been warned (warn #%d). Reason: %s", count, reason))
	utils.SendPublicResponse(s, i, fmt.Sprintf("⚠️ Warned %s (warn #%d). Reason: %s", target.Mention(), count, reason))

	kind, err := b.Moderation.Escalate(i.GuildID, target.ID, count, i.Member.User.ID)
	if err != nil {
		log.Printf("Error escalating user %s in guild %s: %v", target.ID, i.GuildID, err)
		if kind == nil {
			return
		}
		switch {
		case errors.Is(err, model.ErrConfiguration):
			followUp(s, i, fmt.Sprintf("⚠️ %d warn(s) maps to **%s**, but the guild is missing configuration. Run `/modconfig` to set it up.", count, *kind))
		case errors.Is(err, model.ErrPermissionDenied):
			followUp(s, i, fmt.Sprintf("⚠️ %d warn(s) maps to **%s**, but the bot lacks the permission to apply it.", count, *kind))
		}
		return
	}
	if kind == nil {
		return
	}
	followUp(s, i, fmt.Sprintf("🔨 Escalation applied: **%s** at %d warn(s).", *kind, count))
}
