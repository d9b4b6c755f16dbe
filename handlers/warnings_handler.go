package handlers

import (
	"fmt"
	"log"
	"strings"
	"time"

	"warden-bot/bot"
	"warden-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// HandleWarnings lists a member's warn records.
func HandleWarnings(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !utils.HasGuildPermission(i, discordgo.PermissionModerateMembers) {
		utils.SendErrorResponse(s, i, "You do not have permission to view warnings.")
		return
	}

	opts := optionMap(i)
	target := opts["user"].UserValue(s)

	records, err := b.Moderation.Warns(i.GuildID, target.ID)
	if err != nil {
		log.Printf("Error listing warns for user %s in guild %s: %v", target.ID, i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to load warnings.")
		return
	}
	if len(records) == 0 {
		utils.SendSimpleResponse(s, i, fmt.Sprintf("%s has no warnings.", target.Mention()))
		return
	}

	var sb strings.Builder
	for _, r := range records {
		fmt.Fprintf(&sb, "`#%d` <t:%d:d> by <@%s>: %s\n", r.ID, r.Timestamp, r.AuthorID, r.Reason)
	}
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Warnings for %s (%d)", target.Username, len(records)),
		Color:       0xED4245,
		Description: sb.String(),
		Footer: &discordgo.MessageEmbedFooter{
			Text: time.Now().Format("2006-01-02 15:04"),
		},
	}
	utils.SendEmbedResponse(s, i, embed, true)
}

// HandleClearWarns deletes one warn record by ID, or every record for the
// member when no ID is given.
func HandleClearWarns(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !utils.HasGuildPermission(i, discordgo.PermissionModerateMembers) {
		utils.SendErrorResponse(s, i, "You do not have permission to clear warnings.")
		return
	}

	opts := optionMap(i)
	target := opts["user"].UserValue(s)

	if opt, ok := opts["id"]; ok {
		warnID := opt.IntValue()
		if err := b.Moderation.DeleteWarn(i.GuildID, warnID); err != nil {
			log.Printf("Error deleting warn %d in guild %s: %v", warnID, i.GuildID, err)
			utils.SendErrorResponse(s, i, fmt.Sprintf("No warning with ID %d found.", warnID))
			return
		}
		utils.SendSimpleResponse(s, i, fmt.Sprintf("Deleted warning `#%d`.", warnID))
		return
	}

	deleted, err := b.Moderation.ClearWarns(i.GuildID, target.ID)
	if err != nil {
		log.Printf("Error clearing warns for user %s in guild %s: %v", target.ID, i.GuildID, err)
		utils.SendErrorResponse(s, i, "Failed to clear warnings.")
		return
	}
	utils.SendSimpleResponse(s, i, fmt.Sprintf("Deleted %d warning(s) for %s.", deleted, target.Mention()))
}
