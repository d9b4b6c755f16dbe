package handlers

import (
	"fmt"
	"log"
	"strings"

	"warden-bot/bot"
	"warden-bot/model"
	"warden-bot/utils"
	"warden-bot/utils/database"

	"github.com/bwmarrin/discordgo"
)

// HandleWarnSet manages the guild's warn-punishment table.
func HandleWarnSet(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	if !utils.HasGuildPermission(i, discordgo.PermissionManageServer) {
		utils.SendErrorResponse(s, i, "You do not have permission to configure escalation.")
		return
	}

	opts := optionMap(i)
	action := stringOption(opts, "action")

	switch action {
	case "set":
		countOpt, ok := opts["count"]
		punishment := stringOption(opts, "punishment")
		if !ok || punishment == "" {
			utils.SendErrorResponse(s, i, "`set` needs both a count and a punishment.")
			return
		}
		count := int(countOpt.IntValue())
		err := database.SetWarnPunishment(b.DB, model.WarnPunishment{
			GuildID:   i.GuildID,
			Threshold: count,
			Kind:      model.PunishmentKind(punishment),
		})
		if err != nil {
			log.Printf("Error setting warn punishment for guild %s: %v", i.GuildID, err)
			utils.SendErrorResponse(s, i, fmt.Sprintf("Could not set the punishment: the count must be between 1 and %d.", model.MaxWarnThreshold))
			return
		}
		utils.SendSimpleResponse(s, i, fmt.Sprintf("At **%d** warn(s) members now get **%s**.", count, punishment))

	case "unset":
		countOpt, ok := opts["count"]
		if !ok {
			utils.SendErrorResponse(s, i, "`unset` needs the count to remove.")
			return
		}
		count := int(countOpt.IntValue())
		if err := database.UnsetWarnPunishment(b.DB, i.GuildID, count); err != nil {
			utils.SendErrorResponse(s, i, fmt.Sprintf("No punishment is configured at %d warn(s).", count))
			return
		}
		utils.SendSimpleResponse(s, i, fmt.Sprintf("Removed the punishment at **%d** warn(s).", count))

	case "list":
		table, err := database.GetWarnPunishments(b.DB, i.GuildID)
		if err != nil {
			log.Printf("Error listing warn punishments for guild %s: %v", i.GuildID, err)
			utils.SendErrorResponse(s, i, "Failed to load the punishment table.")
			return
		}
		if len(table) == 0 {
			utils.SendSimpleResponse(s, i, "No automatic punishments are configured.")
			return
		}
		var sb strings.Builder
		for _, p := range table {
			fmt.Fprintf(&sb, "**%d** warn(s) → %s\n", p.Threshold, p.Kind)
		}
		utils.SendSimpleResponse(s, i, sb.String())

	default:
		utils.SendErrorResponse(s, i, "Unknown action.")
	}
}
