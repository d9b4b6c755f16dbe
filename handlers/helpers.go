package handlers

import (
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
)

func optionMap(i *discordgo.InteractionCreate) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	options := i.ApplicationCommandData().Options
	m := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if opt, ok := opts[name]; ok {
		return opt.StringValue()
	}
	return ""
}

// followUp posts an additional message after the interaction was already
// answered, e.g. an escalation notice after the warn confirmation.
func followUp(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
	})
	if err != nil {
		log.Printf("Error sending follow-up message: %v", err)
	}
}

// stripIDMarkup turns a role/channel/user mention into a bare ID so
// moderators can paste either form.
func stripIDMarkup(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, "<")
	value = strings.TrimSuffix(value, ">")
	value = strings.TrimPrefix(value, "@&")
	value = strings.TrimPrefix(value, "@!")
	value = strings.TrimPrefix(value, "@")
	value = strings.TrimPrefix(value, "#")
	return value
}
