package handlers

import (
	"log"

	"warden-bot/bot"
	"warden-bot/utils"

	"github.com/bwmarrin/discordgo"
)

func Register(b *bot.Bot) {
	b.CommandHandlers = commandHandlers(b)
	addHandlers(b)
}

func commandHandlers(b *bot.Bot) map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate) {
	return map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate){
		"warn": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleWarn(s, i, b)
		},
		"warnings": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleWarnings(s, i, b)
		},
		"clearwarns": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleClearWarns(s, i, b)
		},
		"mute": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleMute(s, i, b)
		},
		"unmute": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleUnmute(s, i, b)
		},
		"ban": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleBan(s, i, b)
		},
		"unban": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleUnban(s, i, b)
		},
		"probate": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleProbate(s, i, b)
		},
		"unprobate": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleUnprobate(s, i, b)
		},
		"warnset": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleWarnSet(s, i, b)
		},
		"modconfig": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleModConfig(s, i, b)
		},
		"remind": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleRemind(s, i, b)
		},
		"status": func(s *discordgo.Session, i *discordgo.InteractionCreate) {
			HandleStatus(s, i, b)
		},
	}
}

func addHandlers(b *bot.Bot) {
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
	b.Session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		if i.Type != discordgo.InteractionApplicationCommand {
			return
		}
		if i.GuildID == "" {
			utils.SendErrorResponse(s, i, "This command can only be used inside a server.")
			return
		}
		if h, ok := b.CommandHandlers[i.ApplicationCommandData().Name]; ok {
			h(s, i)
		}
	})
}
