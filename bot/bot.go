package bot

import (
	"log"

	"warden-bot/commands"
	"warden-bot/model"
	"warden-bot/moderation"
	"warden-bot/scheduler"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

type Bot struct {
	Session            *discordgo.Session
	Config             *model.Config
	DB                 *sqlx.DB
	Scheduler          *scheduler.Scheduler
	Moderation         *moderation.Service
	CommandHandlers    map[string]func(s *discordgo.Session, i *discordgo.InteractionCreate)
	RegisteredCommands []*discordgo.ApplicationCommand
}

func New(cfg *model.Config, db *sqlx.DB, sched *scheduler.Scheduler) (*Bot, error) {
	dg, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, err
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers | discordgo.IntentGuildModeration
	dg.StateEnabled = true

	b := &Bot{
		Session:   dg,
		Config:    cfg,
		DB:        db,
		Scheduler: sched,
	}
	b.Moderation = moderation.New(dg, db, sched, cfg.AppID, cfg.DefaultMuteDuration)
	if err := b.Moderation.RegisterJobHandlers(); err != nil {
		return nil, err
	}
	return b, nil
}

// RefreshCommands overwrites the bot's global slash commands.
func (b *Bot) RefreshCommands() {
	cmds := commands.GenerateCommands()
	log.Printf("Registering %d commands...", len(cmds))
	registeredCmds, err := b.Session.ApplicationCommandBulkOverwrite(b.Config.AppID, "", cmds)
	if err != nil {
		log.Printf("cannot update commands: %v", err)
		return
	}
	b.RegisteredCommands = registeredCmds
}

func (b *Bot) Close() {
	log.Println("Gracefully shutting down.")
	b.Scheduler.Stop()
	b.Session.Close()
	b.DB.Close()
}
