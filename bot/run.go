package bot

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"warden-bot/utils"
)

func (b *Bot) Run() {
	if err := b.Session.Open(); err != nil {
		log.Fatalf("Error opening connection: %v", err)
	}

	b.RefreshCommands()

	// The dispatch loop starts only after the gateway is up, so expiry
	// handlers never fire against a dead session.
	b.Scheduler.Start()

	fmt.Println("Bot is now running. Press CTRL-C to exit.")
	if b.Config.LogChannelID != "" {
		if err := utils.LogInfo(b.Session, b.Config.LogChannelID, "System", "Startup", "Bot has started successfully."); err != nil {
			log.Printf("Failed to send startup log: %v", err)
		}
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
