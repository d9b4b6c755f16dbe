package handlers

import (
	"fmt"
	"log"

	"warden-bot/bot"
	"warden-bot/model"
	"warden-bot/utils"

	"github.com/bwmarrin/discordgo"
)

const maxReminderText = 1000

// HandleRemind schedules a reminder DM. Short delays never touch the job
// store; longer ones survive restarts.
func HandleRemind(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i)
	durationStr := stringOption(opts, "duration")
	text := stringOption(opts, "text")

	duration, err := utils.ParseDuration(durationStr)
	if err != nil || duration <= 0 {
		utils.SendErrorResponse(s, i, "Invalid duration. Use forms like 45s, 10m, 2h, 1d.")
		return
	}
	if len(text) > maxReminderText {
		utils.SendErrorResponse(s, i, fmt.Sprintf("Reminder text is limited to %d characters.", maxReminderText))
		return
	}

	utils.SendSimpleResponse(s, i, fmt.Sprintf("⏰ Okay, I will remind you in %s.", duration))

	// Schedule after responding: the short-delay path blocks for the whole
	// wait before dispatching the DM.
	go func() {
		payload := model.JobPayload{"user_id": i.Member.User.ID, "text": text}
		if _, err := b.Scheduler.Schedule(model.JobReminder, duration, payload); err != nil {
			log.Printf("Failed to schedule reminder for user %s: %v", i.Member.User.ID, err)
		}
	}()
}
