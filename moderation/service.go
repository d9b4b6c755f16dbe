package moderation

import (
	"errors"
	"fmt"
	"log"
	"time"

	"warden-bot/model"
	"warden-bot/scheduler"
	"warden-bot/utils"
	"warden-bot/utils/database"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
)

// Gateway is the subset of *discordgo.Session the moderation service uses.
// *discordgo.Session satisfies it; tests substitute a fake.
type Gateway interface {
	GuildMember(guildID, userID string, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMemberRoleAdd(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberRoleRemove(guildID, userID, roleID string, options ...discordgo.RequestOption) error
	GuildMemberEdit(guildID, userID string, data *discordgo.GuildMemberParams, options ...discordgo.RequestOption) (*discordgo.Member, error)
	GuildMemberDeleteWithReason(guildID, userID, reason string, options ...discordgo.RequestOption) error
	GuildBanCreateWithReason(guildID, userID, reason string, days int, options ...discordgo.RequestOption) error
	GuildBanDelete(guildID, userID string, options ...discordgo.RequestOption) error
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendEmbed(channelID string, embed *discordgo.MessageEmbed, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Service owns warn recording, escalation, and the restriction actions
// shared by manual commands and scheduled expiries. Automatic invocations
// record botUserID as the issuing author.
type Service struct {
	gw           Gateway
	db           *sqlx.DB
	sched        *scheduler.Scheduler
	botUserID    string
	muteFallback time.Duration
	locks        *utils.KeyedMutex
}

// New builds the moderation service. muteFallback is the process-wide
// default mute duration applied when a guild has not configured one; zero
// means the built-in default.
func New(gw Gateway, db *sqlx.DB, sched *scheduler.Scheduler, botUserID string, muteFallback time.Duration) *Service {
	return &Service{
		gw:           gw,
		db:           db,
		sched:        sched,
		botUserID:    botUserID,
		muteFallback: muteFallback,
		locks:        utils.NewKeyedMutex(),
	}
}

// RegisterJobHandlers binds the scheduler's job kinds to the service's
// expiry and reminder handlers. Must run before the dispatch loop starts.
func (m *Service) RegisterJobHandlers() error {
	if err := m.sched.RegisterHandler(model.JobMuteExpiry, m.handleMuteExpiry); err != nil {
		return err
	}
	if err := m.sched.RegisterHandler(model.JobBanExpiry, m.handleBanExpiry); err != nil {
		return err
	}
	return m.sched.RegisterHandler(model.JobReminder, m.handleReminder)
}

func (m *Service) lockKey(guildID, userID string, kind model.RestrictionKind) string {
	return guildID + "/" + userID + "/" + string(kind)
}

// classify maps Discord REST errors onto the shared sentinels so callers can
// branch with errors.Is.
func classify(op string, err error) error {
	var rerr *discordgo.RESTError
	if errors.As(err, &rerr) && rerr.Message != nil {
		switch rerr.Message.Code {
		case discordgo.ErrCodeMissingPermissions, discordgo.ErrCodeMissingAccess:
			return fmt.Errorf("%s: %w", op, model.ErrPermissionDenied)
		case discordgo.ErrCodeUnknownMember, discordgo.ErrCodeUnknownUser,
			discordgo.ErrCodeUnknownBan, discordgo.ErrCodeUnknownRole,
			discordgo.ErrCodeUnknownChannel:
			return fmt.Errorf("%s: %w", op, model.ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

// dm sends a best-effort direct message. Delivery failures (user blocks DMs,
// user left) are logged and swallowed.
func (m *Service) dm(userID, content string) {
	channel, err := m.gw.UserChannelCreate(userID)
	if err != nil {
		log.Printf("Error creating private channel with user %s: %v", userID, err)
		return
	}
	if _, err := m.gw.ChannelMessageSend(channel.ID, content); err != nil {
		log.Printf("Error sending private message to user %s: %v", userID, err)
	}
}

// Notify sends a best-effort direct message to a user.
func (m *Service) Notify(userID, content string) {
	m.dm(userID, content)
}

// logAction emits an entry to the guild's moderation log channel, if one is
// configured.
func (m *Service) logAction(guildID, operation, details string) {
	settings, err := database.GetGuildSettings(m.db, guildID)
	if err != nil {
		log.Printf("Error loading settings for guild %s: %v", guildID, err)
		return
	}
	if settings.ModLogChannelID == "" {
		return
	}
	if err := utils.LogInfo(m.gw, settings.ModLogChannelID, "Moderation", operation, details); err != nil {
		log.Printf("Failed to send moderation log for guild %s: %v", guildID, err)
	}
}

// scheduleAsync registers a delayed job without blocking the caller; short
// delays dispatch from their own goroutine after the in-process wait.
func (m *Service) scheduleAsync(kind model.JobKind, delay time.Duration, payload model.JobPayload) {
	go func() {
		if _, err := m.sched.Schedule(kind, delay, payload); err != nil {
			log.Printf("Failed to schedule %s job for user %s: %v", kind, payload["user_id"], err)
		}
	}()
}
