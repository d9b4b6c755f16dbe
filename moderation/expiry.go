package moderation

import (
	"log"

	"warden-bot/model"
	"warden-bot/utils/database"
)

// handleMuteExpiry fires when a persisted mute runs out. A guild with no
// mute role configured or a member who is no longer muted is a no-op, never
// an error: the member may have been unmuted manually or banned since the
// job was scheduled.
func (m *Service) handleMuteExpiry(payload model.JobPayload) error {
	guildID, userID := payload["guild_id"], payload["user_id"]

	settings, err := database.GetGuildSettings(m.db, guildID)
	if err != nil {
		return err
	}
	if settings.MuteRoleID == "" {
		log.Printf("Mute expiry for user %s in guild %s: no mute role configured, skipping", userID, guildID)
		return nil
	}
	record, err := database.GetRestriction(m.db, guildID, userID, model.RestrictionMute)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	return m.LiftMute(guildID, userID, m.botUserID, true)
}

// handleBanExpiry fires when a timed ban runs out.
func (m *Service) handleBanExpiry(payload model.JobPayload) error {
	guildID, userID := payload["guild_id"], payload["user_id"]

	record, err := database.GetRestriction(m.db, guildID, userID, model.RestrictionBan)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	return m.LiftBan(guildID, userID, m.botUserID, true)
}

// handleReminder delivers a stored reminder. Reminders are best-effort; an
// unreachable user is not an error.
func (m *Service) handleReminder(payload model.JobPayload) error {
	m.dm(payload["user_id"], "⏰ Reminder: "+payload["text"])
	return nil
}
