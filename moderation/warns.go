package moderation

import (
	"time"

	"warden-bot/model"
	"warden-bot/utils/database"
)

// RecordInfraction appends a warn record and returns the member's new live
// warn count, 1-based. Escalation is evaluated by the caller so the member
// can be notified before any punishment fires.
func (m *Service) RecordInfraction(guildID, userID, authorID, reason string) (int, error) {
	_, err := database.AddWarn(m.db, model.WarnRecord{
		UserID:    userID,
		AuthorID:  authorID,
		GuildID:   guildID,
		Reason:    reason,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		return 0, err
	}
	return database.CountWarns(m.db, guildID, userID)
}

// Warns retrieves a member's warn records, oldest first.
func (m *Service) Warns(guildID, userID string) ([]model.WarnRecord, error) {
	return database.GetWarns(m.db, guildID, userID)
}

// DeleteWarn removes a single warn record by ID.
func (m *Service) DeleteWarn(guildID string, warnID int64) error {
	return database.DeleteWarn(m.db, guildID, warnID)
}

// ClearWarns removes every warn record for a member and returns how many
// were deleted.
func (m *Service) ClearWarns(guildID, userID string) (int64, error) {
	return database.DeleteAllWarns(m.db, guildID, userID)
}
