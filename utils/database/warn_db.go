package database

import (
	"fmt"

	"warden-bot/model"

	"github.com/jmoiron/sqlx"
)

// AddWarn appends a warn record and returns the new record's ID.
func AddWarn(db *sqlx.DB, record model.WarnRecord) (int64, error) {
	query := `INSERT INTO warns (user_id, author_id, guild_id, reason, timestamp)
              VALUES (:user_id, :author_id, :guild_id, :reason, :timestamp)`

	result, err := db.NamedExec(query, record)
	if err != nil {
		return 0, fmt.Errorf("failed to insert warn record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get warn record ID: %w", err)
	}
	return id, nil
}

// CountWarns returns the number of live warns for a member.
func CountWarns(db *sqlx.DB, guildID, userID string) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM warns WHERE guild_id = ? AND user_id = ?"
	if err := db.Get(&count, query, guildID, userID); err != nil {
		return 0, fmt.Errorf("failed to count warns for user %s in guild %s: %w", userID, guildID, err)
	}
	return count, nil
}

// GetWarns retrieves all warn records for a member, oldest first.
func GetWarns(db *sqlx.DB, guildID, userID string) ([]model.WarnRecord, error) {
	var records []model.WarnRecord
	query := "SELECT * FROM warns WHERE guild_id = ? AND user_id = ? ORDER BY timestamp, id"
	if err := db.Select(&records, query, guildID, userID); err != nil {
		return nil, fmt.Errorf("failed to get warns for user %s in guild %s: %w", userID, guildID, err)
	}
	return records, nil
}

// DeleteWarn deletes a single warn record by its ID, scoped to the guild so
// staff cannot delete records of another guild.
func DeleteWarn(db *sqlx.DB, guildID string, warnID int64) error {
	result, err := db.Exec("DELETE FROM warns WHERE id = ? AND guild_id = ?", warnID, guildID)
	if err != nil {
		return fmt.Errorf("failed to delete warn %d: %w", warnID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for warn %d: %w", warnID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no warn found with id %d: %w", warnID, model.ErrNotFound)
	}
	return nil
}

// DeleteAllWarns deletes every warn record for a member and returns how many
// were removed. The next warn after a bulk delete counts from 1 again.
func DeleteAllWarns(db *sqlx.DB, guildID, userID string) (int64, error) {
	result, err := db.Exec("DELETE FROM warns WHERE guild_id = ? AND user_id = ?", guildID, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete warns for user %s in guild %s: %w", userID, guildID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected for user %s: %w", userID, err)
	}
	return rowsAffected, nil
}
