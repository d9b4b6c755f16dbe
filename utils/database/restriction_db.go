package database

import (
	"database/sql"
	"errors"
	"fmt"

	"warden-bot/model"

	"github.com/jmoiron/sqlx"
)

// UpsertRestriction stores an active restriction, replacing any existing row
// for the same (guild, user, kind).
func UpsertRestriction(db *sqlx.DB, record model.RestrictionRecord) error {
	query := `INSERT INTO restrictions (kind, user_id, author_id, guild_id, reason, roles, timestamp)
              VALUES (:kind, :user_id, :author_id, :guild_id, :reason, :roles, :timestamp)
              ON CONFLICT(guild_id, user_id, kind) DO UPDATE SET
                  author_id = excluded.author_id,
                  reason = excluded.reason,
                  roles = excluded.roles,
                  timestamp = excluded.timestamp`

	if _, err := db.NamedExec(query, record); err != nil {
		return fmt.Errorf("failed to upsert %s restriction for user %s in guild %s: %w",
			record.Kind, record.UserID, record.GuildID, err)
	}
	return nil
}

// GetRestriction retrieves the active restriction of one kind for a member,
// or nil if the member is unrestricted.
func GetRestriction(db *sqlx.DB, guildID, userID string, kind model.RestrictionKind) (*model.RestrictionRecord, error) {
	var record model.RestrictionRecord
	query := "SELECT * FROM restrictions WHERE guild_id = ? AND user_id = ? AND kind = ?"
	err := db.Get(&record, query, guildID, userID, kind)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s restriction for user %s in guild %s: %w", kind, userID, guildID, err)
	}
	return &record, nil
}

// DeleteRestriction removes the active restriction of one kind for a member
// and reports whether a row was actually deleted. Deleting an absent row is
// not an error so manual lifts and scheduled expiries can race safely.
func DeleteRestriction(db *sqlx.DB, guildID, userID string, kind model.RestrictionKind) (bool, error) {
	query := "DELETE FROM restrictions WHERE guild_id = ? AND user_id = ? AND kind = ?"
	result, err := db.Exec(query, guildID, userID, kind)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s restriction for user %s in guild %s: %w", kind, userID, guildID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected for user %s: %w", userID, err)
	}
	return rowsAffected > 0, nil
}
