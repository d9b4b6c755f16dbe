package database

import (
	"database/sql"
	"errors"
	"fmt"

	"warden-bot/model"

	"github.com/jmoiron/sqlx"
)

// GetGuildSettings retrieves the moderation settings for a guild. A guild
// with no stored row gets zero-value settings, so callers can rely on the
// defaults (no mute role, 24h auto-mute duration).
func GetGuildSettings(db *sqlx.DB, guildID string) (*model.GuildSettings, error) {
	var settings model.GuildSettings
	err := db.Get(&settings, "SELECT * FROM guild_settings WHERE guild_id = ?", guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return &model.GuildSettings{GuildID: guildID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings for guild %s: %w", guildID, err)
	}
	return &settings, nil
}

// SaveGuildSettings stores the moderation settings for a guild, replacing
// any existing row.
func SaveGuildSettings(db *sqlx.DB, settings model.GuildSettings) error {
	query := `INSERT INTO guild_settings (guild_id, mute_role_id, probation_role_id, mod_log_channel_id, mute_duration_seconds)
              VALUES (:guild_id, :mute_role_id, :probation_role_id, :mod_log_channel_id, :mute_duration_seconds)
              ON CONFLICT(guild_id) DO UPDATE SET
                  mute_role_id = excluded.mute_role_id,
                  probation_role_id = excluded.probation_role_id,
                  mod_log_channel_id = excluded.mod_log_channel_id,
                  mute_duration_seconds = excluded.mute_duration_seconds`

	if _, err := db.NamedExec(query, settings); err != nil {
		return fmt.Errorf("failed to save settings for guild %s: %w", settings.GuildID, err)
	}
	return nil
}

// GetWarnPunishments retrieves a guild's punishment table ordered by
// threshold.
func GetWarnPunishments(db *sqlx.DB, guildID string) ([]model.WarnPunishment, error) {
	var punishments []model.WarnPunishment
	query := "SELECT * FROM warn_punishments WHERE guild_id = ? ORDER BY threshold"
	if err := db.Select(&punishments, query, guildID); err != nil {
		return nil, fmt.Errorf("failed to get warn punishments for guild %s: %w", guildID, err)
	}
	return punishments, nil
}

// SetWarnPunishment maps a warn-count threshold to a punishment, replacing
// any punishment already configured at that threshold.
func SetWarnPunishment(db *sqlx.DB, punishment model.WarnPunishment) error {
	if punishment.Threshold < 1 || punishment.Threshold > model.MaxWarnThreshold {
		return fmt.Errorf("threshold %d out of range 1..%d: %w",
			punishment.Threshold, model.MaxWarnThreshold, model.ErrConfiguration)
	}
	if !punishment.Kind.Valid() {
		return fmt.Errorf("unknown punishment kind %q: %w", punishment.Kind, model.ErrConfiguration)
	}

	query := `INSERT INTO warn_punishments (guild_id, threshold, kind)
              VALUES (:guild_id, :threshold, :kind)
              ON CONFLICT(guild_id, threshold) DO UPDATE SET kind = excluded.kind`

	if _, err := db.NamedExec(query, punishment); err != nil {
		return fmt.Errorf("failed to set warn punishment for guild %s: %w", punishment.GuildID, err)
	}
	return nil
}

// UnsetWarnPunishment removes the punishment at a threshold.
func UnsetWarnPunishment(db *sqlx.DB, guildID string, threshold int) error {
	result, err := db.Exec("DELETE FROM warn_punishments WHERE guild_id = ? AND threshold = ?", guildID, threshold)
	if err != nil {
		return fmt.Errorf("failed to unset warn punishment for guild %s: %w", guildID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for guild %s: %w", guildID, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("no punishment configured at %d warns: %w", threshold, model.ErrNotFound)
	}
	return nil
}
