package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Init opens the moderation database and ensures all tables exist.
func Init(dbPath string) (*sqlx.DB, error) {
	// The dispatch loop and command handlers write concurrently; wait out
	// sqlite's write lock instead of surfacing SQLITE_BUSY.
	db, err := sqlx.Connect("sqlite3", dbPath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to moderation database: %w", err)
	}

	schema := `
    CREATE TABLE IF NOT EXISTS delayed_jobs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        kind TEXT NOT NULL,
        guild_id TEXT NOT NULL,
        user_id TEXT NOT NULL,
        created_at INTEGER NOT NULL,
        expires_at INTEGER NOT NULL,
        payload TEXT NOT NULL
    );
    CREATE TABLE IF NOT EXISTS warns (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        user_id TEXT NOT NULL,
        author_id TEXT NOT NULL,
        guild_id TEXT NOT NULL,
        reason TEXT NOT NULL,
        timestamp INTEGER NOT NULL
    );
    CREATE TABLE IF NOT EXISTS restrictions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        kind TEXT NOT NULL,
        user_id TEXT NOT NULL,
        author_id TEXT NOT NULL,
        guild_id TEXT NOT NULL,
        reason TEXT NOT NULL,
        roles TEXT NOT NULL DEFAULT '',
        timestamp INTEGER NOT NULL,
        UNIQUE(guild_id, user_id, kind)
    );
    CREATE TABLE IF NOT EXISTS guild_settings (
        guild_id TEXT NOT NULL PRIMARY KEY,
        mute_role_id TEXT NOT NULL DEFAULT '',
        probation_role_id TEXT NOT NULL DEFAULT '',
        mod_log_channel_id TEXT NOT NULL DEFAULT '',
        mute_duration_seconds INTEGER NOT NULL DEFAULT 0
    );
    CREATE TABLE IF NOT EXISTS warn_punishments (
        guild_id TEXT NOT NULL,
        threshold INTEGER NOT NULL,
        kind TEXT NOT NULL,
        PRIMARY KEY (guild_id, threshold)
    );`

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create moderation tables: %w", err)
	}

	return db, nil
}
