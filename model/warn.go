package model

// WarnRecord represents a single warning in the warns table. Records are
// append-only per (user, guild); staff can delete one record or all records
// for a member.
type WarnRecord struct {
	ID        int64  `db:"id"`
	UserID    string `db:"user_id"`
	AuthorID  string `db:"author_id"`
	GuildID   string `db:"guild_id"`
	Reason    string `db:"reason"`
	Timestamp int64  `db:"timestamp"`
}
