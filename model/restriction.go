package model

// RestrictionKind identifies which restriction a record tracks. Mute, ban
// and probation are independent: a member can hold one active record of each
// kind per guild.
type RestrictionKind string

const (
	RestrictionMute      RestrictionKind = "mute"
	RestrictionBan       RestrictionKind = "ban"
	RestrictionProbation RestrictionKind = "probation"
)

// RestrictionRecord represents an active restriction in the restrictions
// table. At most one row exists per (guild, user, kind); applying the same
// restriction again replaces the row, lifting it deletes the row.
// Roles holds a JSON array of the role IDs stripped when probation was
// applied, so they can be restored on lift. It is empty for mutes and bans.
type RestrictionRecord struct {
	ID        int64           `db:"id"`
	Kind      RestrictionKind `db:"kind"`
	UserID    string          `db:"user_id"`
	AuthorID  string          `db:"author_id"`
	GuildID   string          `db:"guild_id"`
	Reason    string          `db:"reason"`
	Roles     string          `db:"roles"`
	Timestamp int64           `db:"timestamp"`
}
