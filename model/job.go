package model

// JobKind identifies which handler a delayed job dispatches to.
type JobKind string

const (
	JobMuteExpiry JobKind = "mute_expiry"
	JobBanExpiry  JobKind = "ban_expiry"
	JobReminder   JobKind = "reminder"
)

// Valid reports whether k is one of the recognized job kinds.
func (k JobKind) Valid() bool {
	switch k {
	case JobMuteExpiry, JobBanExpiry, JobReminder:
		return true
	}
	return false
}

// JobPayload carries kind-specific data for a delayed job. Values must be
// plain strings so the payload round-trips through the jobs table as JSON.
type JobPayload map[string]string

// DelayedJob represents a persisted delayed action in the delayed_jobs table.
// Rows are never updated in place: a job is inserted once and deleted when it
// is dispatched or cancelled. GuildID and UserID duplicate the payload so
// pending jobs can be cancelled for a specific member.
type DelayedJob struct {
	ID        int64   `db:"id"`
	Kind      JobKind `db:"kind"`
	GuildID   string  `db:"guild_id"`
	UserID    string  `db:"user_id"`
	CreatedAt int64   `db:"created_at"`
	ExpiresAt int64   `db:"expires_at"`
	Payload   string  `db:"payload"`
}
