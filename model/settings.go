package model

import "time"

// DefaultMuteDuration applies when a guild has not configured an auto-mute
// duration.
const DefaultMuteDuration = 24 * time.Hour

// GuildSettings holds the per-guild moderation configuration read by the
// escalation engine and the expiry handlers.
type GuildSettings struct {
	GuildID             string `db:"guild_id"`
	MuteRoleID          string `db:"mute_role_id"`
	ProbationRoleID     string `db:"probation_role_id"`
	ModLogChannelID     string `db:"mod_log_channel_id"`
	MuteDurationSeconds int64  `db:"mute_duration_seconds"`
}

// MuteDuration returns the guild's configured auto-mute duration. A guild
// with no duration set falls back to the process-wide default from the
// config file, then to DefaultMuteDuration.
func (s *GuildSettings) MuteDuration(fallback time.Duration) time.Duration {
	if s != nil && s.MuteDurationSeconds > 0 {
		return time.Duration(s.MuteDurationSeconds) * time.Second
	}
	if fallback > 0 {
		return fallback
	}
	return DefaultMuteDuration
}
