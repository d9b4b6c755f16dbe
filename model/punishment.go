package model

// PunishmentKind is an automatic action fired when a member's warn count
// crosses a configured threshold.
type PunishmentKind string

const (
	PunishKick    PunishmentKind = "kick"
	PunishBan     PunishmentKind = "ban"
	PunishMute    PunishmentKind = "mute"
	PunishProbate PunishmentKind = "probate"
)

// Valid reports whether k is one of the recognized punishment kinds.
func (k PunishmentKind) Valid() bool {
	switch k {
	case PunishKick, PunishBan, PunishMute, PunishProbate:
		return true
	}
	return false
}

// WarnPunishment maps a warn-count threshold to a punishment for one guild.
// The warn_punishments table holds at most one kind per (guild, threshold).
type WarnPunishment struct {
	GuildID   string         `db:"guild_id"`
	Threshold int            `db:"threshold"`
	Kind      PunishmentKind `db:"kind"`
}

// MaxWarnThreshold bounds the thresholds staff may configure.
const MaxWarnThreshold = 100
