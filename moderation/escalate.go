package moderation

import (
	"errors"
	"fmt"
	"log"

	"warden-bot/model"
	"warden-bot/utils/database"
)

// EvaluatePunishment returns the punishment configured for count warns, or
// nil if none applies. An exact threshold match wins; a count above the
// highest configured threshold saturates at that highest threshold, so a
// member does not escape escalation by overshooting the table.
func EvaluatePunishment(table []model.WarnPunishment, count int) *model.PunishmentKind {
	var highest *model.WarnPunishment
	for i := range table {
		p := &table[i]
		if p.Threshold == count {
			return &p.Kind
		}
		if highest == nil || p.Threshold > highest.Threshold {
			highest = p
		}
	}
	if highest != nil && count > highest.Threshold {
		return &highest.Kind
	}
	return nil
}

// PunishmentFor loads the guild's punishment table and evaluates it against
// a warn count.
func (m *Service) PunishmentFor(guildID string, count int) (*model.PunishmentKind, error) {
	table, err := database.GetWarnPunishments(m.db, guildID)
	if err != nil {
		return nil, err
	}
	return EvaluatePunishment(table, count), nil
}

// ApplyPunishment fires a punishment through the same action paths used by
// the manual commands, so side effects (records, DMs, moderation log) are
// identical. moderatorID may be empty for automatic invocations, in which
// case the bot itself is recorded as the issuing author.
func (m *Service) ApplyPunishment(guildID, userID string, count int, kind model.PunishmentKind, moderatorID string) error {
	if moderatorID == "" {
		moderatorID = m.botUserID
	}
	reason := fmt.Sprintf("Got %d warn(s)", count)

	switch kind {
	case model.PunishKick:
		return m.Kick(guildID, userID, moderatorID, reason)
	case model.PunishBan:
		return m.ApplyBan(guildID, userID, moderatorID, reason, 0)
	case model.PunishMute:
		return m.ApplyMute(guildID, userID, moderatorID, reason, 0)
	case model.PunishProbate:
		return m.ApplyProbation(guildID, userID, moderatorID, reason)
	}
	return fmt.Errorf("unknown punishment kind %q: %w", kind, model.ErrConfiguration)
}

// Escalate evaluates the guild's punishment table against a freshly recorded
// warn count and applies any matching punishment. The returned kind is nil
// when the count maps to nothing. moderatorID identifies the staff member
// whose warn triggered the escalation; when it is empty the invocation is
// automatic and configuration or permission failures are downgraded to the
// guild's moderation log, since no staff member is there to act on them.
func (m *Service) Escalate(guildID, userID string, count int, moderatorID string) (*model.PunishmentKind, error) {
	kind, err := m.PunishmentFor(guildID, count)
	if err != nil {
		return nil, err
	}
	if kind == nil {
		return nil, nil
	}

	if err := m.ApplyPunishment(guildID, userID, count, *kind, moderatorID); err != nil {
		if moderatorID == "" {
			log.Printf("Failed to auto-punish user %s in guild %s: %v", userID, guildID, err)
			if errors.Is(err, model.ErrConfiguration) || errors.Is(err, model.ErrPermissionDenied) {
				m.logAction(guildID, "Escalation",
					fmt.Sprintf("Could not apply %s to <@%s> at %d warn(s): %v", *kind, userID, count, err))
				return kind, nil
			}
		}
		return kind, err
	}
	return kind, nil
}
