package moderation

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"warden-bot/model"
	"warden-bot/utils/database"

	"github.com/bwmarrin/discordgo"
)

// ApplyMute adds the guild's mute role, records the restriction, and
// schedules the timed unmute. A non-positive duration falls back to the
// guild's configured auto-mute duration (24h if unset).
func (m *Service) ApplyMute(guildID, userID, authorID, reason string, duration time.Duration) error {
	unlock := m.locks.Lock(m.lockKey(guildID, userID, model.RestrictionMute))
	defer unlock()

	settings, err := database.GetGuildSettings(m.db, guildID)
	if err != nil {
		return err
	}
	if settings.MuteRoleID == "" {
		return fmt.Errorf("guild %s has no mute role configured: %w", guildID, model.ErrConfiguration)
	}

	if err := m.gw.GuildMemberRoleAdd(guildID, userID, settings.MuteRoleID); err != nil {
		return classify("apply mute", err)
	}
	if err := database.UpsertRestriction(m.db, model.RestrictionRecord{
		Kind:      model.RestrictionMute,
		UserID:    userID,
		AuthorID:  authorID,
		GuildID:   guildID,
		Reason:    reason,
		Timestamp: time.Now().Unix(),
	}); err != nil {
		return err
	}

	if duration <= 0 {
		duration = settings.MuteDuration(m.muteFallback)
	}
	m.scheduleAsync(model.JobMuteExpiry, duration, model.JobPayload{"guild_id": guildID, "user_id": userID})

	m.dm(userID, fmt.Sprintf("You have been muted for %s. Reason: %s", duration, reason))
	m.logAction(guildID, "Mute", fmt.Sprintf("<@%s> muted by <@%s> for %s. Reason: %s", userID, authorID, duration, reason))
	return nil
}

// LiftMute removes an active mute. Lifting an already-unmuted member is a
// no-op, so a manual unmute and a scheduled expiry can race safely.
func (m *Service) LiftMute(guildID, userID, actorID string, auto bool) error {
	unlock := m.locks.Lock(m.lockKey(guildID, userID, model.RestrictionMute))
	defer unlock()

	record, err := database.GetRestriction(m.db, guildID, userID, model.RestrictionMute)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	settings, err := database.GetGuildSettings(m.db, guildID)
	if err != nil {
		return err
	}
	if settings.MuteRoleID != "" {
		if err := m.gw.GuildMemberRoleRemove(guildID, userID, settings.MuteRoleID); err != nil {
			cerr := classify("lift mute", err)
			// A member or role that no longer exists still gets its record
			// cleared.
			if !errors.Is(cerr, model.ErrNotFound) {
				return cerr
			}
		}
	}
	if _, err := database.DeleteRestriction(m.db, guildID, userID, model.RestrictionMute); err != nil {
		return err
	}

	if auto {
		m.dm(userID, "Your mute has expired.")
		m.logAction(guildID, "Unmute", fmt.Sprintf("Mute of <@%s> expired automatically.", userID))
	} else {
		if err := m.sched.CancelFor(model.JobMuteExpiry, guildID, userID); err != nil {
			log.Printf("Failed to cancel mute expiry for user %s in guild %s: %v", userID, guildID, err)
		}
		m.dm(userID, "Your mute has been lifted.")
		m.logAction(guildID, "Unmute", fmt.Sprintf("<@%s> unmuted by <@%s>.", userID, actorID))
	}
	return nil
}

// ApplyBan bans the member and records the restriction. A positive duration
// schedules the timed unban; zero means permanent. The member's pending mute
// state is dropped along with its expiry job, since a ban supersedes it.
func (m *Service) ApplyBan(guildID, userID, authorID, reason string, duration time.Duration) error {
	unlock := m.locks.Lock(m.lockKey(guildID, userID, model.RestrictionBan))
	defer unlock()

	// DM first; a banned member is unreachable afterwards.
	m.dm(userID, fmt.Sprintf("You have been banned. Reason: %s", reason))

	if err := m.gw.GuildBanCreateWithReason(guildID, userID, reason, 0); err != nil {
		return classify("apply ban", err)
	}
	if err := database.UpsertRestriction(m.db, model.RestrictionRecord{
		Kind:      model.RestrictionBan,
		UserID:    userID,
		AuthorID:  authorID,
		GuildID:   guildID,
		Reason:    reason,
		Timestamp: time.Now().Unix(),
	}); err != nil {
		return err
	}

	if _, err := database.DeleteRestriction(m.db, guildID, userID, model.RestrictionMute); err != nil {
		log.Printf("Failed to clear mute record for banned user %s in guild %s: %v", userID, guildID, err)
	}
	if err := m.sched.CancelFor(model.JobMuteExpiry, guildID, userID); err != nil {
		log.Printf("Failed to cancel mute expiry for banned user %s in guild %s: %v", userID, guildID, err)
	}

	if duration > 0 {
		m.scheduleAsync(model.JobBanExpiry, duration, model.JobPayload{"guild_id": guildID, "user_id": userID})
		m.logAction(guildID, "Ban", fmt.Sprintf("<@%s> banned by <@%s> for %s. Reason: %s", userID, authorID, duration, reason))
	} else {
		m.logAction(guildID, "Ban", fmt.Sprintf("<@%s> banned by <@%s>. Reason: %s", userID, authorID, reason))
	}
	return nil
}

// LiftBan unbans the member. Lifting an already-lifted ban is a no-op.
func (m *Service) LiftBan(guildID, userID, actorID string, auto bool) error {
	unlock := m.locks.Lock(m.lockKey(guildID, userID, model.RestrictionBan))
	defer unlock()

	record, err := database.GetRestriction(m.db, guildID, userID, model.RestrictionBan)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	if err := m.gw.GuildBanDelete(guildID, userID); err != nil {
		cerr := classify("lift ban", err)
		if !errors.Is(cerr, model.ErrNotFound) {
			return cerr
		}
	}
	if _, err := database.DeleteRestriction(m.db, guildID, userID, model.RestrictionBan); err != nil {
		return err
	}

	if auto {
		m.logAction(guildID, "Unban", fmt.Sprintf("Ban of <@%s> expired automatically.", userID))
	} else {
		if err := m.sched.CancelFor(model.JobBanExpiry, guildID, userID); err != nil {
			log.Printf("Failed to cancel ban expiry for user %s in guild %s: %v", userID, guildID, err)
		}
		m.logAction(guildID, "Unban", fmt.Sprintf("<@%s> unbanned by <@%s>.", userID, actorID))
	}
	return nil
}

// Kick removes the member from the guild. Kicks leave no restriction record;
// the warn history stays.
func (m *Service) Kick(guildID, userID, authorID, reason string) error {
	m.dm(userID, fmt.Sprintf("You have been kicked. Reason: %s", reason))
	if err := m.gw.GuildMemberDeleteWithReason(guildID, userID, reason); err != nil {
		return classify("kick", err)
	}
	m.logAction(guildID, "Kick", fmt.Sprintf("<@%s> kicked by <@%s>. Reason: %s", userID, authorID, reason))
	return nil
}

// ApplyProbation strips the member's roles, remembers them for restoration,
// and applies the guild's probation role. Probation is indefinite; only a
// manual lift ends it.
func (m *Service) ApplyProbation(guildID, userID, authorID, reason string) error {
	unlock := m.locks.Lock(m.lockKey(guildID, userID, model.RestrictionProbation))
	defer unlock()

	settings, err := database.GetGuildSettings(m.db, guildID)
	if err != nil {
		return err
	}
	if settings.ProbationRoleID == "" {
		return fmt.Errorf("guild %s has no probation role configured: %w", guildID, model.ErrConfiguration)
	}

	member, err := m.gw.GuildMember(guildID, userID)
	if err != nil {
		return classify("apply probation", err)
	}
	strippedRoles, err := json.Marshal(member.Roles)
	if err != nil {
		return fmt.Errorf("failed to encode roles for user %s: %w", userID, err)
	}

	newRoles := []string{settings.ProbationRoleID}
	if _, err := m.gw.GuildMemberEdit(guildID, userID, &discordgo.GuildMemberParams{Roles: &newRoles}); err != nil {
		return classify("apply probation", err)
	}
	if err := database.UpsertRestriction(m.db, model.RestrictionRecord{
		Kind:      model.RestrictionProbation,
		UserID:    userID,
		AuthorID:  authorID,
		GuildID:   guildID,
		Reason:    reason,
		Roles:     string(strippedRoles),
		Timestamp: time.Now().Unix(),
	}); err != nil {
		return err
	}

	m.dm(userID, fmt.Sprintf("You have been placed on probation. Reason: %s", reason))
	m.logAction(guildID, "Probation", fmt.Sprintf("<@%s> placed on probation by <@%s>. Reason: %s", userID, authorID, reason))
	return nil
}

// LiftProbation restores the roles stripped when probation was applied.
// Lifting an already-lifted probation is a no-op.
func (m *Service) LiftProbation(guildID, userID, actorID string) error {
	unlock := m.locks.Lock(m.lockKey(guildID, userID, model.RestrictionProbation))
	defer unlock()

	record, err := database.GetRestriction(m.db, guildID, userID, model.RestrictionProbation)
	if err != nil {
		return err
	}
	if record == nil {
		return nil
	}

	var roles []string
	if record.Roles != "" {
		if err := json.Unmarshal([]byte(record.Roles), &roles); err != nil {
			log.Printf("Failed to decode stored roles for user %s in guild %s: %v", userID, guildID, err)
			roles = nil
		}
	}
	if roles == nil {
		roles = []string{}
	}
	if _, err := m.gw.GuildMemberEdit(guildID, userID, &discordgo.GuildMemberParams{Roles: &roles}); err != nil {
		cerr := classify("lift probation", err)
		if !errors.Is(cerr, model.ErrNotFound) {
			return cerr
		}
	}
	if _, err := database.DeleteRestriction(m.db, guildID, userID, model.RestrictionProbation); err != nil {
		return err
	}

	m.dm(userID, "Your probation has been lifted.")
	m.logAction(guildID, "Probation", fmt.Sprintf("Probation of <@%s> lifted by <@%s>.", userID, actorID))
	return nil
}
