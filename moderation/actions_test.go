package moderation

import (
	"path/filepath"
	"testing"
	"time"

	"warden-bot/model"
	"warden-bot/scheduler"
	"warden-bot/utils/database"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForJobs(t *testing.T, db *sqlx.DB, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		count, err := database.CountJobs(db)
		return err == nil && count == want
	}, time.Second, time.Millisecond)
}

func TestApplyMuteRequiresConfiguredRole(t *testing.T) {
	svc, gw, _, _, _ := newTestService(t)

	err := svc.ApplyMute(testGuild, testUser, testMod, "spam", time.Hour)
	assert.ErrorIs(t, err, model.ErrConfiguration)
	assert.False(t, gw.hasRole(testGuild, testUser, "role-mute"))
}

func TestMuteLifecycle(t *testing.T) {
	svc, gw, db, _, _ := newTestService(t)
	saveSettings(t, db, model.GuildSettings{MuteRoleID: "role-mute"})

	require.NoError(t, svc.ApplyMute(testGuild, testUser, testMod, "spam", 2*time.Hour))

	assert.True(t, gw.hasRole(testGuild, testUser, "role-mute"))
	assert.Positive(t, gw.dmCount(testUser))
	record, err := database.GetRestriction(db, testGuild, testUser, model.RestrictionMute)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, testMod, record.AuthorID)
	waitForJobs(t, db, 1)

	require.NoError(t, svc.LiftMute(testGuild, testUser, testMod, false))

	assert.False(t, gw.hasRole(testGuild, testUser, "role-mute"))
	record, err = database.GetRestriction(db, testGuild, testUser, model.RestrictionMute)
	require.NoError(t, err)
	assert.Nil(t, record)
	waitForJobs(t, db, 0)

	// Lifting again is a no-op.
	require.NoError(t, svc.LiftMute(testGuild, testUser, testMod, false))
}

func TestApplyMuteHonorsConfiguredDefaultDuration(t *testing.T) {
	db, err := database.Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clk := newTestClock()
	sched := scheduler.New(db, clk)
	gw := newFakeGateway()
	svc := New(gw, db, sched, testBot, 6*time.Hour)
	require.NoError(t, svc.RegisterJobHandlers())
	require.NoError(t, database.SaveGuildSettings(db, model.GuildSettings{
		GuildID: testGuild, MuteRoleID: "role-mute",
	}))

	// No explicit duration and no guild setting: the config-file default
	// decides when the mute expires.
	require.NoError(t, svc.ApplyMute(testGuild, testUser, testMod, "spam", 0))
	waitForJobs(t, db, 1)

	job, err := database.EarliestJobWithin(db, clk.Now(), 10*24*time.Hour)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, clk.Now().Add(6*time.Hour).Unix(), job.ExpiresAt)

	// A guild-configured duration still beats the process default.
	require.NoError(t, database.SaveGuildSettings(db, model.GuildSettings{
		GuildID: testGuild, MuteRoleID: "role-mute", MuteDurationSeconds: 1800,
	}))
	require.NoError(t, svc.ApplyMute(testGuild, testUser, testMod, "again", 0))
	require.Eventually(t, func() bool {
		job, err := database.EarliestJobWithin(db, clk.Now(), 10*24*time.Hour)
		return err == nil && job != nil && job.ExpiresAt == clk.Now().Add(30*time.Minute).Unix()
	}, time.Second, time.Millisecond)
}

func TestLiftMuteClearsRecordWhenMemberGone(t *testing.T) {
	svc, gw, db, _, _ := newTestService(t)
	saveSettings(t, db, model.GuildSettings{MuteRoleID: "role-mute"})

	require.NoError(t, svc.ApplyMute(testGuild, testUser, testMod, "spam", 2*time.Hour))
	waitForJobs(t, db, 1)

	// The member left the guild; the role removal 404s but the record still
	// has to go.
	gw.roleRemoveErr = restError(discordgo.ErrCodeUnknownMember)
	require.NoError(t, svc.LiftMute(testGuild, testUser, "", true))

	record, err := database.GetRestriction(db, testGuild, testUser, model.RestrictionMute)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestBanSupersedesMute(t *testing.T) {
	svc, gw, db, _, _ := newTestService(t)
	saveSettings(t, db, model.GuildSettings{MuteRoleID: "role-mute"})

	require.NoError(t, svc.ApplyMute(testGuild, testUser, testMod, "spam", 2*time.Hour))
	waitForJobs(t, db, 1)

	require.NoError(t, svc.ApplyBan(testGuild, testUser, testMod, "repeat offender", 0))

	assert.True(t, gw.isBanned(testGuild, testUser))
	banRecord, err := database.GetRestriction(db, testGuild, testUser, model.RestrictionBan)
	require.NoError(t, err)
	require.NotNil(t, banRecord)

	muteRecord, err := database.GetRestriction(db, testGuild, testUser, model.RestrictionMute)
	require.NoError(t, err)
	assert.Nil(t, muteRecord, "a ban drops the pending mute state")
	waitForJobs(t, db, 0)
}

func TestTimedBanLifecycle(t *testing.T) {
	svc, gw, db, _, clk := newTestService(t)

	require.NoError(t, svc.ApplyBan(testGuild, testUser, testMod, "cooling off", 72*time.Hour))
	assert.True(t, gw.isBanned(testGuild, testUser))
	waitForJobs(t, db, 1)

	job, err := database.EarliestJobWithin(db, clk.Now(), 10*24*time.Hour)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, model.JobBanExpiry, job.Kind)
	assert.Equal(t, testUser, job.UserID)

	require.NoError(t, svc.LiftBan(testGuild, testUser, testMod, false))
	assert.False(t, gw.isBanned(testGuild, testUser))
	waitForJobs(t, db, 0)

	record, err := database.GetRestriction(db, testGuild, testUser, model.RestrictionBan)
	require.NoError(t, err)
	assert.Nil(t, record)

	// Lifting again is a no-op.
	require.NoError(t, svc.LiftBan(testGuild, testUser, testMod, false))
}

func TestProbationRoundTrip(t *testing.T) {
	svc, gw, db, _, _ := newTestService(t)
	saveSettings(t, db, model.GuildSettings{ProbationRoleID: "role-probation"})
	gw.setRoles(testGuild, testUser, "role-member", "role-artist")

	require.NoError(t, svc.ApplyProbation(testGuild, testUser, testMod, "needs review"))

	assert.True(t, gw.hasRole(testGuild, testUser, "role-probation"))
	assert.False(t, gw.hasRole(testGuild, testUser, "role-member"))

	record, err := database.GetRestriction(db, testGuild, testUser, model.RestrictionProbation)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.JSONEq(t, `["role-member","role-artist"]`, record.Roles)

	require.NoError(t, svc.LiftProbation(testGuild, testUser, testMod))

	assert.True(t, gw.hasRole(testGuild, testUser, "role-member"))
	assert.True(t, gw.hasRole(testGuild, testUser, "role-artist"))
	assert.False(t, gw.hasRole(testGuild, testUser, "role-probation"))
	record, err = database.GetRestriction(db, testGuild, testUser, model.RestrictionProbation)
	require.NoError(t, err)
	assert.Nil(t, record)

	// Lifting again is a no-op.
	require.NoError(t, svc.LiftProbation(testGuild, testUser, testMod))
}

func TestApplyProbationRequiresConfiguredRole(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	err := svc.ApplyProbation(testGuild, testUser, testMod, "needs review")
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

// The full escalation path: second warn mutes the member, and the scheduled
// expiry unmutes them a day later.
func TestWarnEscalationAndExpiry(t *testing.T) {
	svc, gw, db, sched, clk := newTestService(t)
	saveSettings(t, db, model.GuildSettings{MuteRoleID: "role-mute"})
	require.NoError(t, database.SetWarnPunishment(db, model.WarnPunishment{
		GuildID: testGuild, Threshold: 2, Kind: model.PunishMute,
	}))

	count, err := svc.RecordInfraction(testGuild, testUser, testMod, "first strike")
	require.NoError(t, err)
	kind, err := svc.PunishmentFor(testGuild, count)
	require.NoError(t, err)
	assert.Nil(t, kind, "one warn must not trigger the table yet")

	count, err = svc.RecordInfraction(testGuild, testUser, testMod, "second strike")
	require.NoError(t, err)
	require.Equal(t, 2, count)
	kind, err = svc.PunishmentFor(testGuild, count)
	require.NoError(t, err)
	require.NotNil(t, kind)
	require.Equal(t, model.PunishMute, *kind)

	require.NoError(t, svc.ApplyPunishment(testGuild, testUser, count, *kind, testMod))
	assert.True(t, gw.hasRole(testGuild, testUser, "role-mute"))
	waitForJobs(t, db, 1)

	sched.Start()
	defer sched.Stop()

	require.Eventually(t, func() bool { return clk.waiters() >= 1 }, time.Second, time.Millisecond)
	clk.Advance(24*time.Hour + time.Minute)

	require.Eventually(t, func() bool {
		return !gw.hasRole(testGuild, testUser, "role-mute")
	}, time.Second, time.Millisecond, "scheduled expiry must remove the mute role")
	waitForJobs(t, db, 0)

	record, err := database.GetRestriction(db, testGuild, testUser, model.RestrictionMute)
	require.NoError(t, err)
	assert.Nil(t, record)

	// The warn history survives the expired punishment.
	warns, err := svc.Warns(testGuild, testUser)
	require.NoError(t, err)
	assert.Len(t, warns, 2)
}
