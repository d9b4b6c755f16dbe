package database

import (
	"path/filepath"
	"testing"
	"time"

	"warden-bot/model"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Init(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func addJob(t *testing.T, db *sqlx.DB, kind model.JobKind, userID string, expiresAt time.Time) int64 {
	t.Helper()
	id, err := AddDelayedJob(db, model.DelayedJob{
		Kind:      kind,
		GuildID:   "g1",
		UserID:    userID,
		CreatedAt: time.Now().Unix(),
		ExpiresAt: expiresAt.Unix(),
		Payload:   `{"guild_id":"g1","user_id":"` + userID + `"}`,
	})
	require.NoError(t, err)
	return id
}

func TestEarliestJobWithinWindow(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	window := 10 * 24 * time.Hour

	addJob(t, db, model.JobMuteExpiry, "u1", now.Add(5*time.Hour))
	first := addJob(t, db, model.JobReminder, "u2", now.Add(time.Hour))
	addJob(t, db, model.JobBanExpiry, "u3", now.Add(30*24*time.Hour))

	job, err := EarliestJobWithin(db, now, window)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, first, job.ID)
	assert.Equal(t, model.JobReminder, job.Kind)

	require.NoError(t, DeleteJob(db, first))
	job, err = EarliestJobWithin(db, now, window)
	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, model.JobMuteExpiry, job.Kind)

	// The 30-day job sits outside the look-ahead window.
	_, err = db.Exec("DELETE FROM delayed_jobs WHERE kind = ?", model.JobMuteExpiry)
	require.NoError(t, err)
	job, err = EarliestJobWithin(db, now, window)
	require.NoError(t, err)
	assert.Nil(t, job)
}

func TestJobExistsAndDelete(t *testing.T) {
	db := testDB(t)
	id := addJob(t, db, model.JobReminder, "u1", time.Now().Add(time.Hour))

	exists, err := JobExists(db, id)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, DeleteJob(db, id))
	exists, err = JobExists(db, id)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting twice is not an error.
	require.NoError(t, DeleteJob(db, id))
}

func TestDeleteJobsForFiltersByKindAndMember(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	addJob(t, db, model.JobMuteExpiry, "u1", now.Add(time.Hour))
	keepKind := addJob(t, db, model.JobBanExpiry, "u1", now.Add(2*time.Hour))
	keepUser := addJob(t, db, model.JobMuteExpiry, "u2", now.Add(3*time.Hour))

	require.NoError(t, DeleteJobsFor(db, model.JobMuteExpiry, "g1", "u1"))

	count, err := CountJobs(db)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	for _, id := range []int64{keepKind, keepUser} {
		exists, err := JobExists(db, id)
		require.NoError(t, err)
		assert.True(t, exists)
	}
}

func TestRestrictionUpsertReplacesRow(t *testing.T) {
	db := testDB(t)

	require.NoError(t, UpsertRestriction(db, model.RestrictionRecord{
		Kind: model.RestrictionMute, UserID: "u1", AuthorID: "m1", GuildID: "g1",
		Reason: "first", Timestamp: 100,
	}))
	require.NoError(t, UpsertRestriction(db, model.RestrictionRecord{
		Kind: model.RestrictionMute, UserID: "u1", AuthorID: "m2", GuildID: "g1",
		Reason: "second", Timestamp: 200,
	}))

	record, err := GetRestriction(db, "g1", "u1", model.RestrictionMute)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "m2", record.AuthorID)
	assert.Equal(t, "second", record.Reason)

	// Kinds are independent rows.
	require.NoError(t, UpsertRestriction(db, model.RestrictionRecord{
		Kind: model.RestrictionBan, UserID: "u1", AuthorID: "m1", GuildID: "g1",
		Reason: "banned", Timestamp: 300,
	}))
	record, err = GetRestriction(db, "g1", "u1", model.RestrictionMute)
	require.NoError(t, err)
	require.NotNil(t, record)

	deleted, err := DeleteRestriction(db, "g1", "u1", model.RestrictionMute)
	require.NoError(t, err)
	assert.True(t, deleted)
	deleted, err = DeleteRestriction(db, "g1", "u1", model.RestrictionMute)
	require.NoError(t, err)
	assert.False(t, deleted)

	record, err = GetRestriction(db, "g1", "u1", model.RestrictionBan)
	require.NoError(t, err)
	require.NotNil(t, record)
}

func TestGuildSettingsDefaults(t *testing.T) {
	db := testDB(t)

	settings, err := GetGuildSettings(db, "g1")
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, "g1", settings.GuildID)
	assert.Empty(t, settings.MuteRoleID)
	assert.Equal(t, model.DefaultMuteDuration, settings.MuteDuration(0))
	assert.Equal(t, 6*time.Hour, settings.MuteDuration(6*time.Hour), "configured fallback wins over the built-in default")

	settings.MuteRoleID = "role-m"
	settings.MuteDurationSeconds = 3600
	require.NoError(t, SaveGuildSettings(db, *settings))

	loaded, err := GetGuildSettings(db, "g1")
	require.NoError(t, err)
	assert.Equal(t, "role-m", loaded.MuteRoleID)
	assert.Equal(t, time.Hour, loaded.MuteDuration(6*time.Hour), "a guild-set duration beats any fallback")
}

func TestWarnPunishmentValidation(t *testing.T) {
	db := testDB(t)

	err := SetWarnPunishment(db, model.WarnPunishment{GuildID: "g1", Threshold: 0, Kind: model.PunishMute})
	assert.ErrorIs(t, err, model.ErrConfiguration)
	err = SetWarnPunishment(db, model.WarnPunishment{GuildID: "g1", Threshold: model.MaxWarnThreshold + 1, Kind: model.PunishMute})
	assert.ErrorIs(t, err, model.ErrConfiguration)
	err = SetWarnPunishment(db, model.WarnPunishment{GuildID: "g1", Threshold: 3, Kind: model.PunishmentKind("flog")})
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestWarnPunishmentTable(t *testing.T) {
	db := testDB(t)

	require.NoError(t, SetWarnPunishment(db, model.WarnPunishment{GuildID: "g1", Threshold: 5, Kind: model.PunishBan}))
	require.NoError(t, SetWarnPunishment(db, model.WarnPunishment{GuildID: "g1", Threshold: 3, Kind: model.PunishKick}))
	// Overwrites the existing entry at the same threshold.
	require.NoError(t, SetWarnPunishment(db, model.WarnPunishment{GuildID: "g1", Threshold: 3, Kind: model.PunishMute}))

	table, err := GetWarnPunishments(db, "g1")
	require.NoError(t, err)
	require.Len(t, table, 2)
	assert.Equal(t, 3, table[0].Threshold)
	assert.Equal(t, model.PunishMute, table[0].Kind)
	assert.Equal(t, 5, table[1].Threshold)

	require.NoError(t, UnsetWarnPunishment(db, "g1", 3))
	err = UnsetWarnPunishment(db, "g1", 3)
	assert.ErrorIs(t, err, model.ErrNotFound)

	table, err = GetWarnPunishments(db, "g1")
	require.NoError(t, err)
	require.Len(t, table, 1)
}

func TestWarnStore(t *testing.T) {
	db := testDB(t)

	id1, err := AddWarn(db, model.WarnRecord{UserID: "u1", AuthorID: "m1", GuildID: "g1", Reason: "one", Timestamp: 100})
	require.NoError(t, err)
	_, err = AddWarn(db, model.WarnRecord{UserID: "u1", AuthorID: "m1", GuildID: "g1", Reason: "two", Timestamp: 200})
	require.NoError(t, err)
	_, err = AddWarn(db, model.WarnRecord{UserID: "u2", AuthorID: "m1", GuildID: "g1", Reason: "other member", Timestamp: 300})
	require.NoError(t, err)

	count, err := CountWarns(db, "g1", "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	warns, err := GetWarns(db, "g1", "u1")
	require.NoError(t, err)
	require.Len(t, warns, 2)
	assert.Equal(t, "one", warns[0].Reason)

	require.NoError(t, DeleteWarn(db, "g1", id1))
	err = DeleteWarn(db, "g1", id1)
	assert.ErrorIs(t, err, model.ErrNotFound)

	deleted, err := DeleteAllWarns(db, "g1", "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	count, err = CountWarns(db, "g1", "u1")
	require.NoError(t, err)
	assert.Zero(t, count)
}
