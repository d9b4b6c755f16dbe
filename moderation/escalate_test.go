package moderation

import (
	"testing"

	"warden-bot/model"
	"warden-bot/utils/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePunishment(t *testing.T) {
	table := []model.WarnPunishment{
		{GuildID: testGuild, Threshold: 3, Kind: model.PunishMute},
		{GuildID: testGuild, Threshold: 5, Kind: model.PunishBan},
	}

	tests := []struct {
		name  string
		table []model.WarnPunishment
		count int
		want  *model.PunishmentKind
	}{
		{"below lowest threshold", table, 2, nil},
		{"exact match low", table, 3, kindPtr(model.PunishMute)},
		{"between thresholds", table, 4, nil},
		{"exact match high", table, 5, kindPtr(model.PunishBan)},
		{"saturates above highest", table, 9, kindPtr(model.PunishBan)},
		{"empty table", nil, 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluatePunishment(tt.table, tt.count)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func kindPtr(k model.PunishmentKind) *model.PunishmentKind {
	return &k
}

func TestPunishmentForReadsGuildTable(t *testing.T) {
	svc, _, db, _, _ := newTestService(t)

	require.NoError(t, database.SetWarnPunishment(db, model.WarnPunishment{
		GuildID: testGuild, Threshold: 2, Kind: model.PunishKick,
	}))

	kind, err := svc.PunishmentFor(testGuild, 2)
	require.NoError(t, err)
	require.NotNil(t, kind)
	assert.Equal(t, model.PunishKick, *kind)

	// The table is per guild.
	kind, err = svc.PunishmentFor("guild-other", 2)
	require.NoError(t, err)
	assert.Nil(t, kind)
}

func TestApplyPunishmentRecordsBotAsAuthor(t *testing.T) {
	svc, gw, db, _, _ := newTestService(t)
	saveSettings(t, db, model.GuildSettings{MuteRoleID: "role-mute"})

	require.NoError(t, svc.ApplyPunishment(testGuild, testUser, 3, model.PunishMute, ""))

	assert.True(t, gw.hasRole(testGuild, testUser, "role-mute"))
	record, err := database.GetRestriction(db, testGuild, testUser, model.RestrictionMute)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, testBot, record.AuthorID)
	assert.Equal(t, "Got 3 warn(s)", record.Reason)
}

func TestApplyPunishmentKeepsModeratorAsAuthor(t *testing.T) {
	svc, gw, db, _, _ := newTestService(t)
	saveSettings(t, db, model.GuildSettings{MuteRoleID: "role-mute"})

	require.NoError(t, svc.ApplyPunishment(testGuild, testUser, 2, model.PunishMute, testMod))

	assert.True(t, gw.hasRole(testGuild, testUser, "role-mute"))
	record, err := database.GetRestriction(db, testGuild, testUser, model.RestrictionMute)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, testMod, record.AuthorID)
}

func TestApplyPunishmentKick(t *testing.T) {
	svc, gw, _, _, _ := newTestService(t)

	require.NoError(t, svc.ApplyPunishment(testGuild, testUser, 4, model.PunishKick, testMod))
	assert.Contains(t, gw.kicked, testGuild+"/"+testUser)
}

func TestApplyPunishmentUnknownKind(t *testing.T) {
	svc, _, _, _, _ := newTestService(t)

	err := svc.ApplyPunishment(testGuild, testUser, 1, model.PunishmentKind("flog"), testMod)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestEscalateAppliesMatchingPunishment(t *testing.T) {
	svc, gw, db, _, _ := newTestService(t)
	saveSettings(t, db, model.GuildSettings{MuteRoleID: "role-mute"})
	require.NoError(t, database.SetWarnPunishment(db, model.WarnPunishment{
		GuildID: testGuild, Threshold: 2, Kind: model.PunishMute,
	}))

	kind, err := svc.Escalate(testGuild, testUser, 1, testMod)
	require.NoError(t, err)
	assert.Nil(t, kind, "one warn must not trigger the table yet")

	kind, err = svc.Escalate(testGuild, testUser, 2, testMod)
	require.NoError(t, err)
	require.NotNil(t, kind)
	assert.Equal(t, model.PunishMute, *kind)
	assert.True(t, gw.hasRole(testGuild, testUser, "role-mute"))

	record, err := database.GetRestriction(db, testGuild, testUser, model.RestrictionMute)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, testMod, record.AuthorID)
}

func TestEscalateSurfacesErrorsToModerator(t *testing.T) {
	svc, _, db, _, _ := newTestService(t)
	// Mute configured at 1 warn but no mute role set up.
	require.NoError(t, database.SetWarnPunishment(db, model.WarnPunishment{
		GuildID: testGuild, Threshold: 1, Kind: model.PunishMute,
	}))

	kind, err := svc.Escalate(testGuild, testUser, 1, testMod)
	require.NotNil(t, kind)
	assert.Equal(t, model.PunishMute, *kind)
	assert.ErrorIs(t, err, model.ErrConfiguration)
}

func TestEscalateDowngradesConfigurationErrorsWithoutModerator(t *testing.T) {
	svc, gw, db, _, _ := newTestService(t)
	// Mute configured at 1 warn but no mute role set up.
	require.NoError(t, database.SetWarnPunishment(db, model.WarnPunishment{
		GuildID: testGuild, Threshold: 1, Kind: model.PunishMute,
	}))

	// No moderator to surface the failure to: it goes to the mod log, not
	// the caller.
	kind, err := svc.Escalate(testGuild, testUser, 1, "")
	require.NoError(t, err)
	require.NotNil(t, kind)
	assert.False(t, gw.hasRole(testGuild, testUser, "role-mute"))
	record, err := database.GetRestriction(db, testGuild, testUser, model.RestrictionMute)
	require.NoError(t, err)
	assert.Nil(t, record)
}
