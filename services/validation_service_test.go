package services_test

import (
	"testing"
	"time"

	"matchpoint-api/models"
	"matchpoint-api/notify"
	"matchpoint-api/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirm_AppliesFrozenSnapshot(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)

	// Alice beats Bruno and reports it herself.
	match := env.reportMatch(t, alice, bruno, alice.ID)
	assert.False(t, match.Validated)
	assert.Equal(t, models.StateReported, match.State())

	// Rating snapshot is frozen but not yet applied.
	assert.Equal(t, 1200, env.reloadPlayer(t, alice.ID).CurrentElo)
	assert.Equal(t, 1300, env.reloadPlayer(t, bruno.ID).CurrentElo)

	resolved, err := env.validation.Confirm(match.ID, bruno.ID)
	require.NoError(t, err)

	assert.True(t, resolved.Validated)
	assert.False(t, resolved.AutoValidated)
	require.NotNil(t, resolved.ValidatedBy)
	assert.Equal(t, bruno.ID, *resolved.ValidatedBy)
	assert.NotNil(t, resolved.ValidatedAt)
	assert.Equal(t, models.StateValidated, resolved.State())

	// The exact snapshot deltas land on both players.
	assert.Equal(t, match.Player1EloAfter, env.reloadPlayer(t, alice.ID).CurrentElo)
	assert.Equal(t, match.Player2EloAfter, env.reloadPlayer(t, bruno.ID).CurrentElo)

	// Exactly two ledger rows, one per player.
	rows := env.ledgerRows(t, match.ID)
	require.Len(t, rows, 2)
	byPlayer := map[uint]models.RatingLedgerEntry{}
	for _, row := range rows {
		byPlayer[row.PlayerID] = row
	}
	assert.Equal(t, models.LedgerReasonWin, byPlayer[alice.ID].Reason)
	assert.Equal(t, models.LedgerReasonLoss, byPlayer[bruno.ID].Reason)
	assert.Equal(t, match.Player1EloAfter, byPlayer[alice.ID].EloAfter)
	assert.Positive(t, byPlayer[alice.ID].Delta)
	assert.Negative(t, byPlayer[bruno.ID].Delta)

	// Win/loss accounting.
	assert.Equal(t, 1, env.reloadPlayer(t, alice.ID).Wins)
	assert.Equal(t, 1, env.reloadPlayer(t, bruno.ID).Losses)
	assert.Equal(t, 6, env.reloadPlayer(t, alice.ID).MatchesPlayed)

	// A confirmation event targets the reporter.
	events := env.notifier.byType(notify.EventMatchConfirmed)
	require.Len(t, events, 1)
	assert.Equal(t, []uint{alice.ID}, events[0].Recipients)
	assert.Equal(t, byPlayer[alice.ID].Delta, events[0].EloChange)
}

func TestConfirm_ReporterCannotConfirm(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)
	match := env.reportMatch(t, alice, bruno, alice.ID)

	_, err := env.validation.Confirm(match.ID, alice.ID)
	assert.ErrorIs(t, err, services.ErrIsReporter)

	// No state change.
	reloaded, getErr := env.matches.GetMatch(match.ID)
	require.NoError(t, getErr)
	assert.False(t, reloaded.Validated)
	assert.Equal(t, 1200, env.reloadPlayer(t, alice.ID).CurrentElo)
}

func TestConfirm_NotParticipant(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)
	eve := env.createPlayer(t, "eve", 1250, 12)
	match := env.reportMatch(t, alice, bruno, alice.ID)

	_, err := env.validation.Confirm(match.ID, eve.ID)
	assert.ErrorIs(t, err, services.ErrNotParticipant)
}

func TestConfirm_NotFound(t *testing.T) {
	env := newTestEnv(t)
	env.createPlayer(t, "alice", 1200, 5)

	_, err := env.validation.Confirm(9999, 1)
	assert.ErrorIs(t, err, services.ErrMatchNotFound)
}

func TestConfirm_SecondAttemptLoses(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)
	match := env.reportMatch(t, alice, bruno, alice.ID)

	_, err := env.validation.Confirm(match.ID, bruno.ID)
	require.NoError(t, err)

	_, err = env.validation.Confirm(match.ID, bruno.ID)
	assert.ErrorIs(t, err, services.ErrAlreadyValidated)

	// Still exactly two ledger rows and one application.
	assert.Len(t, env.ledgerRows(t, match.ID), 2)
	assert.Equal(t, match.Player1EloAfter, env.reloadPlayer(t, alice.ID).CurrentElo)
}

func TestReject_DeletesWithoutRatingEffect(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)
	match := env.reportMatch(t, alice, bruno, alice.ID)

	require.NoError(t, env.validation.Reject(match.ID, bruno.ID))

	_, err := env.matches.GetMatch(match.ID)
	assert.ErrorIs(t, err, services.ErrMatchNotFound)
	assert.Empty(t, env.ledgerRows(t, match.ID))
	assert.Equal(t, 1200, env.reloadPlayer(t, alice.ID).CurrentElo)
	assert.Equal(t, 0, env.reloadPlayer(t, alice.ID).MatchesPlayed)

	events := env.notifier.byType(notify.EventMatchRejected)
	require.Len(t, events, 1)
	assert.Equal(t, []uint{alice.ID}, events[0].Recipients)
}

func TestReject_AfterValidationFails(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)
	match := env.reportMatch(t, alice, bruno, alice.ID)

	_, err := env.validation.Confirm(match.ID, bruno.ID)
	require.NoError(t, err)

	err = env.validation.Reject(match.ID, bruno.ID)
	assert.ErrorIs(t, err, services.ErrAlreadyValidated)

	// The validated flag never goes back.
	reloaded, getErr := env.matches.GetMatch(match.ID)
	require.NoError(t, getErr)
	assert.True(t, reloaded.Validated)
}

func TestContest_OnValidatedMatchKeepsRating(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)
	admin := env.createPlayer(t, "elena", 1500, 200)
	require.NoError(t, env.db.Model(&models.Player{}).Where("id = ?", admin.ID).Update("is_admin", true).Error)

	match := env.reportMatch(t, alice, bruno, alice.ID)
	_, err := env.validation.Confirm(match.ID, bruno.ID)
	require.NoError(t, err)
	eloAfter := env.reloadPlayer(t, bruno.ID).CurrentElo

	contested, err := env.validation.Contest(match.ID, bruno.ID, "score was 6-4 4-6 6-7")
	require.NoError(t, err)

	assert.True(t, contested.Contested)
	require.NotNil(t, contested.ContestedBy)
	assert.Equal(t, bruno.ID, *contested.ContestedBy)
	assert.True(t, contested.Validated, "contest never clears validation")
	assert.Equal(t, eloAfter, env.reloadPlayer(t, bruno.ID).CurrentElo, "contest never reverses the rating")

	// The other participant and club admins are notified.
	events := env.notifier.byType(notify.EventMatchContested)
	require.Len(t, events, 1)
	assert.Equal(t, []uint{alice.ID}, events[0].Recipients)

	adminEvents := env.notifier.byType(notify.EventMatchContestedAdmin)
	require.Len(t, adminEvents, 1)
	assert.Contains(t, adminEvents[0].Recipients, admin.ID)
}

func TestContest_WindowExpired(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)
	match := env.reportMatch(t, alice, bruno, alice.ID)

	_, err := env.validation.Confirm(match.ID, bruno.ID)
	require.NoError(t, err)

	// Validated eight days ago.
	eightDaysAgo := time.Now().Add(-8 * 24 * time.Hour)
	require.NoError(t, env.db.Model(&models.Match{}).Where("id = ?", match.ID).
		Update("validated_at", eightDaysAgo).Error)

	_, err = env.validation.Contest(match.ID, bruno.ID, "too late")
	assert.ErrorIs(t, err, services.ErrContestWindowExpired)

	reloaded, getErr := env.matches.GetMatch(match.ID)
	require.NoError(t, getErr)
	assert.False(t, reloaded.Contested)
}

func TestContest_UnvalidatedAlwaysInsideWindow(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)
	match := env.reportMatch(t, alice, bruno, alice.ID)

	contested, err := env.validation.Contest(match.ID, bruno.ID, "never played this match")
	require.NoError(t, err)
	assert.True(t, contested.Contested)
	assert.False(t, contested.Validated)
}

func TestContest_OnlyOnce(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)
	match := env.reportMatch(t, alice, bruno, alice.ID)

	_, err := env.validation.Contest(match.ID, bruno.ID, "wrong score")
	require.NoError(t, err)

	_, err = env.validation.Contest(match.ID, alice.ID, "me too")
	assert.ErrorIs(t, err, services.ErrAlreadyContested)
}

func TestContest_MonthlyQuota(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)

	for i := 0; i < 3; i++ {
		match := env.reportMatch(t, alice, bruno, alice.ID)
		_, err := env.validation.Contest(match.ID, bruno.ID, "disputed")
		require.NoError(t, err)
	}

	match := env.reportMatch(t, alice, bruno, alice.ID)
	_, err := env.validation.Contest(match.ID, bruno.ID, "one more")
	require.ErrorIs(t, err, services.ErrContestQuotaExceeded)
	assert.Contains(t, err.Error(), "3", "cap must appear in the message")

	// The other participant is not throttled by Bruno's quota.
	_, err = env.validation.Contest(match.ID, alice.ID, "fine by me")
	assert.NoError(t, err)
}

func TestGetContestStatus(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)
	match := env.reportMatch(t, alice, bruno, alice.ID)

	status, err := env.validation.GetContestStatus(match.ID, bruno.ID)
	require.NoError(t, err)
	assert.True(t, status.CanContest)
	assert.False(t, status.Contested)

	_, err = env.validation.Contest(match.ID, bruno.ID, "wrong winner")
	require.NoError(t, err)

	status, err = env.validation.GetContestStatus(match.ID, bruno.ID)
	require.NoError(t, err)
	assert.False(t, status.CanContest)
	assert.True(t, status.Contested)
	assert.Equal(t, "wrong winner", status.ContestReason)

	_, err = env.validation.GetContestStatus(match.ID, 9999)
	assert.ErrorIs(t, err, services.ErrNotParticipant)
}

func TestGetContestStatus_WindowClosed(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)
	match := env.reportMatch(t, alice, bruno, alice.ID)

	_, err := env.validation.Confirm(match.ID, bruno.ID)
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&models.Match{}).Where("id = ?", match.ID).
		Update("validated_at", time.Now().Add(-8*24*time.Hour)).Error)

	status, err := env.validation.GetContestStatus(match.ID, bruno.ID)
	require.NoError(t, err)
	assert.False(t, status.CanContest)
	assert.NotEmpty(t, status.Reason)
}

func TestResolveContest_RecordsOutcomeOnly(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)
	match := env.reportMatch(t, alice, bruno, alice.ID)

	_, err := env.validation.Confirm(match.ID, bruno.ID)
	require.NoError(t, err)
	eloAfter := env.reloadPlayer(t, alice.ID).CurrentElo

	_, err = env.validation.Contest(match.ID, bruno.ID, "wrong score")
	require.NoError(t, err)

	resolved, err := env.validation.ResolveContest(match.ID, "score corrected in notes, result stands")
	require.NoError(t, err)
	assert.NotNil(t, resolved.ContestResolvedAt)
	assert.Equal(t, "score corrected in notes, result stands", resolved.ContestResolution)
	assert.Equal(t, eloAfter, env.reloadPlayer(t, alice.ID).CurrentElo)
}

func TestRatingFloor_NeverBreached(t *testing.T) {
	env := newTestEnv(t)
	// A low-rated favorite losing an upset: the raw delta would push them
	// under the floor.
	low := env.createPlayer(t, "low", 110, 2)
	lower := env.createPlayer(t, "lower", 100, 2)

	match := env.reportMatch(t, lower, low, lower.ID)
	_, err := env.validation.Confirm(match.ID, low.ID)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, env.reloadPlayer(t, low.ID).CurrentElo, 100)
	assert.GreaterOrEqual(t, env.reloadPlayer(t, lower.ID).CurrentElo, 100)
}

func TestConfirm_AwardsBadges(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)
	match := env.reportMatch(t, alice, bruno, alice.ID)

	_, err := env.validation.Confirm(match.ID, bruno.ID)
	require.NoError(t, err)

	badges, err := env.badges.GetPlayerBadges(alice.ID)
	require.NoError(t, err)
	ids := make([]string, 0, len(badges))
	for _, b := range badges {
		ids = append(ids, b.BadgeID)
	}
	assert.Contains(t, ids, "first_win")
}
