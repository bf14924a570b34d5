package services_test

import (
	"testing"

	"matchpoint-api/elo"
	"matchpoint-api/models"
	"matchpoint-api/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportMatch_FreezesSnapshot(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)

	match, err := env.matches.ReportMatch(models.ReportMatchRequest{
		Player1ID:   alice.ID,
		Player2ID:   bruno.ID,
		WinnerID:    alice.ID,
		Score:       "6-4 3-6 7-5",
		MatchFormat: "best_of_three",
	}, alice.ID)
	require.NoError(t, err)

	// The snapshot must match an independent engine run on the same inputs.
	expected := elo.ComputeDelta(
		elo.PlayerRating{Elo: 1200, MatchesPlayed: 5},
		elo.PlayerRating{Elo: 1300, MatchesPlayed: 40},
		elo.MatchContext{MatchFormat: "best_of_three", FirstEncounter: true},
	)

	assert.Equal(t, 1200, match.Player1EloBefore)
	assert.Equal(t, 1200+expected.WinnerDelta, match.Player1EloAfter)
	assert.Equal(t, 1300, match.Player2EloBefore)
	assert.Equal(t, 1300+expected.LoserDelta, match.Player2EloAfter)
	assert.Equal(t, expected.WinnerModifiers, match.ModifiersApplied.Player1)
	assert.Equal(t, expected.LoserModifiers, match.ModifiersApplied.Player2)
	assert.Equal(t, alice.ID, match.ReportedBy)
	assert.False(t, match.Validated)
	assert.False(t, match.AutoValidateAt.IsZero())
}

func TestReportMatch_WinnerOnEitherSide(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)

	// Winner listed as player2: deltas land on the right sides.
	match, err := env.matches.ReportMatch(models.ReportMatchRequest{
		Player1ID: bruno.ID,
		Player2ID: alice.ID,
		WinnerID:  alice.ID,
	}, alice.ID)
	require.NoError(t, err)

	assert.Negative(t, match.Player1EloAfter-match.Player1EloBefore, "player1 lost")
	assert.Positive(t, match.Player2EloAfter-match.Player2EloBefore, "player2 won")
}

func TestReportMatch_Validation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)
	eve := env.createPlayer(t, "eve", 1250, 12)

	_, err := env.matches.ReportMatch(models.ReportMatchRequest{
		Player1ID: alice.ID,
		Player2ID: 9999,
		WinnerID:  alice.ID,
	}, alice.ID)
	assert.ErrorIs(t, err, services.ErrPlayerNotFound)

	_, err = env.matches.ReportMatch(models.ReportMatchRequest{
		Player1ID: alice.ID,
		Player2ID: alice.ID,
		WinnerID:  alice.ID,
	}, alice.ID)
	assert.Error(t, err)

	_, err = env.matches.ReportMatch(models.ReportMatchRequest{
		Player1ID: alice.ID,
		Player2ID: bruno.ID,
		WinnerID:  eve.ID,
	}, alice.ID)
	assert.Error(t, err)

	// The reporter must be one of the participants.
	_, err = env.matches.ReportMatch(models.ReportMatchRequest{
		Player1ID: alice.ID,
		Player2ID: bruno.ID,
		WinnerID:  alice.ID,
	}, eve.ID)
	assert.ErrorIs(t, err, services.ErrNotParticipant)
}

func TestReportMatch_FirstEncounterOnlyOnce(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)

	first := env.reportMatch(t, alice, bruno, alice.ID)
	assert.Contains(t, modifierNames(first.ModifiersApplied.Player1), "first_encounter")

	_, err := env.validation.Confirm(first.ID, bruno.ID)
	require.NoError(t, err)

	// A rematch after a resolved meeting carries no novelty bonus.
	second := env.reportMatch(t, alice, bruno, alice.ID)
	assert.NotContains(t, modifierNames(second.ModifiersApplied.Player1), "first_encounter")
}

func modifierNames(result elo.ModifierResult) []string {
	names := make([]string, 0, len(result.Details))
	for _, d := range result.Details {
		names = append(names, d.Name)
	}
	return names
}

func TestGetRatingBreakdown_ReproducedFromStorage(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)
	match := env.reportMatch(t, alice, bruno, alice.ID)

	_, err := env.validation.Confirm(match.ID, bruno.ID)
	require.NoError(t, err)

	// Shift live ratings by resolving another match; the stored breakdown
	// must not change.
	rematch := env.reportMatch(t, bruno, alice, bruno.ID)
	_, err = env.validation.Confirm(rematch.ID, alice.ID)
	require.NoError(t, err)

	breakdown, err := env.matches.GetRatingBreakdown(match.ID)
	require.NoError(t, err)
	assert.Equal(t, match.Player1EloBefore, breakdown.Player1EloBefore)
	assert.Equal(t, match.Player1EloAfter, breakdown.Player1EloAfter)
	assert.Equal(t, match.ModifiersApplied, breakdown.ModifiersApplied)
}

func TestGetMatches_Filters(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)
	eve := env.createPlayer(t, "eve", 1250, 12)

	resolved := env.reportMatch(t, alice, bruno, alice.ID)
	_, err := env.validation.Confirm(resolved.ID, bruno.ID)
	require.NoError(t, err)
	env.reportMatch(t, alice, eve, alice.ID)

	validated := true
	page, err := env.matches.GetMatches(services.MatchFilters{
		Page: 1, PerPage: 10, Validated: &validated,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	playerID := eve.ID
	page, err = env.matches.GetMatches(services.MatchFilters{
		Page: 1, PerPage: 10, PlayerID: &playerID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
}

func TestLedgerQueries(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "alice", 1200, 5)
	bruno := env.createPlayer(t, "bruno", 1300, 40)

	match := env.reportMatch(t, alice, bruno, alice.ID)
	_, err := env.validation.Confirm(match.ID, bruno.ID)
	require.NoError(t, err)

	history, err := env.ledger.GetPlayerHistory(alice.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.LedgerReasonWin, history[0].Reason)
	assert.NotZero(t, history[0].RecordedAt)

	recent, err := env.ledger.GetRecentChanges(10)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}
