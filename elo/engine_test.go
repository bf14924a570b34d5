package elo_test

import (
	"testing"

	"matchpoint-api/elo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedScore_Symmetry(t *testing.T) {
	cases := []struct{ a, b int }{
		{1200, 1200},
		{1200, 1300},
		{1000, 2000},
		{100, 2400},
	}
	for _, tc := range cases {
		sum := elo.ExpectedScore(tc.a, tc.b) + elo.ExpectedScore(tc.b, tc.a)
		assert.InDelta(t, 1.0, sum, 1e-9, "expected scores must complement for %d vs %d", tc.a, tc.b)
	}
}

func TestExpectedScore_EqualRatings(t *testing.T) {
	assert.InDelta(t, 0.5, elo.ExpectedScore(1400, 1400), 1e-9)
}

func TestExpectedScore_FavorsHigherRating(t *testing.T) {
	assert.Greater(t, elo.ExpectedScore(1500, 1200), 0.5)
	assert.Less(t, elo.ExpectedScore(1200, 1500), 0.5)
}

func TestKFactor_MonotonicNonIncreasing(t *testing.T) {
	prev, _ := elo.KFactor(0)
	for matches := 1; matches <= 300; matches++ {
		k, label := elo.KFactor(matches)
		require.LessOrEqual(t, k, prev, "K must never increase with experience (at %d matches)", matches)
		require.NotEmpty(t, label)
		prev = k
	}
}

func TestKFactor_Bands(t *testing.T) {
	cases := []struct {
		matches int
		k       float64
		label   string
	}{
		{0, 40, "New player"},
		{9, 40, "New player"},
		{10, 32, "Rising"},
		{29, 32, "Rising"},
		{30, 24, "Established"},
		{99, 24, "Established"},
		{100, 16, "Veteran"},
		{500, 16, "Veteran"},
	}
	for _, tc := range cases {
		k, label := elo.KFactor(tc.matches)
		assert.Equal(t, tc.k, k, "K at %d matches", tc.matches)
		assert.Equal(t, tc.label, label, "label at %d matches", tc.matches)
	}
}

func TestApplyModifiers_DefaultsToOne(t *testing.T) {
	result := elo.ApplyModifiers(
		elo.MatchContext{MatchFormat: "best_of_three"},
		elo.SideWinner,
		elo.PlayerRating{Elo: 1200},
		elo.PlayerRating{Elo: 1250},
	)
	assert.Equal(t, 1.0, result.Total)
	assert.Empty(t, result.Details)
}

func TestApplyModifiers_UpsetOnlyForWinner(t *testing.T) {
	underdog := elo.PlayerRating{Elo: 1200}
	favorite := elo.PlayerRating{Elo: 1400}
	ctx := elo.MatchContext{MatchFormat: "best_of_three"}

	winner := elo.ApplyModifiers(ctx, elo.SideWinner, underdog, favorite)
	assert.Greater(t, winner.Total, 1.0)
	require.Len(t, winner.Details, 1)
	assert.Equal(t, "upset", winner.Details[0].Name)

	// The favorite losing to an underdog gets no upset factor.
	loser := elo.ApplyModifiers(ctx, elo.SideLoser, favorite, underdog)
	assert.Equal(t, 1.0, loser.Total)
}

func TestApplyModifiers_Composition(t *testing.T) {
	result := elo.ApplyModifiers(
		elo.MatchContext{MatchFormat: "best_of_five", FirstEncounter: true},
		elo.SideWinner,
		elo.PlayerRating{Elo: 1100},
		elo.PlayerRating{Elo: 1300},
	)
	// format 1.2 * first encounter 1.1 * upset 1.25
	assert.InDelta(t, 1.2*1.1*1.25, result.Total, 1e-9)
	assert.Len(t, result.Details, 3)
}

func TestApplyModifiers_FormatWeighting(t *testing.T) {
	short := elo.ApplyModifiers(
		elo.MatchContext{MatchFormat: "single_set"},
		elo.SideWinner,
		elo.PlayerRating{Elo: 1200},
		elo.PlayerRating{Elo: 1200},
	)
	assert.InDelta(t, 0.5, short.Total, 1e-9)
}

func TestComputeDelta_Deterministic(t *testing.T) {
	winner := elo.PlayerRating{Elo: 1200, MatchesPlayed: 5}
	loser := elo.PlayerRating{Elo: 1300, MatchesPlayed: 40}
	ctx := elo.MatchContext{MatchFormat: "best_of_three", FirstEncounter: true}

	first := elo.ComputeDelta(winner, loser, ctx)
	second := elo.ComputeDelta(winner, loser, ctx)
	assert.Equal(t, first, second, "identical inputs must yield identical deltas")
}

func TestComputeDelta_SignsAndAsymmetry(t *testing.T) {
	// New winner (K=40) beats a long-tenured loser (K=16): magnitudes
	// differ because each side uses its own K.
	winner := elo.PlayerRating{Elo: 1200, MatchesPlayed: 3}
	loser := elo.PlayerRating{Elo: 1200, MatchesPlayed: 150}
	result := elo.ComputeDelta(winner, loser, elo.MatchContext{MatchFormat: "best_of_three"})

	assert.Positive(t, result.WinnerDelta)
	assert.Negative(t, result.LoserDelta)
	assert.NotEqual(t, result.WinnerDelta, -result.LoserDelta)
	assert.Equal(t, "New player", result.WinnerKLabel)
	assert.Equal(t, "Veteran", result.LoserKLabel)
}

func TestComputeDelta_UnderdogGainsMore(t *testing.T) {
	ctx := elo.MatchContext{MatchFormat: "best_of_three"}
	underdogWin := elo.ComputeDelta(
		elo.PlayerRating{Elo: 1100, MatchesPlayed: 50},
		elo.PlayerRating{Elo: 1400, MatchesPlayed: 50},
		ctx,
	)
	favoriteWin := elo.ComputeDelta(
		elo.PlayerRating{Elo: 1400, MatchesPlayed: 50},
		elo.PlayerRating{Elo: 1100, MatchesPlayed: 50},
		ctx,
	)
	assert.Greater(t, underdogWin.WinnerDelta, favoriteWin.WinnerDelta)
}

func TestApplyFloor(t *testing.T) {
	assert.Equal(t, elo.EloFloor, elo.ApplyFloor(40))
	assert.Equal(t, elo.EloFloor, elo.ApplyFloor(elo.EloFloor))
	assert.Equal(t, 1200, elo.ApplyFloor(1200))
}
