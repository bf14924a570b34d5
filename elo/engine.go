package elo

import "math"

// EloFloor is the minimum rating a player can hold. Deltas that would push a
// player below it are clamped at apply time.
const EloFloor = 100

// PlayerRating is the slice of a player the engine needs. It is deliberately
// detached from the persisted Player model so the engine stays free of I/O.
type PlayerRating struct {
	Elo           int
	MatchesPlayed int
}

// KBand is one step of the K-factor policy. Bands must be ordered by
// ascending MaxMatches; K must not increase from one band to the next.
type KBand struct {
	MaxMatches int // exclusive upper bound, -1 for the open last band
	K          float64
	Label      string
}

// DefaultKPolicy gives new players a fast-moving rating and slows it down as
// experience accumulates. Breakpoints are policy, not law.
var DefaultKPolicy = []KBand{
	{MaxMatches: 10, K: 40, Label: "New player"},
	{MaxMatches: 30, K: 32, Label: "Rising"},
	{MaxMatches: 100, K: 24, Label: "Established"},
	{MaxMatches: -1, K: 16, Label: "Veteran"},
}

// ExpectedScore returns the win probability of a rating against b under the
// classic ELO model. ExpectedScore(a,b) + ExpectedScore(b,a) == 1.
func ExpectedScore(a, b int) float64 {
	return 1.0 / (1.0 + math.Pow(10, float64(b-a)/400.0))
}

// KFactor returns the K value and the human-readable band label for a player
// with the given number of played matches.
func KFactor(matchesPlayed int) (float64, string) {
	return kFactorFrom(DefaultKPolicy, matchesPlayed)
}

func kFactorFrom(policy []KBand, matchesPlayed int) (float64, string) {
	for _, band := range policy {
		if band.MaxMatches < 0 || matchesPlayed < band.MaxMatches {
			return band.K, band.Label
		}
	}
	// Policy tables always end with an open band; fall back to the last one.
	last := policy[len(policy)-1]
	return last.K, last.Label
}

// DeltaResult carries both sides of a computed rating change together with
// the modifier breakdown that produced it. Magnitudes are not required to be
// equal: each side uses its own K-factor and modifiers.
type DeltaResult struct {
	WinnerDelta     int
	LoserDelta      int
	WinnerModifiers ModifierResult
	LoserModifiers  ModifierResult
	WinnerKLabel    string
	LoserKLabel     string
}

// ComputeDelta computes the frozen rating change for a reported match.
// Pure and deterministic: identical inputs always yield identical outputs,
// which is what allows the result to be snapshotted at report time and
// applied unchanged at resolution time.
func ComputeDelta(winner, loser PlayerRating, ctx MatchContext) DeltaResult {
	winExpected := ExpectedScore(winner.Elo, loser.Elo)
	loseExpected := ExpectedScore(loser.Elo, winner.Elo)

	winK, winLabel := KFactor(winner.MatchesPlayed)
	loseK, loseLabel := KFactor(loser.MatchesPlayed)

	winMods := ApplyModifiers(ctx, SideWinner, winner, loser)
	loseMods := ApplyModifiers(ctx, SideLoser, loser, winner)

	winnerDelta := int(math.Round(winK * winMods.Total * (1.0 - winExpected)))
	loserDelta := int(math.Round(loseK * loseMods.Total * (0.0 - loseExpected)))

	return DeltaResult{
		WinnerDelta:     winnerDelta,
		LoserDelta:      loserDelta,
		WinnerModifiers: winMods,
		LoserModifiers:  loseMods,
		WinnerKLabel:    winLabel,
		LoserKLabel:     loseLabel,
	}
}

// ApplyFloor clamps a prospective rating at the floor.
func ApplyFloor(elo int) int {
	if elo < EloFloor {
		return EloFloor
	}
	return elo
}
