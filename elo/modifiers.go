package elo

// Side distinguishes which side of the match a modifier pipeline is being
// evaluated for, since some modifiers only apply to the winner.
type Side int

const (
	SideWinner Side = iota
	SideLoser
)

// MatchContext carries the facts about a reported match that modifiers look
// at. It is assembled by the caller from live state at report time; the
// resulting breakdown is stored with the match so it never needs to be
// recomputed from state that has since moved on.
type MatchContext struct {
	MatchFormat    string
	FirstEncounter bool // the two players have never had a resolved match
}

// ModifierDetail names one contributing factor of the final multiplier.
type ModifierDetail struct {
	Name   string  `json:"name"`
	Factor float64 `json:"factor"`
}

// ModifierResult is the composed multiplier plus its audit breakdown.
// Total is 1.0 when no modifier fires.
type ModifierResult struct {
	Total   float64          `json:"total"`
	Details []ModifierDetail `json:"details,omitempty"`
}

// Match format weights. Shorter formats move the rating less.
var formatWeights = map[string]float64{
	"single_set":    0.5,
	"pro_set":       0.75,
	"best_of_three": 1.0,
	"best_of_five":  1.2,
}

const (
	firstEncounterBonus = 1.1
	upsetBonus          = 1.25
	upsetThreshold      = 150
)

// ApplyModifiers runs the multiplier pipeline for one side of a match.
// self/opponent are the ratings of the side being evaluated and the other
// side respectively.
func ApplyModifiers(ctx MatchContext, side Side, self, opponent PlayerRating) ModifierResult {
	result := ModifierResult{Total: 1.0}

	if w, ok := formatWeights[ctx.MatchFormat]; ok && w != 1.0 {
		result.apply("match_format", w)
	}

	if ctx.FirstEncounter {
		result.apply("first_encounter", firstEncounterBonus)
	}

	// Upset bonus rewards a winner rated well below the loser.
	if side == SideWinner && opponent.Elo-self.Elo >= upsetThreshold {
		result.apply("upset", upsetBonus)
	}

	return result
}

func (r *ModifierResult) apply(name string, factor float64) {
	r.Total *= factor
	r.Details = append(r.Details, ModifierDetail{Name: name, Factor: factor})
}
