package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"matchpoint-api/elo"
)

// MatchModifiers is the per-player modifier breakdown frozen at report time,
// stored as JSONB so the rating breakdown shown to users is reproduced from
// what was actually applied, not recomputed from live state.
type MatchModifiers struct {
	Player1       elo.ModifierResult `json:"player1"`
	Player2       elo.ModifierResult `json:"player2"`
	Player1KLabel string             `json:"player1_k_label,omitempty"`
	Player2KLabel string             `json:"player2_k_label,omitempty"`
}

// Implements driver.Valuer for GORM
func (m MatchModifiers) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Implements sql.Scanner for GORM
func (m *MatchModifiers) Scan(value interface{}) error {
	if value == nil {
		*m = MatchModifiers{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for MatchModifiers")
	}
}

// MatchState is the explicit lifecycle state derived from the persisted
// flags. Contested is an orthogonal overlay, not a state of its own.
type MatchState string

const (
	StateReported      MatchState = "reported"
	StateValidated     MatchState = "validated"
	StateAutoValidated MatchState = "auto_validated"
)

// Match is a reported result between two players. The ELO snapshot is fixed
// at creation and applied exactly once, by whichever resolution path wins.
// No soft delete: a rejected match is gone, with no rating effect to keep.
type Match struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Player1ID   uint   `gorm:"not null;constraint:OnDelete:CASCADE" json:"player1_id"`
	Player2ID   uint   `gorm:"not null;constraint:OnDelete:CASCADE" json:"player2_id"`
	WinnerID    uint   `gorm:"not null;constraint:OnDelete:CASCADE" json:"winner_id"`
	Score       string `gorm:"size:50" json:"score"`
	MatchFormat string `gorm:"size:20;default:best_of_three" json:"match_format"`
	ReportedBy  uint   `gorm:"not null" json:"reported_by"`

	// Rating snapshot, frozen at report time.
	Player1EloBefore int            `gorm:"not null" json:"player1_elo_before"`
	Player1EloAfter  int            `gorm:"not null" json:"player1_elo_after"`
	Player2EloBefore int            `gorm:"not null" json:"player2_elo_before"`
	Player2EloAfter  int            `gorm:"not null" json:"player2_elo_after"`
	ModifiersApplied MatchModifiers `gorm:"type:jsonb" json:"modifiers_applied"`

	// Lifecycle flags. Validated is monotonic: it never returns to false.
	Validated      bool       `gorm:"default:false" json:"validated"`
	ValidatedAt    *time.Time `json:"validated_at"`
	ValidatedBy    *uint      `json:"validated_by"`
	AutoValidated  bool       `gorm:"default:false" json:"auto_validated"`
	AutoValidateAt time.Time  `gorm:"not null" json:"auto_validate_at"`

	// Dispute overlay. Set at most once; never undoes the rating effect.
	Contested         bool       `gorm:"default:false" json:"contested"`
	ContestedBy       *uint      `json:"contested_by"`
	ContestedAt       *time.Time `json:"contested_at"`
	ContestReason     string     `gorm:"size:500" json:"contest_reason,omitempty"`
	ContestResolvedAt *time.Time `json:"contest_resolved_at"`
	ContestResolution string     `gorm:"size:500" json:"contest_resolution,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Player1 Player `gorm:"foreignKey:Player1ID;references:ID" json:"player1,omitempty"`
	Player2 Player `gorm:"foreignKey:Player2ID;references:ID" json:"player2,omitempty"`
	Winner  Player `gorm:"foreignKey:WinnerID;references:ID" json:"winner,omitempty"`
}

func (Match) TableName() string {
	return "matches"
}

// State derives the explicit lifecycle state from the persisted flags.
func (m *Match) State() MatchState {
	switch {
	case m.Validated && m.AutoValidated:
		return StateAutoValidated
	case m.Validated:
		return StateValidated
	default:
		return StateReported
	}
}

// IsParticipant reports whether the given player is one of the two parties.
func (m *Match) IsParticipant(playerID uint) bool {
	return playerID == m.Player1ID || playerID == m.Player2ID
}

// Opponent returns the other party. Callers must have checked participation.
func (m *Match) Opponent(playerID uint) uint {
	if playerID == m.Player1ID {
		return m.Player2ID
	}
	return m.Player1ID
}

// LoserID returns the party that did not win.
func (m *Match) LoserID() uint {
	if m.WinnerID == m.Player1ID {
		return m.Player2ID
	}
	return m.Player1ID
}

// DeltaFor returns the frozen rating change for one of the parties.
func (m *Match) DeltaFor(playerID uint) int {
	if playerID == m.Player1ID {
		return m.Player1EloAfter - m.Player1EloBefore
	}
	return m.Player2EloAfter - m.Player2EloBefore
}

type PaginatedMatchResponse struct {
	Data       []Match `json:"data"`
	Total      int64   `json:"total"`
	Page       int     `json:"page"`
	PageSize   int     `json:"pageSize"`
	TotalPages int     `json:"totalPages"`
}

type ReportMatchRequest struct {
	Player1ID   uint   `json:"player1_id" binding:"required"`
	Player2ID   uint   `json:"player2_id" binding:"required"`
	WinnerID    uint   `json:"winner_id" binding:"required"`
	Score       string `json:"score"`
	MatchFormat string `json:"match_format" binding:"omitempty,oneof=single_set pro_set best_of_three best_of_five"`
}

type ContestMatchRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

type ResolveContestRequest struct {
	Resolution string `json:"resolution" binding:"required,max=500"`
}

type ContestStatusResponse struct {
	MatchID       uint       `json:"match_id"`
	Contested     bool       `json:"contested"`
	ContestedBy   *uint      `json:"contested_by,omitempty"`
	ContestedAt   *time.Time `json:"contested_at,omitempty"`
	ContestReason string     `json:"contest_reason,omitempty"`
	CanContest    bool       `json:"can_contest"`
	Reason        string     `json:"reason,omitempty"`
}

// RatingBreakdownResponse reproduces the stored modifier snapshot for one
// match, surfaced to users as the explanation of their rating change.
type RatingBreakdownResponse struct {
	MatchID          uint           `json:"match_id"`
	Player1ID        uint           `json:"player1_id"`
	Player2ID        uint           `json:"player2_id"`
	Player1EloBefore int            `json:"player1_elo_before"`
	Player1EloAfter  int            `json:"player1_elo_after"`
	Player2EloBefore int            `json:"player2_elo_before"`
	Player2EloAfter  int            `json:"player2_elo_after"`
	ModifiersApplied MatchModifiers `json:"modifiers_applied"`
}
