package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"matchpoint-api/elo"
)

const (
	LedgerReasonWin  = "match_win"
	LedgerReasonLoss = "match_loss"
)

// LedgerMetadata is the modifier snapshot recorded with each entry so the
// breakdown stays reproducible after player state has moved on.
type LedgerMetadata struct {
	Modifiers elo.ModifierResult `json:"modifiers"`
	KLabel    string             `json:"k_label,omitempty"`
}

// Implements driver.Valuer for GORM
func (m LedgerMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Implements sql.Scanner for GORM
func (m *LedgerMetadata) Scan(value interface{}) error {
	if value == nil {
		*m = LedgerMetadata{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for LedgerMetadata")
	}
}

// RatingLedgerEntry is one player's rating change from one resolved match.
// Entries are append-only: exactly two per resolved match, never mutated.
type RatingLedgerEntry struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID   uint           `gorm:"not null;index" json:"player_id"`
	MatchID    uint           `gorm:"not null;index" json:"match_id"`
	EloBefore  int            `gorm:"not null" json:"elo_before"`
	EloAfter   int            `gorm:"not null" json:"elo_after"`
	Delta      int            `gorm:"not null" json:"delta"`
	Reason     string         `gorm:"size:20;not null" json:"reason"` // match_win or match_loss
	Metadata   LedgerMetadata `gorm:"type:jsonb" json:"metadata"`
	OpponentID *uint          `json:"opponent_id"`
	RecordedAt time.Time      `gorm:"autoCreateTime" json:"recorded_at"`

	// Relationships
	Player   Player  `gorm:"foreignKey:PlayerID;references:ID" json:"player,omitempty"`
	Match    Match   `gorm:"foreignKey:MatchID;references:ID" json:"match,omitempty"`
	Opponent *Player `gorm:"foreignKey:OpponentID;references:ID" json:"opponent,omitempty"`
}

func (RatingLedgerEntry) TableName() string {
	return "rating_ledger"
}
