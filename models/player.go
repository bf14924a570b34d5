package models

import (
	"time"

	"gorm.io/gorm"
)

type Player struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	Username         string         `gorm:"size:255;not null" json:"username"`
	ClubID           uint           `gorm:"index" json:"club_id"`
	CurrentElo       int            `gorm:"default:1200" json:"current_elo"`
	MatchesPlayed    int            `gorm:"default:0" json:"matches_played"`
	Wins             int            `gorm:"default:0" json:"wins"`
	Losses           int            `gorm:"default:0" json:"losses"`
	CurrentWinStreak int            `gorm:"default:0" json:"current_win_streak"`
	BestWinStreak    int            `gorm:"default:0" json:"best_win_streak"`
	IsAdmin          bool           `gorm:"default:false" json:"is_admin"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Player1Matches []Match              `gorm:"foreignKey:Player1ID" json:"player1_matches,omitempty"`
	Player2Matches []Match              `gorm:"foreignKey:Player2ID" json:"player2_matches,omitempty"`
	WonMatches     []Match              `gorm:"foreignKey:WinnerID" json:"won_matches,omitempty"`
	RatingHistory  []RatingLedgerEntry  `gorm:"foreignKey:PlayerID" json:"rating_history,omitempty"`
}

func (Player) TableName() string {
	return "players"
}

type PaginatedPlayersResponse struct {
	Data       []Player `json:"data"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalPages int      `json:"totalPages"`
}

type CreatePlayerRequest struct {
	Username string `json:"username" binding:"required"`
	ClubID   uint   `json:"club_id"`
}
