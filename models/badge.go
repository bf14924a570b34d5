package models

import "time"

// BadgeTrigger is one entry of the static badge catalog. Thresholds are
// checked against a player's aggregate after each resolved match.
type BadgeTrigger struct {
	ID        string
	Name      string
	Threshold map[string]int
}

// BadgeTriggers is the catalog checked by the badge service after every
// match resolution.
var BadgeTriggers = []BadgeTrigger{
	{ID: "first_win", Name: "First Win", Threshold: map[string]int{"wins": 1}},
	{ID: "ten_matches", Name: "Regular", Threshold: map[string]int{"matches_played": 10}},
	{ID: "fifty_matches", Name: "Club Fixture", Threshold: map[string]int{"matches_played": 50}},
	{ID: "elo_1400", Name: "Contender", Threshold: map[string]int{"current_elo": 1400}},
	{ID: "elo_1600", Name: "Club Champion", Threshold: map[string]int{"current_elo": 1600}},
	{ID: "streak_3", Name: "On a Roll", Threshold: map[string]int{"current_win_streak": 3}},
}

// PlayerBadge records that a badge was awarded. One row per player/badge.
type PlayerBadge struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PlayerID  uint      `gorm:"not null;index;uniqueIndex:idx_player_badge" json:"player_id"`
	BadgeID   string    `gorm:"size:50;not null;uniqueIndex:idx_player_badge" json:"badge_id"`
	AwardedAt time.Time `gorm:"autoCreateTime" json:"awarded_at"`
}

func (PlayerBadge) TableName() string {
	return "player_badges"
}
