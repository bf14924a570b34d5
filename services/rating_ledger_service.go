package services

import (
	"matchpoint-api/models"

	"gorm.io/gorm"
)

// RatingLedgerService reads the append-only rating history. Writes happen
// only inside the resolution transaction in MatchService.
type RatingLedgerService struct {
	db *gorm.DB
}

func NewRatingLedgerService(db *gorm.DB) *RatingLedgerService {
	return &RatingLedgerService{db: db}
}

// GetPlayerHistory returns a player's rating changes, oldest first, so the
// client can draw the rating curve.
func (s *RatingLedgerService) GetPlayerHistory(playerID uint) ([]models.RatingLedgerEntry, error) {
	var entries []models.RatingLedgerEntry

	result := s.db.Where("player_id = ?", playerID).
		Order("id ASC").
		Preload("Match").
		Preload("Opponent").
		Find(&entries)

	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// GetRecentChanges returns the most recent rating changes club-wide.
func (s *RatingLedgerService) GetRecentChanges(limit int) ([]models.RatingLedgerEntry, error) {
	var entries []models.RatingLedgerEntry

	result := s.db.Order("recorded_at DESC").
		Limit(limit).
		Preload("Player").
		Preload("Match").
		Preload("Opponent").
		Find(&entries)

	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

// GetMatchEntries returns the two ledger rows of one resolved match.
func (s *RatingLedgerService) GetMatchEntries(matchID uint) ([]models.RatingLedgerEntry, error) {
	var entries []models.RatingLedgerEntry

	result := s.db.Where("match_id = ?", matchID).
		Order("id ASC").
		Find(&entries)

	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}
