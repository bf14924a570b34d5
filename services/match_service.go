package services

import (
	"errors"
	"time"

	"matchpoint-api/config"
	"matchpoint-api/elo"
	"matchpoint-api/models"

	"gorm.io/gorm"
)

type MatchService struct {
	db       *gorm.DB
	settings config.Settings
}

func NewMatchService(db *gorm.DB, settings config.Settings) *MatchService {
	return &MatchService{
		db:       db,
		settings: settings,
	}
}

// ReportMatch creates a match in the reported state with the rating change
// already computed and frozen on both sides, but not applied. Application
// happens exactly once, at resolution.
func (s *MatchService) ReportMatch(req models.ReportMatchRequest, reporterID uint) (*models.Match, error) {
	var player1, player2 models.Player
	if err := s.db.First(&player1, req.Player1ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	if err := s.db.First(&player2, req.Player2ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}

	if req.Player1ID == req.Player2ID {
		return nil, errors.New("player1 and player2 must be different")
	}
	if req.WinnerID != req.Player1ID && req.WinnerID != req.Player2ID {
		return nil, errors.New("winner must be either player1 or player2")
	}
	if reporterID != req.Player1ID && reporterID != req.Player2ID {
		return nil, ErrNotParticipant
	}

	matchFormat := req.MatchFormat
	if matchFormat == "" {
		matchFormat = "best_of_three"
	}

	firstEncounter, err := s.isFirstEncounter(req.Player1ID, req.Player2ID)
	if err != nil {
		return nil, err
	}

	winner, loser := player1, player2
	if req.WinnerID == player2.ID {
		winner, loser = player2, player1
	}

	delta := elo.ComputeDelta(
		elo.PlayerRating{Elo: winner.CurrentElo, MatchesPlayed: winner.MatchesPlayed},
		elo.PlayerRating{Elo: loser.CurrentElo, MatchesPlayed: loser.MatchesPlayed},
		elo.MatchContext{MatchFormat: matchFormat, FirstEncounter: firstEncounter},
	)

	winnerAfter := elo.ApplyFloor(winner.CurrentElo + delta.WinnerDelta)
	loserAfter := elo.ApplyFloor(loser.CurrentElo + delta.LoserDelta)

	now := time.Now()
	match := models.Match{
		Player1ID:      req.Player1ID,
		Player2ID:      req.Player2ID,
		WinnerID:       req.WinnerID,
		Score:          req.Score,
		MatchFormat:    matchFormat,
		ReportedBy:     reporterID,
		AutoValidateAt: now.Add(s.settings.AutoValidateAfter),
	}

	if req.WinnerID == req.Player1ID {
		match.Player1EloBefore = winner.CurrentElo
		match.Player1EloAfter = winnerAfter
		match.Player2EloBefore = loser.CurrentElo
		match.Player2EloAfter = loserAfter
		match.ModifiersApplied = models.MatchModifiers{
			Player1:       delta.WinnerModifiers,
			Player2:       delta.LoserModifiers,
			Player1KLabel: delta.WinnerKLabel,
			Player2KLabel: delta.LoserKLabel,
		}
	} else {
		match.Player1EloBefore = loser.CurrentElo
		match.Player1EloAfter = loserAfter
		match.Player2EloBefore = winner.CurrentElo
		match.Player2EloAfter = winnerAfter
		match.ModifiersApplied = models.MatchModifiers{
			Player1:       delta.LoserModifiers,
			Player2:       delta.WinnerModifiers,
			Player1KLabel: delta.LoserKLabel,
			Player2KLabel: delta.WinnerKLabel,
		}
	}

	if err := s.db.Create(&match).Error; err != nil {
		return nil, err
	}

	return &match, nil
}

// isFirstEncounter reports whether the two players have no resolved match
// between them yet. Pending reports do not count: they may still be
// rejected.
func (s *MatchService) isFirstEncounter(player1ID, player2ID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.Match{}).
		Where("validated = ?", true).
		Where("(player1_id = ? AND player2_id = ?) OR (player1_id = ? AND player2_id = ?)",
			player1ID, player2ID, player2ID, player1ID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// GetMatch loads one match by id.
func (s *MatchService) GetMatch(matchID uint) (*models.Match, error) {
	var match models.Match
	if err := s.db.First(&match, matchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &match, nil
}

// GetRecentMatches retrieves the N most recent matches.
func (s *MatchService) GetRecentMatches(limit int) ([]models.Match, error) {
	var matches []models.Match

	result := s.db.Order("created_at DESC").
		Limit(limit).
		Preload("Player1").
		Preload("Player2").
		Preload("Winner").
		Find(&matches)

	if result.Error != nil {
		return nil, result.Error
	}

	return matches, nil
}

type MatchFilters struct {
	Page      int
	PerPage   int
	PlayerID  *uint
	Validated *bool
	Contested *bool
}

// GetMatches returns a filtered, paginated match listing.
func (s *MatchService) GetMatches(filters MatchFilters) (*models.PaginatedMatchResponse, error) {
	query := s.db.Model(&models.Match{})

	if filters.PlayerID != nil {
		query = query.Where("player1_id = ? OR player2_id = ?", *filters.PlayerID, *filters.PlayerID)
	}
	if filters.Validated != nil {
		query = query.Where("validated = ?", *filters.Validated)
	}
	if filters.Contested != nil {
		query = query.Where("contested = ?", *filters.Contested)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var matches []models.Match
	offset := (filters.Page - 1) * filters.PerPage
	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(filters.PerPage).
		Preload("Player1").
		Preload("Player2").
		Preload("Winner").
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filters.PerPage) - 1) / int64(filters.PerPage))

	return &models.PaginatedMatchResponse{
		Data:       matches,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PerPage,
		TotalPages: totalPages,
	}, nil
}

// GetRatingBreakdown reproduces the stored modifier snapshot for a match.
func (s *MatchService) GetRatingBreakdown(matchID uint) (*models.RatingBreakdownResponse, error) {
	match, err := s.GetMatch(matchID)
	if err != nil {
		return nil, err
	}

	return &models.RatingBreakdownResponse{
		MatchID:          match.ID,
		Player1ID:        match.Player1ID,
		Player2ID:        match.Player2ID,
		Player1EloBefore: match.Player1EloBefore,
		Player1EloAfter:  match.Player1EloAfter,
		Player2EloBefore: match.Player2EloBefore,
		Player2EloAfter:  match.Player2EloAfter,
		ModifiersApplied: match.ModifiersApplied,
	}, nil
}
