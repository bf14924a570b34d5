package services

import (
	"errors"

	"matchpoint-api/models"

	"gorm.io/gorm"
)

type PlayerService struct {
	db *gorm.DB
}

func NewPlayerService(db *gorm.DB) *PlayerService {
	return &PlayerService{db: db}
}

func (s *PlayerService) GetPlayerByID(id uint) (*models.Player, error) {
	var player models.Player

	result := s.db.First(&player, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, result.Error
	}

	return &player, nil
}

func (s *PlayerService) CreatePlayer(req models.CreatePlayerRequest) (*models.Player, error) {
	player := &models.Player{
		Username:   req.Username,
		ClubID:     req.ClubID,
		CurrentElo: 1200,
	}

	result := s.db.Create(player)
	if result.Error != nil {
		return nil, result.Error
	}

	return player, nil
}

func (s *PlayerService) GetTopPlayersByElo(limit int) ([]models.Player, error) {
	var players []models.Player

	result := s.db.Order("current_elo DESC").
		Limit(limit).
		Find(&players)

	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

func (s *PlayerService) GetAllPlayers(page, perPage int) (*models.PaginatedPlayersResponse, error) {
	var total int64
	if err := s.db.Model(&models.Player{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var players []models.Player
	offset := (page - 1) * perPage
	err := s.db.Order("current_elo DESC").
		Offset(offset).
		Limit(perPage).
		Find(&players).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return &models.PaginatedPlayersResponse{
		Data:       players,
		Total:      total,
		Page:       page,
		PageSize:   perPage,
		TotalPages: totalPages,
	}, nil
}

func (s *PlayerService) GetPlayerMatches(playerID uint, limit int) ([]models.Match, error) {
	var matches []models.Match

	result := s.db.Where("player1_id = ? OR player2_id = ?", playerID, playerID).
		Order("created_at DESC").
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
