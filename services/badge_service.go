package services

import (
	"log"

	"matchpoint-api/models"

	"gorm.io/gorm"
)

// BadgeService awards achievement badges after match resolutions. It is a
// best-effort collaborator: failures are logged, never propagated into the
// rating workflow.
type BadgeService struct {
	db *gorm.DB
}

func NewBadgeService(db *gorm.DB) *BadgeService {
	return &BadgeService{db: db}
}

// OnMatchResolved checks both participants against the badge catalog.
// Called once per resolution (manual or automatic), never on contest.
func (s *BadgeService) OnMatchResolved(player1ID, player2ID, winnerID uint) {
	for _, playerID := range []uint{player1ID, player2ID} {
		if err := s.checkPlayer(playerID); err != nil {
			log.Printf("Badge check failed for player %d: %v", playerID, err)
		}
	}
}

func (s *BadgeService) checkPlayer(playerID uint) error {
	var player models.Player
	if err := s.db.First(&player, playerID).Error; err != nil {
		return err
	}

	for _, trigger := range models.BadgeTriggers {
		if !meetsThreshold(&player, trigger.Threshold) {
			continue
		}

		var count int64
		if err := s.db.Model(&models.PlayerBadge{}).
			Where("player_id = ? AND badge_id = ?", playerID, trigger.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		badge := models.PlayerBadge{PlayerID: playerID, BadgeID: trigger.ID}
		if err := s.db.Create(&badge).Error; err != nil {
			return err
		}
		log.Printf("Badge awarded: %s -> player %d", trigger.Name, playerID)
	}

	return nil
}

func meetsThreshold(player *models.Player, threshold map[string]int) bool {
	for key, required := range threshold {
		switch key {
		case "wins":
			if player.Wins < required {
				return false
			}
		case "matches_played":
			if player.MatchesPlayed < required {
				return false
			}
		case "current_elo":
			if player.CurrentElo < required {
				return false
			}
		case "current_win_streak":
			if player.CurrentWinStreak < required {
				return false
			}
		}
	}
	return true
}

// GetPlayerBadges lists the badges a player has earned.
func (s *BadgeService) GetPlayerBadges(playerID uint) ([]models.PlayerBadge, error) {
	var badges []models.PlayerBadge
	err := s.db.Where("player_id = ?", playerID).Order("awarded_at ASC").Find(&badges).Error
	return badges, err
}
