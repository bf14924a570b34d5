package services

import (
	"time"

	"matchpoint-api/elo"
	"matchpoint-api/models"

	"gorm.io/gorm"
)

// resolveManually flips the match to validated on behalf of a confirming
// player and applies the frozen rating snapshot. The flip is a conditional
// write: of any number of concurrent resolution attempts (either path),
// exactly one sees a row affected and applies the rating; the rest get
// ErrAlreadyValidated.
func (s *MatchService) resolveManually(match *models.Match, actorID uint) (*models.Match, error) {
	return s.resolve(match, &actorID, false)
}

// resolveAutomatically is the sweeper's resolution path. It additionally
// requires the match to be uncontested and past its deadline, re-checked
// inside the conditional write so a concurrent contest wins the race.
func (s *MatchService) resolveAutomatically(match *models.Match) (*models.Match, error) {
	return s.resolve(match, nil, true)
}

func (s *MatchService) resolve(match *models.Match, actorID *uint, auto bool) (*models.Match, error) {
	now := time.Now()

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	updates := map[string]interface{}{
		"validated":      true,
		"validated_at":   now,
		"auto_validated": auto,
	}
	if actorID != nil {
		updates["validated_by"] = *actorID
	}

	// The precondition on the current unresolved state is what makes
	// resolution exactly-once: the loser of a race affects zero rows.
	flip := tx.Model(&models.Match{}).Where("id = ? AND validated = ?", match.ID, false)
	if auto {
		flip = flip.Where("contested = ? AND auto_validate_at <= ?", false, now)
	}
	result := flip.Updates(updates)
	if result.Error != nil {
		tx.Rollback()
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return nil, ErrAlreadyValidated
	}

	if err := s.applyRatingInTransaction(tx, match); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	var resolved models.Match
	if err := s.db.Preload("Player1").Preload("Player2").Preload("Winner").First(&resolved, match.ID).Error; err != nil {
		return nil, err
	}
	return &resolved, nil
}

// applyRatingInTransaction applies the frozen snapshot deltas to both
// players, writes the two ledger rows, and maintains the win/loss counters.
// It runs strictly after the validated flip succeeded, in the same
// transaction, so either everything lands or nothing does.
func (s *MatchService) applyRatingInTransaction(tx *gorm.DB, match *models.Match) error {
	winnerID := match.WinnerID
	loserID := match.LoserID()
	winnerDelta := match.DeltaFor(winnerID)
	loserDelta := match.DeltaFor(loserID)

	if err := s.applyDelta(tx, winnerID, winnerDelta); err != nil {
		return err
	}
	if err := s.applyDelta(tx, loserID, loserDelta); err != nil {
		return err
	}

	winnerMods, loserMods := match.ModifiersApplied.Player1, match.ModifiersApplied.Player2
	winnerKLabel, loserKLabel := match.ModifiersApplied.Player1KLabel, match.ModifiersApplied.Player2KLabel
	winnerBefore, winnerAfter := match.Player1EloBefore, match.Player1EloAfter
	loserBefore, loserAfter := match.Player2EloBefore, match.Player2EloAfter
	if winnerID == match.Player2ID {
		winnerMods, loserMods = loserMods, winnerMods
		winnerKLabel, loserKLabel = loserKLabel, winnerKLabel
		winnerBefore, winnerAfter = match.Player2EloBefore, match.Player2EloAfter
		loserBefore, loserAfter = match.Player1EloBefore, match.Player1EloAfter
	}

	entries := []models.RatingLedgerEntry{
		{
			PlayerID:   winnerID,
			MatchID:    match.ID,
			EloBefore:  winnerBefore,
			EloAfter:   winnerAfter,
			Delta:      winnerDelta,
			Reason:     models.LedgerReasonWin,
			Metadata:   models.LedgerMetadata{Modifiers: winnerMods, KLabel: winnerKLabel},
			OpponentID: &loserID,
		},
		{
			PlayerID:   loserID,
			MatchID:    match.ID,
			EloBefore:  loserBefore,
			EloAfter:   loserAfter,
			Delta:      loserDelta,
			Reason:     models.LedgerReasonLoss,
			Metadata:   models.LedgerMetadata{Modifiers: loserMods, KLabel: loserKLabel},
			OpponentID: &winnerID,
		},
	}
	if err := tx.Create(&entries).Error; err != nil {
		return err
	}

	return s.updatePlayerStatsInTransaction(tx, match.Player1ID, match.Player2ID, winnerID, loserID)
}

// applyDelta shifts a player's rating atomically and clamps it at the floor
// without a read-modify-write sequence.
func (s *MatchService) applyDelta(tx *gorm.DB, playerID uint, delta int) error {
	if err := tx.Model(&models.Player{}).Where("id = ?", playerID).
		Update("current_elo", gorm.Expr("current_elo + ?", delta)).Error; err != nil {
		return err
	}
	return tx.Model(&models.Player{}).
		Where("id = ? AND current_elo < ?", playerID, elo.EloFloor).
		Update("current_elo", elo.EloFloor).Error
}

func (s *MatchService) updatePlayerStatsInTransaction(tx *gorm.DB, player1ID, player2ID, winnerID, loserID uint) error {
	if err := tx.Model(&models.Player{}).Where("id IN ?", []uint{player1ID, player2ID}).
		Update("matches_played", gorm.Expr("matches_played + 1")).Error; err != nil {
		return err
	}

	if err := tx.Model(&models.Player{}).Where("id = ?", winnerID).
		Update("wins", gorm.Expr("wins + 1")).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.Player{}).Where("id = ?", loserID).
		Update("losses", gorm.Expr("losses + 1")).Error; err != nil {
		return err
	}

	// Win streaks
	var winner models.Player
	if err := tx.First(&winner, winnerID).Error; err != nil {
		return err
	}
	newStreak := winner.CurrentWinStreak + 1
	updates := map[string]interface{}{"current_win_streak": newStreak}
	if newStreak > winner.BestWinStreak {
		updates["best_win_streak"] = newStreak
	}
	if err := tx.Model(&models.Player{}).Where("id = ?", winnerID).Updates(updates).Error; err != nil {
		return err
	}

	return tx.Model(&models.Player{}).Where("id = ?", loserID).
		Update("current_win_streak", 0).Error
}

// rejectMatch deletes an unvalidated match. The precondition guard means a
// reject racing a resolution loses cleanly instead of deleting an applied
// match.
func (s *MatchService) rejectMatch(match *models.Match) error {
	result := s.db.Where("id = ? AND validated = ?", match.ID, false).Delete(&models.Match{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyValidated
	}
	return nil
}
