package services

import (
	"fmt"
	"log"
	"time"

	"matchpoint-api/config"
	"matchpoint-api/models"
	"matchpoint-api/notify"

	"gorm.io/gorm"
)

// ValidationService is the human-facing half of the match workflow:
// the opponent confirms or rejects a report, and either participant may
// contest. All rating effects funnel through the MatchService resolution
// primitive so the exactly-once guarantee has a single owner.
type ValidationService struct {
	db           *gorm.DB
	matchService *MatchService
	badgeService *BadgeService
	notifier     notify.Notifier
	settings     config.Settings
}

func NewValidationService(db *gorm.DB, matchService *MatchService, badgeService *BadgeService, notifier notify.Notifier, settings config.Settings) *ValidationService {
	return &ValidationService{
		db:           db,
		matchService: matchService,
		badgeService: badgeService,
		notifier:     notifier,
		settings:     settings,
	}
}

// Confirm resolves a reported match on behalf of the non-reporting
// participant and applies the frozen rating change.
func (s *ValidationService) Confirm(matchID, actorID uint) (*models.Match, error) {
	match, err := s.matchService.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	if match.Validated {
		return nil, ErrAlreadyValidated
	}
	if !match.IsParticipant(actorID) {
		return nil, ErrNotParticipant
	}
	if actorID == match.ReportedBy {
		return nil, ErrIsReporter
	}

	resolved, err := s.matchService.resolveManually(match, actorID)
	if err != nil {
		return nil, err
	}

	event := notify.NewEvent(notify.EventMatchConfirmed, match.ID, match.ReportedBy)
	event.ActorID = actorID
	event.EloChange = resolved.DeltaFor(match.ReportedBy)
	event.Message = fmt.Sprintf("Your match report was confirmed (%+d ELO)", event.EloChange)
	s.notifier.Emit(event)

	s.badgeService.OnMatchResolved(match.Player1ID, match.Player2ID, match.WinnerID)

	return resolved, nil
}

// Reject deletes a reported match before it had any rating effect.
func (s *ValidationService) Reject(matchID, actorID uint) error {
	match, err := s.matchService.GetMatch(matchID)
	if err != nil {
		return err
	}
	if match.Validated {
		return ErrAlreadyValidated
	}
	if !match.IsParticipant(actorID) {
		return ErrNotParticipant
	}
	if actorID == match.ReportedBy {
		return ErrIsReporter
	}

	if err := s.matchService.rejectMatch(match); err != nil {
		return err
	}

	event := notify.NewEvent(notify.EventMatchRejected, match.ID, match.ReportedBy)
	event.ActorID = actorID
	event.Message = "Your match report was rejected by your opponent"
	s.notifier.Emit(event)

	return nil
}

// Contest flags a match as disputed. It never alters the validated flag or
// the applied rating; an administrator reviews the dispute out-of-band.
func (s *ValidationService) Contest(matchID, actorID uint, reason string) (*models.Match, error) {
	match, err := s.matchService.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	if !match.IsParticipant(actorID) {
		return nil, ErrNotParticipant
	}
	if match.Contested {
		return nil, ErrAlreadyContested
	}
	if expired, _ := s.contestWindowState(match); expired {
		return nil, ErrContestWindowExpired
	}

	count, err := s.contestsFiledThisMonth(actorID)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.settings.ContestMonthlyQuota) {
		return nil, &ContestQuotaError{Limit: s.settings.ContestMonthlyQuota}
	}

	now := time.Now()
	result := s.db.Model(&models.Match{}).
		Where("id = ? AND contested = ?", matchID, false).
		Updates(map[string]interface{}{
			"contested":      true,
			"contested_by":   actorID,
			"contested_at":   now,
			"contest_reason": reason,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrAlreadyContested
	}

	event := notify.NewEvent(notify.EventMatchContested, match.ID, match.Opponent(actorID))
	event.ActorID = actorID
	event.Message = "Your opponent has contested a match result"
	s.notifier.Emit(event)

	admins, err := s.clubAdmins(match)
	if err != nil {
		log.Printf("Error resolving club admins for match %d: %v", match.ID, err)
	} else if len(admins) > 0 {
		adminEvent := notify.NewEvent(notify.EventMatchContestedAdmin, match.ID, admins...)
		adminEvent.ActorID = actorID
		adminEvent.Message = fmt.Sprintf("Match %d was contested: %s", match.ID, reason)
		s.notifier.Emit(adminEvent)
	}

	return s.matchService.GetMatch(matchID)
}

// GetContestStatus is the read-only projection clients use to decide
// whether to offer the contest action at all.
func (s *ValidationService) GetContestStatus(matchID, actorID uint) (*models.ContestStatusResponse, error) {
	match, err := s.matchService.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	if !match.IsParticipant(actorID) {
		return nil, ErrNotParticipant
	}

	status := &models.ContestStatusResponse{
		MatchID:       match.ID,
		Contested:     match.Contested,
		ContestedBy:   match.ContestedBy,
		ContestedAt:   match.ContestedAt,
		ContestReason: match.ContestReason,
	}

	switch {
	case match.Contested:
		status.Reason = "match is already contested"
	default:
		expired, deadline := s.contestWindowState(match)
		if expired {
			status.Reason = fmt.Sprintf("contest window closed %s", deadline.Format(time.RFC3339))
		} else {
			count, err := s.contestsFiledThisMonth(actorID)
			if err != nil {
				return nil, err
			}
			if count >= int64(s.settings.ContestMonthlyQuota) {
				status.Reason = fmt.Sprintf("monthly contest limit of %d reached", s.settings.ContestMonthlyQuota)
			} else {
				status.CanContest = true
			}
		}
	}

	return status, nil
}

// ResolveContest records the administrative outcome of a dispute. It is a
// review signal only: the rating effect of the match is left untouched.
func (s *ValidationService) ResolveContest(matchID uint, resolution string) (*models.Match, error) {
	match, err := s.matchService.GetMatch(matchID)
	if err != nil {
		return nil, err
	}
	if !match.Contested {
		return nil, ErrMatchNotFound
	}

	now := time.Now()
	err = s.db.Model(&models.Match{}).
		Where("id = ? AND contested = ? AND contest_resolved_at IS NULL", matchID, true).
		Updates(map[string]interface{}{
			"contest_resolved_at": now,
			"contest_resolution":  resolution,
		}).Error
	if err != nil {
		return nil, err
	}

	return s.matchService.GetMatch(matchID)
}

// contestWindowState reports whether the contest window for a match has
// closed, and when. An unvalidated match is always inside the window.
func (s *ValidationService) contestWindowState(match *models.Match) (bool, time.Time) {
	if !match.Validated || match.ValidatedAt == nil {
		return false, time.Time{}
	}
	deadline := match.ValidatedAt.Add(s.settings.ContestWindow)
	return time.Now().After(deadline), deadline
}

func (s *ValidationService) contestsFiledThisMonth(actorID uint) (int64, error) {
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var count int64
	err := s.db.Model(&models.Match{}).
		Where("contested_by = ? AND contested_at >= ?", actorID, monthStart).
		Count(&count).Error
	return count, err
}

// clubAdmins returns the admins of the club both participants belong to.
func (s *ValidationService) clubAdmins(match *models.Match) ([]uint, error) {
	var player models.Player
	if err := s.db.First(&player, match.Player1ID).Error; err != nil {
		return nil, err
	}

	var adminIDs []uint
	err := s.db.Model(&models.Player{}).
		Where("club_id = ? AND is_admin = ?", player.ClubID, true).
		Pluck("id", &adminIDs).Error
	return adminIDs, err
}
