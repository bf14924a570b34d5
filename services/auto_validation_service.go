package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"matchpoint-api/models"
	"matchpoint-api/notify"

	"gorm.io/gorm"
)

// AutoValidationService resolves matches whose confirmation deadline passed
// without an answer from the opponent. It shares the resolution primitive
// with the manual path, so running it concurrently with a manual confirm
// (or with itself) cannot double-apply a rating.
type AutoValidationService struct {
	db           *gorm.DB
	matchService *MatchService
	badgeService *BadgeService
	notifier     notify.Notifier
}

func NewAutoValidationService(db *gorm.DB, matchService *MatchService, badgeService *BadgeService, notifier notify.Notifier) *AutoValidationService {
	return &AutoValidationService{
		db:           db,
		matchService: matchService,
		badgeService: badgeService,
		notifier:     notifier,
	}
}

// SweepError records one match the sweep could not resolve.
type SweepError struct {
	MatchID uint   `json:"match_id"`
	Error   string `json:"error"`
}

// SweepReport is the only externally visible contract of a sweep run.
type SweepReport struct {
	Found    int          `json:"found"`
	Resolved int          `json:"resolved"`
	Skipped  int          `json:"skipped"`
	Errors   []SweepError `json:"errors,omitempty"`
}

// RunSweep finds every match past its deadline that is neither validated
// nor contested and resolves each one independently. Per-match failures go
// into the report; they never abort the batch. The context is checked
// between matches so shutdown can interrupt a run; no progress is kept in
// memory, the next run resumes from DB state.
func (s *AutoValidationService) RunSweep(ctx context.Context) (*SweepReport, error) {
	now := time.Now()

	var expired []models.Match
	result := s.db.Where("validated = ? AND contested = ? AND auto_validate_at <= ?", false, false, now).
		Find(&expired)
	if result.Error != nil {
		log.Printf("Error finding expired matches: %v", result.Error)
		return nil, result.Error
	}

	report := &SweepReport{Found: len(expired)}
	if report.Found == 0 {
		return report, nil
	}

	log.Printf("Found %d expired matches to auto-validate", report.Found)

	for i := range expired {
		match := &expired[i]

		select {
		case <-ctx.Done():
			log.Printf("Sweep aborted after %d/%d matches: %v", i, report.Found, ctx.Err())
			return report, ctx.Err()
		default:
		}

		resolved, err := s.matchService.resolveAutomatically(match)
		if err != nil {
			// A lost race with a manual confirm or an overlapping sweep
			// is the expected no-op, not a failure.
			if errors.Is(err, ErrAlreadyValidated) {
				report.Skipped++
				continue
			}
			log.Printf("Error auto-validating match %d: %v", match.ID, err)
			report.Errors = append(report.Errors, SweepError{MatchID: match.ID, Error: err.Error()})
			continue
		}

		report.Resolved++
		s.notifyAutoValidated(resolved)
		s.badgeService.OnMatchResolved(match.Player1ID, match.Player2ID, match.WinnerID)
	}

	log.Printf("Sweep complete: found=%d resolved=%d skipped=%d errors=%d",
		report.Found, report.Resolved, report.Skipped, len(report.Errors))

	return report, nil
}

func (s *AutoValidationService) notifyAutoValidated(match *models.Match) {
	for _, playerID := range []uint{match.Player1ID, match.Player2ID} {
		event := notify.NewEvent(notify.EventMatchAutoValidated, match.ID, playerID)
		event.EloChange = match.DeltaFor(playerID)
		event.Message = fmt.Sprintf("Match auto-validated after the confirmation deadline (%+d ELO)", event.EloChange)
		s.notifier.Emit(event)
	}
}

// GetPendingMatchesCount returns the number of unresolved matches.
func (s *AutoValidationService) GetPendingMatchesCount() (int64, error) {
	var count int64
	result := s.db.Model(&models.Match{}).Where("validated = ?", false).Count(&count)
	return count, result.Error
}

// GetExpiredMatchesCount returns the number of unresolved matches past
// their deadline and eligible for the next sweep.
func (s *AutoValidationService) GetExpiredMatchesCount() (int64, error) {
	var count int64
	result := s.db.Model(&models.Match{}).
		Where("validated = ? AND contested = ? AND auto_validate_at <= ?", false, false, time.Now()).
		Count(&count)
	return count, result.Error
}
