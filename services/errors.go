package services

import (
	"errors"
	"fmt"
)

// Closed error set for the validation workflow. Handlers map these to HTTP
// statuses; services never return stringly-typed failures for these cases.
var (
	ErrMatchNotFound        = errors.New("match not found")
	ErrPlayerNotFound       = errors.New("player not found")
	ErrAlreadyValidated     = errors.New("match is already validated")
	ErrNotParticipant       = errors.New("player is not a participant of this match")
	ErrIsReporter           = errors.New("reporter cannot confirm their own report")
	ErrAlreadyContested     = errors.New("match is already contested")
	ErrContestWindowExpired = errors.New("contest window has expired")
	ErrContestQuotaExceeded = errors.New("contest quota exceeded")
)

// ContestQuotaError carries the monthly cap so the caller sees the limit it
// ran into. Unwraps to ErrContestQuotaExceeded.
type ContestQuotaError struct {
	Limit int
}

func (e *ContestQuotaError) Error() string {
	return fmt.Sprintf("contest quota exceeded: at most %d contests per month", e.Limit)
}

func (e *ContestQuotaError) Unwrap() error {
	return ErrContestQuotaExceeded
}
