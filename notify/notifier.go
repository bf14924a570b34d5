// Package notify defines the outbound notification contract of the match
// validation core. The core only produces structured events; delivery
// (push, in-app, chat) belongs to whatever implementation is plugged in.
package notify

import (
	"log"

	"github.com/google/uuid"
)

type EventType string

const (
	EventMatchConfirmed      EventType = "match_confirmed"
	EventMatchRejected       EventType = "match_rejected"
	EventMatchContested      EventType = "match_contested"
	EventMatchContestedAdmin EventType = "match_contested_admin"
	EventMatchAutoValidated  EventType = "match_auto_validated"
)

// Event is one notification produced by the core. EloChange is only set on
// events that carry a rating effect.
type Event struct {
	ID         uuid.UUID
	Type       EventType
	MatchID    uint
	ActorID    uint
	Recipients []uint
	EloChange  int
	Message    string
}

// NewEvent assigns a fresh event id so downstream delivery can deduplicate.
func NewEvent(t EventType, matchID uint, recipients ...uint) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		MatchID:    matchID,
		Recipients: recipients,
	}
}

// Notifier receives events fire-and-forget. Implementations must not block
// the caller and must never propagate delivery failures back into the
// rating workflow.
type Notifier interface {
	Emit(event Event)
}

// LogNotifier writes events to the process log. It is the default sink in
// development and the fallback when no push provider is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Emit(event Event) {
	log.Printf("notify: event=%s id=%s match=%d recipients=%v elo_change=%d",
		event.Type, event.ID, event.MatchID, event.Recipients, event.EloChange)
}
