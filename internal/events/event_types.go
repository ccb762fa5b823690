package events

import (
	"time"

	"github.com/talentdesk/candidate-tracker/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventCandidateCreated EventType = "candidate_created"
	EventCandidateUpdated EventType = "candidate_updated"
	EventCandidateDeleted EventType = "candidate_deleted"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	CandidateID string      `json:"candidate_id"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// CandidateCreatedPayload payload.
type CandidateCreatedPayload struct {
	Name   string                 `json:"name"`
	Area   domain.Area            `json:"area"`
	Status domain.CandidateStatus `json:"status"`
}

// CandidateUpdatedPayload payload.
type CandidateUpdatedPayload struct {
	OldStatus domain.CandidateStatus `json:"old_status"`
	NewStatus domain.CandidateStatus `json:"new_status"`
	OldArea   domain.Area            `json:"old_area"`
	NewArea   domain.Area            `json:"new_area"`
}

// CandidateDeletedPayload payload.
type CandidateDeletedPayload struct {
	Name string `json:"name"`
}
