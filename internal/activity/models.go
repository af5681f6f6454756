package activity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventSeatsSuggested        EventType = "seats.suggested"
	EventRecommendationsServed EventType = "recommendations.served"
)

// Event is one record on the activity topic.
type Event struct {
	ID         uuid.UUID              `json:"id"`
	Type       EventType              `json:"type"`
	SubjectID  uuid.UUID              `json:"subject_id"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

func NewEvent(eventType EventType, subjectID uuid.UUID, payload map[string]interface{}) *Event {
	return &Event{
		ID:         uuid.New(),
		Type:       eventType,
		SubjectID:  subjectID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// PartitionKey keeps every event of one session or customer on the same partition.
func (e *Event) PartitionKey() string {
	return e.SubjectID.String()
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// SeatsSuggested builds the event emitted after a seat suggestion.
func SeatsSuggested(sessionID uuid.UUID, requested, suggested int) *Event {
	return NewEvent(EventSeatsSuggested, sessionID, map[string]interface{}{
		"requested": requested,
		"suggested": suggested,
	})
}

// RecommendationsServed builds the event emitted after a recommendation read.
func RecommendationsServed(customerID uuid.UUID, movieIDs []uuid.UUID) *Event {
	return NewEvent(EventRecommendationsServed, customerID, map[string]interface{}{
		"movie_ids": movieIDs,
	})
}
