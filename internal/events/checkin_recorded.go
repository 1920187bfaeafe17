package events

import "time"

const CheckinRecordedTopic = "gym.checkin.recorded.v1"

const (
	CheckinActionCheckedIn  = "checked_in"
	CheckinActionCheckedOut = "checked_out"
)

type CheckinRecordedEvent struct {
	EventType       string    `json:"event_type"`
	RequestID       string    `json:"request_id,omitempty"`
	SessionID       string    `json:"session_id"`
	GymID           string    `json:"gym_id"`
	MemberID        string    `json:"member_id"`
	Action          string    `json:"action"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
