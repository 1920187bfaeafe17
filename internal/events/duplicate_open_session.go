package events

import "time"

const CheckinAnomalyTopic = "gym.checkin.anomaly.v1"

// DuplicateOpenSessionEvent is emitted when a reconcile finds more than one
// open session for a member. The newest session is the one acted on; the
// older rows listed here need operator cleanup.
type DuplicateOpenSessionEvent struct {
	EventType          string    `json:"event_type"`
	RequestID          string    `json:"request_id,omitempty"`
	GymID              string    `json:"gym_id"`
	MemberID           string    `json:"member_id"`
	KeptSessionID      string    `json:"kept_session_id"`
	OrphanedSessionIDs []string  `json:"orphaned_session_ids"`
	OccurredAt         time.Time `json:"occurred_at"`
}
