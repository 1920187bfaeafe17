package attendance

type ScanRequest struct {
	Code string `json:"code" binding:"required"`
}

type ManualRequest struct {
	MemberID string `json:"member_id" binding:"required,uuid"`
}

// SessionOutcome describes what a reconcile did: opened a new session or
// closed the newest open one. OrphanedSessionIDs lists older open rows that
// were found but deliberately left untouched.
type SessionOutcome struct {
	Action             string   `json:"action"`
	SessionID          string   `json:"session_id"`
	GymID              string   `json:"gym_id"`
	MemberID           string   `json:"member_id"`
	OpenedAt           string   `json:"opened_at"`
	ClosedAt           *string  `json:"closed_at,omitempty"`
	DurationMinutes    *int     `json:"duration_minutes,omitempty"`
	OrphanedSessionIDs []string `json:"orphaned_session_ids,omitempty"`
}

type SessionResponse struct {
	ID              string  `json:"id"`
	GymID           string  `json:"gym_id"`
	MemberID        string  `json:"member_id"`
	MemberName      string  `json:"member_name,omitempty"`
	CheckIn         string  `json:"check_in"`
	CheckOut        *string `json:"check_out,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Source          string  `json:"source"`
}
