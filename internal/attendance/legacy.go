package attendance

import (
	"sync"
	"time"
)

// LegacyToggler is the pre-launch demo check-in kept for old kiosk builds.
// State lives in process memory only: it never touches the session store,
// survives nothing, and must not be mixed with the durable reconciler.
type LegacyToggler struct {
	mu   sync.Mutex
	open map[string]time.Time
}

func NewLegacyToggler() *LegacyToggler {
	return &LegacyToggler{open: map[string]time.Time{}}
}

type LegacyOutcome struct {
	Action          string `json:"action"`
	MemberID        string `json:"member_id"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
	Demo            bool   `json:"demo"`
}

// Toggle flips the member's in-memory state. Checked out members get checked
// in, checked in members get checked out with a floored minute duration.
func (t *LegacyToggler) Toggle(memberID string) LegacyOutcome {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now().UTC()
	if openedAt, ok := t.open[memberID]; ok {
		delete(t.open, memberID)
		d := int(now.Sub(openedAt).Minutes())
		if d < 0 {
			d = 0
		}
		return LegacyOutcome{
			Action:          "checked_out",
			MemberID:        memberID,
			DurationMinutes: &d,
			Demo:            true,
		}
	}

	t.open[memberID] = now
	return LegacyOutcome{
		Action:   "checked_in",
		MemberID: memberID,
		Demo:     true,
	}
}
