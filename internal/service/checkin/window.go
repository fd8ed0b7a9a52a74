package checkin

import (
	"time"

	"github.com/wosler/kiosk-api/internal/model"
)

// CheckInWindow is how far ahead of the scheduled start a patient is allowed
// to check in.
const CheckInWindow = 30 * time.Minute

// ClassifyWindow classifies a booking's check-in eligibility at the given
// instant. Pure and deterministic: now is always passed in, never sampled.
//
// Eligibility keys off the start time only. A booking turns "past" the
// instant its start time is reached, even though the visit window runs to
// the end time; the upstream scheduler behaves the same way and end time is
// deliberately never consulted.
func ClassifyWindow(now, startTime time.Time) model.WindowState {
	delta := startTime.Sub(now)
	switch {
	case delta < 0:
		return model.WindowPast
	case delta > CheckInWindow:
		return model.WindowFuture
	default:
		// Inclusive on both ends: exactly on time and exactly 30 minutes
		// early are both eligible.
		return model.WindowEligible
	}
}
