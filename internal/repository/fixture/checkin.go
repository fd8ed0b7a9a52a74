package fixture

import (
	"context"
	"sync"
	"time"
)

// CheckInRepository keeps check-in facts in memory. Safe for concurrent use.
type CheckInRepository struct {
	mu       sync.RWMutex
	arrivals map[int64]time.Time
}

func NewCheckInRepository() *CheckInRepository {
	return &CheckInRepository{arrivals: make(map[int64]time.Time)}
}

func (r *CheckInRepository) Record(ctx context.Context, bookingID int64, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.arrivals[bookingID] = at
	return nil
}

// CheckedIn reports whether a booking has a recorded arrival.
func (r *CheckInRepository) CheckedIn(bookingID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.arrivals[bookingID]
	return ok
}

// Count returns the number of recorded arrivals.
func (r *CheckInRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.arrivals)
}
