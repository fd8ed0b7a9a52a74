package repository

import (
	"context"
	"time"

	"github.com/wosler/kiosk-api/internal/model"
)

// BookingRepository is the read-only booking store. Results come back in
// source order; all filtering beyond clinic scope happens in the directory
// service so every backend shares the same matching rules.
type BookingRepository interface {
	ListByClinic(ctx context.Context, clinicID string) ([]*model.Booking, error)
}

// CheckInRepository records check-in facts. Bookings themselves are never
// mutated.
type CheckInRepository interface {
	Record(ctx context.Context, bookingID int64, at time.Time) error
}
