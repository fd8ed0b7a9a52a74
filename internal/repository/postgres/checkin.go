package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/wosler/kiosk-api/internal/repository"
)

type checkInRepository struct {
	db *sqlx.DB
}

func NewCheckInRepository(db *sqlx.DB) repository.CheckInRepository {
	return &checkInRepository{db: db}
}

func (r *checkInRepository) Record(ctx context.Context, bookingID int64, at time.Time) error {
	query := `INSERT INTO checkins (booking_id, arrived_at) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, bookingID, at); err != nil {
		return fmt.Errorf("failed to record check-in: %w", err)
	}
	return nil
}
