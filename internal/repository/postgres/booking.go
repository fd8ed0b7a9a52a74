package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/wosler/kiosk-api/internal/model"
	"github.com/wosler/kiosk-api/internal/repository"
)

type bookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

// bookingRow flattens the patient columns for sqlx scanning.
type bookingRow struct {
	ID            int64     `db:"id"`
	ClinicID      string    `db:"clinic_id"`
	ClinicName    string    `db:"clinic_name"`
	ServiceName   string    `db:"service_name"`
	OperatorName  string    `db:"operator_name"`
	ReferenceCode string    `db:"reference_code"`
	StartTime     time.Time `db:"start_time"`
	EndTime       time.Time `db:"end_time"`
	FirstName     string    `db:"first_name"`
	LastName      string    `db:"last_name"`
	PhoneNumber   string    `db:"phone_number"`
	BirthDate     string    `db:"birth_date"`
	HealthCardID  string    `db:"health_card_id"`
}

func (row *bookingRow) toModel() *model.Booking {
	return &model.Booking{
		ID:            row.ID,
		ClinicID:      row.ClinicID,
		ClinicName:    row.ClinicName,
		ServiceName:   row.ServiceName,
		OperatorName:  row.OperatorName,
		ReferenceCode: row.ReferenceCode,
		StartTime:     row.StartTime,
		EndTime:       row.EndTime,
		Patient: model.Patient{
			FirstName:    row.FirstName,
			LastName:     row.LastName,
			PhoneNumber:  row.PhoneNumber,
			BirthDate:    row.BirthDate,
			HealthCardID: row.HealthCardID,
		},
	}
}

// ListByClinic returns all of a clinic's bookings ordered by id, matching
// the fixture store's source-order contract. Search filtering stays in the
// directory service so both backends behave identically.
func (r *bookingRepository) ListByClinic(ctx context.Context, clinicID string) ([]*model.Booking, error) {
	query := `
		SELECT id, clinic_id, clinic_name, service_name, operator_name,
		       reference_code, start_time, end_time,
		       first_name, last_name, phone_number, birth_date, health_card_id
		FROM bookings
		WHERE clinic_id = $1
		ORDER BY id
	`
	var rows []*bookingRow
	if err := r.db.SelectContext(ctx, &rows, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*model.Booking, 0, len(rows))
	for _, row := range rows {
		bookings = append(bookings, row.toModel())
	}
	return bookings, nil
}
