package fixture

import (
	"context"
	"time"

	"github.com/wosler/kiosk-api/internal/model"
)

// DefaultClinicID is the clinic all fixture bookings belong to.
const DefaultClinicID = "8547965896"

// BookingRepository serves an immutable, in-memory booking set. It stands in
// for the real scheduler until one is wired behind the same interface.
type BookingRepository struct {
	bookings []*model.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{bookings: defaultBookings()}
}

// NewBookingRepositoryWith builds a repository over the given bookings,
// preserving their order. Intended for tests.
func NewBookingRepositoryWith(bookings ...*model.Booking) *BookingRepository {
	return &BookingRepository{bookings: bookings}
}

// ListByClinic returns the clinic's bookings in source order.
func (r *BookingRepository) ListByClinic(ctx context.Context, clinicID string) ([]*model.Booking, error) {
	matched := make([]*model.Booking, 0)
	for _, b := range r.bookings {
		if b.ClinicID == clinicID {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func mustTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

// defaultBookings is the mock appointment book: a handful of patients across
// the week of 2025-06-11, with past, imminent and future slots on the 11th so
// every window state is represented.
func defaultBookings() []*model.Booking {
	john := model.Patient{
		FirstName:    "John",
		LastName:     "Smith",
		PhoneNumber:  "+14161234567",
		BirthDate:    "1980-03-15T00:00:00.000Z",
		HealthCardID: "ontario-1234567890-CD",
	}
	jane := model.Patient{
		FirstName:    "Jane",
		LastName:     "Doe",
		PhoneNumber:  "+14587458796",
		BirthDate:    "1995-09-06T00:00:00.000Z",
		HealthCardID: "ontario-8547961250-AB",
	}
	michael := model.Patient{
		FirstName:    "Michael",
		LastName:     "Johnson",
		PhoneNumber:  "+14169876543",
		BirthDate:    "1975-11-22T00:00:00.000Z",
		HealthCardID: "ontario-9876543210-EF",
	}
	sarah := model.Patient{
		FirstName:    "Sarah",
		LastName:     "Williams",
		PhoneNumber:  "+14165551234",
		BirthDate:    "1988-07-14T00:00:00.000Z",
		HealthCardID: "ontario-5551234567-GH",
	}

	booking := func(id int64, clinicName, reference string, patient model.Patient, start, end, service, operator string) *model.Booking {
		return &model.Booking{
			ID:            id,
			ClinicID:      DefaultClinicID,
			ClinicName:    clinicName,
			ServiceName:   service,
			OperatorName:  operator,
			ReferenceCode: reference,
			StartTime:     mustTime(start),
			EndTime:       mustTime(end),
			Patient:       patient,
		}
	}

	return []*model.Booking{
		booking(550, "Wosler Diagnostics North", "123", john,
			"2025-06-11T10:00:00Z", "2025-06-11T10:29:00Z", "Chest X-Ray", "Johnson, Bob"),
		booking(561, "Wosler Diagnostics Downtown", "132", jane,
			"2025-06-11T09:15:00Z", "2025-06-11T09:45:00Z", "Blood Test", "Chen, Lucy"),
		booking(562, "Wosler Diagnostics Downtown", "133", jane,
			"2025-06-11T11:45:00Z", "2025-06-11T12:15:00Z", "Wrist X-Ray (L)", "Patel, Raj"),
		booking(563, "Wosler Diagnostics East", "134", john,
			"2025-06-11T12:00:00Z", "2025-06-11T12:30:00Z", "ECG", "Williams, Sarah"),
		booking(548, "Wosler Diagnostics Downtown", "530", jane,
			"2025-06-11T13:00:00Z", "2025-06-11T13:29:00Z", "Elbow (R)", "Blow, Joe"),
		booking(549, "Wosler Diagnostics Downtown", "531", jane,
			"2025-06-11T15:00:00Z", "2025-06-11T15:29:00Z", "Knee (L)", "Smith, Mary"),
		booking(551, "Wosler Diagnostics Downtown", "532", jane,
			"2025-06-12T09:30:00Z", "2025-06-12T10:00:00Z", "MRI - Shoulder", "Williams, Sarah"),
		booking(552, "Wosler Diagnostics East", "124", john,
			"2025-06-12T14:15:00Z", "2025-06-12T14:45:00Z", "Ultrasound - Abdomen", "Garcia, Carlos"),
		booking(553, "Wosler Diagnostics Downtown", "533", jane,
			"2025-06-13T11:00:00Z", "2025-06-13T11:30:00Z", "CT Scan - Head", "Thompson, Lisa"),
		booking(554, "Wosler Diagnostics West", "125", michael,
			"2025-06-13T16:00:00Z", "2025-06-13T16:30:00Z", "X-Ray - Ankle", "Brown, David"),
		booking(555, "Wosler Diagnostics Downtown", "126", michael,
			"2025-06-14T10:30:00Z", "2025-06-14T11:00:00Z", "Mammogram", "Wilson, Emma"),
		booking(556, "Wosler Diagnostics North", "127", sarah,
			"2025-06-15T13:45:00Z", "2025-06-15T14:15:00Z", "Bone Density Scan", "Miller, James"),
		booking(557, "Wosler Diagnostics East", "128", sarah,
			"2025-06-16T09:00:00Z", "2025-06-16T09:30:00Z", "MRI - Knee", "Davis, Robert"),
		booking(558, "Wosler Diagnostics Downtown", "129", john,
			"2025-06-16T15:30:00Z", "2025-06-16T16:00:00Z", "Ultrasound - Thyroid", "Martinez, Ana"),
		booking(559, "Wosler Diagnostics Downtown", "130", michael,
			"2025-06-17T12:00:00Z", "2025-06-17T12:30:00Z", "Echocardiogram", "Anderson, Kelly"),
		booking(560, "Wosler Diagnostics North", "131", sarah,
			"2025-06-18T08:30:00Z", "2025-06-18T09:00:00Z", "Blood Work", "Taylor, Michael"),
	}
}
