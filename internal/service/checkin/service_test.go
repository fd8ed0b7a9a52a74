package checkin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wosler/kiosk-api/internal/model"
	"github.com/wosler/kiosk-api/internal/repository/fixture"
	"github.com/wosler/kiosk-api/pkg/errors"
)

const testClinicID = "c-test"

// flakyCheckInRepo records arrivals until the nth call, which fails.
type flakyCheckInRepo struct {
	failOnCall int
	calls      int
	recorded   []int64
}

func (r *flakyCheckInRepo) Record(ctx context.Context, bookingID int64, at time.Time) error {
	r.calls++
	if r.calls == r.failOnCall {
		return fmt.Errorf("connection reset")
	}
	r.recorded = append(r.recorded, bookingID)
	return nil
}

func testBooking(id int64, start time.Time, patient model.Patient) *model.Booking {
	return &model.Booking{
		ID:        id,
		ClinicID:  testClinicID,
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Patient:   patient,
	}
}

func TestCheckInRecordsArrival(t *testing.T) {
	checkins := fixture.NewCheckInRepository()
	svc := NewService(fixture.NewBookingRepositoryWith(), checkins, nil, Config{}, nil)

	now := time.Date(2025, 6, 11, 11, 33, 0, 0, time.UTC)
	err := svc.CheckIn(context.Background(), 550, now)

	require.NoError(t, err)
	assert.True(t, checkins.CheckedIn(550))
}

func TestVerifyIdentityByPhone(t *testing.T) {
	patient := model.Patient{FirstName: "John", LastName: "Smith", PhoneNumber: "+14161234567"}
	bookings := fixture.NewBookingRepositoryWith(
		testBooking(550, time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC), patient),
	)
	svc := NewService(bookings, fixture.NewCheckInRepository(), nil, Config{}, nil)

	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"verbatim", "+14161234567", false},
		{"without country code", "4161234567", false},
		{"formatted", "(416) 123-4567", false},
		{"wrong number", "4169999999", true},
		{"empty", "  -  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.VerifyIdentity(context.Background(), &model.VerifyRequest{
				ClinicID:  testClinicID,
				BookingID: 550,
				Method:    model.VerifyByPhone,
				Value:     tt.value,
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrVerificationMismatch))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVerifyIdentityByHealthCard(t *testing.T) {
	patient := model.Patient{FirstName: "Jane", LastName: "Doe", HealthCardID: "AB12345678"}
	bookings := fixture.NewBookingRepositoryWith(
		testBooking(561, time.Date(2025, 6, 11, 12, 0, 0, 0, time.UTC), patient),
	)
	svc := NewService(bookings, fixture.NewCheckInRepository(), nil, Config{}, nil)

	err := svc.VerifyIdentity(context.Background(), &model.VerifyRequest{
		ClinicID:  testClinicID,
		BookingID: 561,
		Method:    model.VerifyByHealthCard,
		Value:     "ab12345678",
	})
	assert.NoError(t, err)

	err = svc.VerifyIdentity(context.Background(), &model.VerifyRequest{
		ClinicID:  testClinicID,
		BookingID: 561,
		Method:    model.VerifyByHealthCard,
		Value:     "AB12345679",
	})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrVerificationMismatch))
}

func TestVerifyIdentityUnknownBooking(t *testing.T) {
	svc := NewService(fixture.NewBookingRepositoryWith(), fixture.NewCheckInRepository(), nil, Config{}, nil)

	err := svc.VerifyIdentity(context.Background(), &model.VerifyRequest{
		ClinicID:  testClinicID,
		BookingID: 42,
		Method:    model.VerifyByPhone,
		Value:     "4161234567",
	})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrNotFound))
}

func TestCheckInAllOrdersAndFilters(t *testing.T) {
	now := time.Date(2025, 6, 11, 11, 33, 0, 0, time.UTC)
	patient := model.Patient{FirstName: "Jane", LastName: "Doe"}

	bookings := fixture.NewBookingRepositoryWith(
		testBooking(3, now.Add(20*time.Minute), patient),
		testBooking(1, now.Add(5*time.Minute), patient),
		testBooking(2, now.Add(12*time.Minute), patient),
		testBooking(10, now.Add(-time.Hour), patient),        // already started
		testBooking(11, now.Add(2*time.Hour), patient),       // too far out
		testBooking(12, now.Add(24*time.Hour), patient),      // tomorrow
	)
	checkins := fixture.NewCheckInRepository()
	svc := NewService(bookings, checkins, nil, Config{}, nil)

	// 99 is stale session data and must be skipped, not fail the batch.
	result, err := svc.CheckInAll(context.Background(), testClinicID,
		[]int64{3, 10, 1, 11, 2, 12, 99}, now)

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, result.CheckedIn)
	assert.Nil(t, result.FailedID)
	assert.Equal(t, 3, checkins.Count())
	assert.False(t, checkins.CheckedIn(10))
	assert.False(t, checkins.CheckedIn(12))
}

func TestCheckInAllAbortsOnFirstFailure(t *testing.T) {
	now := time.Date(2025, 6, 11, 11, 33, 0, 0, time.UTC)
	patient := model.Patient{FirstName: "Jane", LastName: "Doe"}

	bookings := fixture.NewBookingRepositoryWith(
		testBooking(1, now.Add(5*time.Minute), patient),
		testBooking(2, now.Add(12*time.Minute), patient),
		testBooking(3, now.Add(20*time.Minute), patient),
		testBooking(4, now.Add(25*time.Minute), patient),
		testBooking(5, now.Add(28*time.Minute), patient),
	)
	checkins := &flakyCheckInRepo{failOnCall: 3}
	svc := NewService(bookings, checkins, nil, Config{}, nil)

	result, err := svc.CheckInAll(context.Background(), testClinicID,
		[]int64{5, 4, 3, 2, 1}, now)

	require.Error(t, err)
	require.NotNil(t, result)
	// The first two arrivals stand; nothing after the failure is attempted.
	assert.Equal(t, []int64{1, 2}, result.CheckedIn)
	require.NotNil(t, result.FailedID)
	assert.Equal(t, int64(3), *result.FailedID)
	assert.Equal(t, []int64{1, 2}, checkins.recorded)
	assert.Equal(t, 3, checkins.calls)
}

func TestEligibleToday(t *testing.T) {
	now := time.Date(2025, 6, 11, 11, 33, 0, 0, time.UTC)
	patient := model.Patient{FirstName: "Jane", LastName: "Doe"}

	set := []*model.Booking{
		testBooking(2, now.Add(12*time.Minute), patient),
		testBooking(1, now.Add(5*time.Minute), patient),
		testBooking(10, now.Add(-time.Minute), patient),
		testBooking(11, now.Add(31*time.Minute), patient),
	}

	eligible := EligibleToday(set, now)

	require.Len(t, eligible, 2)
	assert.Equal(t, int64(1), eligible[0].ID)
	assert.Equal(t, int64(2), eligible[1].ID)
}
