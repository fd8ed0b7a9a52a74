package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wosler/kiosk-api/internal/model"
	"github.com/wosler/kiosk-api/internal/repository"
	"github.com/wosler/kiosk-api/internal/repository/fixture"
	"github.com/wosler/kiosk-api/pkg/errors"
)

// countingRepo wraps a repository and counts store round trips, so cache
// behavior is observable.
type countingRepo struct {
	inner repository.BookingRepository
	calls int
}

func (r *countingRepo) ListByClinic(ctx context.Context, clinicID string) ([]*model.Booking, error) {
	r.calls++
	return r.inner.ListByClinic(ctx, clinicID)
}

func newTestService() *Service {
	return NewService(fixture.NewBookingRepository(), Config{}, nil)
}

func TestSearchRequiresClinic(t *testing.T) {
	svc := newTestService()

	_, err := svc.Search(context.Background(), &model.BookingQuery{ReferenceCode: "123"})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrMissingClinic))
}

func TestSearchRequiresCriteria(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name  string
		query *model.BookingQuery
	}{
		{"clinic only", &model.BookingQuery{ClinicID: fixture.DefaultClinicID}},
		{"partial personal details", &model.BookingQuery{
			ClinicID:  fixture.DefaultClinicID,
			FirstName: "John",
			LastName:  "Smith",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), tt.query)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrMissingSearchCriteria))
		})
	}
}

func TestSearchByReference(t *testing.T) {
	svc := newTestService()

	bookings, err := svc.Search(context.Background(), &model.BookingQuery{
		ClinicID:      fixture.DefaultClinicID,
		ReferenceCode: "123",
	})

	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, int64(550), bookings[0].ID)
	assert.Equal(t, "John", bookings[0].Patient.FirstName)
}

func TestSearchSentinelReference(t *testing.T) {
	svc := newTestService()

	_, err := svc.Search(context.Background(), &model.BookingQuery{
		ClinicID:      fixture.DefaultClinicID,
		ReferenceCode: SentinelReference,
	})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTransientService))
}

// The sentinel outage is simulated before any validation runs, so even a
// request with no clinic gets the outage rather than a validation error.
func TestSearchSentinelBeforeValidation(t *testing.T) {
	svc := newTestService()

	_, err := svc.Search(context.Background(), &model.BookingQuery{ReferenceCode: SentinelReference})

	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrTransientService))
}

func TestSearchByHealthCard(t *testing.T) {
	svc := newTestService()

	// Uppercased prefix of "ontario-1234567890-CD".
	bookings, err := svc.Search(context.Background(), &model.BookingQuery{
		ClinicID:     fixture.DefaultClinicID,
		HealthCardID: "ONTARIO-1234567890",
	})

	require.NoError(t, err)
	require.NotEmpty(t, bookings)
	for _, b := range bookings {
		assert.Equal(t, "ontario-1234567890-CD", b.Patient.HealthCardID)
	}
}

func TestSearchByHealthCardSubstring(t *testing.T) {
	svc := newTestService()

	bookings, err := svc.Search(context.Background(), &model.BookingQuery{
		ClinicID:     fixture.DefaultClinicID,
		HealthCardID: "1234567890",
	})

	require.NoError(t, err)
	require.NotEmpty(t, bookings)
	for _, b := range bookings {
		assert.Equal(t, "John", b.Patient.FirstName)
	}
}

func TestSearchByPersonalDetails(t *testing.T) {
	svc := newTestService()

	bookings, err := svc.Search(context.Background(), &model.BookingQuery{
		ClinicID:  fixture.DefaultClinicID,
		FirstName: "john",
		LastName:  "SMITH",
		BirthDate: "1980-03-15",
		Phone:     "(416) 123-4567",
	})

	require.NoError(t, err)
	require.NotEmpty(t, bookings)
	for _, b := range bookings {
		assert.Equal(t, "Smith", b.Patient.LastName)
	}
}

func TestSearchByPersonalDetailsWrongPhone(t *testing.T) {
	svc := newTestService()

	bookings, err := svc.Search(context.Background(), &model.BookingQuery{
		ClinicID:  fixture.DefaultClinicID,
		FirstName: "John",
		LastName:  "Smith",
		BirthDate: "1980-03-15",
		Phone:     "4169999999",
	})

	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestSearchDateFilter(t *testing.T) {
	svc := newTestService()

	bookings, err := svc.Search(context.Background(), &model.BookingQuery{
		ClinicID:     fixture.DefaultClinicID,
		HealthCardID: "1234567890",
		Date:         "2025-06-11",
	})

	require.NoError(t, err)
	// John has four bookings; only two start on the 11th.
	require.Len(t, bookings, 2)
	for _, b := range bookings {
		assert.Equal(t, "2025-06-11", b.StartDay())
	}
}

func TestSearchUnknownClinicIsEmptySuccess(t *testing.T) {
	svc := newTestService()

	bookings, err := svc.Search(context.Background(), &model.BookingQuery{
		ClinicID:      "0000000000",
		ReferenceCode: "123",
	})

	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestSearchNoMatchIsEmptySuccess(t *testing.T) {
	svc := newTestService()

	bookings, err := svc.Search(context.Background(), &model.BookingQuery{
		ClinicID:      fixture.DefaultClinicID,
		ReferenceCode: "777",
	})

	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestSearchCachesRepeatedLookups(t *testing.T) {
	repo := &countingRepo{inner: fixture.NewBookingRepository()}
	svc := NewService(repo, Config{}, nil)

	q := &model.BookingQuery{ClinicID: fixture.DefaultClinicID, ReferenceCode: "123"}

	first, err := svc.Search(context.Background(), q)
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, first, second)
}

func TestSearchCacheKeyDistinguishesQueries(t *testing.T) {
	repo := &countingRepo{inner: fixture.NewBookingRepository()}
	svc := NewService(repo, Config{}, nil)

	_, err := svc.Search(context.Background(), &model.BookingQuery{
		ClinicID: fixture.DefaultClinicID, ReferenceCode: "123",
	})
	require.NoError(t, err)
	_, err = svc.Search(context.Background(), &model.BookingQuery{
		ClinicID: fixture.DefaultClinicID, ReferenceCode: "124",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.calls)
}
