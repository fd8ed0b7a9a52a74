package checkin

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/wosler/kiosk-api/internal/model"
	"github.com/wosler/kiosk-api/internal/repository"
	"github.com/wosler/kiosk-api/pkg/errors"
	"github.com/wosler/kiosk-api/pkg/messaging"
	"github.com/wosler/kiosk-api/pkg/metrics"
)

// EventChannel is the broker channel check-in events are published on.
const EventChannel = "checkin"

type Config struct {
	// SimulatedDelay is the artificial latency applied to each check-in
	// call, mirroring the scheduler's perceived responsiveness.
	SimulatedDelay time.Duration
}

// Service records check-ins and verifies patient identity. It never retries:
// recovery decisions (re-enter, switch method, go home) belong to the kiosk
// flow.
type Service struct {
	bookings repository.BookingRepository
	checkins repository.CheckInRepository
	broker   messaging.Broker
	delay    time.Duration
	metrics  *metrics.Metrics
}

func NewService(
	bookings repository.BookingRepository,
	checkins repository.CheckInRepository,
	broker messaging.Broker,
	cfg Config,
	m *metrics.Metrics,
) *Service {
	return &Service{
		bookings: bookings,
		checkins: checkins,
		broker:   broker,
		delay:    cfg.SimulatedDelay,
		metrics:  m,
	}
}

// CheckIn records one arrival. Eligibility is the caller's concern here; the
// kiosk only offers the action for bookings it already classified as
// eligible, so a bare identifier is accepted and echoed back.
func (s *Service) CheckIn(ctx context.Context, bookingID int64, now time.Time) error {
	if err := s.simulateLatency(ctx); err != nil {
		return err
	}

	if err := s.checkins.Record(ctx, bookingID, now); err != nil {
		if s.metrics != nil {
			s.metrics.CheckinFailures.Inc()
		}
		return errors.Internal(fmt.Errorf("failed to record check-in: %w", err))
	}

	if s.metrics != nil {
		s.metrics.CheckinsTotal.Inc()
	}
	s.publishEvent(ctx, bookingID, now)
	return nil
}

// VerifyIdentity compares a second identifying field against the matched
// booking. A mismatch is retryable by contract; the caller may also switch
// methods.
func (s *Service) VerifyIdentity(ctx context.Context, req *model.VerifyRequest) error {
	booking, err := s.findBooking(ctx, req.ClinicID, req.BookingID)
	if err != nil {
		return err
	}

	var matched bool
	switch req.Method {
	case model.VerifyByPhone:
		matched = verifyPhone(req.Value, booking.Patient.PhoneNumber)
	case model.VerifyByHealthCard:
		matched = strings.EqualFold(req.Value, booking.Patient.HealthCardID)
	default:
		return errors.BadRequest(fmt.Sprintf("unknown verification method %q", req.Method), nil)
	}

	if !matched {
		return errors.VerificationMismatch()
	}
	return nil
}

// CheckInAll processes a day's arrivals in one go. From the requested set it
// keeps bookings on now's calendar day that are inside the check-in window,
// orders them by ascending start time and records them one at a time. The
// first failure aborts the batch; arrivals already recorded stand.
func (s *Service) CheckInAll(ctx context.Context, clinicID string, bookingIDs []int64, now time.Time) (*model.BatchCheckInResult, error) {
	all, err := s.bookings.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to list bookings: %w", err))
	}

	byID := make(map[int64]*model.Booking, len(all))
	for _, b := range all {
		byID[b.ID] = b
	}

	today := now.UTC().Format("2006-01-02")
	eligible := make([]*model.Booking, 0, len(bookingIDs))
	for _, id := range bookingIDs {
		b, ok := byID[id]
		if !ok {
			// Stale session data; skip rather than fail the visit.
			continue
		}
		if b.StartDay() != today {
			continue
		}
		if ClassifyWindow(now, b.StartTime) != model.WindowEligible {
			continue
		}
		eligible = append(eligible, b)
	}

	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].StartTime.Before(eligible[j].StartTime)
	})

	if s.metrics != nil {
		s.metrics.BatchCheckinSize.Observe(float64(len(eligible)))
	}

	result := &model.BatchCheckInResult{CheckedIn: make([]int64, 0, len(eligible))}
	for _, b := range eligible {
		if err := s.CheckIn(ctx, b.ID, now); err != nil {
			failedID := b.ID
			result.FailedID = &failedID
			return result, errors.Internal(fmt.Errorf("batch aborted at booking %d: %w", b.ID, err))
		}
		result.CheckedIn = append(result.CheckedIn, b.ID)
	}
	return result, nil
}

// EligibleToday filters and orders a booking set the same way CheckInAll
// does, for callers that want to preview the batch.
func EligibleToday(bookings []*model.Booking, now time.Time) []*model.Booking {
	today := now.UTC().Format("2006-01-02")
	eligible := make([]*model.Booking, 0)
	for _, b := range bookings {
		if b.StartDay() != today {
			continue
		}
		if ClassifyWindow(now, b.StartTime) != model.WindowEligible {
			continue
		}
		eligible = append(eligible, b)
	}
	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].StartTime.Before(eligible[j].StartTime)
	})
	return eligible
}

func (s *Service) findBooking(ctx context.Context, clinicID string, bookingID int64) (*model.Booking, error) {
	bookings, err := s.bookings.ListByClinic(ctx, clinicID)
	if err != nil {
		return nil, errors.Internal(fmt.Errorf("failed to list bookings: %w", err))
	}
	for _, b := range bookings {
		if b.ID == bookingID {
			return b, nil
		}
	}
	return nil, errors.NotFound("booking", nil)
}

// verifyPhone accepts the stored number verbatim or without its country
// code. Narrower than the directory's search-time equivalence on purpose:
// verification is the stricter step.
func verifyPhone(input, stored string) bool {
	in := digitsOnly(input)
	st := digitsOnly(stored)
	if in == "" || st == "" {
		return false
	}
	if in == st {
		return true
	}
	return len(st) >= 10 && in == st[len(st)-10:]
}

func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func (s *Service) publishEvent(ctx context.Context, bookingID int64, at time.Time) {
	if s.broker == nil {
		return
	}
	msg := messaging.Message{
		Type: "patient_checked_in",
		Payload: map[string]interface{}{
			"booking_id": bookingID,
			"arrived_at": at.UTC().Format(time.RFC3339),
		},
	}
	if err := s.broker.Publish(ctx, EventChannel, msg); err != nil {
		// The arrival is already recorded; event delivery is best-effort.
		log.Warn().Err(err).Int64("booking_id", bookingID).Msg("failed to publish check-in event")
	}
}

func (s *Service) simulateLatency(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.delay):
		return nil
	}
}
