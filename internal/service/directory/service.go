package directory

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/wosler/kiosk-api/internal/model"
	"github.com/wosler/kiosk-api/internal/repository"
	"github.com/wosler/kiosk-api/pkg/errors"
	"github.com/wosler/kiosk-api/pkg/metrics"
)

// SentinelReference is the reference code reserved for failure-path drills:
// looking it up always simulates a backend outage so kiosk flows exercise
// their unstructured-error handling.
const SentinelReference = "999"

// Search modes, used for metrics labels and mode resolution.
const (
	modeReference       = "reference"
	modeHealthCard      = "health_card"
	modePersonalDetails = "personal_details"
)

type Config struct {
	// SimulatedDelay is the artificial latency applied to each uncached
	// lookup. Part of the collaborator contract, not a correctness need.
	SimulatedDelay time.Duration
	CacheTTL       time.Duration
	CacheCleanup   time.Duration
}

// Service answers booking queries against the injected store. It owns all
// matching rules so fixture and Postgres backends behave identically.
type Service struct {
	repo    repository.BookingRepository
	cache   *gocache.Cache
	delay   time.Duration
	metrics *metrics.Metrics
}

func NewService(repo repository.BookingRepository, cfg Config, m *metrics.Metrics) *Service {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	cleanup := cfg.CacheCleanup
	if cleanup <= 0 {
		cleanup = 5 * time.Minute
	}

	return &Service{
		repo:    repo,
		cache:   gocache.New(ttl, cleanup),
		delay:   cfg.SimulatedDelay,
		metrics: m,
	}
}

// Search runs one lookup. The sentinel reference is checked before anything
// else, matching the upstream behavior: even a request without a clinic gets
// the simulated outage.
func (s *Service) Search(ctx context.Context, q *model.BookingQuery) ([]*model.Booking, error) {
	if q.ReferenceCode == SentinelReference {
		s.countLookup(modeReference, "transient_error")
		return nil, errors.TransientService()
	}

	if q.ClinicID == "" {
		return nil, errors.MissingClinic()
	}

	mode, err := resolveMode(q)
	if err != nil {
		return nil, err
	}

	key := cacheKey(q)
	if cached, ok := s.cache.Get(key); ok {
		if s.metrics != nil {
			s.metrics.LookupCacheHits.Inc()
		}
		s.countLookup(mode, "success")
		return cached.([]*model.Booking), nil
	}

	if err := s.simulateLatency(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	bookings, err := s.repo.ListByClinic(ctx, q.ClinicID)
	if err != nil {
		s.countLookup(mode, "error")
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	matched := filterByMode(bookings, q, mode)
	if q.Date != "" {
		matched = filterByDate(matched, q.Date)
	}

	s.cache.Set(key, matched, gocache.DefaultExpiration)
	if s.metrics != nil {
		s.metrics.LookupLatency.Observe(time.Since(start).Seconds())
	}
	s.countLookup(mode, "success")
	return matched, nil
}

// resolveMode picks the single active search mode. Reference code wins over
// health card, which wins over personal details; a partial personal-details
// tuple counts as no criteria at all.
func resolveMode(q *model.BookingQuery) (string, error) {
	switch {
	case q.ReferenceCode != "":
		return modeReference, nil
	case q.HealthCardID != "":
		return modeHealthCard, nil
	case q.HasPersonalDetails():
		return modePersonalDetails, nil
	default:
		return "", errors.MissingSearchCriteria()
	}
}

func filterByMode(bookings []*model.Booking, q *model.BookingQuery, mode string) []*model.Booking {
	matched := make([]*model.Booking, 0)
	for _, b := range bookings {
		var ok bool
		switch mode {
		case modeReference:
			ok = b.ReferenceCode == q.ReferenceCode
		case modeHealthCard:
			ok = strings.Contains(
				strings.ToLower(b.Patient.HealthCardID),
				strings.ToLower(q.HealthCardID),
			)
		case modePersonalDetails:
			ok = matchPersonalDetails(b, q)
		}
		if ok {
			matched = append(matched, b)
		}
	}
	return matched
}

func matchPersonalDetails(b *model.Booking, q *model.BookingQuery) bool {
	if !strings.EqualFold(b.Patient.FirstName, q.FirstName) ||
		!strings.EqualFold(b.Patient.LastName, q.LastName) {
		return false
	}
	if !strings.HasPrefix(b.Patient.BirthDate, q.BirthDate) {
		return false
	}
	return phoneEquivalent(q.Phone, b.Patient.PhoneNumber)
}

func filterByDate(bookings []*model.Booking, datePrefix string) []*model.Booking {
	matched := make([]*model.Booking, 0)
	for _, b := range bookings {
		if strings.HasPrefix(b.StartTime.UTC().Format(time.RFC3339), datePrefix) {
			matched = append(matched, b)
		}
	}
	return matched
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

func (s *Service) countLookup(mode, status string) {
	if s.metrics != nil {
		s.metrics.LookupsTotal.WithLabelValues(mode, status).Inc()
	}
}

func cacheKey(q *model.BookingQuery) string {
	return strings.ToLower(fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s|%s",
		q.ClinicID, q.ReferenceCode, q.HealthCardID,
		q.FirstName, q.LastName, q.BirthDate, normalizePhone(q.Phone), q.Date))
}
