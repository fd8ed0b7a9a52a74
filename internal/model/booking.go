package model

import (
	"time"
)

// WindowState classifies a booking's check-in eligibility relative to "now".
type WindowState string

const (
	WindowPast     WindowState = "past"
	WindowEligible WindowState = "eligible"
	WindowFuture   WindowState = "future"
)

// Patient is the identifying record embedded in a booking.
// BirthDate is kept as an ISO-8601 string so date searches can use
// plain prefix matching, the same way the upstream scheduler stores it.
type Patient struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	PhoneNumber  string `json:"phone_number"`
	BirthDate    string `json:"birth_date"`
	HealthCardID string `json:"health_card_id"`
}

// Booking identifies one scheduled appointment. Bookings are immutable;
// a check-in is recorded as a separate fact, never as a mutation here.
type Booking struct {
	ID            int64     `json:"id"`
	ClinicID      string    `json:"clinic_id"`
	ClinicName    string    `json:"clinic_name"`
	ServiceName   string    `json:"service_name"`
	OperatorName  string    `json:"operator_name"`
	ReferenceCode string    `json:"reference_code"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Patient       Patient   `json:"patient"`
}

// StartDay returns the booking's calendar day in UTC, for day-prefix filters.
func (b *Booking) StartDay() string {
	return b.StartTime.UTC().Format("2006-01-02")
}

// BookingQuery holds the lookup criteria for a directory search.
// Exactly one of the three modes must be populated: reference code,
// health card, or the full personal-details tuple.
type BookingQuery struct {
	ClinicID      string
	ReferenceCode string
	HealthCardID  string
	FirstName     string
	LastName      string
	BirthDate     string // date prefix, e.g. "1980-03-15"
	Phone         string
	Date          string // optional calendar-day prefix on start time
}

// HasPersonalDetails reports whether the full four-field tuple is present.
func (q *BookingQuery) HasPersonalDetails() bool {
	return q.FirstName != "" && q.LastName != "" && q.BirthDate != "" && q.Phone != ""
}

// Verification methods accepted as a second identifying factor.
const (
	VerifyByPhone      = "phone"
	VerifyByHealthCard = "health_card"
)

type CheckInRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

type CheckInResponse struct {
	BookingID int64  `json:"booking_id"`
	Message   string `json:"message"`
}

type VerifyRequest struct {
	ClinicID  string `json:"clinic_id" binding:"required"`
	BookingID int64  `json:"booking_id" binding:"required"`
	Method    string `json:"method" binding:"required,oneof=phone health_card"`
	Value     string `json:"value" binding:"required"`
}

type BatchCheckInRequest struct {
	ClinicID   string  `json:"clinic_id" binding:"required"`
	BookingIDs []int64 `json:"booking_ids" binding:"required,min=1"`
}

// BatchCheckInResult reports a batch outcome. CheckedIn lists bookings in
// the order they were processed; FailedID is set when the batch aborted.
type BatchCheckInResult struct {
	CheckedIn []int64 `json:"checked_in"`
	FailedID  *int64  `json:"failed_id,omitempty"`
}
