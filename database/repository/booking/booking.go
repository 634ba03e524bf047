package bookingRepo

import (
	"context"
	"errors"

	"consultify/models"
)

// Store-level signals. The scheduling services translate these into the
// domain error taxonomy; nothing above the repository inspects Mongo errors.
var (
	// ErrNotFound is returned when no booking matches the given id.
	ErrNotFound = errors.New("booking not found")
	// ErrConflict is returned when a write would violate the live-slot
	// uniqueness constraint, or when a conditional update matched no
	// document because the booking's state changed underneath it.
	ErrConflict = errors.New("booking conflict")
)

// BookingRepository is the persistence boundary for booking records. The
// engine above it must stay testable without Mongo, so everything goes
// through this interface.
type BookingRepository interface {
	// Create persists a new booking. Fails with ErrConflict when a live
	// booking already occupies the same (advisor, date, time) slot.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique id.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByAdvisorAndDate returns all bookings for an advisor on a calendar
	// date, regardless of status.
	ListByAdvisorAndDate(ctx context.Context, advisorID, date string) ([]models.Booking, error)
	// ListByClient returns all bookings made by a client, newest first.
	ListByClient(ctx context.Context, clientID string) ([]models.Booking, error)
	// ListByAdvisor returns all bookings assigned to an advisor, newest first.
	ListByAdvisor(ctx context.Context, advisorID string) ([]models.Booking, error)
	// ListAll returns every booking, optionally filtered to one date.
	ListAll(ctx context.Context, date string) ([]models.Booking, error)
	// UpdateSchedule moves a live booking to a new date/time. The update is
	// conditional on the booking still being live; the slot uniqueness index
	// guards the destination.
	UpdateSchedule(ctx context.Context, id, date, timeOfDay string) error
	// UpdateStatus transitions a booking's status, conditional on its
	// current status still being from.
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) error
	// AppendComment appends one entry to the booking's comment thread.
	AppendComment(ctx context.Context, id string, comment models.Comment) error
	// ListLiveByDate returns live bookings on a date whose scheduled time
	// falls within [fromTime, toTime); used by the reminder sweep.
	ListLiveByDate(ctx context.Context, date, fromTime, toTime string) ([]models.Booking, error)
}
