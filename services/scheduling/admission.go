package scheduling

import (
	"context"
	"errors"
	"strings"
	"time"

	advisorRepo "consultify/database/repository/advisor"
	bookingRepo "consultify/database/repository/booking"
	"consultify/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdmissionController decides whether a proposed booking or reschedule is
// accepted against the calendar rules and current slot occupancy. The
// occupancy read is advisory; the admission write itself is made atomic by
// the per-advisor gate plus the store's unique live-slot index, so the
// read-then-write here cannot double-book even under concurrent callers.
type AdmissionController struct {
	Repo         bookingRepo.BookingRepository
	Advisors     advisorRepo.AdvisorRepository
	Calendar     *Calendar
	Availability *AvailabilityResolver
	Links        *SessionLinker
	Idempotency  IdempotencyStore
	Logger       *zap.Logger

	gate *advisorGate
}

// NewAdmissionController wires an admission controller. Idempotency may be
// nil, in which case creation idempotency keys are ignored.
func NewAdmissionController(
	repo bookingRepo.BookingRepository,
	advisors advisorRepo.AdvisorRepository,
	cal *Calendar,
	availability *AvailabilityResolver,
	links *SessionLinker,
	idem IdempotencyStore,
	logger *zap.Logger,
) *AdmissionController {
	return &AdmissionController{
		Repo:         repo,
		Advisors:     advisors,
		Calendar:     cal,
		Availability: availability,
		Links:        links,
		Idempotency:  idem,
		Logger:       logger,
		gate:         newAdvisorGate(),
	}
}

// CheckSlot runs the ordered admission checks for (advisor, date, time).
// First failure wins: well-formed input and grid membership, then the
// booking horizon, then the past-slot rule, then occupancy. When
// excludeBookingID is set, that booking's own slot does not count as
// occupied, which is what lets a reschedule land on its current slot.
func (ac *AdmissionController) CheckSlot(
	ctx context.Context,
	advisor *models.Advisor,
	date, timeOfDay, excludeBookingID string,
) error {
	day, err := ParseDate(date)
	if err != nil {
		return newError(CodeInvalidSlot, "malformed date %q", date)
	}
	if !ValidTimeOfDay(timeOfDay) {
		return newError(CodeInvalidSlot, "malformed time %q", timeOfDay)
	}
	if !slotInGrid(advisor, timeOfDay) {
		return newError(CodeInvalidSlot, "%s is not a bookable slot for this advisor", timeOfDay)
	}

	if !ac.Calendar.WithinBookingHorizon(day) {
		if ac.Calendar.IsPast(day) {
			return newError(CodePastSlot, "%s is in the past", date)
		}
		return newError(CodeOutOfHorizon, "%s is more than %d days ahead", date, BookingHorizonDays)
	}
	if ac.Calendar.IsPast(day) || ac.Calendar.SlotElapsed(day, timeOfDay) {
		return newError(CodePastSlot, "the %s slot on %s has already passed", timeOfDay, date)
	}

	occupied, err := ac.Availability.OccupiedSlots(ctx, advisor.ID, date)
	if err != nil {
		return err
	}
	if _, taken := occupied[timeOfDay]; taken {
		if excludeBookingID != "" && ac.ownSlot(ctx, excludeBookingID, advisor.ID, date, timeOfDay) {
			return nil
		}
		return newError(CodeSlotTaken, "the %s slot on %s was just taken", timeOfDay, date)
	}
	return nil
}

// ownSlot reports whether the occupied slot belongs to the booking being
// rescheduled, i.e. the booking is moving onto (or staying at) its own slot.
func (ac *AdmissionController) ownSlot(ctx context.Context, bookingID, advisorID, date, timeOfDay string) bool {
	current, err := ac.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return false
	}
	return current.AdvisorID == advisorID &&
		current.ScheduledDate == date &&
		current.ScheduledTime == timeOfDay
}

// CreateBooking admits a new booking request from a client and persists it
// in Pending status with its derived session link.
func (ac *AdmissionController) CreateBooking(
	ctx context.Context,
	actor models.Principal,
	req models.BookingRequest,
) (*models.Booking, error) {
	if strings.TrimSpace(req.Contact.Name) == "" {
		return nil, newError(CodeInvalidSlot, "contact name is required")
	}

	// A retried create with the same idempotency key returns the booking the
	// first attempt produced.
	if ac.Idempotency != nil && req.IdempotencyKey != "" {
		if id, found, err := ac.Idempotency.Lookup(ctx, actor.ID, req.IdempotencyKey); err == nil && found {
			return ac.Repo.GetByID(ctx, id)
		}
	}

	advisor, err := ac.Advisors.GetByID(ctx, req.AdvisorID)
	if err != nil {
		if errors.Is(err, advisorRepo.ErrNotFound) {
			return nil, newError(CodeNotFound, "advisor %s not found", req.AdvisorID)
		}
		return nil, ErrStoreUnavailable
	}

	lock := ac.gate.get(advisor.ID)
	lock.Lock()
	defer lock.Unlock()

	if err := ac.CheckSlot(ctx, advisor, req.ScheduledDate, req.ScheduledTime, ""); err != nil {
		return nil, err
	}

	now := time.Now()
	booking := &models.Booking{
		ID:              uuid.New().String(),
		ClientID:        actor.ID,
		AdvisorID:       advisor.ID,
		ClientContact:   req.Contact,
		ServiceType:     req.ServiceType,
		RequestMessage:  req.RequestMessage,
		ScheduledDate:   req.ScheduledDate,
		ScheduledTime:   req.ScheduledTime,
		DurationMinutes: models.SessionDurationMinutes,
		Status:          models.StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	booking.SessionLink = ac.Links.SessionLink(booking.ID)

	if err := ac.Repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrConflict) {
			return nil, newError(CodeSlotTaken, "the %s slot on %s was just taken", req.ScheduledTime, req.ScheduledDate)
		}
		ac.Logger.Error("booking create failed",
			zap.String("advisorID", advisor.ID), zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	if ac.Idempotency != nil && req.IdempotencyKey != "" {
		if _, err := ac.Idempotency.Remember(ctx, actor.ID, req.IdempotencyKey, booking.ID); err != nil {
			// The booking itself committed; a lost key only weakens retry
			// dedup, so log and move on.
			ac.Logger.Warn("failed to record idempotency key",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	ac.Logger.Info("booking admitted",
		zap.String("bookingID", booking.ID),
		zap.String("advisorID", advisor.ID),
		zap.String("date", booking.ScheduledDate),
		zap.String("time", booking.ScheduledTime))
	return booking, nil
}

// Reschedule moves a live booking to a new date/time after re-running the
// full admission check, with the booking's own current slot excluded from
// the occupancy set. Status and session link are untouched.
func (ac *AdmissionController) Reschedule(
	ctx context.Context,
	actor models.Principal,
	bookingID string,
	req models.RescheduleRequest,
) (*models.Booking, error) {
	booking, err := ac.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrStoreUnavailable
	}

	if actor.Role != models.RoleSuperAdmin && !booking.Participant(actor.ID) {
		return nil, ErrForbidden
	}
	if !booking.Status.Live() {
		return nil, newError(CodeIllegalTransition, "a %s booking cannot be rescheduled", booking.Status)
	}

	advisor, err := ac.Advisors.GetByID(ctx, booking.AdvisorID)
	if err != nil {
		if errors.Is(err, advisorRepo.ErrNotFound) {
			return nil, newError(CodeNotFound, "advisor %s not found", booking.AdvisorID)
		}
		return nil, ErrStoreUnavailable
	}

	lock := ac.gate.get(advisor.ID)
	lock.Lock()
	defer lock.Unlock()

	if err := ac.CheckSlot(ctx, advisor, req.ScheduledDate, req.ScheduledTime, bookingID); err != nil {
		return nil, err
	}

	if err := ac.Repo.UpdateSchedule(ctx, bookingID, req.ScheduledDate, req.ScheduledTime); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrConflict):
			return nil, newError(CodeSlotTaken, "the %s slot on %s was just taken", req.ScheduledTime, req.ScheduledDate)
		case errors.Is(err, bookingRepo.ErrNotFound):
			return nil, ErrNotFound
		default:
			ac.Logger.Error("reschedule failed", zap.String("bookingID", bookingID), zap.Error(err))
			return nil, ErrStoreUnavailable
		}
	}

	booking.ScheduledDate = req.ScheduledDate
	booking.ScheduledTime = req.ScheduledTime
	booking.UpdatedAt = time.Now()

	ac.Logger.Info("booking rescheduled",
		zap.String("bookingID", bookingID),
		zap.String("date", req.ScheduledDate),
		zap.String("time", req.ScheduledTime))
	return booking, nil
}

func slotInGrid(advisor *models.Advisor, timeOfDay string) bool {
	for _, slot := range Grid(advisor) {
		if slot == timeOfDay {
			return true
		}
	}
	return false
}
