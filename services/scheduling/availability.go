package scheduling

import (
	"context"

	bookingRepo "consultify/database/repository/booking"
	"consultify/models"

	"go.uber.org/zap"
)

// DefaultSlotGrid is the system-wide bookable time grid used when an
// advisor has not configured one: hourly sessions from 09:00 to 17:00 NPT.
var DefaultSlotGrid = []string{
	"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00",
}

// AvailabilityResolver computes slot occupancy for an advisor's day. It is
// advisory only: nothing stops the occupancy set from changing between this
// read and a later admission decision, which is why admission relies on the
// store's uniqueness guarantee for the final word.
type AvailabilityResolver struct {
	Repo   bookingRepo.BookingRepository
	Logger *zap.Logger
}

// OccupiedSlots returns the set of times on date already held by a live
// (Pending or Confirmed) booking of the advisor. A store failure means
// availability is unknown, never that slots are free.
func (r *AvailabilityResolver) OccupiedSlots(ctx context.Context, advisorID, date string) (map[string]struct{}, error) {
	bookings, err := r.Repo.ListByAdvisorAndDate(ctx, advisorID, date)
	if err != nil {
		r.Logger.Error("failed to read advisor occupancy",
			zap.String("advisorID", advisorID), zap.String("date", date), zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	occupied := make(map[string]struct{})
	for _, b := range bookings {
		if b.Status.Live() {
			occupied[b.ScheduledTime] = struct{}{}
		}
	}
	return occupied, nil
}

// Grid returns the advisor's bookable times, falling back to the default.
func Grid(advisor *models.Advisor) []string {
	if advisor != nil && len(advisor.SlotGrid) > 0 {
		return advisor.SlotGrid
	}
	return DefaultSlotGrid
}

// FreeSlots returns the advisor's open times on date: the slot grid minus
// occupied slots, minus slots already begun when date is today.
func (r *AvailabilityResolver) FreeSlots(ctx context.Context, cal *Calendar, advisor *models.Advisor, date string) ([]string, error) {
	day, err := ParseDate(date)
	if err != nil {
		return nil, newError(CodeInvalidSlot, "malformed date %q", date)
	}

	occupied, err := r.OccupiedSlots(ctx, advisor.ID, date)
	if err != nil {
		return nil, err
	}

	today := !cal.IsPast(day) && day.Equal(cal.Today())
	free := make([]string, 0, len(Grid(advisor)))
	for _, slot := range Grid(advisor) {
		if _, taken := occupied[slot]; taken {
			continue
		}
		if cal.IsPast(day) {
			continue
		}
		if today && cal.SlotElapsed(day, slot) {
			continue
		}
		free = append(free, slot)
	}
	return free, nil
}
