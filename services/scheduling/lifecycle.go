package scheduling

import (
	"context"
	"errors"
	"strings"
	"time"

	bookingRepo "consultify/database/repository/booking"
	"consultify/models"

	"go.uber.org/zap"
)

// LifecycleManager owns the booking status machine and its authorization
// rules, plus comment appends. All eligibility logic lives here; callers
// render results and never re-encode the rules.
type LifecycleManager struct {
	Repo   bookingRepo.BookingRepository
	Links  *SessionLinker
	Logger *zap.Logger
}

// legalTransitions is the complete transition table. Anything absent is
// rejected, including self-transitions and moves out of terminal states.
var legalTransitions = map[models.BookingStatus][]models.BookingStatus{
	models.StatusPending:   {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed: {models.StatusCompleted, models.StatusCancelled},
}

func transitionLegal(from, to models.BookingStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// authorizeTransition enforces who may drive each edge. Advisors confirm
// and complete their own sessions; cancellation is reserved for
// super-admins (dispute and no-show handling), deliberately not advisors.
func authorizeTransition(actor models.Principal, booking *models.Booking, to models.BookingStatus) error {
	if actor.Role == models.RoleSuperAdmin {
		return nil
	}
	if to == models.StatusCancelled {
		return ErrForbidden
	}
	if actor.Role == models.RoleAdvisor && actor.ID == booking.AdvisorID {
		return nil
	}
	return ErrForbidden
}

// Transition moves a booking to a new status. The store write is
// conditional on the status the actor saw, so a concurrent transition
// surfaces as a conflict rather than silently stacking.
func (lm *LifecycleManager) Transition(
	ctx context.Context,
	actor models.Principal,
	bookingID string,
	to models.BookingStatus,
) (*models.Booking, error) {
	booking, err := lm.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !transitionLegal(booking.Status, to) {
		return nil, newError(CodeIllegalTransition, "cannot move a %s booking to %s", booking.Status, to)
	}
	if err := authorizeTransition(actor, booking, to); err != nil {
		return nil, err
	}

	if err := lm.Repo.UpdateStatus(ctx, bookingID, booking.Status, to); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, bookingRepo.ErrConflict):
			return nil, newError(CodeIllegalTransition, "booking %s changed status since it was read", bookingID)
		default:
			lm.Logger.Error("status update failed", zap.String("bookingID", bookingID), zap.Error(err))
			return nil, ErrStoreUnavailable
		}
	}

	booking.Status = to
	booking.UpdatedAt = time.Now()

	lm.Logger.Info("booking transitioned",
		zap.String("bookingID", bookingID),
		zap.String("to", string(to)),
		zap.String("actorRole", string(actor.Role)))
	return booking, nil
}

// AppendComment adds one entry to a booking's thread. Any participant or a
// super-admin may comment at any status; the thread is append-only.
func (lm *LifecycleManager) AppendComment(
	ctx context.Context,
	actor models.Principal,
	bookingID, text string,
) (*models.Booking, error) {
	if strings.TrimSpace(text) == "" {
		return nil, newError(CodeInvalidSlot, "comment text is required")
	}

	booking, err := lm.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleSuperAdmin && !booking.Participant(actor.ID) {
		return nil, ErrForbidden
	}

	comment := models.Comment{
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		Text:       text,
		CreatedAt:  time.Now(),
	}
	if err := lm.Repo.AppendComment(ctx, bookingID, comment); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		lm.Logger.Error("comment append failed", zap.String("bookingID", bookingID), zap.Error(err))
		return nil, ErrStoreUnavailable
	}

	booking.Comments = append(booking.Comments, comment)
	booking.UpdatedAt = comment.CreatedAt
	return booking, nil
}

// GetBooking returns a booking visible to the actor: participants and
// super-admins only.
func (lm *LifecycleManager) GetBooking(
	ctx context.Context,
	actor models.Principal,
	bookingID string,
) (*models.Booking, error) {
	booking, err := lm.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleSuperAdmin && !booking.Participant(actor.ID) {
		return nil, ErrForbidden
	}
	return booking, nil
}

// getBooking loads a booking and restores its session link when the stored
// value is missing; the link is always recomputable from the id alone.
func (lm *LifecycleManager) getBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := lm.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, ErrStoreUnavailable
	}
	if booking.SessionLink == "" {
		booking.SessionLink = lm.Links.SessionLink(booking.ID)
	}
	return booking, nil
}
