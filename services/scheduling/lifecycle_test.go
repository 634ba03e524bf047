package scheduling

import (
	"context"
	"errors"
	"testing"

	"consultify/models"

	"go.uber.org/zap"
)

func newTestLifecycle(repo *fakeBookingRepo) *LifecycleManager {
	return &LifecycleManager{
		Repo:   repo,
		Links:  &SessionLinker{BaseURL: "https://meet.consultify.app/session"},
		Logger: zap.NewNop(),
	}
}

func advisor(id string) models.Principal {
	return models.Principal{ID: id, Name: "Advisor " + id, Role: models.RoleAdvisor}
}

func superAdmin() models.Principal {
	return models.Principal{ID: "root", Name: "Ops", Role: models.RoleSuperAdmin}
}

func seededBooking(status models.BookingStatus) models.Booking {
	return models.Booking{
		ID: "b1", AdvisorID: "a1", ClientID: "c1",
		ScheduledDate: "2025-03-10", ScheduledTime: "10:00",
		Status: status, SessionLink: "https://meet.consultify.app/session/x",
	}
}

func TestTransition_Table(t *testing.T) {
	all := []models.BookingStatus{
		models.StatusPending, models.StatusConfirmed,
		models.StatusCompleted, models.StatusCancelled,
	}
	legal := map[models.BookingStatus]map[models.BookingStatus]bool{
		models.StatusPending:   {models.StatusConfirmed: true, models.StatusCancelled: true},
		models.StatusConfirmed: {models.StatusCompleted: true, models.StatusCancelled: true},
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(string(from)+"_to_"+string(to), func(t *testing.T) {
				repo := newFakeBookingRepo()
				repo.add(seededBooking(from))
				lm := newTestLifecycle(repo)

				booking, err := lm.Transition(context.Background(), superAdmin(), "b1", to)
				if legal[from][to] {
					if err != nil {
						t.Fatalf("legal transition rejected: %v", err)
					}
					if booking.Status != to {
						t.Errorf("status = %s, want %s", booking.Status, to)
					}
					return
				}
				if !errors.Is(err, ErrIllegalTransition) {
					t.Errorf("expected ErrIllegalTransition, got %v", err)
				}
			})
		}
	}
}

func TestTransition_AdvisorConfirmsAndCompletesOwnBooking(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(seededBooking(models.StatusPending))
	lm := newTestLifecycle(repo)

	if _, err := lm.Transition(context.Background(), advisor("a1"), "b1", models.StatusConfirmed); err != nil {
		t.Fatalf("assigned advisor could not confirm: %v", err)
	}
	if _, err := lm.Transition(context.Background(), advisor("a1"), "b1", models.StatusCompleted); err != nil {
		t.Fatalf("assigned advisor could not complete: %v", err)
	}
}

func TestTransition_AdvisorCannotCancel(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(seededBooking(models.StatusPending))
	lm := newTestLifecycle(repo)

	_, err := lm.Transition(context.Background(), advisor("a1"), "b1", models.StatusCancelled)
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden for advisor-driven cancel, got %v", err)
	}
}

func TestTransition_OtherActorsForbidden(t *testing.T) {
	for _, actor := range []models.Principal{advisor("a2"), client("c1")} {
		repo := newFakeBookingRepo()
		repo.add(seededBooking(models.StatusPending))
		lm := newTestLifecycle(repo)

		_, err := lm.Transition(context.Background(), actor, "b1", models.StatusConfirmed)
		if !errors.Is(err, ErrForbidden) {
			t.Errorf("actor %s/%s: expected ErrForbidden, got %v", actor.Role, actor.ID, err)
		}
	}
}

func TestTransition_SuperAdminCancels(t *testing.T) {
	for _, from := range []models.BookingStatus{models.StatusPending, models.StatusConfirmed} {
		repo := newFakeBookingRepo()
		repo.add(seededBooking(from))
		lm := newTestLifecycle(repo)

		booking, err := lm.Transition(context.Background(), superAdmin(), "b1", models.StatusCancelled)
		if err != nil {
			t.Fatalf("super-admin cancel from %s failed: %v", from, err)
		}
		if booking.Status != models.StatusCancelled {
			t.Errorf("status = %s, want Cancelled", booking.Status)
		}
	}
}

func TestTransition_NotFound(t *testing.T) {
	lm := newTestLifecycle(newFakeBookingRepo())
	_, err := lm.Transition(context.Background(), superAdmin(), "missing", models.StatusConfirmed)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTransition_LegalityCheckedBeforeAuthorization(t *testing.T) {
	// A client asking for an impossible edge learns it is impossible, not
	// that they lack permission for it.
	repo := newFakeBookingRepo()
	repo.add(seededBooking(models.StatusCompleted))
	lm := newTestLifecycle(repo)

	_, err := lm.Transition(context.Background(), client("c1"), "b1", models.StatusConfirmed)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("expected ErrIllegalTransition, got %v", err)
	}
}

func TestAppendComment_GrowsThread(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(seededBooking(models.StatusConfirmed))
	lm := newTestLifecycle(repo)

	for i, actor := range []models.Principal{client("c1"), advisor("a1"), superAdmin()} {
		booking, err := lm.AppendComment(context.Background(), actor, "b1", "note")
		if err != nil {
			t.Fatalf("comment by %s failed: %v", actor.Role, err)
		}
		if len(booking.Comments) != i+1 {
			t.Errorf("thread length = %d, want %d", len(booking.Comments), i+1)
		}
	}

	stored, err := repo.GetByID(context.Background(), "b1")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Comments) != 3 {
		t.Errorf("stored thread length = %d, want 3", len(stored.Comments))
	}
	for i := 1; i < len(stored.Comments); i++ {
		if stored.Comments[i].CreatedAt.Before(stored.Comments[i-1].CreatedAt) {
			t.Errorf("comments out of append order at index %d", i)
		}
	}
}

func TestAppendComment_TerminalBookingStillCommentable(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(seededBooking(models.StatusCancelled))
	lm := newTestLifecycle(repo)

	if _, err := lm.AppendComment(context.Background(), client("c1"), "b1", "why was this cancelled?"); err != nil {
		t.Errorf("commenting on a cancelled booking failed: %v", err)
	}
}

func TestAppendComment_Validation(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(seededBooking(models.StatusPending))
	lm := newTestLifecycle(repo)

	if _, err := lm.AppendComment(context.Background(), client("c1"), "b1", "   "); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("blank comment: expected ErrInvalidSlot, got %v", err)
	}
	if _, err := lm.AppendComment(context.Background(), client("c9"), "b1", "hi"); !errors.Is(err, ErrForbidden) {
		t.Errorf("outsider comment: expected ErrForbidden, got %v", err)
	}
}

func TestGetBooking_Visibility(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(seededBooking(models.StatusPending))
	lm := newTestLifecycle(repo)

	for _, actor := range []models.Principal{client("c1"), advisor("a1"), superAdmin()} {
		if _, err := lm.GetBooking(context.Background(), actor, "b1"); err != nil {
			t.Errorf("participant %s/%s denied: %v", actor.Role, actor.ID, err)
		}
	}
	if _, err := lm.GetBooking(context.Background(), client("c9"), "b1"); !errors.Is(err, ErrForbidden) {
		t.Errorf("outsider read: expected ErrForbidden, got %v", err)
	}
}

func TestGetBooking_RestoresMissingSessionLink(t *testing.T) {
	repo := newFakeBookingRepo()
	b := seededBooking(models.StatusConfirmed)
	b.SessionLink = ""
	repo.add(b)
	lm := newTestLifecycle(repo)

	booking, err := lm.GetBooking(context.Background(), client("c1"), "b1")
	if err != nil {
		t.Fatal(err)
	}
	want := lm.Links.SessionLink("b1")
	if booking.SessionLink != want {
		t.Errorf("session link = %q, want %q", booking.SessionLink, want)
	}
}

func TestTransition_ConcurrentStatusChangeSurfaces(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.add(seededBooking(models.StatusPending))
	lm := newTestLifecycle(repo)

	// Another actor moves the booking between the read and the write.
	if _, err := lm.Transition(context.Background(), superAdmin(), "b1", models.StatusCancelled); err != nil {
		t.Fatal(err)
	}
	_, err := lm.Transition(context.Background(), advisor("a1"), "b1", models.StatusConfirmed)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("expected ErrIllegalTransition after concurrent change, got %v", err)
	}
}
