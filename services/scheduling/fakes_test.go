package scheduling

import (
	"context"
	"errors"
	"sync"

	advisorRepo "consultify/database/repository/advisor"
	bookingRepo "consultify/database/repository/booking"
	"consultify/models"
)

var errStoreDown = errors.New("store down")

// fakeBookingRepo is an in-memory BookingRepository that mirrors the store's
// live-slot uniqueness guarantee.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	failing  bool

	// conflictOnWrite simulates a racing writer committing between the
	// availability read and this write: the slot reads as free, but the
	// store's uniqueness constraint rejects the write anyway.
	conflictOnWrite bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *fakeBookingRepo) add(b models.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := b
	r.bookings[b.ID] = &stored
}

func (r *fakeBookingRepo) slotHeld(advisorID, date, timeOfDay, excludeID string) bool {
	for id, b := range r.bookings {
		if id == excludeID {
			continue
		}
		if b.AdvisorID == advisorID && b.ScheduledDate == date && b.ScheduledTime == timeOfDay && b.Status.Live() {
			return true
		}
	}
	return false
}

func (r *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errStoreDown
	}
	if r.conflictOnWrite || r.slotHeld(booking.AdvisorID, booking.ScheduledDate, booking.ScheduledTime, "") {
		return bookingRepo.ErrConflict
	}
	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return nil, errStoreDown
	}
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	out := *b
	return &out, nil
}

func (r *fakeBookingRepo) ListByAdvisorAndDate(ctx context.Context, advisorID, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return nil, errStoreDown
	}
	var out []models.Booking
	for _, b := range r.bookings {
		if b.AdvisorID == advisorID && b.ScheduledDate == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByClient(ctx context.Context, clientID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ClientID == clientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListByAdvisor(ctx context.Context, advisorID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.AdvisorID == advisorID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListAll(ctx context.Context, date string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if date == "" || b.ScheduledDate == date {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateSchedule(ctx context.Context, id, date, timeOfDay string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errStoreDown
	}
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if !b.Status.Live() {
		return bookingRepo.ErrConflict
	}
	if r.conflictOnWrite || r.slotHeld(b.AdvisorID, date, timeOfDay, id) {
		return bookingRepo.ErrConflict
	}
	b.ScheduledDate = date
	b.ScheduledTime = timeOfDay
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing {
		return errStoreDown
	}
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if b.Status != from {
		return bookingRepo.ErrConflict
	}
	b.Status = to
	return nil
}

func (r *fakeBookingRepo) AppendComment(ctx context.Context, id string, comment models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	b.Comments = append(b.Comments, comment)
	return nil
}

func (r *fakeBookingRepo) ListLiveByDate(ctx context.Context, date, fromTime, toTime string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.ScheduledDate == date && b.Status.Live() && b.ScheduledTime >= fromTime && b.ScheduledTime < toTime {
			out = append(out, *b)
		}
	}
	return out, nil
}

// fakeAdvisorRepo serves a fixed advisor directory.
type fakeAdvisorRepo struct {
	advisors map[string]*models.Advisor
}

func newFakeAdvisorRepo(advisors ...models.Advisor) *fakeAdvisorRepo {
	r := &fakeAdvisorRepo{advisors: make(map[string]*models.Advisor)}
	for i := range advisors {
		r.advisors[advisors[i].ID] = &advisors[i]
	}
	return r
}

func (r *fakeAdvisorRepo) GetByID(ctx context.Context, id string) (*models.Advisor, error) {
	a, ok := r.advisors[id]
	if !ok || !a.Active {
		return nil, advisorRepo.ErrNotFound
	}
	out := *a
	return &out, nil
}

func (r *fakeAdvisorRepo) ListActive(ctx context.Context) ([]models.Advisor, error) {
	var out []models.Advisor
	for _, a := range r.advisors {
		if a.Active {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAdvisorRepo) Upsert(ctx context.Context, advisor *models.Advisor) error {
	stored := *advisor
	r.advisors[advisor.ID] = &stored
	return nil
}

// memIdempotency is an in-memory IdempotencyStore.
type memIdempotency struct {
	mu   sync.Mutex
	keys map[string]string
}

func newMemIdempotency() *memIdempotency {
	return &memIdempotency{keys: make(map[string]string)}
}

func (s *memIdempotency) Lookup(ctx context.Context, clientID, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.keys[clientID+":"+key]
	return id, ok, nil
}

func (s *memIdempotency) Remember(ctx context.Context, clientID, key, bookingID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := clientID + ":" + key
	if _, exists := s.keys[k]; exists {
		return false, nil
	}
	s.keys[k] = bookingID
	return true, nil
}
