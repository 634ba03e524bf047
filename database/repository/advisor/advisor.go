package advisorRepo

import (
	"context"
	"errors"

	"consultify/models"
)

// ErrNotFound is returned when no active advisor matches the given id.
var ErrNotFound = errors.New("advisor not found")

// AdvisorRepository is the directory boundary: advisor validity and the
// per-advisor slot grid. Profile management lives elsewhere.
type AdvisorRepository interface {
	// GetByID retrieves an active advisor; inactive advisors are not bookable.
	GetByID(ctx context.Context, id string) (*models.Advisor, error)
	// ListActive returns all bookable advisors.
	ListActive(ctx context.Context) ([]models.Advisor, error)
	// Upsert creates or replaces an advisor directory entry.
	Upsert(ctx context.Context, advisor *models.Advisor) error
}
