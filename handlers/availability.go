package handlers

import (
	"errors"
	"net/http"

	advisorRepo "consultify/database/repository/advisor"
	"consultify/models"
	"consultify/services/scheduling"
	"consultify/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves the free-slot view of an advisor's day.
type AvailabilityHandler struct {
	Advisors     advisorRepo.AdvisorRepository
	Availability *scheduling.AvailabilityResolver
	Calendar     *scheduling.Calendar
}

func NewAvailabilityHandler(
	advisors advisorRepo.AdvisorRepository,
	availability *scheduling.AvailabilityResolver,
	cal *scheduling.Calendar,
) *AvailabilityHandler {
	return &AvailabilityHandler{Advisors: advisors, Availability: availability, Calendar: cal}
}

// GetDayAvailability handles GET /api/advisors/:id/availability?date=YYYY-MM-DD.
func (h *AvailabilityHandler) GetDayAvailability(c *gin.Context) {
	advisorID := c.Param("id")
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid_request", "date query parameter is required")
		return
	}

	advisor, err := h.Advisors.GetByID(c.Request.Context(), advisorID)
	if err != nil {
		if errors.Is(err, advisorRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "not_found", "advisor not found")
			return
		}
		respondSchedulingError(c, scheduling.ErrStoreUnavailable)
		return
	}

	free, err := h.Availability.FreeSlots(c.Request.Context(), h.Calendar, advisor, date)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.DayAvailability{
		AdvisorID: advisor.ID,
		Date:      date,
		FreeSlots: free,
	})
}

// ListAdvisors handles GET /api/advisors.
func (h *AvailabilityHandler) ListAdvisors(c *gin.Context) {
	advisors, err := h.Advisors.ListActive(c.Request.Context())
	if err != nil {
		respondSchedulingError(c, scheduling.ErrStoreUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"advisors": advisors})
}
