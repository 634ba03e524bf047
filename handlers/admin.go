package handlers

import (
	"net/http"

	advisorRepo "consultify/database/repository/advisor"
	bookingRepo "consultify/database/repository/booking"
	"consultify/middleware"
	"consultify/models"
	"consultify/services/scheduling"
	"consultify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler exposes operations endpoints: booking oversight and advisor
// directory maintenance. All routes behind the super-admin gate.
type AdminHandler struct {
	Bookings  bookingRepo.BookingRepository
	Advisors  advisorRepo.AdvisorRepository
	Lifecycle *scheduling.LifecycleManager
	Logger    *zap.Logger
}

func NewAdminHandler(
	bookings bookingRepo.BookingRepository,
	advisors advisorRepo.AdvisorRepository,
	lifecycle *scheduling.LifecycleManager,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{Bookings: bookings, Advisors: advisors, Lifecycle: lifecycle, Logger: logger}
}

// ListBookings handles GET /api/admin/bookings?date=YYYY-MM-DD.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	bookings, err := h.Bookings.ListAll(c.Request.Context(), c.Query("date"))
	if err != nil {
		h.Logger.Error("admin booking list failed", zap.Error(err))
		respondSchedulingError(c, scheduling.ErrStoreUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBooking handles PUT /api/admin/bookings/:id/cancel. Cancellation is
// reserved for super-admins; the lifecycle manager enforces that too.
func (h *AdminHandler) CancelBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "No acting principal")
		return
	}

	booking, err := h.Lifecycle.Transition(c.Request.Context(), principal, c.Param("id"), models.StatusCancelled)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpsertAdvisor handles PUT /api/admin/advisors/:id.
func (h *AdminHandler) UpsertAdvisor(c *gin.Context) {
	var advisor models.Advisor
	if err := c.ShouldBindJSON(&advisor); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	advisor.ID = c.Param("id")

	for _, slot := range advisor.SlotGrid {
		if !scheduling.ValidTimeOfDay(slot) {
			utils.JSONError(c, http.StatusBadRequest, "invalid_request", "slot grid entries must be HH:MM values")
			return
		}
	}

	if err := h.Advisors.Upsert(c.Request.Context(), &advisor); err != nil {
		h.Logger.Error("advisor upsert failed", zap.String("advisorID", advisor.ID), zap.Error(err))
		respondSchedulingError(c, scheduling.ErrStoreUnavailable)
		return
	}
	c.JSON(http.StatusOK, advisor)
}
