package handlers

import (
	"net/http"

	"consultify/middleware"
	"consultify/models"
	"consultify/services/scheduling"
	"consultify/services/tasks"
	"consultify/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the scheduling engine over HTTP. Every eligibility
// decision is made by the engine; this layer only binds payloads and
// renders results.
type BookingHandler struct {
	Admission *scheduling.AdmissionController
	Lifecycle *scheduling.LifecycleManager
	Reminders *tasks.ReminderScheduler
	Logger    *zap.Logger
}

func NewBookingHandler(
	admission *scheduling.AdmissionController,
	lifecycle *scheduling.LifecycleManager,
	reminders *tasks.ReminderScheduler,
	logger *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		Admission: admission,
		Lifecycle: lifecycle,
		Reminders: reminders,
		Logger:    logger,
	}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "No acting principal")
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	booking, err := h.Admission.CreateBooking(c.Request.Context(), principal, req)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "No acting principal")
		return
	}

	booking, err := h.Lifecycle.GetBooking(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ListOwnBookings handles GET /api/bookings: a client sees their bookings,
// an advisor theirs.
func (h *BookingHandler) ListOwnBookings(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "No acting principal")
		return
	}

	var (
		bookings []models.Booking
		err      error
	)
	switch principal.Role {
	case models.RoleAdvisor:
		bookings, err = h.Admission.Repo.ListByAdvisor(c.Request.Context(), principal.ID)
	default:
		bookings, err = h.Admission.Repo.ListByClient(c.Request.Context(), principal.ID)
	}
	if err != nil {
		h.Logger.Error("failed to list bookings", zap.String("principalID", principal.ID), zap.Error(err))
		respondSchedulingError(c, scheduling.ErrStoreUnavailable)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// Reschedule handles PUT /api/bookings/:id/reschedule.
func (h *BookingHandler) Reschedule(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "No acting principal")
		return
	}

	var req models.RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	booking, err := h.Admission.Reschedule(c.Request.Context(), principal, c.Param("id"), req)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateStatus handles PUT /api/bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "No acting principal")
		return
	}

	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	booking, err := h.Lifecycle.Transition(c.Request.Context(), principal, c.Param("id"), req.Status)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	if booking.Status == models.StatusConfirmed && h.Reminders != nil {
		if err := h.Reminders.ScheduleSessionReminders(booking); err != nil {
			// Reminder delivery is best effort; the transition already committed.
			h.Logger.Warn("failed to schedule session reminders",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, booking)
}

// AppendComment handles POST /api/bookings/:id/comments.
func (h *BookingHandler) AppendComment(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.JSONError(c, http.StatusUnauthorized, "unauthorized", "No acting principal")
		return
	}

	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	booking, err := h.Lifecycle.AppendComment(c.Request.Context(), principal, c.Param("id"), req.Text)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
