package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/GencZhushi/schedule-builder/internal/dto"
	"github.com/GencZhushi/schedule-builder/internal/service"
	"github.com/GencZhushi/schedule-builder/pkg/response"
)

// TimeSlotHandler serves the time-slot catalog endpoints.
type TimeSlotHandler struct {
	timeSlotSvc service.TimeSlotService
}

// NewTimeSlotHandler creates a TimeSlotHandler.
func NewTimeSlotHandler(timeSlotSvc service.TimeSlotService) *TimeSlotHandler {
	return &TimeSlotHandler{timeSlotSvc: timeSlotSvc}
}

// ListTimeSlots returns the whole catalog.
// GET /api/v1/time-slots
func (h *TimeSlotHandler) ListTimeSlots(c *gin.Context) {
	list, err := h.timeSlotSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// CreateTimeSlot creates a time slot and returns the whole catalog.
// POST /api/v1/time-slots
func (h *TimeSlotHandler) CreateTimeSlot(c *gin.Context) {
	var req dto.CreateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	list, err := h.timeSlotSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTimeSlotError(c, err)
		return
	}

	response.Created(c, list)
}

// UpdateTimeSlot replaces a time slot and returns the whole catalog.
// PUT /api/v1/time-slots/:id
func (h *TimeSlotHandler) UpdateTimeSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "time slot id is required")
		return
	}

	var req dto.UpdateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	list, err := h.timeSlotSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleTimeSlotError(c, err)
		return
	}

	response.OK(c, list)
}

// DeleteTimeSlot removes a time slot and returns the whole catalog.
// DELETE /api/v1/time-slots/:id
func (h *TimeSlotHandler) DeleteTimeSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "time slot id is required")
		return
	}

	list, err := h.timeSlotSvc.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleTimeSlotError(c, err)
		return
	}

	response.OK(c, list)
}

// handleTimeSlotError maps time-slot business errors to responses.
func (h *TimeSlotHandler) handleTimeSlotError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimeSlotNotFound):
		response.NotFound(c, 15001, "time slot not found")
	case errors.Is(err, service.ErrTimeSlotExists):
		response.Conflict(c, 15002, "time slot id already exists")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 15003, "end time must be after start time")
	default:
		response.InternalError(c)
	}
}
