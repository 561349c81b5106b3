package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/GencZhushi/schedule-builder/internal/dto"
	"github.com/GencZhushi/schedule-builder/internal/service"
	"github.com/GencZhushi/schedule-builder/pkg/response"
)

// ClassroomHandler serves the classroom catalog endpoints.
type ClassroomHandler struct {
	classroomSvc service.ClassroomService
}

// NewClassroomHandler creates a ClassroomHandler.
func NewClassroomHandler(classroomSvc service.ClassroomService) *ClassroomHandler {
	return &ClassroomHandler{classroomSvc: classroomSvc}
}

// ListClassrooms returns the whole catalog.
// GET /api/v1/classrooms
func (h *ClassroomHandler) ListClassrooms(c *gin.Context) {
	list, err := h.classroomSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, list)
}

// CreateClassroom creates a classroom and returns the whole catalog.
// POST /api/v1/classrooms
func (h *ClassroomHandler) CreateClassroom(c *gin.Context) {
	var req dto.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	list, err := h.classroomSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.Created(c, list)
}

// UpdateClassroom replaces a classroom and returns the whole catalog.
// PUT /api/v1/classrooms/:id
func (h *ClassroomHandler) UpdateClassroom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "classroom id is required")
		return
	}

	var req dto.UpdateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	list, err := h.classroomSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, list)
}

// DeleteClassroom removes a classroom and returns the whole catalog.
// DELETE /api/v1/classrooms/:id
func (h *ClassroomHandler) DeleteClassroom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "classroom id is required")
		return
	}

	list, err := h.classroomSvc.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleClassroomError(c, err)
		return
	}

	response.OK(c, list)
}

// handleClassroomError maps classroom business errors to responses.
func (h *ClassroomHandler) handleClassroomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassroomNotFound):
		response.NotFound(c, 14001, "classroom not found")
	case errors.Is(err, service.ErrClassroomExists):
		response.Conflict(c, 14002, "classroom id already exists")
	case errors.Is(err, service.ErrInvalidCapacity):
		response.BadRequest(c, 14003, "capacity must be a positive integer")
	default:
		response.InternalError(c)
	}
}
