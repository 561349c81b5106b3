package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/GencZhushi/schedule-builder/internal/dto"
	"github.com/GencZhushi/schedule-builder/internal/service"
	"github.com/GencZhushi/schedule-builder/pkg/response"
)

// SessionHandler serves the ingestion-session endpoints.
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// Upload ingests a lecture workbook.
// POST /api/v1/sessions/upload
func (h *SessionHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			response.PayloadTooLarge(c, 10005, "request body too large")
			return
		}
		response.BadRequest(c, 10001, "multipart field 'file' is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, 10001, "uploaded file could not be opened")
		return
	}
	defer file.Close()

	sess, err := h.sessionSvc.Upload(c.Request.Context(), file)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.Created(c, sess)
}

// Get returns the full session view.
// GET /api/v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "session id is required")
		return
	}

	sess, err := h.sessionSvc.Get(c.Request.Context(), id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, sess)
}

// UpdateLecture replaces one lecture and returns the re-derived session.
// PUT /api/v1/sessions/:id/lectures/:lectureId
func (h *SessionHandler) UpdateLecture(c *gin.Context) {
	id := c.Param("id")
	lectureID := c.Param("lectureId")
	if id == "" || lectureID == "" {
		response.BadRequest(c, 10001, "session id and lecture id are required")
		return
	}

	var req dto.UpdateLectureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "request validation failed")
		return
	}

	sess, err := h.sessionSvc.UpdateLecture(c.Request.Context(), id, lectureID, &req)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, sess)
}

// DeleteLecture removes one lecture and returns the re-derived session.
// DELETE /api/v1/sessions/:id/lectures/:lectureId
func (h *SessionHandler) DeleteLecture(c *gin.Context) {
	id := c.Param("id")
	lectureID := c.Param("lectureId")
	if id == "" || lectureID == "" {
		response.BadRequest(c, 10001, "session id and lecture id are required")
		return
	}

	sess, err := h.sessionSvc.DeleteLecture(c.Request.Context(), id, lectureID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, sess)
}

// Delete removes a session. Removing an absent session succeeds.
// DELETE /api/v1/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "session id is required")
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), id); err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// handleSessionError maps session business errors to responses.
func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 13001, "session not found")
	case errors.Is(err, service.ErrWorkbookInvalid):
		response.ErrorWithDetails(c, 400, 13002, "workbook could not be parsed", err.Error())
	case errors.Is(err, service.ErrUploadTooLarge):
		response.PayloadTooLarge(c, 10005, err.Error())
	case errors.Is(err, service.ErrSessionStoreUnavailable):
		response.ServiceUnavailable(c, 13003, "session store unavailable, retry later")
	case errors.Is(err, service.ErrLectureNotFound):
		response.NotFound(c, 13004, "lecture not found in session")
	case errors.Is(err, service.ErrLectureIDImmutable):
		response.BadRequest(c, 13005, "lecture id cannot be changed")
	case isBodyTooLarge(err):
		response.PayloadTooLarge(c, 10005, "request body too large")
	default:
		response.InternalError(c)
	}
}

// isBodyTooLarge detects the http.MaxBytesReader failure surfaced while
// reading multipart content.
func isBodyTooLarge(err error) bool {
	return err != nil && strings.Contains(err.Error(), "request body too large")
}
