package handler

import "github.com/GencZhushi/schedule-builder/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Session   *SessionHandler
	Classroom *ClassroomHandler
	TimeSlot  *TimeSlotHandler
}

// NewHandler wires the handler aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Session:   NewSessionHandler(svc.Session),
		Classroom: NewClassroomHandler(svc.Classroom),
		TimeSlot:  NewTimeSlotHandler(svc.TimeSlot),
	}
}
