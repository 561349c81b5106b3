package service

import (
	"go.uber.org/zap"

	"github.com/GencZhushi/schedule-builder/config"
	"github.com/GencZhushi/schedule-builder/internal/repository"
)

// Service aggregates every business service.
type Service struct {
	Session   SessionService
	Classroom ClassroomService
	TimeSlot  TimeSlotService
}

// NewService wires the service aggregate.
func NewService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) *Service {
	return &Service{
		Session:   NewSessionService(cfg, repo, logger),
		Classroom: NewClassroomService(repo, logger),
		TimeSlot:  NewTimeSlotService(repo, logger),
	}
}
