package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/GencZhushi/schedule-builder/internal/dto"
	"github.com/GencZhushi/schedule-builder/internal/model"
	"github.com/GencZhushi/schedule-builder/internal/repository"
)

// ── Classroom module business errors ──

var (
	ErrClassroomNotFound = errors.New("classroom not found")
	ErrClassroomExists   = errors.New("classroom id already exists")
	// ErrInvalidCapacity means capacity is not a positive integer.
	ErrInvalidCapacity = errors.New("classroom capacity must be a positive integer")
)

// ClassroomService is the classroom catalog. Every write returns the
// complete post-mutation list so callers can replace their cache wholesale.
type ClassroomService interface {
	Create(ctx context.Context, req *dto.CreateClassroomRequest) (*dto.ClassroomListResponse, error)
	List(ctx context.Context) (*dto.ClassroomListResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateClassroomRequest) (*dto.ClassroomListResponse, error)
	Delete(ctx context.Context, id string) (*dto.ClassroomListResponse, error)
}

type classroomService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassroomService creates a ClassroomService instance.
func NewClassroomService(repo *repository.Repository, logger *zap.Logger) ClassroomService {
	return &classroomService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *classroomService) Create(ctx context.Context, req *dto.CreateClassroomRequest) (*dto.ClassroomListResponse, error) {
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	if _, err := s.repo.Classroom.GetByID(ctx, req.ID); err == nil {
		return nil, ErrClassroomExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("check classroom failed", zap.String("id", req.ID), zap.Error(err))
		return nil, err
	}

	room := &model.Classroom{
		ClassroomID: req.ID,
		Name:        req.Name,
		Capacity:    req.Capacity,
		Equipment:   req.Equipment,
		Status:      statusOrDefault(req.Status),
	}

	if err := s.repo.Classroom.Create(ctx, room); err != nil {
		// A concurrent create with the same id can slip past the check
		// above; the primary key turns that into a duplicate-key error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrClassroomExists
		}
		s.logger.Error("create classroom failed", zap.String("id", req.ID), zap.Error(err))
		return nil, err
	}

	return s.List(ctx)
}

// ────────────────────── List ──────────────────────

func (s *classroomService) List(ctx context.Context) (*dto.ClassroomListResponse, error) {
	rooms, err := s.repo.Classroom.List(ctx)
	if err != nil {
		s.logger.Error("list classrooms failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.ClassroomListResponse{List: make([]dto.ClassroomResponse, 0, len(rooms))}
	for i := range rooms {
		resp.List = append(resp.List, *toClassroomResponse(&rooms[i]))
	}
	return resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *classroomService) Update(ctx context.Context, id string, req *dto.UpdateClassroomRequest) (*dto.ClassroomListResponse, error) {
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	room, err := s.repo.Classroom.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("load classroom failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// Path id wins; an id in the body cannot rename the resource.
	room.Name = req.Name
	room.Capacity = req.Capacity
	room.Equipment = req.Equipment
	room.Status = statusOrDefault(req.Status)

	if err := s.repo.Classroom.Update(ctx, room); err != nil {
		s.logger.Error("update classroom failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.List(ctx)
}

// ────────────────────── Delete ──────────────────────

func (s *classroomService) Delete(ctx context.Context, id string) (*dto.ClassroomListResponse, error) {
	if _, err := s.repo.Classroom.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClassroomNotFound
		}
		s.logger.Error("load classroom failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if err := s.repo.Classroom.Delete(ctx, id); err != nil {
		s.logger.Error("delete classroom failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.List(ctx)
}

// ── Internal helpers ──

func statusOrDefault(raw string) model.ResourceStatus {
	if raw == "" {
		return model.StatusAvailable
	}
	return model.ResourceStatus(raw)
}

func toClassroomResponse(room *model.Classroom) *dto.ClassroomResponse {
	return &dto.ClassroomResponse{
		ID:        room.ClassroomID,
		Name:      room.Name,
		Capacity:  room.Capacity,
		Equipment: room.Equipment,
		Status:    string(room.Status),
		CreatedAt: room.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: room.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
