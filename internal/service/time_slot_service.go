package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/GencZhushi/schedule-builder/internal/dto"
	"github.com/GencZhushi/schedule-builder/internal/model"
	"github.com/GencZhushi/schedule-builder/internal/repository"
)

// ── Time-slot module business errors ──

var (
	ErrTimeSlotNotFound = errors.New("time slot not found")
	ErrTimeSlotExists   = errors.New("time slot id already exists")
	// ErrInvalidTimeRange means start/end do not form a positive same-day
	// window (or are not HH:MM at all).
	ErrInvalidTimeRange = errors.New("end time must be after start time")
)

// TimeSlotService is the time-slot catalog. Duration is always recomputed
// from start/end on write; every write returns the complete post-mutation
// list.
type TimeSlotService interface {
	Create(ctx context.Context, req *dto.CreateTimeSlotRequest) (*dto.TimeSlotListResponse, error)
	List(ctx context.Context) (*dto.TimeSlotListResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateTimeSlotRequest) (*dto.TimeSlotListResponse, error)
	Delete(ctx context.Context, id string) (*dto.TimeSlotListResponse, error)
	// SeedStandardSlots creates the faculty's standard Monday-Friday
	// morning/midday/evening slots when the catalog is empty.
	SeedStandardSlots(ctx context.Context) error
}

type timeSlotService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewTimeSlotService creates a TimeSlotService instance.
func NewTimeSlotService(repo *repository.Repository, logger *zap.Logger) TimeSlotService {
	return &timeSlotService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *timeSlotService) Create(ctx context.Context, req *dto.CreateTimeSlotRequest) (*dto.TimeSlotListResponse, error) {
	duration, err := slotDuration(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	id := req.ID
	if id == "" {
		// Generated ids are unique by construction (day + creation nanos);
		// a collision would be an internal error, not a caller conflict.
		id = fmt.Sprintf("%s-%d", strings.ToLower(req.Day), s.now().UnixNano())
	} else {
		if _, err := s.repo.TimeSlot.GetByID(ctx, id); err == nil {
			return nil, ErrTimeSlotExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("check time slot failed", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}

	slot := &model.TimeSlot{
		TimeSlotID:      id,
		Day:             model.Weekday(req.Day),
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		DurationMinutes: duration,
		Status:          statusOrDefault(req.Status),
	}

	if err := s.repo.TimeSlot.Create(ctx, slot); err != nil {
		// A concurrent create with the same id can slip past the check
		// above; the primary key turns that into a duplicate-key error.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTimeSlotExists
		}
		s.logger.Error("create time slot failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.List(ctx)
}

// ────────────────────── List ──────────────────────

func (s *timeSlotService) List(ctx context.Context) (*dto.TimeSlotListResponse, error) {
	slots, err := s.repo.TimeSlot.List(ctx)
	if err != nil {
		s.logger.Error("list time slots failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.TimeSlotListResponse{List: make([]dto.TimeSlotResponse, 0, len(slots))}
	for i := range slots {
		resp.List = append(resp.List, *toTimeSlotResponse(&slots[i]))
	}
	return resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *timeSlotService) Update(ctx context.Context, id string, req *dto.UpdateTimeSlotRequest) (*dto.TimeSlotListResponse, error) {
	duration, err := slotDuration(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	slot, err := s.repo.TimeSlot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeSlotNotFound
		}
		s.logger.Error("load time slot failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	// Path id wins; an id in the body cannot rename the resource.
	slot.Day = model.Weekday(req.Day)
	slot.StartTime = req.StartTime
	slot.EndTime = req.EndTime
	slot.DurationMinutes = duration
	slot.Status = statusOrDefault(req.Status)

	if err := s.repo.TimeSlot.Update(ctx, slot); err != nil {
		s.logger.Error("update time slot failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.List(ctx)
}

// ────────────────────── Delete ──────────────────────

func (s *timeSlotService) Delete(ctx context.Context, id string) (*dto.TimeSlotListResponse, error) {
	if _, err := s.repo.TimeSlot.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeSlotNotFound
		}
		s.logger.Error("load time slot failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if err := s.repo.TimeSlot.Delete(ctx, id); err != nil {
		s.logger.Error("delete time slot failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.List(ctx)
}

// ────────────────────── SeedStandardSlots ──────────────────────

// standardWindows are the faculty's default teaching windows.
var standardWindows = []struct {
	name  string
	start string
	end   string
}{
	{"morning", "09:00", "11:00"},
	{"midday", "11:00", "15:00"},
	{"evening", "15:00", "17:00"},
}

func (s *timeSlotService) SeedStandardSlots(ctx context.Context) error {
	n, err := s.repo.TimeSlot.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	days := []model.Weekday{model.Monday, model.Tuesday, model.Wednesday, model.Thursday, model.Friday}
	for _, day := range days {
		for _, w := range standardWindows {
			duration, err := slotDuration(w.start, w.end)
			if err != nil {
				return err
			}
			slot := &model.TimeSlot{
				TimeSlotID:      fmt.Sprintf("%s_%s", strings.ToLower(string(day)), w.name),
				Day:             day,
				StartTime:       w.start,
				EndTime:         w.end,
				DurationMinutes: duration,
				Status:          model.StatusAvailable,
			}
			if err := s.repo.TimeSlot.Create(ctx, slot); err != nil {
				return fmt.Errorf("seed slot %s: %w", slot.TimeSlotID, err)
			}
		}
	}

	s.logger.Info("standard time slots seeded", zap.Int("count", len(days)*len(standardWindows)))
	return nil
}

// ── Internal helpers ──

// slotDuration computes whole minutes between two same-day HH:MM values.
func slotDuration(start, end string) (int, error) {
	st, err := time.Parse("15:04", start)
	if err != nil {
		return 0, fmt.Errorf("%w: bad start time %q", ErrInvalidTimeRange, start)
	}
	et, err := time.Parse("15:04", end)
	if err != nil {
		return 0, fmt.Errorf("%w: bad end time %q", ErrInvalidTimeRange, end)
	}

	minutes := int(et.Sub(st).Minutes())
	if minutes <= 0 {
		return 0, ErrInvalidTimeRange
	}
	return minutes, nil
}

func toTimeSlotResponse(slot *model.TimeSlot) *dto.TimeSlotResponse {
	return &dto.TimeSlotResponse{
		ID:              slot.TimeSlotID,
		Day:             string(slot.Day),
		StartTime:       slot.StartTime,
		EndTime:         slot.EndTime,
		DurationMinutes: slot.DurationMinutes,
		Status:          string(slot.Status),
		CreatedAt:       slot.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:       slot.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
