package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/GencZhushi/schedule-builder/internal/dto"
	"github.com/GencZhushi/schedule-builder/internal/repository"
)

// ── Test helpers ──

func setupTestTimeSlotService() (*timeSlotService, *mockTimeSlotRepo) {
	timeSlotRepo := newMockTimeSlotRepo()
	repo := &repository.Repository{
		Classroom: newMockClassroomRepo(),
		TimeSlot:  timeSlotRepo,
		Session:   repository.NewMemorySessionRepo(time.Hour, 10),
	}
	svc := NewTimeSlotService(repo, zap.NewNop()).(*timeSlotService)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	}
	return svc, timeSlotRepo
}

// ── Create ──

func TestTimeSlotService_Create_ComputesDuration(t *testing.T) {
	svc, _ := setupTestTimeSlotService()

	req := &dto.CreateTimeSlotRequest{
		ID:        "monday_morning",
		Day:       "Monday",
		StartTime: "09:00",
		EndTime:   "11:00",
	}

	list, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	got := list.List[0]
	if got.DurationMinutes != 120 {
		t.Errorf("expected 120 minutes, got %d", got.DurationMinutes)
	}
	if got.Status != "available" {
		t.Errorf("omitted status must default to available, got %s", got.Status)
	}
}

func TestTimeSlotService_Create_GeneratesID(t *testing.T) {
	svc, _ := setupTestTimeSlotService()

	req := &dto.CreateTimeSlotRequest{Day: "Tuesday", StartTime: "11:00", EndTime: "15:00"}
	list, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if !strings.HasPrefix(list.List[0].ID, "tuesday-") {
		t.Errorf("generated id must start with the lowercased day, got %s", list.List[0].ID)
	}
}

func TestTimeSlotService_Create_DuplicateID(t *testing.T) {
	svc, _ := setupTestTimeSlotService()
	ctx := context.Background()

	req := &dto.CreateTimeSlotRequest{ID: "monday_morning", Day: "Monday", StartTime: "09:00", EndTime: "11:00"}
	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("first Create should succeed: %v", err)
	}

	_, err := svc.Create(ctx, req)
	if !errors.Is(err, ErrTimeSlotExists) {
		t.Fatalf("expected ErrTimeSlotExists, got %v", err)
	}
}

// A create racing past the existence check hits the primary key instead;
// the duplicate-key error must still map to the conflict error.
func TestTimeSlotService_Create_RacedDuplicateMapsToConflict(t *testing.T) {
	svc, timeSlotRepo := setupTestTimeSlotService()
	timeSlotRepo.createErr = gorm.ErrDuplicatedKey

	req := &dto.CreateTimeSlotRequest{ID: "monday_morning", Day: "Monday", StartTime: "09:00", EndTime: "11:00"}
	_, err := svc.Create(context.Background(), req)
	if !errors.Is(err, ErrTimeSlotExists) {
		t.Fatalf("expected ErrTimeSlotExists, got %v", err)
	}
}

func TestTimeSlotService_Create_InvalidTimeRange(t *testing.T) {
	svc, _ := setupTestTimeSlotService()
	ctx := context.Background()

	cases := []struct{ start, end string }{
		{"11:00", "09:00"}, // inverted
		{"09:00", "09:00"}, // zero-length
		{"late", "11:00"},  // not HH:MM
		{"09:00", "25:99"},
	}
	for _, tc := range cases {
		req := &dto.CreateTimeSlotRequest{Day: "Monday", StartTime: tc.start, EndTime: tc.end}
		_, err := svc.Create(ctx, req)
		if !errors.Is(err, ErrInvalidTimeRange) {
			t.Errorf("%s-%s: expected ErrInvalidTimeRange, got %v", tc.start, tc.end, err)
		}
	}
}

// ── Update ──

func TestTimeSlotService_Update_RecomputesDuration(t *testing.T) {
	svc, _ := setupTestTimeSlotService()
	ctx := context.Background()

	_, _ = svc.Create(ctx, &dto.CreateTimeSlotRequest{ID: "monday_morning", Day: "Monday", StartTime: "09:00", EndTime: "11:00"})

	req := &dto.UpdateTimeSlotRequest{Day: "Monday", StartTime: "09:30", EndTime: "10:15"}
	list, err := svc.Update(ctx, "monday_morning", req)
	if err != nil {
		t.Fatalf("Update should succeed: %v", err)
	}
	if list.List[0].DurationMinutes != 45 {
		t.Errorf("expected recomputed 45 minutes, got %d", list.List[0].DurationMinutes)
	}
}

func TestTimeSlotService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestTimeSlotService()

	req := &dto.UpdateTimeSlotRequest{Day: "Monday", StartTime: "09:00", EndTime: "11:00"}
	_, err := svc.Update(context.Background(), "absent", req)
	if !errors.Is(err, ErrTimeSlotNotFound) {
		t.Fatalf("expected ErrTimeSlotNotFound, got %v", err)
	}
}

func TestTimeSlotService_Update_InvalidRangeCheckedFirst(t *testing.T) {
	svc, _ := setupTestTimeSlotService()

	// A bad range fails even when the slot does not exist.
	req := &dto.UpdateTimeSlotRequest{Day: "Monday", StartTime: "11:00", EndTime: "09:00"}
	_, err := svc.Update(context.Background(), "absent", req)
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("expected ErrInvalidTimeRange, got %v", err)
	}
}

// ── Delete ──

func TestTimeSlotService_Delete_Success(t *testing.T) {
	svc, _ := setupTestTimeSlotService()
	ctx := context.Background()

	_, _ = svc.Create(ctx, &dto.CreateTimeSlotRequest{ID: "monday_morning", Day: "Monday", StartTime: "09:00", EndTime: "11:00"})

	list, err := svc.Delete(ctx, "monday_morning")
	if err != nil {
		t.Fatalf("Delete should succeed: %v", err)
	}
	if len(list.List) != 0 {
		t.Errorf("expected an empty catalog, got %+v", list.List)
	}
}

func TestTimeSlotService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestTimeSlotService()

	_, err := svc.Delete(context.Background(), "absent")
	if !errors.Is(err, ErrTimeSlotNotFound) {
		t.Fatalf("expected ErrTimeSlotNotFound, got %v", err)
	}
}

// ── SeedStandardSlots ──

func TestTimeSlotService_Seed_CreatesStandardSlots(t *testing.T) {
	svc, timeSlotRepo := setupTestTimeSlotService()
	ctx := context.Background()

	if err := svc.SeedStandardSlots(ctx); err != nil {
		t.Fatalf("SeedStandardSlots should succeed: %v", err)
	}
	if len(timeSlotRepo.slots) != 15 {
		t.Fatalf("expected 15 seeded slots, got %d", len(timeSlotRepo.slots))
	}

	slot, ok := timeSlotRepo.slots["monday_morning"]
	if !ok {
		t.Fatal("expected slot monday_morning")
	}
	if slot.StartTime != "09:00" || slot.EndTime != "11:00" || slot.DurationMinutes != 120 {
		t.Errorf("unexpected monday_morning slot: %+v", slot)
	}

	if _, ok := timeSlotRepo.slots["friday_evening"]; !ok {
		t.Error("expected slot friday_evening")
	}
}

func TestTimeSlotService_Seed_SkipsNonEmptyCatalog(t *testing.T) {
	svc, timeSlotRepo := setupTestTimeSlotService()
	ctx := context.Background()

	_, _ = svc.Create(ctx, &dto.CreateTimeSlotRequest{ID: "custom", Day: "Monday", StartTime: "08:00", EndTime: "09:00"})

	if err := svc.SeedStandardSlots(ctx); err != nil {
		t.Fatalf("SeedStandardSlots should succeed: %v", err)
	}
	if len(timeSlotRepo.slots) != 1 {
		t.Errorf("seeding must be a no-op on a non-empty catalog, got %d slots", len(timeSlotRepo.slots))
	}
}
