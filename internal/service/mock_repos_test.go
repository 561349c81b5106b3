package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/GencZhushi/schedule-builder/internal/model"
)

// ── Mock ClassroomRepository ──

type mockClassroomRepo struct {
	rooms     map[string]*model.Classroom
	order     []string
	createErr error
}

func newMockClassroomRepo() *mockClassroomRepo {
	return &mockClassroomRepo{rooms: make(map[string]*model.Classroom)}
}

func (m *mockClassroomRepo) Create(_ context.Context, room *model.Classroom) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.rooms[room.ClassroomID] = room
	m.order = append(m.order, room.ClassroomID)
	return nil
}

func (m *mockClassroomRepo) GetByID(_ context.Context, id string) (*model.Classroom, error) {
	if r, ok := m.rooms[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassroomRepo) List(_ context.Context) ([]model.Classroom, error) {
	result := make([]model.Classroom, 0, len(m.order))
	for _, id := range m.order {
		if r, ok := m.rooms[id]; ok {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockClassroomRepo) Update(_ context.Context, room *model.Classroom) error {
	m.rooms[room.ClassroomID] = room
	return nil
}

func (m *mockClassroomRepo) Delete(_ context.Context, id string) error {
	delete(m.rooms, id)
	return nil
}

func (m *mockClassroomRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.rooms)), nil
}

// ── Mock TimeSlotRepository ──

type mockTimeSlotRepo struct {
	slots     map[string]*model.TimeSlot
	order     []string
	createErr error
}

func newMockTimeSlotRepo() *mockTimeSlotRepo {
	return &mockTimeSlotRepo{slots: make(map[string]*model.TimeSlot)}
}

func (m *mockTimeSlotRepo) Create(_ context.Context, slot *model.TimeSlot) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.slots[slot.TimeSlotID] = slot
	m.order = append(m.order, slot.TimeSlotID)
	return nil
}

func (m *mockTimeSlotRepo) GetByID(_ context.Context, id string) (*model.TimeSlot, error) {
	if s, ok := m.slots[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeSlotRepo) List(_ context.Context) ([]model.TimeSlot, error) {
	result := make([]model.TimeSlot, 0, len(m.order))
	for _, id := range m.order {
		if s, ok := m.slots[id]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockTimeSlotRepo) Update(_ context.Context, slot *model.TimeSlot) error {
	m.slots[slot.TimeSlotID] = slot
	return nil
}

func (m *mockTimeSlotRepo) Delete(_ context.Context, id string) error {
	delete(m.slots, id)
	return nil
}

func (m *mockTimeSlotRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.slots)), nil
}
