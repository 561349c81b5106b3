package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/GencZhushi/schedule-builder/internal/model"
)

// ClassroomRepository is the classroom catalog data-access interface.
type ClassroomRepository interface {
	Create(ctx context.Context, room *model.Classroom) error
	GetByID(ctx context.Context, id string) (*model.Classroom, error)
	List(ctx context.Context) ([]model.Classroom, error)
	Update(ctx context.Context, room *model.Classroom) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type classroomRepo struct {
	db *gorm.DB
}

// NewClassroomRepo creates a ClassroomRepository backed by Postgres.
func NewClassroomRepo(db *gorm.DB) ClassroomRepository {
	return &classroomRepo{db: db}
}

func (r *classroomRepo) Create(ctx context.Context, room *model.Classroom) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *classroomRepo) GetByID(ctx context.Context, id string) (*model.Classroom, error) {
	var room model.Classroom
	err := r.db.WithContext(ctx).
		Where("classroom_id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *classroomRepo) List(ctx context.Context) ([]model.Classroom, error) {
	var rooms []model.Classroom
	// Insertion order, stable across calls; the id breaks creation-time ties.
	err := r.db.WithContext(ctx).
		Order("created_at ASC, classroom_id ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *classroomRepo) Update(ctx context.Context, room *model.Classroom) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *classroomRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("classroom_id = ?", id).
		Delete(&model.Classroom{}).Error
}

func (r *classroomRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Classroom{}).Count(&n).Error
	return n, err
}
