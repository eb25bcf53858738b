package repository

import (
	"schoolhub_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id string) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.First(&assignment, "id = ?", id).Error
	return &assignment, err
}

func (r *AssignmentRepository) Update(assignment *model.Assignment) error {
	return r.DB.Save(assignment).Error
}

func (r *AssignmentRepository) Delete(id string) error {
	return r.DB.Delete(&model.Assignment{}, "id = ?", id).Error
}

// ListPublished returns every published assignment; class targeting
// is evaluated in the service because assignedClasses is a JSON list.
func (r *AssignmentRepository) ListPublished() ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("status = ?", model.AssignmentPublished).
		Order("created_at desc").
		Find(&assignments).Error
	return assignments, err
}
