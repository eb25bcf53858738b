package repository

import (
	"schoolhub_backend/internal/model"

	"gorm.io/gorm"
)

// SchoolRepository is the admin-side write path for schools, classes
// and rosters; parents only ever read this data through the linking
// flow.
type SchoolRepository struct {
	DB *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{DB: db}
}

func (r *SchoolRepository) CreateSchool(school *model.School) error {
	return r.DB.Create(school).Error
}

func (r *SchoolRepository) SchoolExists(id string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.School{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *SchoolRepository) CreateClass(class *model.SchoolClass) error {
	return r.DB.Create(class).Error
}

func (r *SchoolRepository) AddRosterEntry(entry *model.ClassStudent) error {
	return r.DB.Create(entry).Error
}

func (r *SchoolRepository) ListRoster(classID string) ([]model.ClassStudent, error) {
	var entries []model.ClassStudent
	err := r.DB.Where("class_id = ?", classID).Order("roll_number asc").Find(&entries).Error
	return entries, err
}

func (r *SchoolRepository) RosterEntryExists(classID, rollNumber string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ClassStudent{}).
		Where("class_id = ? AND roll_number = ?", classID, rollNumber).
		Count(&count).Error
	return count > 0, err
}
