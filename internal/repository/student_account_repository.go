package repository

import (
	"schoolhub_backend/internal/model"

	"gorm.io/gorm"
)

type StudentAccountRepository struct {
	DB *gorm.DB
}

func NewStudentAccountRepository(db *gorm.DB) *StudentAccountRepository {
	return &StudentAccountRepository{DB: db}
}

func (r *StudentAccountRepository) FindSchool(id string) (*model.School, error) {
	var school model.School
	err := r.DB.First(&school, "id = ?", id).Error
	return &school, err
}

func (r *StudentAccountRepository) ListClasses(schoolID string) ([]model.SchoolClass, error) {
	var classes []model.SchoolClass
	err := r.DB.Where("school_id = ?", schoolID).Order("name asc").Find(&classes).Error
	return classes, err
}

func (r *StudentAccountRepository) FindClass(id string) (*model.SchoolClass, error) {
	var class model.SchoolClass
	err := r.DB.First(&class, "id = ?", id).Error
	return &class, err
}

func (r *StudentAccountRepository) FindRosterEntry(classID, rollNumber string) (*model.ClassStudent, error) {
	var entry model.ClassStudent
	err := r.DB.Where("class_id = ? AND roll_number = ?", classID, rollNumber).First(&entry).Error
	return &entry, err
}

func (r *StudentAccountRepository) Create(account *model.StudentAccount) error {
	return r.DB.Create(account).Error
}

func (r *StudentAccountRepository) FindByID(id string) (*model.StudentAccount, error) {
	var account model.StudentAccount
	err := r.DB.First(&account, "id = ?", id).Error
	return &account, err
}

func (r *StudentAccountRepository) ListByUser(userID uint) ([]model.StudentAccount, error) {
	var accounts []model.StudentAccount
	err := r.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&accounts).Error
	return accounts, err
}

func (r *StudentAccountRepository) ExistsForUser(userID uint, classID, rollNumber string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.StudentAccount{}).
		Where("user_id = ? AND class_id = ? AND roll_number = ?", userID, classID, rollNumber).
		Count(&count).Error
	return count > 0, err
}

func (r *StudentAccountRepository) Delete(id string) error {
	return r.DB.Delete(&model.StudentAccount{}, "id = ?", id).Error
}
