package repository

import (
	"errors"

	"schoolhub_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.Submission) error {
	return r.DB.Create(submission).Error
}

func (r *SubmissionRepository) FindByAssignmentAndStudent(assignmentID, studentID string) (*model.Submission, error) {
	var submission model.Submission
	err := r.DB.Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	return &submission, err
}

func (r *SubmissionRepository) Exists(assignmentID, studentID string) (bool, error) {
	_, err := r.FindByAssignmentAndStudent(assignmentID, studentID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (r *SubmissionRepository) ListByAssignment(assignmentID string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Where("assignment_id = ?", assignmentID).
		Order("submitted_at desc").
		Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) ListByStudent(studentID string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Where("student_id = ?", studentID).
		Order("submitted_at desc").
		Find(&submissions).Error
	return submissions, err
}
