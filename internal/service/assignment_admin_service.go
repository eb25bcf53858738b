package service

import (
	"errors"
	"time"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/repository"
	"schoolhub_backend/internal/util"

	"gorm.io/gorm"
)

// AssignmentAdminService is the teacher-side authoring path for
// assignments.
type AssignmentAdminService struct {
	Assignments *repository.AssignmentRepository
	Submissions *repository.SubmissionRepository
}

func NewAssignmentAdminService(assignments *repository.AssignmentRepository, submissions *repository.SubmissionRepository) *AssignmentAdminService {
	return &AssignmentAdminService{Assignments: assignments, Submissions: submissions}
}

type AssignmentDraftReq struct {
	Title           string                     `json:"title" binding:"required"`
	Description     string                     `json:"description"`
	Subject         string                     `json:"subject"`
	SchoolID        string                     `json:"schoolId" binding:"required"`
	AssignedClasses []string                   `json:"assignedClasses" binding:"required,min=1"`
	Questions       []model.AssignmentQuestion `json:"questions" binding:"required,min=1"`
	DueDate         *time.Time                 `json:"dueDate"`
	Publish         bool                       `json:"publish"`
}

func (s *AssignmentAdminService) Create(creatorID uint, req AssignmentDraftReq) (*model.Assignment, error) {
	status := model.AssignmentDraft
	if req.Publish {
		status = model.AssignmentPublished
	}

	assignment := &model.Assignment{
		Title:           req.Title,
		Description:     req.Description,
		Subject:         req.Subject,
		SchoolID:        req.SchoolID,
		Status:          status,
		AssignedClasses: req.AssignedClasses,
		Questions:       req.Questions,
		DueDate:         req.DueDate,
		CreatorID:       creatorID,
	}
	if err := s.Assignments.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentAdminService) find(id string) (*model.Assignment, error) {
	assignment, err := s.Assignments.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

// Publish flips a draft to published, making it visible to the
// targeted classes.
func (s *AssignmentAdminService) Publish(id string) (*model.Assignment, error) {
	assignment, err := s.find(id)
	if err != nil {
		return nil, err
	}
	if assignment.Status != model.AssignmentPublished {
		assignment.Status = model.AssignmentPublished
		if err := s.Assignments.Update(assignment); err != nil {
			return nil, err
		}
	}
	return assignment, nil
}

func (s *AssignmentAdminService) Delete(id string) error {
	if _, err := s.find(id); err != nil {
		return err
	}
	return s.Assignments.Delete(id)
}

// Submissions lists everything handed in for one assignment.
func (s *AssignmentAdminService) ListSubmissions(assignmentID string) ([]model.Submission, error) {
	if _, err := s.find(assignmentID); err != nil {
		return nil, err
	}
	return s.Submissions.ListByAssignment(assignmentID)
}
