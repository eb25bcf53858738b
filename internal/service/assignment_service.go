package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"

	"gorm.io/gorm"
)

// AssignmentStore / SubmissionStore are the slices of the
// repositories this service needs; tests swap in fakes.
type AssignmentStore interface {
	FindByID(id string) (*model.Assignment, error)
	ListPublished() ([]model.Assignment, error)
}

type SubmissionStore interface {
	Create(submission *model.Submission) error
	Exists(assignmentID, studentID string) (bool, error)
	ListByStudent(studentID string) ([]model.Submission, error)
}

type AssignmentService struct {
	Assignments AssignmentStore
	Submissions SubmissionStore
}

func NewAssignmentService(assignments AssignmentStore, submissions SubmissionStore) *AssignmentService {
	return &AssignmentService{Assignments: assignments, Submissions: submissions}
}

// ListForStudent returns published assignments targeted at the
// student's class, matched either by plain class name or by the
// school-qualified form.
func (s *AssignmentService) ListForStudent(student *model.StudentAccount) ([]model.Assignment, error) {
	if student.ClassName == "" || student.SchoolID == "" {
		return []model.Assignment{}, nil
	}

	published, err := s.Assignments.ListPublished()
	if err != nil {
		return nil, err
	}

	qualified := fmt.Sprintf("%s_%s", student.SchoolID, student.ClassName)
	matched := []model.Assignment{}
	for _, assignment := range published {
		for _, target := range assignment.AssignedClasses {
			if target == student.ClassName || target == qualified {
				matched = append(matched, assignment)
				break
			}
		}
	}
	return matched, nil
}

func (s *AssignmentService) Get(id string) (*model.Assignment, error) {
	assignment, err := s.Assignments.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment, nil
}

// DecodeAnswers converts the wire answer map (JSON object keys are
// strings) into the qNo-keyed map the grader consumes. Entries with
// non-numeric keys are dropped.
func DecodeAnswers(raw map[string]interface{}) map[int]interface{} {
	answers := make(map[int]interface{}, len(raw))
	for key, value := range raw {
		qNo, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		answers[qNo] = value
	}
	return answers
}

// Submit grades the answers and persists the submission. Exactly one
// submission per (assignment, student): a second attempt is rejected
// before any grading happens.
func (s *AssignmentService) Submit(assignmentID string, student *model.StudentAccount, rawAnswers map[string]interface{}) (*model.Submission, error) {
	exists, err := s.Submissions.Exists(assignmentID, student.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadySubmitted
	}

	assignment, err := s.Get(assignmentID)
	if err != nil {
		return nil, err
	}

	result := EvaluateSubmission(assignment.Questions, DecodeAnswers(rawAnswers))

	answersJSON, err := json.Marshal(rawAnswers)
	if err != nil {
		return nil, err
	}

	submission := &model.Submission{
		AssignmentID:  assignmentID,
		StudentID:     student.ID,
		StudentName:   student.StudentName,
		ClassName:     student.ClassName,
		Answers:       answersJSON,
		Score:         result.ObtainedMarks,
		TotalMarks:    result.TotalMarks,
		Percentage:    Percentage(result.TotalMarks, result.ObtainedMarks),
		AutoEvaluated: true,
		Status:        "submitted",
		SubmittedAt:   time.Now(),
	}
	if err := s.Submissions.Create(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *AssignmentService) ListSubmissions(student *model.StudentAccount) ([]model.Submission, error) {
	return s.Submissions.ListByStudent(student.ID)
}
