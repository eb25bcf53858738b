package service

import (
	"encoding/json"
	"testing"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeAssignmentStore struct {
	assignments map[string]*model.Assignment
}

func newFakeAssignmentStore(assignments ...*model.Assignment) *fakeAssignmentStore {
	store := &fakeAssignmentStore{assignments: make(map[string]*model.Assignment)}
	for _, a := range assignments {
		store.assignments[a.ID] = a
	}
	return store
}

func (f *fakeAssignmentStore) FindByID(id string) (*model.Assignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (f *fakeAssignmentStore) ListPublished() ([]model.Assignment, error) {
	out := []model.Assignment{}
	for _, a := range f.assignments {
		if a.Status == model.AssignmentPublished {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeSubmissionStore struct {
	submissions []*model.Submission
}

func (f *fakeSubmissionStore) Create(submission *model.Submission) error {
	f.submissions = append(f.submissions, submission)
	return nil
}

func (f *fakeSubmissionStore) Exists(assignmentID, studentID string) (bool, error) {
	for _, s := range f.submissions {
		if s.AssignmentID == assignmentID && s.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSubmissionStore) ListByStudent(studentID string) ([]model.Submission, error) {
	out := []model.Submission{}
	for _, s := range f.submissions {
		if s.StudentID == studentID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func testStudent() *model.StudentAccount {
	student := &model.StudentAccount{
		SchoolID:    "sch-1",
		ClassName:   "Class 6",
		StudentName: "Asha",
	}
	student.ID = "stu-1"
	return student
}

func publishedAssignment(id string, classes ...string) *model.Assignment {
	a := &model.Assignment{
		Title:           "Weekly Test",
		Status:          model.AssignmentPublished,
		AssignedClasses: classes,
		Questions: []model.AssignmentQuestion{
			{QNo: 1, Type: model.QuestionMCQ, Correct: []interface{}{float64(0)}, Marks: 2},
			{QNo: 2, Type: model.QuestionTF, Correct: []interface{}{"true"}},
		},
	}
	a.ID = id
	return a
}

func TestListForStudentClassTargeting(t *testing.T) {
	tests := []struct {
		name    string
		classes []string
		matched bool
	}{
		{"plain class name", []string{"Class 6"}, true},
		{"school qualified name", []string{"sch-1_Class 6"}, true},
		{"other class only", []string{"Class 7"}, false},
		{"other school qualified", []string{"sch-2_Class 6"}, false},
		{"mixed with a match", []string{"Class 7", "sch-1_Class 6"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAssignmentService(
				newFakeAssignmentStore(publishedAssignment("a-1", tt.classes...)),
				&fakeSubmissionStore{},
			)

			assignments, err := svc.ListForStudent(testStudent())
			require.NoError(t, err)
			if tt.matched {
				assert.Len(t, assignments, 1)
			} else {
				assert.Empty(t, assignments)
			}
		})
	}
}

func TestListForStudentSkipsDrafts(t *testing.T) {
	draft := publishedAssignment("a-1", "Class 6")
	draft.Status = model.AssignmentDraft

	svc := NewAssignmentService(newFakeAssignmentStore(draft), &fakeSubmissionStore{})
	assignments, err := svc.ListForStudent(testStudent())
	require.NoError(t, err)
	assert.Empty(t, assignments)
}

func TestDecodeAnswers(t *testing.T) {
	answers := DecodeAnswers(map[string]interface{}{
		"1":   float64(0),
		"2":   "true",
		"bad": "dropped",
	})
	assert.Equal(t, float64(0), answers[1])
	assert.Equal(t, "true", answers[2])
	assert.Len(t, answers, 2)
}

func TestSubmitGradesAndPersists(t *testing.T) {
	submissions := &fakeSubmissionStore{}
	svc := NewAssignmentService(
		newFakeAssignmentStore(publishedAssignment("a-1", "Class 6")),
		submissions,
	)

	submission, err := svc.Submit("a-1", testStudent(), map[string]interface{}{
		"1": float64(0), // correct, 2 marks
		"2": false,      // wrong
	})
	require.NoError(t, err)

	assert.Equal(t, 2.0, submission.Score)
	assert.Equal(t, 3.0, submission.TotalMarks)
	assert.Equal(t, 66.67, submission.Percentage)
	assert.True(t, submission.AutoEvaluated)
	assert.Equal(t, "submitted", submission.Status)
	assert.Equal(t, "Asha", submission.StudentName)
	require.Len(t, submissions.submissions, 1)

	// the raw answers survive verbatim for later review
	var stored map[string]interface{}
	require.NoError(t, json.Unmarshal(submission.Answers, &stored))
	assert.Equal(t, float64(0), stored["1"])
}

func TestSubmitRejectsDuplicate(t *testing.T) {
	submissions := &fakeSubmissionStore{}
	svc := NewAssignmentService(
		newFakeAssignmentStore(publishedAssignment("a-1", "Class 6")),
		submissions,
	)
	student := testStudent()

	_, err := svc.Submit("a-1", student, map[string]interface{}{"1": float64(0)})
	require.NoError(t, err)

	_, err = svc.Submit("a-1", student, map[string]interface{}{"1": float64(0)})
	assert.ErrorIs(t, err, util.ErrAlreadySubmitted)
	assert.Len(t, submissions.submissions, 1, "duplicate must be blocked before grading")
}

func TestSubmitUnknownAssignment(t *testing.T) {
	svc := NewAssignmentService(newFakeAssignmentStore(), &fakeSubmissionStore{})
	_, err := svc.Submit("missing", testStudent(), nil)
	assert.ErrorIs(t, err, util.ErrAssignmentNotFound)
}

func TestSubmitRegradeMatchesStoredScore(t *testing.T) {
	assignment := publishedAssignment("a-1", "Class 6")
	submissions := &fakeSubmissionStore{}
	svc := NewAssignmentService(newFakeAssignmentStore(assignment), submissions)

	raw := map[string]interface{}{"1": float64(0), "2": "true"}
	submission, err := svc.Submit("a-1", testStudent(), raw)
	require.NoError(t, err)

	// re-grading the stored answers reproduces the persisted score
	var stored map[string]interface{}
	require.NoError(t, json.Unmarshal(submission.Answers, &stored))
	regraded := EvaluateSubmission(assignment.Questions, DecodeAnswers(stored))
	assert.Equal(t, submission.Score, regraded.ObtainedMarks)
	assert.Equal(t, submission.TotalMarks, regraded.TotalMarks)
}
