package service

import (
	"testing"

	"schoolhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateSubmissionPerType(t *testing.T) {
	tests := []struct {
		name     string
		question model.AssignmentQuestion
		answer   interface{}
		correct  bool
	}{
		{
			name:     "mcq correct index",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionMCQ, Correct: []interface{}{float64(2)}},
			answer:   float64(2),
			correct:  true,
		},
		{
			name:     "mcq wrong index",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionMCQ, Correct: []interface{}{float64(2)}},
			answer:   float64(1),
			correct:  false,
		},
		{
			name:     "mcq string answer never matches numeric key",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionMCQ, Correct: []interface{}{float64(2)}},
			answer:   "2",
			correct:  false,
		},
		{
			name:     "msq exact set any order",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionMSQ, Correct: []interface{}{float64(0), float64(2)}},
			answer:   []interface{}{float64(2), float64(0)},
			correct:  true,
		},
		{
			name:     "msq subset earns nothing",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionMSQ, Correct: []interface{}{float64(0), float64(2)}},
			answer:   []interface{}{float64(0)},
			correct:  false,
		},
		{
			name:     "msq superset earns nothing",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionMSQ, Correct: []interface{}{float64(0), float64(2)}},
			answer:   []interface{}{float64(0), float64(1), float64(2)},
			correct:  false,
		},
		{
			name:     "msq non-list answer",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionMSQ, Correct: []interface{}{float64(0)}},
			answer:   float64(0),
			correct:  false,
		},
		{
			name:     "tf bool vs string key",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionTF, Correct: []interface{}{"true"}},
			answer:   true,
			correct:  true,
		},
		{
			name:     "tf string vs bool key",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionTF, Correct: []interface{}{false}},
			answer:   "false",
			correct:  true,
		},
		{
			name:     "tf mismatch",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionTF, Correct: []interface{}{"true"}},
			answer:   "false",
			correct:  false,
		},
		{
			name:     "numeric exact default tolerance",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionNumeric, Correct: []interface{}{float64(3.14)}},
			answer:   float64(3.14),
			correct:  true,
		},
		{
			name:     "numeric off by epsilon fails with zero tolerance",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionNumeric, Correct: []interface{}{float64(3.14)}},
			answer:   float64(3.15),
			correct:  false,
		},
		{
			name:     "numeric within tolerance",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionNumeric, Correct: []interface{}{float64(100)}, Tolerance: 0.5},
			answer:   float64(100.4),
			correct:  true,
		},
		{
			name:     "numeric string answer parsed",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionNumeric, Correct: []interface{}{float64(42)}},
			answer:   "42",
			correct:  true,
		},
		{
			name:     "numeric empty string never matches",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionNumeric, Correct: []interface{}{float64(0)}},
			answer:   "",
			correct:  false,
		},
		{
			name:     "numeric non-numeric text",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionNumeric, Correct: []interface{}{float64(42)}},
			answer:   "forty-two",
			correct:  false,
		},
		{
			name:     "short answer collected but not auto graded",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionShort, Correct: []interface{}{"gravity"}},
			answer:   "gravity",
			correct:  false,
		},
		{
			name:     "file answer not auto graded",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionFile},
			answer:   map[string]interface{}{"name": "essay.pdf", "url": "/uploads/x.pdf"},
			correct:  false,
		},
		{
			name:     "mcq with empty answer key",
			question: model.AssignmentQuestion{QNo: 1, Type: model.QuestionMCQ},
			answer:   float64(0),
			correct:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EvaluateSubmission(
				[]model.AssignmentQuestion{tt.question},
				map[int]interface{}{tt.question.QNo: tt.answer},
			)
			assert.Equal(t, 1.0, result.TotalMarks)
			if tt.correct {
				assert.Equal(t, 1.0, result.ObtainedMarks)
			} else {
				assert.Equal(t, 0.0, result.ObtainedMarks)
			}
		})
	}
}

func TestEvaluateSubmissionMarks(t *testing.T) {
	questions := []model.AssignmentQuestion{
		{QNo: 1, Type: model.QuestionMCQ, Correct: []interface{}{float64(0)}, Marks: 5},
		{QNo: 2, Type: model.QuestionMCQ, Correct: []interface{}{float64(1)}}, // marks default 1
		{QNo: 3, Type: model.QuestionLong, Marks: 10},
	}
	answers := map[int]interface{}{
		1: float64(0),
		2: float64(0),
		3: "a long essay",
	}

	result := EvaluateSubmission(questions, answers)
	assert.Equal(t, 16.0, result.TotalMarks)
	assert.Equal(t, 5.0, result.ObtainedMarks)
}

func TestEvaluateSubmissionUnanswered(t *testing.T) {
	questions := []model.AssignmentQuestion{
		{QNo: 1, Type: model.QuestionMCQ, Correct: []interface{}{float64(0)}, Marks: 2},
		{QNo: 2, Type: model.QuestionMCQ, Correct: []interface{}{float64(1)}, Marks: 3},
	}

	result := EvaluateSubmission(questions, map[int]interface{}{1: float64(0)})
	assert.Equal(t, 5.0, result.TotalMarks)
	assert.Equal(t, 2.0, result.ObtainedMarks)

	result = EvaluateSubmission(questions, nil)
	assert.Equal(t, 5.0, result.TotalMarks)
	assert.Equal(t, 0.0, result.ObtainedMarks)
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 66.67, Percentage(3, 2))
	assert.Equal(t, 100.0, Percentage(5, 5))
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 0.0, Percentage(0, 3))
}
