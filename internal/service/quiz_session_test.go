package service

import (
	"strings"
	"testing"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func question(text, answer, concept string) model.QuizQuestion {
	return model.QuizQuestion{
		Question: text,
		Options: map[string]string{
			"A": "option a",
			"B": "option b",
		},
		Answer:      answer,
		Explanation: "because",
		Concept:     concept,
	}
}

func TestMergeQuestions(t *testing.T) {
	quizzes := []QuizRecord{
		{
			Concept: "Fractions",
			Questions: []model.QuizQuestion{
				question("q1", "A", ""),            // inherits quiz concept
				question("q2", "B", "Decimals"),    // own concept wins
			},
		},
		{
			Concept:   "Ratios",
			Questions: []model.QuizQuestion{question("q3", "A", "")},
		},
	}

	merged := MergeQuestions(quizzes)
	require.Len(t, merged, 3)
	assert.Equal(t, "Fractions", merged[0].Concept)
	assert.Equal(t, "Decimals", merged[1].Concept)
	assert.Equal(t, "Ratios", merged[2].Concept)
	assert.Equal(t, "q1", merged[0].Question)
	assert.Equal(t, "q3", merged[2].Question)
}

func TestSessionNoQuestions(t *testing.T) {
	session := NewQuizSession("stu-1", "Algebra", nil)
	assert.Equal(t, StateNoQuestions, session.State())

	_, ok := session.CurrentQuestion()
	assert.False(t, ok)

	_, err := session.SubmitAnswer("A")
	assert.Error(t, err)

	_, err = session.Advance()
	assert.Error(t, err)
}

func singleQuizSession(questions ...model.QuizQuestion) *QuizSession {
	return NewQuizSession("stu-1", "Algebra", []QuizRecord{{Questions: questions}})
}

func TestSessionAnswerFlow(t *testing.T) {
	session := singleQuizSession(
		question("q1", "A", "Fractions"),
		question("q2", "B", "Fractions"),
	)
	assert.Equal(t, StateAnswering, session.State())

	view, ok := session.CurrentQuestion()
	require.True(t, ok)
	assert.Equal(t, 0, view.Index)
	assert.Equal(t, 2, view.Total)
	assert.Equal(t, "Fractions", view.Concept)

	// advancing before answering is rejected
	_, err := session.Advance()
	assert.ErrorIs(t, err, util.ErrNotAnswered)

	result, err := session.SubmitAnswer("a") // case-insensitive
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, "A", result.CorrectKey)
	assert.Equal(t, 1, result.Score)
	assert.Equal(t, StateAnswered, session.State())

	outcome, err := session.Advance()
	require.NoError(t, err)
	assert.Equal(t, AdvanceNext, outcome)
	assert.Equal(t, StateAnswering, session.State())

	result, err = session.SubmitAnswer("A") // wrong, answer is B
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, 1, result.Score)

	outcome, err = session.Advance()
	require.NoError(t, err)
	assert.Equal(t, AdvanceCompleted, outcome)
	assert.Equal(t, StateCompleted, session.State())
}

func TestSessionReAnswerOverwrites(t *testing.T) {
	session := singleQuizSession(question("q1", "A", ""))

	result, err := session.SubmitAnswer("A")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Score)

	// changing the answer before advancing replaces the response
	result, err = session.SubmitAnswer("B")
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, 0, result.Score)

	responses := session.Responses()
	require.Len(t, responses, 1)
	assert.Equal(t, "B", responses[0].Selected)
}

func TestSessionCheckpointOnConceptChange(t *testing.T) {
	session := singleQuizSession(
		question("q1", "A", "Fractions"),
		question("q2", "A", "Decimals"),
	)

	_, err := session.SubmitAnswer("A")
	require.NoError(t, err)

	outcome, err := session.Advance()
	require.NoError(t, err)
	assert.Equal(t, AdvanceCheckpoint, outcome)
	assert.Equal(t, StateCheckpoint, session.State())

	// answering during a checkpoint is rejected
	_, err = session.SubmitAnswer("A")
	assert.Error(t, err)

	require.NoError(t, session.ContinueCheckpoint())
	assert.Equal(t, StateAnswering, session.State())

	view, ok := session.CurrentQuestion()
	require.True(t, ok)
	assert.Equal(t, 1, view.Index)
	assert.Equal(t, "Decimals", view.Concept)
}

func TestSessionNoCheckpointSameConcept(t *testing.T) {
	session := singleQuizSession(
		question("q1", "A", "Fractions"),
		question("q2", "A", "Fractions"),
	)

	_, err := session.SubmitAnswer("A")
	require.NoError(t, err)

	outcome, err := session.Advance()
	require.NoError(t, err)
	assert.Equal(t, AdvanceNext, outcome)
}

func TestSessionContinueWithoutCheckpoint(t *testing.T) {
	session := singleQuizSession(question("q1", "A", ""))
	assert.Error(t, session.ContinueCheckpoint())
}

func TestSessionEmptySelectionRejected(t *testing.T) {
	session := singleQuizSession(question("q1", "A", ""))
	_, err := session.SubmitAnswer("")
	assert.Error(t, err)
	assert.Equal(t, StateAnswering, session.State())
}

func TestBuildReport(t *testing.T) {
	session := NewQuizSession("stu-1", "Algebra & Sets", []QuizRecord{{
		Concept: "Sets",
		Questions: []model.QuizQuestion{
			question("q1", "A", ""),
			question("q2", "B", ""),
			question("q3", "A", ""),
		},
	}})

	answers := []string{"A", "A", "A"} // 2 of 3 correct
	for i, a := range answers {
		_, err := session.SubmitAnswer(a)
		require.NoError(t, err)
		outcome, err := session.Advance()
		require.NoError(t, err)
		if i < 2 {
			assert.Equal(t, AdvanceNext, outcome)
		} else {
			assert.Equal(t, AdvanceCompleted, outcome)
		}
	}

	report := session.BuildReport()
	assert.Equal(t, "stu-1_Algebra+%26+Sets", report.ID)
	assert.Equal(t, "stu-1", report.StudentID)
	assert.Equal(t, "Algebra & Sets", report.Chapter)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Score)
	assert.Equal(t, 66.7, report.Percentage) // one decimal
	require.Len(t, report.Responses, 3)
	assert.Equal(t, "Sets", report.Responses[0].Concept)
	assert.Equal(t, "A", report.Responses[1].Selected)
	assert.Equal(t, "B", report.Responses[1].Correct)
}

func TestBuildReportRegradeMatchesScore(t *testing.T) {
	session := NewQuizSession("stu-1", "Algebra", []QuizRecord{{
		Concept: "Sets",
		Questions: []model.QuizQuestion{
			question("q1", "A", ""),
			question("q2", "B", ""),
			question("q3", "A", ""),
			question("q4", "B", ""),
		},
	}})

	for _, a := range []string{"a", "A", "A", "B"} { // 3 of 4 correct, mixed case
		_, err := session.SubmitAnswer(a)
		require.NoError(t, err)
		_, err = session.Advance()
		require.NoError(t, err)
	}
	require.Equal(t, StateCompleted, session.State())

	// the persisted responses alone must reproduce the stored score
	report := session.BuildReport()
	regraded := 0
	for _, r := range report.Responses {
		if strings.EqualFold(r.Selected, r.Correct) {
			regraded++
		}
	}
	assert.Equal(t, report.Score, regraded)
	assert.Equal(t, 3, regraded)
}

func TestReportID(t *testing.T) {
	assert.Equal(t, "u1_Algebra", ReportID("u1", "Algebra"))
	assert.Equal(t, "u1_Linear+Equations", ReportID("u1", "Linear Equations"))
	assert.Equal(t, "u1_A%2FB", ReportID("u1", "A/B"))
}
