package service

import (
	"net/url"
	"strings"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
)

type SessionState string

const (
	StateNoQuestions SessionState = "no_questions"
	StateAnswering   SessionState = "answering"
	StateAnswered    SessionState = "answered"
	StateCheckpoint  SessionState = "checkpoint"
	StateCompleted   SessionState = "completed"
)

// MergedQuestion is one question in the session stream with its
// concept resolved: the question's own tag wins over the parent
// quiz document's.
type MergedQuestion struct {
	model.QuizQuestion
	Concept string
}

// MergeQuestions flattens the chapter's quiz documents into one
// ordered stream. The quiz list order (sorted by creation time
// upstream) is preserved, never re-sorted here.
func MergeQuestions(quizzes []QuizRecord) []MergedQuestion {
	merged := []MergedQuestion{}
	for _, quiz := range quizzes {
		for _, q := range quiz.Questions {
			concept := q.Concept
			if concept == "" {
				concept = quiz.Concept
			}
			merged = append(merged, MergedQuestion{QuizQuestion: q, Concept: concept})
		}
	}
	return merged
}

// QuizSession drives one student through a chapter's merged question
// stream: answer, reveal, advance, with a concept checkpoint pause
// whenever the concept tag changes between consecutive questions.
// It holds no I/O; persistence of the final report belongs to the
// session service.
type QuizSession struct {
	ID        string
	StudentID string
	Chapter   string

	questions  []MergedQuestion
	idx        int
	answered   bool
	checkpoint bool
	completed  bool
	score      int
	responses  []model.QuestionResponse
	saved      bool
}

func NewQuizSession(studentID, chapter string, quizzes []QuizRecord) *QuizSession {
	return &QuizSession{
		ID:        model.GenerateUUID(),
		StudentID: studentID,
		Chapter:   chapter,
		questions: MergeQuestions(quizzes),
	}
}

func (s *QuizSession) State() SessionState {
	switch {
	case len(s.questions) == 0:
		return StateNoQuestions
	case s.completed:
		return StateCompleted
	case s.checkpoint:
		return StateCheckpoint
	case s.answered:
		return StateAnswered
	default:
		return StateAnswering
	}
}

func (s *QuizSession) Total() int { return len(s.questions) }
func (s *QuizSession) Score() int { return s.score }
func (s *QuizSession) Index() int { return s.idx }

// QuestionView is the current question as shown to the student; the
// answer key stays server-side until the answer is submitted.
type QuestionView struct {
	Index    int               `json:"index"`
	Total    int               `json:"total"`
	Concept  string            `json:"concept"`
	Question string            `json:"question"`
	Options  map[string]string `json:"options"`
}

func (s *QuizSession) CurrentQuestion() (QuestionView, bool) {
	if len(s.questions) == 0 || s.completed {
		return QuestionView{}, false
	}
	q := s.questions[s.idx]
	concept := q.Concept
	if concept == "" {
		concept = FallbackConcept
	}
	return QuestionView{
		Index:    s.idx,
		Total:    len(s.questions),
		Concept:  concept,
		Question: q.Question,
		Options:  q.Options,
	}, true
}

// AnswerResult reveals the outcome of one submitted answer.
type AnswerResult struct {
	Correct     bool   `json:"correct"`
	CorrectKey  string `json:"correctKey"`
	Explanation string `json:"explanation"`
	Score       int    `json:"score"`
	Total       int    `json:"total"`
}

// SubmitAnswer records the selected option for the current question.
// Correctness is case-insensitive equality with the answer key.
// Submitting again before advancing overwrites the previous response
// and re-derives the running score.
func (s *QuizSession) SubmitAnswer(selected string) (AnswerResult, error) {
	switch s.State() {
	case StateNoQuestions, StateCompleted:
		return AnswerResult{}, util.ErrSessionComplete
	case StateCheckpoint:
		return AnswerResult{}, util.ErrNoCheckpoint
	}
	if selected == "" {
		return AnswerResult{}, util.ErrNoAnswerSelected
	}

	q := s.questions[s.idx]
	correct := strings.EqualFold(selected, q.Answer)

	if s.answered {
		// re-answer: drop the previous contribution before overwriting
		prev := s.responses[len(s.responses)-1]
		if strings.EqualFold(prev.Selected, prev.Correct) {
			s.score--
		}
		s.responses = s.responses[:len(s.responses)-1]
	}

	s.responses = append(s.responses, model.QuestionResponse{
		Question:    q.Question,
		Options:     q.Options,
		Selected:    selected,
		Correct:     q.Answer,
		Explanation: q.Explanation,
		Concept:     q.Concept,
		Example:     q.Example,
	})
	if correct {
		s.score++
	}
	s.answered = true

	return AnswerResult{
		Correct:     correct,
		CorrectKey:  q.Answer,
		Explanation: q.Explanation,
		Score:       s.score,
		Total:       len(s.questions),
	}, nil
}

// AdvanceOutcome is the edge taken out of an Answered state.
type AdvanceOutcome string

const (
	AdvanceNext       AdvanceOutcome = "next"
	AdvanceCheckpoint AdvanceOutcome = "checkpoint"
	AdvanceCompleted  AdvanceOutcome = "completed"
)

// Advance moves past the current answered question. On the last
// question the session completes; otherwise a concept change ahead
// pauses at a checkpoint until ContinueCheckpoint.
func (s *QuizSession) Advance() (AdvanceOutcome, error) {
	switch s.State() {
	case StateNoQuestions, StateCompleted:
		return "", util.ErrSessionComplete
	case StateCheckpoint:
		return "", util.ErrNoCheckpoint
	case StateAnswering:
		return "", util.ErrNotAnswered
	}

	if s.idx == len(s.questions)-1 {
		s.completed = true
		return AdvanceCompleted, nil
	}

	if s.conceptAt(s.idx) != s.conceptAt(s.idx+1) {
		s.checkpoint = true
		return AdvanceCheckpoint, nil
	}

	s.stepForward()
	return AdvanceNext, nil
}

// ContinueCheckpoint acknowledges a concept checkpoint and resumes
// with the next question.
func (s *QuizSession) ContinueCheckpoint() error {
	if s.State() != StateCheckpoint {
		return util.ErrNoCheckpoint
	}
	s.checkpoint = false
	s.stepForward()
	return nil
}

func (s *QuizSession) stepForward() {
	s.idx++
	s.answered = false
}

func (s *QuizSession) conceptAt(i int) string {
	return s.questions[i].Concept
}

// ReportID keys a report deterministically so that re-taking a
// chapter overwrites the earlier attempt.
func ReportID(studentID, chapter string) string {
	return studentID + "_" + url.QueryEscape(chapter)
}

// BuildReport materializes the completed session into its persisted
// form. Only valid once State() == StateCompleted.
func (s *QuizSession) BuildReport() *model.Report {
	total := len(s.questions)
	return &model.Report{
		ID:         ReportID(s.StudentID, s.Chapter),
		StudentID:  s.StudentID,
		Chapter:    s.Chapter,
		Total:      total,
		Score:      s.score,
		Percentage: Round1(float64(s.score) / float64(total) * 100),
		Responses:  append(model.ResponseList{}, s.responses...),
	}
}

func (s *QuizSession) Responses() []model.QuestionResponse {
	return append([]model.QuestionResponse{}, s.responses...)
}
