package service

import (
	"context"
	"sync"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
	"schoolhub_backend/pkg/logger"
	"schoolhub_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// ReportStore is the write side for completed session reports.
type ReportStore interface {
	Save(ctx context.Context, report *model.Report) error
}

// QuizSessionService owns the in-memory session table. Sessions are
// ephemeral: abandoning one writes nothing, and a new session for the
// same student and chapter replaces the old one wholesale.
type QuizSessionService struct {
	Catalog *CatalogService
	Reports ReportStore

	mu       sync.Mutex
	sessions map[string]*QuizSession
}

func NewQuizSessionService(catalog *CatalogService, reports ReportStore) *QuizSessionService {
	return &QuizSessionService{
		Catalog:  catalog,
		Reports:  reports,
		sessions: make(map[string]*QuizSession),
	}
}

// Start builds a fresh session from the chapter's quiz documents.
// Any previous session of the same student for the same chapter is
// discarded, so session state never carries over.
func (s *QuizSessionService) Start(ctx context.Context, student *model.StudentAccount, subject, class, chapter string) (*QuizSession, error) {
	quizzes, err := s.Catalog.ChapterQuizzes(ctx, subject, util.NormalizeClass(class), chapter)
	if err != nil {
		return nil, err
	}

	session := NewQuizSession(student.ID, chapter, quizzes)

	s.mu.Lock()
	for id, existing := range s.sessions {
		if existing.StudentID == student.ID && existing.Chapter == chapter {
			delete(s.sessions, id)
		}
	}
	s.sessions[session.ID] = session
	monitoring.ActiveQuizSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	return session, nil
}

func (s *QuizSessionService) Get(sessionID string) (*QuizSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	return session, nil
}

func (s *QuizSessionService) SubmitAnswer(sessionID, selected string) (AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return AnswerResult{}, util.ErrSessionNotFound
	}
	return session.SubmitAnswer(selected)
}

// AdvanceResult describes what the client should show next.
type AdvanceResult struct {
	Outcome  AdvanceOutcome `json:"outcome"`
	Question *QuestionView  `json:"question,omitempty"`
	Concept  string         `json:"concept,omitempty"`
	Report   *model.Report  `json:"report,omitempty"`
}

// Advance moves the session forward. Completion persists the report;
// a failed write keeps the session so the caller can retry instead of
// silently losing the student's results.
func (s *QuizSessionService) Advance(ctx context.Context, sessionID string) (AdvanceResult, error) {
	s.mu.Lock()

	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return AdvanceResult{}, util.ErrSessionNotFound
	}

	var outcome AdvanceOutcome
	if session.State() == StateCompleted && !session.saved {
		// previous persist attempt failed; retry the write only
		outcome = AdvanceCompleted
	} else {
		var err error
		outcome, err = session.Advance()
		if err != nil {
			s.mu.Unlock()
			return AdvanceResult{}, err
		}
	}

	switch outcome {
	case AdvanceCompleted:
		report := session.BuildReport()
		// the write may be slow; release the table so other sessions
		// keep moving while it runs
		s.mu.Unlock()
		err := s.Reports.Save(ctx, report)

		s.mu.Lock()
		defer s.mu.Unlock()
		if err != nil {
			logger.Log.Error("report persist failed",
				zap.String("session", sessionID),
				zap.String("chapter", session.Chapter),
				zap.Error(err))
			return AdvanceResult{}, err
		}
		if !session.saved {
			session.saved = true
			monitoring.ReportsWritten.Inc()
		}
		delete(s.sessions, sessionID)
		monitoring.ActiveQuizSessions.Set(float64(len(s.sessions)))
		return AdvanceResult{Outcome: AdvanceCompleted, Report: report}, nil

	case AdvanceCheckpoint:
		next := session.questions[session.idx+1].Concept
		if next == "" {
			next = FallbackConcept
		}
		s.mu.Unlock()
		return AdvanceResult{Outcome: AdvanceCheckpoint, Concept: next}, nil

	default:
		view, _ := session.CurrentQuestion()
		s.mu.Unlock()
		return AdvanceResult{Outcome: AdvanceNext, Question: &view}, nil
	}
}

func (s *QuizSessionService) ContinueCheckpoint(sessionID string) (QuestionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return QuestionView{}, util.ErrSessionNotFound
	}
	if err := session.ContinueCheckpoint(); err != nil {
		return QuestionView{}, err
	}
	view, _ := session.CurrentQuestion()
	return view, nil
}

// Abandon drops the session without writing anything; reports only
// exist for completed sessions.
func (s *QuizSessionService) Abandon(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; ok {
		delete(s.sessions, sessionID)
		monitoring.ActiveQuizSessions.Set(float64(len(s.sessions)))
	}
}
