package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportStore struct {
	reports   map[string]*model.Report
	failNext  bool
	saveCalls int
}

func newFakeReportStore() *fakeReportStore {
	return &fakeReportStore{reports: make(map[string]*model.Report)}
}

func (f *fakeReportStore) Save(_ context.Context, report *model.Report) error {
	f.saveCalls++
	if f.failNext {
		f.failNext = false
		return errors.New("db unavailable")
	}
	f.reports[report.ID] = report
	return nil
}

func sessionFixture(t *testing.T) (*QuizSessionService, *fakeReportStore, *model.StudentAccount) {
	t.Helper()

	questions, err := json.Marshal([]model.QuizQuestion{
		question("q1", "A", ""),
		question("q2", "B", ""),
	})
	require.NoError(t, err)
	metadata, err := json.Marshal(map[string]interface{}{
		"subject": "Maths", "class": "6", "chapter": "Algebra", "concept": "Sets",
	})
	require.NoError(t, err)

	quiz := model.Quiz{Metadata: metadata, Questions: questions}
	quiz.ID = model.GenerateUUID()

	reports := newFakeReportStore()
	catalog := NewCatalogService(&fakeQuizSource{quizzes: []model.Quiz{quiz}})
	svc := NewQuizSessionService(catalog, reports)

	student := &model.StudentAccount{ClassName: "Class 6"}
	student.ID = "stu-1"
	return svc, reports, student
}

func TestSessionServiceStartAndComplete(t *testing.T) {
	svc, reports, student := sessionFixture(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, student, "Maths", student.ClassName, "Algebra")
	require.NoError(t, err)
	assert.Equal(t, StateAnswering, session.State())
	assert.Equal(t, 2, session.Total())

	_, err = svc.SubmitAnswer(session.ID, "A")
	require.NoError(t, err)
	result, err := svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, AdvanceNext, result.Outcome)

	_, err = svc.SubmitAnswer(session.ID, "B")
	require.NoError(t, err)
	result, err = svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, AdvanceCompleted, result.Outcome)
	require.NotNil(t, result.Report)
	assert.Equal(t, 2, result.Report.Score)
	assert.Equal(t, 100.0, result.Report.Percentage)

	// the session is gone once the report is persisted
	_, err = svc.Get(session.ID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
	assert.Contains(t, reports.reports, ReportID("stu-1", "Algebra"))
}

func TestSessionServiceStartReplacesExisting(t *testing.T) {
	svc, _, student := sessionFixture(t)
	ctx := context.Background()

	first, err := svc.Start(ctx, student, "Maths", student.ClassName, "Algebra")
	require.NoError(t, err)
	second, err := svc.Start(ctx, student, "Maths", student.ClassName, "Algebra")
	require.NoError(t, err)

	_, err = svc.Get(first.ID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
	_, err = svc.Get(second.ID)
	assert.NoError(t, err)
}

func TestSessionServicePersistRetry(t *testing.T) {
	svc, reports, student := sessionFixture(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, student, "Maths", student.ClassName, "Algebra")
	require.NoError(t, err)

	for _, answer := range []string{"A", "B"} {
		_, err = svc.SubmitAnswer(session.ID, answer)
		require.NoError(t, err)
		if answer == "A" {
			_, err = svc.Advance(ctx, session.ID)
			require.NoError(t, err)
		}
	}

	// first persist fails; the session must survive for a retry
	reports.failNext = true
	_, err = svc.Advance(ctx, session.ID)
	require.Error(t, err)
	_, err = svc.Get(session.ID)
	require.NoError(t, err)

	// retry only re-runs the write, not the state machine
	result, err := svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, AdvanceCompleted, result.Outcome)
	assert.Equal(t, 2, reports.saveCalls)
	assert.Contains(t, reports.reports, ReportID("stu-1", "Algebra"))
}

// reentrantReportStore looks another session up mid-write, the way a
// concurrent request would while a report write is in flight.
type reentrantReportStore struct {
	svc       *QuizSessionService
	otherID   string
	lookupErr error
	reports   map[string]*model.Report
}

func (f *reentrantReportStore) Save(_ context.Context, report *model.Report) error {
	_, f.lookupErr = f.svc.Get(f.otherID)
	f.reports[report.ID] = report
	return nil
}

func TestSessionServiceTableFreeDuringPersist(t *testing.T) {
	questions, err := json.Marshal([]model.QuizQuestion{question("q1", "A", "")})
	require.NoError(t, err)
	metadata, err := json.Marshal(map[string]interface{}{
		"subject": "Maths", "class": "6", "chapter": "Algebra", "concept": "Sets",
	})
	require.NoError(t, err)
	quiz := model.Quiz{Metadata: metadata, Questions: questions}
	quiz.ID = model.GenerateUUID()

	reports := &reentrantReportStore{reports: make(map[string]*model.Report)}
	svc := NewQuizSessionService(NewCatalogService(&fakeQuizSource{quizzes: []model.Quiz{quiz}}), reports)
	reports.svc = svc
	ctx := context.Background()

	other := &model.StudentAccount{ClassName: "Class 6"}
	other.ID = "stu-2"
	otherSession, err := svc.Start(ctx, other, "Maths", other.ClassName, "Algebra")
	require.NoError(t, err)
	reports.otherID = otherSession.ID

	student := &model.StudentAccount{ClassName: "Class 6"}
	student.ID = "stu-1"
	session, err := svc.Start(ctx, student, "Maths", student.ClassName, "Algebra")
	require.NoError(t, err)
	_, err = svc.SubmitAnswer(session.ID, "A")
	require.NoError(t, err)

	result, err := svc.Advance(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, AdvanceCompleted, result.Outcome)
	assert.NoError(t, reports.lookupErr, "other sessions stay reachable while a report write runs")
	assert.Contains(t, reports.reports, ReportID("stu-1", "Algebra"))
}

func TestSessionServiceAbandon(t *testing.T) {
	svc, reports, student := sessionFixture(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, student, "Maths", student.ClassName, "Algebra")
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(session.ID, "A")
	require.NoError(t, err)

	svc.Abandon(session.ID)
	_, err = svc.Get(session.ID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
	assert.Empty(t, reports.reports, "abandoning writes nothing")
}

func TestSessionServiceEmptyChapter(t *testing.T) {
	svc, _, student := sessionFixture(t)
	ctx := context.Background()

	session, err := svc.Start(ctx, student, "Maths", student.ClassName, "NoSuchChapter")
	require.NoError(t, err)
	assert.Equal(t, StateNoQuestions, session.State())
}
