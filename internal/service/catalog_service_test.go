package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"schoolhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuizSource struct {
	quizzes []model.Quiz
	err     error
	calls   int
}

func (f *fakeQuizSource) ListAll(_ context.Context) ([]model.Quiz, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.quizzes, nil
}

func quizDoc(t *testing.T, metadata map[string]interface{}, questions []model.QuizQuestion) model.Quiz {
	t.Helper()
	quiz := model.Quiz{}
	quiz.ID = model.GenerateUUID()

	if metadata != nil {
		md, err := json.Marshal(metadata)
		require.NoError(t, err)
		quiz.Metadata = md
	}
	if questions != nil {
		qs, err := json.Marshal(questions)
		require.NoError(t, err)
		quiz.Questions = qs
	}
	return quiz
}

func TestSubjectsForClass(t *testing.T) {
	source := &fakeQuizSource{quizzes: []model.Quiz{
		quizDoc(t, map[string]interface{}{"subject": "Maths", "class": "6"}, nil),
		quizDoc(t, map[string]interface{}{"subject": "Science", "class": 6}, nil), // numeric class
		quizDoc(t, map[string]interface{}{"subject": "Maths", "class": "6"}, nil), // duplicate
		quizDoc(t, map[string]interface{}{"subject": "History", "class": "7"}, nil),
		quizDoc(t, nil, nil), // no metadata
		quizDoc(t, map[string]interface{}{"class": "6"}, nil), // no subject
	}}
	catalog := NewCatalogService(source)

	subjects, err := catalog.SubjectsForClass(context.Background(), "Class 6")
	require.NoError(t, err)
	assert.Equal(t, []string{"Maths", "Science"}, subjects)
}

func TestSubjectsForClassDefaultsClass(t *testing.T) {
	source := &fakeQuizSource{quizzes: []model.Quiz{
		quizDoc(t, map[string]interface{}{"subject": "Maths", "class": "6"}, nil),
		quizDoc(t, map[string]interface{}{"subject": "History", "class": "7"}, nil),
	}}
	catalog := NewCatalogService(source)

	// input with no digits normalizes to the default class "6"
	subjects, err := catalog.SubjectsForClass(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Maths"}, subjects)
}

func TestSubjectsForClassSourceError(t *testing.T) {
	source := &fakeQuizSource{err: errors.New("redis down")}
	catalog := NewCatalogService(source)

	_, err := catalog.SubjectsForClass(context.Background(), "6")
	assert.Error(t, err)
}

func TestChaptersForSubject(t *testing.T) {
	source := &fakeQuizSource{quizzes: []model.Quiz{
		quizDoc(t, map[string]interface{}{"subject": "Maths", "class": "6", "chapter": "Algebra"}, nil),
		quizDoc(t, map[string]interface{}{"subject": "Maths", "class": "6", "chapter": "Geometry"}, nil),
		quizDoc(t, map[string]interface{}{"subject": "Maths", "class": "6", "chapter": "Algebra"}, nil),
		quizDoc(t, map[string]interface{}{"subject": "Maths", "class": "7", "chapter": "Trigonometry"}, nil),
		quizDoc(t, map[string]interface{}{"subject": "Science", "class": "6", "chapter": "Plants"}, nil),
	}}
	catalog := NewCatalogService(source)

	chapters, err := catalog.ChaptersForSubject(context.Background(), "Maths", "6")
	require.NoError(t, err)
	assert.Equal(t, []string{"Algebra", "Geometry"}, chapters)
}

func TestChaptersForSubjectMissingParams(t *testing.T) {
	source := &fakeQuizSource{quizzes: []model.Quiz{
		quizDoc(t, map[string]interface{}{"subject": "Maths", "class": "6", "chapter": "Algebra"}, nil),
	}}
	catalog := NewCatalogService(source)

	chapters, err := catalog.ChaptersForSubject(context.Background(), "", "6")
	require.NoError(t, err)
	assert.Empty(t, chapters)
	assert.Zero(t, source.calls, "missing params skip the fetch entirely")

	chapters, err = catalog.ChaptersForSubject(context.Background(), "Maths", "")
	require.NoError(t, err)
	assert.Empty(t, chapters)
}

func TestChapterQuizzesSortedByCreatedAt(t *testing.T) {
	source := &fakeQuizSource{quizzes: []model.Quiz{
		quizDoc(t, map[string]interface{}{
			"subject": "Maths", "class": "6", "chapter": "Algebra",
			"concept": "Later", "createdAt": float64(3000),
		}, nil),
		quizDoc(t, map[string]interface{}{
			"subject": "Maths", "class": "6", "chapter": "Algebra",
			"concept": "Earlier", "createdAt": "1970-01-01T00:00:01Z", // 1000 ms
		}, nil),
		quizDoc(t, map[string]interface{}{
			"subject": "Maths", "class": "6", "chapter": "Algebra",
			"concept": "NoTimestamp",
		}, nil),
	}}
	catalog := NewCatalogService(source)

	records, err := catalog.ChapterQuizzes(context.Background(), "Maths", "6", "Algebra")
	require.NoError(t, err)
	require.Len(t, records, 3)
	// missing createdAt converts to 0 and sorts first
	assert.Equal(t, "NoTimestamp", records[0].Concept)
	assert.Equal(t, "Earlier", records[1].Concept)
	assert.Equal(t, "Later", records[2].Concept)
}

func TestChapterQuizzesStableOnTies(t *testing.T) {
	md := func(concept string) map[string]interface{} {
		return map[string]interface{}{
			"subject": "Maths", "class": "6", "chapter": "Algebra",
			"concept": concept, "createdAt": float64(1000),
		}
	}
	source := &fakeQuizSource{quizzes: []model.Quiz{
		quizDoc(t, md("First"), nil),
		quizDoc(t, md("Second"), nil),
		quizDoc(t, md("Third"), nil),
	}}
	catalog := NewCatalogService(source)

	records, err := catalog.ChapterQuizzes(context.Background(), "Maths", "6", "Algebra")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "First", records[0].Concept)
	assert.Equal(t, "Second", records[1].Concept)
	assert.Equal(t, "Third", records[2].Concept)
}

func TestConceptsForChapter(t *testing.T) {
	md := func(concept string, createdAt float64) map[string]interface{} {
		m := map[string]interface{}{
			"subject": "Maths", "class": "6", "chapter": "Algebra",
			"createdAt": createdAt,
		}
		if concept != "" {
			m["concept"] = concept
		}
		return m
	}
	source := &fakeQuizSource{quizzes: []model.Quiz{
		quizDoc(t, md("Variables", 2000), nil),
		quizDoc(t, md("Equations", 1000), nil),
		quizDoc(t, md("Variables", 3000), nil), // duplicate, later
		quizDoc(t, md("", 4000), nil),          // blank concept falls back
	}}
	catalog := NewCatalogService(source)

	concepts, err := catalog.ConceptsForChapter(context.Background(), "Maths", "6", "Algebra")
	require.NoError(t, err)
	assert.Equal(t, []string{"Equations", "Variables", FallbackConcept}, concepts)
}

func TestCatalogRepeatedReadsStable(t *testing.T) {
	source := &fakeQuizSource{quizzes: []model.Quiz{
		quizDoc(t, map[string]interface{}{
			"subject": "Maths", "class": "6", "chapter": "Algebra",
			"concept": "Variables", "createdAt": float64(2000),
		}, nil),
		quizDoc(t, map[string]interface{}{
			"subject": "Science", "class": "6", "chapter": "Plants",
			"concept": "Roots", "createdAt": float64(1000),
		}, nil),
		quizDoc(t, map[string]interface{}{
			"subject": "Maths", "class": "6", "chapter": "Geometry",
			"concept": "Angles", "createdAt": float64(3000),
		}, nil),
	}}
	catalog := NewCatalogService(source)
	ctx := context.Background()

	// an unchanged source yields the same ordered output every time
	subjects1, err := catalog.SubjectsForClass(ctx, "6")
	require.NoError(t, err)
	subjects2, err := catalog.SubjectsForClass(ctx, "6")
	require.NoError(t, err)
	assert.Equal(t, subjects1, subjects2)

	chapters1, err := catalog.ChaptersForSubject(ctx, "Maths", "6")
	require.NoError(t, err)
	chapters2, err := catalog.ChaptersForSubject(ctx, "Maths", "6")
	require.NoError(t, err)
	assert.Equal(t, chapters1, chapters2)

	concepts1, err := catalog.ConceptsForChapter(ctx, "Maths", "6", "Algebra")
	require.NoError(t, err)
	concepts2, err := catalog.ConceptsForChapter(ctx, "Maths", "6", "Algebra")
	require.NoError(t, err)
	assert.Equal(t, concepts1, concepts2)
}

func TestDecodeQuizRecord(t *testing.T) {
	t.Run("malformed metadata", func(t *testing.T) {
		quiz := model.Quiz{Metadata: json.RawMessage(`{broken`)}
		_, ok := DecodeQuizRecord(quiz)
		assert.False(t, ok)
	})

	t.Run("missing metadata", func(t *testing.T) {
		_, ok := DecodeQuizRecord(model.Quiz{})
		assert.False(t, ok)
	})

	t.Run("malformed questions keep the record", func(t *testing.T) {
		quiz := quizDoc(t, map[string]interface{}{"subject": "Maths", "class": "6"}, nil)
		quiz.Questions = json.RawMessage(`"not a list"`)
		record, ok := DecodeQuizRecord(quiz)
		assert.True(t, ok)
		assert.Empty(t, record.Questions)
		assert.Equal(t, "Maths", record.Subject)
	})

	t.Run("numeric class stringified", func(t *testing.T) {
		quiz := quizDoc(t, map[string]interface{}{"subject": "Maths", "class": 6}, nil)
		record, ok := DecodeQuizRecord(quiz)
		assert.True(t, ok)
		assert.Equal(t, "6", record.Class)
	})
}
