package service

import (
	"context"
	"encoding/json"
	"sort"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/util"
)

// QuizRecord is one quiz document with its metadata decoded into
// canonical types. Class is the stringified form of whatever the
// authoring side stored, CreatedAt is epoch millis (0 when the
// timestamp was missing or unreadable).
type QuizRecord struct {
	QuizID    string               `json:"quizId"`
	Subject   string               `json:"subject"`
	Class     string               `json:"class"`
	Chapter   string               `json:"chapter"`
	Concept   string               `json:"concept"`
	CreatedAt int64                `json:"createdAt"`
	Questions []model.QuizQuestion `json:"questions"`
}

// QuizSource is the read side the catalog needs from storage.
type QuizSource interface {
	ListAll(ctx context.Context) ([]model.Quiz, error)
}

// CatalogService derives the subject / chapter / concept navigation
// from the flat quiz collection. Matching is equality on decoded
// metadata; the collection is fetched whole and filtered here.
type CatalogService struct {
	Quizzes QuizSource
}

func NewCatalogService(quizzes QuizSource) *CatalogService {
	return &CatalogService{Quizzes: quizzes}
}

// DecodeQuizRecord decodes one stored quiz document. A document
// without usable metadata is reported as not ok and never matches
// any catalog query.
func DecodeQuizRecord(quiz model.Quiz) (QuizRecord, bool) {
	if len(quiz.Metadata) == 0 {
		return QuizRecord{}, false
	}

	var md map[string]interface{}
	if err := json.Unmarshal(quiz.Metadata, &md); err != nil || md == nil {
		return QuizRecord{}, false
	}

	record := QuizRecord{
		QuizID:    quiz.ID,
		Subject:   util.CoerceString(md["subject"]),
		Class:     util.CoerceString(md["class"]),
		Chapter:   util.CoerceString(md["chapter"]),
		Concept:   util.CoerceString(md["concept"]),
		CreatedAt: util.ToEpochMillis(md["createdAt"]),
	}

	if len(quiz.Questions) > 0 {
		// malformed question payloads leave the record question-less
		// rather than failing the whole document
		_ = json.Unmarshal(quiz.Questions, &record.Questions)
	}

	return record, true
}

// SubjectsForClass returns the distinct subjects that have at least
// one quiz for the class, in first-seen collection order. The class
// identifier is normalized to digits before comparison.
func (s *CatalogService) SubjectsForClass(ctx context.Context, class interface{}) ([]string, error) {
	normalized := util.NormalizeClass(class)

	quizzes, err := s.Quizzes.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	subjects := []string{}
	for _, quiz := range quizzes {
		record, ok := DecodeQuizRecord(quiz)
		if !ok {
			continue
		}
		if record.Class != normalized || record.Subject == "" {
			continue
		}
		if !seen[record.Subject] {
			seen[record.Subject] = true
			subjects = append(subjects, record.Subject)
		}
	}
	return subjects, nil
}

// ChaptersForSubject returns the distinct chapters for a subject and
// class, duplicate-free in first-seen order. Missing parameters skip
// the derivation entirely.
func (s *CatalogService) ChaptersForSubject(ctx context.Context, subject, class string) ([]string, error) {
	if subject == "" || class == "" {
		return []string{}, nil
	}

	quizzes, err := s.Quizzes.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	chapters := []string{}
	for _, quiz := range quizzes {
		record, ok := DecodeQuizRecord(quiz)
		if !ok {
			continue
		}
		if record.Subject != subject || record.Class != class || record.Chapter == "" {
			continue
		}
		if !seen[record.Chapter] {
			seen[record.Chapter] = true
			chapters = append(chapters, record.Chapter)
		}
	}
	return chapters, nil
}

// ChapterQuizzes returns the decoded quiz documents of one chapter
// sorted by creation time (stable, so equal timestamps keep the
// collection order). This ordering is what the quiz session engine
// consumes.
func (s *CatalogService) ChapterQuizzes(ctx context.Context, subject, class, chapter string) ([]QuizRecord, error) {
	if subject == "" || class == "" || chapter == "" {
		return []QuizRecord{}, nil
	}

	quizzes, err := s.Quizzes.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	records := []QuizRecord{}
	for _, quiz := range quizzes {
		record, ok := DecodeQuizRecord(quiz)
		if !ok {
			continue
		}
		if record.Subject != subject || record.Class != class || record.Chapter != chapter {
			continue
		}
		records = append(records, record)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt < records[j].CreatedAt
	})
	return records, nil
}

// FallbackConcept names questions whose quiz carries no concept tag.
const FallbackConcept = "Concept"

// ConceptsForChapter lists the chapter's concepts chronologically by
// quiz creation time, first occurrence wins.
func (s *CatalogService) ConceptsForChapter(ctx context.Context, subject, class, chapter string) ([]string, error) {
	records, err := s.ChapterQuizzes(ctx, subject, class, chapter)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	concepts := []string{}
	for _, record := range records {
		concept := record.Concept
		if concept == "" {
			concept = FallbackConcept
		}
		if !seen[concept] {
			seen[concept] = true
			concepts = append(concepts, concept)
		}
	}
	return concepts, nil
}
