package service

import (
	"context"
	"encoding/json"
	"errors"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/repository"
	"schoolhub_backend/internal/util"

	"gorm.io/gorm"
)

// QuizAdminService is the authoring write path for quiz documents.
// Payloads are stored verbatim; the catalog service decodes them
// tolerantly on the read side, so the only check here is that both
// blobs are valid JSON.
type QuizAdminService struct {
	Repo *repository.QuizRepository
}

func NewQuizAdminService(repo *repository.QuizRepository) *QuizAdminService {
	return &QuizAdminService{Repo: repo}
}

func (s *QuizAdminService) Create(ctx context.Context, metadata, questions json.RawMessage) (*model.Quiz, error) {
	if !json.Valid(metadata) || !json.Valid(questions) {
		return nil, errors.New("metadata and questions must be valid JSON")
	}

	quiz := &model.Quiz{Metadata: metadata, Questions: questions}
	if err := s.Repo.Create(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizAdminService) Get(ctx context.Context, id string) (*model.Quiz, error) {
	quiz, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizAdminService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}
