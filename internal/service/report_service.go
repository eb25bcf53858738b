package service

import (
	"context"
	"errors"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/repository"
	"schoolhub_backend/internal/util"

	"gorm.io/gorm"
)

// ReportService reads back the per-chapter reports the session engine
// writes. Reports belong to a student account, never to the parent
// user directly.
type ReportService struct {
	Repo *repository.ReportRepository
}

func NewReportService(repo *repository.ReportRepository) *ReportService {
	return &ReportService{Repo: repo}
}

func (s *ReportService) ListForStudent(ctx context.Context, student *model.StudentAccount) ([]model.Report, error) {
	return s.Repo.ListByStudent(ctx, student.ID)
}

// GetChapterReport looks up the student's report for one chapter via
// the deterministic key.
func (s *ReportService) GetChapterReport(ctx context.Context, student *model.StudentAccount, chapter string) (*model.Report, error) {
	report, err := s.Repo.FindByID(ctx, ReportID(student.ID, chapter))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrReportNotFound
		}
		return nil, err
	}
	return report, nil
}
