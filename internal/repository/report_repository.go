package repository

import (
	"context"

	"schoolhub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReportRepository struct {
	DB *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{DB: db}
}

// Save upserts on the deterministic report key, so re-taking a
// chapter overwrites the previous report.
func (r *ReportRepository) Save(ctx context.Context, report *model.Report) error {
	return r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(report).Error
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (*model.Report, error) {
	var report model.Report
	err := r.DB.WithContext(ctx).First(&report, "id = ?", id).Error
	return &report, err
}

func (r *ReportRepository) ListByStudent(ctx context.Context, studentID string) ([]model.Report, error) {
	var reports []model.Report
	err := r.DB.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("updated_at desc").
		Find(&reports).Error
	return reports, err
}
