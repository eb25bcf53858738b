package repository

import (
	"schoolhub_backend/internal/model"

	"gorm.io/gorm"
)

type AnnouncementRepository struct {
	DB *gorm.DB
}

func NewAnnouncementRepository(db *gorm.DB) *AnnouncementRepository {
	return &AnnouncementRepository{DB: db}
}

func (r *AnnouncementRepository) Create(announcement *model.Announcement) error {
	return r.DB.Create(announcement).Error
}

func (r *AnnouncementRepository) ListBySchool(schoolID string, limit int) ([]model.Announcement, error) {
	query := r.DB.Where("school_id = ?", schoolID).Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var announcements []model.Announcement
	err := query.Find(&announcements).Error
	return announcements, err
}
