package service

import (
	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/repository"
)

const defaultAnnouncementLimit = 50

type AnnouncementService struct {
	Repo *repository.AnnouncementRepository
}

func NewAnnouncementService(repo *repository.AnnouncementRepository) *AnnouncementService {
	return &AnnouncementService{Repo: repo}
}

func (s *AnnouncementService) Publish(announcement *model.Announcement) error {
	return s.Repo.Create(announcement)
}

// ListForStudent returns the school's latest announcements, newest
// first.
func (s *AnnouncementService) ListForStudent(student *model.StudentAccount) ([]model.Announcement, error) {
	return s.Repo.ListBySchool(student.SchoolID, defaultAnnouncementLimit)
}
