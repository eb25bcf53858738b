package service

import (
	"errors"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/repository"
	"schoolhub_backend/internal/util"

	"gorm.io/gorm"
)

// SchoolAdminService maintains the school/class/roster data that the
// parent-side linking flow reads.
type SchoolAdminService struct {
	Schools  *repository.SchoolRepository
	Accounts *repository.StudentAccountRepository
}

func NewSchoolAdminService(schools *repository.SchoolRepository, accounts *repository.StudentAccountRepository) *SchoolAdminService {
	return &SchoolAdminService{Schools: schools, Accounts: accounts}
}

func (s *SchoolAdminService) CreateSchool(school *model.School) error {
	exists, err := s.Schools.SchoolExists(school.ID)
	if err != nil {
		return err
	}
	if exists {
		return util.ErrSchoolExists
	}
	return s.Schools.CreateSchool(school)
}

func (s *SchoolAdminService) CreateClass(schoolID, name string) (*model.SchoolClass, error) {
	exists, err := s.Schools.SchoolExists(schoolID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrSchoolNotFound
	}

	class := &model.SchoolClass{SchoolID: schoolID, Name: name}
	if err := s.Schools.CreateClass(class); err != nil {
		return nil, err
	}
	return class, nil
}

// AddRosterEntry registers one roll number in a class so a parent can
// claim it later.
func (s *SchoolAdminService) AddRosterEntry(classID, rollNumber, name string) (*model.ClassStudent, error) {
	if _, err := s.Accounts.FindClass(classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}

	taken, err := s.Schools.RosterEntryExists(classID, rollNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrRollTaken
	}

	entry := &model.ClassStudent{ClassID: classID, RollNumber: rollNumber, Name: name}
	if err := s.Schools.AddRosterEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *SchoolAdminService) ListRoster(classID string) ([]model.ClassStudent, error) {
	if _, err := s.Accounts.FindClass(classID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}
	return s.Schools.ListRoster(classID)
}
