package service

import (
	"errors"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/repository"
	"schoolhub_backend/internal/util"

	"gorm.io/gorm"
)

// StudentAccountService links parent users to students on a class
// roster. The linked account is the explicit "active student" every
// student-scoped call receives; there is no ambient selection state
// on the server.
type StudentAccountService struct {
	Repo *repository.StudentAccountRepository
}

func NewStudentAccountService(repo *repository.StudentAccountRepository) *StudentAccountService {
	return &StudentAccountService{Repo: repo}
}

type LinkAccountReq struct {
	SchoolID   string `json:"schoolId" binding:"required"`
	ClassID    string `json:"classId" binding:"required"`
	RollNumber string `json:"rollNumber" binding:"required"`
}

// Link validates the school, class and roll number against the
// roster before creating the account.
func (s *StudentAccountService) Link(userID uint, req LinkAccountReq) (*model.StudentAccount, error) {
	school, err := s.Repo.FindSchool(req.SchoolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSchoolNotFound
		}
		return nil, err
	}

	class, err := s.Repo.FindClass(req.ClassID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassNotFound
		}
		return nil, err
	}
	if class.SchoolID != school.ID {
		return nil, util.ErrClassNotFound
	}

	roster, err := s.Repo.FindRosterEntry(class.ID, req.RollNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRollNotFound
		}
		return nil, err
	}

	exists, err := s.Repo.ExistsForUser(userID, class.ID, req.RollNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAccountExists
	}

	account := &model.StudentAccount{
		UserID:      userID,
		SchoolID:    school.ID,
		ClassID:     class.ID,
		ClassName:   class.Name,
		RollNumber:  roster.RollNumber,
		StudentName: roster.Name,
	}
	if err := s.Repo.Create(account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *StudentAccountService) ListForUser(userID uint) ([]model.StudentAccount, error) {
	return s.Repo.ListByUser(userID)
}

func (s *StudentAccountService) ListClasses(schoolID string) ([]model.SchoolClass, error) {
	if _, err := s.Repo.FindSchool(schoolID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSchoolNotFound
		}
		return nil, err
	}
	return s.Repo.ListClasses(schoolID)
}

// Resolve loads a student account and checks it belongs to the
// requesting user.
func (s *StudentAccountService) Resolve(userID uint, accountID string) (*model.StudentAccount, error) {
	account, err := s.Repo.FindByID(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrStudentNotFound
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, util.ErrPermissionDenied
	}
	return account, nil
}

func (s *StudentAccountService) Unlink(userID uint, accountID string) error {
	if _, err := s.Resolve(userID, accountID); err != nil {
		return err
	}
	return s.Repo.Delete(accountID)
}
