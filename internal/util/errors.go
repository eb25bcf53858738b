package util

import "errors"

var (
	ErrEmailRegistered    = errors.New("email already registered")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrSchoolNotFound     = errors.New("school not found")
	ErrClassNotFound      = errors.New("class not found")
	ErrRollNotFound       = errors.New("roll number not found in class")
	ErrAccountExists      = errors.New("student account already linked")
	ErrStudentNotFound    = errors.New("student account not found")
	ErrSessionNotFound    = errors.New("quiz session not found")
	ErrNoAnswerSelected   = errors.New("no answer selected")
	ErrNotAnswered        = errors.New("question not answered yet")
	ErrNoCheckpoint       = errors.New("no checkpoint pending")
	ErrSessionComplete    = errors.New("quiz session already complete")
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAlreadySubmitted   = errors.New("assignment already submitted")
	ErrReportNotFound     = errors.New("report not found")
	ErrSchoolExists       = errors.New("school code already in use")
	ErrRollTaken          = errors.New("roll number already registered")
	ErrQuizNotFound       = errors.New("quiz not found")
)
