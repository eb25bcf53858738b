package model

import (
	"encoding/json"
	"time"
)

const (
	AssignmentDraft     = "draft"
	AssignmentPublished = "published"
)

// Question types understood by the auto grader. Short, long and file
// answers are collected but left for manual grading.
const (
	QuestionMCQ     = "mcq"
	QuestionMSQ     = "msq"
	QuestionTF      = "tf"
	QuestionShort   = "short"
	QuestionLong    = "long"
	QuestionNumeric = "numeric"
	QuestionFile    = "file"
)

type Assignment struct {
	UUIDBase
	Title           string       `gorm:"size:255;not null" json:"title"`
	Description     string       `gorm:"type:text" json:"description"`
	Subject         string       `gorm:"size:100" json:"subject"`
	SchoolID        string       `gorm:"index;size:64" json:"schoolId"`
	Status          string       `gorm:"size:20;default:'draft'" json:"status"`
	AssignedClasses StringList   `gorm:"type:json;serializer:json" json:"assignedClasses"`
	Questions       QuestionList `gorm:"type:json;serializer:json" json:"questions"`
	DueDate         *time.Time   `json:"dueDate,omitempty"`
	CreatorID       uint         `gorm:"index;type:bigint unsigned" json:"creatorId"`
}

func (Assignment) TableName() string {
	return "assignments"
}

type StringList []string

type QuestionList []AssignmentQuestion

// AssignmentQuestion keeps the loosely typed answer key of the
// authoring side: correct holds option indices for mcq/msq, a
// true/false literal for tf, and the expected value for numeric.
type AssignmentQuestion struct {
	QNo       int           `json:"qNo"`
	Type      string        `json:"type"`
	Question  string        `json:"question"`
	Options   []string      `json:"options,omitempty"`
	Correct   []interface{} `json:"correct,omitempty"`
	Marks     float64       `json:"marks,omitempty"`
	Tolerance float64       `json:"tolerance,omitempty"`
}

type Submission struct {
	UUIDBase
	AssignmentID  string          `gorm:"uniqueIndex:idx_assignment_student;size:36;not null" json:"assignmentId"`
	StudentID     string          `gorm:"uniqueIndex:idx_assignment_student;size:36;not null" json:"studentId"`
	StudentName   string          `gorm:"size:100" json:"studentName"`
	ClassName     string          `gorm:"size:50" json:"className"`
	Answers       json.RawMessage `gorm:"type:json" json:"answers"`
	Score         float64         `gorm:"not null" json:"score"`
	TotalMarks    float64         `gorm:"not null" json:"totalMarks"`
	Percentage    float64         `gorm:"not null" json:"percentage"`
	AutoEvaluated bool            `gorm:"default:false" json:"autoEvaluated"`
	Status        string          `gorm:"size:20;default:'submitted'" json:"status"`
	SubmittedAt   time.Time       `json:"submittedAt"`
}

func (Submission) TableName() string {
	return "submissions"
}
