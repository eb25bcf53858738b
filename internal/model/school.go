package model

import "time"

// School is keyed by the human-entered school code that parents use
// when linking a student account.
type School struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	City      string    `gorm:"size:100" json:"city"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (School) TableName() string {
	return "schools"
}

type SchoolClass struct {
	UUIDBase
	SchoolID string `gorm:"index;size:64;not null" json:"schoolId"`
	Name     string `gorm:"size:50;not null" json:"name"` // e.g. "Class 6"
}

func (SchoolClass) TableName() string {
	return "classes"
}

// ClassStudent is one roster row: the school registers which roll
// numbers exist before any parent can claim them.
type ClassStudent struct {
	UUIDBase
	ClassID    string `gorm:"uniqueIndex:idx_class_roll;size:36;not null" json:"classId"`
	RollNumber string `gorm:"uniqueIndex:idx_class_roll;size:20;not null" json:"rollNumber"`
	Name       string `gorm:"size:100;not null" json:"name"`
}

func (ClassStudent) TableName() string {
	return "class_students"
}

// StudentAccount links a parent user to one student on a class roster.
type StudentAccount struct {
	UUIDBase
	UserID      uint   `gorm:"uniqueIndex:idx_user_class_roll;type:bigint unsigned;not null" json:"userId"`
	SchoolID    string `gorm:"size:64;not null" json:"schoolId"`
	ClassID     string `gorm:"uniqueIndex:idx_user_class_roll;size:36;not null" json:"classId"`
	ClassName   string `gorm:"size:50;not null" json:"className"`
	RollNumber  string `gorm:"uniqueIndex:idx_user_class_roll;size:20;not null" json:"rollNumber"`
	StudentName string `gorm:"size:100;not null" json:"studentName"`
}

func (StudentAccount) TableName() string {
	return "student_accounts"
}
