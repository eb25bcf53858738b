package model

import (
	"time"

	"gorm.io/gorm"
)

// Report is the persisted record of a completed quiz session. The key
// is {studentID}_{urlEncodedChapter}, so re-taking a chapter replaces
// the previous report.
type Report struct {
	ID         string         `gorm:"primaryKey;size:191" json:"id"`
	StudentID  string         `gorm:"index;size:36;not null" json:"studentId"`
	Chapter    string         `gorm:"size:255;not null" json:"chapter"`
	Total      int            `gorm:"not null" json:"total"`
	Score      int            `gorm:"not null" json:"score"`
	Percentage float64        `gorm:"not null" json:"percentage"`
	Responses  ResponseList   `gorm:"type:json;serializer:json" json:"responses"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Report) TableName() string {
	return "reports"
}

type ResponseList []QuestionResponse

// QuestionResponse captures everything needed to review one answered
// question without the source quiz document surviving unchanged.
type QuestionResponse struct {
	Question    string            `json:"question"`
	Options     map[string]string `json:"options"`
	Selected    string            `json:"selected"`
	Correct     string            `json:"correct"`
	Explanation string            `json:"explanation"`
	Concept     string            `json:"concept"`
	Example     string            `json:"example"`
}
