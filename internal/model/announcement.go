package model

// Announcement is the school-wide notice feed shown to parents,
// newest first.
type Announcement struct {
	UUIDBase
	SchoolID string `gorm:"index;size:64;not null" json:"schoolId"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Body     string `gorm:"type:text" json:"body"`
	Audience string `gorm:"size:20;default:'all'" json:"audience"`
}

func (Announcement) TableName() string {
	return "announcements"
}
