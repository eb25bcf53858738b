package model

import "encoding/json"

// Quiz is one authored quiz unit as delivered by the authoring tool.
// Metadata and questions are stored verbatim; the authoring side is
// loosely typed (class may arrive as a number or a string, createdAt
// in several timestamp shapes), so nothing here is trusted until the
// catalog service decodes it.
type Quiz struct {
	UUIDBase
	Metadata  json.RawMessage `gorm:"type:json" json:"metadata"`
	Questions json.RawMessage `gorm:"type:json" json:"questions"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizQuestion is the decoded per-question shape of a quiz document.
// Answer names one of the option keys ("A".."D").
type QuizQuestion struct {
	Question    string            `json:"question"`
	Options     map[string]string `json:"options"`
	Answer      string            `json:"answer"`
	Explanation string            `json:"explanation,omitempty"`
	Concept     string            `json:"concept,omitempty"`
	Example     string            `json:"example,omitempty"`
}
