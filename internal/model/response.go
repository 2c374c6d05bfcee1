package model

import (
	"time"

	"gorm.io/gorm"
)

// Response is one participant's answer to one question. At most one row
// exists per (user, section, question); saves overwrite in place.
type Response struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	UserID     uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_responses_user_section_question"`
	SectionID  uint           `json:"section_id" gorm:"not null;uniqueIndex:idx_responses_user_section_question"`
	QuestionID uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_responses_user_section_question"`
	Answer     string         `json:"answer" gorm:"type:text"`
	IsComplete bool           `json:"is_complete"` // answer non-empty after trimming
	LastSaved  time.Time      `json:"last_saved"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
