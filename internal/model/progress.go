package model

import (
	"time"

	"gorm.io/gorm"
)

// Progress caches the completion percentage for a (user, section) pair.
// It is derived data: always recomputed from the responses on every save,
// never incremented.
type Progress struct {
	ID                   uint           `gorm:"primarykey" json:"id"`
	UserID               uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_section"`
	SectionID            uint           `json:"section_id" gorm:"not null;uniqueIndex:idx_progress_user_section"`
	CompletionPercentage float64        `json:"completion_percentage" gorm:"not null;default:0"`
	LastUpdated          time.Time      `json:"last_updated"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}
