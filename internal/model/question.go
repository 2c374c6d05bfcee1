package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	SectionID      uint           `json:"section_id" gorm:"not null;index"`
	Text           string         `json:"text" gorm:"type:text;not null"`
	OrderInSection int            `json:"order_in_section" gorm:"not null"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}
