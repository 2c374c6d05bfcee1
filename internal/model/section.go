package model

import (
	"time"

	"gorm.io/gorm"
)

type Section struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	Title      string         `json:"title" gorm:"not null;uniqueIndex"` // "Founding Stories"
	Subtitle   string         `json:"subtitle,omitempty"`
	OrderIndex int            `json:"order_index" gorm:"not null"`
	Questions  []Question     `json:"questions,omitempty" gorm:"foreignKey:SectionID"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
