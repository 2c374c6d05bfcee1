package model

import (
	"time"

	"gorm.io/gorm"
)

// Role is the fixed set of user roles. It is assigned at creation and never
// changed by profile updates.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleAdmin       Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleParticipant, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null"`
	Email     string         `json:"email" gorm:"not null;uniqueIndex"`
	Role      Role           `json:"role" gorm:"not null;index"`
	Phone     string         `json:"phone,omitempty"`
	Company   string         `json:"company,omitempty"`
	Position  string         `json:"position,omitempty"`
	Bio       string         `json:"bio,omitempty" gorm:"type:text"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
