package dto

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type UserDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Position  string    `json:"position,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type QuestionDTO struct {
	ID             uint   `json:"id"`
	SectionID      uint   `json:"section_id"`
	Text           string `json:"text"`
	OrderInSection int    `json:"order_in_section"`
}

// SectionSummaryDTO is used for listing sections without their questions.
type SectionSummaryDTO struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle,omitempty"`
	OrderIndex    int    `json:"order_index"`
	QuestionCount int    `json:"question_count"`
}

// SectionDetailDTO is used for displaying a section with its ordered questions.
type SectionDetailDTO struct {
	ID         uint          `json:"id"`
	Title      string        `json:"title"`
	Subtitle   string        `json:"subtitle,omitempty"`
	OrderIndex int           `json:"order_index"`
	Questions  []QuestionDTO `json:"questions,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
}

type ResponseDTO struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	SectionID  uint      `json:"section_id"`
	QuestionID uint      `json:"question_id"`
	Answer     string    `json:"answer"`
	IsComplete bool      `json:"is_complete"`
	LastSaved  time.Time `json:"last_saved"`
}

type ProgressDTO struct {
	UserID               uint      `json:"user_id"`
	SectionID            uint      `json:"section_id"`
	CompletionPercentage float64   `json:"completion_percentage"`
	LastUpdated          time.Time `json:"last_updated"`
}

// SaveResponseResultDTO echoes the persisted response together with the
// recomputed section percentage. SectionCompleted is true only on the
// <100 -> 100 transition that triggered admin notification.
type SaveResponseResultDTO struct {
	Response             ResponseDTO `json:"response"`
	CompletionPercentage float64     `json:"completion_percentage"`
	SectionCompleted     bool        `json:"section_completed"`
}

// ProfileUpdateResultDTO reports the persisted profile plus how many tracked
// fields actually changed. Changes == 0 means no admin notification was sent.
type ProfileUpdateResultDTO struct {
	User    UserDTO `json:"user"`
	Changes int     `json:"changes"`
}

// DraftStatusDTO projects the state of one question's auto-save buffer.
type DraftStatusDTO struct {
	Status string `json:"status"` // idle, saving, saved, error
}
