package dto

// SectionProgressDTO is one section's completion percentage for a participant.
type SectionProgressDTO struct {
	SectionID            uint    `json:"section_id"`
	Title                string  `json:"title"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// ParticipantOverviewDTO is one row of the admin progress table.
type ParticipantOverviewDTO struct {
	ID                uint                 `json:"id"`
	Name              string               `json:"name"`
	Email             string               `json:"email"`
	OverallPercentage float64              `json:"overall_percentage"`
	Sections          []SectionProgressDTO `json:"sections"`
}

// AdminOverviewDTO is the aggregate header of the admin dashboard.
type AdminOverviewDTO struct {
	TotalParticipants     int     `json:"total_participants"`
	CompletedParticipants int     `json:"completed_participants"`
	AverageProgress       float64 `json:"average_progress"`
	TotalSections         int     `json:"total_sections"`
}

// SectionResponsesDTO groups a participant's responses under one section.
type SectionResponsesDTO struct {
	SectionID            uint          `json:"section_id"`
	Title                string        `json:"title"`
	CompletionPercentage float64       `json:"completion_percentage"`
	Responses            []ResponseDTO `json:"responses,omitempty"`
}

// ParticipantDetailDTO is the per-participant drill-down view.
type ParticipantDetailDTO struct {
	User     UserDTO               `json:"user"`
	Sections []SectionResponsesDTO `json:"sections"`
}
