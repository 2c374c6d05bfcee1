package dto

// UserCreateRequest creates a user with a fixed role. Role cannot be changed
// by later profile updates.
type UserCreateRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Role     string `json:"role" binding:"required,oneof=participant admin"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Position string `json:"position"`
	Bio      string `json:"bio"`
}

// ProfileUpdateRequest carries editable profile fields. Role is deliberately
// absent.
type ProfileUpdateRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Position string `json:"position"`
	Bio      string `json:"bio"`
}

type UserDeleteRequest struct {
	IDs []uint `json:"ids" binding:"required,min=1"`
}

type SaveResponseRequest struct {
	UserID     uint   `json:"user_id" binding:"required"`
	SectionID  uint   `json:"section_id" binding:"required"`
	QuestionID uint   `json:"question_id" binding:"required"`
	Answer     string `json:"answer"`
}

// DraftPushRequest feeds the debounced auto-save buffer. The answer is only
// persisted after the buffer has been quiet for the configured interval.
type DraftPushRequest struct {
	UserID     uint   `json:"user_id" binding:"required"`
	SectionID  uint   `json:"section_id" binding:"required"`
	QuestionID uint   `json:"question_id" binding:"required"`
	Text       string `json:"text"`
}

// QuestionForSectionRequest is used when creating questions as part of a new section.
type QuestionForSectionRequest struct {
	Text           string `json:"text" binding:"required"`
	OrderInSection int    `json:"order_in_section" binding:"required,min=1"`
}

type SectionCreateRequest struct {
	Title      string                      `json:"title" binding:"required"`
	Subtitle   string                      `json:"subtitle"`
	OrderIndex int                         `json:"order_index" binding:"required,min=1"`
	Questions  []QuestionForSectionRequest `json:"questions" binding:"required,min=1,dive"`
}
