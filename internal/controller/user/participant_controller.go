package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/htdang/familylegacy/internal/autosave"
	"github.com/htdang/familylegacy/internal/dto"
	"github.com/htdang/familylegacy/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ParticipantController struct {
	sectionService  service.SectionService
	responseService service.ResponseService
	progressService service.ProgressService
	userService     service.UserService
	drafts          *autosave.Manager
}

func NewParticipantController(
	sectionService service.SectionService,
	responseService service.ResponseService,
	progressService service.ProgressService,
	userService service.UserService,
	drafts *autosave.Manager,
) *ParticipantController {
	return &ParticipantController{
		sectionService:  sectionService,
		responseService: responseService,
		progressService: progressService,
		userService:     userService,
		drafts:          drafts,
	}
}

// GetSections godoc
// @Summary List all sections
// @Description Get all reflection sections in display order with question counts
// @Tags Sections
// @Produce json
// @Success 200 {array} dto.SectionSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections [get]
func (c *ParticipantController) GetSections(ctx *gin.Context) {
	sections, err := c.sectionService.GetAllSections()
	if err != nil {
		log.Error().Err(err).Msg("GetSections: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve sections"})
		return
	}
	ctx.JSON(http.StatusOK, sections)
}

// GetSection godoc
// @Summary Get a section with its questions
// @Tags Sections
// @Produce json
// @Param section_id path int true "Section ID"
// @Success 200 {object} dto.SectionDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Router /sections/{section_id} [get]
func (c *ParticipantController) GetSection(ctx *gin.Context) {
	sectionID, ok := parseIDParam(ctx, "section_id")
	if !ok {
		return
	}
	section, err := c.sectionService.GetSectionWithQuestions(sectionID)
	if err != nil {
		log.Error().Err(err).Uint("sectionID", sectionID).Msg("GetSection: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Section not found"})
		return
	}
	ctx.JSON(http.StatusOK, section)
}

// GetSectionQuestions godoc
// @Summary List a section's questions in display order
// @Tags Sections
// @Produce json
// @Param section_id path int true "Section ID"
// @Success 200 {array} dto.QuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections/{section_id}/questions [get]
func (c *ParticipantController) GetSectionQuestions(ctx *gin.Context) {
	sectionID, ok := parseIDParam(ctx, "section_id")
	if !ok {
		return
	}
	questions, err := c.sectionService.GetQuestions(sectionID)
	if err != nil {
		log.Error().Err(err).Uint("sectionID", sectionID).Msg("GetSectionQuestions: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve questions"})
		return
	}
	ctx.JSON(http.StatusOK, questions)
}

// SaveResponse godoc
// @Summary Save one answer
// @Description Upserts the response for (user, section, question), recomputes the section percentage, and notifies admins once when the section reaches 100%.
// @Tags Responses
// @Accept json
// @Produce json
// @Param response body dto.SaveResponseRequest true "Answer payload"
// @Success 200 {object} dto.SaveResponseResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /responses [post]
func (c *ParticipantController) SaveResponse(ctx *gin.Context) {
	var req dto.SaveResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SaveResponse: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := c.responseService.SaveAnswer(req)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Question not found"})
		case errors.Is(err, service.ErrQuestionNotInSection):
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		default:
			log.Error().Err(err).Msg("SaveResponse: service error")
			ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to save response"})
		}
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetSectionResponses godoc
// @Summary List a user's responses for a section
// @Tags Responses
// @Produce json
// @Param section_id path int true "Section ID"
// @Param user_id query int true "User ID"
// @Success 200 {array} dto.ResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections/{section_id}/responses [get]
func (c *ParticipantController) GetSectionResponses(ctx *gin.Context) {
	sectionID, ok := parseIDParam(ctx, "section_id")
	if !ok {
		return
	}
	userID, ok := parseIDQuery(ctx, "user_id")
	if !ok {
		return
	}
	responses, err := c.responseService.GetByUserAndSection(userID, sectionID)
	if err != nil {
		log.Error().Err(err).Msg("GetSectionResponses: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve responses"})
		return
	}
	ctx.JSON(http.StatusOK, responses)
}

// GetSectionProgress godoc
// @Summary Get a user's progress for a section
// @Tags Progress
// @Produce json
// @Param section_id path int true "Section ID"
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.ProgressDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections/{section_id}/progress [get]
func (c *ParticipantController) GetSectionProgress(ctx *gin.Context) {
	sectionID, ok := parseIDParam(ctx, "section_id")
	if !ok {
		return
	}
	userID, ok := parseIDQuery(ctx, "user_id")
	if !ok {
		return
	}
	progress, err := c.progressService.GetSectionProgress(userID, sectionID)
	if err != nil {
		log.Error().Err(err).Msg("GetSectionProgress: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve progress"})
		return
	}
	ctx.JSON(http.StatusOK, progress)
}

// GetUserProgress godoc
// @Summary Get a user's progress across all sections
// @Tags Progress
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {array} dto.ProgressDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{user_id}/progress [get]
func (c *ParticipantController) GetUserProgress(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}
	progresses, err := c.progressService.GetUserProgress(userID)
	if err != nil {
		log.Error().Err(err).Msg("GetUserProgress: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve progress"})
		return
	}
	ctx.JSON(http.StatusOK, progresses)
}

// PushDraft godoc
// @Summary Push in-progress answer text into the auto-save buffer
// @Description The answer is committed through the save pipeline after the buffer has been quiet for the debounce interval. Check /responses/draft/status for the outcome.
// @Tags Responses
// @Accept json
// @Produce json
// @Param draft body dto.DraftPushRequest true "Draft text"
// @Success 202 {object} dto.DraftStatusDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /responses/draft [post]
func (c *ParticipantController) PushDraft(ctx *gin.Context) {
	var req dto.DraftPushRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("PushDraft: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	c.drafts.Push(req.UserID, req.SectionID, req.QuestionID, req.Text)
	ctx.JSON(http.StatusAccepted, dto.DraftStatusDTO{Status: string(c.drafts.Status(req.UserID, req.QuestionID))})
}

// DraftStatus godoc
// @Summary Get the auto-save indicator state for a question
// @Tags Responses
// @Produce json
// @Param user_id query int true "User ID"
// @Param question_id query int true "Question ID"
// @Success 200 {object} dto.DraftStatusDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Router /responses/draft/status [get]
func (c *ParticipantController) DraftStatus(ctx *gin.Context) {
	userID, ok := parseIDQuery(ctx, "user_id")
	if !ok {
		return
	}
	questionID, ok := parseIDQuery(ctx, "question_id")
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.DraftStatusDTO{Status: string(c.drafts.Status(userID, questionID))})
}

// GetProfile godoc
// @Summary Get a user's profile
// @Tags Profile
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.UserDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{user_id}/profile [get]
func (c *ParticipantController) GetProfile(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}
	user, err := c.userService.GetUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("GetProfile: service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update a user's profile
// @Description Persists the profile and notifies admins of any tracked-field changes. The update succeeds even if notification dispatch fails.
// @Tags Profile
// @Accept json
// @Produce json
// @Param user_id path int true "User ID"
// @Param profile body dto.ProfileUpdateRequest true "Profile fields"
// @Success 200 {object} dto.ProfileUpdateResultDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or ID"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{user_id}/profile [put]
func (c *ParticipantController) UpdateProfile(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "user_id")
	if !ok {
		return
	}
	var req dto.ProfileUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("UpdateProfile: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := c.userService.UpdateProfile(userID, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
			return
		}
		log.Error().Err(err).Uint("userID", userID).Msg("UpdateProfile: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to update profile"})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

func parseIDQuery(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Query(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid or missing " + name + " query parameter"})
		return 0, false
	}
	return uint(id), true
}
