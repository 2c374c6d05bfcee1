package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/htdang/familylegacy/internal/dto"
	"github.com/htdang/familylegacy/internal/service"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type AdminController struct {
	overviewService service.AdminOverviewService
	sectionService  service.AdminSectionService
	userService     service.UserService
	responseService service.ResponseService
}

func NewAdminController(
	overviewService service.AdminOverviewService,
	sectionService service.AdminSectionService,
	userService service.UserService,
	responseService service.ResponseService,
) *AdminController {
	return &AdminController{
		overviewService: overviewService,
		sectionService:  sectionService,
		userService:     userService,
		responseService: responseService,
	}
}

// GetOverview godoc
// @Summary (Admin) Aggregate progress statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} dto.AdminOverviewDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/overview [get]
func (c *AdminController) GetOverview(ctx *gin.Context) {
	overview, err := c.overviewService.Overview()
	if err != nil {
		log.Error().Err(err).Msg("GetOverview: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve overview"})
		return
	}
	ctx.JSON(http.StatusOK, overview)
}

// GetParticipants godoc
// @Summary (Admin) Per-participant progress table
// @Tags Admin
// @Produce json
// @Success 200 {array} dto.ParticipantOverviewDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/participants [get]
func (c *AdminController) GetParticipants(ctx *gin.Context) {
	participants, err := c.overviewService.Participants()
	if err != nil {
		log.Error().Err(err).Msg("GetParticipants: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve participants"})
		return
	}
	ctx.JSON(http.StatusOK, participants)
}

// GetParticipantDetail godoc
// @Summary (Admin) One participant's profile, progress, and responses
// @Tags Admin
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} dto.ParticipantDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/participants/{user_id} [get]
func (c *AdminController) GetParticipantDetail(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("user_id"), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid user_id format"})
		return
	}
	detail, err := c.overviewService.ParticipantDetail(uint(userID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "User not found"})
			return
		}
		log.Error().Err(err).Uint64("userID", userID).Msg("GetParticipantDetail: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve participant detail"})
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// ListUsers godoc
// @Summary (Admin) List users, optionally filtered by role
// @Tags Admin
// @Produce json
// @Param role query string false "Filter by role" Enums(participant, admin)
// @Success 200 {array} dto.UserDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid role"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	var (
		users []dto.UserDTO
		err   error
	)
	switch role := ctx.Query("role"); role {
	case "":
		users, err = c.userService.ListUsers()
	case "participant":
		users, err = c.userService.ListParticipants()
	case "admin":
		users, err = c.userService.ListAdmins()
	default:
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid role filter: " + role})
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("ListUsers: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to retrieve users"})
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// CreateUser godoc
// @Summary (Admin) Create a user
// @Description Role is fixed at creation and cannot be changed by profile updates.
// @Tags Admin
// @Accept json
// @Produce json
// @Param user body dto.UserCreateRequest true "User data"
// @Success 201 {object} dto.UserDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users [post]
func (c *AdminController) CreateUser(ctx *gin.Context) {
	var req dto.UserCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateUser: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	user, err := c.userService.CreateUser(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateUser: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create user: " + err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// DeleteUsers godoc
// @Summary (Admin) Delete users by id
// @Tags Admin
// @Accept json
// @Param ids body dto.UserDeleteRequest true "User IDs to delete"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users [delete]
func (c *AdminController) DeleteUsers(ctx *gin.Context) {
	var req dto.UserDeleteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("DeleteUsers: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	if err := c.userService.DeleteUsers(req.IDs); err != nil {
		log.Error().Err(err).Msg("DeleteUsers: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete users"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateSection godoc
// @Summary (Admin) Create a section with its questions
// @Tags Admin
// @Accept json
// @Produce json
// @Param section body dto.SectionCreateRequest true "Section data including ordered questions"
// @Success 201 {object} dto.SectionDetailDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/sections [post]
func (c *AdminController) CreateSection(ctx *gin.Context) {
	var req dto.SectionCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateSection: failed to bind request")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	section, err := c.sectionService.CreateSection(req)
	if err != nil {
		log.Error().Err(err).Msg("CreateSection: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to create section: " + err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, section)
}

// DeleteResponse godoc
// @Summary (Admin) Delete one participant response
// @Description Removes the response for (user, section, question) and recomputes the cached section percentage. Normal participant flow never deletes responses.
// @Tags Admin
// @Param user_id query int true "User ID"
// @Param section_id query int true "Section ID"
// @Param question_id query int true "Question ID"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid ID format"
// @Failure 404 {object} dto.ErrorResponse "Response not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/responses [delete]
func (c *AdminController) DeleteResponse(ctx *gin.Context) {
	userID, ok := parseIDQuery(ctx, "user_id")
	if !ok {
		return
	}
	sectionID, ok := parseIDQuery(ctx, "section_id")
	if !ok {
		return
	}
	questionID, ok := parseIDQuery(ctx, "question_id")
	if !ok {
		return
	}

	if err := c.responseService.DeleteAnswer(userID, sectionID, questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Response not found"})
			return
		}
		log.Error().Err(err).Msg("DeleteResponse: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to delete response"})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func parseIDQuery(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Query(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid or missing " + name + " query parameter"})
		return 0, false
	}
	return uint(id), true
}
