package service

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/htdang/familylegacy/config"
	"github.com/htdang/familylegacy/internal/dto"
	"github.com/htdang/familylegacy/internal/model"
	"github.com/htdang/familylegacy/internal/repository"
	"github.com/rs/zerolog/log"
)

// UserService covers user CRUD and the profile change pipeline: the update
// is persisted first, then admins are notified of the tracked-field diff.
// A notification failure never fails the profile update.
type UserService interface {
	CreateUser(req dto.UserCreateRequest) (*dto.UserDTO, error)
	GetUser(id uint) (*dto.UserDTO, error)
	ListUsers() ([]dto.UserDTO, error)
	ListParticipants() ([]dto.UserDTO, error)
	ListAdmins() ([]dto.UserDTO, error)
	DeleteUsers(ids []uint) error
	UpdateProfile(id uint, req dto.ProfileUpdateRequest) (*dto.ProfileUpdateResultDTO, error)
}

type userService struct {
	userRepo repository.UserRepository
	notifier NotificationService
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, notifier NotificationService, cfg *config.Config) UserService {
	return &userService{userRepo: userRepo, notifier: notifier, cfg: cfg}
}

func (s *userService) CreateUser(req dto.UserCreateRequest) (*dto.UserDTO, error) {
	role := model.Role(req.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("invalid role %q", req.Role)
	}

	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Role:     role,
		Phone:    req.Phone,
		Company:  req.Company,
		Position: req.Position,
		Bio:      req.Bio,
	}
	if err := s.userRepo.Create(&user); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to create user")
		return nil, fmt.Errorf("database error creating user: %w", err)
	}

	return userToDTO(&user)
}

func (s *userService) GetUser(id uint) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		log.Error().Err(err).Uint("userID", id).Msg("Failed to get user from repository")
		return nil, fmt.Errorf("user not found with ID %d: %w", id, err)
	}
	return userToDTO(user)
}

func (s *userService) ListUsers() ([]dto.UserDTO, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list users")
		return nil, fmt.Errorf("error fetching users: %w", err)
	}
	return usersToDTOs(users), nil
}

func (s *userService) ListParticipants() ([]dto.UserDTO, error) {
	users, err := s.userRepo.FindByRole(model.RoleParticipant)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list participants")
		return nil, fmt.Errorf("error fetching participants: %w", err)
	}
	return usersToDTOs(users), nil
}

func (s *userService) ListAdmins() ([]dto.UserDTO, error) {
	users, err := s.userRepo.FindByRole(model.RoleAdmin)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list admins")
		return nil, fmt.Errorf("error fetching admins: %w", err)
	}
	return usersToDTOs(users), nil
}

func (s *userService) DeleteUsers(ids []uint) error {
	if err := s.userRepo.Delete(ids); err != nil {
		log.Error().Err(err).Uints("ids", ids).Msg("Failed to delete users")
		return fmt.Errorf("error deleting users: %w", err)
	}
	return nil
}

func (s *userService) UpdateProfile(id uint, req dto.ProfileUpdateRequest) (*dto.ProfileUpdateResultDTO, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		log.Error().Err(err).Uint("userID", id).Msg("UpdateProfile: user not found")
		return nil, fmt.Errorf("user not found with ID %d: %w", id, err)
	}

	original := *user

	// Role is immutable after creation; the request cannot carry one.
	user.Name = req.Name
	user.Email = req.Email
	user.Phone = req.Phone
	user.Company = req.Company
	user.Position = req.Position
	user.Bio = req.Bio

	if err := s.userRepo.Update(user); err != nil {
		log.Error().Err(err).Uint("userID", id).Msg("UpdateProfile: failed to persist profile")
		return nil, fmt.Errorf("error updating profile for user %d: %w", id, err)
	}

	changes := len(ProfileDiff(&original, user, s.cfg.Notification.TrackedFields))
	if result, notifyErr := s.notifier.SendProfileUpdate(&original, user); notifyErr != nil {
		// The profile update already succeeded; notification is best-effort.
		log.Error().Err(notifyErr).Uint("userID", id).Msg("UpdateProfile: notification failed, update is unaffected")
	} else {
		changes = result.Changes
		if result.Failed > 0 {
			log.Warn().Int("failed", result.Failed).Int("recipients", result.Recipients).Msg("UpdateProfile: some notifications failed to deliver")
		}
	}

	userDTO, err := userToDTO(user)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileUpdateResultDTO{User: *userDTO, Changes: changes}, nil
}

func userToDTO(user *model.User) (*dto.UserDTO, error) {
	var d dto.UserDTO
	if err := copier.Copy(&d, user); err != nil {
		log.Error().Err(err).Msg("Failed to copy User model to DTO")
		return nil, fmt.Errorf("error preparing user response: %w", err)
	}
	d.Role = string(user.Role)
	return &d, nil
}

func usersToDTOs(users []model.User) []dto.UserDTO {
	dtos := make([]dto.UserDTO, 0, len(users))
	for _, user := range users {
		d, err := userToDTO(&user)
		if err != nil {
			continue
		}
		dtos = append(dtos, *d)
	}
	return dtos
}
