package service

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/htdang/familylegacy/internal/dto"
	"github.com/htdang/familylegacy/internal/model"
	"github.com/htdang/familylegacy/internal/repository"
	"github.com/rs/zerolog/log"
)

// AdminOverviewService builds the admin dashboard views: aggregate stats,
// the per-participant progress table, and the per-participant drill-down.
type AdminOverviewService interface {
	Overview() (*dto.AdminOverviewDTO, error)
	Participants() ([]dto.ParticipantOverviewDTO, error)
	ParticipantDetail(userID uint) (*dto.ParticipantDetailDTO, error)
}

type adminOverviewService struct {
	userRepo     repository.UserRepository
	sectionRepo  repository.SectionRepository
	progressRepo repository.ProgressRepository
	responseRepo repository.ResponseRepository
}

func NewAdminOverviewService(
	userRepo repository.UserRepository,
	sectionRepo repository.SectionRepository,
	progressRepo repository.ProgressRepository,
	responseRepo repository.ResponseRepository,
) AdminOverviewService {
	return &adminOverviewService{
		userRepo:     userRepo,
		sectionRepo:  sectionRepo,
		progressRepo: progressRepo,
		responseRepo: responseRepo,
	}
}

func (s *adminOverviewService) Overview() (*dto.AdminOverviewDTO, error) {
	participants, err := s.Participants()
	if err != nil {
		return nil, err
	}
	sections, err := s.sectionRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Overview: failed to load sections")
		return nil, fmt.Errorf("error fetching sections: %w", err)
	}

	overview := dto.AdminOverviewDTO{
		TotalParticipants: len(participants),
		TotalSections:     len(sections),
	}
	totalProgress := 0.0
	for _, p := range participants {
		totalProgress += p.OverallPercentage
		if p.OverallPercentage == 100 {
			overview.CompletedParticipants++
		}
	}
	if len(participants) > 0 {
		overview.AverageProgress = totalProgress / float64(len(participants))
	}
	return &overview, nil
}

func (s *adminOverviewService) Participants() ([]dto.ParticipantOverviewDTO, error) {
	participants, err := s.userRepo.FindByRole(model.RoleParticipant)
	if err != nil {
		log.Error().Err(err).Msg("Participants: failed to load participants")
		return nil, fmt.Errorf("error fetching participants: %w", err)
	}
	sections, err := s.sectionRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Participants: failed to load sections")
		return nil, fmt.Errorf("error fetching sections: %w", err)
	}
	allProgress, err := s.progressRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Participants: failed to load progress records")
		return nil, fmt.Errorf("error fetching progress records: %w", err)
	}

	// index progress by (user, section)
	type key struct{ userID, sectionID uint }
	progressByKey := make(map[key]float64, len(allProgress))
	for _, p := range allProgress {
		progressByKey[key{p.UserID, p.SectionID}] = p.CompletionPercentage
	}

	rows := make([]dto.ParticipantOverviewDTO, 0, len(participants))
	for _, participant := range participants {
		row := dto.ParticipantOverviewDTO{
			ID:    participant.ID,
			Name:  participant.Name,
			Email: participant.Email,
		}
		total := 0.0
		for _, section := range sections {
			pct := progressByKey[key{participant.ID, section.ID}]
			total += pct
			row.Sections = append(row.Sections, dto.SectionProgressDTO{
				SectionID:            section.ID,
				Title:                section.Title,
				CompletionPercentage: pct,
			})
		}
		if len(sections) > 0 {
			row.OverallPercentage = total / float64(len(sections))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *adminOverviewService) ParticipantDetail(userID uint) (*dto.ParticipantDetailDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("ParticipantDetail: user not found")
		return nil, fmt.Errorf("user not found with ID %d: %w", userID, err)
	}
	sections, err := s.sectionRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("ParticipantDetail: failed to load sections")
		return nil, fmt.Errorf("error fetching sections: %w", err)
	}
	progresses, err := s.progressRepo.FindByUserID(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("ParticipantDetail: failed to load progress")
		return nil, fmt.Errorf("error fetching progress for user %d: %w", userID, err)
	}
	responses, err := s.responseRepo.FindByUserID(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("ParticipantDetail: failed to load responses")
		return nil, fmt.Errorf("error fetching responses for user %d: %w", userID, err)
	}

	progressBySection := make(map[uint]float64, len(progresses))
	for _, p := range progresses {
		progressBySection[p.SectionID] = p.CompletionPercentage
	}
	responsesBySection := make(map[uint][]dto.ResponseDTO)
	for _, response := range responses {
		var d dto.ResponseDTO
		if err := copier.Copy(&d, &response); err != nil {
			log.Error().Err(err).Uint("responseID", response.ID).Msg("ParticipantDetail: failed to copy response to DTO")
			continue
		}
		responsesBySection[response.SectionID] = append(responsesBySection[response.SectionID], d)
	}

	detail := dto.ParticipantDetailDTO{}
	userDTO, err := userToDTO(user)
	if err != nil {
		return nil, err
	}
	detail.User = *userDTO
	for _, section := range sections {
		detail.Sections = append(detail.Sections, dto.SectionResponsesDTO{
			SectionID:            section.ID,
			Title:                section.Title,
			CompletionPercentage: progressBySection[section.ID],
			Responses:            responsesBySection[section.ID],
		})
	}
	return &detail, nil
}
