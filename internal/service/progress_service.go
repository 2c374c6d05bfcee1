package service

import (
	"fmt"
	"strings"

	"github.com/htdang/familylegacy/internal/dto"
	"github.com/htdang/familylegacy/internal/model"
	"github.com/htdang/familylegacy/internal/repository"
	"github.com/rs/zerolog/log"
)

// ProgressService derives completion percentages from raw responses and
// maintains the cached Progress rows. The percentage is always re-derived
// from the answers rather than incremented, so repeated saves of the same
// answer are idempotent and the cache cannot drift from the response set.
type ProgressService interface {
	CalculatePercentage(responses []model.Response, questionCount int) float64
	// RecordProgress overwrites the cached percentage and reports whether
	// the write crossed the 100% threshold. The decision is made atomically
	// in the repository, so concurrent writers see at most one crossing.
	RecordProgress(userID, sectionID uint, percentage float64) (*model.Progress, bool, error)
	GetSectionProgress(userID, sectionID uint) (*dto.ProgressDTO, error)
	GetUserProgress(userID uint) ([]dto.ProgressDTO, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
}

func NewProgressService(progressRepo repository.ProgressRepository) ProgressService {
	return &progressService{progressRepo: progressRepo}
}

// CalculatePercentage counts answers that are non-empty after trimming
// whitespace. A section with no questions is 0% by definition. The result is
// clamped to [0, 100].
func (s *progressService) CalculatePercentage(responses []model.Response, questionCount int) float64 {
	if questionCount <= 0 {
		return 0
	}
	answered := 0
	for _, response := range responses {
		if strings.TrimSpace(response.Answer) != "" {
			answered++
		}
	}
	percentage := 100 * float64(answered) / float64(questionCount)
	if percentage < 0 {
		return 0
	}
	if percentage > 100 {
		return 100
	}
	return percentage
}

func (s *progressService) RecordProgress(userID, sectionID uint, percentage float64) (*model.Progress, bool, error) {
	progress, completed, err := s.progressRepo.Upsert(userID, sectionID, percentage)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("sectionID", sectionID).Msg("Failed to upsert progress")
		return nil, false, fmt.Errorf("error updating progress for user %d section %d: %w", userID, sectionID, err)
	}
	return progress, completed, nil
}

func (s *progressService) GetSectionProgress(userID, sectionID uint) (*dto.ProgressDTO, error) {
	progress, err := s.progressRepo.FindByUserAndSection(userID, sectionID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("sectionID", sectionID).Msg("Failed to load section progress")
		return nil, fmt.Errorf("error fetching progress for user %d section %d: %w", userID, sectionID, err)
	}
	if progress == nil {
		// No row yet means nothing answered.
		return &dto.ProgressDTO{UserID: userID, SectionID: sectionID, CompletionPercentage: 0}, nil
	}
	return &dto.ProgressDTO{
		UserID:               progress.UserID,
		SectionID:            progress.SectionID,
		CompletionPercentage: progress.CompletionPercentage,
		LastUpdated:          progress.LastUpdated,
	}, nil
}

func (s *progressService) GetUserProgress(userID uint) ([]dto.ProgressDTO, error) {
	progresses, err := s.progressRepo.FindByUserID(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to load user progress")
		return nil, fmt.Errorf("error fetching progress for user %d: %w", userID, err)
	}
	dtos := make([]dto.ProgressDTO, 0, len(progresses))
	for _, p := range progresses {
		dtos = append(dtos, dto.ProgressDTO{
			UserID:               p.UserID,
			SectionID:            p.SectionID,
			CompletionPercentage: p.CompletionPercentage,
			LastUpdated:          p.LastUpdated,
		})
	}
	return dtos, nil
}
