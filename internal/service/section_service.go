package service

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/htdang/familylegacy/internal/dto"
	"github.com/htdang/familylegacy/internal/repository"
	"github.com/rs/zerolog/log"
)

type SectionService interface {
	GetAllSections() ([]dto.SectionSummaryDTO, error)
	GetSectionWithQuestions(sectionID uint) (*dto.SectionDetailDTO, error)
	GetQuestions(sectionID uint) ([]dto.QuestionDTO, error)
}

type sectionService struct {
	sectionRepo  repository.SectionRepository
	questionRepo repository.QuestionRepository
}

func NewSectionService(sectionRepo repository.SectionRepository, questionRepo repository.QuestionRepository) SectionService {
	return &sectionService{sectionRepo: sectionRepo, questionRepo: questionRepo}
}

func (s *sectionService) GetAllSections() ([]dto.SectionSummaryDTO, error) {
	sectionsWithCount, err := s.sectionRepo.FindAllWithQuestionCount()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get sections with question count from repository")
		return nil, fmt.Errorf("error fetching sections: %w", err)
	}

	var dtos []dto.SectionSummaryDTO
	for _, swc := range sectionsWithCount {
		dtos = append(dtos, dto.SectionSummaryDTO{
			ID:            swc.Section.ID,
			Title:         swc.Section.Title,
			Subtitle:      swc.Section.Subtitle,
			OrderIndex:    swc.Section.OrderIndex,
			QuestionCount: swc.QuestionCount,
		})
	}
	return dtos, nil
}

func (s *sectionService) GetSectionWithQuestions(sectionID uint) (*dto.SectionDetailDTO, error) {
	section, err := s.sectionRepo.FindByIDWithQuestions(sectionID)
	if err != nil {
		log.Error().Err(err).Uint("sectionID", sectionID).Msg("Failed to get section details from repository")
		return nil, fmt.Errorf("section not found with ID %d: %w", sectionID, err)
	}

	var resp dto.SectionDetailDTO
	if err := copier.Copy(&resp, section); err != nil {
		log.Error().Err(err).Msg("Failed to copy Section model to SectionDetailDTO")
		return nil, fmt.Errorf("error preparing section details response: %w", err)
	}
	return &resp, nil
}

func (s *sectionService) GetQuestions(sectionID uint) ([]dto.QuestionDTO, error) {
	questions, err := s.questionRepo.FindBySectionID(sectionID)
	if err != nil {
		log.Error().Err(err).Uint("sectionID", sectionID).Msg("Failed to get questions from repository")
		return nil, fmt.Errorf("error fetching questions for section %d: %w", sectionID, err)
	}

	dtos := make([]dto.QuestionDTO, 0, len(questions))
	for _, question := range questions {
		var d dto.QuestionDTO
		if err := copier.Copy(&d, &question); err != nil {
			log.Error().Err(err).Uint("questionID", question.ID).Msg("Failed to copy Question model to DTO")
			continue
		}
		dtos = append(dtos, d)
	}
	return dtos, nil
}
