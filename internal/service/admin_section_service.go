package service

import (
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/htdang/familylegacy/internal/dto"
	"github.com/htdang/familylegacy/internal/model"
	"github.com/htdang/familylegacy/internal/repository"
	"github.com/rs/zerolog/log"
)

// AdminSectionService creates reference data: a section and its ordered
// questions in one request. Sections are not mutated by normal flow.
type AdminSectionService interface {
	CreateSection(req dto.SectionCreateRequest) (*dto.SectionDetailDTO, error)
}

type adminSectionService struct {
	sectionRepo repository.SectionRepository
}

func NewAdminSectionService(sectionRepo repository.SectionRepository) AdminSectionService {
	return &adminSectionService{sectionRepo: sectionRepo}
}

func (s *adminSectionService) CreateSection(req dto.SectionCreateRequest) (*dto.SectionDetailDTO, error) {
	orderMap := make(map[int]bool)
	var questionsToCreate []model.Question

	for _, qDto := range req.Questions {
		if orderMap[qDto.OrderInSection] {
			return nil, fmt.Errorf("duplicate OrderInSection %d found in questions", qDto.OrderInSection)
		}
		orderMap[qDto.OrderInSection] = true

		questionsToCreate = append(questionsToCreate, model.Question{
			Text:           qDto.Text,
			OrderInSection: qDto.OrderInSection,
		})
	}

	sectionModel := model.Section{
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		OrderIndex: req.OrderIndex,
		Questions:  questionsToCreate,
	}

	if err := s.sectionRepo.Create(&sectionModel); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("Failed to create section in database")
		return nil, fmt.Errorf("database error creating section: %w", err)
	}

	createdWithQuestions, err := s.sectionRepo.FindByIDWithQuestions(sectionModel.ID)
	if err != nil {
		log.Error().Err(err).Uint("sectionID", sectionModel.ID).Msg("Failed to reload newly created section for response")
		var fallbackResp dto.SectionDetailDTO
		copier.Copy(&fallbackResp, &sectionModel)
		return &fallbackResp, nil
	}

	var resp dto.SectionDetailDTO
	if err := copier.Copy(&resp, createdWithQuestions); err != nil {
		log.Error().Err(err).Msg("Failed to copy created Section model to SectionDetailDTO")
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}
