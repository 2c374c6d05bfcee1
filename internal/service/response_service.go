package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"

	"github.com/htdang/familylegacy/internal/dto"
	"github.com/htdang/familylegacy/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ErrQuestionNotInSection is returned when a save names a question that does
// not belong to the given section. Rejected before any write.
var ErrQuestionNotInSection = errors.New("question does not belong to section")

// ResponseService runs the save pipeline: persist the answer, recompute the
// section percentage from the full response set, overwrite the cached
// progress, and fire the completion notification exactly once per
// <100 -> 100 transition. Notification failures never fail the save.
type ResponseService interface {
	SaveAnswer(req dto.SaveResponseRequest) (*dto.SaveResponseResultDTO, error)
	GetByUserAndSection(userID, sectionID uint) ([]dto.ResponseDTO, error)
	// DeleteAnswer removes one response and recomputes the cached section
	// percentage. Administrative operation; normal flow never deletes.
	DeleteAnswer(userID, sectionID, questionID uint) error
}

type responseService struct {
	questionRepo    repository.QuestionRepository
	responseRepo    repository.ResponseRepository
	progressService ProgressService
	notifier        NotificationService
}

func NewResponseService(
	questionRepo repository.QuestionRepository,
	responseRepo repository.ResponseRepository,
	progressService ProgressService,
	notifier NotificationService,
) ResponseService {
	return &responseService{
		questionRepo:    questionRepo,
		responseRepo:    responseRepo,
		progressService: progressService,
		notifier:        notifier,
	}
}

func (s *responseService) SaveAnswer(req dto.SaveResponseRequest) (*dto.SaveResponseResultDTO, error) {
	question, err := s.questionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question not found with ID %d: %w", req.QuestionID, err)
		}
		log.Error().Err(err).Uint("questionID", req.QuestionID).Msg("SaveAnswer: failed to load question")
		return nil, fmt.Errorf("error loading question %d: %w", req.QuestionID, err)
	}
	if question.SectionID != req.SectionID {
		return nil, fmt.Errorf("question %d belongs to section %d, not %d: %w",
			req.QuestionID, question.SectionID, req.SectionID, ErrQuestionNotInSection)
	}

	saved, err := s.responseRepo.Upsert(req.UserID, req.SectionID, req.QuestionID, req.Answer)
	if err != nil {
		log.Error().Err(err).
			Uint("userID", req.UserID).
			Uint("sectionID", req.SectionID).
			Uint("questionID", req.QuestionID).
			Msg("SaveAnswer: failed to persist response")
		return nil, fmt.Errorf("error saving response: %w", err)
	}

	questionCount, err := s.questionRepo.CountBySectionID(req.SectionID)
	if err != nil {
		log.Error().Err(err).Uint("sectionID", req.SectionID).Msg("SaveAnswer: failed to count section questions")
		return nil, fmt.Errorf("error counting questions for section %d: %w", req.SectionID, err)
	}
	responses, err := s.responseRepo.FindByUserAndSection(req.UserID, req.SectionID)
	if err != nil {
		log.Error().Err(err).Uint("userID", req.UserID).Uint("sectionID", req.SectionID).Msg("SaveAnswer: failed to load responses")
		return nil, fmt.Errorf("error loading responses for section %d: %w", req.SectionID, err)
	}
	percentage := s.progressService.CalculatePercentage(responses, int(questionCount))

	// The completion transition fires only when the previously stored
	// percentage was below 100 and the recomputed one is exactly 100.
	// The decision is made under a row lock in the repository, so racing
	// saves of a section's last answers yield exactly one crossing.
	// Re-saving an already complete section stays quiet; dropping below 100
	// and returning is a legitimate re-trigger.
	_, completed, err := s.progressService.RecordProgress(req.UserID, req.SectionID, percentage)
	if err != nil {
		return nil, err
	}
	if completed {
		if result, notifyErr := s.notifier.SendSectionCompletion(req.UserID, req.SectionID); notifyErr != nil {
			// Progress is already persisted; notification is best-effort.
			log.Error().Err(notifyErr).
				Uint("userID", req.UserID).
				Uint("sectionID", req.SectionID).
				Msg("SaveAnswer: completion notification failed, save is unaffected")
		} else if result.Failed > 0 {
			log.Warn().
				Int("failed", result.Failed).
				Int("recipients", result.Recipients).
				Msg("SaveAnswer: some completion notifications failed to deliver")
		}
	}

	var responseDTO dto.ResponseDTO
	if err := copier.Copy(&responseDTO, saved); err != nil {
		log.Error().Err(err).Msg("SaveAnswer: failed to copy response model to DTO")
		return nil, fmt.Errorf("error preparing save response: %w", err)
	}
	return &dto.SaveResponseResultDTO{
		Response:             responseDTO,
		CompletionPercentage: percentage,
		SectionCompleted:     completed,
	}, nil
}

func (s *responseService) DeleteAnswer(userID, sectionID, questionID uint) error {
	response, err := s.responseRepo.FindByTriple(userID, sectionID, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("response not found for user %d section %d question %d: %w", userID, sectionID, questionID, err)
		}
		log.Error().Err(err).
			Uint("userID", userID).
			Uint("sectionID", sectionID).
			Uint("questionID", questionID).
			Msg("DeleteAnswer: failed to load response")
		return fmt.Errorf("error loading response: %w", err)
	}
	if err := s.responseRepo.Delete(response.ID); err != nil {
		log.Error().Err(err).Uint("responseID", response.ID).Msg("DeleteAnswer: failed to delete response")
		return fmt.Errorf("error deleting response %d: %w", response.ID, err)
	}

	questionCount, err := s.questionRepo.CountBySectionID(sectionID)
	if err != nil {
		log.Error().Err(err).Uint("sectionID", sectionID).Msg("DeleteAnswer: failed to count section questions")
		return fmt.Errorf("error counting questions for section %d: %w", sectionID, err)
	}
	responses, err := s.responseRepo.FindByUserAndSection(userID, sectionID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("sectionID", sectionID).Msg("DeleteAnswer: failed to load responses")
		return fmt.Errorf("error loading responses for section %d: %w", sectionID, err)
	}
	percentage := s.progressService.CalculatePercentage(responses, int(questionCount))

	// Deletion never announces a completion, whatever the recomputed value.
	if _, _, err := s.progressService.RecordProgress(userID, sectionID, percentage); err != nil {
		return err
	}
	return nil
}

func (s *responseService) GetByUserAndSection(userID, sectionID uint) ([]dto.ResponseDTO, error) {
	responses, err := s.responseRepo.FindByUserAndSection(userID, sectionID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("sectionID", sectionID).Msg("Failed to load responses")
		return nil, fmt.Errorf("error fetching responses for user %d section %d: %w", userID, sectionID, err)
	}
	dtos := make([]dto.ResponseDTO, 0, len(responses))
	for _, response := range responses {
		var d dto.ResponseDTO
		if err := copier.Copy(&d, &response); err != nil {
			log.Error().Err(err).Uint("responseID", response.ID).Msg("Failed to copy response model to DTO")
			continue
		}
		dtos = append(dtos, d)
	}
	return dtos, nil
}
