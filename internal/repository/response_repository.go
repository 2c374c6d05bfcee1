package repository

import (
	"errors"
	"strings"
	"time"

	"github.com/htdang/familylegacy/internal/model"
	"gorm.io/gorm"
)

type ResponseRepository interface {
	FindByTriple(userID, sectionID, questionID uint) (*model.Response, error)
	FindByUserAndSection(userID, sectionID uint) ([]model.Response, error)
	FindByUserID(userID uint) ([]model.Response, error)
	// Upsert overwrites the single response for (user, section, question),
	// creating it on first save. IsComplete and LastSaved are recomputed on
	// every call.
	Upsert(userID, sectionID, questionID uint, answer string) (*model.Response, error)
	Delete(id uint) error
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) FindByTriple(userID, sectionID, questionID uint) (*model.Response, error) {
	var response model.Response
	err := r.db.
		Where("user_id = ? AND section_id = ? AND question_id = ?", userID, sectionID, questionID).
		First(&response).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *responseRepository) FindByUserAndSection(userID, sectionID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.db.
		Where("user_id = ? AND section_id = ?", userID, sectionID).
		Order("question_id ASC").
		Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepository) FindByUserID(userID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.db.Where("user_id = ?", userID).Order("section_id ASC, question_id ASC").Find(&responses).Error
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (r *responseRepository) Upsert(userID, sectionID, questionID uint, answer string) (*model.Response, error) {
	now := time.Now()
	isComplete := strings.TrimSpace(answer) != ""

	var existing model.Response
	err := r.db.
		Where("user_id = ? AND section_id = ? AND question_id = ?", userID, sectionID, questionID).
		First(&existing).Error
	if err == nil {
		existing.Answer = answer
		existing.IsComplete = isComplete
		existing.LastSaved = now
		if err := r.db.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := model.Response{
		UserID:     userID,
		SectionID:  sectionID,
		QuestionID: questionID,
		Answer:     answer,
		IsComplete: isComplete,
		LastSaved:  now,
	}
	if err := r.db.Create(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *responseRepository) Delete(id uint) error {
	return r.db.Delete(&model.Response{}, id).Error
}
