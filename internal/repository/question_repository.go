package repository

import (
	"github.com/htdang/familylegacy/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindBySectionID(sectionID uint) ([]model.Question, error)
	CountBySectionID(sectionID uint) (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindBySectionID(sectionID uint) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("section_id = ?", sectionID).Order("order_in_section ASC").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) CountBySectionID(sectionID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).Where("section_id = ?", sectionID).Count(&count).Error
	return count, err
}
