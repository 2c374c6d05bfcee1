package repository

import (
	"github.com/htdang/familylegacy/internal/model"
	"gorm.io/gorm"
)

type SectionRepository interface {
	Create(section *model.Section) error
	FindByID(id uint) (*model.Section, error)
	FindByIDWithQuestions(id uint) (*model.Section, error)
	FindAll() ([]model.Section, error)
	FindAllWithQuestionCount() ([]struct {
		model.Section
		QuestionCount int
	}, error)
}

type sectionRepository struct {
	db *gorm.DB
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{db: db}
}

func (r *sectionRepository) Create(section *model.Section) error {
	// GORM creates associated questions when section.Questions is populated.
	return r.db.Create(section).Error
}

func (r *sectionRepository) FindByID(id uint) (*model.Section, error) {
	var section model.Section
	err := r.db.First(&section, id).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepository) FindByIDWithQuestions(id uint) (*model.Section, error) {
	var section model.Section
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_in_section ASC")
	}).First(&section, id).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepository) FindAll() ([]model.Section, error) {
	var sections []model.Section
	if err := r.db.Order("order_index ASC").Find(&sections).Error; err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *sectionRepository) FindAllWithQuestionCount() ([]struct {
	model.Section
	QuestionCount int
}, error) {
	var results []struct {
		model.Section
		QuestionCount int
	}
	err := r.db.Model(&model.Section{}).
		Select("sections.*, (SELECT COUNT(*) FROM questions WHERE questions.section_id = sections.id AND questions.deleted_at IS NULL) as question_count").
		Where("sections.deleted_at IS NULL").
		Order("sections.order_index ASC").
		Scan(&results).Error
	return results, err
}
