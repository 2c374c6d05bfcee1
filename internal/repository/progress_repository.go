package repository

import (
	"errors"
	"time"

	"github.com/htdang/familylegacy/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	// FindByUserAndSection returns (nil, nil) when no progress row exists
	// yet; first save of a section creates it.
	FindByUserAndSection(userID, sectionID uint) (*model.Progress, error)
	FindByUserID(userID uint) ([]model.Progress, error)
	FindAll() ([]model.Progress, error)
	// Upsert overwrites the cached percentage for (user, section), stamping
	// LastUpdated, and reports whether this write crossed the 100%
	// threshold. The read-decide-write runs in one transaction with the row
	// locked, so concurrent writers serialize and at most one of them
	// observes the crossing.
	Upsert(userID, sectionID uint, percentage float64) (*model.Progress, bool, error)
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) FindByUserAndSection(userID, sectionID uint) (*model.Progress, error) {
	var progress model.Progress
	err := r.db.Where("user_id = ? AND section_id = ?", userID, sectionID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *progressRepository) FindByUserID(userID uint) ([]model.Progress, error) {
	var progresses []model.Progress
	if err := r.db.Where("user_id = ?", userID).Order("section_id ASC").Find(&progresses).Error; err != nil {
		return nil, err
	}
	return progresses, nil
}

func (r *progressRepository) FindAll() ([]model.Progress, error) {
	var progresses []model.Progress
	if err := r.db.Order("user_id ASC, section_id ASC").Find(&progresses).Error; err != nil {
		return nil, err
	}
	return progresses, nil
}

func (r *progressRepository) Upsert(userID, sectionID uint, percentage float64) (*model.Progress, bool, error) {
	// Two first-ever saves of a section can race the row creation; the
	// loser's insert hits the unique index, so one retry re-runs the locked
	// read and takes the update path.
	progress, crossed, err := r.upsertOnce(userID, sectionID, percentage)
	if err != nil {
		progress, crossed, err = r.upsertOnce(userID, sectionID, percentage)
	}
	return progress, crossed, err
}

func (r *progressRepository) upsertOnce(userID, sectionID uint, percentage float64) (*model.Progress, bool, error) {
	now := time.Now()
	var progress model.Progress
	var crossed bool

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing model.Progress
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND section_id = ?", userID, sectionID).
			First(&existing).Error
		if err == nil {
			crossed = existing.CompletionPercentage < 100 && percentage == 100
			existing.CompletionPercentage = percentage
			existing.LastUpdated = now
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			progress = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		created := model.Progress{
			UserID:               userID,
			SectionID:            sectionID,
			CompletionPercentage: percentage,
			LastUpdated:          now,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}
		crossed = percentage == 100
		progress = created
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &progress, crossed, nil
}
