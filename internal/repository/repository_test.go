package repository

import (
	"testing"

	"github.com/htdang/familylegacy/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Migrator().DropTable(
		&model.User{}, &model.Section{}, &model.Question{}, &model.Response{}, &model.Progress{},
	))
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Section{}, &model.Question{}, &model.Response{}, &model.Progress{},
	))
	return db
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)

	participant := model.User{Name: "Grandma Rose", Email: "rose@example.com", Role: model.RoleParticipant}
	admin := model.User{Name: "Admin", Email: "admin@example.com", Role: model.RoleAdmin}
	require.NoError(t, repo.Create(&participant))
	require.NoError(t, repo.Create(&admin))

	t.Run("find by role", func(t *testing.T) {
		admins, err := repo.FindByRole(model.RoleAdmin)
		require.NoError(t, err)
		require.Len(t, admins, 1)
		assert.Equal(t, "admin@example.com", admins[0].Email)
	})

	t.Run("update", func(t *testing.T) {
		participant.Phone = "555-1234"
		require.NoError(t, repo.Update(&participant))

		stored, err := repo.FindByID(participant.ID)
		require.NoError(t, err)
		assert.Equal(t, "555-1234", stored.Phone)
	})

	t.Run("delete", func(t *testing.T) {
		victim := model.User{Name: "Temp", Email: "temp@example.com", Role: model.RoleParticipant}
		require.NoError(t, repo.Create(&victim))
		require.NoError(t, repo.Delete([]uint{victim.ID}))

		_, err := repo.FindByID(victim.ID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestSectionRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewSectionRepository(db)

	section := model.Section{
		Title:      "Founding Stories",
		Subtitle:   "How it all began",
		OrderIndex: 1,
		Questions: []model.Question{
			{Text: "Where did the company start?", OrderInSection: 2},
			{Text: "Who founded it?", OrderInSection: 1},
		},
	}
	require.NoError(t, repo.Create(&section))
	require.NoError(t, repo.Create(&model.Section{Title: "Early Years", OrderIndex: 2}))

	t.Run("create cascades questions", func(t *testing.T) {
		loaded, err := repo.FindByIDWithQuestions(section.ID)
		require.NoError(t, err)
		require.Len(t, loaded.Questions, 2)
		assert.Equal(t, 1, loaded.Questions[0].OrderInSection, "questions come back in section order")
		assert.Equal(t, 2, loaded.Questions[1].OrderInSection)
	})

	t.Run("find all ordered by index", func(t *testing.T) {
		sections, err := repo.FindAll()
		require.NoError(t, err)
		require.Len(t, sections, 2)
		assert.Equal(t, "Founding Stories", sections[0].Title)
		assert.Equal(t, "Early Years", sections[1].Title)
	})

	t.Run("question counts", func(t *testing.T) {
		rows, err := repo.FindAllWithQuestionCount()
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, 2, rows[0].QuestionCount)
		assert.Equal(t, 0, rows[1].QuestionCount)
	})
}

func TestResponseRepositoryUpsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewResponseRepository(db)

	first, err := repo.Upsert(1, 1, 1, "first draft")
	require.NoError(t, err)
	assert.True(t, first.IsComplete)
	assert.False(t, first.LastSaved.IsZero())

	t.Run("overwrites in place", func(t *testing.T) {
		second, err := repo.Upsert(1, 1, 1, "revised draft")
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID, "same triple must reuse the same row")
		assert.Equal(t, "revised draft", second.Answer)

		var count int64
		require.NoError(t, db.Model(&model.Response{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("whitespace answer is incomplete", func(t *testing.T) {
		cleared, err := repo.Upsert(1, 1, 1, "   ")
		require.NoError(t, err)
		assert.False(t, cleared.IsComplete)
	})

	t.Run("different question is a new row", func(t *testing.T) {
		other, err := repo.Upsert(1, 1, 2, "other answer")
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, other.ID)

		responses, err := repo.FindByUserAndSection(1, 1)
		require.NoError(t, err)
		assert.Len(t, responses, 2)
	})

	t.Run("find by triple", func(t *testing.T) {
		found, err := repo.FindByTriple(1, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, "other answer", found.Answer)

		_, err = repo.FindByTriple(9, 9, 9)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestProgressRepositoryUpsert(t *testing.T) {
	db := newTestDB(t)
	repo := NewProgressRepository(db)

	t.Run("missing row is nil not error", func(t *testing.T) {
		progress, err := repo.FindByUserAndSection(1, 1)
		require.NoError(t, err)
		assert.Nil(t, progress)
	})

	created, crossed, err := repo.Upsert(1, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, float64(25), created.CompletionPercentage)
	assert.False(t, crossed)

	t.Run("overwrites in place and reports the crossing", func(t *testing.T) {
		updated, crossed, err := repo.Upsert(1, 1, 100)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, float64(100), updated.CompletionPercentage)
		assert.True(t, crossed)
		assert.False(t, updated.LastUpdated.Before(created.LastUpdated))

		var count int64
		require.NoError(t, db.Model(&model.Progress{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("repeated hundred is not a crossing", func(t *testing.T) {
		_, crossed, err := repo.Upsert(1, 1, 100)
		require.NoError(t, err)
		assert.False(t, crossed)
	})

	t.Run("find by user", func(t *testing.T) {
		_, _, err := repo.Upsert(1, 2, 50)
		require.NoError(t, err)
		_, _, err = repo.Upsert(2, 1, 10)
		require.NoError(t, err)

		progresses, err := repo.FindByUserID(1)
		require.NoError(t, err)
		require.Len(t, progresses, 2)
		assert.Equal(t, uint(1), progresses[0].SectionID)
		assert.Equal(t, uint(2), progresses[1].SectionID)
	})
}

func TestQuestionRepository(t *testing.T) {
	db := newTestDB(t)
	sectionRepo := NewSectionRepository(db)
	repo := NewQuestionRepository(db)

	section := model.Section{Title: "Founding Stories", OrderIndex: 1}
	require.NoError(t, sectionRepo.Create(&section))

	require.NoError(t, repo.Create(&model.Question{SectionID: section.ID, Text: "Q2", OrderInSection: 2}))
	require.NoError(t, repo.Create(&model.Question{SectionID: section.ID, Text: "Q1", OrderInSection: 1}))

	questions, err := repo.FindBySectionID(section.ID)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "Q1", questions[0].Text)

	count, err := repo.CountBySectionID(section.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountBySectionID(999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
