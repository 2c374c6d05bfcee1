package service

import (
	"testing"

	"github.com/htdang/familylegacy/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type overviewFixture struct {
	svc          AdminOverviewService
	userRepo     *fakeUserRepo
	progressRepo *fakeProgressRepo
	responseRepo *fakeResponseRepo
}

// newOverviewFixture seeds two participants, one admin and two sections.
func newOverviewFixture(t *testing.T) *overviewFixture {
	t.Helper()

	userRepo := newFakeUserRepo()
	require.NoError(t, userRepo.Create(&model.User{Name: "Rose", Email: "rose@example.com", Role: model.RoleParticipant}))
	require.NoError(t, userRepo.Create(&model.User{Name: "Henry", Email: "henry@example.com", Role: model.RoleParticipant}))
	require.NoError(t, userRepo.Create(&model.User{Name: "Admin", Email: "admin@example.com", Role: model.RoleAdmin}))

	sectionRepo := newFakeSectionRepo()
	require.NoError(t, sectionRepo.Create(&model.Section{ID: 1, Title: "Founding Stories", OrderIndex: 1}))
	require.NoError(t, sectionRepo.Create(&model.Section{ID: 2, Title: "Early Years", OrderIndex: 2}))

	progressRepo := newFakeProgressRepo()
	responseRepo := newFakeResponseRepo()
	return &overviewFixture{
		svc:          NewAdminOverviewService(userRepo, sectionRepo, progressRepo, responseRepo),
		userRepo:     userRepo,
		progressRepo: progressRepo,
		responseRepo: responseRepo,
	}
}

func TestParticipantsOverallIsAverageAcrossAllSections(t *testing.T) {
	f := newOverviewFixture(t)

	// Rose: section 1 done, section 2 untouched (no progress row at all).
	_, _, err := f.progressRepo.Upsert(1, 1, 100)
	require.NoError(t, err)

	rows, err := f.svc.Participants()
	require.NoError(t, err)
	require.Len(t, rows, 2, "admins never appear in the participant table")

	rose := rows[0]
	assert.Equal(t, "Rose", rose.Name)
	require.Len(t, rose.Sections, 2)
	assert.Equal(t, float64(100), rose.Sections[0].CompletionPercentage)
	assert.Equal(t, float64(0), rose.Sections[1].CompletionPercentage, "missing progress row counts as 0")
	assert.Equal(t, float64(50), rose.OverallPercentage)

	henry := rows[1]
	assert.Equal(t, float64(0), henry.OverallPercentage)
}

func TestOverviewAggregates(t *testing.T) {
	f := newOverviewFixture(t)

	// Rose everything done, Henry halfway through one of two sections.
	_, _, err := f.progressRepo.Upsert(1, 1, 100)
	require.NoError(t, err)
	_, _, err = f.progressRepo.Upsert(1, 2, 100)
	require.NoError(t, err)
	_, _, err = f.progressRepo.Upsert(2, 1, 50)
	require.NoError(t, err)

	overview, err := f.svc.Overview()
	require.NoError(t, err)
	assert.Equal(t, 2, overview.TotalParticipants)
	assert.Equal(t, 2, overview.TotalSections)
	assert.Equal(t, 1, overview.CompletedParticipants)
	// Rose 100, Henry (50+0)/2 = 25, averaged.
	assert.InDelta(t, 62.5, overview.AverageProgress, 1e-9)
}

func TestOverviewEmpty(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewAdminOverviewService(userRepo, newFakeSectionRepo(), newFakeProgressRepo(), newFakeResponseRepo())

	overview, err := svc.Overview()
	require.NoError(t, err)
	assert.Equal(t, 0, overview.TotalParticipants)
	assert.Equal(t, float64(0), overview.AverageProgress)
}

func TestParticipantDetailGroupsResponsesBySection(t *testing.T) {
	f := newOverviewFixture(t)

	_, err := f.responseRepo.Upsert(1, 1, 1, "answer one")
	require.NoError(t, err)
	_, err = f.responseRepo.Upsert(1, 1, 2, "answer two")
	require.NoError(t, err)
	_, err = f.responseRepo.Upsert(1, 2, 3, "answer three")
	require.NoError(t, err)
	_, _, err = f.progressRepo.Upsert(1, 1, 100)
	require.NoError(t, err)

	detail, err := f.svc.ParticipantDetail(1)
	require.NoError(t, err)
	assert.Equal(t, "Rose", detail.User.Name)
	require.Len(t, detail.Sections, 2)

	assert.Equal(t, "Founding Stories", detail.Sections[0].Title)
	assert.Equal(t, float64(100), detail.Sections[0].CompletionPercentage)
	assert.Len(t, detail.Sections[0].Responses, 2)
	assert.Len(t, detail.Sections[1].Responses, 1)
}

func TestParticipantDetailUnknownUser(t *testing.T) {
	f := newOverviewFixture(t)

	_, err := f.svc.ParticipantDetail(42)
	assert.Error(t, err)
}
