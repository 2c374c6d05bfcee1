package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/htdang/familylegacy/config"
	"github.com/htdang/familylegacy/internal/model"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Notification.TrackedFields = []string{"name", "email", "phone", "company", "position"}
	cfg.Notification.DispatchTimeout = 2 * time.Second
	return cfg
}

// fakeMailer records every send and can be told to fail for specific
// recipients.
type fakeMailer struct {
	mu     sync.Mutex
	sent   []sentMail
	failTo map[string]bool
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{failTo: make(map[string]bool)}
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failTo[to] {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func (m *fakeMailer) messages() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sentMail, len(m.sent))
	copy(out, m.sent)
	return out
}

type fakeUserRepo struct {
	users     map[uint]*model.User
	nextID    uint
	updateErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*model.User), nextID: 1}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*model.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindAll() ([]model.User, error) {
	var users []model.User
	for id := uint(1); id < r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) FindByRole(role model.Role) ([]model.User, error) {
	var users []model.User
	for id := uint(1); id < r.nextID; id++ {
		if user, ok := r.users[id]; ok && user.Role == role {
			users = append(users, *user)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) Update(user *model.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) Delete(ids []uint) error {
	for _, id := range ids {
		delete(r.users, id)
	}
	return nil
}

type fakeSectionRepo struct {
	sections map[uint]*model.Section
}

func newFakeSectionRepo() *fakeSectionRepo {
	return &fakeSectionRepo{sections: make(map[uint]*model.Section)}
}

func (r *fakeSectionRepo) Create(section *model.Section) error {
	if section.ID == 0 {
		section.ID = uint(len(r.sections) + 1)
	}
	stored := *section
	r.sections[section.ID] = &stored
	return nil
}

func (r *fakeSectionRepo) FindByID(id uint) (*model.Section, error) {
	section, ok := r.sections[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *section
	return &copied, nil
}

func (r *fakeSectionRepo) FindByIDWithQuestions(id uint) (*model.Section, error) {
	return r.FindByID(id)
}

func (r *fakeSectionRepo) FindAll() ([]model.Section, error) {
	var sections []model.Section
	for _, section := range r.ordered() {
		sections = append(sections, *section)
	}
	return sections, nil
}

func (r *fakeSectionRepo) FindAllWithQuestionCount() ([]struct {
	model.Section
	QuestionCount int
}, error) {
	var results []struct {
		model.Section
		QuestionCount int
	}
	for _, section := range r.ordered() {
		results = append(results, struct {
			model.Section
			QuestionCount int
		}{Section: *section, QuestionCount: len(section.Questions)})
	}
	return results, nil
}

func (r *fakeSectionRepo) ordered() []*model.Section {
	out := make([]*model.Section, 0, len(r.sections))
	for _, section := range r.sections {
		out = append(out, section)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out
}

type fakeQuestionRepo struct {
	questions map[uint]*model.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[uint]*model.Question)}
}

func (r *fakeQuestionRepo) Create(question *model.Question) error {
	if question.ID == 0 {
		question.ID = uint(len(r.questions) + 1)
	}
	stored := *question
	r.questions[question.ID] = &stored
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	question, ok := r.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *question
	return &copied, nil
}

func (r *fakeQuestionRepo) FindBySectionID(sectionID uint) ([]model.Question, error) {
	var questions []model.Question
	for id := uint(1); id <= uint(len(r.questions)); id++ {
		if question, ok := r.questions[id]; ok && question.SectionID == sectionID {
			questions = append(questions, *question)
		}
	}
	return questions, nil
}

func (r *fakeQuestionRepo) CountBySectionID(sectionID uint) (int64, error) {
	var count int64
	for _, question := range r.questions {
		if question.SectionID == sectionID {
			count++
		}
	}
	return count, nil
}

type tripleKey struct {
	userID     uint
	sectionID  uint
	questionID uint
}

type fakeResponseRepo struct {
	mu        sync.Mutex
	responses map[tripleKey]*model.Response
	nextID    uint
}

func newFakeResponseRepo() *fakeResponseRepo {
	return &fakeResponseRepo{responses: make(map[tripleKey]*model.Response), nextID: 1}
}

func (r *fakeResponseRepo) FindByTriple(userID, sectionID, questionID uint) (*model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	response, ok := r.responses[tripleKey{userID, sectionID, questionID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *response
	return &copied, nil
}

func (r *fakeResponseRepo) FindByUserAndSection(userID, sectionID uint) ([]model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var responses []model.Response
	for key, response := range r.responses {
		if key.userID == userID && key.sectionID == sectionID {
			responses = append(responses, *response)
		}
	}
	return responses, nil
}

func (r *fakeResponseRepo) FindByUserID(userID uint) ([]model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var responses []model.Response
	for key, response := range r.responses {
		if key.userID == userID {
			responses = append(responses, *response)
		}
	}
	return responses, nil
}

func (r *fakeResponseRepo) Upsert(userID, sectionID, questionID uint, answer string) (*model.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := tripleKey{userID, sectionID, questionID}
	isComplete := trimmedNonEmpty(answer)
	if existing, ok := r.responses[key]; ok {
		existing.Answer = answer
		existing.IsComplete = isComplete
		existing.LastSaved = time.Now()
		copied := *existing
		return &copied, nil
	}
	created := &model.Response{
		UserID:     userID,
		SectionID:  sectionID,
		QuestionID: questionID,
		Answer:     answer,
		IsComplete: isComplete,
		LastSaved:  time.Now(),
	}
	created.ID = r.nextID
	r.nextID++
	r.responses[key] = created
	copied := *created
	return &copied, nil
}

func (r *fakeResponseRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, response := range r.responses {
		if response.ID == id {
			delete(r.responses, key)
		}
	}
	return nil
}

func trimmedNonEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

type pairKey struct {
	userID    uint
	sectionID uint
}

type fakeProgressRepo struct {
	mu         sync.Mutex
	progresses map[pairKey]*model.Progress
	nextID     uint
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{progresses: make(map[pairKey]*model.Progress), nextID: 1}
}

func (r *fakeProgressRepo) FindByUserAndSection(userID, sectionID uint) (*model.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	progress, ok := r.progresses[pairKey{userID, sectionID}]
	if !ok {
		return nil, nil
	}
	copied := *progress
	return &copied, nil
}

func (r *fakeProgressRepo) FindByUserID(userID uint) ([]model.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var progresses []model.Progress
	for key, progress := range r.progresses {
		if key.userID == userID {
			progresses = append(progresses, *progress)
		}
	}
	return progresses, nil
}

func (r *fakeProgressRepo) FindAll() ([]model.Progress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var progresses []model.Progress
	for _, progress := range r.progresses {
		progresses = append(progresses, *progress)
	}
	return progresses, nil
}

// Upsert mirrors the real repository: the overwrite and the threshold
// decision happen under one lock.
func (r *fakeProgressRepo) Upsert(userID, sectionID uint, percentage float64) (*model.Progress, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey{userID, sectionID}
	if existing, ok := r.progresses[key]; ok {
		crossed := existing.CompletionPercentage < 100 && percentage == 100
		existing.CompletionPercentage = percentage
		existing.LastUpdated = time.Now()
		copied := *existing
		return &copied, crossed, nil
	}
	created := &model.Progress{
		UserID:               userID,
		SectionID:            sectionID,
		CompletionPercentage: percentage,
		LastUpdated:          time.Now(),
	}
	created.ID = r.nextID
	r.nextID++
	r.progresses[key] = created
	copied := *created
	return &copied, percentage == 100, nil
}
