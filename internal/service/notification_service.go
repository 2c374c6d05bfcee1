package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/htdang/familylegacy/config"
	"github.com/htdang/familylegacy/internal/model"
	"github.com/htdang/familylegacy/internal/repository"
	"github.com/rs/zerolog/log"
)

// notSetSentinel stands in for empty field values in profile change summaries.
const notSetSentinel = "Not set"

// FieldChange is one tracked profile field that differs between the stored
// and the updated user.
type FieldChange struct {
	Field string
	From  string
	To    string
}

// NotificationResult reports how a dispatch went. Dispatch failures are
// counted here and logged; they are never returned as errors that could
// block the data write that triggered the notification.
type NotificationResult struct {
	Recipients int
	Failed     int
	Changes    int
}

// NotificationService emails every admin on section completion and on
// participant profile changes. Dispatch is best-effort: all admin messages
// are sent concurrently, failures are logged and surfaced in the result.
type NotificationService interface {
	SendSectionCompletion(userID, sectionID uint) (*NotificationResult, error)
	SendProfileUpdate(original, updated *model.User) (*NotificationResult, error)
}

type notificationService struct {
	userRepo    repository.UserRepository
	sectionRepo repository.SectionRepository
	mailer      Mailer
	cfg         *config.Config
}

func NewNotificationService(
	userRepo repository.UserRepository,
	sectionRepo repository.SectionRepository,
	mailer Mailer,
	cfg *config.Config,
) NotificationService {
	return &notificationService{
		userRepo:    userRepo,
		sectionRepo: sectionRepo,
		mailer:      mailer,
		cfg:         cfg,
	}
}

func (s *notificationService) SendSectionCompletion(userID, sectionID uint) (*NotificationResult, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("SendSectionCompletion: participant not found")
		return nil, fmt.Errorf("participant not found with ID %d: %w", userID, err)
	}
	section, err := s.sectionRepo.FindByID(sectionID)
	if err != nil {
		log.Error().Err(err).Uint("sectionID", sectionID).Msg("SendSectionCompletion: section not found")
		return nil, fmt.Errorf("section not found with ID %d: %w", sectionID, err)
	}
	admins, err := s.userRepo.FindByRole(model.RoleAdmin)
	if err != nil {
		log.Error().Err(err).Msg("SendSectionCompletion: failed to load admins")
		return nil, fmt.Errorf("error loading admin users: %w", err)
	}
	if len(admins) == 0 {
		log.Warn().Uint("sectionID", sectionID).Msg("SendSectionCompletion: no admin users registered, nothing to send")
		return &NotificationResult{}, nil
	}

	completedAt := time.Now()
	subject := fmt.Sprintf("Section Completed: %s - %s", user.Name, section.Title)
	body := fmt.Sprintf(
		"%s (%s) has completed section %d: %q at %s.",
		user.Name, user.Email, section.OrderIndex, section.Title, completedAt.Format(time.RFC1123),
	)

	failed := s.dispatchToAdmins(admins, subject, body)
	log.Info().
		Str("participant", user.Name).
		Str("section", section.Title).
		Int("recipients", len(admins)).
		Int("failed", failed).
		Msg("Section completion notifications dispatched")

	return &NotificationResult{Recipients: len(admins), Failed: failed}, nil
}

func (s *notificationService) SendProfileUpdate(original, updated *model.User) (*NotificationResult, error) {
	changes := ProfileDiff(original, updated, s.cfg.Notification.TrackedFields)
	if len(changes) == 0 {
		return &NotificationResult{Changes: 0}, nil
	}

	admins, err := s.userRepo.FindByRole(model.RoleAdmin)
	if err != nil {
		log.Error().Err(err).Msg("SendProfileUpdate: failed to load admins")
		return &NotificationResult{Changes: len(changes)}, fmt.Errorf("error loading admin users: %w", err)
	}
	if len(admins) == 0 {
		log.Warn().Uint("userID", updated.ID).Msg("SendProfileUpdate: no admin users registered, nothing to send")
		return &NotificationResult{Changes: len(changes)}, nil
	}

	updatedAt := time.Now()
	summaries := make([]string, 0, len(changes))
	for _, c := range changes {
		summaries = append(summaries, fmt.Sprintf("%s: %q -> %q", c.Field, c.From, c.To))
	}
	subject := fmt.Sprintf("Profile Updated: %s", updated.Name)
	body := fmt.Sprintf(
		"%s (%s) has updated their profile with %d change(s): %s at %s.",
		updated.Name, updated.Email, len(changes), strings.Join(summaries, ", "), updatedAt.Format(time.RFC1123),
	)

	failed := s.dispatchToAdmins(admins, subject, body)
	log.Info().
		Str("participant", updated.Name).
		Int("changes", len(changes)).
		Int("recipients", len(admins)).
		Int("failed", failed).
		Msg("Profile update notifications dispatched")

	return &NotificationResult{Recipients: len(admins), Failed: failed, Changes: len(changes)}, nil
}

// dispatchToAdmins sends one message per admin concurrently and waits for all
// sends to settle. Arrival order at the admins is not meaningful. Returns the
// number of failed sends; each failure is logged here.
func (s *notificationService) dispatchToAdmins(admins []model.User, subject, body string) int {
	var wg sync.WaitGroup
	failures := make(chan error, len(admins))

	for _, admin := range admins {
		wg.Add(1)
		go func(to string) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Notification.DispatchTimeout)
			defer cancel()
			if err := s.mailer.Send(ctx, to, subject, body); err != nil {
				log.Error().Err(err).Str("admin", to).Str("subject", subject).Msg("Notification dispatch failed")
				failures <- err
			}
		}(admin.Email)
	}

	wg.Wait()
	close(failures)
	return len(failures)
}

// ProfileDiff compares the tracked fields of two user snapshots. Empty values
// show up as "Not set" on either side, so "was empty, now set" still counts
// as a change.
func ProfileDiff(original, updated *model.User, trackedFields []string) []FieldChange {
	var changes []FieldChange
	for _, field := range trackedFields {
		from, okFrom := profileField(original, field)
		to, okTo := profileField(updated, field)
		if !okFrom || !okTo {
			log.Warn().Str("field", field).Msg("ProfileDiff: unknown tracked field, skipping")
			continue
		}
		if from == to {
			continue
		}
		changes = append(changes, FieldChange{
			Field: strings.ToUpper(field[:1]) + field[1:],
			From:  orNotSet(from),
			To:    orNotSet(to),
		})
	}
	return changes
}

func profileField(u *model.User, field string) (string, bool) {
	switch strings.ToLower(field) {
	case "name":
		return u.Name, true
	case "email":
		return u.Email, true
	case "phone":
		return u.Phone, true
	case "company":
		return u.Company, true
	case "position":
		return u.Position, true
	case "bio":
		return u.Bio, true
	}
	return "", false
}

func orNotSet(v string) string {
	if strings.TrimSpace(v) == "" {
		return notSetSentinel
	}
	return v
}
