package services

import (
	"context"
	"sync"
	"time"

	"propmatch_backend/internal/email"
	"propmatch_backend/internal/logger"
	"propmatch_backend/internal/models"
)

const notifyTimeout = 15 * time.Second

// NotificationService sends best-effort mail. Calls return immediately; send
// failures are logged and never reach the caller.
type NotificationService interface {
	ProfessionalDecided(profile *models.ProfessionalProfile)
	JobFinalised(job *models.Job, profile *models.ProfessionalProfile)
	// Wait blocks until in-flight sends finish or ctx is done.
	Wait(ctx context.Context) error
}

type NotificationServiceImpl struct {
	provider email.Provider
	timeout  time.Duration
	wg       sync.WaitGroup
}

func NewNotificationService(provider email.Provider) *NotificationServiceImpl {
	return &NotificationServiceImpl{
		provider: provider,
		timeout:  notifyTimeout,
	}
}

func (s *NotificationServiceImpl) ProfessionalDecided(profile *models.ProfessionalProfile) {
	if profile.User == nil {
		logger.Warn("skipping verification mail, profile has no user loaded", "professional_id", profile.UserID)
		return
	}

	subject := "Your professional account has been verified"
	template := email.TemplateProfessionalVerified
	if profile.VerificationStatus == models.VerificationStatusRejected {
		subject = "Your professional account application"
		template = email.TemplateProfessionalRejected
	}

	s.dispatch("professional_decided", profile.User.Email, subject, template, email.TemplateData{
		"Name":             profile.User.FullName(),
		"ProfessionalType": string(profile.ProfessionalType),
	})
}

func (s *NotificationServiceImpl) JobFinalised(job *models.Job, profile *models.ProfessionalProfile) {
	if profile.User == nil {
		logger.Warn("skipping finalisation mail, profile has no user loaded", "professional_id", profile.UserID)
		return
	}

	data := email.TemplateData{
		"Name":         profile.User.FullName(),
		"JobTitle":     job.Title,
		"JobType":      string(job.JobType),
		"PropertyType": job.PropertyType,
	}
	if job.Detail != nil {
		data["ContactEmail"] = job.Detail.ContactEmail
		data["ContactPhone"] = job.Detail.ContactPhone
	}

	s.dispatch("job_finalised", profile.User.Email, "You have been selected for a job", email.TemplateJobFinalised, data)
}

func (s *NotificationServiceImpl) dispatch(kind, to, subject, template string, data email.TemplateData) {
	if s.provider == nil || to == "" {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		err := s.provider.SendTemplate(ctx, []string{to}, subject, template, data)
		logger.WorkerLog("notifier", kind, err)
	}()
}

func (s *NotificationServiceImpl) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
