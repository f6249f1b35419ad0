package services

import (
	"errors"
	"time"

	"propmatch_backend/internal/auth"
	"propmatch_backend/internal/logger"
	"propmatch_backend/internal/models"
	"propmatch_backend/internal/repositories"
	"propmatch_backend/internal/services/dto"
	"propmatch_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type MatchingService interface {
	FinalizeMatch(db *gorm.DB, principal *auth.Principal, req *dto.FinaliseRequest) (*dto.JobDTO, error)
}

type MatchingServiceImpl struct {
	jobRepo          repositories.JobRepository
	matchRepo        repositories.MatchRepository
	professionalRepo repositories.ProfessionalRepository
	notifier         NotificationService
	now              func() time.Time
}

func NewMatchingService(
	jobRepo repositories.JobRepository,
	matchRepo repositories.MatchRepository,
	professionalRepo repositories.ProfessionalRepository,
	notifier NotificationService,
) MatchingService {
	return &MatchingServiceImpl{
		jobRepo:          jobRepo,
		matchRepo:        matchRepo,
		professionalRepo: professionalRepo,
		notifier:         notifier,
		now:              time.Now,
	}
}

// FinalizeMatch assigns a professional to the job. Repeating a recorded pair
// is a no-op that returns the current job; a job holds at most one
// professional per professional type.
func (s *MatchingServiceImpl) FinalizeMatch(db *gorm.DB, principal *auth.Principal, req *dto.FinaliseRequest) (*dto.JobDTO, error) {
	tx, err := begin(db, "matching")
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	job, err := s.jobRepo.FindByID(tx, req.JobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.DependencyFailure(err, "matching")
	}
	if job.CustomerID != principal.UserID {
		return nil, apperrors.ErrJobAccessDenied
	}
	if job.Status == models.JobStatusClosed {
		return nil, apperrors.ErrInvalidJobStatus
	}

	profile, err := s.professionalRepo.FindByUserIDWithUser(tx, req.ProfessionalID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfessionalNotFound) {
			return nil, apperrors.ErrProfessionalNotFound
		}
		return nil, apperrors.DependencyFailure(err, "matching")
	}

	recorded, err := s.matchRepo.Exists(tx, job.ID, profile.UserID)
	if err != nil {
		return nil, apperrors.DependencyFailure(err, "matching")
	}
	if recorded {
		out := dto.NewJobDTO(job)
		return &out, nil
	}

	if !profile.IsVerified() || !job.HasSelectedType(profile.ProfessionalType) {
		return nil, apperrors.ErrProfessionalNotEligible
	}
	existing, err := s.matchRepo.FindByJob(tx, job.ID)
	if err != nil {
		return nil, apperrors.DependencyFailure(err, "matching")
	}
	for _, m := range existing {
		if m.ProfessionalType == profile.ProfessionalType {
			return nil, apperrors.ErrProfessionalTypeTaken
		}
	}

	match := &models.JobMatch{
		JobID:            job.ID,
		ProfessionalID:   profile.UserID,
		ProfessionalType: profile.ProfessionalType,
		AssignedAt:       s.now().UTC(),
	}
	inserted, err := s.matchRepo.Create(tx, match)
	if err != nil {
		return nil, storeError(err, "matching")
	}

	if job.Status != models.JobStatusFinalised {
		job.Status = models.JobStatusFinalised
		if err := s.jobRepo.Update(tx, job); err != nil {
			return nil, storeError(err, "matching")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DependencyFailure(err, "matching")
	}

	// A concurrent request may have recorded the same pair first.
	final, err := s.jobRepo.FindByID(db, job.ID)
	if err != nil {
		return nil, apperrors.DependencyFailure(err, "matching")
	}

	if inserted {
		logger.CtxInfo(db.Statement.Context, "match finalised",
			"job_id", job.ID,
			"professional_id", profile.UserID,
			"professional_type", profile.ProfessionalType,
		)
		s.notifier.JobFinalised(final, profile)
	}

	out := dto.NewJobDTO(final)
	return &out, nil
}
