package services

import (
	"errors"
	"time"

	"propmatch_backend/internal/logger"
	"propmatch_backend/internal/models"
	"propmatch_backend/internal/repositories"
	"propmatch_backend/internal/services/dto"
	"propmatch_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AdminService interface {
	VerifyProfessional(db *gorm.DB, professionalID string) (*dto.VerificationResponse, error)
	RejectProfessional(db *gorm.DB, professionalID string) (*dto.VerificationResponse, error)
	ListJobs(db *gorm.DB, status models.JobStatus) ([]dto.JobDTO, error)
	ListProfessionals(db *gorm.DB, status models.VerificationStatus) ([]dto.ProfessionalDTO, error)
	ListCustomers(db *gorm.DB) ([]dto.UserDTO, error)
	ExportJobs(db *gorm.DB) ([]byte, error)
}

type AdminServiceImpl struct {
	userRepo         repositories.UserRepository
	professionalRepo repositories.ProfessionalRepository
	jobRepo          repositories.JobRepository
	notifier         NotificationService
	exporter         *ExportService
	now              func() time.Time
}

func NewAdminService(
	userRepo repositories.UserRepository,
	professionalRepo repositories.ProfessionalRepository,
	jobRepo repositories.JobRepository,
	notifier NotificationService,
	exporter *ExportService,
) AdminService {
	return &AdminServiceImpl{
		userRepo:         userRepo,
		professionalRepo: professionalRepo,
		jobRepo:          jobRepo,
		notifier:         notifier,
		exporter:         exporter,
		now:              time.Now,
	}
}

func (s *AdminServiceImpl) VerifyProfessional(db *gorm.DB, professionalID string) (*dto.VerificationResponse, error) {
	return s.decide(db, professionalID, models.VerificationStatusVerified)
}

func (s *AdminServiceImpl) RejectProfessional(db *gorm.DB, professionalID string) (*dto.VerificationResponse, error) {
	return s.decide(db, professionalID, models.VerificationStatusRejected)
}

// decide records a one-time verification decision; a second decision is a Conflict.
func (s *AdminServiceImpl) decide(db *gorm.DB, professionalID string, status models.VerificationStatus) (*dto.VerificationResponse, error) {
	tx, err := begin(db, "professional")
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	profile, err := s.professionalRepo.FindByUserIDWithUser(tx, professionalID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfessionalNotFound) {
			return nil, apperrors.ErrProfessionalNotFound
		}
		return nil, apperrors.DependencyFailure(err, "professional")
	}
	if profile.VerificationStatus.IsTerminal() {
		return nil, apperrors.ErrAlreadyDecided
	}

	profile.VerificationStatus = status
	if status == models.VerificationStatusVerified {
		verifiedAt := s.now().UTC()
		profile.VerifiedAt = &verifiedAt
	}

	if err := s.professionalRepo.Update(tx, profile); err != nil {
		return nil, storeError(err, "professional")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DependencyFailure(err, "professional")
	}

	logger.CtxInfo(db.Statement.Context, "professional verification decided",
		"professional_id", profile.UserID,
		"status", status,
	)
	s.notifier.ProfessionalDecided(profile)

	return &dto.VerificationResponse{
		ProfessionalID:     profile.UserID,
		VerificationStatus: profile.VerificationStatus,
	}, nil
}

func (s *AdminServiceImpl) ListJobs(db *gorm.DB, status models.JobStatus) ([]dto.JobDTO, error) {
	jobs, err := s.jobRepo.FindAll(db, repositories.JobFilter{Status: status})
	if err != nil {
		return nil, apperrors.DependencyFailure(err, "admin")
	}
	return dto.NewJobDTOs(jobs), nil
}

func (s *AdminServiceImpl) ListProfessionals(db *gorm.DB, status models.VerificationStatus) ([]dto.ProfessionalDTO, error) {
	profiles, err := s.professionalRepo.FindAll(db, status)
	if err != nil {
		return nil, apperrors.DependencyFailure(err, "admin")
	}
	return dto.NewProfessionalDTOs(profiles), nil
}

func (s *AdminServiceImpl) ListCustomers(db *gorm.DB) ([]dto.UserDTO, error) {
	users, err := s.userRepo.FindByRole(db, models.UserRoleCustomer)
	if err != nil {
		return nil, apperrors.DependencyFailure(err, "admin")
	}

	out := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		out = append(out, dto.NewUserDTO(&users[i]))
	}
	return out, nil
}

func (s *AdminServiceImpl) ExportJobs(db *gorm.DB) ([]byte, error) {
	jobs, err := s.jobRepo.FindAll(db, repositories.JobFilter{})
	if err != nil {
		return nil, apperrors.DependencyFailure(err, "admin")
	}

	data, err := s.exporter.Jobs(jobs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return data, nil
}
