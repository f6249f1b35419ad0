package services

import (
	"errors"

	"propmatch_backend/internal/logger"
	"propmatch_backend/internal/models"
	"propmatch_backend/internal/repositories"
	"propmatch_backend/internal/services/dto"
	"propmatch_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProfessionalService interface {
	GetMe(db *gorm.DB, userID string) (*dto.ProfessionalDTO, error)
	UpdateMe(db *gorm.DB, userID string, req *dto.UpdateProfessionalRequest) (*dto.ProfessionalDTO, error)
}

type ProfessionalServiceImpl struct {
	professionalRepo repositories.ProfessionalRepository
	jobRepo          repositories.JobRepository
}

func NewProfessionalService(professionalRepo repositories.ProfessionalRepository, jobRepo repositories.JobRepository) ProfessionalService {
	return &ProfessionalServiceImpl{
		professionalRepo: professionalRepo,
		jobRepo:          jobRepo,
	}
}

func (s *ProfessionalServiceImpl) GetMe(db *gorm.DB, userID string) (*dto.ProfessionalDTO, error) {
	profile, err := s.load(db, userID)
	if err != nil {
		return nil, err
	}
	out := dto.NewProfessionalDTO(profile)
	return &out, nil
}

// UpdateMe patches the caller's profile and clears the first-login flag.
// Verification status is owned by admins and never changes here. When a
// verified profile changes a matching attribute, the stored suggestions of
// Open and Matched jobs are recomputed in the same transaction.
func (s *ProfessionalServiceImpl) UpdateMe(db *gorm.DB, userID string, req *dto.UpdateProfessionalRequest) (*dto.ProfessionalDTO, error) {
	tx, err := begin(db, "professional")
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	profile, err := s.load(tx, userID)
	if err != nil {
		return nil, err
	}

	if req.ABN != nil {
		profile.ABN = *req.ABN
	}
	if req.LicenseNumber != nil {
		profile.LicenseNumber = *req.LicenseNumber
	}
	if req.CompanyName != nil {
		profile.CompanyName = *req.CompanyName
	}
	matchingChanged := false
	if req.ProfessionalType != nil {
		if pt, ok := models.ParseProfessionalType(*req.ProfessionalType); ok && pt != profile.ProfessionalType {
			profile.ProfessionalType = pt
			matchingChanged = true
		}
	}
	if req.Regions != nil {
		profile.Regions = copyStrings(*req.Regions)
		matchingChanged = true
	}
	if req.States != nil {
		profile.States = dto.CanonicalStates(*req.States)
		matchingChanged = true
	}
	if req.Specialisations != nil {
		profile.Specialisations = copyStrings(*req.Specialisations)
		matchingChanged = true
	}
	profile.FirstLogin = false

	if err := s.professionalRepo.Update(tx, profile); err != nil {
		return nil, storeError(err, "professional")
	}

	if matchingChanged && profile.IsVerified() {
		updated, err := refreshLiveSuggestions(tx, s.jobRepo, s.professionalRepo)
		if err != nil {
			return nil, apperrors.DependencyFailure(err, "professional")
		}
		logger.CtxInfo(db.Statement.Context, "suggestions refreshed after profile update",
			"professional_id", profile.UserID,
			"jobs_updated", updated,
		)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DependencyFailure(err, "professional")
	}

	out := dto.NewProfessionalDTO(profile)
	return &out, nil
}

func (s *ProfessionalServiceImpl) load(db *gorm.DB, userID string) (*models.ProfessionalProfile, error) {
	profile, err := s.professionalRepo.FindByUserIDWithUser(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfessionalNotFound) {
			return nil, apperrors.ErrProfessionalNotFound
		}
		return nil, apperrors.DependencyFailure(err, "professional")
	}
	return profile, nil
}
