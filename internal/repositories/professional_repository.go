package repositories

import (
	"errors"

	"propmatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfessionalNotFound = errors.New("professional profile not found")

type ProfessionalRepository interface {
	Create(db *gorm.DB, profile *models.ProfessionalProfile) error
	FindByUserID(db *gorm.DB, userID string) (*models.ProfessionalProfile, error)
	FindByUserIDWithUser(db *gorm.DB, userID string) (*models.ProfessionalProfile, error)
	Update(db *gorm.DB, profile *models.ProfessionalProfile) error
	FindVerified(db *gorm.DB) ([]models.ProfessionalProfile, error)
	FindAll(db *gorm.DB, status models.VerificationStatus) ([]models.ProfessionalProfile, error)
}

type ProfessionalRepositoryImpl struct{}

func NewProfessionalRepository() ProfessionalRepository {
	return &ProfessionalRepositoryImpl{}
}

func (r *ProfessionalRepositoryImpl) Create(db *gorm.DB, profile *models.ProfessionalProfile) error {
	return db.Create(profile).Error
}

func (r *ProfessionalRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.ProfessionalProfile, error) {
	var profile models.ProfessionalProfile
	err := db.First(&profile, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfessionalRepositoryImpl) FindByUserIDWithUser(db *gorm.DB, userID string) (*models.ProfessionalProfile, error) {
	return r.FindByUserID(db.Preload("User"), userID)
}

// Update saves every column; callers load, mutate and save inside one transaction.
func (r *ProfessionalRepositoryImpl) Update(db *gorm.DB, profile *models.ProfessionalProfile) error {
	return db.Omit("User").Save(profile).Error
}

// FindVerified returns every verified profile, ordered by user id.
func (r *ProfessionalRepositoryImpl) FindVerified(db *gorm.DB) ([]models.ProfessionalProfile, error) {
	var profiles []models.ProfessionalProfile
	err := db.Where("verification_status = ?", models.VerificationStatusVerified).
		Order("user_id ASC").
		Find(&profiles).Error
	return profiles, err
}

// FindAll lists profiles with their users. An empty status means all statuses.
func (r *ProfessionalRepositoryImpl) FindAll(db *gorm.DB, status models.VerificationStatus) ([]models.ProfessionalProfile, error) {
	var profiles []models.ProfessionalProfile
	query := db.Preload("User").Order("created_at ASC, user_id ASC")
	if status != "" {
		query = query.Where("verification_status = ?", status)
	}
	err := query.Find(&profiles).Error
	return profiles, err
}
