package repositories

import (
	"propmatch_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MatchRepository interface {
	// Create inserts the pair unless it already exists; inserted reports which happened.
	Create(db *gorm.DB, match *models.JobMatch) (inserted bool, err error)
	FindByJob(db *gorm.DB, jobID string) ([]models.JobMatch, error)
	Exists(db *gorm.DB, jobID, professionalID string) (bool, error)
}

type MatchRepositoryImpl struct{}

func NewMatchRepository() MatchRepository {
	return &MatchRepositoryImpl{}
}

func (r *MatchRepositoryImpl) Create(db *gorm.DB, match *models.JobMatch) (bool, error) {
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "job_id"}, {Name: "professional_id"}},
		DoNothing: true,
	}).Create(match)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *MatchRepositoryImpl) FindByJob(db *gorm.DB, jobID string) ([]models.JobMatch, error) {
	var matches []models.JobMatch
	err := db.Where("job_id = ?", jobID).Order("assigned_at ASC").Find(&matches).Error
	return matches, err
}

func (r *MatchRepositoryImpl) Exists(db *gorm.DB, jobID, professionalID string) (bool, error) {
	var count int64
	err := db.Model(&models.JobMatch{}).
		Where("job_id = ? AND professional_id = ?", jobID, professionalID).
		Count(&count).Error
	return count > 0, err
}
