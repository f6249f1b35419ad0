package repositories

import (
	"strings"

	"propmatch_backend/internal/models"

	"gorm.io/gorm"
)

type LocationRepository interface {
	Count(db *gorm.DB) (int64, error)
	CreateBatch(db *gorm.DB, suburbs []models.Suburb, batchSize int) error
	DistinctRegions(db *gorm.DB) ([]string, error)
	DistinctStates(db *gorm.DB) ([]string, error)
	Search(db *gorm.DB, query string, limit int) ([]models.Suburb, error)
}

type LocationRepositoryImpl struct{}

func NewLocationRepository() LocationRepository {
	return &LocationRepositoryImpl{}
}

func (r *LocationRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.Suburb{}).Count(&count).Error
	return count, err
}

func (r *LocationRepositoryImpl) CreateBatch(db *gorm.DB, suburbs []models.Suburb, batchSize int) error {
	if len(suburbs) == 0 {
		return nil
	}
	return db.CreateInBatches(suburbs, batchSize).Error
}

func (r *LocationRepositoryImpl) DistinctRegions(db *gorm.DB) ([]string, error) {
	var regions []string
	err := db.Model(&models.Suburb{}).
		Where("region <> ''").
		Distinct("region").
		Order("region ASC").
		Pluck("region", &regions).Error
	return regions, err
}

func (r *LocationRepositoryImpl) DistinctStates(db *gorm.DB) ([]string, error) {
	var states []string
	err := db.Model(&models.Suburb{}).
		Distinct("state").
		Order("state ASC").
		Pluck("state", &states).Error
	return states, err
}

// Search matches a postcode prefix when query is numeric, otherwise a
// case-insensitive locality prefix.
func (r *LocationRepositoryImpl) Search(db *gorm.DB, query string, limit int) ([]models.Suburb, error) {
	var suburbs []models.Suburb
	query = strings.TrimSpace(query)
	if query == "" {
		return suburbs, nil
	}

	q := db.Model(&models.Suburb{})
	if isDigits(query) {
		q = q.Where(`postcode LIKE ? ESCAPE '\'`, escapeLike(query)+"%")
	} else {
		q = q.Where(`LOWER(locality) LIKE ? ESCAPE '\'`, strings.ToLower(escapeLike(query))+"%")
	}

	err := q.Order("locality ASC, postcode ASC").Limit(limit).Find(&suburbs).Error
	return suburbs, err
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
