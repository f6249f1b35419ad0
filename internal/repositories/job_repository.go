package repositories

import (
	"errors"

	"propmatch_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobFilter struct {
	Status     models.JobStatus
	CustomerID string
}

type JobRepository interface {
	Create(db *gorm.DB, job *models.Job) error
	FindByID(db *gorm.DB, id string) (*models.Job, error)
	FindByCustomer(db *gorm.DB, customerID string) ([]models.Job, error)
	FindByStatus(db *gorm.DB, status models.JobStatus) ([]models.Job, error)
	FindAll(db *gorm.DB, filter JobFilter) ([]models.Job, error)
	FindFinalisedForProfessional(db *gorm.DB, professionalID string) ([]models.Job, error)
	Update(db *gorm.DB, job *models.Job) error
	Delete(db *gorm.DB, id string) error
}

type JobRepositoryImpl struct{}

func NewJobRepository() JobRepository {
	return &JobRepositoryImpl{}
}

// creationOrder is the stable listing order for every job query.
const creationOrder = "jobs.created_at ASC, jobs.id ASC"

// Create inserts the job and, when present, its detail row.
// Callers wrap it in a transaction.
func (r *JobRepositoryImpl) Create(db *gorm.DB, job *models.Job) error {
	detail := job.Detail
	job.Detail = nil

	if err := db.Omit("Matches").Create(job).Error; err != nil {
		return err
	}

	if detail != nil {
		detail.JobID = job.ID
		if err := db.Create(detail).Error; err != nil {
			return err
		}
	}
	job.Detail = detail
	return nil
}

func (r *JobRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Job, error) {
	var job models.Job
	err := db.Preload("Detail").Preload("Matches", func(db *gorm.DB) *gorm.DB {
		return db.Order("assigned_at ASC")
	}).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) FindByCustomer(db *gorm.DB, customerID string) ([]models.Job, error) {
	return r.FindAll(db, JobFilter{CustomerID: customerID})
}

func (r *JobRepositoryImpl) FindByStatus(db *gorm.DB, status models.JobStatus) ([]models.Job, error) {
	return r.FindAll(db, JobFilter{Status: status})
}

func (r *JobRepositoryImpl) FindAll(db *gorm.DB, filter JobFilter) ([]models.Job, error) {
	var jobs []models.Job
	query := db.Preload("Detail").Preload("Matches").Order(creationOrder)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CustomerID != "" {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	err := query.Find(&jobs).Error
	return jobs, err
}

// FindFinalisedForProfessional returns jobs that carry a match row for the professional.
func (r *JobRepositoryImpl) FindFinalisedForProfessional(db *gorm.DB, professionalID string) ([]models.Job, error) {
	var jobs []models.Job
	err := db.Preload("Detail").Preload("Matches").
		Joins("JOIN job_matches ON job_matches.job_id = jobs.id").
		Where("job_matches.professional_id = ?", professionalID).
		Order(creationOrder).
		Find(&jobs).Error
	return jobs, err
}

// Update saves the job row and its detail row.
func (r *JobRepositoryImpl) Update(db *gorm.DB, job *models.Job) error {
	if err := db.Omit("Detail", "Matches").Save(job).Error; err != nil {
		return err
	}
	if job.Detail != nil {
		job.Detail.JobID = job.ID
		if err := db.Save(job.Detail).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the job with its detail and match rows. Child rows are
// deleted explicitly so the behaviour does not depend on FK enforcement.
func (r *JobRepositoryImpl) Delete(db *gorm.DB, id string) error {
	if err := db.Where("job_id = ?", id).Delete(&models.JobMatch{}).Error; err != nil {
		return err
	}
	if err := db.Where("job_id = ?", id).Delete(&models.JobDetail{}).Error; err != nil {
		return err
	}

	result := db.Where("id = ?", id).Delete(&models.Job{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}
