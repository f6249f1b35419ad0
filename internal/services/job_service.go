package services

import (
	"errors"

	"propmatch_backend/internal/algorithms"
	"propmatch_backend/internal/auth"
	"propmatch_backend/internal/logger"
	"propmatch_backend/internal/models"
	"propmatch_backend/internal/repositories"
	"propmatch_backend/internal/services/dto"
	"propmatch_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobService interface {
	CreateJob(db *gorm.DB, principal *auth.Principal, req *dto.CreateJobRequest) (*dto.JobDTO, error)
	GetJob(db *gorm.DB, principal *auth.Principal, jobID string) (*dto.JobDTO, error)
	ListJobsForCustomer(db *gorm.DB, principal *auth.Principal, customerID string) ([]dto.JobDTO, error)
	UpdateJob(db *gorm.DB, principal *auth.Principal, jobID string, req *dto.UpdateJobRequest) error
	DeleteJob(db *gorm.DB, principal *auth.Principal, jobID string) error
	CloseJob(db *gorm.DB, principal *auth.Principal, jobID string) (*dto.JobDTO, error)
	Shortlist(db *gorm.DB, principal *auth.Principal, jobID string, req *dto.ShortlistRequest) (*dto.JobDTO, error)
	RefreshSuggestions(db *gorm.DB, principal *auth.Principal, jobID string) (*dto.JobDTO, error)
	ListApplicableJobs(db *gorm.DB, professionalID string) ([]dto.JobDTO, error)
	ListFinalisedJobs(db *gorm.DB, professionalID string) ([]dto.JobDTO, error)
}

type JobServiceImpl struct {
	jobRepo          repositories.JobRepository
	userRepo         repositories.UserRepository
	professionalRepo repositories.ProfessionalRepository
}

func NewJobService(
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	professionalRepo repositories.ProfessionalRepository,
) JobService {
	return &JobServiceImpl{
		jobRepo:          jobRepo,
		userRepo:         userRepo,
		professionalRepo: professionalRepo,
	}
}

func (s *JobServiceImpl) CreateJob(db *gorm.DB, principal *auth.Principal, req *dto.CreateJobRequest) (*dto.JobDTO, error) {
	if errs := models.ValidateBudget(req.BudgetMin, req.BudgetMax); errs != nil {
		return nil, apperrors.ValidationError(errs)
	}

	job := &models.Job{
		CustomerID:            principal.UserID,
		JobType:               models.JobType(req.JobType),
		Title:                 req.Title,
		PurchaseType:          req.PurchaseType,
		PropertyType:          req.PropertyType,
		BudgetMin:             req.BudgetMin,
		BudgetMax:             req.BudgetMax,
		Regions:               datatypes.JSONSlice[string](copyStrings(req.Regions)),
		States:                datatypes.JSONSlice[string](dto.CanonicalStates(req.States)),
		Specialisations:       datatypes.JSONSlice[string](copyStrings(req.Specialisations)),
		SelectedProfessionals: datatypes.JSONSlice[string](dto.CanonicalProfessionalTypes(req.SelectedProfessionals)),
		Status:                models.JobStatusOpen,
		Detail: &models.JobDetail{
			JourneyProgress:   req.JourneyProgress,
			ContactEmail:      req.ContactEmail,
			ContactPhone:      req.ContactPhone,
			AdditionalDetails: req.AdditionalDetails,
		},
	}

	tx, err := begin(db, "job")
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := s.recomputeSuggestions(tx, job); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Create(tx, job); err != nil {
		return nil, storeError(err, "job")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DependencyFailure(err, "job")
	}

	logger.CtxInfo(db.Statement.Context, "job created",
		"job_id", job.ID,
		"suggested", len(job.SuggestedProfessionals),
	)

	out := dto.NewJobDTO(job)
	return &out, nil
}

func (s *JobServiceImpl) GetJob(db *gorm.DB, principal *auth.Principal, jobID string) (*dto.JobDTO, error) {
	job, err := s.findJob(db, jobID)
	if err != nil {
		return nil, err
	}
	if job.CustomerID != principal.UserID && !principal.IsAdmin() {
		return nil, apperrors.ErrJobAccessDenied
	}

	out := dto.NewJobDTO(job)
	return &out, nil
}

// ListJobsForCustomer lists in creation order. Customers may only list their own jobs.
func (s *JobServiceImpl) ListJobsForCustomer(db *gorm.DB, principal *auth.Principal, customerID string) ([]dto.JobDTO, error) {
	if customerID != principal.UserID && !principal.IsAdmin() {
		return nil, apperrors.ErrJobAccessDenied
	}

	customer, err := s.userRepo.FindByID(db, customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, apperrors.DependencyFailure(err, "job")
	}
	if customer.Role != models.UserRoleCustomer {
		return nil, apperrors.ErrCustomerNotFound
	}

	jobs, err := s.jobRepo.FindByCustomer(db, customerID)
	if err != nil {
		return nil, apperrors.DependencyFailure(err, "job")
	}
	return dto.NewJobDTOs(jobs), nil
}

// UpdateJob merges the patch and recomputes suggestions only when a matching
// attribute actually changed.
func (s *JobServiceImpl) UpdateJob(db *gorm.DB, principal *auth.Principal, jobID string, req *dto.UpdateJobRequest) error {
	tx, err := begin(db, "job")
	if err != nil {
		return err
	}
	defer tx.Rollback()

	job, err := s.findOwnedJob(tx, principal, jobID)
	if err != nil {
		return err
	}
	if !job.Status.IsEditable() {
		return apperrors.ErrJobNotEditable
	}

	if job.Detail == nil {
		job.Detail = &models.JobDetail{JobID: job.ID}
	}

	changes := req.ToPatch().Apply(job, job.Detail)
	if changes.IsEmpty() {
		return nil
	}

	if errs := models.ValidateBudget(job.BudgetMin, job.BudgetMax); errs != nil {
		return apperrors.ValidationError(errs)
	}
	if len(job.SelectedProfessionals) == 0 {
		return apperrors.ValidationError(map[string]string{
			"selectedProfessionals": "At least one professional type is required",
		})
	}

	if changes.TouchesMatching() {
		if err := s.recomputeSuggestions(tx, job); err != nil {
			return err
		}
	}

	if err := s.jobRepo.Update(tx, job); err != nil {
		return storeError(err, "job")
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.DependencyFailure(err, "job")
	}

	logger.CtxInfo(db.Statement.Context, "job updated",
		"job_id", job.ID,
		"fields", len(changes),
		"suggestions_recomputed", changes.TouchesMatching(),
	)
	return nil
}

func (s *JobServiceImpl) DeleteJob(db *gorm.DB, principal *auth.Principal, jobID string) error {
	tx, err := begin(db, "job")
	if err != nil {
		return err
	}
	defer tx.Rollback()

	job, err := s.findOwnedJob(tx, principal, jobID)
	if err != nil {
		return err
	}
	if !job.Status.IsEditable() {
		return apperrors.ErrJobNotEditable
	}

	if err := s.jobRepo.Delete(tx, job.ID); err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrJobNotFound
		}
		return apperrors.DependencyFailure(err, "job")
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.DependencyFailure(err, "job")
	}

	logger.CtxInfo(db.Statement.Context, "job deleted", "job_id", job.ID)
	return nil
}

// CloseJob moves a Finalised job to Closed. Admins may close any job.
func (s *JobServiceImpl) CloseJob(db *gorm.DB, principal *auth.Principal, jobID string) (*dto.JobDTO, error) {
	tx, err := begin(db, "job")
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	job, err := s.findJob(tx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CustomerID != principal.UserID && !principal.IsAdmin() {
		return nil, apperrors.ErrJobAccessDenied
	}
	if job.Status != models.JobStatusFinalised || !job.Status.CanTransitionTo(models.JobStatusClosed) {
		return nil, apperrors.ErrInvalidJobStatus
	}

	job.Status = models.JobStatusClosed
	if err := s.jobRepo.Update(tx, job); err != nil {
		return nil, storeError(err, "job")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DependencyFailure(err, "job")
	}

	out := dto.NewJobDTO(job)
	return &out, nil
}

// Shortlist records the owner's picks from the suggested list and moves an Open job to Matched.
func (s *JobServiceImpl) Shortlist(db *gorm.DB, principal *auth.Principal, jobID string, req *dto.ShortlistRequest) (*dto.JobDTO, error) {
	tx, err := begin(db, "job")
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	job, err := s.findOwnedJob(tx, principal, jobID)
	if err != nil {
		return nil, err
	}
	if !job.Status.IsEditable() {
		return nil, apperrors.ErrInvalidJobStatus
	}

	picked := make([]string, 0, len(req.ProfessionalIDs))
	seen := make(map[string]bool, len(req.ProfessionalIDs))
	for _, id := range req.ProfessionalIDs {
		if seen[id] {
			continue
		}
		if !job.IsSuggested(id) {
			return nil, apperrors.ValidationError(map[string]string{
				"professionalIds": "Professional " + id + " is not in the suggested list",
			})
		}
		seen[id] = true
		picked = append(picked, id)
	}

	job.ShortlistedProfessionals = picked
	if job.Status == models.JobStatusOpen {
		job.Status = models.JobStatusMatched
	}

	if err := s.jobRepo.Update(tx, job); err != nil {
		return nil, storeError(err, "job")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DependencyFailure(err, "job")
	}

	out := dto.NewJobDTO(job)
	return &out, nil
}

func (s *JobServiceImpl) RefreshSuggestions(db *gorm.DB, principal *auth.Principal, jobID string) (*dto.JobDTO, error) {
	tx, err := begin(db, "job")
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	job, err := s.findOwnedJob(tx, principal, jobID)
	if err != nil {
		return nil, err
	}
	if !job.Status.IsEditable() {
		return nil, apperrors.ErrJobNotEditable
	}

	if err := s.recomputeSuggestions(tx, job); err != nil {
		return nil, err
	}
	if err := s.jobRepo.Update(tx, job); err != nil {
		return nil, storeError(err, "job")
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.DependencyFailure(err, "job")
	}

	out := dto.NewJobDTO(job)
	return &out, nil
}

// ListApplicableJobs returns Open jobs the professional qualifies for. Only
// Verified professionals see any.
func (s *JobServiceImpl) ListApplicableJobs(db *gorm.DB, professionalID string) ([]dto.JobDTO, error) {
	profile, err := s.professionalRepo.FindByUserID(db, professionalID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfessionalNotFound) {
			return nil, apperrors.ErrProfessionalNotFound
		}
		return nil, apperrors.DependencyFailure(err, "job")
	}
	if !profile.IsVerified() {
		return nil, apperrors.ErrProfessionalNotVerified
	}

	open, err := s.jobRepo.FindByStatus(db, models.JobStatusOpen)
	if err != nil {
		return nil, apperrors.DependencyFailure(err, "job")
	}

	applicable := make([]models.Job, 0, len(open))
	for i := range open {
		if algorithms.IsApplicable(profile, &open[i]) {
			applicable = append(applicable, open[i])
		}
	}
	return dto.NewJobDTOs(applicable), nil
}

func (s *JobServiceImpl) ListFinalisedJobs(db *gorm.DB, professionalID string) ([]dto.JobDTO, error) {
	jobs, err := s.jobRepo.FindFinalisedForProfessional(db, professionalID)
	if err != nil {
		return nil, apperrors.DependencyFailure(err, "job")
	}
	return dto.NewJobDTOs(jobs), nil
}

func (s *JobServiceImpl) recomputeSuggestions(db *gorm.DB, job *models.Job) error {
	verified, err := s.professionalRepo.FindVerified(db)
	if err != nil {
		return apperrors.DependencyFailure(err, "job")
	}
	job.SetSuggestions(algorithms.SuggestProfessionals(job, verified))
	return nil
}

// refreshLiveSuggestions recomputes the stored suggestions of every Open and
// Matched job against the current verified profiles and saves the jobs whose
// lists changed. It returns the number of jobs saved.
func refreshLiveSuggestions(db *gorm.DB, jobRepo repositories.JobRepository, professionalRepo repositories.ProfessionalRepository) (int, error) {
	verified, err := professionalRepo.FindVerified(db)
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, status := range []models.JobStatus{models.JobStatusOpen, models.JobStatusMatched} {
		jobs, err := jobRepo.FindByStatus(db, status)
		if err != nil {
			return updated, err
		}
		for i := range jobs {
			job := &jobs[i]
			if !job.SetSuggestions(algorithms.SuggestProfessionals(job, verified)) {
				continue
			}
			if err := jobRepo.Update(db, job); err != nil {
				return updated, err
			}
			updated++
		}
	}
	return updated, nil
}

func (s *JobServiceImpl) findJob(db *gorm.DB, jobID string) (*models.Job, error) {
	job, err := s.jobRepo.FindByID(db, jobID)
	if err != nil {
		if errors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.DependencyFailure(err, "job")
	}
	return job, nil
}

// findOwnedJob loads the job and requires the caller to own it. Admin
// rights do not extend to editing someone else's job.
func (s *JobServiceImpl) findOwnedJob(db *gorm.DB, principal *auth.Principal, jobID string) (*models.Job, error) {
	job, err := s.findJob(db, jobID)
	if err != nil {
		return nil, err
	}
	if job.CustomerID != principal.UserID {
		return nil, apperrors.ErrJobAccessDenied
	}
	return job, nil
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
