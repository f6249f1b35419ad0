package services

import (
	"testing"

	"propmatch_backend/internal/models"
	"propmatch_backend/internal/repositories"
	"propmatch_backend/internal/services/dto"
	"propmatch_backend/internal/testutil"
	"propmatch_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJobRequest() *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		JobType:               "Buy",
		Title:                 "Apartment near the harbour",
		PurchaseType:          "Investment",
		PropertyType:          "Apartment",
		BudgetMin:             testutil.Ptr(500000.0),
		BudgetMax:             testutil.Ptr(750000.0),
		ContactEmail:          "buyer@example.com",
		ContactPhone:          "0400111222",
		Regions:               []string{"Inner West"},
		States:                []string{"nsw"},
		SelectedProfessionals: []string{"broker", "Conveyancer"},
	}
}

func TestJobService_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	svc := f.services.JobService
	customer := testutil.CreateCustomer(t, f.db)

	match, _ := testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{
		Type:    models.ProfessionalTypeBroker,
		Regions: []string{"inner west"},
		States:  []string{"NSW"},
	})
	testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{
		Type:    models.ProfessionalTypeBroker,
		Regions: []string{"Eastern Suburbs"},
		States:  []string{"NSW"},
	})
	testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{
		Type:   models.ProfessionalTypeConveyancer,
		Status: models.VerificationStatusUnverified,
	})

	created, err := svc.CreateJob(f.db, principalOf(customer), validJobRequest())
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusOpen, created.Status)
	assert.Equal(t, []string{"NSW"}, created.States)
	assert.Equal(t, []string{"Broker", "Conveyancer"}, created.SelectedProfessionals)
	assert.Equal(t, []string{match.ID}, created.SuggestedProfessionals)

	got, err := svc.GetJob(f.db, principalOf(customer), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.ContactPhone, got.ContactPhone)
	assert.Equal(t, *created.BudgetMax, *got.BudgetMax)
	assert.Equal(t, created.SuggestedProfessionals, got.SuggestedProfessionals)
	assert.Empty(t, got.FinalisedProfessionals)

	admin := testutil.CreateAdmin(t, f.db)
	_, err = svc.GetJob(f.db, principalOf(admin), created.ID)
	assert.NoError(t, err)

	other := testutil.CreateCustomer(t, f.db)
	_, err = svc.GetJob(f.db, principalOf(other), created.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobAccessDenied)

	_, err = svc.GetJob(f.db, principalOf(customer), "missing")
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
}

func TestJobService_CreateRejectsBadBudget(t *testing.T) {
	f := newFixture(t)
	customer := testutil.CreateCustomer(t, f.db)

	req := validJobRequest()
	req.BudgetMin = testutil.Ptr(900000.0)

	_, err := f.services.JobService.CreateJob(f.db, principalOf(customer), req)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	assert.Contains(t, appErr.Details, "budgetMax")

	stored, err := repositories.NewJobRepository().FindByCustomer(f.db, customer.ID)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestJobService_ListJobsForCustomer(t *testing.T) {
	f := newFixture(t)
	svc := f.services.JobService
	customer := testutil.CreateCustomer(t, f.db)

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		req := validJobRequest()
		req.Title = title
		job, err := svc.CreateJob(f.db, principalOf(customer), req)
		require.NoError(t, err)
		ids = append(ids, job.ID)
	}

	jobs, err := svc.ListJobsForCustomer(f.db, principalOf(customer), customer.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	for i, j := range jobs {
		assert.Equal(t, ids[i], j.ID)
	}

	other := testutil.CreateCustomer(t, f.db)
	_, err = svc.ListJobsForCustomer(f.db, principalOf(other), customer.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobAccessDenied)

	admin := testutil.CreateAdmin(t, f.db)
	jobs, err = svc.ListJobsForCustomer(f.db, principalOf(admin), customer.ID)
	require.NoError(t, err)
	assert.Len(t, jobs, 3)

	_, err = svc.ListJobsForCustomer(f.db, principalOf(admin), "no-such-customer")
	assert.ErrorIs(t, err, apperrors.ErrCustomerNotFound)
}

func TestJobService_UpdateRecomputesOnlyForMatchingFields(t *testing.T) {
	f := newFixture(t)
	svc := f.services.JobService
	customer := testutil.CreateCustomer(t, f.db)

	created, err := svc.CreateJob(f.db, principalOf(customer), validJobRequest())
	require.NoError(t, err)
	assert.Empty(t, created.SuggestedProfessionals)

	// Verified after the job exists: only a matching-field change or a refresh picks it up.
	broker, _ := testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{
		Type:    models.ProfessionalTypeBroker,
		Regions: []string{"Inner West"},
		States:  []string{"NSW"},
	})

	err = svc.UpdateJob(f.db, principalOf(customer), created.ID, &dto.UpdateJobRequest{
		Title:        testutil.Ptr("Renamed"),
		ContactPhone: testutil.Ptr("0400999888"),
	})
	require.NoError(t, err)

	got, err := svc.GetJob(f.db, principalOf(customer), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	assert.Equal(t, "0400999888", got.ContactPhone)
	assert.Empty(t, got.SuggestedProfessionals)

	err = svc.UpdateJob(f.db, principalOf(customer), created.ID, &dto.UpdateJobRequest{
		PropertyType: testutil.Ptr("Townhouse"),
	})
	require.NoError(t, err)

	got, err = svc.GetJob(f.db, principalOf(customer), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{broker.ID}, got.SuggestedProfessionals)
	assert.Equal(t, "Renamed", got.Title)
}

func TestJobService_UpdateValidatesMergedBudget(t *testing.T) {
	f := newFixture(t)
	customer := testutil.CreateCustomer(t, f.db)
	created, err := f.services.JobService.CreateJob(f.db, principalOf(customer), validJobRequest())
	require.NoError(t, err)

	err = f.services.JobService.UpdateJob(f.db, principalOf(customer), created.ID, &dto.UpdateJobRequest{
		BudgetMax: testutil.Ptr(100.0),
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	got, err := f.services.JobService.GetJob(f.db, principalOf(customer), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 750000.0, *got.BudgetMax)
}

func TestJobService_UpdateRejectsEmptySelection(t *testing.T) {
	f := newFixture(t)
	customer := testutil.CreateCustomer(t, f.db)
	created, err := f.services.JobService.CreateJob(f.db, principalOf(customer), validJobRequest())
	require.NoError(t, err)

	err = f.services.JobService.UpdateJob(f.db, principalOf(customer), created.ID, &dto.UpdateJobRequest{
		SelectedProfessionals: &[]string{},
	})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Details, "selectedProfessionals")

	got, err := f.services.JobService.GetJob(f.db, principalOf(customer), created.ID)
	require.NoError(t, err)
	assert.Len(t, got.SelectedProfessionals, 2)
}

func TestJobService_OwnershipAndStatusGuards(t *testing.T) {
	f := newFixture(t)
	svc := f.services.JobService
	customer := testutil.CreateCustomer(t, f.db)
	admin := testutil.CreateAdmin(t, f.db)

	job := testutil.CreateJob(t, f.db, customer.ID, nil)

	patch := &dto.UpdateJobRequest{Title: testutil.Ptr("x")}
	assert.ErrorIs(t, svc.UpdateJob(f.db, principalOf(admin), job.ID, patch), apperrors.ErrJobAccessDenied)
	assert.ErrorIs(t, svc.DeleteJob(f.db, principalOf(admin), job.ID), apperrors.ErrJobAccessDenied)
	assert.ErrorIs(t, svc.UpdateJob(f.db, principalOf(customer), "missing", patch), apperrors.ErrJobNotFound)

	for _, status := range []models.JobStatus{models.JobStatusFinalised, models.JobStatusClosed} {
		locked := testutil.CreateJob(t, f.db, customer.ID, func(j *models.Job) { j.Status = status })

		assert.ErrorIs(t, svc.UpdateJob(f.db, principalOf(customer), locked.ID, patch), apperrors.ErrJobNotEditable, status)
		assert.ErrorIs(t, svc.DeleteJob(f.db, principalOf(customer), locked.ID), apperrors.ErrJobNotEditable, status)
		_, err := svc.RefreshSuggestions(f.db, principalOf(customer), locked.ID)
		assert.ErrorIs(t, err, apperrors.ErrJobNotEditable, status)
	}
}

func TestJobService_Delete(t *testing.T) {
	f := newFixture(t)
	svc := f.services.JobService
	customer := testutil.CreateCustomer(t, f.db)
	job := testutil.CreateJob(t, f.db, customer.ID, nil)

	require.NoError(t, svc.DeleteJob(f.db, principalOf(customer), job.ID))

	_, err := svc.GetJob(f.db, principalOf(customer), job.ID)
	assert.ErrorIs(t, err, apperrors.ErrJobNotFound)

	var details int64
	require.NoError(t, f.db.Model(&models.JobDetail{}).Where("job_id = ?", job.ID).Count(&details).Error)
	assert.Zero(t, details)
}

func TestJobService_CloseJob(t *testing.T) {
	f := newFixture(t)
	svc := f.services.JobService
	customer := testutil.CreateCustomer(t, f.db)
	admin := testutil.CreateAdmin(t, f.db)

	open := testutil.CreateJob(t, f.db, customer.ID, nil)
	_, err := svc.CloseJob(f.db, principalOf(customer), open.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidJobStatus)

	finalised := testutil.CreateJob(t, f.db, customer.ID, func(j *models.Job) { j.Status = models.JobStatusFinalised })
	closed, err := svc.CloseJob(f.db, principalOf(admin), finalised.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusClosed, closed.Status)

	_, err = svc.CloseJob(f.db, principalOf(customer), finalised.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidJobStatus)
}

func TestJobService_ShortlistAndRefresh(t *testing.T) {
	f := newFixture(t)
	svc := f.services.JobService
	customer := testutil.CreateCustomer(t, f.db)

	job := testutil.CreateJob(t, f.db, customer.ID, nil)
	broker, _ := testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{})

	_, err := svc.Shortlist(f.db, principalOf(customer), job.ID, &dto.ShortlistRequest{ProfessionalIDs: []string{broker.ID}})
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	refreshed, err := svc.RefreshSuggestions(f.db, principalOf(customer), job.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{broker.ID}, refreshed.SuggestedProfessionals)

	shortlisted, err := svc.Shortlist(f.db, principalOf(customer), job.ID, &dto.ShortlistRequest{
		ProfessionalIDs: []string{broker.ID, broker.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusMatched, shortlisted.Status)
	assert.Equal(t, []string{broker.ID}, shortlisted.ShortlistedProfessionals)
}

func TestJobService_RecomputePrunesShortlist(t *testing.T) {
	f := newFixture(t)
	svc := f.services.JobService
	customer := testutil.CreateCustomer(t, f.db)
	broker, _ := testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{
		Regions: []string{"Inner West"},
		States:  []string{"NSW"},
	})

	created, err := svc.CreateJob(f.db, principalOf(customer), validJobRequest())
	require.NoError(t, err)
	require.Equal(t, []string{broker.ID}, created.SuggestedProfessionals)

	_, err = svc.Shortlist(f.db, principalOf(customer), created.ID, &dto.ShortlistRequest{ProfessionalIDs: []string{broker.ID}})
	require.NoError(t, err)

	err = svc.UpdateJob(f.db, principalOf(customer), created.ID, &dto.UpdateJobRequest{
		Regions: &[]string{"Far North"},
	})
	require.NoError(t, err)

	got, err := svc.GetJob(f.db, principalOf(customer), created.ID)
	require.NoError(t, err)
	assert.Empty(t, got.SuggestedProfessionals)
	assert.Empty(t, got.ShortlistedProfessionals)
	// status only moves forward, so the job keeps Matched with an empty shortlist
	assert.Equal(t, models.JobStatusMatched, got.Status)

	err = svc.UpdateJob(f.db, principalOf(customer), created.ID, &dto.UpdateJobRequest{
		Regions: &[]string{"Inner West"},
	})
	require.NoError(t, err)

	refreshed, err := svc.RefreshSuggestions(f.db, principalOf(customer), created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{broker.ID}, refreshed.SuggestedProfessionals)
	assert.Empty(t, refreshed.ShortlistedProfessionals)

	again, err := svc.Shortlist(f.db, principalOf(customer), created.ID, &dto.ShortlistRequest{ProfessionalIDs: []string{broker.ID}})
	require.NoError(t, err)
	assert.Equal(t, []string{broker.ID}, again.ShortlistedProfessionals)
}

func TestJobService_ListApplicableJobs(t *testing.T) {
	f := newFixture(t)
	svc := f.services.JobService
	customer := testutil.CreateCustomer(t, f.db)

	broker, _ := testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{
		Type:   models.ProfessionalTypeBroker,
		States: []string{"VIC"},
	})
	pending, _ := testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{
		Status: models.VerificationStatusUnverified,
	})

	inVic := testutil.CreateJob(t, f.db, customer.ID, func(j *models.Job) { j.States = []string{"vic"} })
	testutil.CreateJob(t, f.db, customer.ID, func(j *models.Job) { j.States = []string{"QLD"} })
	testutil.CreateJob(t, f.db, customer.ID, func(j *models.Job) {
		j.SelectedProfessionals = []string{string(models.ProfessionalTypeAdvocate)}
	})
	testutil.CreateJob(t, f.db, customer.ID, func(j *models.Job) { j.Status = models.JobStatusMatched })
	anywhere := testutil.CreateJob(t, f.db, customer.ID, nil)

	jobs, err := svc.ListApplicableJobs(f.db, broker.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, inVic.ID, jobs[0].ID)
	assert.Equal(t, anywhere.ID, jobs[1].ID)

	_, err = svc.ListApplicableJobs(f.db, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrProfessionalNotVerified)

	_, err = svc.ListApplicableJobs(f.db, customer.ID)
	assert.ErrorIs(t, err, apperrors.ErrProfessionalNotFound)
}
