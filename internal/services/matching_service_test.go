package services

import (
	"testing"

	"propmatch_backend/internal/email"
	"propmatch_backend/internal/models"
	"propmatch_backend/internal/services/dto"
	"propmatch_backend/internal/testutil"
	"propmatch_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMatchingService_FinalizeIsIdempotent(t *testing.T) {
	f := newFixture(t)
	svc := f.services.MatchingService
	customer := testutil.CreateCustomer(t, f.db)
	job := testutil.CreateJob(t, f.db, customer.ID, nil)
	broker, _ := testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{})

	req := &dto.FinaliseRequest{JobID: job.ID, ProfessionalID: broker.ID}

	first, err := svc.FinalizeMatch(f.db, principalOf(customer), req)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFinalised, first.Status)
	require.Len(t, first.FinalisedProfessionals, 1)
	assert.Equal(t, broker.ID, first.FinalisedProfessionals[0].ProfessionalID)

	second, err := svc.FinalizeMatch(f.db, principalOf(customer), req)
	require.NoError(t, err)
	assert.Equal(t, first.FinalisedProfessionals, second.FinalisedProfessionals)
	assert.Equal(t, models.JobStatusFinalised, second.Status)

	var rows int64
	require.NoError(t, f.db.Model(&models.JobMatch{}).Where("job_id = ?", job.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	f.drain(t)
	f.mailer.AssertNumberOfCalls(t, "SendTemplate", 1)
	f.mailer.AssertCalled(t, "SendTemplate", mock.Anything, []string{broker.Email}, mock.Anything, email.TemplateJobFinalised, mock.Anything)
}

func TestMatchingService_OnePerProfessionalType(t *testing.T) {
	f := newFixture(t)
	svc := f.services.MatchingService
	customer := testutil.CreateCustomer(t, f.db)
	job := testutil.CreateJob(t, f.db, customer.ID, func(j *models.Job) {
		j.SelectedProfessionals = []string{"Broker", "Conveyancer"}
	})

	brokerA, _ := testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{Type: models.ProfessionalTypeBroker})
	brokerB, _ := testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{Type: models.ProfessionalTypeBroker})
	conveyancer, _ := testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{Type: models.ProfessionalTypeConveyancer})

	_, err := svc.FinalizeMatch(f.db, principalOf(customer), &dto.FinaliseRequest{JobID: job.ID, ProfessionalID: brokerA.ID})
	require.NoError(t, err)

	_, err = svc.FinalizeMatch(f.db, principalOf(customer), &dto.FinaliseRequest{JobID: job.ID, ProfessionalID: brokerB.ID})
	assert.ErrorIs(t, err, apperrors.ErrProfessionalTypeTaken)

	final, err := svc.FinalizeMatch(f.db, principalOf(customer), &dto.FinaliseRequest{JobID: job.ID, ProfessionalID: conveyancer.ID})
	require.NoError(t, err)
	assert.Len(t, final.FinalisedProfessionals, 2)

	finalised, err := f.services.JobService.ListFinalisedJobs(f.db, conveyancer.ID)
	require.NoError(t, err)
	require.Len(t, finalised, 1)
	assert.Equal(t, job.ID, finalised[0].ID)

	none, err := f.services.JobService.ListFinalisedJobs(f.db, brokerB.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMatchingService_Rejections(t *testing.T) {
	f := newFixture(t)
	svc := f.services.MatchingService
	customer := testutil.CreateCustomer(t, f.db)
	other := testutil.CreateCustomer(t, f.db)
	job := testutil.CreateJob(t, f.db, customer.ID, nil)

	verified, _ := testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{})
	unverified, _ := testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{Status: models.VerificationStatusUnverified})
	advocate, _ := testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{Type: models.ProfessionalTypeAdvocate})
	closed := testutil.CreateJob(t, f.db, customer.ID, func(j *models.Job) { j.Status = models.JobStatusClosed })

	cases := []struct {
		name   string
		caller *models.User
		req    dto.FinaliseRequest
		want   error
	}{
		{"unknown job", customer, dto.FinaliseRequest{JobID: "missing", ProfessionalID: verified.ID}, apperrors.ErrJobNotFound},
		{"not the owner", other, dto.FinaliseRequest{JobID: job.ID, ProfessionalID: verified.ID}, apperrors.ErrJobAccessDenied},
		{"closed job", customer, dto.FinaliseRequest{JobID: closed.ID, ProfessionalID: verified.ID}, apperrors.ErrInvalidJobStatus},
		{"unknown professional", customer, dto.FinaliseRequest{JobID: job.ID, ProfessionalID: "missing"}, apperrors.ErrProfessionalNotFound},
		{"unverified", customer, dto.FinaliseRequest{JobID: job.ID, ProfessionalID: unverified.ID}, apperrors.ErrProfessionalNotEligible},
		{"type not selected", customer, dto.FinaliseRequest{JobID: job.ID, ProfessionalID: advocate.ID}, apperrors.ErrProfessionalNotEligible},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.FinalizeMatch(f.db, principalOf(tc.caller), &tc.req)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	f.drain(t)
	f.mailer.AssertNotCalled(t, "SendTemplate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
