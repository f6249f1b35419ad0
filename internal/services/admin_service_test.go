package services

import (
	"bytes"
	"testing"

	"propmatch_backend/internal/email"
	"propmatch_backend/internal/models"
	"propmatch_backend/internal/testutil"
	"propmatch_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAdminService_VerificationDecisions(t *testing.T) {
	f := newFixture(t)
	svc := f.services.AdminService

	pending, _ := testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{Status: models.VerificationStatusUnverified})
	doomed, _ := testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{Status: models.VerificationStatusUnverified})

	resp, err := svc.VerifyProfessional(f.db, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, pending.ID, resp.ProfessionalID)
	assert.Equal(t, models.VerificationStatusVerified, resp.VerificationStatus)

	_, err = svc.RejectProfessional(f.db, pending.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDecided)

	resp, err = svc.RejectProfessional(f.db, doomed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationStatusRejected, resp.VerificationStatus)

	_, err = svc.VerifyProfessional(f.db, doomed.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyDecided)

	_, err = svc.VerifyProfessional(f.db, "missing")
	assert.ErrorIs(t, err, apperrors.ErrProfessionalNotFound)

	verified, err := svc.ListProfessionals(f.db, models.VerificationStatusVerified)
	require.NoError(t, err)
	require.Len(t, verified, 1)
	assert.Equal(t, pending.ID, verified[0].ProfessionalID)
	assert.NotNil(t, verified[0].VerifiedAt)
	assert.Equal(t, pending.Email, verified[0].Email)

	all, err := svc.ListProfessionals(f.db, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	f.drain(t)
	f.mailer.AssertCalled(t, "SendTemplate", mock.Anything, []string{pending.Email}, mock.Anything, email.TemplateProfessionalVerified, mock.Anything)
	f.mailer.AssertCalled(t, "SendTemplate", mock.Anything, []string{doomed.Email}, mock.Anything, email.TemplateProfessionalRejected, mock.Anything)
	f.mailer.AssertNumberOfCalls(t, "SendTemplate", 2)
}

func TestAdminService_Listings(t *testing.T) {
	f := newFixture(t)
	svc := f.services.AdminService

	customer := testutil.CreateCustomer(t, f.db)
	testutil.CreateAdmin(t, f.db)
	testutil.CreateProfessional(t, f.db, testutil.ProfessionalOptions{})
	testutil.CreateJob(t, f.db, customer.ID, nil)
	testutil.CreateJob(t, f.db, customer.ID, func(j *models.Job) { j.Status = models.JobStatusClosed })

	customers, err := svc.ListCustomers(f.db)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, customer.ID, customers[0].ID)

	jobs, err := svc.ListJobs(f.db, "")
	require.NoError(t, err)
	assert.Len(t, jobs, 2)

	closed, err := svc.ListJobs(f.db, models.JobStatusClosed)
	require.NoError(t, err)
	assert.Len(t, closed, 1)
}

func TestAdminService_ExportJobs(t *testing.T) {
	f := newFixture(t)
	customer := testutil.CreateCustomer(t, f.db)
	job := testutil.CreateJob(t, f.db, customer.ID, func(j *models.Job) {
		j.Regions = []string{"Inner West", "Hills District"}
		j.BudgetMin = testutil.Ptr(400000.0)
	})

	data, err := f.services.AdminService.ExportJobs(f.db)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(jobsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, JobExportHeader, rows[0])
	assert.Equal(t, job.ID, rows[1][0])
	assert.Equal(t, "Inner West, Hills District", rows[1][8])
	assert.Equal(t, "400000", rows[1][6])
	assert.Equal(t, string(models.JobStatusOpen), rows[1][14])
}
