package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"propmatch_backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the raw password every fixture user is created with.
const DefaultPassword = "password123"

var seq atomic.Int64

// UniqueEmail returns a fresh address for the given prefix.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%d_%d@test.com", prefix, time.Now().UnixNano(), seq.Add(1))
}

// CreateUser stores a user with DefaultPassword. A cheap bcrypt cost keeps tests fast.
func CreateUser(t *testing.T, db *gorm.DB, email string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		FirstName:    "Test",
		LastName:     string(role),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func CreateCustomer(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateUser(t, db, UniqueEmail("customer"), models.UserRoleCustomer)
}

func CreateAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return CreateUser(t, db, UniqueEmail("admin"), models.UserRoleAdmin)
}

// ProfessionalOptions describes the profile created by CreateProfessional.
type ProfessionalOptions struct {
	Type            models.ProfessionalType
	Status          models.VerificationStatus
	Regions         []string
	States          []string
	Specialisations []string
}

// CreateProfessional stores a professional user with its profile. Zero
// options give a Verified Broker with no coverage restrictions.
func CreateProfessional(t *testing.T, db *gorm.DB, opts ProfessionalOptions) (*models.User, *models.ProfessionalProfile) {
	t.Helper()

	if opts.Type == "" {
		opts.Type = models.ProfessionalTypeBroker
	}
	if opts.Status == "" {
		opts.Status = models.VerificationStatusVerified
	}

	user := CreateUser(t, db, UniqueEmail("professional"), models.UserRoleProfessional)
	profile := &models.ProfessionalProfile{
		UserID:             user.ID,
		ProfessionalType:   opts.Type,
		Regions:            opts.Regions,
		States:             opts.States,
		Specialisations:    opts.Specialisations,
		FirstLogin:         true,
		VerificationStatus: opts.Status,
	}
	if opts.Status == models.VerificationStatusVerified {
		now := time.Now().UTC()
		profile.VerifiedAt = &now
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create professional profile: %v", err)
	}
	profile.User = user
	return user, profile
}

// CreateJob stores an Open job with a detail row. mutate may adjust it before insert.
func CreateJob(t *testing.T, db *gorm.DB, customerID string, mutate func(*models.Job)) *models.Job {
	t.Helper()

	job := &models.Job{
		CustomerID:            customerID,
		JobType:               models.JobTypeBuy,
		Title:                 "Family home in the inner west",
		PurchaseType:          "Owner occupier",
		PropertyType:          "House",
		SelectedProfessionals: []string{string(models.ProfessionalTypeBroker)},
		Status:                models.JobStatusOpen,
	}
	if mutate != nil {
		mutate(job)
	}

	detail := &models.JobDetail{
		ContactEmail: "buyer@example.com",
		ContactPhone: "0400000000",
	}
	if job.Detail != nil {
		detail = job.Detail
		job.Detail = nil
	}

	if err := db.Omit("Matches").Create(job).Error; err != nil {
		t.Fatalf("failed to create job: %v", err)
	}
	detail.JobID = job.ID
	if err := db.Create(detail).Error; err != nil {
		t.Fatalf("failed to create job detail: %v", err)
	}
	job.Detail = detail
	return job
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
