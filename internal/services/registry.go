package services

import (
	"time"

	"propmatch_backend/internal/auth"
	"propmatch_backend/internal/cache"
	"propmatch_backend/internal/email"
	"propmatch_backend/internal/repositories"
)

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService         AuthService
	JobService          JobService
	MatchingService     MatchingService
	AdminService        AdminService
	ProfessionalService ProfessionalService
	LocationService     LocationService
	NotificationService NotificationService
}

// Dependencies are the shared resources services are built from.
type Dependencies struct {
	Tokens   *auth.TokenManager
	Mailer   email.Provider
	Cache    cache.Cache
	CacheTTL time.Duration
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	professionalRepo := repositories.NewProfessionalRepository()
	jobRepo := repositories.NewJobRepository()
	matchRepo := repositories.NewMatchRepository()
	locationRepo := repositories.NewLocationRepository()

	notifier := NewNotificationService(deps.Mailer)

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo, professionalRepo, deps.Tokens),
		JobService:          NewJobService(jobRepo, userRepo, professionalRepo),
		MatchingService:     NewMatchingService(jobRepo, matchRepo, professionalRepo, notifier),
		AdminService:        NewAdminService(userRepo, professionalRepo, jobRepo, notifier, NewExportService()),
		ProfessionalService: NewProfessionalService(professionalRepo, jobRepo),
		LocationService:     NewLocationService(locationRepo, deps.Cache, deps.CacheTTL),
		NotificationService: notifier,
	}
}
