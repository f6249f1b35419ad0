package services

import (
	"time"

	"propmatch_backend/internal/cache"
	"propmatch_backend/internal/repositories"
	"propmatch_backend/internal/services/dto"
	"propmatch_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	SuburbSearchLimit = 20

	regionsCacheKey = "location:regions"
	statesCacheKey  = "location:states"
)

type LocationService interface {
	Regions(db *gorm.DB) ([]string, error)
	States(db *gorm.DB) ([]string, error)
	Search(db *gorm.DB, query string) ([]dto.SuburbDTO, error)
}

// LocationServiceImpl serves the suburb table. The region and state lists
// never change after seeding so they go through the read-through cache.
type LocationServiceImpl struct {
	locationRepo repositories.LocationRepository
	cache        cache.Cache
	ttl          time.Duration
}

func NewLocationService(locationRepo repositories.LocationRepository, c cache.Cache, ttl time.Duration) LocationService {
	if c == nil {
		c = cache.Noop{}
	}
	return &LocationServiceImpl{
		locationRepo: locationRepo,
		cache:        c,
		ttl:          ttl,
	}
}

func (s *LocationServiceImpl) Regions(db *gorm.DB) ([]string, error) {
	regions, err := cache.GetOrLoad(db.Statement.Context, s.cache, regionsCacheKey, s.ttl, func() ([]string, error) {
		return s.locationRepo.DistinctRegions(db)
	})
	if err != nil {
		return nil, apperrors.DependencyFailure(err, "location")
	}
	return nonNilStrings(regions), nil
}

func (s *LocationServiceImpl) States(db *gorm.DB) ([]string, error) {
	states, err := cache.GetOrLoad(db.Statement.Context, s.cache, statesCacheKey, s.ttl, func() ([]string, error) {
		return s.locationRepo.DistinctStates(db)
	})
	if err != nil {
		return nil, apperrors.DependencyFailure(err, "location")
	}
	return nonNilStrings(states), nil
}

// Search matches a postcode prefix for numeric queries, otherwise a locality prefix.
func (s *LocationServiceImpl) Search(db *gorm.DB, query string) ([]dto.SuburbDTO, error) {
	suburbs, err := s.locationRepo.Search(db, query, SuburbSearchLimit)
	if err != nil {
		return nil, apperrors.DependencyFailure(err, "location")
	}
	return dto.NewSuburbDTOs(suburbs), nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
