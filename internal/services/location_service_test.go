package services

import (
	"context"
	"testing"
	"time"

	"propmatch_backend/internal/cache"
	"propmatch_backend/internal/database"
	"propmatch_backend/internal/repositories"
	"propmatch_backend/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationService_CachedListsAndSearch(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewLocationRepository()
	_, err := database.SeedSuburbs(context.Background(), db, repo, "")
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	c, err := cache.NewRedisCache(context.Background(), cache.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	defer c.Close()

	svc := NewLocationService(repo, c, time.Hour)

	regions, err := svc.Regions(db)
	require.NoError(t, err)
	assert.Contains(t, regions, "Inner West")
	assert.IsNonDecreasing(t, regions)
	assert.True(t, mr.Exists(regionsCacheKey))

	again, err := svc.Regions(db)
	require.NoError(t, err)
	assert.Equal(t, regions, again)

	states, err := svc.States(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"ACT", "NSW", "NT", "QLD", "SA", "TAS", "VIC", "WA"}, states)
	assert.True(t, mr.Exists(statesCacheKey))

	byName, err := svc.Search(db, "new")
	require.NoError(t, err)
	require.Len(t, byName, 3)
	assert.Equal(t, "New Farm", byName[0].Locality)
	assert.Equal(t, "Newcastle", byName[1].Locality)
	assert.Equal(t, "Newtown", byName[2].Locality)

	byPostcode, err := svc.Search(db, "2042")
	require.NoError(t, err)
	require.Len(t, byPostcode, 1)
	assert.Equal(t, "Newtown", byPostcode[0].Locality)

	none, err := svc.Search(db, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)

	trailing, err := svc.Search(db, `new\`)
	require.NoError(t, err)
	assert.Empty(t, trailing)
	assert.NotNil(t, none)
}

func TestLocationService_WithoutCache(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := NewLocationService(repositories.NewLocationRepository(), nil, time.Minute)

	regions, err := svc.Regions(db)
	require.NoError(t, err)
	assert.NotNil(t, regions)
	assert.Empty(t, regions)
}

func TestLocationService_SearchLimit(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewLocationRepository()
	_, err := database.SeedSuburbs(context.Background(), db, repo, "")
	require.NoError(t, err)

	svc := NewLocationService(repo, cache.Noop{}, time.Minute)
	results, err := svc.Search(db, "2")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), SuburbSearchLimit)
	for _, s := range results {
		assert.Equal(t, "2", s.Postcode[:1])
	}
}
