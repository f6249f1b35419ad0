package database_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"propmatch_backend/internal/database"
	"propmatch_backend/internal/models"
	"propmatch_backend/internal/repositories"
	"propmatch_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSuburbs_SkipsBadRows(t *testing.T) {
	input := strings.Join([]string{
		"id,postcode,locality,state,region,latitude,longitude",
		"1,2000,Sydney,nsw,Sydney City,-33.86,151.20",
		"2,2000,Broken,NSW,Sydney City,north,151.20",
		"3,0800,Darwin,NTX,Top End,-12.46,130.84",
		"1,2000,Sydney Again,NSW,Sydney City,-33.86,151.20",
		"4,3000",
		"",
		"5,3000,Melbourne,VIC,Melbourne City,-37.81,144.96",
	}, "\n")

	suburbs, skipped, err := database.ParseSuburbs(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, suburbs, 2)
	assert.Equal(t, "Sydney", suburbs[0].Locality)
	assert.Equal(t, models.AUState("NSW"), suburbs[0].State)
	assert.Equal(t, "Melbourne", suburbs[1].Locality)

	require.Len(t, skipped, 4)
	assert.Contains(t, skipped[0].Reason, "latitude")
	assert.Contains(t, skipped[1].Reason, "state code")
	assert.Contains(t, skipped[2].Reason, "duplicate id")
	assert.Contains(t, skipped[3].Reason, "expected 7 fields")
}

func TestParseSuburbs_HeaderOptional(t *testing.T) {
	suburbs, skipped, err := database.ParseSuburbs(strings.NewReader("7,4000,Brisbane,QLD,Brisbane City,-27.47,153.02\n"))
	require.NoError(t, err)
	assert.Empty(t, skipped)
	require.Len(t, suburbs, 1)
	assert.Equal(t, int64(7), suburbs[0].ID)
}

func TestSeedSuburbs_Idempotent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repositories.NewLocationRepository()
	ctx := context.Background()

	first, err := database.SeedSuburbs(ctx, db, repo, "")
	require.NoError(t, err)
	assert.False(t, first.AlreadySeeded)
	assert.Positive(t, first.Inserted)

	count, err := repo.Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(first.Inserted), count)

	second, err := database.SeedSuburbs(ctx, db, repo, "")
	require.NoError(t, err)
	assert.True(t, second.AlreadySeeded)

	again, err := repo.Count(db)
	require.NoError(t, err)
	assert.Equal(t, count, again)
}

func TestSeedSuburbs_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "suburbs.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"id,postcode,locality,state,region,latitude,longitude\n"+
			"10,6000,Perth,WA,Perth City,-31.95,115.86\n"+
			"11,6000,Bad,XX,Perth City,-31.95,115.86\n"), 0o600))

	db := testutil.NewTestDB(t)
	res, err := database.SeedSuburbs(context.Background(), db, repositories.NewLocationRepository(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Inserted)
	assert.Equal(t, 1, res.Skipped)

	_, err = database.SeedSuburbs(context.Background(), testutil.NewTestDB(t), repositories.NewLocationRepository(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
