package database

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"propmatch_backend/internal/logger"
	"propmatch_backend/internal/models"
	"propmatch_backend/internal/repositories"

	"gorm.io/gorm"
)

//go:embed data/suburbs.csv
var defaultSuburbsCSV []byte

const suburbBatchSize = 500

// suburbColumns is the fixed column order of the reference file.
var suburbColumns = []string{"id", "postcode", "locality", "state", "region", "latitude", "longitude"}

type SeedResult struct {
	Inserted      int
	Skipped       int
	AlreadySeeded bool
}

// SkippedRow explains why a row of the reference file was not loaded.
type SkippedRow struct {
	Line   int
	Reason string
}

// OpenSuburbsSource returns the file at path, or the embedded default file when path is empty.
func OpenSuburbsSource(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(bytes.NewReader(defaultSuburbsCSV)), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open suburbs file: %w", err)
	}
	return f, nil
}

// ParseSuburbs reads the reference file. The header row is optional.
// Malformed rows, unknown state codes and repeated ids are skipped, not fatal.
func ParseSuburbs(r io.Reader) ([]models.Suburb, []SkippedRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		suburbs []models.Suburb
		skipped []SkippedRow
		seen    = map[int64]bool{}
		line    = 0
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped = append(skipped, SkippedRow{Line: line, Reason: parseErr.Err.Error()})
				continue
			}
			return nil, nil, fmt.Errorf("read suburbs file: %w", err)
		}

		if line == 1 && isHeader(record) {
			continue
		}
		if isBlank(record) {
			continue
		}

		suburb, reason := parseSuburbRecord(record)
		if reason == "" && seen[suburb.ID] {
			reason = fmt.Sprintf("duplicate id %d", suburb.ID)
		}
		if reason != "" {
			skipped = append(skipped, SkippedRow{Line: line, Reason: reason})
			continue
		}

		seen[suburb.ID] = true
		suburbs = append(suburbs, suburb)
	}

	return suburbs, skipped, nil
}

func parseSuburbRecord(record []string) (models.Suburb, string) {
	if len(record) != len(suburbColumns) {
		return models.Suburb{}, fmt.Sprintf("expected %d fields, got %d", len(suburbColumns), len(record))
	}
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	id, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return models.Suburb{}, fmt.Sprintf("invalid id %q", record[0])
	}
	if record[1] == "" || record[2] == "" {
		return models.Suburb{}, "postcode and locality are required"
	}
	state, ok := models.ParseAUState(record[3])
	if !ok {
		return models.Suburb{}, fmt.Sprintf("unknown state code %q", record[3])
	}
	lat, err := strconv.ParseFloat(record[5], 64)
	if err != nil {
		return models.Suburb{}, fmt.Sprintf("invalid latitude %q", record[5])
	}
	lng, err := strconv.ParseFloat(record[6], 64)
	if err != nil {
		return models.Suburb{}, fmt.Sprintf("invalid longitude %q", record[6])
	}

	return models.Suburb{
		ID:        id,
		Postcode:  record[1],
		Locality:  record[2],
		State:     state,
		Region:    record[4],
		Latitude:  lat,
		Longitude: lng,
	}, ""
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(record[0], "\ufeff")), suburbColumns[0])
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// SeedSuburbs loads the reference file into an empty table in batches.
// A populated table is left untouched.
func SeedSuburbs(ctx context.Context, db *gorm.DB, repo repositories.LocationRepository, path string) (SeedResult, error) {
	db = db.WithContext(ctx)

	count, err := repo.Count(db)
	if err != nil {
		return SeedResult{}, fmt.Errorf("count suburbs: %w", err)
	}
	if count > 0 {
		logger.CtxInfo(ctx, "Suburbs already seeded, skipping", "rows", count)
		return SeedResult{AlreadySeeded: true}, nil
	}

	src, err := OpenSuburbsSource(path)
	if err != nil {
		return SeedResult{}, err
	}
	defer src.Close()

	suburbs, skipped, err := ParseSuburbs(src)
	if err != nil {
		return SeedResult{}, err
	}
	for _, s := range skipped {
		logger.CtxWarn(ctx, "Skipping suburb row", "line", s.Line, "reason", s.Reason)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return repo.CreateBatch(tx, suburbs, suburbBatchSize)
	})
	if err != nil {
		return SeedResult{}, fmt.Errorf("insert suburbs: %w", err)
	}

	logger.CtxInfo(ctx, "Suburbs seeded", "inserted", len(suburbs), "skipped", len(skipped))
	return SeedResult{Inserted: len(suburbs), Skipped: len(skipped)}, nil
}
