package algorithms

import (
	"sort"
	"strings"

	"propmatch_backend/internal/models"
)

// Dimension names used in mismatch reasons.
const (
	DimensionRegions          = "regions"
	DimensionStates           = "states"
	DimensionSpecialisations  = "specialisations"
	DimensionProfessionalType = "professionalType"
)

// IsApplicable reports whether job is applicable to the professional:
// every job dimension that is non-empty must share at least one value with
// the profile, and the profile's type must be one the customer selected.
func IsApplicable(profile *models.ProfessionalProfile, job *models.Job) bool {
	return len(Mismatches(profile, job)) == 0
}

// Mismatches lists the dimensions that keep job from being applicable.
// An empty result means the job is applicable.
func Mismatches(profile *models.ProfessionalProfile, job *models.Job) []string {
	var failed []string

	if !overlaps(job.Regions, profile.Regions) {
		failed = append(failed, DimensionRegions)
	}
	if !overlaps(job.States, profile.States) {
		failed = append(failed, DimensionStates)
	}
	if !overlaps(job.Specialisations, profile.Specialisations) {
		failed = append(failed, DimensionSpecialisations)
	}
	if profile.ProfessionalType == "" || !job.HasSelectedType(profile.ProfessionalType) {
		failed = append(failed, DimensionProfessionalType)
	}

	return failed
}

// SuggestProfessionals returns the ids of verified profiles for which job is
// applicable, sorted ascending so the result is deterministic.
func SuggestProfessionals(job *models.Job, profiles []models.ProfessionalProfile) []string {
	ids := make([]string, 0)
	for i := range profiles {
		p := &profiles[i]
		if !p.IsVerified() {
			continue
		}
		if IsApplicable(p, job) {
			ids = append(ids, p.UserID)
		}
	}
	sort.Strings(ids)
	return ids
}

// overlaps treats an empty required set as a wildcard.
// Values are compared trimmed and case-insensitively.
func overlaps(required, offered []string) bool {
	if len(normalise(required)) == 0 {
		return true
	}

	have := normalise(offered)
	for key := range normalise(required) {
		if have[key] {
			return true
		}
	}
	return false
}

func normalise(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		key := strings.ToLower(strings.TrimSpace(v))
		if key != "" {
			set[key] = true
		}
	}
	return set
}
