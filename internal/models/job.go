package models

import (
	"time"

	"gorm.io/datatypes"
)

type Job struct {
	BaseModel
	CustomerID               string  `gorm:"type:varchar(36);not null;index"`
	JobType                  JobType `gorm:"type:varchar(8);not null"`
	Title                    string  `gorm:"not null"`
	PurchaseType             string
	PropertyType             string
	BudgetMin                *float64
	BudgetMax                *float64
	Regions                  datatypes.JSONSlice[string]
	States                   datatypes.JSONSlice[string]
	Specialisations          datatypes.JSONSlice[string]
	SelectedProfessionals    datatypes.JSONSlice[string]
	SuggestedProfessionals   datatypes.JSONSlice[string]
	ShortlistedProfessionals datatypes.JSONSlice[string]
	Status                   JobStatus `gorm:"type:varchar(16);not null;index"`

	// Relations
	Detail  *JobDetail `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
	Matches []JobMatch `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
}

// JobDetail holds the extended attributes of a job, 1:1 with Job.
type JobDetail struct {
	JobID             string `gorm:"type:varchar(36);primaryKey"`
	JourneyProgress   string
	ContactEmail      string
	ContactPhone      string
	AdditionalDetails string `gorm:"type:text"`
}

// JobMatch records a finalised (job, professional) pair.
type JobMatch struct {
	BaseModel
	JobID            string           `gorm:"type:varchar(36);not null;uniqueIndex:idx_job_matches_pair"`
	ProfessionalID   string           `gorm:"type:varchar(36);not null;uniqueIndex:idx_job_matches_pair;index"`
	ProfessionalType ProfessionalType `gorm:"type:varchar(32);not null"`
	AssignedAt       time.Time        `gorm:"not null"`
}

// ValidateBudget checks the budget range invariant.
func ValidateBudget(min, max *float64) map[string]string {
	errs := map[string]string{}
	if min != nil && *min < 0 {
		errs["budgetMin"] = "Must be greater than or equal to 0"
	}
	if max != nil && *max < 0 {
		errs["budgetMax"] = "Must be greater than or equal to 0"
	}
	if min != nil && max != nil && *min > *max {
		errs["budgetMax"] = "Must be greater than or equal to budgetMin"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// HasSelectedType reports whether t is one of the job's selected professional types.
func (j *Job) HasSelectedType(t ProfessionalType) bool {
	for _, s := range j.SelectedProfessionals {
		if parsed, ok := ParseProfessionalType(s); ok && parsed == t {
			return true
		}
	}
	return false
}

func (j *Job) IsSuggested(professionalID string) bool {
	for _, id := range j.SuggestedProfessionals {
		if id == professionalID {
			return true
		}
	}
	return false
}

// SetSuggestions replaces the suggested list and drops shortlisted ids that
// are no longer suggested. Status is left alone: a Matched job whose
// shortlist empties stays Matched, since status never moves back.
// It reports whether either list changed.
func (j *Job) SetSuggestions(ids []string) bool {
	changed := !sameStrings(j.SuggestedProfessionals, ids)
	j.SuggestedProfessionals = ids

	kept := make([]string, 0, len(j.ShortlistedProfessionals))
	for _, id := range j.ShortlistedProfessionals {
		if j.IsSuggested(id) {
			kept = append(kept, id)
		}
	}
	if len(kept) != len(j.ShortlistedProfessionals) {
		j.ShortlistedProfessionals = kept
		changed = true
	}
	return changed
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
