package models

import "gorm.io/datatypes"

// JobField names a patchable job attribute.
type JobField string

const (
	FieldJobType               JobField = "jobType"
	FieldTitle                 JobField = "title"
	FieldPurchaseType          JobField = "purchaseType"
	FieldPropertyType          JobField = "propertyType"
	FieldBudgetMin             JobField = "budgetMin"
	FieldBudgetMax             JobField = "budgetMax"
	FieldRegions               JobField = "regions"
	FieldStates                JobField = "states"
	FieldSpecialisations       JobField = "specialisations"
	FieldSelectedProfessionals JobField = "selectedProfessionals"
	FieldJourneyProgress       JobField = "journeyProgress"
	FieldContactEmail          JobField = "contactEmail"
	FieldContactPhone          JobField = "contactPhone"
	FieldAdditionalDetails     JobField = "additionalDetails"
)

// matchingFields invalidate the stored suggestion list when changed.
var matchingFields = map[JobField]bool{
	FieldRegions:               true,
	FieldStates:                true,
	FieldSpecialisations:       true,
	FieldSelectedProfessionals: true,
	FieldPropertyType:          true,
}

// JobPatch is a partial update. A nil field is left untouched.
type JobPatch struct {
	JobType               *JobType
	Title                 *string
	PurchaseType          *string
	PropertyType          *string
	BudgetMin             *float64
	BudgetMax             *float64
	Regions               *[]string
	States                *[]string
	Specialisations       *[]string
	SelectedProfessionals *[]string
	JourneyProgress       *string
	ContactEmail          *string
	ContactPhone          *string
	AdditionalDetails     *string
}

// ChangeSet is the set of fields whose value actually changed.
type ChangeSet map[JobField]bool

func (c ChangeSet) Has(f JobField) bool {
	return c[f]
}

func (c ChangeSet) IsEmpty() bool {
	return len(c) == 0
}

// TouchesMatching reports whether suggestions must be recomputed.
func (c ChangeSet) TouchesMatching() bool {
	for f := range c {
		if matchingFields[f] {
			return true
		}
	}
	return false
}

// Apply merges the patch into job and detail and returns what changed.
// Setting a field to its current value is not a change.
func (p JobPatch) Apply(job *Job, detail *JobDetail) ChangeSet {
	changes := ChangeSet{}

	if p.JobType != nil && *p.JobType != job.JobType {
		job.JobType = *p.JobType
		changes[FieldJobType] = true
	}
	applyString(changes, FieldTitle, &job.Title, p.Title)
	applyString(changes, FieldPurchaseType, &job.PurchaseType, p.PurchaseType)
	applyString(changes, FieldPropertyType, &job.PropertyType, p.PropertyType)
	applyFloat(changes, FieldBudgetMin, &job.BudgetMin, p.BudgetMin)
	applyFloat(changes, FieldBudgetMax, &job.BudgetMax, p.BudgetMax)
	applySlice(changes, FieldRegions, &job.Regions, p.Regions)
	applySlice(changes, FieldStates, &job.States, p.States)
	applySlice(changes, FieldSpecialisations, &job.Specialisations, p.Specialisations)
	applySlice(changes, FieldSelectedProfessionals, &job.SelectedProfessionals, p.SelectedProfessionals)

	if detail != nil {
		applyString(changes, FieldJourneyProgress, &detail.JourneyProgress, p.JourneyProgress)
		applyString(changes, FieldContactEmail, &detail.ContactEmail, p.ContactEmail)
		applyString(changes, FieldContactPhone, &detail.ContactPhone, p.ContactPhone)
		applyString(changes, FieldAdditionalDetails, &detail.AdditionalDetails, p.AdditionalDetails)
	}

	return changes
}

func applyString(changes ChangeSet, field JobField, dst *string, v *string) {
	if v == nil || *v == *dst {
		return
	}
	*dst = *v
	changes[field] = true
}

func applyFloat(changes ChangeSet, field JobField, dst **float64, v *float64) {
	if v == nil {
		return
	}
	if *dst != nil && **dst == *v {
		return
	}
	val := *v
	*dst = &val
	changes[field] = true
}

func applySlice(changes ChangeSet, field JobField, dst *datatypes.JSONSlice[string], v *[]string) {
	if v == nil || equalStrings(*dst, *v) {
		return
	}
	next := make([]string, len(*v))
	copy(next, *v)
	*dst = next
	changes[field] = true
}

func equalStrings(a, b []string) bool {
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
