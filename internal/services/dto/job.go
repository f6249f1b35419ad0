package dto

import (
	"time"

	"propmatch_backend/internal/models"
)

type CreateJobRequest struct {
	JobType               string   `json:"jobType" validate:"required,is-job-type"`
	Title                 string   `json:"title" validate:"required,max=200"`
	PurchaseType          string   `json:"purchaseType" validate:"required,max=100"`
	PropertyType          string   `json:"propertyType" validate:"required,max=100"`
	BudgetMin             *float64 `json:"budgetMin" validate:"omitempty,gte=0"`
	BudgetMax             *float64 `json:"budgetMax" validate:"omitempty,gte=0"`
	JourneyProgress       string   `json:"journeyProgress" validate:"max=100"`
	ContactEmail          string   `json:"contactEmail" validate:"required,email"`
	ContactPhone          string   `json:"contactPhone" validate:"required,min=6,max=32"`
	AdditionalDetails     string   `json:"additionalDetails" validate:"max=4000"`
	Regions               []string `json:"regions" validate:"omitempty,dive,required,max=100"`
	States                []string `json:"states" validate:"omitempty,dive,required,is-au-state"`
	Specialisations       []string `json:"specialisations" validate:"omitempty,dive,required,max=100"`
	SelectedProfessionals []string `json:"selectedProfessionals" validate:"required,min=1,dive,required,is-professional-type"`
}

// UpdateJobRequest is a partial update: absent (null) fields are left unchanged.
type UpdateJobRequest struct {
	JobType               *string   `json:"jobType" validate:"omitempty,is-job-type"`
	Title                 *string   `json:"title" validate:"omitempty,min=1,max=200"`
	PurchaseType          *string   `json:"purchaseType" validate:"omitempty,min=1,max=100"`
	PropertyType          *string   `json:"propertyType" validate:"omitempty,min=1,max=100"`
	BudgetMin             *float64  `json:"budgetMin" validate:"omitempty,gte=0"`
	BudgetMax             *float64  `json:"budgetMax" validate:"omitempty,gte=0"`
	JourneyProgress       *string   `json:"journeyProgress" validate:"omitempty,max=100"`
	ContactEmail          *string   `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone          *string   `json:"contactPhone" validate:"omitempty,min=6,max=32"`
	AdditionalDetails     *string   `json:"additionalDetails" validate:"omitempty,max=4000"`
	Regions               *[]string `json:"regions" validate:"omitempty,dive,required,max=100"`
	States                *[]string `json:"states" validate:"omitempty,dive,required,is-au-state"`
	Specialisations       *[]string `json:"specialisations" validate:"omitempty,dive,required,max=100"`
	SelectedProfessionals *[]string `json:"selectedProfessionals" validate:"omitempty,min=1,dive,required,is-professional-type"`
}

// ToPatch converts the request into the model patch, canonicalising enum spellings.
func (r *UpdateJobRequest) ToPatch() models.JobPatch {
	patch := models.JobPatch{
		Title:             r.Title,
		PurchaseType:      r.PurchaseType,
		PropertyType:      r.PropertyType,
		BudgetMin:         r.BudgetMin,
		BudgetMax:         r.BudgetMax,
		JourneyProgress:   r.JourneyProgress,
		ContactEmail:      r.ContactEmail,
		ContactPhone:      r.ContactPhone,
		AdditionalDetails: r.AdditionalDetails,
		Regions:           r.Regions,
		Specialisations:   r.Specialisations,
	}
	if r.JobType != nil {
		jt := models.JobType(*r.JobType)
		patch.JobType = &jt
	}
	if r.States != nil {
		states := CanonicalStates(*r.States)
		patch.States = &states
	}
	if r.SelectedProfessionals != nil {
		types := CanonicalProfessionalTypes(*r.SelectedProfessionals)
		patch.SelectedProfessionals = &types
	}
	return patch
}

type ShortlistRequest struct {
	ProfessionalIDs []string `json:"professionalIds" validate:"required,min=1,dive,required"`
}

type FinaliseRequest struct {
	JobID          string `json:"jobId" validate:"required"`
	ProfessionalID string `json:"professionalId" validate:"required"`
}

type JobMatchDTO struct {
	ProfessionalID   string                  `json:"professionalId"`
	ProfessionalType models.ProfessionalType `json:"professionalType"`
	AssignedAt       time.Time               `json:"assignedAt"`
}

type JobDTO struct {
	ID                       string           `json:"id"`
	CustomerID               string           `json:"customerId"`
	JobType                  models.JobType   `json:"jobType"`
	Title                    string           `json:"title"`
	PurchaseType             string           `json:"purchaseType"`
	PropertyType             string           `json:"propertyType"`
	BudgetMin                *float64         `json:"budgetMin"`
	BudgetMax                *float64         `json:"budgetMax"`
	JourneyProgress          string           `json:"journeyProgress"`
	ContactEmail             string           `json:"contactEmail"`
	ContactPhone             string           `json:"contactPhone"`
	AdditionalDetails        string           `json:"additionalDetails"`
	Regions                  []string         `json:"regions"`
	States                   []string         `json:"states"`
	Specialisations          []string         `json:"specialisations"`
	SelectedProfessionals    []string         `json:"selectedProfessionals"`
	SuggestedProfessionals   []string         `json:"suggestedProfessionals"`
	ShortlistedProfessionals []string         `json:"shortlistedProfessionals"`
	FinalisedProfessionals   []JobMatchDTO    `json:"finalisedProfessionals"`
	Status                   models.JobStatus `json:"status"`
	CreatedAt                time.Time        `json:"createdAt"`
	UpdatedAt                time.Time        `json:"updatedAt"`
}

func NewJobDTO(j *models.Job) JobDTO {
	out := JobDTO{
		ID:                       j.ID,
		CustomerID:               j.CustomerID,
		JobType:                  j.JobType,
		Title:                    j.Title,
		PurchaseType:             j.PurchaseType,
		PropertyType:             j.PropertyType,
		BudgetMin:                j.BudgetMin,
		BudgetMax:                j.BudgetMax,
		Regions:                  nonNil(j.Regions),
		States:                   nonNil(j.States),
		Specialisations:          nonNil(j.Specialisations),
		SelectedProfessionals:    nonNil(j.SelectedProfessionals),
		SuggestedProfessionals:   nonNil(j.SuggestedProfessionals),
		ShortlistedProfessionals: nonNil(j.ShortlistedProfessionals),
		FinalisedProfessionals:   make([]JobMatchDTO, 0, len(j.Matches)),
		Status:                   j.Status,
		CreatedAt:                j.CreatedAt,
		UpdatedAt:                j.UpdatedAt,
	}
	if j.Detail != nil {
		out.JourneyProgress = j.Detail.JourneyProgress
		out.ContactEmail = j.Detail.ContactEmail
		out.ContactPhone = j.Detail.ContactPhone
		out.AdditionalDetails = j.Detail.AdditionalDetails
	}
	for _, m := range j.Matches {
		out.FinalisedProfessionals = append(out.FinalisedProfessionals, JobMatchDTO{
			ProfessionalID:   m.ProfessionalID,
			ProfessionalType: m.ProfessionalType,
			AssignedAt:       m.AssignedAt,
		})
	}
	return out
}

func NewJobDTOs(jobs []models.Job) []JobDTO {
	out := make([]JobDTO, 0, len(jobs))
	for i := range jobs {
		out = append(out, NewJobDTO(&jobs[i]))
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// CanonicalStates upper-cases valid state codes; invalid codes are rejected by validation earlier.
func CanonicalStates(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if st, ok := models.ParseAUState(s); ok {
			out = append(out, string(st))
		} else {
			out = append(out, s)
		}
	}
	return out
}

func CanonicalProfessionalTypes(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]bool{}
	for _, s := range in {
		v := s
		if pt, ok := models.ParseProfessionalType(s); ok {
			v = string(pt)
		}
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
