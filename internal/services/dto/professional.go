package dto

import (
	"time"

	"propmatch_backend/internal/models"
)

// UpdateProfessionalRequest patches the caller's own profile. Nil fields are left as they are.
type UpdateProfessionalRequest struct {
	ABN              *string   `json:"abn" validate:"omitempty,max=32"`
	LicenseNumber    *string   `json:"licenseNumber" validate:"omitempty,max=64"`
	CompanyName      *string   `json:"companyName" validate:"omitempty,max=200"`
	ProfessionalType *string   `json:"professionalType" validate:"omitempty,is-professional-type"`
	Regions          *[]string `json:"regions" validate:"omitempty,dive,required,max=100"`
	States           *[]string `json:"states" validate:"omitempty,dive,required,is-au-state"`
	Specialisations  *[]string `json:"specialisations" validate:"omitempty,dive,required,max=100"`
}

type ProfessionalDTO struct {
	ProfessionalID     string                    `json:"professionalId"`
	Email              string                    `json:"email,omitempty"`
	FirstName          string                    `json:"firstName,omitempty"`
	LastName           string                    `json:"lastName,omitempty"`
	ABN                string                    `json:"abn"`
	LicenseNumber      string                    `json:"licenseNumber"`
	CompanyName        string                    `json:"companyName"`
	ProfessionalType   models.ProfessionalType   `json:"professionalType"`
	Regions            []string                  `json:"regions"`
	States             []string                  `json:"states"`
	Specialisations    []string                  `json:"specialisations"`
	FirstLogin         bool                      `json:"firstLogin"`
	VerificationStatus models.VerificationStatus `json:"verificationStatus"`
	VerifiedAt         *time.Time                `json:"verifiedAt"`
	CreatedAt          time.Time                 `json:"createdAt"`
}

func NewProfessionalDTO(p *models.ProfessionalProfile) ProfessionalDTO {
	out := ProfessionalDTO{
		ProfessionalID:     p.UserID,
		ABN:                p.ABN,
		LicenseNumber:      p.LicenseNumber,
		CompanyName:        p.CompanyName,
		ProfessionalType:   p.ProfessionalType,
		Regions:            nonNil(p.Regions),
		States:             nonNil(p.States),
		Specialisations:    nonNil(p.Specialisations),
		FirstLogin:         p.FirstLogin,
		VerificationStatus: p.VerificationStatus,
		VerifiedAt:         p.VerifiedAt,
		CreatedAt:          p.CreatedAt,
	}
	if p.User != nil {
		out.Email = p.User.Email
		out.FirstName = p.User.FirstName
		out.LastName = p.User.LastName
	}
	return out
}

func NewProfessionalDTOs(profiles []models.ProfessionalProfile) []ProfessionalDTO {
	out := make([]ProfessionalDTO, 0, len(profiles))
	for i := range profiles {
		out = append(out, NewProfessionalDTO(&profiles[i]))
	}
	return out
}
