package dto

import "propmatch_backend/internal/models"

type VerificationResponse struct {
	ProfessionalID     string                    `json:"professionalId"`
	VerificationStatus models.VerificationStatus `json:"verificationStatus"`
}

type ProfessionalListQuery struct {
	Status string `form:"status" validate:"omitempty,oneof=Unverified Verified Rejected"`
}

type JobListQuery struct {
	Status string `form:"status" validate:"omitempty,is-job-status"`
}
