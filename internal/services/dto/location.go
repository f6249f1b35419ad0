package dto

import "propmatch_backend/internal/models"

type SuburbSearchQuery struct {
	Query string `form:"query" validate:"required,min=1,max=100"`
}

type SuburbDTO struct {
	ID        int64          `json:"id"`
	Postcode  string         `json:"postcode"`
	Locality  string         `json:"locality"`
	Region    string         `json:"region"`
	State     models.AUState `json:"state"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
}

func NewSuburbDTOs(suburbs []models.Suburb) []SuburbDTO {
	out := make([]SuburbDTO, 0, len(suburbs))
	for _, s := range suburbs {
		out = append(out, SuburbDTO{
			ID:        s.ID,
			Postcode:  s.Postcode,
			Locality:  s.Locality,
			Region:    s.Region,
			State:     s.State,
			Latitude:  s.Latitude,
			Longitude: s.Longitude,
		})
	}
	return out
}
