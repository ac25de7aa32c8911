package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/lifematch-service/internal/domain"
)

// RegisterRecipientRequest payload. AmountNeeded is a decimal string such as "1.5".
type RegisterRecipientRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	BloodType    string `json:"blood_type"`
	Hospital     string `json:"hospital"`
	Location     string `json:"location"`
	Urgency      string `json:"urgency"`
	OrganType    string `json:"organ_type"`
	AmountNeeded string `json:"amount_needed"`
	Condition    string `json:"condition"`
}

// RecipientResponse is the public view of a recipient.
type RecipientResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	BloodType    domain.BloodType       `json:"blood_type"`
	Hospital     string                 `json:"hospital"`
	Location     string                 `json:"location"`
	Urgency      domain.Urgency         `json:"urgency"`
	OrganType    *domain.OrganType      `json:"organ_type,omitempty"`
	AmountNeeded decimal.Decimal        `json:"amount_needed"`
	Condition    string                 `json:"condition,omitempty"`
	Status       domain.RecipientStatus `json:"status"`
	RegisteredAt time.Time              `json:"registered_at"`
}

// NewRecipientResponse maps a domain recipient.
func NewRecipientResponse(r *domain.Recipient) RecipientResponse {
	return RecipientResponse{
		ID:           r.ID,
		Name:         r.Name,
		BloodType:    r.BloodType,
		Hospital:     r.Hospital,
		Location:     r.Location,
		Urgency:      r.Urgency,
		OrganType:    r.OrganType,
		AmountNeeded: r.AmountNeeded,
		Condition:    r.Condition,
		Status:       r.Status,
		RegisteredAt: r.RegisteredAt,
	}
}

// NewRecipientList maps a slice of recipients, never returning nil.
func NewRecipientList(recipients []domain.Recipient) []RecipientResponse {
	items := make([]RecipientResponse, 0, len(recipients))
	for i := range recipients {
		items = append(items, NewRecipientResponse(&recipients[i]))
	}
	return items
}

// RecipientMatchesResponse lists compatible available donors for a request.
type RecipientMatchesResponse struct {
	Recipient        RecipientResponse  `json:"recipient"`
	CompatibleTypes  []domain.BloodType `json:"compatible_types"`
	CompatibleDonors []DonorResponse    `json:"compatible_donors"`
	Contacts         []MatchResponse    `json:"contacts"`
}
