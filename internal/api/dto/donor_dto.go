package dto

import (
	"time"

	"github.com/spec-kit/lifematch-service/internal/domain"
)

// RegisterDonorRequest payload.
type RegisterDonorRequest struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	BloodType     string   `json:"blood_type"`
	Address       string   `json:"address"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	DonationTypes []string `json:"donation_types"`
	OrganType     string   `json:"organ_type"`
}

// UpdateDonorStatusRequest payload.
type UpdateDonorStatusRequest struct {
	Status domain.DonorStatus `json:"status"`
}

// DonorResponse is the public view of a donor.
type DonorResponse struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Email         string                `json:"email"`
	Phone         string                `json:"phone"`
	BloodType     domain.BloodType      `json:"blood_type"`
	Location      string                `json:"location"`
	DonationTypes []domain.DonationType `json:"donation_types"`
	OrganType     *domain.OrganType     `json:"organ_type,omitempty"`
	Status        domain.DonorStatus    `json:"status"`
	LastDonation  *time.Time            `json:"last_donation,omitempty"`
	RegisteredAt  time.Time             `json:"registered_at"`
}

// NewDonorResponse maps a domain donor.
func NewDonorResponse(d *domain.Donor) DonorResponse {
	types := d.DonationTypes
	if types == nil {
		types = []domain.DonationType{}
	}
	return DonorResponse{
		ID:            d.ID,
		Name:          d.Name,
		Email:         d.Email,
		Phone:         d.Phone,
		BloodType:     d.BloodType,
		Location:      d.Location,
		DonationTypes: types,
		OrganType:     d.OrganType,
		Status:        d.Status,
		LastDonation:  d.LastDonation,
		RegisteredAt:  d.RegisteredAt,
	}
}

// NewDonorList maps a slice of donors, never returning nil.
func NewDonorList(donors []domain.Donor) []DonorResponse {
	items := make([]DonorResponse, 0, len(donors))
	for i := range donors {
		items = append(items, NewDonorResponse(&donors[i]))
	}
	return items
}
