package dto

import (
	"time"

	"github.com/spec-kit/lifematch-service/internal/domain"
)

// ContactDonorRequest payload.
type ContactDonorRequest struct {
	RecipientID string `json:"recipient_id"`
	DonorID     string `json:"donor_id"`
}

// UpdateMatchStatusRequest payload.
type UpdateMatchStatusRequest struct {
	Status domain.MatchStatus `json:"status"`
}

// MatchResponse is the public view of a donor outreach record.
type MatchResponse struct {
	ID          string             `json:"id"`
	RecipientID string             `json:"recipient_id"`
	DonorID     string             `json:"donor_id"`
	BloodType   domain.BloodType   `json:"blood_type"`
	Status      domain.MatchStatus `json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// NewMatchResponse maps a domain match.
func NewMatchResponse(m *domain.Match) MatchResponse {
	return MatchResponse{
		ID:          m.ID,
		RecipientID: m.RecipientID,
		DonorID:     m.DonorID,
		BloodType:   m.BloodType,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// NewMatchList maps a slice of matches, never returning nil.
func NewMatchList(matches []domain.Match) []MatchResponse {
	items := make([]MatchResponse, 0, len(matches))
	for i := range matches {
		items = append(items, NewMatchResponse(&matches[i]))
	}
	return items
}

// CompatibilityResponse answers a blood type compatibility lookup.
type CompatibilityResponse struct {
	BloodType     domain.BloodType   `json:"blood_type"`
	CanReceive    []domain.BloodType `json:"can_receive_from"`
	CanDonateTo   []domain.BloodType `json:"can_donate_to"`
	Note          string             `json:"note,omitempty"`
}
