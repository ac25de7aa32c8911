package events

import (
	"time"

	"github.com/spec-kit/lifematch-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventDonorRegistered     EventType = "donor_registered"
	EventRecipientRegistered EventType = "recipient_registered"
	EventDonorStatusChanged  EventType = "donor_status_changed"
	EventDonorContacted      EventType = "donor_contacted"
	EventMatchStatusChanged  EventType = "match_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	SubjectID string    `json:"subject_id"`
	Timestamp time.Time `json:"timestamp"`
	Payload   any       `json:"payload"`
}

// DonorRegisteredPayload payload.
type DonorRegisteredPayload struct {
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	BloodType domain.BloodType `json:"blood_type"`
	Location  string           `json:"location"`
}

// RecipientRegisteredPayload payload.
type RecipientRegisteredPayload struct {
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	BloodType domain.BloodType `json:"blood_type"`
	Hospital  string           `json:"hospital"`
	Urgency   domain.Urgency   `json:"urgency"`
}

// DonorStatusChangedPayload payload.
type DonorStatusChangedPayload struct {
	OldStatus domain.DonorStatus `json:"old_status"`
	NewStatus domain.DonorStatus `json:"new_status"`
}

// DonorContactedPayload payload.
type DonorContactedPayload struct {
	MatchID     string         `json:"match_id"`
	RecipientID string         `json:"recipient_id"`
	DonorID     string         `json:"donor_id"`
	DonorName   string         `json:"donor_name"`
	DonorEmail  string         `json:"donor_email"`
	Urgency     domain.Urgency `json:"urgency"`
}

// MatchStatusChangedPayload payload.
type MatchStatusChangedPayload struct {
	OldStatus domain.MatchStatus `json:"old_status"`
	NewStatus domain.MatchStatus `json:"new_status"`
}
