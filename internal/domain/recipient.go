package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Urgency is the recipient-side priority classification.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyHigh     Urgency = "high"
	UrgencyStandard Urgency = "standard"
)

// ParseUrgency normalizes urgency input. "medium" is accepted as standard.
func ParseUrgency(raw string) (Urgency, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "critical":
		return UrgencyCritical, true
	case "high":
		return UrgencyHigh, true
	case "standard", "medium":
		return UrgencyStandard, true
	}
	return "", false
}

// RecipientStatus tracks the lifecycle of a donation request.
type RecipientStatus string

const (
	RecipientStatusActive    RecipientStatus = "active"
	RecipientStatusFulfilled RecipientStatus = "fulfilled"
)

// OrganType enumerates organs offered or requested.
type OrganType string

var organTypes = []OrganType{"Kidney", "Liver", "Heart", "Lung", "Pancreas", "Cornea", "Bone Marrow"}

// ParseOrganType matches raw input case-insensitively against known organs.
func ParseOrganType(raw string) (OrganType, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, o := range organTypes {
		if strings.EqualFold(string(o), trimmed) {
			return o, true
		}
	}
	return "", false
}

// Recipient is a registered party in need of blood or organ donation.
type Recipient struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	BloodType    BloodType
	Hospital     string
	Location     string
	Urgency      Urgency
	OrganType    *OrganType
	AmountNeeded decimal.Decimal
	Condition    string
	Status       RecipientStatus
	RegisteredAt time.Time
	UpdatedAt    time.Time
}
