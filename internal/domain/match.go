package domain

import "time"

// MatchStatus tracks outreach from a recipient request to a donor.
type MatchStatus string

const (
	MatchStatusPending   MatchStatus = "pending"
	MatchStatusContacted MatchStatus = "contacted"
	MatchStatusMatched   MatchStatus = "matched"
)

// Valid reports whether s is a known match status.
func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusPending, MatchStatusContacted, MatchStatusMatched:
		return true
	}
	return false
}

// Match links a recipient to a compatible donor who has been contacted.
type Match struct {
	ID          string
	RecipientID string
	DonorID     string
	BloodType   BloodType
	Status      MatchStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DashboardStats is the summary shown on the dashboard cards.
type DashboardStats struct {
	ActiveDonors      int       `json:"active_donors"`
	TotalDonors       int       `json:"total_donors"`
	SuccessfulMatches int       `json:"successful_matches"`
	PendingRequests   int       `json:"pending_requests"`
	CriticalAlerts    int       `json:"critical_alerts"`
	GeneratedAt       time.Time `json:"generated_at"`
}
