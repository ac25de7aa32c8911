package domain

import "time"

// DonorStatus tracks whether a donor can currently be contacted.
type DonorStatus string

const (
	DonorStatusAvailable   DonorStatus = "available"
	DonorStatusUnavailable DonorStatus = "unavailable"
)

// Valid reports whether s is a known donor status.
func (s DonorStatus) Valid() bool {
	return s == DonorStatusAvailable || s == DonorStatusUnavailable
}

// DonationType enumerates what a donor offers.
type DonationType string

const (
	DonationTypeBlood     DonationType = "blood"
	DonationTypePlasma    DonationType = "plasma"
	DonationTypePlatelets DonationType = "platelets"
	DonationTypeOrgan     DonationType = "organ"
)

// Valid reports whether t is a known donation type.
func (t DonationType) Valid() bool {
	switch t {
	case DonationTypeBlood, DonationTypePlasma, DonationTypePlatelets, DonationTypeOrgan:
		return true
	}
	return false
}

// Donor is a registered party offering blood or organ donation.
type Donor struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	BloodType     BloodType
	Address       string
	City          string
	State         string
	Location      string
	DonationTypes []DonationType
	OrganType     *OrganType
	Status        DonorStatus
	LastDonation  *time.Time
	RegisteredAt  time.Time
	UpdatedAt     time.Time
}

// Available reports whether the donor may be matched.
func (d Donor) Available() bool {
	return d.Status == DonorStatusAvailable
}
