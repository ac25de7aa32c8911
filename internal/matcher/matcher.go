package matcher

import "github.com/spec-kit/lifematch-service/internal/domain"

// FindCompatibleDonors returns the donors that are both available and of a
// blood type the recipient can receive, in input order. The input slice is
// never modified.
func FindCompatibleDonors(recipient domain.BloodType, donors []domain.Donor) []domain.Donor {
	compatible := donorsFor[recipient]
	result := make([]domain.Donor, 0)
	if len(compatible) == 0 {
		return result
	}

	for _, donor := range donors {
		if !donor.Available() {
			continue
		}
		if !contains(compatible, donor.BloodType) {
			continue
		}
		result = append(result, donor)
	}
	return result
}

func contains(types []domain.BloodType, bt domain.BloodType) bool {
	for _, t := range types {
		if t == bt {
			return true
		}
	}
	return false
}
