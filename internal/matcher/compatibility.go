// Package matcher answers ABO/Rh blood compatibility questions over
// collections supplied by the caller. It holds no state beyond the
// immutable compatibility table.
package matcher

import "github.com/spec-kit/lifematch-service/internal/domain"

// donorsFor maps a recipient blood type to the donor types it may receive.
var donorsFor = map[domain.BloodType][]domain.BloodType{
	domain.BloodTypeONeg:  {domain.BloodTypeONeg},
	domain.BloodTypeOPos:  {domain.BloodTypeONeg, domain.BloodTypeOPos},
	domain.BloodTypeANeg:  {domain.BloodTypeONeg, domain.BloodTypeANeg},
	domain.BloodTypeAPos:  {domain.BloodTypeONeg, domain.BloodTypeOPos, domain.BloodTypeANeg, domain.BloodTypeAPos},
	domain.BloodTypeBNeg:  {domain.BloodTypeONeg, domain.BloodTypeBNeg},
	domain.BloodTypeBPos:  {domain.BloodTypeONeg, domain.BloodTypeOPos, domain.BloodTypeBNeg, domain.BloodTypeBPos},
	domain.BloodTypeABNeg: {domain.BloodTypeONeg, domain.BloodTypeANeg, domain.BloodTypeBNeg, domain.BloodTypeABNeg},
	domain.BloodTypeABPos: {
		domain.BloodTypeONeg, domain.BloodTypeOPos,
		domain.BloodTypeANeg, domain.BloodTypeAPos,
		domain.BloodTypeBNeg, domain.BloodTypeBPos,
		domain.BloodTypeABNeg, domain.BloodTypeABPos,
	},
}

// CompatibleDonorTypes returns the donor blood types a recipient of the given
// type can receive from. Unknown types yield an empty, non-nil slice.
func CompatibleDonorTypes(recipient domain.BloodType) []domain.BloodType {
	types := donorsFor[recipient]
	out := make([]domain.BloodType, len(types))
	copy(out, types)
	return out
}

// CompatibleRecipientTypes returns the recipient blood types a donor of the
// given type can give to, in canonical order.
func CompatibleRecipientTypes(donor domain.BloodType) []domain.BloodType {
	out := []domain.BloodType{}
	for _, recipient := range domain.BloodTypes() {
		if IsCompatible(donor, recipient) {
			out = append(out, recipient)
		}
	}
	return out
}

// IsCompatible reports whether a donor of type donor may give to recipient.
func IsCompatible(donor, recipient domain.BloodType) bool {
	for _, bt := range donorsFor[recipient] {
		if bt == donor {
			return true
		}
	}
	return false
}
