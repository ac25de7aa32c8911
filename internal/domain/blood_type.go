package domain

import "strings"

// BloodType is an ABO/Rh blood group.
type BloodType string

const (
	BloodTypeONeg  BloodType = "O-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeAPos  BloodType = "A+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeABPos BloodType = "AB+"
)

var bloodTypes = []BloodType{
	BloodTypeONeg,
	BloodTypeOPos,
	BloodTypeANeg,
	BloodTypeAPos,
	BloodTypeBNeg,
	BloodTypeBPos,
	BloodTypeABNeg,
	BloodTypeABPos,
}

// BloodTypes returns the eight blood types in canonical order.
func BloodTypes() []BloodType {
	out := make([]BloodType, len(bloodTypes))
	copy(out, bloodTypes)
	return out
}

// Valid reports whether b is one of the eight known blood types.
func (b BloodType) Valid() bool {
	for _, bt := range bloodTypes {
		if b == bt {
			return true
		}
	}
	return false
}

func (b BloodType) String() string {
	return string(b)
}

// ParseBloodType normalizes user input such as " ab+ " into a BloodType.
func ParseBloodType(raw string) (BloodType, bool) {
	bt := BloodType(strings.ToUpper(strings.TrimSpace(raw)))
	if !bt.Valid() {
		return "", false
	}
	return bt, true
}
