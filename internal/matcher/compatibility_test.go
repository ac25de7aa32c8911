package matcher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/lifematch-service/internal/domain"
	"github.com/spec-kit/lifematch-service/internal/matcher"
)

func TestCompatibleDonorTypes(t *testing.T) {
	tests := []struct {
		recipient domain.BloodType
		want      []domain.BloodType
	}{
		{"O-", []domain.BloodType{"O-"}},
		{"O+", []domain.BloodType{"O-", "O+"}},
		{"A-", []domain.BloodType{"O-", "A-"}},
		{"A+", []domain.BloodType{"O-", "O+", "A-", "A+"}},
		{"B-", []domain.BloodType{"O-", "B-"}},
		{"B+", []domain.BloodType{"O-", "O+", "B-", "B+"}},
		{"AB-", []domain.BloodType{"O-", "A-", "B-", "AB-"}},
		{"AB+", []domain.BloodType{"O-", "O+", "A-", "A+", "B-", "B+", "AB-", "AB+"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.recipient), func(t *testing.T) {
			assert.Equal(t, tt.want, matcher.CompatibleDonorTypes(tt.recipient))
		})
	}
}

func TestCompatibleDonorTypesAlwaysIncludeUniversalDonor(t *testing.T) {
	for _, recipient := range domain.BloodTypes() {
		got := matcher.CompatibleDonorTypes(recipient)
		assert.Contains(t, got, domain.BloodTypeONeg, "recipient %s", recipient)
		for _, bt := range got {
			assert.True(t, bt.Valid(), "recipient %s yielded unknown type %q", recipient, bt)
		}
	}
}

func TestCompatibleDonorTypesUniversalRecipient(t *testing.T) {
	assert.ElementsMatch(t, domain.BloodTypes(), matcher.CompatibleDonorTypes(domain.BloodTypeABPos))
	assert.Equal(t, []domain.BloodType{domain.BloodTypeONeg}, matcher.CompatibleDonorTypes(domain.BloodTypeONeg))
}

func TestCompatibleDonorTypesUnknown(t *testing.T) {
	for _, raw := range []string{"", "a+", "C+", "AB", "O"} {
		got := matcher.CompatibleDonorTypes(domain.BloodType(raw))
		require.NotNil(t, got, "input %q", raw)
		assert.Empty(t, got, "input %q", raw)
	}
}

func TestCompatibleDonorTypesReturnsCopy(t *testing.T) {
	got := matcher.CompatibleDonorTypes(domain.BloodTypeONeg)
	got[0] = domain.BloodTypeABPos

	assert.Equal(t, []domain.BloodType{domain.BloodTypeONeg}, matcher.CompatibleDonorTypes(domain.BloodTypeONeg))
}

func TestCompatibleRecipientTypes(t *testing.T) {
	assert.Equal(t, domain.BloodTypes(), matcher.CompatibleRecipientTypes(domain.BloodTypeONeg))
	assert.Equal(t, []domain.BloodType{domain.BloodTypeABPos}, matcher.CompatibleRecipientTypes(domain.BloodTypeABPos))
	assert.Equal(t,
		[]domain.BloodType{domain.BloodTypeAPos, domain.BloodTypeABPos},
		matcher.CompatibleRecipientTypes(domain.BloodTypeAPos))
	assert.Empty(t, matcher.CompatibleRecipientTypes("X"))
}

func TestIsCompatibleAgreesWithTable(t *testing.T) {
	for _, recipient := range domain.BloodTypes() {
		allowed := matcher.CompatibleDonorTypes(recipient)
		for _, donor := range domain.BloodTypes() {
			want := false
			for _, bt := range allowed {
				if bt == donor {
					want = true
				}
			}
			assert.Equal(t, want, matcher.IsCompatible(donor, recipient), "donor %s -> recipient %s", donor, recipient)
		}
	}
}
