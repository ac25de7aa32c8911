package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/lifematch-service/pkg/util/errorutil"
)

func validDonor() DonorInput {
	return DonorInput{
		Name:          "Emily Davis",
		Email:         "emily@example.com",
		Phone:         "+1 555 010 2030",
		BloodType:     "O-",
		Address:       "1 Main St",
		City:          "New York",
		State:         "NY",
		DonationTypes: []string{"blood", "Plasma"},
	}
}

func validRecipient() RecipientInput {
	return RecipientInput{
		Name:         "John Smith",
		Email:        "john@example.com",
		Phone:        "2125550100",
		BloodType:    "ab+",
		Hospital:     "City General Hospital",
		Location:     "New York, NY",
		Urgency:      "critical",
		AmountNeeded: "2.5",
	}
}

func fieldsOf(t *testing.T, err error) map[string]any {
	t.Helper()
	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	require.Equal(t, "VALIDATION_FAILED", de.Code)
	fields, ok := de.Details["fields"].(map[string]any)
	require.True(t, ok)
	return fields
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.co"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("a b@c.d"))
	assert.False(t, ValidEmail("@b.co"))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone("+15550100"))
	assert.True(t, ValidPhone("555 0100"))
	assert.True(t, ValidPhone("9"))
	assert.False(t, ValidPhone("0555"))
	assert.False(t, ValidPhone("+1-555-0100"))
	assert.False(t, ValidPhone("12345678901234567"))
}

func TestValidateDonor(t *testing.T) {
	require.NoError(t, ValidateDonor(validDonor()))

	in := validDonor()
	in.Name = " "
	in.City = ""
	in.Email = "nope"
	in.BloodType = "C+"
	in.DonationTypes = []string{"kidney"}
	fields := fieldsOf(t, ValidateDonor(in))

	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "city")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "blood_type")
	assert.Contains(t, fields, "donation_types")
	assert.NotContains(t, fields, "phone")
}

func TestValidateDonorOrganType(t *testing.T) {
	in := validDonor()
	in.OrganType = "bone marrow"
	require.NoError(t, ValidateDonor(in))

	in.OrganType = "Spleen"
	assert.Contains(t, fieldsOf(t, ValidateDonor(in)), "organ_type")
}

func TestValidateRecipient(t *testing.T) {
	require.NoError(t, ValidateRecipient(validRecipient()))

	in := validRecipient()
	in.Urgency = "medium"
	require.NoError(t, ValidateRecipient(in))

	in.Urgency = "whenever"
	in.AmountNeeded = "-1"
	in.Hospital = ""
	fields := fieldsOf(t, ValidateRecipient(in))
	assert.Contains(t, fields, "urgency")
	assert.Contains(t, fields, "amount_needed")
	assert.Contains(t, fields, "hospital")
}
