// Package validation checks registration input before it reaches storage.
// All problems are reported together, keyed by field name.
package validation

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spec-kit/lifematch-service/internal/domain"
	apperrors "github.com/spec-kit/lifematch-service/pkg/util/errorutil"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{0,15}$`)
	whitespace   = regexp.MustCompile(`\s`)
)

// DonorInput is the raw donor registration form.
type DonorInput struct {
	Name          string
	Email         string
	Phone         string
	BloodType     string
	Address       string
	City          string
	State         string
	DonationTypes []string
	OrganType     string
}

// RecipientInput is the raw recipient registration form.
type RecipientInput struct {
	Name         string
	Email        string
	Phone        string
	BloodType    string
	Hospital     string
	Location     string
	Urgency      string
	OrganType    string
	AmountNeeded string
	Condition    string
}

// FieldErrors collects messages per field.
type FieldErrors map[string]string

func (f FieldErrors) add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

// Err converts the collected errors into a VALIDATION_FAILED error, or nil.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	fields := make(map[string]any, len(f))
	for k, v := range f {
		fields[k] = v
	}
	return apperrors.NewValidationError("please fill in all required fields correctly", map[string]any{"fields": fields})
}

// ValidEmail reports whether email looks like local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidPhone reports whether phone is an optional "+" followed by up to 16
// digits not starting with 0. Whitespace is ignored.
func ValidPhone(phone string) bool {
	return phonePattern.MatchString(whitespace.ReplaceAllString(phone, ""))
}

// ValidateDonor checks a donor form.
func ValidateDonor(in DonorInput) error {
	errs := FieldErrors{}
	required(errs, map[string]string{
		"name":       in.Name,
		"email":      in.Email,
		"phone":      in.Phone,
		"blood_type": in.BloodType,
		"address":    in.Address,
		"city":       in.City,
		"state":      in.State,
	})
	contact(errs, in.Email, in.Phone)
	bloodType(errs, in.BloodType)

	for _, raw := range in.DonationTypes {
		if !domain.DonationType(strings.ToLower(strings.TrimSpace(raw))).Valid() {
			errs.add("donation_types", "unknown donation type "+raw)
		}
	}
	if strings.TrimSpace(in.OrganType) != "" {
		if _, ok := domain.ParseOrganType(in.OrganType); !ok {
			errs.add("organ_type", "unknown organ type")
		}
	}
	return errs.Err()
}

// ValidateRecipient checks a recipient form.
func ValidateRecipient(in RecipientInput) error {
	errs := FieldErrors{}
	required(errs, map[string]string{
		"name":       in.Name,
		"email":      in.Email,
		"phone":      in.Phone,
		"blood_type": in.BloodType,
		"hospital":   in.Hospital,
		"urgency":    in.Urgency,
	})
	contact(errs, in.Email, in.Phone)
	bloodType(errs, in.BloodType)

	if strings.TrimSpace(in.Urgency) != "" {
		if _, ok := domain.ParseUrgency(in.Urgency); !ok {
			errs.add("urgency", "urgency must be critical, high or standard")
		}
	}
	if strings.TrimSpace(in.OrganType) != "" {
		if _, ok := domain.ParseOrganType(in.OrganType); !ok {
			errs.add("organ_type", "unknown organ type")
		}
	}
	if strings.TrimSpace(in.AmountNeeded) != "" {
		amount, err := decimal.NewFromString(strings.TrimSpace(in.AmountNeeded))
		if err != nil || amount.IsNegative() {
			errs.add("amount_needed", "amount needed must be a non-negative number")
		}
	}
	return errs.Err()
}

func required(errs FieldErrors, fields map[string]string) {
	for name, val := range fields {
		if strings.TrimSpace(val) == "" {
			errs.add(name, "required")
		}
	}
}

func contact(errs FieldErrors, email, phone string) {
	if strings.TrimSpace(email) != "" && !ValidEmail(email) {
		errs.add("email", "please enter a valid email address")
	}
	if strings.TrimSpace(phone) != "" && !ValidPhone(phone) {
		errs.add("phone", "please enter a valid phone number")
	}
}

func bloodType(errs FieldErrors, raw string) {
	if strings.TrimSpace(raw) == "" {
		return
	}
	if _, ok := domain.ParseBloodType(raw); !ok {
		errs.add("blood_type", "unknown blood type")
	}
}
