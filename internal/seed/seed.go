// Package seed loads donor and recipient fixtures from YAML, including the
// sample records shown on a fresh dashboard.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/spec-kit/lifematch-service/internal/domain"
	"github.com/spec-kit/lifematch-service/internal/repository"
)

//go:embed sample.yaml
var sampleYAML []byte

// Dataset is the YAML document shape.
type Dataset struct {
	Donors     []DonorRecord     `yaml:"donors"`
	Recipients []RecipientRecord `yaml:"recipients"`
}

// DonorRecord is a donor entry in a dataset file.
type DonorRecord struct {
	ID                  string   `yaml:"id"`
	Name                string   `yaml:"name"`
	Email               string   `yaml:"email"`
	Phone               string   `yaml:"phone"`
	BloodType           string   `yaml:"blood_type"`
	Address             string   `yaml:"address"`
	City                string   `yaml:"city"`
	State               string   `yaml:"state"`
	Location            string   `yaml:"location"`
	DonationTypes       []string `yaml:"donation_types"`
	OrganType           string   `yaml:"organ_type"`
	LastDonationDaysAgo *int     `yaml:"last_donation_days_ago"`
	Status              string   `yaml:"status"`
}

// RecipientRecord is a recipient entry in a dataset file.
type RecipientRecord struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Email        string `yaml:"email"`
	Phone        string `yaml:"phone"`
	BloodType    string `yaml:"blood_type"`
	Hospital     string `yaml:"hospital"`
	Location     string `yaml:"location"`
	Urgency      string `yaml:"urgency"`
	OrganType    string `yaml:"organ_type"`
	AmountNeeded string `yaml:"amount_needed"`
	Condition    string `yaml:"condition"`
}

// Sample returns the embedded sample dataset.
func Sample() (*Dataset, error) {
	return Parse(sampleYAML)
}

// LoadFile reads a dataset from disk.
func LoadFile(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a YAML dataset.
func Parse(raw []byte) (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return &ds, nil
}

// DonorModels converts donor records to domain donors. Blood types and
// statuses are normalized; unknown blood types are kept verbatim so the
// matcher can ignore them. Records without an ID get a fresh UUID.
func (ds *Dataset) DonorModels(now time.Time) []domain.Donor {
	donors := make([]domain.Donor, 0, len(ds.Donors))
	for _, rec := range ds.Donors {
		bt, ok := domain.ParseBloodType(rec.BloodType)
		if !ok {
			bt = domain.BloodType(rec.BloodType)
		}
		status := domain.DonorStatus(strings.ToLower(strings.TrimSpace(rec.Status)))
		if !status.Valid() {
			status = domain.DonorStatusAvailable
		}
		location := rec.Location
		if location == "" && rec.City != "" {
			location = rec.City + ", " + rec.State
		}
		donor := domain.Donor{
			ID:        idOrNew(rec.ID),
			Name:      rec.Name,
			Email:     rec.Email,
			Phone:     rec.Phone,
			BloodType: bt,
			Address:   rec.Address,
			City:      rec.City,
			State:     rec.State,
			Location:  location,
			Status:    status,
		}
		for _, dt := range rec.DonationTypes {
			donor.DonationTypes = append(donor.DonationTypes, domain.DonationType(strings.ToLower(dt)))
		}
		if organ, ok := domain.ParseOrganType(rec.OrganType); ok {
			donor.OrganType = &organ
		}
		if rec.LastDonationDaysAgo != nil {
			last := now.AddDate(0, 0, -*rec.LastDonationDaysAgo)
			donor.LastDonation = &last
		}
		donors = append(donors, donor)
	}
	return donors
}

// RecipientModels converts recipient records to domain recipients.
func (ds *Dataset) RecipientModels() ([]domain.Recipient, error) {
	recipients := make([]domain.Recipient, 0, len(ds.Recipients))
	for _, rec := range ds.Recipients {
		bt, ok := domain.ParseBloodType(rec.BloodType)
		if !ok {
			return nil, fmt.Errorf("recipient %q: unknown blood type %q", rec.Name, rec.BloodType)
		}
		urgency, ok := domain.ParseUrgency(rec.Urgency)
		if !ok {
			return nil, fmt.Errorf("recipient %q: unknown urgency %q", rec.Name, rec.Urgency)
		}
		amount := decimal.Zero
		if rec.AmountNeeded != "" {
			parsed, err := decimal.NewFromString(rec.AmountNeeded)
			if err != nil {
				return nil, fmt.Errorf("recipient %q: amount_needed: %w", rec.Name, err)
			}
			amount = parsed
		}
		recipient := domain.Recipient{
			ID:           idOrNew(rec.ID),
			Name:         rec.Name,
			Email:        rec.Email,
			Phone:        rec.Phone,
			BloodType:    bt,
			Hospital:     rec.Hospital,
			Location:     rec.Location,
			Urgency:      urgency,
			AmountNeeded: amount,
			Condition:    rec.Condition,
			Status:       domain.RecipientStatusActive,
		}
		if organ, ok := domain.ParseOrganType(rec.OrganType); ok {
			recipient.OrganType = &organ
		}
		recipients = append(recipients, recipient)
	}
	return recipients, nil
}

// Apply inserts the dataset when both donor and recipient stores are empty.
// It reports whether anything was written.
func (ds *Dataset) Apply(ctx context.Context, donors repository.DonorRepository, recipients repository.RecipientRepository) (bool, error) {
	donorCount, err := donors.Count(ctx, repository.DonorFilter{})
	if err != nil {
		return false, err
	}
	recipientCount, err := recipients.Count(ctx, repository.RecipientFilter{})
	if err != nil {
		return false, err
	}
	if donorCount > 0 || recipientCount > 0 {
		return false, nil
	}

	recipientModels, err := ds.RecipientModels()
	if err != nil {
		return false, err
	}
	for _, donor := range ds.DonorModels(time.Now().UTC()) {
		if err := donors.Create(ctx, &donor); err != nil {
			return false, fmt.Errorf("seed donor %q: %w", donor.Name, err)
		}
	}
	for _, recipient := range recipientModels {
		if err := recipients.Create(ctx, &recipient); err != nil {
			return false, fmt.Errorf("seed recipient %q: %w", recipient.Name, err)
		}
	}
	return true, nil
}

func idOrNew(id string) string {
	if strings.TrimSpace(id) != "" {
		return id
	}
	return uuid.NewString()
}
