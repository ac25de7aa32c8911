package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/lifematch-service/internal/domain"
	apperrors "github.com/spec-kit/lifematch-service/pkg/util/errorutil"
)

// MemoryStore keeps donors, recipients and matches in process memory, in
// registration order. It backs the service when no Postgres DSN is set.
type MemoryStore struct {
	mu         sync.RWMutex
	donors     []domain.Donor
	recipients []domain.Recipient
	matches    []domain.Match
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Donors exposes the store as a DonorRepository.
func (s *MemoryStore) Donors() DonorRepository { return memoryDonors{s} }

// Recipients exposes the store as a RecipientRepository.
func (s *MemoryStore) Recipients() RecipientRepository { return memoryRecipients{s} }

// Matches exposes the store as a MatchRepository.
func (s *MemoryStore) Matches() MatchRepository { return memoryMatches{s} }

type memoryDonors struct{ s *MemoryStore }

func (m memoryDonors) Create(_ context.Context, donor *domain.Donor) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.donors {
		if existing.ID == donor.ID {
			return apperrors.NewConflict("donor already exists", map[string]any{"donor_id": donor.ID})
		}
	}
	now := time.Now().UTC()
	if donor.RegisteredAt.IsZero() {
		donor.RegisteredAt = now
	}
	donor.UpdatedAt = now
	m.s.donors = append(m.s.donors, cloneDonor(*donor))
	return nil
}

func (m memoryDonors) Update(_ context.Context, donor *domain.Donor) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := range m.s.donors {
		if m.s.donors[i].ID == donor.ID {
			donor.UpdatedAt = time.Now().UTC()
			m.s.donors[i] = cloneDonor(*donor)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m memoryDonors) GetByID(_ context.Context, id string) (*domain.Donor, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, donor := range m.s.donors {
		if donor.ID == id {
			d := cloneDonor(donor)
			return &d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m memoryDonors) List(_ context.Context, filter DonorFilter) ([]domain.Donor, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	result := []domain.Donor{}
	for _, donor := range m.s.donors {
		if donorMatches(donor, filter) {
			result = append(result, cloneDonor(donor))
		}
	}
	return paginate(result, filter.Limit, filter.Offset), nil
}

func (m memoryDonors) Count(ctx context.Context, filter DonorFilter) (int, error) {
	filter.Limit, filter.Offset = 0, 0
	donors, err := m.List(ctx, filter)
	return len(donors), err
}

func donorMatches(donor domain.Donor, filter DonorFilter) bool {
	if filter.BloodType != nil && donor.BloodType != *filter.BloodType {
		return false
	}
	if filter.Status != nil && donor.Status != *filter.Status {
		return false
	}
	return locationMatches(donor.Location, filter.Location)
}

type memoryRecipients struct{ s *MemoryStore }

func (m memoryRecipients) Create(_ context.Context, recipient *domain.Recipient) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, existing := range m.s.recipients {
		if existing.ID == recipient.ID {
			return apperrors.NewConflict("recipient already exists", map[string]any{"recipient_id": recipient.ID})
		}
	}
	now := time.Now().UTC()
	if recipient.RegisteredAt.IsZero() {
		recipient.RegisteredAt = now
	}
	recipient.UpdatedAt = now
	m.s.recipients = append(m.s.recipients, cloneRecipient(*recipient))
	return nil
}

func (m memoryRecipients) Update(_ context.Context, recipient *domain.Recipient) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := range m.s.recipients {
		if m.s.recipients[i].ID == recipient.ID {
			recipient.UpdatedAt = time.Now().UTC()
			m.s.recipients[i] = cloneRecipient(*recipient)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m memoryRecipients) GetByID(_ context.Context, id string) (*domain.Recipient, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, recipient := range m.s.recipients {
		if recipient.ID == id {
			r := cloneRecipient(recipient)
			return &r, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m memoryRecipients) List(_ context.Context, filter RecipientFilter) ([]domain.Recipient, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	result := []domain.Recipient{}
	for _, recipient := range m.s.recipients {
		if recipientMatches(recipient, filter) {
			result = append(result, cloneRecipient(recipient))
		}
	}
	return paginate(result, filter.Limit, filter.Offset), nil
}

func (m memoryRecipients) Count(ctx context.Context, filter RecipientFilter) (int, error) {
	filter.Limit, filter.Offset = 0, 0
	recipients, err := m.List(ctx, filter)
	return len(recipients), err
}

func recipientMatches(recipient domain.Recipient, filter RecipientFilter) bool {
	if filter.BloodType != nil && recipient.BloodType != *filter.BloodType {
		return false
	}
	if filter.Urgency != nil && recipient.Urgency != *filter.Urgency {
		return false
	}
	if filter.Status != nil && recipient.Status != *filter.Status {
		return false
	}
	return locationMatches(recipient.Location, filter.Location)
}

type memoryMatches struct{ s *MemoryStore }

func (m memoryMatches) Create(_ context.Context, match *domain.Match) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	now := time.Now().UTC()
	match.CreatedAt = now
	match.UpdatedAt = now
	m.s.matches = append(m.s.matches, *match)
	return nil
}

func (m memoryMatches) Update(_ context.Context, match *domain.Match) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := range m.s.matches {
		if m.s.matches[i].ID == match.ID {
			match.UpdatedAt = time.Now().UTC()
			m.s.matches[i].Status = match.Status
			m.s.matches[i].UpdatedAt = match.UpdatedAt
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m memoryMatches) GetByID(_ context.Context, id string) (*domain.Match, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	for _, match := range m.s.matches {
		if match.ID == id {
			found := match
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m memoryMatches) List(_ context.Context, filter MatchFilter) ([]domain.Match, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	result := []domain.Match{}
	for _, match := range m.s.matches {
		if filter.RecipientID != nil && match.RecipientID != *filter.RecipientID {
			continue
		}
		if filter.DonorID != nil && match.DonorID != *filter.DonorID {
			continue
		}
		if filter.Status != nil && match.Status != *filter.Status {
			continue
		}
		result = append(result, match)
	}
	return result, nil
}

func (m memoryMatches) Count(ctx context.Context, filter MatchFilter) (int, error) {
	matches, err := m.List(ctx, filter)
	return len(matches), err
}

func locationMatches(location, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(location), query)
}

func paginate[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		return items
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func cloneDonor(d domain.Donor) domain.Donor {
	if d.DonationTypes != nil {
		d.DonationTypes = append([]domain.DonationType(nil), d.DonationTypes...)
	}
	if d.OrganType != nil {
		o := *d.OrganType
		d.OrganType = &o
	}
	if d.LastDonation != nil {
		t := *d.LastDonation
		d.LastDonation = &t
	}
	return d
}

func cloneRecipient(r domain.Recipient) domain.Recipient {
	if r.OrganType != nil {
		o := *r.OrganType
		r.OrganType = &o
	}
	return r
}
