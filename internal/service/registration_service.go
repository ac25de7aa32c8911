package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/lifematch-service/internal/cache"
	"github.com/spec-kit/lifematch-service/internal/domain"
	"github.com/spec-kit/lifematch-service/internal/events"
	"github.com/spec-kit/lifematch-service/internal/observability"
	"github.com/spec-kit/lifematch-service/internal/repository"
	"github.com/spec-kit/lifematch-service/internal/validation"
	apperrors "github.com/spec-kit/lifematch-service/pkg/util/errorutil"
)

// RegistrationService handles donor and recipient sign-up.
type RegistrationService struct {
	donors     repository.DonorRepository
	recipients repository.RecipientRepository
	stats      cache.StatsCache
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// RegistrationDependencies bundles collaborators for the registration service.
type RegistrationDependencies struct {
	DonorRepo     repository.DonorRepository
	RecipientRepo repository.RecipientRepository
	StatsCache    cache.StatsCache
	Dispatcher    events.Dispatcher
	Metrics       *observability.Metrics
}

// NewRegistrationService constructs the service.
func NewRegistrationService(deps RegistrationDependencies) *RegistrationService {
	return &RegistrationService{
		donors:     deps.DonorRepo,
		recipients: deps.RecipientRepo,
		stats:      deps.StatsCache,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
	}
}

// RegisterDonor validates and stores a new donor, who starts out available.
func (s *RegistrationService) RegisterDonor(ctx context.Context, input validation.DonorInput) (*domain.Donor, error) {
	if err := validation.ValidateDonor(input); err != nil {
		return nil, err
	}
	bloodType, _ := domain.ParseBloodType(input.BloodType)

	donor := &domain.Donor{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.TrimSpace(input.Email),
		Phone:     strings.TrimSpace(input.Phone),
		BloodType: bloodType,
		Address:   strings.TrimSpace(input.Address),
		City:      strings.TrimSpace(input.City),
		State:     strings.TrimSpace(input.State),
		Status:    domain.DonorStatusAvailable,
	}
	donor.Location = donor.City + ", " + donor.State
	for _, raw := range input.DonationTypes {
		donor.DonationTypes = append(donor.DonationTypes, domain.DonationType(strings.ToLower(strings.TrimSpace(raw))))
	}
	if organ, ok := domain.ParseOrganType(input.OrganType); ok {
		donor.OrganType = &organ
	}

	if err := s.donors.Create(ctx, donor); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.metrics.RecordRegistration("donor")
	s.invalidateStats(ctx)
	s.publish(ctx, events.EventDonorRegistered, donor.ID, events.DonorRegisteredPayload{
		Name:      donor.Name,
		Email:     donor.Email,
		BloodType: donor.BloodType,
		Location:  donor.Location,
	})
	return donor, nil
}

// RegisterRecipient validates and stores a new, active donation request.
func (s *RegistrationService) RegisterRecipient(ctx context.Context, input validation.RecipientInput) (*domain.Recipient, error) {
	if err := validation.ValidateRecipient(input); err != nil {
		return nil, err
	}
	bloodType, _ := domain.ParseBloodType(input.BloodType)
	urgency, _ := domain.ParseUrgency(input.Urgency)

	amount := decimal.Zero
	if raw := strings.TrimSpace(input.AmountNeeded); raw != "" {
		amount, _ = decimal.NewFromString(raw)
	}

	recipient := &domain.Recipient{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		BloodType:    bloodType,
		Hospital:     strings.TrimSpace(input.Hospital),
		Location:     strings.TrimSpace(input.Location),
		Urgency:      urgency,
		AmountNeeded: amount,
		Condition:    strings.TrimSpace(input.Condition),
		Status:       domain.RecipientStatusActive,
	}
	if organ, ok := domain.ParseOrganType(input.OrganType); ok {
		recipient.OrganType = &organ
	}

	if err := s.recipients.Create(ctx, recipient); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.metrics.RecordRegistration("recipient")
	s.invalidateStats(ctx)
	s.publish(ctx, events.EventRecipientRegistered, recipient.ID, events.RecipientRegisteredPayload{
		Name:      recipient.Name,
		Email:     recipient.Email,
		BloodType: recipient.BloodType,
		Hospital:  recipient.Hospital,
		Urgency:   recipient.Urgency,
	})
	return recipient, nil
}

// SetDonorStatus marks a donor available or unavailable.
func (s *RegistrationService) SetDonorStatus(ctx context.Context, donorID string, status domain.DonorStatus) (*domain.Donor, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status must be available or unavailable", map[string]any{"status": status})
	}
	donor, err := s.donors.GetByID(ctx, donorID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("donor", map[string]any{"donor_id": donorID})
		}
		return nil, apperrors.MapError(err)
	}
	if donor.Status == status {
		return donor, nil
	}

	old := donor.Status
	donor.Status = status
	if err := s.donors.Update(ctx, donor); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.invalidateStats(ctx)
	s.publish(ctx, events.EventDonorStatusChanged, donor.ID, events.DonorStatusChangedPayload{
		OldStatus: old,
		NewStatus: status,
	})
	return donor, nil
}

func (s *RegistrationService) invalidateStats(ctx context.Context) {
	if s.stats == nil {
		return
	}
	_ = s.stats.Invalidate(ctx)
}

func (s *RegistrationService) publish(ctx context.Context, eventType events.EventType, subjectID string, payload any) {
	publishEvent(ctx, s.dispatcher, eventType, subjectID, payload)
}

func publishEvent(ctx context.Context, dispatcher events.Dispatcher, eventType events.EventType, subjectID string, payload any) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	})
}
