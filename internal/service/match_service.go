package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/lifematch-service/internal/cache"
	"github.com/spec-kit/lifematch-service/internal/domain"
	"github.com/spec-kit/lifematch-service/internal/events"
	"github.com/spec-kit/lifematch-service/internal/matcher"
	"github.com/spec-kit/lifematch-service/internal/observability"
	"github.com/spec-kit/lifematch-service/internal/repository"
	apperrors "github.com/spec-kit/lifematch-service/pkg/util/errorutil"
)

// MatchService serves the donor and recipient directories and runs
// compatibility lookups against the stored donor pool.
type MatchService struct {
	donors     repository.DonorRepository
	recipients repository.RecipientRepository
	matches    repository.MatchRepository
	stats      cache.StatsCache
	dispatcher events.Dispatcher
	metrics    *observability.Metrics
}

// MatchDependencies bundles collaborators for the match service.
type MatchDependencies struct {
	DonorRepo     repository.DonorRepository
	RecipientRepo repository.RecipientRepository
	MatchRepo     repository.MatchRepository
	StatsCache    cache.StatsCache
	Dispatcher    events.Dispatcher
	Metrics       *observability.Metrics
}

// NewMatchService constructs the service.
func NewMatchService(deps MatchDependencies) *MatchService {
	return &MatchService{
		donors:     deps.DonorRepo,
		recipients: deps.RecipientRepo,
		matches:    deps.MatchRepo,
		stats:      deps.StatsCache,
		dispatcher: deps.Dispatcher,
		metrics:    deps.Metrics,
	}
}

// ListDonors returns donors matching the filter in registration order.
func (s *MatchService) ListDonors(ctx context.Context, filter repository.DonorFilter) ([]domain.Donor, error) {
	donors, err := s.donors.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return donors, nil
}

// ListRecipients returns recipients matching the filter in registration order.
func (s *MatchService) ListRecipients(ctx context.Context, filter repository.RecipientFilter) ([]domain.Recipient, error) {
	recipients, err := s.recipients.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return recipients, nil
}

// GetDonor loads a donor by ID.
func (s *MatchService) GetDonor(ctx context.Context, id string) (*domain.Donor, error) {
	donor, err := s.donors.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("donor", map[string]any{"donor_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return donor, nil
}

// GetRecipient loads a recipient by ID.
func (s *MatchService) GetRecipient(ctx context.Context, id string) (*domain.Recipient, error) {
	recipient, err := s.recipients.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("recipient", map[string]any{"recipient_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return recipient, nil
}

// FindMatches returns the recipient together with every compatible,
// available donor in the pool.
func (s *MatchService) FindMatches(ctx context.Context, recipientID string) (*domain.Recipient, []domain.Donor, error) {
	recipient, err := s.GetRecipient(ctx, recipientID)
	if err != nil {
		return nil, nil, err
	}
	donors, err := s.FindMatchesForType(ctx, recipient.BloodType)
	if err != nil {
		return nil, nil, err
	}
	return recipient, donors, nil
}

// FindMatchesForType returns compatible, available donors for a recipient
// blood type. Unknown types yield no donors.
func (s *MatchService) FindMatchesForType(ctx context.Context, bloodType domain.BloodType) ([]domain.Donor, error) {
	pool, err := s.donors.List(ctx, repository.DonorFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	donors := matcher.FindCompatibleDonors(bloodType, pool)
	s.metrics.RecordMatchLookup(len(donors))
	return donors, nil
}

// ContactDonor records outreach from a recipient's request to a donor. The
// donor must be available and blood-type compatible.
func (s *MatchService) ContactDonor(ctx context.Context, recipientID, donorID string) (*domain.Match, error) {
	recipient, err := s.GetRecipient(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	donor, err := s.GetDonor(ctx, donorID)
	if err != nil {
		return nil, err
	}
	if !donor.Available() {
		return nil, apperrors.NewConflict("donor unavailable", map[string]any{"donor_id": donorID})
	}
	if !matcher.IsCompatible(donor.BloodType, recipient.BloodType) {
		return nil, apperrors.NewConflict("donor blood type incompatible", map[string]any{
			"donor_blood_type":     donor.BloodType,
			"recipient_blood_type": recipient.BloodType,
		})
	}

	match := &domain.Match{
		ID:          uuid.NewString(),
		RecipientID: recipient.ID,
		DonorID:     donor.ID,
		BloodType:   donor.BloodType,
		Status:      domain.MatchStatusContacted,
	}
	if err := s.matches.Create(ctx, match); err != nil {
		return nil, apperrors.MapError(err)
	}
	publishEvent(ctx, s.dispatcher, events.EventDonorContacted, match.ID, events.DonorContactedPayload{
		MatchID:     match.ID,
		RecipientID: recipient.ID,
		DonorID:     donor.ID,
		DonorName:   donor.Name,
		DonorEmail:  donor.Email,
		Urgency:     recipient.Urgency,
	})
	return match, nil
}

// ListMatches returns outreach records for a recipient.
func (s *MatchService) ListMatches(ctx context.Context, recipientID string) ([]domain.Match, error) {
	if _, err := s.GetRecipient(ctx, recipientID); err != nil {
		return nil, err
	}
	matches, err := s.matches.List(ctx, repository.MatchFilter{RecipientID: &recipientID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return matches, nil
}

// UpdateMatchStatus moves a match between pending, contacted and matched.
func (s *MatchService) UpdateMatchStatus(ctx context.Context, matchID string, status domain.MatchStatus) (*domain.Match, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("status must be pending, contacted or matched", map[string]any{"status": status})
	}
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("match", map[string]any{"match_id": matchID})
		}
		return nil, apperrors.MapError(err)
	}
	if match.Status == status {
		return match, nil
	}

	old := match.Status
	match.Status = status
	if err := s.matches.Update(ctx, match); err != nil {
		return nil, apperrors.MapError(err)
	}
	if s.stats != nil {
		_ = s.stats.Invalidate(ctx)
	}
	publishEvent(ctx, s.dispatcher, events.EventMatchStatusChanged, match.ID, events.MatchStatusChangedPayload{
		OldStatus: old,
		NewStatus: status,
	})
	return match, nil
}
