//go:build integration

package repository_test

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"

	"github.com/spec-kit/lifematch-service/internal/domain"
	"github.com/spec-kit/lifematch-service/internal/persistence"
	"github.com/spec-kit/lifematch-service/internal/repository"
)

type PostgresRepositorySuite struct {
	suite.Suite
	container  *tcpostgres.PostgresContainer
	pool       *pgxpool.Pool
	donors     repository.DonorRepository
	recipients repository.RecipientRepository
	matches    repository.MatchRepository
}

func TestPostgresRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresRepositorySuite))
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "migrations")
}

func (s *PostgresRepositorySuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("lifematch"),
		tcpostgres.WithUsername("lifematch"),
		tcpostgres.WithPassword("lifematch"),
		tcpostgres.BasicWaitStrategies(),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.pool, err = pgxpool.New(ctx, dsn)
	s.Require().NoError(err)
	s.Require().NoError(persistence.RunMigrations(ctx, s.pool, migrationsDir(), zap.NewNop()))

	s.donors = repository.NewDonorRepository(s.pool)
	s.recipients = repository.NewRecipientRepository(s.pool)
	s.matches = repository.NewMatchRepository(s.pool)
}

func (s *PostgresRepositorySuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PostgresRepositorySuite) SetupTest() {
	_, err := s.pool.Exec(context.Background(), "TRUNCATE matches, donors, recipients")
	s.Require().NoError(err)
}

func (s *PostgresRepositorySuite) newDonor(name string, bt domain.BloodType, status domain.DonorStatus, location string) *domain.Donor {
	organ := domain.OrganType("Kidney")
	last := time.Now().Add(-90 * 24 * time.Hour).UTC().Truncate(time.Second)
	return &domain.Donor{
		ID:            uuid.NewString(),
		Name:          name,
		Email:         "donor@example.com",
		Phone:         "5550100",
		BloodType:     bt,
		City:          "New York",
		State:         "NY",
		Location:      location,
		DonationTypes: []domain.DonationType{domain.DonationTypeBlood, domain.DonationTypeOrgan},
		OrganType:     &organ,
		Status:        status,
		LastDonation:  &last,
	}
}

func (s *PostgresRepositorySuite) TestDonorRoundTripAndFilters() {
	ctx := context.Background()
	first := s.newDonor("first", domain.BloodTypeONeg, domain.DonorStatusAvailable, "New York, NY")
	second := s.newDonor("second", domain.BloodTypeAPos, domain.DonorStatusUnavailable, "Los Angeles, CA")
	s.Require().NoError(s.donors.Create(ctx, first))
	s.Require().NoError(s.donors.Create(ctx, second))
	s.False(first.RegisteredAt.IsZero())

	found, err := s.donors.GetByID(ctx, first.ID)
	s.Require().NoError(err)
	s.Equal(first.DonationTypes, found.DonationTypes)
	s.Require().NotNil(found.OrganType)
	s.Equal(domain.OrganType("Kidney"), *found.OrganType)

	status := domain.DonorStatusAvailable
	list, err := s.donors.List(ctx, repository.DonorFilter{Status: &status, Location: "york"})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(first.ID, list[0].ID)

	all, err := s.donors.List(ctx, repository.DonorFilter{})
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal("first", all[0].Name)
	s.Equal("second", all[1].Name)

	second.Status = domain.DonorStatusAvailable
	s.Require().NoError(s.donors.Update(ctx, second))
	count, err := s.donors.Count(ctx, repository.DonorFilter{Status: &status})
	s.Require().NoError(err)
	s.Equal(2, count)

	_, err = s.donors.GetByID(ctx, "not-a-uuid")
	s.ErrorIs(err, pgx.ErrNoRows)
	_, err = s.donors.GetByID(ctx, uuid.NewString())
	s.ErrorIs(err, pgx.ErrNoRows)
}

func (s *PostgresRepositorySuite) TestRecipientAndMatchRoundTrip() {
	ctx := context.Background()
	donor := s.newDonor("donor", domain.BloodTypeONeg, domain.DonorStatusAvailable, "Boston, MA")
	s.Require().NoError(s.donors.Create(ctx, donor))

	recipient := &domain.Recipient{
		ID:           uuid.NewString(),
		Name:         "John Smith",
		Email:        "john@example.com",
		Phone:        "5550101",
		BloodType:    domain.BloodTypeAPos,
		Hospital:     "City General Hospital",
		Location:     "Boston, MA",
		Urgency:      domain.UrgencyCritical,
		AmountNeeded: decimal.RequireFromString("2.50"),
		Status:       domain.RecipientStatusActive,
	}
	s.Require().NoError(s.recipients.Create(ctx, recipient))

	found, err := s.recipients.GetByID(ctx, recipient.ID)
	s.Require().NoError(err)
	s.True(recipient.AmountNeeded.Equal(found.AmountNeeded))

	critical := domain.UrgencyCritical
	count, err := s.recipients.Count(ctx, repository.RecipientFilter{Urgency: &critical})
	s.Require().NoError(err)
	s.Equal(1, count)

	match := &domain.Match{
		ID:          uuid.NewString(),
		RecipientID: recipient.ID,
		DonorID:     donor.ID,
		BloodType:   donor.BloodType,
		Status:      domain.MatchStatusContacted,
	}
	s.Require().NoError(s.matches.Create(ctx, match))
	match.Status = domain.MatchStatusMatched
	s.Require().NoError(s.matches.Update(ctx, match))

	got, err := s.matches.GetByID(ctx, match.ID)
	s.Require().NoError(err)
	s.Equal(domain.MatchStatusMatched, got.Status)

	list, err := s.matches.List(ctx, repository.MatchFilter{RecipientID: &recipient.ID})
	s.Require().NoError(err)
	s.Len(list, 1)
}
