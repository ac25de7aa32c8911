package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lifematch-service/internal/domain"
)

// MatchFilter narrows match listings.
type MatchFilter struct {
	RecipientID *string
	DonorID     *string
	Status      *domain.MatchStatus
}

// MatchRepository encapsulates persistence of donor outreach records.
type MatchRepository interface {
	Create(ctx context.Context, match *domain.Match) error
	Update(ctx context.Context, match *domain.Match) error
	GetByID(ctx context.Context, id string) (*domain.Match, error)
	List(ctx context.Context, filter MatchFilter) ([]domain.Match, error)
	Count(ctx context.Context, filter MatchFilter) (int, error)
}

type matchRepository struct {
	pool *pgxpool.Pool
}

// NewMatchRepository returns a Postgres-backed implementation.
func NewMatchRepository(pool *pgxpool.Pool) MatchRepository {
	return &matchRepository{pool: pool}
}

const matchColumns = `id, recipient_id, donor_id, blood_type, status, created_at, updated_at`

func (r *matchRepository) Create(ctx context.Context, match *domain.Match) error {
	const query = `
        INSERT INTO matches (id, recipient_id, donor_id, blood_type, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		match.ID,
		match.RecipientID,
		match.DonorID,
		match.BloodType,
		match.Status,
	).Scan(&match.CreatedAt, &match.UpdatedAt)
}

func (r *matchRepository) Update(ctx context.Context, match *domain.Match) error {
	if _, err := uuid.Parse(match.ID); err != nil {
		return pgx.ErrNoRows
	}
	return r.pool.QueryRow(ctx,
		`UPDATE matches SET status=$1, updated_at=NOW() WHERE id=$2 RETURNING updated_at`,
		match.Status, match.ID,
	).Scan(&match.UpdatedAt)
}

func (r *matchRepository) GetByID(ctx context.Context, id string) (*domain.Match, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, pgx.ErrNoRows
	}
	var match domain.Match
	if err := r.pool.QueryRow(ctx, `SELECT `+matchColumns+` FROM matches WHERE id=$1`, id).Scan(
		&match.ID,
		&match.RecipientID,
		&match.DonorID,
		&match.BloodType,
		&match.Status,
		&match.CreatedAt,
		&match.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *matchRepository) List(ctx context.Context, filter MatchFilter) ([]domain.Match, error) {
	where, args := matchWhere(filter)
	rows, err := r.pool.Query(ctx, `SELECT `+matchColumns+` FROM matches WHERE `+where+` ORDER BY seq ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Match{}
	for rows.Next() {
		var match domain.Match
		if err := rows.Scan(
			&match.ID,
			&match.RecipientID,
			&match.DonorID,
			&match.BloodType,
			&match.Status,
			&match.CreatedAt,
			&match.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, match)
	}
	return result, rows.Err()
}

func (r *matchRepository) Count(ctx context.Context, filter MatchFilter) (int, error) {
	where, args := matchWhere(filter)
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM matches WHERE `+where, args...).Scan(&count)
	return count, err
}

func matchWhere(filter MatchFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.RecipientID != nil {
		args = append(args, *filter.RecipientID)
		clauses = append(clauses, fmt.Sprintf("recipient_id=$%d", len(args)))
	}
	if filter.DonorID != nil {
		args = append(args, *filter.DonorID)
		clauses = append(clauses, fmt.Sprintf("donor_id=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}
