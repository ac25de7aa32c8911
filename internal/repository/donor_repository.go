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

// DonorFilter captures dashboard search parameters for donors.
type DonorFilter struct {
	BloodType *domain.BloodType
	Status    *domain.DonorStatus
	Location  string
	Limit     int
	Offset    int
}

// DonorRepository encapsulates donor persistence.
type DonorRepository interface {
	Create(ctx context.Context, donor *domain.Donor) error
	Update(ctx context.Context, donor *domain.Donor) error
	GetByID(ctx context.Context, id string) (*domain.Donor, error)
	List(ctx context.Context, filter DonorFilter) ([]domain.Donor, error)
	Count(ctx context.Context, filter DonorFilter) (int, error)
}

type donorRepository struct {
	pool *pgxpool.Pool
}

// NewDonorRepository returns a Postgres-backed implementation.
func NewDonorRepository(pool *pgxpool.Pool) DonorRepository {
	return &donorRepository{pool: pool}
}

const donorColumns = `id, name, email, phone, blood_type, address, city, state, location,
               donation_types, organ_type, status, last_donation, registered_at, updated_at`

func (r *donorRepository) Create(ctx context.Context, donor *domain.Donor) error {
	const query = `
        INSERT INTO donors (id, name, email, phone, blood_type, address, city, state, location,
                            donation_types, organ_type, status, last_donation)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING registered_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		donor.ID,
		donor.Name,
		donor.Email,
		donor.Phone,
		donor.BloodType,
		donor.Address,
		donor.City,
		donor.State,
		donor.Location,
		donationTypesToStrings(donor.DonationTypes),
		organToString(donor.OrganType),
		donor.Status,
		donor.LastDonation,
	).Scan(&donor.RegisteredAt, &donor.UpdatedAt)
}

func (r *donorRepository) Update(ctx context.Context, donor *domain.Donor) error {
	const query = `
        UPDATE donors SET name=$1, email=$2, phone=$3, blood_type=$4, address=$5, city=$6, state=$7,
            location=$8, donation_types=$9, organ_type=$10, status=$11, last_donation=$12, updated_at=NOW()
        WHERE id=$13
        RETURNING updated_at`

	if _, err := uuid.Parse(donor.ID); err != nil {
		return pgx.ErrNoRows
	}
	return r.pool.QueryRow(ctx, query,
		donor.Name,
		donor.Email,
		donor.Phone,
		donor.BloodType,
		donor.Address,
		donor.City,
		donor.State,
		donor.Location,
		donationTypesToStrings(donor.DonationTypes),
		organToString(donor.OrganType),
		donor.Status,
		donor.LastDonation,
		donor.ID,
	).Scan(&donor.UpdatedAt)
}

func (r *donorRepository) GetByID(ctx context.Context, id string) (*domain.Donor, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, pgx.ErrNoRows
	}
	query := `SELECT ` + donorColumns + ` FROM donors WHERE id=$1`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	donors, err := scanDonors(rows)
	if err != nil {
		return nil, err
	}
	if len(donors) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &donors[0], nil
}

func (r *donorRepository) List(ctx context.Context, filter DonorFilter) ([]domain.Donor, error) {
	where, args := donorWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM donors WHERE %s ORDER BY seq ASC%s`,
		donorColumns, where, pageClause(filter.Limit, filter.Offset))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDonors(rows)
}

func (r *donorRepository) Count(ctx context.Context, filter DonorFilter) (int, error) {
	where, args := donorWhere(filter)
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM donors WHERE `+where, args...).Scan(&count)
	return count, err
}

func donorWhere(filter DonorFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.BloodType != nil {
		args = append(args, *filter.BloodType)
		clauses = append(clauses, fmt.Sprintf("blood_type=$%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if loc := strings.TrimSpace(filter.Location); loc != "" {
		args = append(args, "%"+strings.ToLower(loc)+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(location) LIKE $%d", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func scanDonors(rows pgx.Rows) ([]domain.Donor, error) {
	result := []domain.Donor{}
	for rows.Next() {
		var (
			donor         domain.Donor
			donationTypes []string
			organ         *string
		)
		if err := rows.Scan(
			&donor.ID,
			&donor.Name,
			&donor.Email,
			&donor.Phone,
			&donor.BloodType,
			&donor.Address,
			&donor.City,
			&donor.State,
			&donor.Location,
			&donationTypes,
			&organ,
			&donor.Status,
			&donor.LastDonation,
			&donor.RegisteredAt,
			&donor.UpdatedAt,
		); err != nil {
			return nil, err
		}
		for _, dt := range donationTypes {
			donor.DonationTypes = append(donor.DonationTypes, domain.DonationType(dt))
		}
		donor.OrganType = organFromString(organ)
		result = append(result, donor)
	}
	return result, rows.Err()
}

func pageClause(limit, offset int) string {
	if limit <= 0 {
		return ""
	}
	if offset < 0 {
		offset = 0
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
}

func donationTypesToStrings(types []domain.DonationType) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}

func organToString(o *domain.OrganType) *string {
	if o == nil {
		return nil
	}
	s := string(*o)
	return &s
}

func organFromString(s *string) *domain.OrganType {
	if s == nil {
		return nil
	}
	o := domain.OrganType(*s)
	return &o
}
