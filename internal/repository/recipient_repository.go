package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/spec-kit/lifematch-service/internal/domain"
)

// RecipientFilter captures dashboard search parameters for recipients.
type RecipientFilter struct {
	BloodType *domain.BloodType
	Urgency   *domain.Urgency
	Status    *domain.RecipientStatus
	Location  string
	Limit     int
	Offset    int
}

// RecipientRepository encapsulates recipient persistence.
type RecipientRepository interface {
	Create(ctx context.Context, recipient *domain.Recipient) error
	Update(ctx context.Context, recipient *domain.Recipient) error
	GetByID(ctx context.Context, id string) (*domain.Recipient, error)
	List(ctx context.Context, filter RecipientFilter) ([]domain.Recipient, error)
	Count(ctx context.Context, filter RecipientFilter) (int, error)
}

type recipientRepository struct {
	pool *pgxpool.Pool
}

// NewRecipientRepository returns a Postgres-backed implementation.
func NewRecipientRepository(pool *pgxpool.Pool) RecipientRepository {
	return &recipientRepository{pool: pool}
}

const recipientColumns = `id, name, email, phone, blood_type, hospital, location, urgency, organ_type,
               amount_needed::text, condition, status, registered_at, updated_at`

func (r *recipientRepository) Create(ctx context.Context, recipient *domain.Recipient) error {
	const query = `
        INSERT INTO recipients (id, name, email, phone, blood_type, hospital, location, urgency,
                                organ_type, amount_needed, condition, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10::numeric,$11,$12)
        RETURNING registered_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		recipient.ID,
		recipient.Name,
		recipient.Email,
		recipient.Phone,
		recipient.BloodType,
		recipient.Hospital,
		recipient.Location,
		recipient.Urgency,
		organToString(recipient.OrganType),
		recipient.AmountNeeded.String(),
		recipient.Condition,
		recipient.Status,
	).Scan(&recipient.RegisteredAt, &recipient.UpdatedAt)
}

func (r *recipientRepository) Update(ctx context.Context, recipient *domain.Recipient) error {
	const query = `
        UPDATE recipients SET name=$1, email=$2, phone=$3, blood_type=$4, hospital=$5, location=$6,
            urgency=$7, organ_type=$8, amount_needed=$9::numeric, condition=$10, status=$11, updated_at=NOW()
        WHERE id=$12
        RETURNING updated_at`

	if _, err := uuid.Parse(recipient.ID); err != nil {
		return pgx.ErrNoRows
	}
	return r.pool.QueryRow(ctx, query,
		recipient.Name,
		recipient.Email,
		recipient.Phone,
		recipient.BloodType,
		recipient.Hospital,
		recipient.Location,
		recipient.Urgency,
		organToString(recipient.OrganType),
		recipient.AmountNeeded.String(),
		recipient.Condition,
		recipient.Status,
		recipient.ID,
	).Scan(&recipient.UpdatedAt)
}

func (r *recipientRepository) GetByID(ctx context.Context, id string) (*domain.Recipient, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, pgx.ErrNoRows
	}
	rows, err := r.pool.Query(ctx, `SELECT `+recipientColumns+` FROM recipients WHERE id=$1`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	recipients, err := scanRecipients(rows)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &recipients[0], nil
}

func (r *recipientRepository) List(ctx context.Context, filter RecipientFilter) ([]domain.Recipient, error) {
	where, args := recipientWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM recipients WHERE %s ORDER BY seq ASC%s`,
		recipientColumns, where, pageClause(filter.Limit, filter.Offset))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecipients(rows)
}

func (r *recipientRepository) Count(ctx context.Context, filter RecipientFilter) (int, error) {
	where, args := recipientWhere(filter)
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM recipients WHERE `+where, args...).Scan(&count)
	return count, err
}

func recipientWhere(filter RecipientFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.BloodType != nil {
		args = append(args, *filter.BloodType)
		clauses = append(clauses, fmt.Sprintf("blood_type=$%d", len(args)))
	}
	if filter.Urgency != nil {
		args = append(args, *filter.Urgency)
		clauses = append(clauses, fmt.Sprintf("urgency=$%d", len(args)))
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

func scanRecipients(rows pgx.Rows) ([]domain.Recipient, error) {
	result := []domain.Recipient{}
	for rows.Next() {
		var (
			recipient domain.Recipient
			organ     *string
			amount    string
		)
		if err := rows.Scan(
			&recipient.ID,
			&recipient.Name,
			&recipient.Email,
			&recipient.Phone,
			&recipient.BloodType,
			&recipient.Hospital,
			&recipient.Location,
			&recipient.Urgency,
			&organ,
			&amount,
			&recipient.Condition,
			&recipient.Status,
			&recipient.RegisteredAt,
			&recipient.UpdatedAt,
		); err != nil {
			return nil, err
		}
		parsed, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount_needed for recipient %s: %w", recipient.ID, err)
		}
		recipient.AmountNeeded = parsed
		recipient.OrganType = organFromString(organ)
		result = append(result, recipient)
	}
	return result, rows.Err()
}
