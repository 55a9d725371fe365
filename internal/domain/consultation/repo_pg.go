package consultation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickmed/quickmed/internal/platform/apperr"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, rec *Record) error {
	query := `
		INSERT INTO consultation_record (id, user_id, symptoms, diagnosis,
			treatment, medications, home_remedies, file_analysis, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.UserID, rec.Symptoms, rec.Diagnosis,
		rec.Treatment, rec.Medications, rec.HomeRemedies, rec.FileAnalysis, rec.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperr.New(apperr.KindNotFound, "user not found")
		}
		return fmt.Errorf("insert consultation record: %w", err)
	}
	return nil
}

func (r *PgRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Record, error) {
	query := `
		SELECT id, user_id, symptoms, diagnosis, treatment, medications,
			home_remedies, file_analysis, created_at
		FROM consultation_record
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list consultation records: %w", err)
	}
	defer rows.Close()

	records := make([]*Record, 0)
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Symptoms, &rec.Diagnosis,
			&rec.Treatment, &rec.Medications, &rec.HomeRemedies, &rec.FileAnalysis,
			&rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan consultation record: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate consultation records: %w", err)
	}
	return records, nil
}

func (r *PgRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM consultation_record WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count consultation records: %w", err)
	}
	return total, nil
}
