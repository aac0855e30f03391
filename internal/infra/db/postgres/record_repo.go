package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	domain "github.com/bryanwahyu/ideacheck/internal/domain/ideas"
	"github.com/bryanwahyu/ideacheck/internal/infra/db/sqlutil"
)

type RecordRepository struct{ db *sql.DB }

func NewRecordRepository(db *sql.DB) *RecordRepository { return &RecordRepository{db: db} }

func (r *RecordRepository) Migrate(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS validated_ideas (
  seq          BIGSERIAL PRIMARY KEY,
  id           TEXT NOT NULL UNIQUE,
  idea         TEXT NOT NULL,
  results_json JSONB NOT NULL,
  created_at   TEXT NOT NULL
);`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

func (r *RecordRepository) Append(ctx context.Context, rec *domain.ResultRecord) error {
	row, err := sqlutil.ToRow(rec)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO validated_ideas (id, idea, results_json, created_at)
VALUES ($1,$2,$3::jsonb,$4);`
	_, err = r.db.ExecContext(ctx, q, row.ID, row.Idea, row.ResultsJSON, row.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("record %s already stored: %w", row.ID, err)
	}
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (r *RecordRepository) Load(ctx context.Context) ([]*domain.ResultRecord, error) {
	const q = `
SELECT id, idea, results_json, created_at
FROM validated_ideas
ORDER BY seq ASC;`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	return sqlutil.ScanRecords(rows)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation"
}
