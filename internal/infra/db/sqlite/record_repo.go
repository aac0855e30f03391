package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	domain "github.com/bryanwahyu/ideacheck/internal/domain/ideas"
	"github.com/bryanwahyu/ideacheck/internal/infra/db/sqlutil"
)

type RecordRepository struct{ db *sql.DB }

func NewRecordRepository(db *sql.DB) *RecordRepository { return &RecordRepository{db: db} }

func (r *RecordRepository) Migrate(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS validated_ideas (
  seq          INTEGER PRIMARY KEY AUTOINCREMENT,
  id           TEXT NOT NULL UNIQUE,
  idea         TEXT NOT NULL,
  results_json TEXT NOT NULL,
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
	const q = `INSERT INTO validated_ideas (id, idea, results_json, created_at) VALUES (?,?,?,?);`
	if _, err := r.db.ExecContext(ctx, q, row.ID, row.Idea, row.ResultsJSON, row.CreatedAt); err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (r *RecordRepository) Load(ctx context.Context) ([]*domain.ResultRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, idea, results_json, created_at FROM validated_ideas ORDER BY seq ASC;`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	return sqlutil.ScanRecords(rows)
}
