package mysql

import (
	"context"
	"database/sql"
	"fmt"

	domain "github.com/bryanwahyu/ideacheck/internal/domain/ideas"
	"github.com/bryanwahyu/ideacheck/internal/infra/db/sqlutil"
)

type RecordRepository struct {
	db *sql.DB
}

func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// Migrate creates the record table if missing.
func (r *RecordRepository) Migrate(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS validated_ideas (
  seq          BIGINT AUTO_INCREMENT PRIMARY KEY,
  id           VARCHAR(64) NOT NULL UNIQUE,
  idea         TEXT NOT NULL,
  results_json JSON NOT NULL,
  created_at   VARCHAR(40) NOT NULL
) CHARACTER SET utf8mb4;`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// Append inserts one record; seq keeps append order
func (r *RecordRepository) Append(ctx context.Context, rec *domain.ResultRecord) error {
	row, err := sqlutil.ToRow(rec)
	if err != nil {
		return err
	}
	const q = `
INSERT INTO validated_ideas (id, idea, results_json, created_at)
VALUES (?,?,?,?);`
	_, err = r.db.ExecContext(ctx, q, row.ID, row.Idea, row.ResultsJSON, row.CreatedAt)
	if isDuplicateKey(err) {
		return fmt.Errorf("record %s already stored: %w", row.ID, err)
	}
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

// Load returns all records in append order
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
