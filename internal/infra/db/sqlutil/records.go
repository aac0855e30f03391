// Package sqlutil holds the row mapping shared by the SQL record repositories.
package sqlutil

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	domain "github.com/bryanwahyu/ideacheck/internal/domain/ideas"
)

// Table is the record table name in every dialect.
const Table = "validated_ideas"

// Row is the column form of a ResultRecord.
type Row struct {
	ID          string
	Idea        string
	ResultsJSON string
	CreatedAt   string
}

// ToRow encodes rec; an empty ID gets a fresh UUID written back to rec.
func ToRow(rec *domain.ResultRecord) (Row, error) {
	if rec.ID == "" {
		rec.ID = domain.RecordID(uuid.New().String())
	}
	results := rec.Results
	if results == nil {
		results = domain.ValidationResult{}
	}
	b, err := json.Marshal(results)
	if err != nil {
		return Row{}, fmt.Errorf("marshal results: %w", err)
	}
	return Row{
		ID:          string(rec.ID),
		Idea:        rec.Idea,
		ResultsJSON: string(b),
		CreatedAt:   rec.Timestamp.String(),
	}, nil
}

// ScanRecords reads id, idea, results_json, created_at rows in order.
// Rows that fail to decode surface ErrStoreCorrupted rather than being skipped.
func ScanRecords(rows *sql.Rows) ([]*domain.ResultRecord, error) {
	defer rows.Close()

	var out []*domain.ResultRecord
	for rows.Next() {
		var (
			id, idea, created string
			results           []byte
		)
		if err := rows.Scan(&id, &idea, &results, &created); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		rec := &domain.ResultRecord{ID: domain.RecordID(id), Idea: idea}
		if err := json.Unmarshal(results, &rec.Results); err != nil {
			return nil, fmt.Errorf("%w: record %s results: %v", domain.ErrStoreCorrupted, id, err)
		}
		ts, err := domain.ParseTimestamp(created)
		if err != nil {
			return nil, fmt.Errorf("%w: record %s: %v", domain.ErrStoreCorrupted, id, err)
		}
		rec.Timestamp = ts
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating rows: %w", err)
	}
	return out, nil
}
