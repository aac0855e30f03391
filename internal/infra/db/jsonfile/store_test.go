package jsonfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/ideacheck/internal/domain/ideas"
)

func record(i int) *domain.ResultRecord {
	return &domain.ResultRecord{
		ID:   domain.RecordID(fmt.Sprintf("id-%d", i)),
		Idea: fmt.Sprintf("idea %d", i),
		Results: domain.ValidationResult{
			domain.AnalyzerMarketTrend: "No current trend matches found.",
			domain.AnalyzerPainPoint:   "No clear pain points detected.",
			domain.AnalyzerUniqueness:  domain.ScoreMessage(i%10 + 1),
		},
		Timestamp: domain.NewTimestamp(time.Date(2025, 1, 1, 0, 0, i, 0, time.UTC)),
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore(filepath.Join(t.TempDir(), "nested", "ideas.json"))

	empty, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	const n = 5
	for i := 0; i < n; i++ {
		require.NoError(t, s.Append(ctx, record(i)))
	}

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, n)
	for i, rec := range got {
		want := record(i)
		assert.Equal(t, want.ID, rec.ID)
		assert.Equal(t, want.Idea, rec.Idea)
		assert.Equal(t, want.Results, rec.Results)
		assert.True(t, want.Timestamp.Equal(rec.Timestamp.Time))
	}
}

func TestStore_ZeroLengthFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideas.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	s := NewStore(path)
	require.NoError(t, s.Append(context.Background(), record(1)))
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestStore_CorruptedFileIsNotRewritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideas.json")
	garbage := []byte(`[{"idea": "kept", "results": {}`)
	require.NoError(t, os.WriteFile(path, garbage, 0o644))

	s := NewStore(path)
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrStoreCorrupted)

	err = s.Append(context.Background(), record(1))
	assert.ErrorIs(t, err, domain.ErrStoreCorrupted)
	assert.ErrorIs(t, s.Check(context.Background()), domain.ErrStoreCorrupted)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, garbage, after)
}

func TestStore_ReadsLegacyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "validated_ideas.json")
	legacy := `[
    {
        "idea": "An AI-powered fitness coach for remote workers",
        "results": {
            "market_trend_check": "The idea matches these hot trends: AI, remote work",
            "pain_point_matcher": "No clear pain points detected.",
            "uniqueness_scorer": "Originality Score: 6/10 — Competitive market likely."
        },
        "timestamp": "2024-05-04T09:15:27.512345"
    }
]`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	s := NewStore(path)
	require.NoError(t, s.Append(context.Background(), record(2)))

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Empty(t, got[0].ID)
	assert.Equal(t, "Originality Score: 6/10 — Competitive market likely.", got[0].Results[domain.AnalyzerUniqueness])
	assert.Equal(t, 2024, got[0].Timestamp.Year())
	assert.Equal(t, domain.RecordID("id-2"), got[1].ID)
}

func TestNewStore_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultFilename, NewStore("").Path())
}
