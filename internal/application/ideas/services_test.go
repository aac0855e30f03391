package ideas

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/ideacheck/internal/application"
	domain "github.com/bryanwahyu/ideacheck/internal/domain/ideas"
)

type memRepo struct {
	mu      sync.Mutex
	records []*domain.ResultRecord
	err     error
}

func (m *memRepo) Append(_ context.Context, rec *domain.ResultRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *memRepo) Load(context.Context) ([]*domain.ResultRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.ResultRecord(nil), m.records...), m.err
}

type fakePublisher struct {
	got []domain.RecordID
	err error
}

func (f *fakePublisher) PublishSaved(_ context.Context, rec *domain.ResultRecord) error {
	f.got = append(f.got, rec.ID)
	return f.err
}

type fakeArchive struct {
	key  string
	data []byte
}

func (f *fakeArchive) Put(_ context.Context, key string, data []byte) (string, error) {
	f.key, f.data = key, data
	return "http://minio.local/bucket/" + key, nil
}

var fixed = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func newService(repo domain.Repository) *Service {
	return &Service{
		Pipeline: domain.NewPipeline(domain.DefaultAnalyzers(rand.New(rand.NewPCG(9, 9)))...),
		Repo:     repo,
		Clock:    application.FixedClock{T: fixed},
	}
}

func TestValidateAndSave(t *testing.T) {
	repo := &memRepo{}
	pub := &fakePublisher{}
	svc := newService(repo)
	svc.Events = pub

	rec, err := svc.ValidateAndSave(context.Background(), "  save time with AI  ")
	require.NoError(t, err)
	assert.Equal(t, "save time with AI", rec.Idea)
	assert.NotEmpty(t, rec.ID)
	assert.True(t, fixed.Equal(rec.Timestamp.Time))
	assert.Len(t, rec.Results, 3)
	require.Len(t, repo.records, 1)
	assert.Same(t, rec, repo.records[0])
	assert.Equal(t, []domain.RecordID{rec.ID}, pub.got)
}

func TestValidateAndSave_BlankInputSkipsStore(t *testing.T) {
	repo := &memRepo{}
	svc := newService(repo)

	rec, err := svc.ValidateAndSave(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrBlankInput)
	assert.Nil(t, rec)
	assert.Empty(t, repo.records)
}

func TestValidateAndSave_PublishFailureIsNotFatal(t *testing.T) {
	repo := &memRepo{}
	svc := newService(repo)
	svc.Events = &fakePublisher{err: errors.New("nats down")}

	_, err := svc.ValidateAndSave(context.Background(), "idea")
	require.NoError(t, err)
	assert.Len(t, repo.records, 1)
}

func TestValidateAndSave_StoreErrorSurfaces(t *testing.T) {
	repo := &memRepo{err: domain.ErrStoreCorrupted}
	_, err := newService(repo).ValidateAndSave(context.Background(), "idea")
	assert.ErrorIs(t, err, domain.ErrStoreCorrupted)
}

func TestValidateBatch_PreservesOrderAndSkipsBlanks(t *testing.T) {
	repo := &memRepo{}
	svc := newService(repo)

	input := []string{"first", "", "  ", "second", "third"}
	for i := 0; i < 20; i++ {
		input = append(input, "bulk idea")
	}
	recs, err := svc.ValidateBatch(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, recs, 23)
	require.Len(t, repo.records, 23)
	assert.Equal(t, "first", repo.records[0].Idea)
	assert.Equal(t, "second", repo.records[1].Idea)
	assert.Equal(t, "third", repo.records[2].Idea)
	for _, r := range recs {
		assert.Len(t, r.Results, 3)
	}
}

func TestHistory_Limit(t *testing.T) {
	repo := &memRepo{}
	svc := newService(repo)
	for _, idea := range []string{"a", "b", "c"} {
		_, err := svc.ValidateAndSave(context.Background(), idea)
		require.NoError(t, err)
	}

	got, err := svc.History(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Idea)
	assert.Equal(t, "c", got[1].Idea)

	all, err := svc.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestArchive(t *testing.T) {
	svc := newService(&memRepo{})
	_, err := svc.Archive(context.Background())
	assert.ErrorIs(t, err, ErrArchiveDisabled)

	arch := &fakeArchive{}
	svc.Archives = arch
	_, err = svc.ValidateAndSave(context.Background(), "health app")
	require.NoError(t, err)

	url, err := svc.Archive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ideas/20250102T030405Z.json", arch.key)
	assert.Contains(t, url, arch.key)

	var snap []domain.ResultRecord
	require.NoError(t, json.Unmarshal(arch.data, &snap))
	require.Len(t, snap, 1)
	assert.Equal(t, "health app", snap[0].Idea)
}

func TestValidateBatch_AppendErrorNamesIdea(t *testing.T) {
	repo := &memRepo{err: domain.ErrStoreCorrupted}
	svc := newService(repo)

	saved, err := svc.ValidateBatch(context.Background(), []string{"first idea", "second idea"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreCorrupted)
	assert.Contains(t, err.Error(), `"first idea"`)
	assert.Empty(t, saved)
}
