package bootstrap

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appideas "github.com/bryanwahyu/ideacheck/internal/application/ideas"
	"github.com/bryanwahyu/ideacheck/internal/config"
	"github.com/bryanwahyu/ideacheck/internal/infra/db/jsonfile"
	"github.com/bryanwahyu/ideacheck/internal/infra/db/sqlite"
)

func newTestApp(t *testing.T, driver, path string) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Store.Driver = driver
	cfg.Store.Path = path

	a, err := New(context.Background(), cfg, zap.NewNop(), rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestNew_FileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ideas.json")
	a := newTestApp(t, config.DriverFile, path)

	store, ok := a.Ideas.Repo.(*jsonfile.Store)
	require.True(t, ok)
	assert.Equal(t, path, store.Path())
	assert.Contains(t, a.Checkers, "store")
	assert.Nil(t, a.Ideas.Events)
	assert.Nil(t, a.Ideas.Archives)
	assert.False(t, a.AI.Enabled())

	_, err := a.Ideas.Archive(context.Background())
	assert.ErrorIs(t, err, appideas.ErrArchiveDisabled)
}

func TestNew_SQLiteStore(t *testing.T) {
	a := newTestApp(t, config.DriverSQLite, filepath.Join(t.TempDir(), "ideas.db"))

	_, ok := a.Ideas.Repo.(*sqlite.RecordRepository)
	require.True(t, ok)
	require.NoError(t, a.Checkers["database"].Check(context.Background()))

	ctx := context.Background()
	rec, err := a.Ideas.ValidateAndSave(ctx, "remote work tools that save time")
	require.NoError(t, err)

	got, err := a.Ideas.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec.ID, got[0].ID)
}

func TestNew_OpenAIEnablesAdvisor(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Path = filepath.Join(t.TempDir(), "ideas.json")
	cfg.OpenAI.APIKey = "sk-test"

	a, err := New(context.Background(), cfg, zap.NewNop(), nil)
	require.NoError(t, err)
	defer a.Close()
	assert.True(t, a.AI.Enabled())
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Driver = "cassandra"
	_, err := New(context.Background(), cfg, zap.NewNop(), nil)
	assert.ErrorContains(t, err, "unknown store driver")
}
