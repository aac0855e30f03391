package ideas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bryanwahyu/ideacheck/internal/application"
	domain "github.com/bryanwahyu/ideacheck/internal/domain/ideas"
)

// ErrArchiveDisabled is returned by Archive when no ArchiveStore is wired.
var ErrArchiveDisabled = errors.New("archive store not configured")

// Service implements use-cases untuk validasi ide.
// Validation is safe for concurrent use; saving inherits the Repo's
// writer constraints (see domain.Repository).
type Service struct {
	Pipeline *domain.Pipeline
	Repo     domain.Repository
	Events   domain.EventPublisher // optional
	Archives domain.ArchiveStore   // optional
	Clock    application.Clock
	Logger   *zap.Logger
}

func (s *Service) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Service) now() domain.Timestamp {
	if s.Clock == nil {
		return domain.NewTimestamp(application.SystemClock{}.Now())
	}
	return domain.NewTimestamp(s.Clock.Now())
}

// Validate runs the pipeline only; nothing is persisted.
func (s *Service) Validate(idea string) (domain.ValidationResult, error) {
	return s.Pipeline.Validate(idea)
}

// ValidateAndSave validates idea and appends the record to the repository.
func (s *Service) ValidateAndSave(ctx context.Context, idea string) (*domain.ResultRecord, error) {
	results, err := s.Pipeline.Validate(idea)
	if err != nil {
		return nil, err
	}
	rec := s.newRecord(strings.TrimSpace(idea), results)
	if err := s.save(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ValidateBatch validates every non-blank idea. Analysis runs concurrently;
// records are appended one at a time in input order so a single-writer
// store sees a single writer.
func (s *Service) ValidateBatch(ctx context.Context, list []string) ([]*domain.ResultRecord, error) {
	var pending []string
	for _, idea := range list {
		if idea = strings.TrimSpace(idea); idea != "" {
			pending = append(pending, idea)
		}
	}

	records := make([]*domain.ResultRecord, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, idea := range pending {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results, err := s.Pipeline.Validate(idea)
			if err != nil {
				return fmt.Errorf("validate %q: %w", idea, err)
			}
			records[i] = s.newRecord(idea, results)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, rec := range records {
		if err := s.save(ctx, rec); err != nil {
			return records[:i], fmt.Errorf("save %q: %w", rec.Idea, err)
		}
	}
	return records, nil
}

// History returns the last limit records, oldest first. limit <= 0 returns all.
func (s *Service) History(ctx context.Context, limit int) ([]*domain.ResultRecord, error) {
	all, err := s.Repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

// Archive uploads a JSON snapshot of the whole collection and returns its URL.
func (s *Service) Archive(ctx context.Context) (string, error) {
	if s.Archives == nil {
		return "", ErrArchiveDisabled
	}
	all, err := s.Repo.Load(ctx)
	if err != nil {
		return "", err
	}
	if all == nil {
		all = []*domain.ResultRecord{}
	}
	data, err := json.MarshalIndent(all, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	key := fmt.Sprintf("ideas/%s.json", s.now().UTC().Format("20060102T150405Z"))
	url, err := s.Archives.Put(ctx, key, data)
	if err != nil {
		return "", fmt.Errorf("upload snapshot: %w", err)
	}
	s.log().Info("archive uploaded", zap.String("key", key), zap.Int("records", len(all)))
	return url, nil
}

func (s *Service) newRecord(idea string, results domain.ValidationResult) *domain.ResultRecord {
	return &domain.ResultRecord{
		ID:        domain.RecordID(uuid.New().String()),
		Idea:      idea,
		Results:   results,
		Timestamp: s.now(),
	}
}

func (s *Service) save(ctx context.Context, rec *domain.ResultRecord) error {
	if err := s.Repo.Append(ctx, rec); err != nil {
		return fmt.Errorf("append record: %w", err)
	}
	s.log().Debug("record saved", zap.String("id", string(rec.ID)))

	if s.Events != nil {
		// publish gagal tidak membatalkan penyimpanan
		if err := s.Events.PublishSaved(ctx, rec); err != nil {
			s.log().Warn("publish saved event failed", zap.String("id", string(rec.ID)), zap.Error(err))
		}
	}
	return nil
}
