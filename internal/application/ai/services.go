package ai

import (
	"context"
	"strings"

	"github.com/bryanwahyu/ideacheck/internal/domain/ai"
	"github.com/bryanwahyu/ideacheck/internal/domain/ideas"
)

// Advice is the validation result plus the model's critique.
type Advice struct {
	Idea    string                 `json:"idea"`
	Results ideas.ValidationResult `json:"results"`
	Advice  string                 `json:"advice"`
}

type Service struct {
	client   ai.Client
	pipeline *ideas.Pipeline
}

// NewService returns a Service; a nil client yields ai.ErrDisabled from Advise.
func NewService(client ai.Client, pipeline *ideas.Pipeline) *Service {
	return &Service{client: client, pipeline: pipeline}
}

func (s *Service) Enabled() bool { return s != nil && s.client != nil }

func (s *Service) Advise(ctx context.Context, idea string) (*Advice, error) {
	if !s.Enabled() {
		return nil, ai.ErrDisabled
	}
	results, err := s.pipeline.Validate(idea)
	if err != nil {
		return nil, err
	}
	idea = strings.TrimSpace(idea)
	text, err := s.client.Advise(ctx, idea, results)
	if err != nil {
		return nil, err
	}
	return &Advice{Idea: idea, Results: results, Advice: text}, nil
}
