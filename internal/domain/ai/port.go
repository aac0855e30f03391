package ai

import (
	"context"

	"github.com/bryanwahyu/ideacheck/internal/domain/ideas"
)

// Client gives a free-text critique of an idea given the analyzer reports.
type Client interface {
	Advise(ctx context.Context, idea string, results ideas.ValidationResult) (string, error)
}
