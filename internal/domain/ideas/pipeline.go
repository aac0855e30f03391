package ideas

import "strings"

// Pipeline runs every analyzer over one idea.
type Pipeline struct {
	analyzers []Analyzer
}

func NewPipeline(analyzers ...Analyzer) *Pipeline {
	return &Pipeline{analyzers: analyzers}
}

// Validate trims the idea and collects each analyzer's report. Blank input
// fails with ErrBlankInput before any analyzer runs.
func (p *Pipeline) Validate(idea string) (ValidationResult, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, ErrBlankInput
	}
	out := make(ValidationResult, len(p.analyzers))
	for _, a := range p.analyzers {
		out[a.ID()] = a.Analyze(idea)
	}
	return out, nil
}
