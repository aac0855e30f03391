package ideas

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// TrendKeywords are checked case-insensitively, in this order.
var TrendKeywords = []string{"AI", "sustainability", "remote work", "health", "education"}

// PainPoints are matched against the lower-cased idea, in this order.
var PainPoints = []string{"save time", "reduce cost", "improve health", "boost productivity"}

const (
	MinScore = 1
	MaxScore = 10
)

// Matching below is plain substring search: "AI" also hits "wailing" or "sail".
// Callers depending on whole-word semantics must not rely on these analyzers.

// TrendMatcher reports which hot trends an idea mentions.
type TrendMatcher struct{}

func (TrendMatcher) ID() AnalyzerID { return AnalyzerMarketTrend }

func (TrendMatcher) Analyze(idea string) string {
	lower := strings.ToLower(idea)
	var matches []string
	for _, kw := range TrendKeywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matches = append(matches, kw)
		}
	}
	if len(matches) == 0 {
		return "No current trend matches found."
	}
	return "The idea matches these hot trends: " + strings.Join(matches, ", ")
}

// PainPointMatcher reports which customer pain points an idea targets.
type PainPointMatcher struct{}

func (PainPointMatcher) ID() AnalyzerID { return AnalyzerPainPoint }

func (PainPointMatcher) Analyze(idea string) string {
	lower := strings.ToLower(idea)
	var matches []string
	for _, p := range PainPoints {
		if strings.Contains(lower, p) {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		return "No clear pain points detected."
	}
	return "Targets pain points: " + strings.Join(matches, ", ")
}

// UniquenessScorer draws an originality score unrelated to the idea text.
// It is safe for concurrent use.
type UniquenessScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniquenessScorer uses rng for every draw; nil seeds a dedicated source from the clock.
func NewUniquenessScorer(rng *rand.Rand) *UniquenessScorer {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return &UniquenessScorer{rng: rng}
}

func (s *UniquenessScorer) ID() AnalyzerID { return AnalyzerUniqueness }

func (s *UniquenessScorer) Analyze(string) string {
	return ScoreMessage(s.Score())
}

// Score returns a uniform integer in [MinScore, MaxScore].
func (s *UniquenessScorer) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MinScore + s.rng.IntN(MaxScore-MinScore+1)
}

// ScoreMessage renders the tier message for score.
func ScoreMessage(score int) string {
	switch {
	case score > 7:
		return fmt.Sprintf("Originality Score: %d/10 — Possibly disruptive!", score)
	case score > 4:
		return fmt.Sprintf("Originality Score: %d/10 — Competitive market likely.", score)
	default:
		return fmt.Sprintf("Originality Score: %d/10 — Consider differentiating more.", score)
	}
}

// DefaultAnalyzers returns the three analyzers in pipeline order.
func DefaultAnalyzers(rng *rand.Rand) []Analyzer {
	return []Analyzer{TrendMatcher{}, PainPointMatcher{}, NewUniquenessScorer(rng)}
}
