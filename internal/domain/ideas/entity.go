package ideas

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// RecordID identifier type
type RecordID string

// AnalyzerID is the stable key an analyzer's report is stored under.
type AnalyzerID string

const (
	AnalyzerMarketTrend AnalyzerID = "market_trend_check"
	AnalyzerPainPoint   AnalyzerID = "pain_point_matcher"
	AnalyzerUniqueness  AnalyzerID = "uniqueness_scorer"
)

// AnalyzerIDs lists every analyzer in pipeline order.
var AnalyzerIDs = []AnalyzerID{AnalyzerMarketTrend, AnalyzerPainPoint, AnalyzerUniqueness}

// ValidationResult maps analyzer id to its report.
type ValidationResult map[AnalyzerID]string

// ResultRecord is one persisted validation. Records are append-only.
type ResultRecord struct {
	ID        RecordID         `json:"id,omitempty"`
	Idea      string           `json:"idea"`
	Results   ValidationResult `json:"results"`
	Timestamp Timestamp        `json:"timestamp"`
}

// Timestamp serializes as RFC 3339 and also reads the offset-less
// ISO-8601 form written by older validated_ideas.json files.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp { return Timestamp{Time: t} }

func (t Timestamp) String() string { return t.Time.Format(time.RFC3339Nano) }

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTimestamp accepts RFC 3339 and offset-less ISO-8601 (read as local time).
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		var (
			v   time.Time
			err error
		)
		if layout == time.RFC3339Nano {
			v, err = time.Parse(layout, s)
		} else {
			v, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return Timestamp{Time: v}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("invalid timestamp %q", s)
}
