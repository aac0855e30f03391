package prompt

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/bryanwahyu/ideacheck/internal/domain/ideas"
)

// GetSystemPrompt provides strict directions and schema for JSON output.
func GetSystemPrompt() string {
	return `You are a pragmatic startup advisor. You must produce one valid JSON object only (no markdown, no commentary) that follows the schema below. Do not include code fences.

Requirements:
- Output must be a single JSON object.
- verdict is one of: promising, needs-work, weak.
- strengths, risks and next_steps are arrays of short strings (at most 3 items each).
- Use the automated checks as hints only; they are keyword based and the originality score is random.

Schema (example with empty values):
{
  "verdict": "<promising|needs-work|weak>",
  "strengths": ["<string>"],
  "risks": ["<string>"],
  "next_steps": ["<string>"]
}`
}

// GetUserPrompt builds the user message from the idea and the analyzer reports.
func GetUserPrompt(idea string, results ideas.ValidationResult) string {
	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	var b strings.Builder
	fmt.Fprintf(&b, "Startup idea: %s\n\nAutomated checks:\n", idea)
	for _, id := range ids {
		fmt.Fprintf(&b, "- %s: %s\n", id, results[ideas.AnalyzerID(id)])
	}
	b.WriteString("\nRespond with the JSON per schema.")
	return b.String()
}

// Advice matches the schema used by the system prompt.
type Advice struct {
	Verdict   string   `json:"verdict"`
	Strengths []string `json:"strengths"`
	Risks     []string `json:"risks"`
	NextSteps []string `json:"next_steps"`
}

// NormalizeAdvice returns the model output as compact JSON. Output that is
// not a JSON object is wrapped as {"raw": "..."} so callers always get JSON.
func NormalizeAdvice(raw string) string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var a Advice
	if err := json.Unmarshal([]byte(raw), &a); err != nil || a.Verdict == "" {
		b, _ := json.Marshal(map[string]string{"raw": raw})
		return string(b)
	}
	b, _ := json.Marshal(a)
	return string(b)
}
