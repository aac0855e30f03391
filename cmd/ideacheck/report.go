package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/bryanwahyu/ideacheck/internal/domain/ideas"
	"github.com/bryanwahyu/ideacheck/internal/infra/introspect"
)

// printResults writes the reports in analyzer order.
func printResults(w io.Writer, results ideas.ValidationResult) {
	color.New(color.FgGreen, color.Bold).Fprintln(w, "✅ Validation Results:")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	cyan := color.New(color.FgCyan, color.Bold)
	for _, id := range ideas.AnalyzerIDs {
		report, ok := results[id]
		if !ok {
			continue
		}
		cyan.Fprintf(w, "🔧 %s:\n", introspect.DisplayName(id))
		fmt.Fprintf(w, "   %s\n\n", report)
	}
}

func printHistory(w io.Writer, records []*ideas.ResultRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No validated ideas yet.")
		return nil
	}
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			humanize.Time(rec.Timestamp.Time),
			rec.Idea,
			rec.Results[ideas.AnalyzerMarketTrend],
			rec.Results[ideas.AnalyzerPainPoint],
			rec.Results[ideas.AnalyzerUniqueness],
		})
	}
	table := newTable(w)
	table.Header("Saved", "Idea", "Trends", "Pain points", "Originality")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func printSummary(w io.Writer, s *introspect.Summary) error {
	bold := color.New(color.Bold)

	bold.Fprintln(w, "📁 PROJECT STRUCTURE")
	rows := make([][]string, 0, len(s.Entries))
	for _, e := range s.Entries {
		if e.Dir {
			rows = append(rows, []string{e.Path + "/", "dir", "-"})
			continue
		}
		rows = append(rows, []string{e.Path, "file", humanize.IBytes(uint64(e.Size))})
	}
	table := newTable(w)
	table.Header("Path", "Type", "Size")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	n, total := s.FileCount()
	fmt.Fprintf(w, "%s files, %s\n\n", humanize.Comma(int64(n)), humanize.IBytes(uint64(total)))

	bold.Fprintln(w, "📦 DEPENDENCIES")
	if s.Module == "" {
		fmt.Fprintln(w, "❌ go.mod not found")
	} else {
		fmt.Fprintf(w, "module %s (go %s)\n", s.Module, s.GoVersion)
		for _, d := range s.Deps {
			suffix := ""
			if d.Indirect {
				suffix = " (indirect)"
			}
			fmt.Fprintf(w, "  • %s %s%s\n", d.Path, d.Version, suffix)
		}
	}
	fmt.Fprintln(w)

	bold.Fprintln(w, "🔧 ANALYZERS")
	for i, a := range s.Analyzers {
		fmt.Fprintf(w, "  %d. %s (%s)\n", i+1, a.Name, a.ID)
		fmt.Fprintf(w, "     - %s\n", a.Summary)
		if len(a.Keywords) > 0 {
			fmt.Fprintf(w, "     - tracked: %s\n", strings.Join(a.Keywords, ", "))
		}
	}
	return nil
}
