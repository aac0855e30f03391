// Package introspect builds the project summary printed by `ideacheck summary`.
package introspect

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bryanwahyu/ideacheck/internal/domain/ideas"
)

// Entry is one file or directory below the summary root.
type Entry struct {
	Path string
	Dir  bool
	Size int64
}

type Dependency struct {
	Path     string
	Version  string
	Indirect bool
}

// AnalyzerInfo describes one analyzer for the catalogue.
type AnalyzerInfo struct {
	ID       ideas.AnalyzerID
	Name     string
	Summary  string
	Keywords []string
}

type Summary struct {
	Root      string
	Entries   []Entry
	Module    string // empty when no go.mod was found
	GoVersion string
	Deps      []Dependency
	Analyzers []AnalyzerInfo
}

var skipDirs = map[string]bool{
	"vendor":    true,
	"_examples": true,
}

// Build walks root and collects the summary. A missing go.mod is not an error.
func Build(root string) (*Summary, error) {
	s := &Summary{Root: root, Analyzers: Catalogue()}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") || (d.IsDir() && skipDirs[name]) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		e := Entry{Path: filepath.ToSlash(rel), Dir: d.IsDir()}
		if !e.Dir {
			info, err := d.Info()
			if err != nil {
				// file vanished mid-walk
				return nil
			}
			e.Size = info.Size()
		}
		s.Entries = append(s.Entries, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Slice(s.Entries, func(i, j int) bool { return s.Entries[i].Path < s.Entries[j].Path })

	if err := s.readModule(filepath.Join(root, "go.mod")); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Summary) readModule(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read go.mod: %w", err)
	}
	f, err := modfile.Parse(path, data, nil)
	if err != nil {
		return fmt.Errorf("parse go.mod: %w", err)
	}
	if f.Module != nil {
		s.Module = f.Module.Mod.Path
	}
	if f.Go != nil {
		s.GoVersion = f.Go.Version
	}
	for _, r := range f.Require {
		s.Deps = append(s.Deps, Dependency{Path: r.Mod.Path, Version: r.Mod.Version, Indirect: r.Indirect})
	}
	// direct first
	sort.SliceStable(s.Deps, func(i, j int) bool {
		if s.Deps[i].Indirect != s.Deps[j].Indirect {
			return !s.Deps[i].Indirect
		}
		return s.Deps[i].Path < s.Deps[j].Path
	})
	return nil
}

// FileCount returns the number of regular files and their total size.
func (s *Summary) FileCount() (n int, total int64) {
	for _, e := range s.Entries {
		if !e.Dir {
			n++
			total += e.Size
		}
	}
	return n, total
}

var titler = cases.Title(language.English)

// DisplayName turns "market_trend_check" into "Market Trend Check".
func DisplayName(id ideas.AnalyzerID) string {
	return titler.String(strings.ReplaceAll(string(id), "_", " "))
}

// Catalogue lists the analyzers in pipeline order.
func Catalogue() []AnalyzerInfo {
	return []AnalyzerInfo{
		{
			ID:       ideas.AnalyzerMarketTrend,
			Name:     DisplayName(ideas.AnalyzerMarketTrend),
			Summary:  "checks whether the idea mentions a tracked trend",
			Keywords: append([]string(nil), ideas.TrendKeywords...),
		},
		{
			ID:       ideas.AnalyzerPainPoint,
			Name:     DisplayName(ideas.AnalyzerPainPoint),
			Summary:  "checks whether the idea targets a common pain point",
			Keywords: append([]string(nil), ideas.PainPoints...),
		},
		{
			ID:      ideas.AnalyzerUniqueness,
			Name:    DisplayName(ideas.AnalyzerUniqueness),
			Summary: fmt.Sprintf("random originality score %d-%d with feedback", ideas.MinScore, ideas.MaxScore),
		},
	}
}
