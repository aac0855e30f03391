package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	domai "github.com/bryanwahyu/ideacheck/internal/domain/ai"
	"github.com/bryanwahyu/ideacheck/internal/infra/introspect"
	"github.com/bryanwahyu/ideacheck/internal/middleware"
)

func newValidateCmd(o *rootOptions) *cobra.Command {
	var noSave bool
	cmd := &cobra.Command{
		Use:   "validate [idea...]",
		Short: "Validate one idea and save the result",
		Example: `  ideacheck validate "AI tutor that helps students save time"
  ideacheck validate --no-save remote work marketplace`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := o.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			idea := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			if noSave {
				results, err := app.Ideas.Validate(idea)
				if err != nil {
					return err
				}
				printResults(out, results)
				return nil
			}
			rec, err := app.Ideas.ValidateAndSave(cmd.Context(), idea)
			if err != nil {
				return err
			}
			printResults(out, rec.Results)
			fmt.Fprintf(out, "saved as %s\n", rec.ID)
			return nil
		},
	}
	cmd.Flags().BoolVar(&noSave, "no-save", false, "print the reports without storing them")
	return cmd
}

func newBatchCmd(o *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Validate and save every non-blank line of a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := o.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			list, err := readIdeas(file)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "📄 Found %d ideas in %s\n\n", len(list), file)

			saved, err := app.Ideas.ValidateBatch(cmd.Context(), list)
			for _, rec := range saved {
				color.New(color.Bold).Fprintf(out, "💡 %s\n", rec.Idea)
				printResults(out, rec.Results)
			}
			if err != nil {
				return fmt.Errorf("saved %d of %d ideas: %w", len(saved), len(list), err)
			}
			fmt.Fprintf(out, "Saved %d ideas.\n", len(saved))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", defaultIdeasFile, "file with one idea per line")
	return cmd
}

func newHistoryCmd(o *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show saved validation results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := o.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			records, err := app.Ideas.History(cmd.Context(), middleware.ValidateLimit(limit))
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), records)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of most recent records, 0 for all")
	return cmd
}

func newAdviseCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "advise [idea...]",
		Short: "Ask the configured LLM for a critique of an idea",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := o.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			adv, err := app.AI.Advise(cmd.Context(), strings.Join(args, " "))
			if errors.Is(err, domai.ErrDisabled) {
				return fmt.Errorf("%w: set OPENAI_API_KEY or openai.apiKey", err)
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printResults(out, adv.Results)
			color.New(color.FgMagenta, color.Bold).Fprintln(out, "🧠 Advice:")
			fmt.Fprintln(out, adv.Advice)
			return nil
		},
	}
}

func newArchiveCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Upload a snapshot of all saved results to object storage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := o.loadApp(cmd.Context())
			if err != nil {
				return err
			}
			url, err := app.Ideas.Archive(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "📦 archived to %s\n", url)
			return nil
		},
	}
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary [dir]",
		Short: "Print project structure, dependencies and analyzer catalogue",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			s, err := introspect.Build(root)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), s)
		},
	}
}
