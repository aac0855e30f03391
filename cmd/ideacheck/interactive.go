package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	appideas "github.com/bryanwahyu/ideacheck/internal/application/ideas"
	"github.com/bryanwahyu/ideacheck/internal/domain/ideas"
)

const prompt = "🚀 Enter your startup idea (or 'file' / 'quit'): "

func newInteractiveCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Prompt for ideas until 'quit' (default command)",
		Long: `Reads one idea per line, validates it, prints the reports and saves the result.

Commands at the prompt:
  file              validate and save every line of ideas.txt
  quit, exit, q     leave`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runInteractive(cmd)
		},
	}
}

func (o *rootOptions) runInteractive(cmd *cobra.Command) error {
	app, err := o.loadApp(cmd.Context())
	if err != nil {
		return err
	}
	s := &session{
		svc:       app.Ideas,
		in:        cmd.InOrStdin(),
		out:       cmd.OutOrStdout(),
		ideasFile: defaultIdeasFile,
	}
	return s.run(cmd.Context())
}

// session is one interactive prompt loop.
type session struct {
	svc       *appideas.Service
	in        io.Reader
	out       io.Writer
	ideasFile string
}

// run loops until quit or end of input. Per-idea failures are printed and the
// loop carries on; only a read error on in ends it with an error.
func (s *session) run(ctx context.Context) error {
	bold := color.New(color.Bold)
	bold.Fprintln(s.out, "💡 Idea Validator - Multi-Idea Mode")
	fmt.Fprintln(s.out, strings.Repeat("=", 40))
	fmt.Fprintf(s.out, "Enter ideas one at a time, or type 'file' to load from %s.\n", s.ideasFile)
	fmt.Fprint(s.out, "Type 'quit' to exit.\n\n")

	scanner := bufio.NewScanner(s.in)
	for {
		fmt.Fprint(s.out, prompt)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			fmt.Fprint(s.out, "\n\n👋 Goodbye!\n")
			return nil
		}
		input := strings.TrimSpace(scanner.Text())

		switch strings.ToLower(input) {
		case "quit", "exit", "q":
			fmt.Fprintln(s.out, "👋 Goodbye!")
			return nil
		case "file":
			s.runFile(ctx)
		default:
			s.runOne(ctx, input)
		}
	}
}

func (s *session) runOne(ctx context.Context, idea string) {
	rec, err := s.svc.ValidateAndSave(ctx, idea)
	if err != nil {
		printError(s.out, err)
		return
	}
	fmt.Fprintln(s.out)
	printResults(s.out, rec.Results)
}

func (s *session) runFile(ctx context.Context) {
	list, err := readIdeas(s.ideasFile)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(s.out, "❌ No '%s' file found.\n", s.ideasFile)
		return
	}
	if err != nil {
		printError(s.out, err)
		return
	}
	fmt.Fprintf(s.out, "📄 Found %d ideas in %s\n\n", len(list), s.ideasFile)

	for _, idea := range list {
		fmt.Fprintf(s.out, "💡 Validating: %s\n", idea)
		if _, err := s.svc.ValidateAndSave(ctx, idea); err != nil {
			printError(s.out, fmt.Errorf("%q: %w", idea, err))
			continue
		}
		fmt.Fprint(s.out, "✅ Done\n\n")
	}
}

// readIdeas returns the trimmed non-blank lines of path.
func readIdeas(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var list []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			list = append(list, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return list, nil
}

func printError(w io.Writer, err error) {
	if errors.Is(err, ideas.ErrBlankInput) {
		fmt.Fprintln(w, color.RedString("❌ %s", ideas.BlankInputMessage))
		return
	}
	fmt.Fprintln(w, color.RedString("❌ Error: %v", err))
}
