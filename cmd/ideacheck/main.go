package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/bryanwahyu/ideacheck/internal/domain/ideas"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		msg := err.Error()
		if errors.Is(err, ideas.ErrBlankInput) {
			msg = ideas.BlankInputMessage
		}
		fmt.Fprintln(os.Stderr, color.RedString("❌ %s", msg))
		os.Exit(1)
	}
}
