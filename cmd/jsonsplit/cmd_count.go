package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"jsonsplit/internal/splitter"
)

// countCmd runs only the counting pass
var countCmd = &cobra.Command{
	Use:   "count [input]",
	Short: "Count input lines and show the per-file quota",
	Long: `Reads the input once and reports how many lines it holds and how many
lines each of the configured N output files would receive. Nothing is written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCount,
}

func runCount(cmd *cobra.Command, args []string) error {
	path := cfg.Input.Path
	if len(args) == 1 {
		path = args[0]
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	total, err := splitter.CountLines(ctx, path)
	if err != nil {
		return fmt.Errorf("count %s: %w", path, err)
	}

	quota, err := splitter.ComputeQuota(total, cfg.Output.Files)
	if err != nil {
		return fmt.Errorf("quota for %d files: %w", cfg.Output.Files, err)
	}

	out := cmd.OutOrStdout()
	st := newStyles(out)
	fmt.Fprintln(out, st.Label.Render(formatPlan(total, quota)))
	if rem := total - quota*int64(cfg.Output.Files); rem > 0 {
		fmt.Fprintln(out, st.Muted.Render(fmt.Sprintf("%d remainder lines over %d files", rem, cfg.Output.Files)))
	}
	return nil
}
