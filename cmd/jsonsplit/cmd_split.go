package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jsonsplit/internal/config"
	"jsonsplit/internal/splitter"
)

// runSplit performs the two-pass split described by the resolved config.
func runSplit(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		cfg.Input.Path = args[0]
	}

	opts, err := splitOptions(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	logger.Info("Starting split",
		zap.String("input", opts.InputPath),
		zap.String("output_dir", opts.OutputDir),
		zap.Int("files", opts.FileCount),
		zap.Stringer("remainder", opts.Remainder),
	)

	s := splitter.New(opts)
	plan, err := s.Plan(ctx)
	if err != nil {
		return fmt.Errorf("split %s: %w", opts.InputPath, err)
	}

	out := cmd.OutOrStdout()
	st := newStyles(out)
	fmt.Fprintln(out, st.Label.Render(formatPlan(plan.TotalLines, plan.Quota)))

	res, err := splitter.SplitInto(ctx, plan)
	if err != nil {
		return fmt.Errorf("split %s: %w", opts.InputPath, err)
	}

	printSummary(out, st, res)
	logger.Info("Split complete",
		zap.Int64("lines", res.TotalLines),
		zap.Int64("written", res.Written()),
		zap.Int64("dropped", res.Dropped),
	)
	return nil
}

// splitOptions maps the resolved config onto splitter options.
func splitOptions(c *config.Config) (splitter.Options, error) {
	policy, err := splitter.ParseRemainderPolicy(c.Output.Remainder)
	if err != nil {
		return splitter.Options{}, err
	}
	return splitter.Options{
		InputPath: c.Input.Path,
		OutputDir: c.Output.Dir,
		Prefix:    c.Output.Prefix,
		FileCount: c.Output.Files,
		Remainder: policy,
	}, nil
}

func formatPlan(total, quota int64) string {
	return fmt.Sprintf("Total lines: %s, Lines per file: %s", humanize.Comma(total), humanize.Comma(quota))
}

func printSummary(out io.Writer, st styles, res *splitter.Result) {
	var bytes int64
	for _, f := range res.Files {
		bytes += f.Bytes
		if verbose {
			fmt.Fprintln(out, st.Muted.Render(fmt.Sprintf("  %s  %s lines  %s",
				f.Path, humanize.Comma(f.Lines), humanize.Bytes(uint64(f.Bytes)))))
		}
	}

	if res.Dropped > 0 {
		fmt.Fprintln(out, st.Warning.Render(fmt.Sprintf(
			"Dropped %s remainder lines (use --remainder=last to keep them)", humanize.Comma(res.Dropped))))
	}

	fmt.Fprintln(out, st.Success.Render(fmt.Sprintf("JSON file successfully split into %d parts in %s (%s lines, %s)",
		len(res.Files), res.OutputDir, humanize.Comma(res.Written()), humanize.Bytes(uint64(bytes)))))
}
