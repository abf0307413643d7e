package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jsonsplit/internal/config"
	"jsonsplit/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	inputPath  string
	outputDir  string
	prefix     string
	fileCount  int
	remainder  string

	// Resolved configuration
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "jsonsplit [input]",
	Short: "Split a newline-delimited JSON file into N equal parts",
	Long: `jsonsplit partitions one large newline-delimited JSON file into a fixed
number of smaller files holding the same number of lines each.

The input is read twice: once to count lines and once to copy them into
<prefix>1.json .. <prefix>N.json inside the output directory. Records are
copied byte for byte and never parsed.

Lines left over when the count does not divide evenly are dropped unless
--remainder=last is given, which appends them to the final file.

Configuration precedence: defaults < --config YAML < JSONSPLIT_* env < flags.`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: runSplit,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVarP(&configPath, "config", "c", "", "YAML config file")
	pf.StringVarP(&inputPath, "input", "i", "", "Input file (.json, .gz, .zst, .lz4)")
	pf.StringVarP(&outputDir, "output-dir", "o", "", "Directory for the output files")
	pf.StringVarP(&prefix, "prefix", "p", "", "Output file name prefix")
	pf.IntVarP(&fileCount, "files", "n", 0, "Number of output files")
	pf.StringVar(&remainder, "remainder", "", "What to do with leftover lines: drop, last")

	rootCmd.AddCommand(countCmd, configCmd)
}

// setup resolves the configuration and initializes logging for every command.
func setup(cmd *cobra.Command, args []string) error {
	resolved, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg = resolved

	logger, err = logging.Initialize(cfg.Logging, verbose)
	if err != nil {
		return err
	}
	logging.BootDebug("Resolved config: input=%s output=%s prefix=%q files=%d remainder=%s",
		cfg.Input.Path, cfg.Output.Dir, cfg.Output.Prefix, cfg.Output.Files, cfg.Output.Remainder)
	return nil
}

// resolveConfig loads the YAML file and env overrides, then applies any flag
// the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		c.Input.Path = inputPath
	}
	if flags.Changed("output-dir") {
		c.Output.Dir = outputDir
	}
	if flags.Changed("prefix") {
		c.Output.Prefix = prefix
	}
	if flags.Changed("files") {
		c.Output.Files = fileCount
	}
	if flags.Changed("remainder") {
		c.Output.Remainder = remainder
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
