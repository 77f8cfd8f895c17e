package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/maniapool/osu-brackets/internal/config"
	"github.com/maniapool/osu-brackets/internal/fetch"
	"github.com/maniapool/osu-brackets/internal/logger"
	"github.com/maniapool/osu-brackets/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// options holds the persistent flags shared by all subcommands
type options struct {
	env config.Env

	outDir    string
	format    string
	sortOrder string
	logLevel  string
	catalog   string
	verbose   bool

	// resolved in setup
	outputFormat OutputFormat
	order        SortOrder
	stdout       io.Writer
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	env, envErr := config.LoadEnv()
	opts := &options{env: env}

	cmd := &cobra.Command{
		Use:   "osu-brackets",
		Short: "Extract osu! tournament mappool and match links into per-stage CSV files",
		Long: `A CLI tool to extract osu!mania tournament bracket data.

The sheet command segments a mappool spreadsheet export by stage and writes one
beatmap CSV per stage. The wiki command scrapes osu! wiki tournament pages and
writes map and match CSVs per stage into one folder per tournament.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			return opts.setup(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.outDir, "out-dir", env.OutDir, "Directory to write CSV files into (or env: OSU_BRACKETS_OUT_DIR)")
	pf.StringVar(&opts.format, "format", "text", "Summary format: text or json")
	pf.StringVar(&opts.sortOrder, "sort", "order", "Stage order in the summary: order, name or maps")
	pf.StringVar(&opts.logLevel, "log-level", env.LogLevel, "Log level: debug, info, warn or error (or env: OSU_BRACKETS_LOG_LEVEL)")
	pf.StringVar(&opts.catalog, "catalog", env.Catalog, "Also record links in this SQLite file (or env: OSU_BRACKETS_CATALOG)")
	pf.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging and file listings")

	cmd.AddCommand(
		newSheetCmd(opts),
		newWikiCmd(opts),
		newRulesCmd(opts),
	)

	return cmd
}

// setup validates the persistent flags and configures logging
func (o *options) setup(cmd *cobra.Command) error {
	o.outputFormat = OutputFormat(strings.ToLower(o.format))
	if o.outputFormat != FormatText && o.outputFormat != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", o.format)
	}

	order, err := parseSortOrder(o.sortOrder)
	if err != nil {
		return err
	}
	o.order = order

	level, err := logger.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	if o.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	o.stdout = cmd.OutOrStdout()
	return nil
}

func (o *options) fetchClient() *fetch.Client {
	return fetch.New(
		fetch.WithTimeout(o.env.HTTPTimeout),
		fetch.WithUserAgent(o.env.UserAgent),
	)
}

// openCatalog returns nil when no catalog was requested
func (o *options) openCatalog() (*storage.Catalog, error) {
	if o.catalog == "" {
		return nil, nil
	}
	catalog, err := storage.OpenCatalog(o.catalog)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	return catalog, nil
}

// finish sorts and prints the summary, then logs run metrics
func (o *options) finish(result *OutputResult) error {
	for _, src := range result.Sources {
		sortStages(src.Stages, o.order)
	}
	if err := WriteOutput(o.stdout, result, o.outputFormat, o.verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Debug("Run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})
	return nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
