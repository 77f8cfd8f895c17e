package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/maniapool/osu-brackets/internal/bracket"
	"github.com/maniapool/osu-brackets/internal/logger"
	"github.com/maniapool/osu-brackets/internal/sheet"
	"github.com/maniapool/osu-brackets/internal/storage"
)

type sheetOptions struct {
	input      string
	url        string
	saveExport string
	idColumn   int
}

func newSheetCmd(opts *options) *cobra.Command {
	so := &sheetOptions{}

	cmd := &cobra.Command{
		Use:   "sheet",
		Short: "Split a mappool spreadsheet export into per-stage beatmap CSVs",
		Long: `Reads a mappool spreadsheet CSV export (a local file, or downloaded from the
sheet's export URL), assigns each row to the most recent stage label above it and
writes <Stage>_maps.csv with one beatmap link per numeric ID.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSheet(cmd.Context(), opts, so)
		},
	}

	cmd.Flags().StringVar(&so.input, "input", "", "Local CSV export to read instead of downloading")
	cmd.Flags().StringVar(&so.url, "url", "", "Sheet CSV export URL (default: env OSU_BRACKETS_SHEET_URL or the community sheet)")
	cmd.Flags().StringVar(&so.saveExport, "save-export", "", "Keep a copy of the downloaded export under this name")
	cmd.Flags().IntVar(&so.idColumn, "id-column", opts.env.SheetIDColumn, "Zero-based column holding beatmap IDs (or env: OSU_BRACKETS_SHEET_ID_COLUMN)")
	cmd.MarkFlagsMutuallyExclusive("input", "url")
	cmd.MarkFlagsMutuallyExclusive("input", "save-export")

	return cmd
}

func runSheet(ctx context.Context, opts *options, so *sheetOptions) error {
	store, err := storage.New(opts.outDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	var data []byte
	source := so.input
	if so.input != "" {
		data, err = os.ReadFile(so.input)
		if err != nil {
			return fmt.Errorf("reading sheet export: %w", err)
		}
	} else {
		source = so.url
		if source == "" {
			source = opts.env.SheetURL
		}
		logger.Info("Downloading sheet export", logger.Fields{"url": source})
		data, err = sheet.Fetch(ctx, opts.fetchClient(), source)
		if err != nil {
			return err
		}
		if so.saveExport != "" {
			path, err := store.WriteRaw(so.saveExport, data)
			if err != nil {
				return err
			}
			logger.Info("Saved sheet export", logger.Fields{"path": path})
		}
	}

	results, err := sheet.Parse(bytes.NewReader(data), so.idColumn)
	if err != nil {
		return fmt.Errorf("parsing sheet export: %w", err)
	}
	if results.Len() == 0 {
		logger.Warn("No stage rows with beatmap IDs found", logger.Fields{
			"source":    source,
			"id_column": so.idColumn,
		})
	}

	files, err := store.WriteSheet(results)
	if err != nil {
		return fmt.Errorf("writing stage files: %w", err)
	}
	for _, f := range files {
		logger.Info("Wrote stage file", logger.Fields{"path": f.Path, "maps": f.Rows})
	}
	logger.AddCounter("sheet.maps", int64(results.TotalMaps()))

	catalog, err := opts.openCatalog()
	if err != nil {
		return err
	}
	if catalog != nil {
		defer catalog.Close()
		t := &bracket.Tournament{Name: "sheet", SourceURL: source, Results: results}
		if err := catalog.Record(ctx, storage.SourceSheet, t); err != nil {
			return fmt.Errorf("recording catalog: %w", err)
		}
	}

	result := NewOutputResult(store.OutDir())
	summary := summarize(storage.SourceSheet, "Spreadsheet export", source, results)
	summary.Files = files
	result.Add(summary)

	return opts.finish(result)
}
