package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/maniapool/osu-brackets/internal/bracket"
	"github.com/maniapool/osu-brackets/internal/config"
	"github.com/maniapool/osu-brackets/internal/logger"
	"github.com/maniapool/osu-brackets/internal/scraper"
	"github.com/maniapool/osu-brackets/internal/storage"
)

type wikiOptions struct {
	tournaments     string
	url             string
	rule            string
	continueOnError bool
}

func newWikiCmd(opts *options) *cobra.Command {
	wo := &wikiOptions{}

	cmd := &cobra.Command{
		Use:   "wiki",
		Short: "Scrape osu! wiki tournament pages into per-stage map and match CSVs",
		Long: `Scrapes each tournament page in the tournament list (or a single --url), groups
beatmapset and match links under the stage heading they follow, applies the
tournament's trim rule to the maps and writes one folder per tournament.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWiki(cmd.Context(), opts, wo)
		},
	}

	cmd.Flags().StringVar(&wo.tournaments, "tournaments", opts.env.Tournaments, "YAML tournament list (default: built-in list, or env: OSU_BRACKETS_TOURNAMENTS)")
	cmd.Flags().StringVar(&wo.url, "url", "", "Scrape a single tournament page instead of the list")
	cmd.Flags().StringVar(&wo.rule, "rule", "", "Trim rule for --url (default keep_all)")
	cmd.Flags().BoolVar(&wo.continueOnError, "continue-on-error", false, "Log failed tournaments and keep going")
	cmd.MarkFlagsMutuallyExclusive("tournaments", "url")

	return cmd
}

// wikiTargets resolves the tournaments to scrape from the flags
func wikiTargets(wo *wikiOptions) ([]config.Tournament, error) {
	if wo.url == "" {
		if wo.rule != "" {
			return nil, fmt.Errorf("--rule requires --url")
		}
		return config.LoadTournaments(wo.tournaments)
	}

	target := config.Tournament{URL: wo.url, Rule: wo.rule}
	if err := target.Validate(); err != nil {
		return nil, err
	}
	return []config.Tournament{target}, nil
}

func runWiki(ctx context.Context, opts *options, wo *wikiOptions) error {
	targets, err := wikiTargets(wo)
	if err != nil {
		return err
	}

	store, err := storage.New(opts.outDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	catalog, err := opts.openCatalog()
	if err != nil {
		return err
	}
	if catalog != nil {
		defer catalog.Close()
	}

	sc := scraper.New(opts.fetchClient())
	result := NewOutputResult(store.OutDir())

	for _, target := range targets {
		if ctx.Err() != nil {
			break
		}
		summary, err := scrapeOne(ctx, sc, store, catalog, target)
		if err != nil {
			if !wo.continueOnError {
				return err
			}
			if ctx.Err() != nil {
				break
			}
			logger.Error("Tournament failed", logger.Fields{"url": target.URL}, err)
			summary = &SourceSummary{
				Kind:  storage.SourceWiki,
				Name:  target.URL,
				URL:   target.URL,
				Rule:  target.Rule,
				Error: err.Error(),
			}
		}
		result.Add(summary)
	}

	if err := opts.finish(result); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("interrupted after %d of %d tournaments: %w", len(result.Sources), len(targets), err)
	}
	if result.Failed > 0 {
		return fmt.Errorf("%d of %d tournaments failed", result.Failed, len(targets))
	}
	return nil
}

// scrapeOne scrapes, trims, writes and catalogs a single tournament
func scrapeOne(ctx context.Context, sc *scraper.Scraper, store *storage.Storage, catalog *storage.Catalog, target config.Tournament) (*SourceSummary, error) {
	rule, err := target.TrimRule()
	if err != nil {
		return nil, err
	}

	logger.Info("Scraping", logger.Fields{"url": target.URL})
	start := time.Now()
	tour, err := sc.ScrapeTournament(ctx, target.URL)
	if err != nil {
		return nil, fmt.Errorf("scraping %s: %w", target.URL, err)
	}
	logger.RecordTiming("wiki.scrape", time.Since(start))

	trimmed := tour.Trimmed(rule)
	files, err := store.WriteTournament(trimmed)
	if err != nil {
		return nil, fmt.Errorf("writing %s: %w", tour.Name, err)
	}

	if catalog != nil {
		if err := catalog.Record(ctx, storage.SourceWiki, trimmed); err != nil {
			return nil, fmt.Errorf("recording %s in catalog: %w", tour.Name, err)
		}
	}

	folder := storage.TournamentFolder(tour.Name)
	logger.Info("Done", logger.Fields{
		"folder":  folder,
		"stages":  trimmed.Results.Len(),
		"maps":    trimmed.Results.TotalMaps(),
		"matches": trimmed.Results.TotalMatches(),
	})
	logger.IncrCounter("wiki.tournaments")
	logger.AddCounter("wiki.maps", int64(trimmed.Results.TotalMaps()))
	logger.AddCounter("wiki.matches", int64(trimmed.Results.TotalMatches()))

	ruleName := target.Rule
	if ruleName == "" {
		ruleName = bracket.DefaultRule
	}
	summary := summarize(storage.SourceWiki, tour.Name, target.URL, trimmed.Results)
	summary.Folder = folder
	summary.Rule = ruleName
	summary.Files = files
	return summary, nil
}
