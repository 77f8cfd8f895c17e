package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/maniapool/osu-brackets/internal/bracket"
	"github.com/maniapool/osu-brackets/internal/storage"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// StageSummary counts the links written for one stage
type StageSummary struct {
	Stage   string `json:"stage"`
	Maps    int    `json:"maps"`
	Matches int    `json:"matches"`
}

// SourceSummary describes one processed sheet export or tournament page
type SourceSummary struct {
	Kind   storage.Source        `json:"kind"`
	Name   string                `json:"name"`
	URL    string                `json:"url"`
	Folder string                `json:"folder,omitempty"`
	Rule   string                `json:"rule,omitempty"`
	Stages []StageSummary        `json:"stages"`
	Files  []storage.WrittenFile `json:"files,omitempty"`
	Error  string                `json:"error,omitempty"`
}

// OutputResult contains data to be output
type OutputResult struct {
	RanAt      time.Time        `json:"ran_at"`
	OutDir     string           `json:"out_dir"`
	Sources    []*SourceSummary `json:"sources"`
	MapCount   int              `json:"map_count"`
	MatchCount int              `json:"match_count"`
	Failed     int              `json:"failed"`
}

// NewOutputResult creates an empty result for a run writing into outDir
func NewOutputResult(outDir string) *OutputResult {
	return &OutputResult{
		RanAt:   time.Now().UTC(),
		OutDir:  outDir,
		Sources: make([]*SourceSummary, 0),
	}
}

// summarize builds a source summary from written results
func summarize(kind storage.Source, name, url string, results *bracket.Results) *SourceSummary {
	s := &SourceSummary{
		Kind:   kind,
		Name:   name,
		URL:    url,
		Stages: make([]StageSummary, 0, results.Len()),
	}
	for _, links := range results.Stages() {
		s.Stages = append(s.Stages, StageSummary{
			Stage:   links.Stage,
			Maps:    len(links.Maps),
			Matches: len(links.Matches),
		})
	}
	return s
}

// Add appends a source and updates the totals
func (r *OutputResult) Add(s *SourceSummary) {
	r.Sources = append(r.Sources, s)
	if s.Error != "" {
		r.Failed++
		return
	}
	for _, stage := range s.Stages {
		r.MapCount += stage.Maps
		r.MatchCount += stage.Matches
	}
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if len(result.Sources) == 0 {
		fmt.Fprintln(w, "Nothing to write.")
		return nil
	}

	for _, src := range result.Sources {
		title := src.Name
		if src.Rule != "" {
			title = fmt.Sprintf("%s (%s)", src.Name, src.Rule)
		}
		fmt.Fprintf(w, "\n%s\n", title)
		if verbose {
			fmt.Fprintf(w, "  Source: %s\n", src.URL)
			if src.Folder != "" {
				fmt.Fprintf(w, "  Folder: %s\n", src.Folder)
			}
		}

		if src.Error != "" {
			fmt.Fprintf(w, "  FAILED: %s\n", src.Error)
			continue
		}
		if len(src.Stages) == 0 {
			fmt.Fprintln(w, "  No stages found.")
			continue
		}

		for _, stage := range src.Stages {
			if src.Kind == storage.SourceSheet {
				fmt.Fprintf(w, "  %s: %d maps\n", stage.Stage, stage.Maps)
			} else {
				fmt.Fprintf(w, "  %s: %d maps, %d matches\n", stage.Stage, stage.Maps, stage.Matches)
			}
		}

		if verbose {
			for _, f := range src.Files {
				fmt.Fprintf(w, "    wrote %s (%d rows)\n", f.Path, f.Rows)
			}
		}
	}

	fmt.Fprintf(w, "\nTotal: %d maps, %d matches from %d sources", result.MapCount, result.MatchCount, len(result.Sources))
	if result.Failed > 0 {
		fmt.Fprintf(w, " (%d failed)", result.Failed)
	}
	fmt.Fprintln(w)
	return nil
}
