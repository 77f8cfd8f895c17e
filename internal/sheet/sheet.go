// Package sheet segments a mappool spreadsheet export into per-stage beatmap links.
//
// The export is a headerless CSV where stage labels ("Qualifiers", "Round of 16",
// ...) appear as loose rows above the maps that belong to them. Each row that names
// a stage switches the current stage; each row with a numeric beatmap ID in the ID
// column adds a beatmap link to the current stage.
package sheet

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/maniapool/osu-brackets/internal/bracket"
	"github.com/maniapool/osu-brackets/internal/fetch"
	"github.com/maniapool/osu-brackets/internal/logger"
)

const (
	// ExportURL is the CSV export of the community mappool sheet
	ExportURL = "https://docs.google.com/spreadsheets/d/1Zf9f0z_r7Nx8-y9bY3Z0tWhBK6nuM8bz3Cu5XYNjvwI/export?format=csv&gid=122027575"

	// DefaultIDColumn is the zero-based column holding beatmap IDs (column L)
	DefaultIDColumn = 11
)

// Fetch downloads a spreadsheet CSV export
func Fetch(ctx context.Context, client *fetch.Client, url string) ([]byte, error) {
	data, err := client.GetBytes(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("downloading sheet export: %w", err)
	}
	return data, nil
}

// Parse reads a sheet export and collects beatmap links per stage.
// Rows before the first stage label are ignored.
func Parse(r io.Reader, idColumn int) (*bracket.Results, error) {
	if idColumn < 0 {
		return nil, fmt.Errorf("invalid ID column: %d", idColumn)
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	results := bracket.NewResults()
	currentStage := ""

	for line := 1; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading sheet row %d: %w", line, err)
		}

		if stage, ok := bracket.MatchSheetRow(row); ok {
			if stage != currentStage {
				logger.Debug("Sheet stage change", logger.Fields{
					"stage": stage,
					"row":   line,
				})
			}
			currentStage = stage
		}

		if currentStage == "" || len(row) <= idColumn {
			continue
		}

		id := strings.TrimSpace(row[idColumn])
		if bracket.IsNumericID(id) {
			results.Stage(currentStage).Add(bracket.BeatmapURL(id), bracket.KindMap)
		}
	}

	return results, nil
}
