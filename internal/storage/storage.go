package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/maniapool/osu-brackets/internal/bracket"
)

const (
	MapHeader   = "Map Link"
	MatchHeader = "Match Link"
)

// Storage writes stage CSV files below an output directory
type Storage struct {
	outDir string
}

// WrittenFile describes one CSV file produced by a write
type WrittenFile struct {
	Path  string           `json:"path"`
	Stage string           `json:"stage"`
	Kind  bracket.LinkKind `json:"kind"`
	Rows  int              `json:"rows"`
}

// New creates a new Storage instance rooted at outDir
func New(outDir string) (*Storage, error) {
	if outDir == "" {
		outDir = "."
	}

	// Expand ~ to home directory
	if strings.HasPrefix(outDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		outDir = filepath.Join(home, outDir[2:])
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{
		outDir: outDir,
	}, nil
}

// OutDir returns the resolved output directory
func (s *Storage) OutDir() string {
	return s.outDir
}

// TournamentFolder returns the folder name used for a tournament
func TournamentFolder(name string) string {
	folder := bracket.SanitizeName(name)
	if folder == "" {
		return bracket.DefaultTournamentName
	}
	return folder
}

// WriteSheet writes one "<Stage_Name>_maps.csv" per stage into the output directory
func (s *Storage) WriteSheet(results *bracket.Results) ([]WrittenFile, error) {
	files := make([]WrittenFile, 0, results.Len())
	for _, links := range results.Stages() {
		path := filepath.Join(s.outDir, bracket.SheetFileStem(links.Stage)+"_maps.csv")
		if err := writeLinks(path, MapHeader, links.Maps); err != nil {
			return files, err
		}
		files = append(files, WrittenFile{Path: path, Stage: links.Stage, Kind: bracket.KindMap, Rows: len(links.Maps)})
	}
	return files, nil
}

// WriteTournament writes "<Stage>_maps.csv" and "<Stage>_matches.csv" for every stage
// into the tournament's folder. Trim rules must already have been applied.
func (s *Storage) WriteTournament(t *bracket.Tournament) ([]WrittenFile, error) {
	dir := filepath.Join(s.outDir, TournamentFolder(t.Name))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating tournament folder: %w", err)
	}

	files := make([]WrittenFile, 0, 2*t.Results.Len())
	for _, links := range t.Results.Stages() {
		stage := bracket.SanitizeName(links.Stage)

		mapsPath := filepath.Join(dir, stage+"_maps.csv")
		if err := writeLinks(mapsPath, MapHeader, links.Maps); err != nil {
			return files, err
		}
		files = append(files, WrittenFile{Path: mapsPath, Stage: links.Stage, Kind: bracket.KindMap, Rows: len(links.Maps)})

		matchesPath := filepath.Join(dir, stage+"_matches.csv")
		if err := writeLinks(matchesPath, MatchHeader, links.Matches); err != nil {
			return files, err
		}
		files = append(files, WrittenFile{Path: matchesPath, Stage: links.Stage, Kind: bracket.KindMatch, Rows: len(links.Matches)})
	}
	return files, nil
}

// WriteRaw stores downloaded bytes (such as a sheet export) under the output directory
func (s *Storage) WriteRaw(name string, data []byte) (string, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.outDir, name)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// writeLinks writes a header row followed by one link per row
func writeLinks(path, header string, links []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{header}); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	for _, link := range links {
		if err := w.Write([]string{link}); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
