package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/maniapool/osu-brackets/internal/bracket"
)

// Source labels which pass produced a catalog entry
type Source string

const (
	SourceSheet Source = "sheet"
	SourceWiki  Source = "wiki"
)

const catalogSchema = `
CREATE TABLE IF NOT EXISTS links (
    source      TEXT    NOT NULL,
    source_url  TEXT    NOT NULL,
    tournament  TEXT    NOT NULL,
    stage       TEXT    NOT NULL,
    kind        TEXT    NOT NULL,
    position    INTEGER NOT NULL,
    url         TEXT    NOT NULL,
    recorded_at INTEGER NOT NULL,
    PRIMARY KEY (source, source_url, stage, kind, position)
);
CREATE INDEX IF NOT EXISTS links_tournament ON links (tournament);
`

// Catalog persists every emitted link in SQLite
type Catalog struct {
	db  *sql.DB
	now func() time.Time
}

// OpenCatalog opens (creating if needed) the SQLite catalog at path
func OpenCatalog(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("catalog path is required")
	}
	db, err := sql.Open("sqlite", filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping catalog: %w", err)
	}
	if _, err := db.Exec(catalogSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}
	return &Catalog{db: db, now: time.Now}, nil
}

// Close closes the SQLite handle
func (c *Catalog) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Record stores a tournament's links, replacing anything previously recorded for
// the same source and source URL
func (c *Catalog) Record(ctx context.Context, source Source, t *bracket.Tournament) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c == nil || c.db == nil {
		return fmt.Errorf("catalog is not open")
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM links WHERE source = ? AND source_url = ?`,
		string(source), t.SourceURL,
	); err != nil {
		return fmt.Errorf("clear previous links: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO links (source, source_url, tournament, stage, kind, position, url, recorded_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare link insert: %w", err)
	}
	defer stmt.Close()

	recordedAt := c.now().UTC().UnixMilli()
	insert := func(stage string, kind bracket.LinkKind, links []string) error {
		for i, url := range links {
			if _, err := stmt.ExecContext(ctx,
				string(source), t.SourceURL, t.Name, stage, string(kind), i, url, recordedAt,
			); err != nil {
				return fmt.Errorf("insert %s link for %s: %w", kind, stage, err)
			}
		}
		return nil
	}

	for _, links := range t.Results.Stages() {
		if err := insert(links.Stage, bracket.KindMap, links.Maps); err != nil {
			return err
		}
		if err := insert(links.Stage, bracket.KindMatch, links.Matches); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog transaction: %w", err)
	}
	return nil
}

// CountByKind returns how many map and match links the catalog holds
func (c *Catalog) CountByKind(ctx context.Context) (map[bracket.LinkKind]int, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT kind, COUNT(*) FROM links GROUP BY kind`)
	if err != nil {
		return nil, fmt.Errorf("count links: %w", err)
	}
	defer rows.Close()

	counts := make(map[bracket.LinkKind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan link count: %w", err)
		}
		counts[bracket.LinkKind(kind)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate link counts: %w", err)
	}
	return counts, nil
}

// StageLinks returns the recorded links of one kind for a tournament stage, in order
func (c *Catalog) StageLinks(ctx context.Context, tournament, stage string, kind bracket.LinkKind) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
SELECT url FROM links
WHERE tournament = ? AND stage = ? AND kind = ?
ORDER BY source, source_url, position`, tournament, stage, string(kind))
	if err != nil {
		return nil, fmt.Errorf("query stage links: %w", err)
	}
	defer rows.Close()

	links := make([]string, 0)
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("scan stage link: %w", err)
		}
		links = append(links, url)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stage links: %w", err)
	}
	return links, nil
}
