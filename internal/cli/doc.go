// Package cli implements the command-line interface for osu-brackets.
//
// The cli package provides the Cobra-based CLI with a `sheet` command (segment a
// mappool spreadsheet export), a `wiki` command (scrape osu! wiki tournament pages)
// and a `rules` command (list trim rules). It coordinates the sheet, scraper,
// storage and config packages and reports what was written as text or JSON.
package cli
