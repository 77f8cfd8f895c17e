// Package storage writes extracted bracket links to disk.
//
// Stage links are written as one-column CSV files ("Map Link" / "Match Link"),
// either flat in the output directory for the spreadsheet pass or in one folder per
// tournament for the wiki pass. An optional SQLite catalog keeps every emitted link
// with its tournament, stage and source so runs can be queried later.
// The default output location is the current directory.
package storage
