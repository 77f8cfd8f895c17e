// Package bracket provides the domain types for osu! tournament brackets.
//
// The bracket package groups beatmap and match links by competition stage
// ("Qualifiers", "Finals", ...), recognises stage headings in spreadsheet rows and
// wiki headings, classifies osu! links, and implements the positional trim rules
// that drop warm-up and tiebreaker maps from a stage's mappool.
package bracket
