package bracket

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultTournamentName is used when a page has no title or the title sanitises to nothing
const DefaultTournamentName = "osu_tournament"

// SanitizeName makes a tournament or stage name safe to use as a file or folder name.
// Letters, digits, spaces, underscores and hyphens survive; trailing whitespace is dropped.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range norm.NFC.String(name) {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}

// SheetFileStem turns a sheet stage label into a file stem ("Round of 16" -> "Round_of_16")
func SheetFileStem(stage string) string {
	return strings.ReplaceAll(stage, " ", "_")
}
