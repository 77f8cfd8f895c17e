package bracket

import (
	"regexp"
	"sort"
	"strings"
)

// SheetStages are the stage labels recognised in spreadsheet rows, in priority order.
// "Grand Finals" must come before "Finals" since matching is by substring.
var SheetStages = []string{
	"Grand Finals",
	"Finals",
	"Semifinals",
	"Quarterfinals",
	"Play-off 1",
	"Play-off 2",
	"Playoffs",
	"Round of 16",
	"Round of 32",
	"Qualifiers",
}

var wikiStageNames = []string{
	"Grand Finals",
	"Finals",
	"Semifinals",
	"Quarterfinals",
	"Round of 16",
	"Round of 32",
	"Round of 64",
	"Group stage",
	"Playoffs",
	"Play-off 1",
	"Play-off 2",
	"Qualifiers",
}

type headingPattern struct {
	stage string
	re    *regexp.Regexp
}

// WikiStages are the stage labels recognised in wiki headings, longest first
var WikiStages = sortByLength(wikiStageNames)

var headingPatterns = compileHeadingPatterns(WikiStages)

func sortByLength(names []string) []string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	return sorted
}

func compileHeadingPatterns(stages []string) []headingPattern {
	patterns := make([]headingPattern, 0, len(stages))
	for _, stage := range stages {
		patterns = append(patterns, headingPattern{
			stage: stage,
			re:    regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(stage)) + `\b`),
		})
	}
	return patterns
}

// MatchSheetRow reports the first sheet stage contained in any cell of the row.
// Matching is case-sensitive, so "Semifinals" never reads as "Finals".
func MatchSheetRow(cells []string) (string, bool) {
	for _, stage := range SheetStages {
		for _, cell := range cells {
			if strings.Contains(cell, stage) {
				return stage, true
			}
		}
	}
	return "", false
}

// MatchHeading reports the wiki stage named by a heading, matching whole words case-insensitively
func MatchHeading(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, p := range headingPatterns {
		if p.re.MatchString(lower) {
			return p.stage, true
		}
	}
	return "", false
}

// IsQualifiers reports whether stage names the qualifier round
func IsQualifiers(stage string) bool {
	return strings.EqualFold(stage, "qualifiers")
}
