package bracket

import (
	"fmt"
	"sort"
)

// TrimRule drops warm-up or tiebreaker maps from a stage's mappool.
// Rules never touch the qualifier stage and always return a new slice.
type TrimRule func(stage string, maps []string) []string

// DefaultRule is used when a tournament names no rule
const DefaultRule = "keep_all"

var rules = map[string]TrimRule{
	"keep_all":                  keepAll,
	"remove_first_2":            removeFirst2,
	"remove_last_2_keep_last":   dropBeforeTail(2, 1),
	"remove_last_3_keep_last":   dropBeforeTail(3, 1),
	"remove_last_4_keep_last_2": dropBeforeTail(4, 2),
}

var ruleDescriptions = map[string]string{
	"keep_all":                  "keep every map",
	"remove_first_2":            "drop the first two maps",
	"remove_last_2_keep_last":   "drop the second-to-last map",
	"remove_last_3_keep_last":   "drop the third- and second-to-last maps",
	"remove_last_4_keep_last_2": "drop the fourth- and third-to-last maps",
}

// DescribeRule returns a short human description of a rule
func DescribeRule(name string) string {
	return ruleDescriptions[name]
}

// LookupRule returns the named rule; an empty name selects DefaultRule
func LookupRule(name string) (TrimRule, error) {
	if name == "" {
		name = DefaultRule
	}
	rule, ok := rules[name]
	if !ok {
		return nil, fmt.Errorf("unknown trim rule: %s", name)
	}
	return rule, nil
}

// RuleNames lists the known rule names in sorted order
func RuleNames() []string {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func keepAll(stage string, maps []string) []string {
	return clone(maps)
}

func removeFirst2(stage string, maps []string) []string {
	if IsQualifiers(stage) || len(maps) <= 2 {
		return clone(maps)
	}
	return clone(maps[2:])
}

// dropBeforeTail removes the last `tail` entries and re-appends the final `keep` of them.
// dropBeforeTail(3, 1) turns [a b c d e] into [a b e].
func dropBeforeTail(tail, keep int) TrimRule {
	return func(stage string, maps []string) []string {
		if IsQualifiers(stage) || len(maps) < tail {
			return clone(maps)
		}
		out := make([]string, 0, len(maps)-tail+keep)
		out = append(out, maps[:len(maps)-tail]...)
		return append(out, maps[len(maps)-keep:]...)
	}
}

func clone(maps []string) []string {
	out := make([]string, len(maps))
	copy(out, maps)
	return out
}

// Trimmed returns a copy of the tournament with rule applied to every stage's maps.
// Matches are copied unchanged. A nil rule keeps everything.
func (t *Tournament) Trimmed(rule TrimRule) *Tournament {
	if rule == nil {
		rule = keepAll
	}
	out := NewTournament(t.Name, t.SourceURL)
	for _, links := range t.Results.Stages() {
		stage := out.Results.Stage(links.Stage)
		stage.Maps = rule(SanitizeName(links.Stage), links.Maps)
		stage.Matches = clone(links.Matches)
	}
	return out
}
