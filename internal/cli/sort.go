package cli

import (
	"fmt"
	"sort"
	"strings"
)

// SortOrder represents the available stage orderings in the summary
type SortOrder string

const (
	SortByOrder SortOrder = "order"
	SortByName  SortOrder = "name"
	SortByMaps  SortOrder = "maps"
)

// parseSortOrder validates a --sort value
func parseSortOrder(s string) (SortOrder, error) {
	order := SortOrder(strings.ToLower(strings.TrimSpace(s)))
	switch order {
	case SortByOrder, SortByName, SortByMaps:
		return order, nil
	default:
		return "", fmt.Errorf("invalid sort order: %s (must be 'order', 'name' or 'maps')", s)
	}
}

// sortStages sorts stage summaries in place. SortByOrder keeps the page order.
func sortStages(stages []StageSummary, order SortOrder) {
	switch order {
	case SortByName:
		sort.SliceStable(stages, func(i, j int) bool {
			return strings.ToLower(stages[i].Stage) < strings.ToLower(stages[j].Stage)
		})
	case SortByMaps:
		sort.SliceStable(stages, func(i, j int) bool {
			if stages[i].Maps != stages[j].Maps {
				return stages[i].Maps > stages[j].Maps
			}
			// If counts are equal, sort by name
			return strings.ToLower(stages[i].Stage) < strings.ToLower(stages[j].Stage)
		})
	}
}
