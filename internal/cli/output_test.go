package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/maniapool/osu-brackets/internal/bracket"
	"github.com/maniapool/osu-brackets/internal/storage"
)

func TestWriteOutput_Text(t *testing.T) {
	result := NewOutputResult("/tmp/out")
	result.Add(&SourceSummary{
		Kind: storage.SourceWiki,
		Name: "SOFT 6",
		URL:  "https://osu.ppy.sh/wiki/en/Tournaments/SOFT/6",
		Rule: "keep_all",
		Stages: []StageSummary{
			{Stage: "Qualifiers", Maps: 8},
			{Stage: "Finals", Maps: 10, Matches: 4},
		},
	})
	result.Add(&SourceSummary{
		Kind:  storage.SourceWiki,
		Name:  "https://osu.ppy.sh/wiki/en/Tournaments/TMC/4th",
		Error: "unexpected status code: 404",
	})

	var buf bytes.Buffer
	if err := WriteOutput(&buf, result, FormatText, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"SOFT 6 (keep_all)",
		"  Finals: 10 maps, 4 matches",
		"FAILED: unexpected status code: 404",
		"Total: 18 maps, 4 matches from 2 sources (1 failed)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Source:") {
		t.Error("non-verbose output should not list sources")
	}
}

func TestWriteOutput_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, NewOutputResult("."), FormatText, false); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}
	if !strings.Contains(buf.String(), "Nothing to write.") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	if err := WriteOutput(&bytes.Buffer{}, NewOutputResult("."), OutputFormat("xml"), false); err == nil {
		t.Error("WriteOutput() expected error for unknown format")
	}
}

func TestSummarize(t *testing.T) {
	results := bracket.NewResults()
	results.Stage("Finals").Add("https://osu.ppy.sh/beatmapsets/1", bracket.KindMap)
	results.Stage("Finals").Add("https://osu.ppy.sh/community/matches/2", bracket.KindMatch)

	s := summarize(storage.SourceWiki, "T", "https://x", results)
	if diff := cmp.Diff([]StageSummary{{Stage: "Finals", Maps: 1, Matches: 1}}, s.Stages); diff != "" {
		t.Errorf("summarize() mismatch (-want +got):\n%s", diff)
	}
}

func TestSortStages(t *testing.T) {
	base := []StageSummary{
		{Stage: "Qualifiers", Maps: 8},
		{Stage: "Round of 16", Maps: 6},
		{Stage: "Finals", Maps: 8},
	}

	tests := []struct {
		order SortOrder
		want  []string
	}{
		{SortByOrder, []string{"Qualifiers", "Round of 16", "Finals"}},
		{SortByName, []string{"Finals", "Qualifiers", "Round of 16"}},
		{SortByMaps, []string{"Finals", "Qualifiers", "Round of 16"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			stages := append([]StageSummary(nil), base...)
			sortStages(stages, tt.order)

			got := make([]string, 0, len(stages))
			for _, s := range stages {
				got = append(got, s.Stage)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("sortStages(%s) mismatch (-want +got):\n%s", tt.order, diff)
			}
		})
	}
}

func TestParseSortOrder(t *testing.T) {
	if order, err := parseSortOrder(" MAPS "); err != nil || order != SortByMaps {
		t.Errorf("parseSortOrder(MAPS) = %q, %v", order, err)
	}
	if _, err := parseSortOrder("date"); err == nil {
		t.Error("parseSortOrder(date) expected error")
	}
}
