package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/maniapool/osu-brackets/internal/bracket"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return records
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	s, err := New(dir)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if s.OutDir() != dir {
		t.Errorf("OutDir() = %q, want %q", s.OutDir(), dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("output directory was not created: %v", err)
	}
}

func TestNew_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := New("~/brackets")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if want := filepath.Join(home, "brackets"); s.OutDir() != want {
		t.Errorf("OutDir() = %q, want %q", s.OutDir(), want)
	}
}

func TestWriteSheet(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	results := bracket.NewResults()
	results.Stage("Round of 16").Add(bracket.BeatmapURL("2101001"), bracket.KindMap)
	results.Stage("Round of 16").Add(bracket.BeatmapURL("2101002"), bracket.KindMap)
	results.Stage("Grand Finals").Add(bracket.BeatmapURL("2501001"), bracket.KindMap)

	files, err := s.WriteSheet(results)
	if err != nil {
		t.Fatalf("WriteSheet() error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("WriteSheet() wrote %d files, want 2", len(files))
	}

	got := readCSV(t, filepath.Join(s.OutDir(), "Round_of_16_maps.csv"))
	want := [][]string{
		{"Map Link"},
		{"https://osu.ppy.sh/beatmaps/2101001"},
		{"https://osu.ppy.sh/beatmaps/2101002"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Round_of_16_maps.csv mismatch (-want +got):\n%s", diff)
	}

	if files[1].Path != filepath.Join(s.OutDir(), "Grand_Finals_maps.csv") || files[1].Rows != 1 {
		t.Errorf("unexpected file record: %+v", files[1])
	}
}

func TestWriteTournament(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	tour := bracket.NewTournament("4 Digit osu!mania World Cup 4", "https://osu.ppy.sh/wiki/en/Tournaments/4DM/4")
	finals := tour.Results.Stage("Finals")
	finals.Add("https://osu.ppy.sh/beatmapsets/1", bracket.KindMap)
	finals.Add("https://osu.ppy.sh/community/matches/9", bracket.KindMatch)
	tour.Results.Stage("Semifinals")

	files, err := s.WriteTournament(tour)
	if err != nil {
		t.Fatalf("WriteTournament() error: %v", err)
	}
	if len(files) != 4 {
		t.Fatalf("WriteTournament() wrote %d files, want 4", len(files))
	}

	dir := filepath.Join(s.OutDir(), "4 Digit osumania World Cup 4")

	maps := readCSV(t, filepath.Join(dir, "Finals_maps.csv"))
	if diff := cmp.Diff([][]string{{"Map Link"}, {"https://osu.ppy.sh/beatmapsets/1"}}, maps); diff != "" {
		t.Errorf("Finals_maps.csv mismatch (-want +got):\n%s", diff)
	}

	matches := readCSV(t, filepath.Join(dir, "Finals_matches.csv"))
	if diff := cmp.Diff([][]string{{"Match Link"}, {"https://osu.ppy.sh/community/matches/9"}}, matches); diff != "" {
		t.Errorf("Finals_matches.csv mismatch (-want +got):\n%s", diff)
	}

	empty := readCSV(t, filepath.Join(dir, "Semifinals_matches.csv"))
	if diff := cmp.Diff([][]string{{"Match Link"}}, empty); diff != "" {
		t.Errorf("Semifinals_matches.csv mismatch (-want +got):\n%s", diff)
	}
}

func TestTournamentFolder(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"o!mLN 3", "omLN 3"},
		{"!!!", bracket.DefaultTournamentName},
		{"", bracket.DefaultTournamentName},
		{"GBC 2023 Autumn ", "GBC 2023 Autumn"},
	}
	for _, tt := range tests {
		if got := TournamentFolder(tt.name); got != tt.want {
			t.Errorf("TournamentFolder(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestWriteRaw(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	path, err := s.WriteRaw("output.csv", []byte("Finals,\n"))
	if err != nil {
		t.Fatalf("WriteRaw() error: %v", err)
	}
	if path != filepath.Join(s.OutDir(), "output.csv") {
		t.Errorf("path = %q", path)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "Finals,\n" {
		t.Errorf("content = %q", data)
	}

	abs := filepath.Join(t.TempDir(), "export.csv")
	if path, err := s.WriteRaw(abs, []byte("x")); err != nil || path != abs {
		t.Errorf("WriteRaw(abs) = %q, %v", path, err)
	}
}
