package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/maniapool/osu-brackets/internal/bracket"
)

//go:embed tournaments.yaml
var defaultTournaments []byte

// Tournament is one wiki page to scrape and the trim rule for its mappools
type Tournament struct {
	URL  string `yaml:"url"`
	Rule string `yaml:"rule"`
	Note string `yaml:"note,omitempty"`
}

// TournamentList is the document stored in a tournaments YAML file
type TournamentList struct {
	Tournaments []Tournament `yaml:"tournaments"`
}

// TrimRule resolves the tournament's rule name
func (t Tournament) TrimRule() (bracket.TrimRule, error) {
	return bracket.LookupRule(t.Rule)
}

// DefaultTournaments returns the built-in tournament list
func DefaultTournaments() ([]Tournament, error) {
	return ParseTournaments(defaultTournaments)
}

// LoadTournaments reads a tournament list from path, or the built-in list when path is empty
func LoadTournaments(path string) ([]Tournament, error) {
	if path == "" {
		return DefaultTournaments()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tournament list: %w", err)
	}
	list, err := ParseTournaments(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// ErrEmptyTournamentList is returned when a tournament list names no tournaments
var ErrEmptyTournamentList = errors.New("tournament list is empty")

// ParseTournaments decodes and validates a tournament list. Unknown keys are
// rejected so a misspelled rule is not silently read as keep_all.
func ParseTournaments(data []byte) ([]Tournament, error) {
	var list TournamentList
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&list); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing tournament list: %w", err)
	}
	if len(list.Tournaments) == 0 {
		return nil, ErrEmptyTournamentList
	}

	for i, t := range list.Tournaments {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("tournament %d: %w", i+1, err)
		}
	}
	return list.Tournaments, nil
}

// Validate checks that the URL is absolute and the rule exists
func (t Tournament) Validate() error {
	u, err := url.Parse(t.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("url must be absolute: %q", t.URL)
	}
	if _, err := t.TrimRule(); err != nil {
		return fmt.Errorf("%s: %w", t.URL, err)
	}
	return nil
}
