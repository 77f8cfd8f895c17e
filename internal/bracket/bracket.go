package bracket

// StageLinks holds the links collected for one competition stage
type StageLinks struct {
	Stage   string   `json:"stage"`
	Maps    []string `json:"maps"`
	Matches []string `json:"matches"`
}

// Results groups stage links and remembers the order stages were first seen in
type Results struct {
	order   []string
	byStage map[string]*StageLinks
}

// NewResults creates an empty result set
func NewResults() *Results {
	return &Results{
		order:   make([]string, 0),
		byStage: make(map[string]*StageLinks),
	}
}

// Stage returns the links for the named stage, creating the entry on first use
func (r *Results) Stage(name string) *StageLinks {
	if links, ok := r.byStage[name]; ok {
		return links
	}
	links := &StageLinks{
		Stage:   name,
		Maps:    make([]string, 0),
		Matches: make([]string, 0),
	}
	r.byStage[name] = links
	r.order = append(r.order, name)
	return links
}

// Get returns the links for a stage without creating it
func (r *Results) Get(name string) (*StageLinks, bool) {
	links, ok := r.byStage[name]
	return links, ok
}

// Stages returns all stages in first-seen order
func (r *Results) Stages() []*StageLinks {
	stages := make([]*StageLinks, 0, len(r.order))
	for _, name := range r.order {
		stages = append(stages, r.byStage[name])
	}
	return stages
}

// Len returns the number of stages
func (r *Results) Len() int {
	return len(r.order)
}

// TotalMaps counts map links across all stages
func (r *Results) TotalMaps() int {
	total := 0
	for _, links := range r.byStage {
		total += len(links.Maps)
	}
	return total
}

// TotalMatches counts match links across all stages
func (r *Results) TotalMatches() int {
	total := 0
	for _, links := range r.byStage {
		total += len(links.Matches)
	}
	return total
}

// Tournament is the result of scraping a single tournament page
type Tournament struct {
	Name      string   `json:"name"`
	SourceURL string   `json:"source_url"`
	Results   *Results `json:"-"`
}

// NewTournament creates a Tournament with an empty result set
func NewTournament(name, sourceURL string) *Tournament {
	return &Tournament{
		Name:      name,
		SourceURL: sourceURL,
		Results:   NewResults(),
	}
}
