package bracket

import "strings"

// SiteURL is the osu! website root used to absolutise relative links
const SiteURL = "https://osu.ppy.sh"

// LinkKind tells beatmap links apart from match links
type LinkKind string

const (
	KindMap   LinkKind = "map"
	KindMatch LinkKind = "match"
)

var linkPrefixes = []struct {
	path string
	kind LinkKind
}{
	{"/beatmapsets/", KindMap},
	{"/community/matches/", KindMatch},
}

// BeatmapURL builds the beatmap page link for a numeric beatmap ID
func BeatmapURL(id string) string {
	return SiteURL + "/beatmaps/" + id
}

// ClassifyHref recognises beatmapset and match links, relative or absolute on osu.ppy.sh.
// Relative links are returned absolute; anything else is rejected.
func ClassifyHref(href string) (string, LinkKind, bool) {
	for _, p := range linkPrefixes {
		if strings.HasPrefix(href, p.path) {
			return SiteURL + href, p.kind, true
		}
		if strings.HasPrefix(href, SiteURL+p.path) {
			return href, p.kind, true
		}
	}
	return "", "", false
}

// Add appends a classified link to the matching list
func (s *StageLinks) Add(url string, kind LinkKind) {
	switch kind {
	case KindMap:
		s.Maps = append(s.Maps, url)
	case KindMatch:
		s.Matches = append(s.Matches, url)
	}
}

// IsNumericID reports whether s is a non-empty run of ASCII digits
func IsNumericID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
