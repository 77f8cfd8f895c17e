package scraper

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/maniapool/osu-brackets/internal/bracket"
	"github.com/maniapool/osu-brackets/internal/fetch"
	"github.com/maniapool/osu-brackets/internal/logger"
)

const headingSelector = "h1, h2, h3, h4, h5"

// Scraper handles fetching and parsing wiki tournament pages
type Scraper struct {
	client *fetch.Client
}

// New creates a new Scraper that fetches through client
func New(client *fetch.Client) *Scraper {
	if client == nil {
		client = fetch.New()
	}
	return &Scraper{
		client: client,
	}
}

// ScrapeTournament fetches a tournament page and groups its links by stage
func (s *Scraper) ScrapeTournament(ctx context.Context, url string) (*bracket.Tournament, error) {
	body, err := s.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return s.parseTournament(body, url)
}

// parseTournament extracts the tournament name and per-stage links from HTML
func (s *Scraper) parseTournament(r io.Reader, sourceURL string) (*bracket.Tournament, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	name := bracket.DefaultTournamentName
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		if text := strippedText(h1.Nodes[0]); text != "" {
			name = text
		}
	}
	t := bracket.NewTournament(name, sourceURL)

	headings := doc.Find(headingSelector).Nodes
	for i, heading := range headings {
		text := strippedText(heading)
		stage, ok := bracket.MatchHeading(text)
		if !ok {
			continue
		}
		logger.Debug("Matched stage heading", logger.Fields{
			"heading": text,
			"stage":   stage,
		})

		links := t.Results.Stage(stage)

		// The next heading may be nested deeper than this one's siblings, in
		// which case the walk runs to the end of the parent.
		var next *html.Node
		if i+1 < len(headings) {
			next = headings[i+1]
		}
		for sib := heading.NextSibling; sib != nil && sib != next; sib = sib.NextSibling {
			if sib.Type != html.ElementNode {
				continue
			}
			doc.FindNodes(sib).Find("a[href]").Each(func(_ int, a *goquery.Selection) {
				href, _ := a.Attr("href")
				if url, kind, ok := bracket.ClassifyHref(href); ok {
					links.Add(url, kind)
				}
			})
		}
	}

	return t, nil
}

// strippedText concatenates the node's text fragments with surrounding whitespace removed
func strippedText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
