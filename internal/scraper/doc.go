// Package scraper fetches osu! wiki tournament pages and extracts bracket links.
//
// Every h1..h5 heading on the page that names a competition stage owns the
// beatmapset and match links found in the sibling nodes that follow it, up to the
// next heading. Links under repeated headings for the same stage accumulate. The
// page's first h1 supplies the tournament name.
package scraper
