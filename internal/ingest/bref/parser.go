// Package bref scrapes Basketball-Reference box scores as a fallback
// authoritative source when the stats API is unavailable.
package bref

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TeamTotal is one team's final point total from the line score table.
type TeamTotal struct {
	TeamID       int64
	Abbreviation string
	Points       int
}

// ParseLineScore extracts both teams' final totals from a box score page.
func ParseLineScore(html string) ([]TeamTotal, error) {
	// Basketball-Reference ships several tables inside HTML comments and
	// unhides them with JS. Stripping the comment markers exposes them to a
	// static parse.
	html = strings.ReplaceAll(html, "<!--", "")
	html = strings.ReplaceAll(html, "-->", "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var totals []TeamTotal
	doc.Find("table#line_score tbody tr").Each(func(_ int, row *goquery.Selection) {
		abbr := strings.TrimSpace(row.Find(`th[data-stat="team"]`).Text())
		if abbr == "" {
			return
		}
		ptsText := strings.TrimSpace(row.Find(`td[data-stat="T"]`).Text())
		pts, err := strconv.Atoi(ptsText)
		if err != nil {
			return
		}
		totals = append(totals, TeamTotal{
			TeamID:       TeamIDForAbbreviation(abbr),
			Abbreviation: abbr,
			Points:       pts,
		})
	})

	if len(totals) != 2 {
		return nil, fmt.Errorf("line score has %d team rows, want 2", len(totals))
	}
	for _, t := range totals {
		if t.TeamID == 0 {
			return nil, fmt.Errorf("unknown team abbreviation %q", t.Abbreviation)
		}
	}
	return totals, nil
}
