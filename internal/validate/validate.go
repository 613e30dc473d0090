// Package validate cross-checks a derived possession table against
// authoritative box-score totals. A mismatch is the pipeline's only fatal
// error: it signals a classification defect or bad input, and the possession
// table for that game must not be trusted downstream.
package validate

import (
	"fmt"
	"strings"

	"github.com/fortuna/rapm/internal/possession"
)

// TeamPoints is one team's authoritative point total for a game.
type TeamPoints struct {
	TeamID int64
	Points int
}

// Mismatch records one team whose possession total diverged from the box score.
type Mismatch struct {
	TeamID      int64 `json:"team_id"`
	BoxScore    int   `json:"box_score"`
	Possessions int   `json:"possessions"`
}

// MismatchError reports every diverging team for a game.
type MismatchError struct {
	GameID     string
	Mismatches []Mismatch
}

func (e *MismatchError) Error() string {
	parts := make([]string, len(e.Mismatches))
	for i, m := range e.Mismatches {
		parts[i] = fmt.Sprintf("team %d: box score %d, possessions %d", m.TeamID, m.BoxScore, m.Possessions)
	}
	return fmt.Sprintf("game %s: possession points diverge from box score (%s)", e.GameID, strings.Join(parts, "; "))
}

// Table verifies that possession points grouped by offensive team equal the
// box-score totals for every team. Both directions are checked: a team present
// in the box score but absent from the table counts as a zero-point mismatch.
func Table(gameID string, table *possession.Table, box []TeamPoints) error {
	totals := table.PointsByTeam()

	var mismatches []Mismatch
	seen := make(map[int64]bool)
	for _, tp := range box {
		seen[tp.TeamID] = true
		if totals[tp.TeamID] != tp.Points {
			mismatches = append(mismatches, Mismatch{
				TeamID:      tp.TeamID,
				BoxScore:    tp.Points,
				Possessions: totals[tp.TeamID],
			})
		}
	}
	for teamID, pts := range totals {
		if !seen[teamID] {
			mismatches = append(mismatches, Mismatch{TeamID: teamID, Possessions: pts})
		}
	}

	if len(mismatches) > 0 {
		return &MismatchError{GameID: gameID, Mismatches: mismatches}
	}
	return nil
}
