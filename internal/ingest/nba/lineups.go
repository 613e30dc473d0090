package nba

import (
	"fmt"
	"sort"

	"github.com/fortuna/rapm/internal/possession"
)

// AnnotateLineups stamps the ten on-court player identities onto every play
// row, producing the lineup-annotated stream the possession engine consumes.
//
// Period 1 lineups come from the box score starters. Later periods are
// reconstructed from the play-by-play itself: a player seen acting, or seen
// substituting out, before ever substituting in must have started the period
// on the floor. Remaining slots fall back to the previous period's closing
// lineup. Substitution events then roll the lineups forward within the period.
func AnnotateLineups(rows []PlayRow, gc possession.GameContext, box *BoxScore) ([]possession.Event, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	for _, teamID := range []int64{gc.HomeTeamID, gc.VisitorTeamID} {
		if len(box.Starters[teamID]) != 5 {
			return nil, fmt.Errorf("team %d: no starting lineup in box score", teamID)
		}
	}

	onCourt := map[int64]map[int64]struct{}{
		gc.HomeTeamID:    {},
		gc.VisitorTeamID: {},
	}

	events := make([]possession.Event, 0, len(rows))
	for start := 0; start < len(rows); {
		period := rows[start].Event.Period
		end := start
		for end < len(rows) && rows[end].Event.Period == period {
			end++
		}
		segment := rows[start:end]

		if start == 0 {
			for teamID, starters := range box.Starters {
				lineup := make(map[int64]struct{}, 5)
				for _, p := range starters {
					lineup[p] = struct{}{}
				}
				onCourt[teamID] = lineup
			}
		} else {
			derived, err := derivePeriodLineups(segment, gc, box.Roster, onCourt)
			if err != nil {
				return nil, fmt.Errorf("period %d: %w", period, err)
			}
			onCourt = derived
		}

		for _, row := range segment {
			ev := row.Event
			var err error
			if ev.HomePlayers, err = five(onCourt[gc.HomeTeamID]); err != nil {
				return nil, fmt.Errorf("period %d event %d (home): %w", period, ev.EventNum, err)
			}
			if ev.VisitorPlayers, err = five(onCourt[gc.VisitorTeamID]); err != nil {
				return nil, fmt.Errorf("period %d event %d (visitor): %w", period, ev.EventNum, err)
			}
			events = append(events, ev)

			if row.Event.Type == possession.EventSubstitution {
				lineup := onCourt[box.Roster[row.Event.PlayerID]]
				if lineup != nil {
					delete(lineup, row.Event.PlayerID)
					lineup[row.IncomingPlayerID] = struct{}{}
				}
			}
		}

		start = end
	}
	return events, nil
}

// derivePeriodLineups reconstructs the starting lineups of a period from its
// events, falling back to the previous period's closing lineup for players
// who left no trace before their first substitution.
func derivePeriodLineups(segment []PlayRow, gc possession.GameContext, roster map[int64]int64, previous map[int64]map[int64]struct{}) (map[int64]map[int64]struct{}, error) {
	starters := map[int64]map[int64]struct{}{
		gc.HomeTeamID:    {},
		gc.VisitorTeamID: {},
	}
	subbedIn := make(map[int64]struct{})

	observe := func(playerID int64) {
		teamID, ok := roster[playerID]
		if !ok {
			return
		}
		if _, in := subbedIn[playerID]; in {
			return
		}
		if lineup, ok := starters[teamID]; ok && len(lineup) < 5 {
			lineup[playerID] = struct{}{}
		}
	}

	for _, row := range segment {
		if row.Event.Type == possession.EventSubstitution {
			observe(row.Event.PlayerID)
			subbedIn[row.IncomingPlayerID] = struct{}{}
			continue
		}
		observe(row.Event.PlayerID)
		observe(row.IncomingPlayerID)
	}

	for teamID, lineup := range starters {
		if len(lineup) < 5 {
			carried := sortedPlayers(previous[teamID])
			for _, p := range carried {
				if len(lineup) == 5 {
					break
				}
				if _, in := subbedIn[p]; in {
					continue
				}
				lineup[p] = struct{}{}
			}
		}
		if len(lineup) != 5 {
			return nil, fmt.Errorf("team %d: resolved %d on-court players", teamID, len(lineup))
		}
	}
	return starters, nil
}

func five(lineup map[int64]struct{}) ([5]int64, error) {
	var out [5]int64
	if len(lineup) != 5 {
		return out, fmt.Errorf("lineup has %d players", len(lineup))
	}
	copy(out[:], sortedPlayers(lineup))
	return out, nil
}

func sortedPlayers(lineup map[int64]struct{}) []int64 {
	players := make([]int64, 0, len(lineup))
	for p := range lineup {
		players = append(players, p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i] < players[j] })
	return players
}
