package nba

import (
	"fmt"
	"time"

	"github.com/fortuna/rapm/internal/possession"
)

// PlayRow is one parsed play-by-play row. It carries the incoming substitute
// alongside the core event so lineup annotation can track rotations; the
// possession engine itself never sees that field.
type PlayRow struct {
	Event            possession.Event
	IncomingPlayerID int64
}

// TeamTotal is one team's authoritative point total from the box score.
type TeamTotal struct {
	TeamID int64
	Points int
}

// BoxScore is the parsed traditional box score for one game.
type BoxScore struct {
	TeamTotals []TeamTotal
	// Roster maps every player who appeared to their team.
	Roster map[int64]int64
	// Starters holds the five opening players per team.
	Starters map[int64][]int64
}

// ParseGameContext extracts the home/visitor team identifiers from a
// boxscoresummaryv2 response.
func ParseGameContext(resp *statsResponse, gameID string) (possession.GameContext, error) {
	rs, err := resp.set("GameSummary")
	if err != nil {
		return possession.GameContext{}, err
	}
	if len(rs.RowSet) == 0 {
		return possession.GameContext{}, fmt.Errorf("game summary empty for game %s", gameID)
	}

	idx := rs.columns()
	row := rs.RowSet[0]
	gc := possession.GameContext{
		GameID:        gameID,
		HomeTeamID:    cellInt64(row, idx, "HOME_TEAM_ID"),
		VisitorTeamID: cellInt64(row, idx, "VISITOR_TEAM_ID"),
	}
	if gc.HomeTeamID == 0 || gc.VisitorTeamID == 0 || gc.HomeTeamID == gc.VisitorTeamID {
		return possession.GameContext{}, fmt.Errorf("game %s: malformed team identifiers (home %d, visitor %d)",
			gameID, gc.HomeTeamID, gc.VisitorTeamID)
	}
	return gc, nil
}

// ParseGameDate extracts the game date from a boxscoresummaryv2 response.
func ParseGameDate(resp *statsResponse) (time.Time, error) {
	rs, err := resp.set("GameSummary")
	if err != nil {
		return time.Time{}, err
	}
	if len(rs.RowSet) == 0 {
		return time.Time{}, fmt.Errorf("game summary empty")
	}

	raw := cellString(rs.RowSet[0], rs.columns(), "GAME_DATE_EST")
	if raw == "" {
		return time.Time{}, fmt.Errorf("game summary missing GAME_DATE_EST")
	}
	date, err := time.Parse("2006-01-02T15:04:05", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse game date %q: %w", raw, err)
	}
	return date, nil
}

// ParsePlayByPlay converts a playbyplayv2 response into ordered play rows.
// Rows arrive ordered by event number; ordering is verified since the engine
// depends on it.
func ParsePlayByPlay(resp *statsResponse) ([]PlayRow, error) {
	rs, err := resp.set("PlayByPlay")
	if err != nil {
		return nil, err
	}

	idx := rs.columns()
	rows := make([]PlayRow, 0, len(rs.RowSet))
	lastNum := 0
	for _, raw := range rs.RowSet {
		num := cellInt(raw, idx, "EVENTNUM")
		if num == 0 {
			continue
		}
		if num <= lastNum {
			return nil, fmt.Errorf("event numbers not strictly increasing at %d", num)
		}
		lastNum = num

		rows = append(rows, PlayRow{
			Event: possession.Event{
				EventNum:           num,
				Type:               cellInt(raw, idx, "EVENTMSGTYPE"),
				Period:             cellInt(raw, idx, "PERIOD"),
				HomeDescription:    cellString(raw, idx, "HOMEDESCRIPTION"),
				VisitorDescription: cellString(raw, idx, "VISITORDESCRIPTION"),
				TeamID:             cellInt64(raw, idx, "PLAYER1_TEAM_ID"),
				PlayerID:           cellInt64(raw, idx, "PLAYER1_ID"),
			},
			IncomingPlayerID: cellInt64(raw, idx, "PLAYER2_ID"),
		})
	}
	return rows, nil
}

// ParseBoxScore extracts rosters, starters, and team point totals from a
// boxscoretraditionalv2 response.
func ParseBoxScore(resp *statsResponse) (*BoxScore, error) {
	players, err := resp.set("PlayerStats")
	if err != nil {
		return nil, err
	}
	teams, err := resp.set("TeamStats")
	if err != nil {
		return nil, err
	}

	box := &BoxScore{
		Roster:   make(map[int64]int64),
		Starters: make(map[int64][]int64),
	}

	pIdx := players.columns()
	for _, row := range players.RowSet {
		playerID := cellInt64(row, pIdx, "PLAYER_ID")
		teamID := cellInt64(row, pIdx, "TEAM_ID")
		if playerID == 0 || teamID == 0 {
			continue
		}
		box.Roster[playerID] = teamID
		if cellString(row, pIdx, "START_POSITION") != "" {
			box.Starters[teamID] = append(box.Starters[teamID], playerID)
		}
	}

	tIdx := teams.columns()
	for _, row := range teams.RowSet {
		teamID := cellInt64(row, tIdx, "TEAM_ID")
		if teamID == 0 {
			continue
		}
		box.TeamTotals = append(box.TeamTotals, TeamTotal{
			TeamID: teamID,
			Points: cellInt(row, tIdx, "PTS"),
		})
	}

	if len(box.TeamTotals) != 2 {
		return nil, fmt.Errorf("box score has %d team totals, want 2", len(box.TeamTotals))
	}
	for teamID, starters := range box.Starters {
		if len(starters) != 5 {
			return nil, fmt.Errorf("team %d has %d starters, want 5", teamID, len(starters))
		}
	}
	return box, nil
}
