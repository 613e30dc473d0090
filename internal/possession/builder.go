package possession

// Record is one possession: who was on the floor for each side and how many
// points the offense produced. EventNum is the boundary event's number and
// serves as the record's identity key for retraction.
type Record struct {
	EventNum         int     `json:"event_num"`
	Points           int     `json:"points"`
	OffensiveTeamID  int64   `json:"offensive_team_id"`
	DefensiveTeamID  int64   `json:"defensive_team_id"`
	OffensivePlayers [5]int64 `json:"offensive_players"`
	DefensivePlayers [5]int64 `json:"defensive_players"`
}

// BuildRecord assigns offense and defense for a boundary event and partitions
// the ten on-court players accordingly. Turnovers and scores put the
// responsible player's team on offense; a rebound puts it on defense, since
// the rebounding team just ended the opponent's possession.
func BuildRecord(ev Event, gc GameContext, points int) Record {
	offenseIsHome := responsibleTeam(ev, gc) == gc.HomeTeamID
	if ev.Type == EventRebound {
		offenseIsHome = !offenseIsHome
	}

	rec := Record{EventNum: ev.EventNum, Points: points}
	if offenseIsHome {
		rec.OffensiveTeamID = gc.HomeTeamID
		rec.DefensiveTeamID = gc.VisitorTeamID
		rec.OffensivePlayers = ev.HomePlayers
		rec.DefensivePlayers = ev.VisitorPlayers
	} else {
		rec.OffensiveTeamID = gc.VisitorTeamID
		rec.DefensiveTeamID = gc.HomeTeamID
		rec.OffensivePlayers = ev.VisitorPlayers
		rec.DefensivePlayers = ev.HomePlayers
	}
	return rec
}

// responsibleTeam resolves the event's responsible team against the game's two
// franchises. Team rebound rows leave TeamID empty and carry the franchise id
// in the player slot, so both identities are consulted.
func responsibleTeam(ev Event, gc GameContext) int64 {
	switch {
	case ev.TeamID == gc.HomeTeamID || ev.TeamID == gc.VisitorTeamID:
		return ev.TeamID
	case ev.PlayerID == gc.HomeTeamID || ev.PlayerID == gc.VisitorTeamID:
		return ev.PlayerID
	default:
		return ev.TeamID
	}
}
