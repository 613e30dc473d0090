package possession

import "strings"

// NBA play-by-play event message types (EVENTMSGTYPE). Types not listed here
// are ignored by the possession engine.
const (
	EventMadeShot     = 1
	EventMissedShot   = 2
	EventFreeThrow    = 3
	EventRebound      = 4
	EventTurnover     = 5
	EventSubstitution = 8
)

// Description markers used by the stats.nba.com feed. The home and visitor
// description columns are written independently and frequently desync, so
// predicates check both sides.
const (
	missMarker  = "MISS"
	threeMarker = "3PT"
)

var tripMarkers = []string{"1 of 1", "2 of 2", "3 of 3"}

// Event is one lineup-annotated play-by-play row. EventNum is strictly
// increasing within a game and unique, and is the identity key for possession
// records derived from it.
type Event struct {
	EventNum           int
	Type               int
	Period             int
	HomeDescription    string
	VisitorDescription string

	// Responsible party ("player1" in the source feed). Team rebound rows
	// carry the franchise id in PlayerID with TeamID left empty.
	TeamID   int64
	PlayerID int64

	HomePlayers    [5]int64
	VisitorPlayers [5]int64
}

// GameContext identifies the two teams of one game. Immutable for the
// duration of processing.
type GameContext struct {
	GameID        string
	HomeTeamID    int64
	VisitorTeamID int64
}

func (e Event) descContains(marker string) bool {
	return strings.Contains(e.HomeDescription, marker) ||
		strings.Contains(e.VisitorDescription, marker)
}

// IsMiss reports whether either description marks the attempt as missed.
func (e Event) IsMiss() bool {
	return e.descContains(missMarker)
}

// IsThree reports whether either description marks a three-point attempt.
func (e Event) IsThree() bool {
	return e.descContains(threeMarker)
}

// IsFinalFreeThrow reports whether this free throw is the last attempt of its
// trip ("1 of 1", "2 of 2", "3 of 3"). Only the final attempt of a trip may
// close a possession.
func (e Event) IsFinalFreeThrow() bool {
	for _, marker := range tripMarkers {
		if e.descContains(marker) {
			return true
		}
	}
	return false
}

// SideDescription returns the description column belonging to teamID's side.
func (e Event) SideDescription(teamID, homeTeamID int64) string {
	if teamID == homeTeamID {
		return e.HomeDescription
	}
	return e.VisitorDescription
}

// madeFreeThrowFor reports whether this event is a free throw recorded as made
// on teamID's description column. Counting on a single side keeps desynced
// home/visitor strings from double-counting an attempt.
func (e Event) madeFreeThrowFor(teamID, homeTeamID int64) bool {
	if e.Type != EventFreeThrow {
		return false
	}
	desc := e.SideDescription(teamID, homeTeamID)
	return desc != "" && !strings.Contains(desc, missMarker)
}

// madeFreeThrowBy reports whether this event is a free throw made by playerID.
func (e Event) madeFreeThrowBy(playerID int64) bool {
	return e.Type == EventFreeThrow && e.PlayerID == playerID && !e.IsMiss()
}

// ShotValue returns the point value of a field goal event.
func ShotValue(e Event) int {
	if e.IsThree() {
		return 3
	}
	return 2
}
