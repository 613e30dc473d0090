package nba

import (
	"testing"

	"github.com/fortuna/rapm/internal/possession"
)

func testBox() *BoxScore {
	box := &BoxScore{
		Roster:   make(map[int64]int64),
		Starters: make(map[int64][]int64),
	}
	for i := int64(0); i < 7; i++ {
		box.Roster[101+i] = hawks
		box.Roster[201+i] = celtics
	}
	box.Starters[hawks] = []int64{101, 102, 103, 104, 105}
	box.Starters[celtics] = []int64{201, 202, 203, 204, 205}
	return box
}

func play(num, period, typ int, team, player int64) PlayRow {
	return PlayRow{Event: possession.Event{
		EventNum: num,
		Period:   period,
		Type:     typ,
		TeamID:   team,
		PlayerID: player,
	}}
}

func sub(num, period int, team, out, in int64) PlayRow {
	row := play(num, period, possession.EventSubstitution, team, out)
	row.IncomingPlayerID = in
	return row
}

func TestAnnotateLineupsStartsFromBoxScore(t *testing.T) {
	gc := possession.GameContext{HomeTeamID: hawks, VisitorTeamID: celtics}
	rows := []PlayRow{
		play(2, 1, possession.EventMadeShot, hawks, 101),
	}

	events, err := AnnotateLineups(rows, gc, testBox())
	if err != nil {
		t.Fatalf("AnnotateLineups() error: %v", err)
	}
	want := [5]int64{101, 102, 103, 104, 105}
	if events[0].HomePlayers != want {
		t.Errorf("home players = %v, want %v", events[0].HomePlayers, want)
	}
	if events[0].VisitorPlayers != [5]int64{201, 202, 203, 204, 205} {
		t.Errorf("visitor players = %v", events[0].VisitorPlayers)
	}
}

func TestAnnotateLineupsAppliesSubstitutions(t *testing.T) {
	gc := possession.GameContext{HomeTeamID: hawks, VisitorTeamID: celtics}
	rows := []PlayRow{
		play(2, 1, possession.EventMadeShot, hawks, 101),
		sub(4, 1, hawks, 105, 106),
		play(6, 1, possession.EventTurnover, celtics, 201),
	}

	events, err := AnnotateLineups(rows, gc, testBox())
	if err != nil {
		t.Fatalf("AnnotateLineups() error: %v", err)
	}

	// The substitution row itself is stamped with the pre-sub lineup.
	if events[1].HomePlayers != [5]int64{101, 102, 103, 104, 105} {
		t.Errorf("sub row home players = %v", events[1].HomePlayers)
	}
	if events[2].HomePlayers != [5]int64{101, 102, 103, 104, 106} {
		t.Errorf("post-sub home players = %v", events[2].HomePlayers)
	}
}

func TestAnnotateLineupsDerivesLaterPeriods(t *testing.T) {
	gc := possession.GameContext{HomeTeamID: hawks, VisitorTeamID: celtics}
	rows := []PlayRow{
		play(2, 1, possession.EventMadeShot, hawks, 101),
		sub(4, 1, hawks, 105, 106),
		// Second period: 107 checks in for 104 at some point, and 106 acts
		// before any substitution, so the Q2 lineup opens as Q1 ended.
		play(10, 2, possession.EventMadeShot, hawks, 106),
		sub(12, 2, hawks, 104, 107),
		play(14, 2, possession.EventTurnover, hawks, 107),
	}

	events, err := AnnotateLineups(rows, gc, testBox())
	if err != nil {
		t.Fatalf("AnnotateLineups() error: %v", err)
	}

	if events[2].HomePlayers != [5]int64{101, 102, 103, 104, 106} {
		t.Errorf("period 2 opening home players = %v", events[2].HomePlayers)
	}
	if events[4].HomePlayers != [5]int64{101, 102, 103, 106, 107} {
		t.Errorf("period 2 post-sub home players = %v", events[4].HomePlayers)
	}
	// Visitors had no period 2 events at all; they carry over unchanged.
	if events[3].VisitorPlayers != [5]int64{201, 202, 203, 204, 205} {
		t.Errorf("period 2 visitor players = %v", events[3].VisitorPlayers)
	}
}

func TestAnnotateLineupsRequiresStarters(t *testing.T) {
	gc := possession.GameContext{HomeTeamID: hawks, VisitorTeamID: celtics}
	box := testBox()
	box.Starters[hawks] = box.Starters[hawks][:3]

	if _, err := AnnotateLineups([]PlayRow{play(2, 1, possession.EventMadeShot, hawks, 101)}, gc, box); err == nil {
		t.Error("missing starters should be rejected")
	}
}
