package possession

import (
	"reflect"
	"testing"
)

func TestSequencerTurnover(t *testing.T) {
	events := []Event{
		ev(7, EventTurnover, hawks, 101, "Young Bad Pass Turnover (P1.T3)"),
	}

	table := NewSequencer(testCtx, events).Run()
	if table.Len() != 1 {
		t.Fatalf("table has %d records, want 1", table.Len())
	}
	rec, ok := table.Get(7)
	if !ok {
		t.Fatal("no record keyed at event 7")
	}
	if rec.Points != 0 {
		t.Errorf("points = %d, want 0", rec.Points)
	}
	if rec.OffensiveTeamID != hawks || rec.DefensiveTeamID != celtics {
		t.Errorf("roles = off %d def %d, want off %d def %d",
			rec.OffensiveTeamID, rec.DefensiveTeamID, hawks, celtics)
	}
}

func TestSequencerAndOneFolding(t *testing.T) {
	events := []Event{
		ev(10, EventMadeShot, hawks, 101, "Young Driving Layup (8 PTS)"),
		ev(11, EventFreeThrow, hawks, 101, "Young Free Throw 1 of 1 (9 PTS)"),
	}

	table := NewSequencer(testCtx, events).Run()
	if table.Len() != 1 {
		t.Fatalf("table has %d records, want 1", table.Len())
	}
	if _, ok := table.Get(10); ok {
		t.Error("record keyed at event 10 should have been retracted")
	}
	rec, ok := table.Get(11)
	if !ok {
		t.Fatal("no record keyed at event 11")
	}
	if rec.Points != 3 {
		t.Errorf("points = %d, want 3", rec.Points)
	}
}

func TestSequencerReboundBoundary(t *testing.T) {
	tests := []struct {
		name      string
		rebounder Event
		wantLen   int
		wantOff   int64
	}{
		{
			name:      "same team rebound keeps the possession alive",
			rebounder: ev(6, EventRebound, hawks, 102, "Capela REBOUND (Off:1 Def:0)"),
			wantLen:   0,
		},
		{
			name:      "opposing rebound closes a zero point possession",
			rebounder: ev(6, EventRebound, celtics, 201, "Tatum REBOUND (Off:0 Def:4)"),
			wantLen:   1,
			wantOff:   hawks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := []Event{
				ev(5, EventMissedShot, hawks, 101, "MISS Young 26' 3PT Jump Shot"),
				tt.rebounder,
			}
			table := NewSequencer(testCtx, events).Run()
			if table.Len() != tt.wantLen {
				t.Fatalf("table has %d records, want %d", table.Len(), tt.wantLen)
			}
			if tt.wantLen == 0 {
				return
			}
			rec, ok := table.Get(6)
			if !ok {
				t.Fatal("no record keyed at event 6")
			}
			if rec.Points != 0 {
				t.Errorf("points = %d, want 0", rec.Points)
			}
			if rec.OffensiveTeamID != tt.wantOff {
				t.Errorf("offensive team = %d, want %d", rec.OffensiveTeamID, tt.wantOff)
			}
			if rec.DefensiveTeamID != celtics {
				t.Errorf("defensive team = %d, want %d", rec.DefensiveTeamID, celtics)
			}
		})
	}
}

func TestSequencerTripCollapsing(t *testing.T) {
	events := []Event{
		ev(5, EventMissedShot, hawks, 101, "MISS Young 26' 3PT Jump Shot"),
		ev(6, EventFreeThrow, hawks, 101, "Young Free Throw 1 of 1 (9 PTS)"),
	}

	table := NewSequencer(testCtx, events).Run()
	if table.Len() != 1 {
		t.Fatalf("table has %d records, want 1", table.Len())
	}
	rec, ok := table.Get(6)
	if !ok {
		t.Fatal("no record keyed at event 6")
	}
	if rec.Points != 1 {
		t.Errorf("points = %d, want 1", rec.Points)
	}
}

// fullGame is a small but complete stream exercising trips, and-1s, second
// chances, and both rebound outcomes.
func fullGame() []Event {
	return []Event{
		// Hawks possession: and-1.
		ev(10, EventMadeShot, hawks, 101, "Young Driving Layup (2 PTS)"),
		ev(11, EventFreeThrow, hawks, 101, "Young Free Throw 1 of 1 (3 PTS)"),
		// Celtics possession: made three.
		ev(14, EventMadeShot, celtics, 201, "Tatum 27' 3PT Jump Shot (3 PTS)"),
		// Hawks possession: turnover.
		ev(17, EventTurnover, hawks, 103, "Murray Bad Pass Turnover"),
		// Celtics possession: two shot trip, both made.
		ev(20, EventFreeThrow, celtics, 202, "Brown Free Throw 1 of 2 (1 PTS)"),
		ev(21, EventFreeThrow, celtics, 202, "Brown Free Throw 2 of 2 (2 PTS)"),
		// Hawks possession: miss, offensive board, putback.
		ev(24, EventMissedShot, hawks, 102, "MISS Capela Hook Shot"),
		ev(25, EventRebound, hawks, 102, "Capela REBOUND (Off:1 Def:2)"),
		ev(26, EventMadeShot, hawks, 102, "Capela Putback Dunk (2 PTS)"),
		// Celtics possession: split trip, miss rebounded by the defense.
		ev(30, EventMissedShot, celtics, 203, "MISS White Pullup Jump Shot"),
		ev(31, EventFreeThrow, celtics, 203, "White Free Throw 1 of 2 (1 PTS)"),
		ev(32, EventFreeThrow, celtics, 203, "MISS White Free Throw 2 of 2"),
		ev(33, EventRebound, hawks, 104, "Hunter REBOUND (Off:0 Def:1)"),
		// Hawks possession: missed shot, defensive team rebound.
		ev(36, EventMissedShot, hawks, 105, "MISS Bogdanovic 3PT Jump Shot"),
		ev(37, EventRebound, 0, celtics, "Celtics Rebound"),
	}
}

func TestSequencerFullGame(t *testing.T) {
	table := NewSequencer(testCtx, fullGame()).Run()

	wantKeys := []int{11, 14, 17, 21, 26, 33, 37}
	recs := table.Records()
	if len(recs) != len(wantKeys) {
		t.Fatalf("table has %d records, want %d: %+v", len(recs), len(wantKeys), recs)
	}
	for i, rec := range recs {
		if rec.EventNum != wantKeys[i] {
			t.Errorf("record %d keyed at %d, want %d", i, rec.EventNum, wantKeys[i])
		}
	}

	totals := table.PointsByTeam()
	if totals[hawks] != 5 {
		t.Errorf("hawks points = %d, want 5", totals[hawks])
	}
	if totals[celtics] != 6 {
		t.Errorf("celtics points = %d, want 6", totals[celtics])
	}
}

func TestSequencerIdempotence(t *testing.T) {
	first := NewSequencer(testCtx, fullGame()).Run().Records()
	second := NewSequencer(testCtx, fullGame()).Run().Records()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-running over identical input diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestSequencerUniqueKeysAndPartitions(t *testing.T) {
	seen := make(map[int]bool)
	for _, rec := range NewSequencer(testCtx, fullGame()).Run().Records() {
		if seen[rec.EventNum] {
			t.Errorf("duplicate record key %d", rec.EventNum)
		}
		seen[rec.EventNum] = true

		players := make(map[int64]bool)
		for _, p := range rec.OffensivePlayers {
			players[p] = true
		}
		for _, p := range rec.DefensivePlayers {
			players[p] = true
		}
		if len(players) != 10 {
			t.Errorf("record %d covers %d distinct players, want 10", rec.EventNum, len(players))
		}
	}
}
