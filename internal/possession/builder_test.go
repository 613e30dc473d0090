package possession

import "testing"

func TestBuildRecordRoles(t *testing.T) {
	tests := []struct {
		name    string
		ev      Event
		wantOff int64
	}{
		{
			name:    "turnover puts the responsible team on offense",
			ev:      ev(7, EventTurnover, hawks, 101, "Young Bad Pass Turnover"),
			wantOff: hawks,
		},
		{
			name:    "made shot puts the shooter's team on offense",
			ev:      ev(7, EventMadeShot, celtics, 201, "Tatum Driving Layup (2 PTS)"),
			wantOff: celtics,
		},
		{
			name:    "free throw puts the shooter's team on offense",
			ev:      ev(7, EventFreeThrow, celtics, 201, "Tatum Free Throw 1 of 1 (1 PTS)"),
			wantOff: celtics,
		},
		{
			name:    "rebound puts the rebounding team on defense",
			ev:      ev(7, EventRebound, celtics, 201, "Tatum REBOUND (Off:0 Def:4)"),
			wantOff: hawks,
		},
		{
			name:    "team rebound resolves the franchise id from the player slot",
			ev:      ev(7, EventRebound, 0, celtics, "Celtics Rebound"),
			wantOff: hawks,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := BuildRecord(tt.ev, testCtx, 2)
			if rec.OffensiveTeamID != tt.wantOff {
				t.Errorf("offensive team = %d, want %d", rec.OffensiveTeamID, tt.wantOff)
			}
			wantDef := celtics
			if tt.wantOff == celtics {
				wantDef = hawks
			}
			if rec.DefensiveTeamID != wantDef {
				t.Errorf("defensive team = %d, want %d", rec.DefensiveTeamID, wantDef)
			}
			if rec.EventNum != tt.ev.EventNum || rec.Points != 2 {
				t.Errorf("record identity = (%d, %d), want (%d, 2)", rec.EventNum, rec.Points, tt.ev.EventNum)
			}
		})
	}
}

func TestBuildRecordPartitionsLineups(t *testing.T) {
	rec := BuildRecord(ev(7, EventMadeShot, hawks, 101, "Young Driving Layup (2 PTS)"), testCtx, 2)
	if rec.OffensivePlayers != hawksFive {
		t.Errorf("offensive players = %v, want %v", rec.OffensivePlayers, hawksFive)
	}
	if rec.DefensivePlayers != celticsFive {
		t.Errorf("defensive players = %v, want %v", rec.DefensivePlayers, celticsFive)
	}

	rec = BuildRecord(ev(8, EventRebound, hawks, 102, "Capela REBOUND"), testCtx, 0)
	if rec.OffensivePlayers != celticsFive || rec.DefensivePlayers != hawksFive {
		t.Errorf("rebound partition not swapped: off %v def %v", rec.OffensivePlayers, rec.DefensivePlayers)
	}
}
