package service

import (
	"testing"

	"github.com/fortuna/rapm/internal/ingest/nba"
	"github.com/fortuna/rapm/internal/possession"
	"github.com/fortuna/rapm/internal/validate"
)

func TestUsableTeamTotals(t *testing.T) {
	tests := []struct {
		name   string
		totals []nba.TeamTotal
		want   bool
	}{
		{
			name: "two positive totals",
			totals: []nba.TeamTotal{
				{TeamID: 1610612737, Points: 112},
				{TeamID: 1610612738, Points: 108},
			},
			want: true,
		},
		{
			name: "missing team",
			totals: []nba.TeamTotal{
				{TeamID: 1610612737, Points: 112},
			},
			want: false,
		},
		{
			name: "zero points",
			totals: []nba.TeamTotal{
				{TeamID: 1610612737, Points: 112},
				{TeamID: 1610612738, Points: 0},
			},
			want: false,
		},
		{
			name:   "empty",
			totals: nil,
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := usable(tt.totals); got != tt.want {
				t.Errorf("usable(%v) = %v, want %v", tt.totals, got, tt.want)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	p := &Pipeline{}
	data := &nba.GameData{
		Context: possession.GameContext{
			GameID:        "0022300001",
			HomeTeamID:    1610612737,
			VisitorTeamID: 1610612738,
		},
	}
	box := []validate.TeamPoints{
		{TeamID: 1610612738, Points: 108},
		{TeamID: 1610612737, Points: 112},
	}

	summary := p.summarize(data, box, "stats.nba.com", 214)

	if summary.GameID != "0022300001" {
		t.Errorf("GameID = %q", summary.GameID)
	}
	if summary.HomePoints != 112 || summary.VisitorPoints != 108 {
		t.Errorf("points = %d/%d, want 112/108", summary.HomePoints, summary.VisitorPoints)
	}
	if summary.Possessions != 214 || summary.BoxSource != "stats.nba.com" {
		t.Errorf("summary = %+v", summary)
	}
}
