package bref

import "testing"

const lineScorePage = `
<html><body>
<div id="content">
<!--
<table id="line_score">
<tbody>
<tr><th data-stat="team"><a href="/teams/BOS/2024.html">BOS</a></th>
<td data-stat="1">28</td><td data-stat="2">30</td><td data-stat="3">25</td><td data-stat="4">25</td>
<td data-stat="T">108</td></tr>
<tr><th data-stat="team"><a href="/teams/ATL/2024.html">ATL</a></th>
<td data-stat="1">30</td><td data-stat="2">27</td><td data-stat="3">28</td><td data-stat="4">27</td>
<td data-stat="T">112</td></tr>
</tbody>
</table>
-->
</div>
</body></html>`

func TestParseLineScore(t *testing.T) {
	totals, err := ParseLineScore(lineScorePage)
	if err != nil {
		t.Fatalf("ParseLineScore() error: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("parsed %d totals, want 2", len(totals))
	}

	if totals[0].Abbreviation != "BOS" || totals[0].Points != 108 || totals[0].TeamID != 1610612738 {
		t.Errorf("visitor total = %+v", totals[0])
	}
	if totals[1].Abbreviation != "ATL" || totals[1].Points != 112 || totals[1].TeamID != 1610612737 {
		t.Errorf("home total = %+v", totals[1])
	}
}

func TestParseLineScoreRejectsPartialTables(t *testing.T) {
	if _, err := ParseLineScore("<html><body></body></html>"); err == nil {
		t.Error("missing line score should be rejected")
	}
}

func TestAbbreviationRoundTrip(t *testing.T) {
	tests := []struct {
		abbr string
		id   int64
	}{
		{"ATL", 1610612737},
		{"BRK", 1610612751},
		{"PHO", 1610612756},
	}
	for _, tt := range tests {
		if got := TeamIDForAbbreviation(tt.abbr); got != tt.id {
			t.Errorf("TeamIDForAbbreviation(%q) = %d, want %d", tt.abbr, got, tt.id)
		}
		if got := AbbreviationForTeamID(tt.id); got != tt.abbr {
			t.Errorf("AbbreviationForTeamID(%d) = %q, want %q", tt.id, got, tt.abbr)
		}
	}

	if got := TeamIDForAbbreviation("XYZ"); got != 0 {
		t.Errorf("TeamIDForAbbreviation(XYZ) = %d, want 0", got)
	}
}
