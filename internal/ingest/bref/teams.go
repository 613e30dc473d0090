package bref

// Franchise identifiers as used by stats.nba.com, keyed by the abbreviations
// Basketball-Reference prints. BRK/CHO/PHO are the site's historical
// spellings; the league's own BKN/CHA/PHX forms are listed as well.
var teamIDByAbbreviation = map[string]int64{
	"ATL": 1610612737,
	"BOS": 1610612738,
	"BRK": 1610612751,
	"BKN": 1610612751,
	"CHO": 1610612766,
	"CHA": 1610612766,
	"CHI": 1610612741,
	"CLE": 1610612739,
	"DAL": 1610612742,
	"DEN": 1610612743,
	"DET": 1610612765,
	"GSW": 1610612744,
	"HOU": 1610612745,
	"IND": 1610612754,
	"LAC": 1610612746,
	"LAL": 1610612747,
	"MEM": 1610612763,
	"MIA": 1610612748,
	"MIL": 1610612749,
	"MIN": 1610612750,
	"NOP": 1610612740,
	"NYK": 1610612752,
	"OKC": 1610612760,
	"ORL": 1610612753,
	"PHI": 1610612755,
	"PHO": 1610612756,
	"PHX": 1610612756,
	"POR": 1610612757,
	"SAC": 1610612758,
	"SAS": 1610612759,
	"TOR": 1610612761,
	"UTA": 1610612762,
	"WAS": 1610612764,
}

// AbbreviationForTeamID returns the Basketball-Reference abbreviation for a
// franchise id, or "" when unknown.
func AbbreviationForTeamID(teamID int64) string {
	for abbr, id := range teamIDByAbbreviation {
		if id != teamID {
			continue
		}
		// Prefer the site's own spelling when two forms map to one id.
		switch abbr {
		case "BKN", "CHA", "PHX":
			continue
		}
		return abbr
	}
	return ""
}

// TeamIDForAbbreviation returns the franchise id for an abbreviation, or 0
// when unknown.
func TeamIDForAbbreviation(abbr string) int64 {
	return teamIDByAbbreviation[abbr]
}
