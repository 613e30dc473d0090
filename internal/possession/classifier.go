package possession

// ReboundResult is the outcome of classifying a rebound event. A zero value
// means the rebound does not end a possession and the sequencer should skip it.
type ReboundResult struct {
	// Defensive is true when the rebounding team differs from the team that
	// committed the qualifying miss, ending the opponent's possession.
	Defensive bool
	// Points already scored on the possession being closed (made free throws
	// of an incomplete trip, plus an and-1 field goal when present).
	Points int
	// VoidNum is the event number of a previously emitted record whose
	// scoring is folded into this possession, or 0 when nothing is voided.
	VoidNum int
}

// ScoreResult is the outcome of classifying a made field goal or free throw.
type ScoreResult struct {
	Boundary bool
	Points   int
	VoidNum  int
}

// ClassifyRebound decides whether a rebound ends a possession. The lookback
// window is strictly between the cursor and the rebound. It is a pure function
// of its inputs; anomalies (no qualifying miss in the window) yield the zero
// result rather than an error.
func ClassifyRebound(events []Event, reb Event, cursor int) ReboundResult {
	var miss *Event
	for i := range events {
		e := &events[i]
		if e.EventNum <= cursor || e.EventNum >= reb.EventNum {
			continue
		}
		if e.Type == EventMissedShot {
			miss = e
		} else if e.Type == EventFreeThrow && e.IsMiss() && e.IsFinalFreeThrow() {
			miss = e
		}
	}
	if miss == nil {
		// Offensive board on a live trip, or malformed data. Not a boundary.
		return ReboundResult{}
	}

	res := ReboundResult{Defensive: isDefensiveRebound(*miss, reb)}
	if miss.Type == EventMissedShot {
		return res
	}

	// The terminal miss is the last free throw of a trip. Fold the trip's made
	// attempts, and any and-1 field goal by the shooter, into this possession.
	var madeFG, missedFG *Event
	madeFTs := 0
	for i := range events {
		e := &events[i]
		if e.EventNum <= cursor || e.EventNum >= reb.EventNum || e.PlayerID != miss.PlayerID {
			continue
		}
		switch e.Type {
		case EventMadeShot:
			madeFG = e
		case EventMissedShot:
			missedFG = e
		case EventFreeThrow:
			if !e.IsMiss() {
				madeFTs++
			}
		}
	}

	if madeFG != nil {
		res.Points = ShotValue(*madeFG) + madeFTs
		res.VoidNum = madeFG.EventNum
		return res
	}
	res.Points = madeFTs
	if missedFG != nil {
		// The shooter's missed field goal started this trip; void it so it is
		// never treated as a terminal miss again.
		res.VoidNum = missedFG.EventNum
	}
	return res
}

// isDefensiveRebound compares the qualifying miss's team against both the
// rebounder's team and player identities. Team rebound rows encode the
// franchise id in the player slot, so the comparison is made at both
// granularities.
func isDefensiveRebound(miss, reb Event) bool {
	return miss.TeamID != reb.TeamID && miss.TeamID != reb.PlayerID
}

// ClassifyScore decides whether a made field goal or free throw closes a
// possession and how many points the possession produced.
//
// The and-1 search is inclusive of the cursor: a made basket closes a
// possession immediately, and the trailing free throw must be able to locate
// that basket one event back in order to fold it. Free-throw counting stays
// strictly above the cursor so an attempt that already closed a possession is
// never counted twice.
func ClassifyScore(events []Event, ev Event, cursor int, homeTeamID int64) ScoreResult {
	if ev.Type == EventMadeShot {
		points := ShotValue(ev)
		for i := range events {
			e := &events[i]
			if e.EventNum <= cursor || e.EventNum > ev.EventNum {
				continue
			}
			if e.madeFreeThrowFor(ev.TeamID, homeTeamID) {
				points++
			}
		}
		return ScoreResult{Boundary: true, Points: points}
	}

	// Free throw: only a made, final attempt of a trip is terminal. Earlier
	// attempts of a multi-shot trip must not close the possession since only
	// the last one sees the full trip in its window.
	if ev.IsMiss() || !ev.IsFinalFreeThrow() {
		return ScoreResult{}
	}

	var madeFG *Event
	for i := range events {
		e := &events[i]
		if e.EventNum < cursor || e.EventNum > ev.EventNum {
			continue
		}
		if e.Type == EventMadeShot && e.PlayerID == ev.PlayerID {
			madeFG = e
		}
	}

	if madeFG != nil {
		points := ShotValue(*madeFG)
		for i := range events {
			e := &events[i]
			if e.EventNum <= cursor || e.EventNum > ev.EventNum {
				continue
			}
			if e.madeFreeThrowFor(ev.TeamID, homeTeamID) {
				points++
			}
		}
		return ScoreResult{Boundary: true, Points: points, VoidNum: madeFG.EventNum}
	}

	points := 0
	for i := range events {
		e := &events[i]
		if e.EventNum <= cursor || e.EventNum > ev.EventNum {
			continue
		}
		if e.madeFreeThrowBy(ev.PlayerID) {
			points++
		}
	}
	return ScoreResult{Boundary: true, Points: points}
}
