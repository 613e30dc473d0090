package possession

import "sort"

// Table is the ordered collection of possession records for one game, keyed by
// boundary event number. Mutable only by append and retraction while the
// sequencer runs.
type Table struct {
	records map[int]Record
}

// NewTable returns an empty possession table.
func NewTable() *Table {
	return &Table{records: make(map[int]Record)}
}

func (t *Table) append(rec Record) {
	t.records[rec.EventNum] = rec
}

// Retract removes the record keyed by eventNum. Removing an absent key is a
// no-op: the index may never have been classified as a boundary in the first
// place.
func (t *Table) Retract(eventNum int) {
	delete(t.records, eventNum)
}

// Len returns the number of retained records.
func (t *Table) Len() int {
	return len(t.records)
}

// Get returns the record keyed by eventNum, if retained.
func (t *Table) Get(eventNum int) (Record, bool) {
	rec, ok := t.records[eventNum]
	return rec, ok
}

// Records returns the retained records ordered by boundary event number.
func (t *Table) Records() []Record {
	out := make([]Record, 0, len(t.records))
	for _, rec := range t.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventNum < out[j].EventNum })
	return out
}

// PointsByTeam sums possession points grouped by offensive team.
func (t *Table) PointsByTeam() map[int64]int {
	totals := make(map[int64]int)
	for _, rec := range t.records {
		totals[rec.OffensiveTeamID] += rec.Points
	}
	return totals
}

// Sequencer drives the classifier and builder across one game's ordered event
// stream. It owns the last-possession cursor and the accumulating table.
type Sequencer struct {
	gc     GameContext
	events []Event
	cursor int
	table  *Table
}

// NewSequencer creates a sequencer for one game. Events must be ordered by
// ascending event number.
func NewSequencer(gc GameContext, events []Event) *Sequencer {
	return &Sequencer{gc: gc, events: events, table: NewTable()}
}

// Run performs the single pass over the event stream and returns the finalized
// possession table. Running twice over identical input produces an identical
// table.
func (s *Sequencer) Run() *Table {
	s.cursor = 0
	s.table = NewTable()

	for _, ev := range s.events {
		switch ev.Type {
		case EventTurnover:
			s.commit(BuildRecord(ev, s.gc, 0), 0)
		case EventRebound:
			res := ClassifyRebound(s.events, ev, s.cursor)
			if res.Defensive {
				s.commit(BuildRecord(ev, s.gc, res.Points), res.VoidNum)
			}
		case EventMadeShot, EventFreeThrow:
			res := ClassifyScore(s.events, ev, s.cursor, s.gc.HomeTeamID)
			if res.Boundary {
				s.commit(BuildRecord(ev, s.gc, res.Points), res.VoidNum)
			}
		}
	}
	return s.table
}

func (s *Sequencer) commit(rec Record, voidNum int) {
	if voidNum != 0 {
		s.table.Retract(voidNum)
	}
	s.table.append(rec)
	s.cursor = rec.EventNum
}
