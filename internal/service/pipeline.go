package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/rapm/internal/ingest/bref"
	"github.com/fortuna/rapm/internal/ingest/nba"
	"github.com/fortuna/rapm/internal/possession"
	"github.com/fortuna/rapm/internal/publisher"
	"github.com/fortuna/rapm/internal/store"
	"github.com/fortuna/rapm/internal/store/repository"
	"github.com/fortuna/rapm/internal/validate"
)

// Notifier receives a summary after a game's possessions are persisted.
// The websocket server implements this to push updates to subscribers.
type Notifier interface {
	NotifyGameProcessed(summary publisher.GameSummary)
}

// Pipeline runs one game end to end: ingest the play-by-play, segment it
// into possessions, validate the totals against the box score, persist,
// and announce. stats.nba.com is the authoritative box score source;
// basketball-reference is the fallback when the traditional box score has
// no usable team totals.
type Pipeline struct {
	ingester    *nba.Ingester
	fallback    *bref.Client
	games       *repository.GameRepository
	possessions *repository.PossessionRepository
	publisher   *publisher.RedisPublisher
	notifier    Notifier
	skipStore   bool
}

// Result summarizes one processed game.
type Result struct {
	Context     possession.GameContext
	Records     []possession.Record
	Totals      map[int64]int
	BoxSource   string
	Possessions int
}

// NewPipeline creates a pipeline over an ingester and database. db may be
// nil for dry runs that stop after validation.
func NewPipeline(ingester *nba.Ingester, db *store.Database) *Pipeline {
	p := &Pipeline{ingester: ingester}
	if db != nil {
		p.games = repository.NewGameRepository(db)
		p.possessions = repository.NewPossessionRepository(db)
	} else {
		p.skipStore = true
	}
	return p
}

// WithFallback attaches a basketball-reference client used when the
// stats.nba.com box score carries no team totals.
func (p *Pipeline) WithFallback(client *bref.Client) *Pipeline {
	p.fallback = client
	return p
}

// WithPublisher attaches a stream publisher for downstream consumers.
func (p *Pipeline) WithPublisher(pub *publisher.RedisPublisher) *Pipeline {
	p.publisher = pub
	return p
}

// WithNotifier attaches a notifier invoked after each processed game.
func (p *Pipeline) WithNotifier(n Notifier) *Pipeline {
	p.notifier = n
	return p
}

// ProcessGame runs the full pipeline for one game. A validation mismatch
// aborts persistence and is returned as a *validate.MismatchError so callers
// can distinguish bad data from transport failures.
func (p *Pipeline) ProcessGame(ctx context.Context, gameID string) (*Result, error) {
	start := time.Now()

	data, err := p.ingester.FetchGame(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("ingest game %s: %w", gameID, err)
	}

	table := possession.NewSequencer(data.Context, data.Events).Run()
	records := table.Records()
	totals := table.PointsByTeam()

	box, boxSource, err := p.boxTotals(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("box totals for game %s: %w", gameID, err)
	}

	result := &Result{
		Context:     data.Context,
		Records:     records,
		Totals:      totals,
		BoxSource:   boxSource,
		Possessions: len(records),
	}

	if err := validate.Table(gameID, table, box); err != nil {
		log.Printf("[pipeline] game %s: validation failed, skipping persistence: %v", gameID, err)
		return result, err
	}

	if !p.skipStore {
		if err := p.persist(ctx, data, box, boxSource, records); err != nil {
			return result, fmt.Errorf("persist game %s: %w", gameID, err)
		}
	}

	summary := p.summarize(data, box, boxSource, len(records))
	if p.publisher != nil {
		if err := p.publisher.PublishPossessionsReady(ctx, summary); err != nil {
			log.Printf("[pipeline] game %s: publish failed: %v", gameID, err)
		}
	}
	if p.notifier != nil {
		p.notifier.NotifyGameProcessed(summary)
	}

	log.Printf("[pipeline] game %s: %d possessions validated against %s in %s",
		gameID, len(records), boxSource, time.Since(start).Round(time.Millisecond))
	return result, nil
}

// boxTotals returns the authoritative per-team totals and their source.
// The traditional box score wins; basketball-reference is consulted only
// when it produced nothing usable.
func (p *Pipeline) boxTotals(ctx context.Context, data *nba.GameData) ([]validate.TeamPoints, string, error) {
	if usable(data.Box.TeamTotals) {
		box := make([]validate.TeamPoints, 0, len(data.Box.TeamTotals))
		for _, tt := range data.Box.TeamTotals {
			box = append(box, validate.TeamPoints{TeamID: tt.TeamID, Points: tt.Points})
		}
		return box, "stats.nba.com", nil
	}

	if p.fallback == nil {
		return nil, "", fmt.Errorf("no usable team totals and no fallback source configured")
	}
	if data.Date.IsZero() {
		return nil, "", fmt.Errorf("no usable team totals and no game date for fallback lookup")
	}

	homeAbbr := bref.AbbreviationForTeamID(data.Context.HomeTeamID)
	if homeAbbr == "" {
		return nil, "", fmt.Errorf("no abbreviation for home team %d", data.Context.HomeTeamID)
	}

	log.Printf("[pipeline] game %s: falling back to basketball-reference for box totals", data.Context.GameID)
	page, err := p.fallback.FetchBoxScore(ctx, data.Date, homeAbbr)
	if err != nil {
		return nil, "", fmt.Errorf("fetch fallback box score: %w", err)
	}
	line, err := bref.ParseLineScore(page)
	if err != nil {
		return nil, "", fmt.Errorf("parse fallback line score: %w", err)
	}

	box := make([]validate.TeamPoints, 0, len(line))
	for _, tt := range line {
		box = append(box, validate.TeamPoints{TeamID: tt.TeamID, Points: tt.Points})
	}
	return box, "basketball-reference.com", nil
}

func usable(totals []nba.TeamTotal) bool {
	if len(totals) != 2 {
		return false
	}
	for _, tt := range totals {
		if tt.TeamID == 0 || tt.Points <= 0 {
			return false
		}
	}
	return true
}

func (p *Pipeline) persist(ctx context.Context, data *nba.GameData, box []validate.TeamPoints, boxSource string, records []possession.Record) error {
	game := &store.Game{
		GameID:        data.Context.GameID,
		HomeTeamID:    data.Context.HomeTeamID,
		VisitorTeamID: data.Context.VisitorTeamID,
		Validated:     true,
		BoxSource:     sql.NullString{String: boxSource, Valid: true},
		ProcessedAt:   sql.NullTime{Time: time.Now(), Valid: true},
	}
	for _, tp := range box {
		switch tp.TeamID {
		case data.Context.HomeTeamID:
			game.HomePoints = sql.NullInt32{Int32: int32(tp.Points), Valid: true}
		case data.Context.VisitorTeamID:
			game.VisitorPoints = sql.NullInt32{Int32: int32(tp.Points), Valid: true}
		}
	}

	if err := p.games.Upsert(ctx, game); err != nil {
		return fmt.Errorf("upsert game: %w", err)
	}
	if err := p.possessions.ReplaceForGame(ctx, data.Context.GameID, records); err != nil {
		return fmt.Errorf("replace possessions: %w", err)
	}
	return nil
}

func (p *Pipeline) summarize(data *nba.GameData, box []validate.TeamPoints, boxSource string, count int) publisher.GameSummary {
	summary := publisher.GameSummary{
		GameID:        data.Context.GameID,
		HomeTeamID:    data.Context.HomeTeamID,
		VisitorTeamID: data.Context.VisitorTeamID,
		Possessions:   count,
		BoxSource:     boxSource,
	}
	for _, tp := range box {
		switch tp.TeamID {
		case data.Context.HomeTeamID:
			summary.HomePoints = tp.Points
		case data.Context.VisitorTeamID:
			summary.VisitorPoints = tp.Points
		}
	}
	return summary
}
