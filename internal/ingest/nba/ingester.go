package nba

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/fortuna/rapm/internal/possession"
)

// GameData is everything the possession pipeline needs for one game: the
// lineup-annotated event stream, the team context, and the authoritative box
// score totals to validate against.
type GameData struct {
	Context possession.GameContext
	Events  []possession.Event
	Box     *BoxScore
	Date    time.Time
}

// Ingester fetches and assembles game data from stats.nba.com.
type Ingester struct {
	client *Client
}

// NewIngester creates an ingester over the given client.
func NewIngester(client *Client) *Ingester {
	return &Ingester{client: client}
}

// FetchGame retrieves the play-by-play, game context, and box score for one
// game and annotates every event with the ten on-court players.
func (i *Ingester) FetchGame(ctx context.Context, gameID string) (*GameData, error) {
	summary, err := i.client.FetchGameSummary(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetch game summary: %w", err)
	}
	gc, err := ParseGameContext(summary, gameID)
	if err != nil {
		return nil, fmt.Errorf("parse game summary: %w", err)
	}
	date, err := ParseGameDate(summary)
	if err != nil {
		log.Printf("[ingest] game %s: no usable game date: %v", gameID, err)
	}

	boxResp, err := i.client.FetchBoxScore(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetch box score: %w", err)
	}
	box, err := ParseBoxScore(boxResp)
	if err != nil {
		return nil, fmt.Errorf("parse box score: %w", err)
	}

	pbpResp, err := i.client.FetchPlayByPlay(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("fetch play-by-play: %w", err)
	}
	rows, err := ParsePlayByPlay(pbpResp)
	if err != nil {
		return nil, fmt.Errorf("parse play-by-play: %w", err)
	}

	events, err := AnnotateLineups(rows, gc, box)
	if err != nil {
		return nil, fmt.Errorf("annotate lineups: %w", err)
	}

	log.Printf("[ingest] game %s: %d events, home %d vs visitor %d",
		gameID, len(events), gc.HomeTeamID, gc.VisitorTeamID)

	return &GameData{Context: gc, Events: events, Box: box, Date: date}, nil
}
