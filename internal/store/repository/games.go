package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fortuna/rapm/internal/store"
)

// GameRepository handles game data access.
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// Upsert inserts or refreshes a game row.
func (r *GameRepository) Upsert(ctx context.Context, game *store.Game) error {
	query := `
		INSERT INTO games (game_id, home_team_id, visitor_team_id, home_points,
			visitor_points, validated, box_source, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (game_id) DO UPDATE SET
			home_team_id = EXCLUDED.home_team_id,
			visitor_team_id = EXCLUDED.visitor_team_id,
			home_points = EXCLUDED.home_points,
			visitor_points = EXCLUDED.visitor_points,
			validated = EXCLUDED.validated,
			box_source = EXCLUDED.box_source,
			processed_at = EXCLUDED.processed_at,
			updated_at = NOW()
	`
	_, err := r.db.DB().ExecContext(ctx, query,
		game.GameID, game.HomeTeamID, game.VisitorTeamID,
		game.HomePoints, game.VisitorPoints, game.Validated,
		game.BoxSource, game.ProcessedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting game %s: %w", game.GameID, err)
	}
	return nil
}

// GetByID finds a game by its identifier.
func (r *GameRepository) GetByID(ctx context.Context, gameID string) (*store.Game, error) {
	query := `
		SELECT game_id, home_team_id, visitor_team_id, home_points,
			visitor_points, validated, box_source, processed_at,
			created_at, updated_at
		FROM games
		WHERE game_id = $1
	`

	game := &store.Game{}
	err := r.db.DB().QueryRowContext(ctx, query, gameID).Scan(
		&game.GameID, &game.HomeTeamID, &game.VisitorTeamID, &game.HomePoints,
		&game.VisitorPoints, &game.Validated, &game.BoxSource, &game.ProcessedAt,
		&game.CreatedAt, &game.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %s: %w", gameID, sql.ErrNoRows)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}
	return game, nil
}
