package repository

import (
	"context"
	"fmt"

	"github.com/fortuna/rapm/internal/possession"
	"github.com/fortuna/rapm/internal/store"
)

// PossessionRepository handles possession table persistence.
type PossessionRepository struct {
	db *store.Database
}

// NewPossessionRepository creates a new possession repository.
func NewPossessionRepository(db *store.Database) *PossessionRepository {
	return &PossessionRepository{db: db}
}

// ReplaceForGame atomically replaces a game's stored possession table with the
// given records. Reprocessing a game always overwrites whole-table so a stale
// partial run can never survive alongside fresh records.
func (r *PossessionRepository) ReplaceForGame(ctx context.Context, gameID string, records []possession.Record) error {
	tx, err := r.db.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM possessions WHERE game_id = $1", gameID); err != nil {
		return fmt.Errorf("clearing possessions for game %s: %w", gameID, err)
	}

	query := `
		INSERT INTO possessions (game_id, event_num, points,
			offensive_team_id, defensive_team_id,
			offensive_player_1, offensive_player_2, offensive_player_3,
			offensive_player_4, offensive_player_5,
			defensive_player_1, defensive_player_2, defensive_player_3,
			defensive_player_4, defensive_player_5)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	for _, rec := range records {
		_, err := tx.ExecContext(ctx, query,
			gameID, rec.EventNum, rec.Points,
			rec.OffensiveTeamID, rec.DefensiveTeamID,
			rec.OffensivePlayers[0], rec.OffensivePlayers[1], rec.OffensivePlayers[2],
			rec.OffensivePlayers[3], rec.OffensivePlayers[4],
			rec.DefensivePlayers[0], rec.DefensivePlayers[1], rec.DefensivePlayers[2],
			rec.DefensivePlayers[3], rec.DefensivePlayers[4],
		)
		if err != nil {
			return fmt.Errorf("inserting possession %d for game %s: %w", rec.EventNum, gameID, err)
		}
	}

	return tx.Commit()
}

// GetByGame returns a game's stored possessions ordered by event number.
func (r *PossessionRepository) GetByGame(ctx context.Context, gameID string) ([]*store.Possession, error) {
	query := `
		SELECT id, game_id, event_num, points,
			offensive_team_id, defensive_team_id,
			offensive_player_1, offensive_player_2, offensive_player_3,
			offensive_player_4, offensive_player_5,
			defensive_player_1, defensive_player_2, defensive_player_3,
			defensive_player_4, defensive_player_5,
			created_at
		FROM possessions
		WHERE game_id = $1
		ORDER BY event_num
	`

	rows, err := r.db.DB().QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("querying possessions: %w", err)
	}
	defer rows.Close()

	var possessions []*store.Possession
	for rows.Next() {
		p := &store.Possession{}
		err := rows.Scan(
			&p.ID, &p.GameID, &p.EventNum, &p.Points,
			&p.OffensiveTeamID, &p.DefensiveTeamID,
			&p.OffPlayer1, &p.OffPlayer2, &p.OffPlayer3, &p.OffPlayer4, &p.OffPlayer5,
			&p.DefPlayer1, &p.DefPlayer2, &p.DefPlayer3, &p.DefPlayer4, &p.DefPlayer5,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning possession: %w", err)
		}
		possessions = append(possessions, p)
	}
	return possessions, rows.Err()
}

// CountByGame returns the number of stored possessions for a game.
func (r *PossessionRepository) CountByGame(ctx context.Context, gameID string) (int, error) {
	var count int
	err := r.db.DB().QueryRowContext(ctx, "SELECT COUNT(*) FROM possessions WHERE game_id = $1", gameID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting possessions: %w", err)
	}
	return count, nil
}
