package store

import (
	"database/sql"
	"time"
)

// Game is one processed game: the team context plus the validation outcome.
type Game struct {
	GameID        string         `json:"game_id" db:"game_id"`
	HomeTeamID    int64          `json:"home_team_id" db:"home_team_id"`
	VisitorTeamID int64          `json:"visitor_team_id" db:"visitor_team_id"`
	HomePoints    sql.NullInt32  `json:"home_points,omitempty" db:"home_points"`
	VisitorPoints sql.NullInt32  `json:"visitor_points,omitempty" db:"visitor_points"`
	Validated     bool           `json:"validated" db:"validated"`
	BoxSource     sql.NullString `json:"box_source,omitempty" db:"box_source"`
	ProcessedAt   sql.NullTime   `json:"processed_at,omitempty" db:"processed_at"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// Possession is one stored possession record in RAPM observation format: the
// five offensive and five defensive player columns line up with the regression
// design matrix downstream consumers build.
type Possession struct {
	ID              int64     `json:"id" db:"id"`
	GameID          string    `json:"game_id" db:"game_id"`
	EventNum        int       `json:"event_num" db:"event_num"`
	Points          int       `json:"points" db:"points"`
	OffensiveTeamID int64     `json:"offensive_team_id" db:"offensive_team_id"`
	DefensiveTeamID int64     `json:"defensive_team_id" db:"defensive_team_id"`
	OffPlayer1      int64     `json:"offensive_player_1" db:"offensive_player_1"`
	OffPlayer2      int64     `json:"offensive_player_2" db:"offensive_player_2"`
	OffPlayer3      int64     `json:"offensive_player_3" db:"offensive_player_3"`
	OffPlayer4      int64     `json:"offensive_player_4" db:"offensive_player_4"`
	OffPlayer5      int64     `json:"offensive_player_5" db:"offensive_player_5"`
	DefPlayer1      int64     `json:"defensive_player_1" db:"defensive_player_1"`
	DefPlayer2      int64     `json:"defensive_player_2" db:"defensive_player_2"`
	DefPlayer3      int64     `json:"defensive_player_3" db:"defensive_player_3"`
	DefPlayer4      int64     `json:"defensive_player_4" db:"defensive_player_4"`
	DefPlayer5      int64     `json:"defensive_player_5" db:"defensive_player_5"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}
