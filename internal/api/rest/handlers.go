package rest

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fortuna/rapm/internal/service"
	"github.com/fortuna/rapm/internal/store"
	"github.com/fortuna/rapm/internal/store/repository"
	"github.com/fortuna/rapm/internal/validate"
	"github.com/gorilla/mux"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	db          *store.Database
	games       *repository.GameRepository
	possessions *repository.PossessionRepository
	pipeline    *service.Pipeline
}

// NewHandler creates a new handler
func NewHandler(db *store.Database, pipeline *service.Pipeline) *Handler {
	return &Handler{
		db:          db,
		games:       repository.NewGameRepository(db),
		possessions: repository.NewPossessionRepository(db),
		pipeline:    pipeline,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	if err := h.db.HealthCheck(); err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, map[string]string{
		"status":  status,
		"service": "rapm",
		"version": "1.0.0",
	})
}

// GetGame returns one processed game with its validation status
func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameID"]

	game, err := h.games.GetByID(r.Context(), gameID)
	if errors.Is(err, sql.ErrNoRows) {
		respondError(w, http.StatusNotFound, "Game not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch game", err)
		return
	}

	respondJSON(w, http.StatusOK, game)
}

// GetGamePossessions returns the possession records for one game, ordered
// by event number
func (h *Handler) GetGamePossessions(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameID"]

	records, err := h.possessions.GetByGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch possessions", err)
		return
	}
	if len(records) == 0 {
		respondError(w, http.StatusNotFound, "No possessions for game", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game_id":     gameID,
		"count":       len(records),
		"possessions": records,
	})
}

// ProcessGame runs the full pipeline for one game: ingest, segment,
// validate, persist. A box score mismatch is reported as 422 with the
// per-team discrepancies; nothing is persisted in that case.
func (h *Handler) ProcessGame(w http.ResponseWriter, r *http.Request) {
	gameID := mux.Vars(r)["gameID"]

	result, err := h.pipeline.ProcessGame(r.Context(), gameID)
	var mismatch *validate.MismatchError
	if errors.As(err, &mismatch) {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":      "Possession totals do not match box score",
			"game_id":    gameID,
			"mismatches": mismatch.Mismatches,
		})
		return
	}
	if err != nil {
		respondError(w, http.StatusBadGateway, "Failed to process game", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game_id":     gameID,
		"possessions": result.Possessions,
		"box_source":  result.BoxSource,
		"totals":      result.Totals,
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}

	respondJSON(w, status, response)
}
