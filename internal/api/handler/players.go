package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"

	"github.com/leaguewordle/leaguewordle-data/internal/api/respond"
	"github.com/leaguewordle/leaguewordle-data/internal/cache"
	"github.com/leaguewordle/leaguewordle-data/internal/config"
)

// Player is a roster row as served to the game frontend.
type Player struct {
	Name        string  `json:"name"`
	Team        string  `json:"team"`
	Role        string  `json:"role"`
	Region      string  `json:"region"`
	Active      bool    `json:"active"`
	YearStarted int     `json:"year_started"`
	Nationality string  `json:"nationality"`
	ImageURL    *string `json:"image_url"`
}

const playerColumns = "name, team, role, region, active, year_started, nationality, image_url"

func scanPlayer(row pgx.Row) (Player, error) {
	var p Player
	err := row.Scan(&p.Name, &p.Team, &p.Role, &p.Region,
		&p.Active, &p.YearStarted, &p.Nationality, &p.ImageURL)
	return p, err
}

// ListPlayers returns the roster, optionally filtered by role, region, team,
// or active flag. Results are cached per query string.
func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	cacheKey := "players:" + r.URL.RawQuery
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLPlayerList, true)
		return
	}

	q := r.URL.Query()
	sql := "SELECT " + playerColumns + " FROM " + config.PlayersTable
	var (
		conds []string
		args  []any
	)
	for _, f := range []struct{ param, col string }{
		{"role", "role"},
		{"region", "region"},
		{"team", "team"},
	} {
		if v := q.Get(f.param); v != "" {
			args = append(args, v)
			conds = append(conds, fmt.Sprintf("%s = $%d", f.col, len(args)))
		}
	}
	if v := q.Get("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			respond.WriteError(w, http.StatusBadRequest, "BAD_FILTER", "active must be a boolean")
			return
		}
		args = append(args, active)
		conds = append(conds, fmt.Sprintf("active = $%d", len(args)))
	}
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY name"

	rows, err := h.pool.Query(r.Context(), sql, args...)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Could not list players")
		return
	}
	defer rows.Close()

	players := []Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Could not list players")
			return
		}
		players = append(players, p)
	}
	if rows.Err() != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Could not list players")
		return
	}

	data, err := json.Marshal(map[string]interface{}{
		"count":   len(players),
		"players": players,
	})
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Could not encode players")
		return
	}

	etag := h.cache.Set(cacheKey, data, cache.TTLPlayerList)
	respond.WriteJSON(w, data, etag, cache.TTLPlayerList, false)
}

// GetPlayer returns a single player profile by unique name.
func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		respond.WriteError(w, http.StatusBadRequest, "MISSING_NAME", "player name is required")
		return
	}

	cacheKey := "player:" + name
	if data, etag, ok := h.cache.Get(cacheKey); ok {
		if cache.CheckETagMatch(r.Header.Get("If-None-Match"), etag) {
			respond.WriteNotModified(w, etag)
			return
		}
		respond.WriteJSON(w, data, etag, cache.TTLPlayerProfile, true)
		return
	}

	p, err := scanPlayer(h.pool.QueryRow(r.Context(), "player_by_name", name))
	if errors.Is(err, pgx.ErrNoRows) {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "No player named "+name)
		return
	}
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Could not load player")
		return
	}

	data, err := json.Marshal(p)
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "ENCODE_FAILED", "Could not encode player")
		return
	}

	etag := h.cache.Set(cacheKey, data, cache.TTLPlayerProfile)
	respond.WriteJSON(w, data, etag, cache.TTLPlayerProfile, false)
}

// GetRandomPlayer picks one active player at random. Never cached: the game
// wants a fresh pick per request.
func (h *Handler) GetRandomPlayer(w http.ResponseWriter, r *http.Request) {
	p, err := scanPlayer(h.pool.QueryRow(r.Context(), "player_random"))
	if errors.Is(err, pgx.ErrNoRows) {
		respond.WriteError(w, http.StatusNotFound, "NOT_FOUND", "No active players imported yet")
		return
	}
	if err != nil {
		respond.WriteError(w, http.StatusInternalServerError, "QUERY_FAILED", "Could not pick a player")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, p)
}
