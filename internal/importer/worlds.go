package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/leaguewordle/leaguewordle-data/internal/config"
	"github.com/leaguewordle/leaguewordle-data/internal/db"
)

const birthdateLayout = "2006-01-02"

// worldsRecord mirrors one value object from a worlds tournament file. The
// JSON keys are the source file's, including the capitalized "Residency".
type worldsRecord struct {
	MainName          *string         `json:"mainName"`
	AllNames          json.RawMessage `json:"allNames"`
	Nationality       *string         `json:"nationality"`
	Residency         *string         `json:"Residency"`
	Birthdate         *string         `json:"birthdate"`
	TournamentRole    *string         `json:"tournament_role"`
	Team              *string         `json:"team"`
	Appearance        *string         `json:"appearance"`
	CurrentRole       *string         `json:"current_role"`
	IsRetired         json.RawMessage `json:"isRetired"`
	CurrentTeam       *string         `json:"current_team"`
	CurrentTeamRegion *string         `json:"current_team_region"`
}

// WorldsPlayer is a normalized worlds tournament row. Unlike the roster
// format, optional strings get no defaults: absent stays null. AllNames is a
// JSON-encoded array string because that is what the destination column
// holds.
type WorldsPlayer struct {
	Name              string
	MainName          string
	AllNames          string
	Nationality       *string
	Residency         *string
	Birthdate         *time.Time
	TournamentRole    *string
	Team              *string
	Appearance        *string
	CurrentRole       *string
	IsRetired         bool
	CurrentTeam       *string
	CurrentTeamRegion *string
}

// normalizeWorlds coerces one key → record pair. The mapping key is the
// unique name, overriding anything inside the value; mainName falls back to
// the key. Each coercion is independent and tolerates absence:
//
//   - birthdate must parse as strict YYYY-MM-DD, else null
//   - isRetired is true only for the literal string "1"
//   - allNames must be a list, else it serializes as "[]"
func normalizeWorlds(key string, raw json.RawMessage, path string) (WorldsPlayer, error) {
	var rec worldsRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return WorldsPlayer{}, &ParseError{Path: path, Err: err}
	}

	p := WorldsPlayer{
		Name:              key,
		MainName:          key,
		Nationality:       rec.Nationality,
		Residency:         rec.Residency,
		TournamentRole:    rec.TournamentRole,
		Team:              rec.Team,
		Appearance:        rec.Appearance,
		CurrentRole:       rec.CurrentRole,
		CurrentTeam:       rec.CurrentTeam,
		CurrentTeamRegion: rec.CurrentTeamRegion,
	}
	if rec.MainName != nil {
		p.MainName = *rec.MainName
	}

	if rec.Birthdate != nil {
		if d, err := time.Parse(birthdateLayout, *rec.Birthdate); err == nil {
			p.Birthdate = &d
		}
		// A bad date stays null; the row still imports.
	}

	// Narrow equality on purpose: the source flag is the string "1" or "0",
	// and anything else (including a bare number) means not retired.
	p.IsRetired = string(bytes.TrimSpace(rec.IsRetired)) == `"1"`

	// Any JSON array is copied through verbatim, whatever its element
	// types; everything else serializes as an empty list.
	names := []any{}
	if len(rec.AllNames) > 0 {
		var list []any
		if err := json.Unmarshal(rec.AllNames, &list); err == nil && list != nil {
			names = list
		}
	}
	encoded, err := json.Marshal(names)
	if err != nil {
		return WorldsPlayer{}, &ParseError{Path: path, Err: err}
	}
	p.AllNames = string(encoded)

	return p, nil
}

// ImportWorlds runs the full worlds import flow: read → normalize → table
// check → batched upsert. It returns the number of rows submitted.
func ImportWorlds(ctx context.Context, pool *db.Pool, path string, logger *slog.Logger) (int, error) {
	entries, err := ReadWorldsFile(path)
	if err != nil {
		return 0, err
	}

	players := make([]WorldsPlayer, 0, len(entries))
	for _, e := range entries {
		p, err := normalizeWorlds(e.Key, e.Raw, path)
		if err != nil {
			return 0, err
		}
		players = append(players, p)
	}

	exists, err := pool.TableExists(ctx, config.PlayersTable)
	if err != nil {
		return 0, &UpsertError{Err: err}
	}
	if !exists {
		return 0, ErrSchemaMissing
	}
	if len(players) == 0 {
		return 0, ErrEmptyInput
	}

	logger.Info("Importing worlds players", "file", path, "count", len(players))
	if err := upsertWorlds(ctx, pool, players); err != nil {
		return 0, &UpsertError{Err: err}
	}
	logger.Info("Worlds import complete", "players", len(players))
	return len(players), nil
}
