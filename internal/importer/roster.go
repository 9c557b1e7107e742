// Package importer implements the two player import pipelines: the general
// roster format and the Worlds tournament format. Both read a JSON file,
// normalize the records, and land them in the players table with one batched
// upsert keyed on name.
package importer

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/leaguewordle/leaguewordle-data/internal/config"
	"github.com/leaguewordle/leaguewordle-data/internal/db"
)

// Fixed defaults for the roster format. Absent and explicit-null fields are
// treated identically.
const (
	defaultTeam        = "Unknown"
	defaultRole        = "Unknown"
	defaultRegion      = "Unknown"
	defaultNationality = "Unknown"
	defaultActive      = true
	defaultYearStarted = 2010
)

// rosterRecord mirrors the raw roster JSON. Pointer fields let the
// normalizer tell absent/null apart from real values.
type rosterRecord struct {
	Name        *string `json:"name"`
	Team        *string `json:"team"`
	Role        *string `json:"role"`
	Region      *string `json:"region"`
	Active      *bool   `json:"active"`
	YearStarted *int    `json:"year_started"`
	Nationality *string `json:"nationality"`
	ImageURL    *string `json:"image_url"`
}

// RosterPlayer is a normalized roster row, ready for the upsert.
//
// Name stays a pointer: a record without one produces a null-keyed row that
// the database rejects, failing the whole batch. ImageURL is genuinely
// nullable and has no default.
type RosterPlayer struct {
	Name        *string
	Team        string
	Role        string
	Region      string
	Active      bool
	YearStarted int
	Nationality string
	ImageURL    *string
}

// normalizeRoster fills every optional field with its default when the raw
// record omits it or carries an explicit null.
func normalizeRoster(raw json.RawMessage, path string) (RosterPlayer, error) {
	var rec rosterRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return RosterPlayer{}, &ParseError{Path: path, Err: err}
	}

	p := RosterPlayer{
		Name:        rec.Name,
		Team:        defaultTeam,
		Role:        defaultRole,
		Region:      defaultRegion,
		Active:      defaultActive,
		YearStarted: defaultYearStarted,
		Nationality: defaultNationality,
		ImageURL:    rec.ImageURL,
	}
	if rec.Team != nil {
		p.Team = *rec.Team
	}
	if rec.Role != nil {
		p.Role = *rec.Role
	}
	if rec.Region != nil {
		p.Region = *rec.Region
	}
	if rec.Active != nil {
		p.Active = *rec.Active
	}
	if rec.YearStarted != nil {
		p.YearStarted = *rec.YearStarted
	}
	if rec.Nationality != nil {
		p.Nationality = *rec.Nationality
	}
	return p, nil
}

// ImportRoster runs the full roster import flow: read → normalize → table
// check → batched upsert. It returns the number of rows submitted. All
// failures come back as the importer error taxonomy; nothing is written
// unless every row lands.
func ImportRoster(ctx context.Context, pool *db.Pool, path string, logger *slog.Logger) (int, error) {
	records, err := ReadRosterFile(path)
	if err != nil {
		return 0, err
	}

	players := make([]RosterPlayer, 0, len(records))
	for _, raw := range records {
		p, err := normalizeRoster(raw, path)
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

	logger.Info("Importing roster players", "file", path, "count", len(players))
	if err := upsertRoster(ctx, pool, players); err != nil {
		return 0, &UpsertError{Err: err}
	}
	logger.Info("Roster import complete", "players", len(players))
	return len(players), nil
}
