package importer

import (
	"context"
	"strconv"
	"strings"

	"github.com/leaguewordle/leaguewordle-data/internal/config"
	"github.com/leaguewordle/leaguewordle-data/internal/db"
)

// Column lists for the two formats, in tuple order. The first column is the
// conflict key; everything after it is overwritten on conflict.
var (
	rosterColumns = []string{
		"name", "team", "role", "region", "active",
		"year_started", "nationality", "image_url",
	}
	worldsColumns = []string{
		"name", "main_name", "all_names", "nationality", "residency",
		"birthdate", "tournament_role", "team", "appearance",
		"player_current_role", "is_retired", "current_team",
		"current_team_region",
	}
)

// upsertSQL builds one multi-row upsert statement:
//
//	INSERT INTO players (...) VALUES ($1,...), ($9,...), ...
//	ON CONFLICT (name) DO UPDATE SET col = EXCLUDED.col, ...
//
// Every non-key column takes the incoming value: last writer wins, full-row
// overwrite, no column-level merge.
func upsertSQL(table string, columns []string, rows int) string {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (")
	b.WriteString(strings.Join(columns, ", "))
	b.WriteString(")\nVALUES ")

	n := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for c := range columns {
			if c > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			n++
		}
		b.WriteByte(')')
	}

	b.WriteString("\nON CONFLICT (name) DO UPDATE SET\n\t")
	for i, col := range columns[1:] {
		if i > 0 {
			b.WriteString(",\n\t")
		}
		b.WriteString(col)
		b.WriteString(" = EXCLUDED.")
		b.WriteString(col)
	}
	return b.String()
}

func rosterArgs(players []RosterPlayer) []any {
	args := make([]any, 0, len(players)*len(rosterColumns))
	for _, p := range players {
		args = append(args,
			p.Name, p.Team, p.Role, p.Region, p.Active,
			p.YearStarted, p.Nationality, p.ImageURL,
		)
	}
	return args
}

func worldsArgs(players []WorldsPlayer) []any {
	args := make([]any, 0, len(players)*len(worldsColumns))
	for _, p := range players {
		args = append(args,
			p.Name, p.MainName, p.AllNames, p.Nationality, p.Residency,
			p.Birthdate, p.TournamentRole, p.Team, p.Appearance,
			p.CurrentRole, p.IsRetired, p.CurrentTeam,
			p.CurrentTeamRegion,
		)
	}
	return args
}

func upsertRoster(ctx context.Context, pool *db.Pool, players []RosterPlayer) error {
	sql := upsertSQL(config.PlayersTable, rosterColumns, len(players))
	return execBatch(ctx, pool, sql, rosterArgs(players))
}

func upsertWorlds(ctx context.Context, pool *db.Pool, players []WorldsPlayer) error {
	sql := upsertSQL(config.PlayersTable, worldsColumns, len(players))
	return execBatch(ctx, pool, sql, worldsArgs(players))
}

// execBatch runs the upsert inside one transaction: either every row in the
// batch lands, or none does.
func execBatch(ctx context.Context, pool *db.Pool, sql string, args []any) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
