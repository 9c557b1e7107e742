package importer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestUpsertSQL(t *testing.T) {
	t.Run("two roster rows", func(t *testing.T) {
		sql := upsertSQL("players", rosterColumns, 2)

		require.Contains(t, sql,
			"INSERT INTO players (name, team, role, region, active, year_started, nationality, image_url)")
		require.Contains(t, sql, "($1, $2, $3, $4, $5, $6, $7, $8)")
		require.Contains(t, sql, "($9, $10, $11, $12, $13, $14, $15, $16)")
		require.NotContains(t, sql, "$17")
		require.Contains(t, sql, "ON CONFLICT (name) DO UPDATE SET")
		require.Contains(t, sql, "team = EXCLUDED.team")
		require.Contains(t, sql, "image_url = EXCLUDED.image_url")
		// The conflict key is never part of the SET list.
		require.NotContains(t, sql, "name = EXCLUDED.name")
	})

	t.Run("single worlds row", func(t *testing.T) {
		sql := upsertSQL("players", worldsColumns, 1)

		require.Contains(t, sql, "($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)")
		require.NotContains(t, sql, "$14")
		for _, col := range worldsColumns[1:] {
			require.Contains(t, sql, col+" = EXCLUDED."+col)
		}
	})

	t.Run("every non-key column is overwritten", func(t *testing.T) {
		sql := upsertSQL("players", rosterColumns, 1)
		setList := sql[strings.Index(sql, "DO UPDATE SET"):]
		require.Equal(t, len(rosterColumns)-1, strings.Count(setList, "EXCLUDED."))
	})
}

func TestRosterArgs(t *testing.T) {
	name := "Faker"
	url := "https://example.com/faker.png"
	players := []RosterPlayer{
		{Name: &name, Team: "T1", Role: "Mid", Region: "LCK", Active: true,
			YearStarted: 2013, Nationality: "South Korea", ImageURL: &url},
		{Team: "Unknown", Role: "Unknown", Region: "Unknown", Active: true,
			YearStarted: 2010, Nationality: "Unknown"},
	}

	args := rosterArgs(players)
	require.Len(t, args, 2*len(rosterColumns))

	require.Equal(t, &name, args[0])
	require.Equal(t, "T1", args[1])
	require.Equal(t, 2013, args[5])
	require.Equal(t, &url, args[7])

	// Second row starts right after the first; nil name passes through as
	// SQL NULL for the database to reject.
	require.Equal(t, (*string)(nil), args[8])
	require.Equal(t, "Unknown", args[9])
}

func TestWorldsArgs(t *testing.T) {
	nat := "KR"
	players := []WorldsPlayer{
		{Name: "p1", MainName: "P One", AllNames: `["A"]`, Nationality: &nat, IsRetired: true},
	}

	args := worldsArgs(players)
	require.Len(t, args, len(worldsColumns))

	require.Equal(t, "p1", args[0])
	require.Equal(t, "P One", args[1])
	require.Equal(t, `["A"]`, args[2])
	require.Equal(t, &nat, args[3])
	require.Equal(t, (*string)(nil), args[4])    // residency
	require.Equal(t, (*time.Time)(nil), args[5]) // birthdate
	require.Equal(t, true, args[10])             // is_retired
	require.Equal(t, (*string)(nil), args[12])   // current_team_region
}
