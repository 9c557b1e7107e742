package importer

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeWorlds(t *testing.T) {
	t.Run("full record", func(t *testing.T) {
		raw := json.RawMessage(`{
			"isRetired": "1",
			"birthdate": "1995-06-01",
			"allNames": ["A", "B"]
		}`)
		p, err := normalizeWorlds("p1", raw, "worlds.json")
		require.NoError(t, err)

		require.Equal(t, "p1", p.Name)
		require.Equal(t, "p1", p.MainName)
		require.Equal(t, `["A","B"]`, p.AllNames)
		require.True(t, p.IsRetired)
		require.NotNil(t, p.Birthdate)
		require.Equal(t, time.Date(1995, time.June, 1, 0, 0, 0, 0, time.UTC), *p.Birthdate)
	})

	t.Run("key overrides embedded name and mainName wins when present", func(t *testing.T) {
		raw := json.RawMessage(`{"name": "ignored", "mainName": "Uzi"}`)
		p, err := normalizeWorlds("Uzi (Jian Zi-Hao)", raw, "worlds.json")
		require.NoError(t, err)
		require.Equal(t, "Uzi (Jian Zi-Hao)", p.Name)
		require.Equal(t, "Uzi", p.MainName)
	})

	t.Run("optional strings stay null when absent", func(t *testing.T) {
		p, err := normalizeWorlds("p1", json.RawMessage(`{}`), "worlds.json")
		require.NoError(t, err)
		require.Nil(t, p.Nationality)
		require.Nil(t, p.Residency)
		require.Nil(t, p.TournamentRole)
		require.Nil(t, p.Team)
		require.Nil(t, p.Appearance)
		require.Nil(t, p.CurrentRole)
		require.Nil(t, p.CurrentTeam)
		require.Nil(t, p.CurrentTeamRegion)
		require.Nil(t, p.Birthdate)
		require.False(t, p.IsRetired)
		require.Equal(t, `[]`, p.AllNames)
	})

	t.Run("capitalized Residency key from the source file", func(t *testing.T) {
		p, err := normalizeWorlds("p1", json.RawMessage(`{"Residency": "EU"}`), "worlds.json")
		require.NoError(t, err)
		require.NotNil(t, p.Residency)
		require.Equal(t, "EU", *p.Residency)
	})
}

func TestNormalizeWorldsIsRetired(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want bool
	}{
		{"string one", `{"isRetired": "1"}`, true},
		{"string zero", `{"isRetired": "0"}`, false},
		{"bare number", `{"isRetired": 1}`, false},
		{"boolean", `{"isRetired": true}`, false},
		{"other string", `{"isRetired": "yes"}`, false},
		{"null", `{"isRetired": null}`, false},
		{"absent", `{}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := normalizeWorlds("p1", json.RawMessage(tc.raw), "worlds.json")
			require.NoError(t, err)
			require.Equal(t, tc.want, p.IsRetired)
		})
	}
}

func TestNormalizeWorldsBirthdate(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"valid date", `{"birthdate": "1996-02-07"}`, true},
		{"wrong format", `{"birthdate": "07/02/1996"}`, false},
		{"impossible date", `{"birthdate": "1996-13-40"}`, false},
		{"empty string", `{"birthdate": ""}`, false},
		{"null", `{"birthdate": null}`, false},
		{"absent", `{}`, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := normalizeWorlds("p1", json.RawMessage(tc.raw), "worlds.json")
			require.NoError(t, err)
			if tc.valid {
				require.NotNil(t, p.Birthdate)
				require.Equal(t, "1996-02-07", p.Birthdate.Format(birthdateLayout))
			} else {
				require.Nil(t, p.Birthdate)
			}
		})
	}
}

func TestNormalizeWorldsAllNames(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"list of names", `{"allNames": ["Peanut", "Han Wang-ho"]}`, `["Peanut","Han Wang-ho"]`},
		{"list with mixed element types", `{"allNames": ["A", 1]}`, `["A",1]`},
		{"empty list", `{"allNames": []}`, `[]`},
		{"not a list", `{"allNames": "Peanut"}`, `[]`},
		{"null", `{"allNames": null}`, `[]`},
		{"absent", `{}`, `[]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := normalizeWorlds("p1", json.RawMessage(tc.raw), "worlds.json")
			require.NoError(t, err)
			require.Equal(t, tc.want, p.AllNames)
		})
	}
}
