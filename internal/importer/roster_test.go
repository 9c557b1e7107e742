package importer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeRoster(t *testing.T) {
	t.Run("name-only record gets every default", func(t *testing.T) {
		p, err := normalizeRoster(json.RawMessage(`{"name": "Faker"}`), "test.json")
		require.NoError(t, err)

		require.NotNil(t, p.Name)
		require.Equal(t, "Faker", *p.Name)
		require.Equal(t, "Unknown", p.Team)
		require.Equal(t, "Unknown", p.Role)
		require.Equal(t, "Unknown", p.Region)
		require.Equal(t, "Unknown", p.Nationality)
		require.True(t, p.Active)
		require.Equal(t, 2010, p.YearStarted)
		require.Nil(t, p.ImageURL)
	})

	t.Run("explicit null is treated like absent", func(t *testing.T) {
		raw := json.RawMessage(`{
			"name": "Faker",
			"team": null,
			"role": null,
			"region": null,
			"active": null,
			"year_started": null,
			"nationality": null,
			"image_url": null
		}`)
		p, err := normalizeRoster(raw, "test.json")
		require.NoError(t, err)

		require.Equal(t, "Unknown", p.Team)
		require.Equal(t, "Unknown", p.Role)
		require.Equal(t, "Unknown", p.Region)
		require.Equal(t, "Unknown", p.Nationality)
		require.True(t, p.Active)
		require.Equal(t, 2010, p.YearStarted)
		require.Nil(t, p.ImageURL)
	})

	t.Run("present values win over defaults", func(t *testing.T) {
		raw := json.RawMessage(`{
			"name": "Chovy",
			"team": "GEN",
			"role": "Mid",
			"region": "LCK",
			"active": false,
			"year_started": 2018,
			"nationality": "South Korea",
			"image_url": "https://example.com/chovy.png"
		}`)
		p, err := normalizeRoster(raw, "test.json")
		require.NoError(t, err)

		require.Equal(t, "GEN", p.Team)
		require.Equal(t, "Mid", p.Role)
		require.Equal(t, "LCK", p.Region)
		require.Equal(t, "South Korea", p.Nationality)
		require.False(t, p.Active)
		require.Equal(t, 2018, p.YearStarted)
		require.NotNil(t, p.ImageURL)
		require.Equal(t, "https://example.com/chovy.png", *p.ImageURL)
	})

	t.Run("missing name stays nil for the database to reject", func(t *testing.T) {
		p, err := normalizeRoster(json.RawMessage(`{"team": "T1"}`), "test.json")
		require.NoError(t, err)
		require.Nil(t, p.Name)
		require.Equal(t, "T1", p.Team)
	})

	t.Run("mistyped field is a parse error", func(t *testing.T) {
		_, err := normalizeRoster(json.RawMessage(`{"name": "X", "year_started": "twenty"}`), "test.json")
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
	})
}
