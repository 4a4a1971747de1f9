package format_test

import (
	"os"
	"path/filepath"
	"testing"

	"lol-discord-bot/format"
	"lol-discord-bot/riot"
	"lol-discord-bot/tracker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var nova = riot.Identity{Name: "Nova", Tag: "EUW"}

func TestChangeMessage(t *testing.T) {
	won := format.ChangeMessage(nova, tracker.Outcome{Found: true, Won: true})
	assert.Contains(t, won, "**Nova#EUW**")
	assert.Contains(t, won, "ganó")

	lost := format.ChangeMessage(nova, tracker.Outcome{Found: true, Champion: "Teemo", Kills: 1, Deaths: 9, Assists: 3})
	assert.Contains(t, lost, "perdió")
	assert.Contains(t, lost, "(Teemo, 1/9/3)")
}

func TestStatsPresentation(t *testing.T) {
	p := format.StatsPresentation(tracker.Stats{Losses: 2, Deaths: 11}, "Nova", format.DefaultAccents())

	assert.Equal(t, "Estadísticas semanales de Nova", p.Title)
	require.Len(t, p.Fields, 2)
	assert.Equal(t, "Derrotas:\nMuertes:", p.Fields[0].Value)
	assert.Equal(t, "2\n11", p.Fields[1].Value)
	assert.Equal(t, format.NeutralColor, p.Color)
	assert.Empty(t, p.ThumbnailURL)
}

func TestAccents_LookupIsCaseInsensitive(t *testing.T) {
	accents, err := format.ParseAccents([]byte(`
players:
  OnTheFumes:
    color: 0xe74c3c
    footer: "Patético"
`))
	require.NoError(t, err)

	p := format.StatsPresentation(tracker.Stats{}, "onthefumes", accents)
	assert.Equal(t, 0xe74c3c, p.Color)
	assert.Equal(t, "Patético", p.Footer)

	other := format.StatsPresentation(tracker.Stats{}, "Nova", accents)
	assert.Equal(t, format.NeutralColor, other.Color)
	assert.Empty(t, other.Footer)
}

func TestLoadAccents(t *testing.T) {
	t.Run("archivo inexistente", func(t *testing.T) {
		accents, err := format.LoadAccents(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, format.DefaultAccents(), accents)
	})

	t.Run("default propio", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "accents.yaml")
		require.NoError(t, os.WriteFile(path, []byte("default:\n  color: 0x2ecc71\n  footer: Impresionante\n"), 0644))

		accents, err := format.LoadAccents(path)
		require.NoError(t, err)
		assert.Equal(t, format.Accent{Color: 0x2ecc71, Footer: "Impresionante"}, accents.For("cualquiera"))
	})

	t.Run("yaml inválido", func(t *testing.T) {
		_, err := format.ParseAccents([]byte("players: [1, 2"))
		assert.Error(t, err)
	})
}
