package riot_test

import (
	"testing"

	"lol-discord-bot/riot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentity(t *testing.T) {
	id, err := riot.ParseIdentity(" Nova#EUW ")
	require.NoError(t, err)
	assert.Equal(t, riot.Identity{Name: "Nova", Tag: "EUW"}, id)
	assert.Equal(t, "Nova#EUW", id.String())
}

func TestParseIdentity_Malformed(t *testing.T) {
	for _, input := range []string{"abc", "", "a#b#c", "#tag", "name#", " # "} {
		t.Run(input, func(t *testing.T) {
			_, err := riot.ParseIdentity(input)
			assert.ErrorIs(t, err, riot.ErrMalformedInput)
		})
	}
}
