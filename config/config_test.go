package config

import (
	"testing"
	"time"

	"lol-discord-bot/riot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RIOT_API_KEY", "RGAPI-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "europe", cfg.RiotRegion)
	assert.Equal(t, 5*time.Second, cfg.RetryDelay)
	assert.Equal(t, riot.Identity{Name: "OnTheFumes", Tag: "112"}, cfg.TrackedSummoner)
	assert.Equal(t, "@every 1m", cfg.PollSchedule)
	assert.Equal(t, "0 20 * * 0", cfg.WeeklySchedule)
	assert.Equal(t, 7*24*time.Hour, cfg.StatsWindow)
	assert.Equal(t, "8000", cfg.WebPort)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("RIOT_API_KEY", "RGAPI-test")
	t.Setenv("RETRY_DELAY", "2")
	t.Setenv("QUERY_TIMEOUT", "90s")
	t.Setenv("TRACKED_SUMMONER", "Nova#EUW")
	t.Setenv("RIOT_REQUESTS_PER_SECOND", "0.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
	assert.Equal(t, 90*time.Second, cfg.QueryTimeout)
	assert.Equal(t, riot.Identity{Name: "Nova", Tag: "EUW"}, cfg.TrackedSummoner)
	assert.Equal(t, 0.5, cfg.RiotRequestsPerSecond)
}

func TestLoad_Errors(t *testing.T) {
	t.Setenv("RIOT_API_KEY", "")
	t.Setenv("TRACKED_SUMMONER", "sin-tag")
	t.Setenv("RETRY_DELAY", "pronto")

	_, err := Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, riot.ErrMalformedInput)
	assert.Contains(t, err.Error(), "RIOT_API_KEY")
	assert.Contains(t, err.Error(), "RETRY_DELAY")
}

func TestValidate(t *testing.T) {
	cfg := &Config{WebPort: "8000"}
	err := cfg.Validate(Modules{Bot: true, Tasks: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_BOT_TOKEN")
	assert.Contains(t, err.Error(), "DISCORD_WEBHOOK_URL")

	assert.NoError(t, cfg.Validate(Modules{Web: true}))
}
