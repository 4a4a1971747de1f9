package tracker_test

import (
	"context"
	"testing"
	"time"

	"lol-discord-bot/riot"
	"lol-discord-bot/tracker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_Empty(t *testing.T) {
	agg := tracker.NewAggregator(newFakeAPI(), 0)

	stats, err := agg.Aggregate(context.Background(), nil, "P123")
	require.NoError(t, err)
	assert.Equal(t, tracker.Stats{}, stats)
}

func TestAggregate_CountsOnlyLosses(t *testing.T) {
	api := newFakeAPI()
	api.addMatch("m1", "P123", false, 4)
	api.addMatch("m2", "P123", true, 10)
	api.addMatch("m3", "P123", false, 7)
	agg := tracker.NewAggregator(api, 0)

	stats, err := agg.Aggregate(context.Background(), []string{"m1", "m2", "m3"}, "P123")
	require.NoError(t, err)
	assert.Equal(t, tracker.Stats{Losses: 2, Deaths: 11}, stats)
	assert.Equal(t, []string{"fetch:m1", "fetch:m2", "fetch:m3"}, api.calls, "las partidas se piden en orden y de a una")
}

func TestAggregate_SkipsMatchesWithoutParticipant(t *testing.T) {
	api := newFakeAPI()
	api.addMatch("m1", "P123", false, 4)
	api.addMatch("m2", "OTHER", false, 8)
	agg := tracker.NewAggregator(api, 0)

	stats, err := agg.Aggregate(context.Background(), []string{"m1", "m2"}, "P123")
	require.NoError(t, err)
	assert.Equal(t, tracker.Stats{Losses: 1, Deaths: 4}, stats)
}

func TestAggregate_FetchErrorAbortsEverything(t *testing.T) {
	api := newFakeAPI()
	api.addMatch("m1", "P123", false, 4)
	api.addMatch("m3", "P123", false, 7)
	api.fetchErr["m2"] = &riot.TransientError{Op: "match", Cause: assert.AnError}
	agg := tracker.NewAggregator(api, 0)

	stats, err := agg.Aggregate(context.Background(), []string{"m1", "m2", "m3"}, "P123")
	require.Error(t, err)
	assert.ErrorIs(t, err, riot.ErrTransient)
	assert.Contains(t, err.Error(), "m2")
	assert.Equal(t, tracker.Stats{}, stats)
	assert.NotContains(t, api.calls, "fetch:m3")
}

func TestWeekly_NovaScenario(t *testing.T) {
	api := newFakeAPI()
	api.matchIDs = []string{"m1", "m2", "m3"}
	api.addMatch("m1", "P123", false, 4)
	api.addMatch("m2", "P123", true, 3)
	api.addMatch("m3", "P123", false, 7)

	now := time.Date(2026, 10, 11, 20, 0, 0, 0, time.UTC)
	agg := tracker.NewAggregator(api, 0)
	agg.Now = func() time.Time { return now }

	id, err := riot.ParseIdentity("Nova#EUW")
	require.NoError(t, err)

	stats, err := agg.Weekly(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, tracker.Stats{Losses: 2, Deaths: 11}, stats)

	require.NotNil(t, api.windowStart)
	assert.Equal(t, now.Add(-7*24*time.Hour), *api.windowStart)
	assert.Equal(t, riot.MaxMatchCount, api.limit)
}

func TestWeekly_PropagatesResolveError(t *testing.T) {
	api := newFakeAPI()
	agg := tracker.NewAggregator(api, 0)

	_, err := agg.Weekly(context.Background(), riot.Identity{Name: "Ghost", Tag: "000"})
	assert.ErrorIs(t, err, riot.ErrNotFound)
	assert.Equal(t, []string{"resolve"}, api.calls)
}
