package tracker

import (
	"context"
	"fmt"
	"time"

	"lol-discord-bot/riot"
)

// DefaultWindow es la ventana del reporte semanal
const DefaultWindow = 7 * 24 * time.Hour

type Aggregator struct {
	api    MatchAPI
	window time.Duration

	// Now se puede reemplazar en tests
	Now func() time.Time
}

func NewAggregator(api MatchAPI, window time.Duration) *Aggregator {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Aggregator{
		api:    api,
		window: window,
		Now:    time.Now,
	}
}

// Aggregate recorre las partidas en orden y suma las derrotas del jugador.
// Si falla una sola partida falla todo: un conteo parcial sería engañoso.
func (a *Aggregator) Aggregate(ctx context.Context, matchIDs []string, puuid string) (Stats, error) {
	var stats Stats
	for _, matchID := range matchIDs {
		match, err := a.api.FetchMatch(ctx, matchID)
		if err != nil {
			return Stats{}, fmt.Errorf("error sumando partida %s: %w", matchID, err)
		}
		o := OutcomeFor(match, puuid)
		if o.Found && !o.Won {
			stats.Losses++
			stats.Deaths += o.Deaths
		}
	}
	return stats, nil
}

// Weekly resuelve la cuenta y suma sus derrotas dentro de la ventana que termina ahora.
func (a *Aggregator) Weekly(ctx context.Context, id riot.Identity) (Stats, error) {
	puuid, err := a.api.ResolveHandle(ctx, id)
	if err != nil {
		return Stats{}, err
	}
	start := a.Now().Add(-a.window)
	matchIDs, err := a.api.ListMatchIDs(ctx, puuid, &start, riot.MaxMatchCount)
	if err != nil {
		return Stats{}, err
	}
	return a.Aggregate(ctx, matchIDs, puuid)
}
