// Package tracker detecta partidas nuevas de la cuenta seguida y suma
// derrotas y muertes sobre una ventana de partidas.
package tracker

import (
	"context"
	"time"

	"lol-discord-bot/riot"
)

// MatchAPI son las tres operaciones de Riot que usa el tracker.
type MatchAPI interface {
	ResolveHandle(ctx context.Context, id riot.Identity) (string, error)
	ListMatchIDs(ctx context.Context, puuid string, windowStart *time.Time, limit int) ([]string, error)
	FetchMatch(ctx context.Context, matchID string) (*riot.Match, error)
}

var _ MatchAPI = (*riot.Client)(nil)

// Notifier entrega un mensaje de texto. La entrega es best-effort.
type Notifier interface {
	Send(ctx context.Context, content string) error
}

// MessageFunc arma el texto de la notificación de partida nueva.
type MessageFunc func(id riot.Identity, o Outcome) string

// Outcome es el resultado de una partida para un jugador.
// Found == false significa que el jugador no aparece en la partida; no cuenta como derrota.
type Outcome struct {
	MatchID  string
	Found    bool
	Won      bool
	Kills    int
	Deaths   int
	Assists  int
	Champion string
}

// OutcomeFor busca al jugador en la partida.
func OutcomeFor(match *riot.Match, puuid string) Outcome {
	o := Outcome{}
	if match == nil {
		return o
	}
	o.MatchID = match.Metadata.MatchID
	p, ok := match.Participant(puuid)
	if !ok {
		return o
	}
	o.Found = true
	o.Won = p.Win
	o.Kills = p.Kills
	o.Deaths = p.Deaths
	o.Assists = p.Assists
	o.Champion = p.ChampionName
	return o
}

// Stats son las derrotas y las muertes acumuladas en esas derrotas.
type Stats struct {
	Losses int
	Deaths int
}
