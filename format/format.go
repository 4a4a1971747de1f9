// Package format arma los textos y el modelo de presentación de las notificaciones.
// No hace I/O salvo LoadAccents.
package format

import (
	"fmt"
	"strconv"

	"lol-discord-bot/riot"
	"lol-discord-bot/tracker"
)

// Field es una columna del embed de estadísticas
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Presentation es lo que se dibuja como embed en Discord
type Presentation struct {
	Title        string
	Fields       []Field
	Color        int
	ThumbnailURL string
	Footer       string
}

// ChangeMessage es el mensaje de partida nueva.
func ChangeMessage(id riot.Identity, o tracker.Outcome) string {
	var msg string
	if o.Won {
		msg = fmt.Sprintf("De alguna forma la suerte le sonrió a **%s** y ganó una partida por accidente!", id)
	} else {
		msg = fmt.Sprintf("**%s** volvió a tener mala suerte y, cómo no, perdió otra partida!", id)
	}
	if o.Champion != "" {
		msg += fmt.Sprintf(" (%s, %d/%d/%d)", o.Champion, o.Kills, o.Deaths, o.Assists)
	}
	return msg
}

// StatsPresentation arma el embed semanal: título, columna de etiquetas y columna de contadores.
func StatsPresentation(stats tracker.Stats, playerName string, accents Accents) Presentation {
	accent := accents.For(playerName)
	return Presentation{
		Title: fmt.Sprintf("Estadísticas semanales de %s", playerName),
		Fields: []Field{
			{Name: "Stat", Value: "Derrotas:\nMuertes:", Inline: true},
			{Name: "Contador", Value: strconv.Itoa(stats.Losses) + "\n" + strconv.Itoa(stats.Deaths), Inline: true},
		},
		Color:        accent.Color,
		ThumbnailURL: accent.ThumbnailURL,
		Footer:       accent.Footer,
	}
}
