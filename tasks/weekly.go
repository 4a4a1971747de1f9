package tasks

import (
	"context"

	"lol-discord-bot/format"
	"lol-discord-bot/metrics"
	"lol-discord-bot/riot"
	"lol-discord-bot/tracker"

	"github.com/sirupsen/logrus"
)

type WeeklyStats interface {
	Weekly(ctx context.Context, id riot.Identity) (tracker.Stats, error)
}

type PresentationSender interface {
	SendPresentation(ctx context.Context, p format.Presentation) error
}

// Reporter publica las estadísticas semanales de la cuenta seguida.
type Reporter struct {
	Stats    WeeklyStats
	Identity riot.Identity
	Sender   PresentationSender
	Accents  format.Accents
	Log      logrus.FieldLogger
	Metrics  metrics.Metrics
}

func (r *Reporter) Run(ctx context.Context) {
	log := r.Log.WithField("summoner", r.Identity.String())

	stats, err := r.Stats.Weekly(ctx, r.Identity)
	if err != nil {
		log.Errorf("Error calculando estadísticas semanales: %v", err)
		return
	}
	if r.Metrics != nil {
		r.Metrics.ObserveWeeklyLosses(stats.Losses)
	}

	p := format.StatsPresentation(stats, r.Identity.Name, r.Accents)
	if err := r.Sender.SendPresentation(ctx, p); err != nil {
		if r.Metrics != nil {
			r.Metrics.IncNotification(false)
		}
		log.Errorf("Error enviando estadísticas semanales: %v", err)
		return
	}
	if r.Metrics != nil {
		r.Metrics.IncNotification(true)
	}
	log.Infof("Estadísticas semanales enviadas: %d derrotas, %d muertes", stats.Losses, stats.Deaths)
}
