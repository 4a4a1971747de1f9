package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lol-discord-bot/config"
	"lol-discord-bot/discord"
	"lol-discord-bot/format"
	"lol-discord-bot/logger"
	"lol-discord-bot/metrics"
	"lol-discord-bot/riot"
	"lol-discord-bot/tasks"
	"lol-discord-bot/tracker"
	"lol-discord-bot/webserver"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type flags struct {
	bot   bool
	web   bool
	tasks bool
	all   bool
	debug bool
}

func main() {
	var f flags
	root := &cobra.Command{
		Use:           "lol-discord-bot",
		Short:         "Bot de Discord que sigue las partidas de League of Legends",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}
	root.Flags().BoolVar(&f.bot, "bot", false, "Levantar el bot de slash commands")
	root.Flags().BoolVar(&f.web, "web", false, "Levantar el health check y /metrics")
	root.Flags().BoolVar(&f.tasks, "tasks", false, "Levantar el poller y el reporte semanal")
	root.Flags().BoolVar(&f.all, "all", false, "Levantar todos los módulos")
	root.Flags().BoolVar(&f.debug, "debug", false, "Activar modo debug (logs en consola)")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, f flags) error {
	modules := config.Modules{
		Bot:   f.bot || f.all,
		Web:   f.web || f.all,
		Tasks: f.tasks || f.all,
	}
	if !modules.Any() {
		return errors.New("no se seleccionó ningún módulo: usa --bot, --web, --tasks o --all")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error cargando configuración: %w", err)
	}
	// Si se pasó --debug, sobrescribir configuración
	if f.debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(modules); err != nil {
		return fmt.Errorf("configuración incompleta: %w", err)
	}

	log, err := logger.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("error creando logger: %w", err)
	}
	log.Info("Iniciando bot de Discord para League of Legends...")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewService(registry)

	client := riot.NewClient(cfg.RiotAPIKey, cfg.RiotRegion,
		riot.WithRetryDelay(cfg.RetryDelay),
		riot.WithRequestsPerSecond(cfg.RiotRequestsPerSecond),
		riot.WithLogger(log.WithField("component", "riot")),
		riot.WithMetrics(m),
	)
	aggregator := tracker.NewAggregator(client, cfg.StatsWindow)

	accents, err := format.LoadAccents(cfg.AccentsFile)
	if err != nil {
		return fmt.Errorf("error cargando %s: %w", cfg.AccentsFile, err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if modules.Bot {
		bot, err := discord.NewBot(cfg, aggregator, accents, log.WithField("component", "bot"))
		if err != nil {
			return err
		}
		g.Go(func() error { return bot.Run(ctx) })
	}

	if modules.Web {
		g.Go(func() error {
			return webserver.Run(ctx, cfg.WebPort, registry, log.WithField("component", "web"))
		})
	}

	if modules.Tasks {
		scheduler, startup, err := newScheduler(cfg, client, aggregator, accents, m, log)
		if err != nil {
			return err
		}
		g.Go(func() error { return scheduler.Run(ctx, startup) })
	}

	log.Info("Módulos en ejecución. Presiona Ctrl+C para detener.")
	err = g.Wait()
	log.Info("Proceso detenido")
	return err
}

func newScheduler(cfg *config.Config, client *riot.Client, aggregator *tracker.Aggregator, accents format.Accents, m metrics.Metrics, log *logrus.Logger) (*tasks.Scheduler, map[string]tasks.Job, error) {
	webhook, err := discord.NewWebhook(cfg.DiscordWebhookURL)
	if err != nil {
		return nil, nil, err
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("TIMEZONE inválido %q: %w", cfg.Timezone, err)
	}

	detector := tracker.NewDetector(tracker.DetectorConfig{
		API:      client,
		Identity: cfg.TrackedSummoner,
		Notifier: webhook,
		Format:   format.ChangeMessage,
		Log:      log.WithFields(logrus.Fields{"component": "poll", "summoner": cfg.TrackedSummoner.String()}),
		Metrics:  m,
	})
	reporter := &tasks.Reporter{
		Stats:    aggregator,
		Identity: cfg.TrackedSummoner,
		Sender:   webhook,
		Accents:  accents,
		Log:      log.WithField("component", "weekly"),
		Metrics:  m,
	}

	scheduler := tasks.New(loc, log.WithField("component", "tasks"))
	if err := scheduler.Add("poll", cfg.PollSchedule, detector); err != nil {
		return nil, nil, err
	}
	if err := scheduler.Add("weekly", cfg.WeeklySchedule, reporter); err != nil {
		return nil, nil, err
	}
	log.Infof("Siguiendo a %s (poll: %s, semanal: %s)", cfg.TrackedSummoner, cfg.PollSchedule, cfg.WeeklySchedule)

	// El primer ciclo fija la partida base sin notificar
	return scheduler, map[string]tasks.Job{"poll": detector}, nil
}
