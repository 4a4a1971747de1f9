// weekly_report imprime las derrotas y muertes de la última semana de un Riot ID.
// Ejecutar desde la raíz del repo: go run ./cmd/weekly_report Nombre#tag
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lol-discord-bot/config"
	"lol-discord-bot/riot"
	"lol-discord-bot/tracker"

	"github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: weekly_report Nombre#tag")
		os.Exit(2)
	}
	id, err := riot.ParseIdentity(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Riot ID inválido: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error cargando configuración: %v\n", err)
		os.Exit(1)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.QueryTimeout)
	defer cancel()

	client := riot.NewClient(cfg.RiotAPIKey, cfg.RiotRegion,
		riot.WithRetryDelay(cfg.RetryDelay),
		riot.WithRequestsPerSecond(cfg.RiotRequestsPerSecond),
		riot.WithLogger(log),
	)
	stats, err := tracker.NewAggregator(client, cfg.StatsWindow).Weekly(ctx, id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error obteniendo estadísticas de %s: %v\n", id, err)
		os.Exit(1)
	}

	fmt.Printf("%s (últimos %s)\n", id, cfg.StatsWindow)
	fmt.Printf("  Derrotas: %d\n", stats.Losses)
	fmt.Printf("  Muertes:  %d\n", stats.Deaths)
}
