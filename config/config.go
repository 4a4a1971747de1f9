package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"lol-discord-bot/riot"

	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken      string
	DiscordWebhookURL string
	ServerID          string

	RiotAPIKey            string
	RiotRegion            string
	RiotRequestsPerSecond float64
	RetryDelay            time.Duration

	TrackedSummoner riot.Identity
	PollSchedule    string
	WeeklySchedule  string
	Timezone        string
	QueryTimeout    time.Duration
	StatsWindow     time.Duration

	WebPort     string
	AccentsFile string
	Debug       bool
}

// Modules son los módulos que se levantan en este proceso.
type Modules struct {
	Bot   bool
	Web   bool
	Tasks bool
}

func (m Modules) Any() bool { return m.Bot || m.Web || m.Tasks }

// Load lee .env (si existe) y las variables de entorno.
func Load() (*Config, error) {
	// Cargar .env si existe; no es crítico si no existe el archivo
	_ = godotenv.Load()

	var errs []error
	cfg := &Config{
		DiscordToken:      os.Getenv("DISCORD_BOT_TOKEN"),
		DiscordWebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),
		ServerID:          os.Getenv("SERVER_ID"),
		RiotAPIKey:        os.Getenv("RIOT_API_KEY"),
		RiotRegion:        getEnv("RIOT_REGION", riot.DefaultRegion),
		PollSchedule:      getEnv("POLL_SCHEDULE", "@every 1m"),
		WeeklySchedule:    getEnv("WEEKLY_SCHEDULE", "0 20 * * 0"),
		Timezone:          getEnv("TIMEZONE", "Local"),
		WebPort:           getEnv("WEB_PORT", "8000"),
		AccentsFile:       getEnv("ACCENTS_FILE", "accents.yaml"),
		Debug:             os.Getenv("DEBUG") == "true",
	}

	var err error
	if cfg.RetryDelay, err = getDuration("RETRY_DELAY", riot.DefaultRetryDelay); err != nil {
		errs = append(errs, err)
	}
	if cfg.QueryTimeout, err = getDuration("QUERY_TIMEOUT", 60*time.Second); err != nil {
		errs = append(errs, err)
	}
	if cfg.StatsWindow, err = getDuration("STATS_WINDOW", 7*24*time.Hour); err != nil {
		errs = append(errs, err)
	}
	if raw := os.Getenv("RIOT_REQUESTS_PER_SECOND"); raw != "" {
		if cfg.RiotRequestsPerSecond, err = strconv.ParseFloat(raw, 64); err != nil {
			errs = append(errs, fmt.Errorf("RIOT_REQUESTS_PER_SECOND inválido %q: %w", raw, err))
		}
	}
	if cfg.TrackedSummoner, err = riot.ParseIdentity(getEnv("TRACKED_SUMMONER", "OnTheFumes#112")); err != nil {
		errs = append(errs, fmt.Errorf("TRACKED_SUMMONER: %w", err))
	}

	if cfg.RiotAPIKey == "" {
		errs = append(errs, fmt.Errorf("RIOT_API_KEY no está configurado en .env"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return cfg, nil
}

// Validate revisa lo que necesita cada módulo.
func (c *Config) Validate(m Modules) error {
	var errs []error
	if m.Bot && c.DiscordToken == "" {
		errs = append(errs, fmt.Errorf("DISCORD_BOT_TOKEN no está configurado en .env"))
	}
	if m.Tasks && c.DiscordWebhookURL == "" {
		errs = append(errs, fmt.Errorf("DISCORD_WEBHOOK_URL no está configurado en .env"))
	}
	if m.Web && c.WebPort == "" {
		errs = append(errs, fmt.Errorf("WEB_PORT vacío"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// getDuration acepta "5s", "1m" o un número de segundos.
func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s inválido %q: %w", key, raw, err)
	}
	return d, nil
}
