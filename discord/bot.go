package discord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lol-discord-bot/config"
	"lol-discord-bot/format"
	"lol-discord-bot/riot"
	"lol-discord-bot/tracker"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

// StatsQuerier calcula las derrotas de la ventana semanal de un Riot ID.
type StatsQuerier interface {
	Weekly(ctx context.Context, id riot.Identity) (tracker.Stats, error)
}

var _ StatsQuerier = (*tracker.Aggregator)(nil)

type Bot struct {
	session *discordgo.Session
	stats   StatsQuerier
	accents format.Accents
	config  *config.Config
	log     logrus.FieldLogger
}

func NewBot(cfg *config.Config, stats StatsQuerier, accents format.Accents, log logrus.FieldLogger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("error creando sesión Discord: %w", err)
	}

	bot := &Bot{
		session: session,
		stats:   stats,
		accents: accents,
		config:  cfg,
		log:     log,
	}

	session.AddHandler(bot.interactionCreate)
	// Para slash commands solo necesitamos intents básicos
	session.Identify.Intents = discordgo.IntentsGuilds

	return bot, nil
}

// Run conecta el bot y lo mantiene vivo hasta que se cancele ctx.
func (b *Bot) Run(ctx context.Context) error {
	if err := b.Start(); err != nil {
		return err
	}
	<-ctx.Done()
	b.Stop()
	return nil
}

func (b *Bot) Start() error {
	b.log.Info("Iniciando bot de Discord...")
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("error abriendo conexión: %w", err)
	}
	b.log.Info("Bot conectado exitosamente")

	if err := b.registerCommands(); err != nil {
		b.log.Warnf("Error registrando comandos: %v", err)
	}
	return nil
}

func (b *Bot) Stop() {
	b.log.Info("Cerrando bot...")
	if err := b.session.Close(); err != nil {
		b.log.Warnf("Error cerrando sesión: %v", err)
	}
}

var lossesCommand = &discordgo.ApplicationCommand{
	Name:        "losses",
	Description: "Derrotas y muertes de un jugador en la última semana.",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "summoner",
			Description: "NombreDeInvocador#tag",
			Required:    true,
		},
	},
}

func (b *Bot) registerCommands() error {
	// Por guild es instantáneo; global tarda hasta 1 hora en propagarse
	guildID := b.config.ServerID
	if guildID == "" {
		b.log.Warn("SERVER_ID no configurado en .env, los comandos se registrarán globalmente (puede tardar hasta 1 hora)")
	}

	if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, guildID, lossesCommand); err != nil {
		return fmt.Errorf("error creando comando '%s': %w", lossesCommand.Name, err)
	}
	b.log.Infof("✅ Comando registrado: /%s", lossesCommand.Name)
	return nil
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	data := i.ApplicationCommandData()
	if data.Name != lossesCommand.Name {
		return
	}

	// Responder inmediatamente (Discord requiere respuesta en 3 segundos)
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		b.log.Errorf("Error respondiendo a interacción: %v", err)
		return
	}

	var summoner string
	for _, option := range data.Options {
		if option.Name == "summoner" {
			summoner = option.StringValue()
		}
	}
	b.log.Debugf("Comando recibido: /losses %s", summoner)

	// El cliente reintenta los 429 sin límite; acá el usuario está esperando
	timeout := b.config.QueryTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	content, embed := b.Losses(ctx, summoner)
	params := &discordgo.WebhookParams{Content: content}
	if embed != nil {
		params.Embeds = []*discordgo.MessageEmbed{embed}
	}
	if _, err := s.FollowupMessageCreate(i.Interaction, true, params); err != nil {
		b.log.Errorf("Error enviando followup: %v", err)
	}
}

// Losses responde /losses: o un mensaje de error para el usuario o el embed de estadísticas.
func (b *Bot) Losses(ctx context.Context, input string) (string, *discordgo.MessageEmbed) {
	id, err := riot.ParseIdentity(input)
	if err != nil {
		return "❌ Formato inválido. Usa `NombreDeInvocador#tag`.", nil
	}

	stats, err := b.stats.Weekly(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, riot.ErrNotFound):
			return fmt.Sprintf("❌ No se encontró al invocador **%s**.", id), nil
		case errors.Is(err, riot.ErrTransient), errors.Is(err, context.DeadlineExceeded):
			b.log.Warnf("Error transitorio obteniendo estadísticas de %s: %v", id, err)
			return "⏳ La API de Riot no responde. Inténtalo de nuevo más tarde.", nil
		default:
			b.log.WithField("summoner", id.String()).Errorf("Error inesperado obteniendo estadísticas: %v", err)
			return "❌ Error inesperado obteniendo estadísticas.", nil
		}
	}

	return "", Embed(format.StatsPresentation(stats, id.Name, b.accents))
}
