package tracker

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"lol-discord-bot/metrics"
	"lol-discord-bot/riot"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoMatches: la cuenta no tiene ninguna partida.
	ErrNoMatches = errors.New("no hay partidas")
	// ErrParticipantNotFound: el jugador no aparece en su última partida.
	ErrParticipantNotFound = fmt.Errorf("jugador no encontrado en la partida: %w", riot.ErrNotFound)
)

// State es el estado del detector: última partida vista y si la próxima
// partida nueva debe silenciarse (la primera tras arrancar el proceso).
type State struct {
	LastSeen *string
	Suppress bool
}

// InitialState es el estado al arrancar: nada visto, primera notificación silenciada.
func InitialState() State {
	return State{Suppress: true}
}

// Step compara la partida más reciente con la última vista. Devuelve el nuevo
// estado y si hay que notificar.
func Step(s State, matchID string) (State, bool) {
	if s.LastSeen != nil && *s.LastSeen == matchID {
		return s, false
	}
	id := matchID
	return State{LastSeen: &id, Suppress: false}, !s.Suppress
}

// PollResult dice qué pasó en un ciclo exitoso.
type PollResult int

const (
	Unchanged PollResult = iota
	Suppressed
	Notified
)

func (r PollResult) String() string {
	switch r {
	case Suppressed:
		return "suppressed"
	case Notified:
		return "notified"
	default:
		return "unchanged"
	}
}

type DetectorConfig struct {
	API      MatchAPI
	Identity riot.Identity
	Notifier Notifier
	Format   MessageFunc
	Log      logrus.FieldLogger
	Metrics  metrics.Metrics
}

// Detector es el único dueño de State. Poll serializa los ciclos, así que
// dos ciclos solapados no pueden notificar dos veces la misma partida.
type Detector struct {
	api      MatchAPI
	identity riot.Identity
	notifier Notifier
	format   MessageFunc
	log      logrus.FieldLogger
	metrics  metrics.Metrics

	mu    sync.Mutex
	state State
}

func NewDetector(cfg DetectorConfig) *Detector {
	d := &Detector{
		api:      cfg.API,
		identity: cfg.Identity,
		notifier: cfg.Notifier,
		format:   cfg.Format,
		log:      cfg.Log,
		metrics:  cfg.Metrics,
		state:    InitialState(),
	}
	if d.log == nil {
		d.log = logrus.StandardLogger()
	}
	if d.metrics == nil {
		d.metrics = metrics.Noop{}
	}
	if d.format == nil {
		d.format = func(id riot.Identity, o Outcome) string {
			if o.Won {
				return fmt.Sprintf("%s ganó una partida", id)
			}
			return fmt.Sprintf("%s perdió una partida", id)
		}
	}
	return d
}

// State devuelve una copia del estado actual.
func (d *Detector) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.state
	if s.LastSeen != nil {
		id := *s.LastSeen
		s.LastSeen = &id
	}
	return s
}

// Run es el punto de entrada del scheduler: nunca devuelve error, lo registra
// y deja el estado como estaba.
func (d *Detector) Run(ctx context.Context) {
	log := d.log.WithField("cycle", uuid.NewString())
	result, err := d.poll(ctx, log)
	if err != nil {
		d.metrics.IncPollCycle("failed")
		switch {
		case errors.Is(err, ErrNoMatches), errors.Is(err, riot.ErrNotFound):
			log.Warnf("Ciclo omitido: %v", err)
		case errors.Is(err, context.Canceled):
			log.Infof("Ciclo cancelado: %v", err)
		default:
			log.Errorf("Error verificando partidas: %v", err)
		}
		return
	}
	d.metrics.IncPollCycle(result.String())
}

// Poll ejecuta un ciclo completo. Ante cualquier error el estado queda igual.
func (d *Detector) Poll(ctx context.Context) (PollResult, error) {
	return d.poll(ctx, d.log)
}

func (d *Detector) poll(ctx context.Context, log logrus.FieldLogger) (PollResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	log.Debug("Verificando nuevas partidas...")

	puuid, err := d.api.ResolveHandle(ctx, d.identity)
	if err != nil {
		return Unchanged, err
	}

	ids, err := d.api.ListMatchIDs(ctx, puuid, nil, 1)
	if err != nil {
		return Unchanged, err
	}
	if len(ids) == 0 || ids[0] == "" {
		return Unchanged, fmt.Errorf("%s: %w", d.identity, ErrNoMatches)
	}
	matchID := ids[0]

	// Misma partida que la última vista: el detalle no cambiaría nada.
	if d.state.LastSeen != nil && *d.state.LastSeen == matchID {
		log.WithField("match_id", matchID).Debug("Sin partidas nuevas")
		return Unchanged, nil
	}

	match, err := d.api.FetchMatch(ctx, matchID)
	if err != nil {
		return Unchanged, err
	}
	outcome := OutcomeFor(match, puuid)
	if !outcome.Found {
		return Unchanged, fmt.Errorf("partida %s: %w", matchID, ErrParticipantNotFound)
	}
	outcome.MatchID = matchID

	next, notify := Step(d.state, matchID)
	d.state = next

	log = log.WithField("match_id", matchID)
	if !notify {
		log.Infof("Partida inicial registrada para %s (sin notificar)", d.identity)
		return Suppressed, nil
	}

	log.Infof("Nueva partida detectada para %s (victoria: %t)", d.identity, outcome.Won)
	if d.notifier != nil {
		if err := d.notifier.Send(ctx, d.format(d.identity, outcome)); err != nil {
			d.metrics.IncNotification(false)
			log.Errorf("Error enviando notificación: %v", err)
		} else {
			d.metrics.IncNotification(true)
		}
	}
	return Notified, nil
}
