package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lol-discord-bot/logger"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Job es una tarea programada. Run no devuelve error: cada job registra los suyos.
type Job interface {
	Run(ctx context.Context)
}

// JobFunc adapta una función a Job.
type JobFunc func(ctx context.Context)

func (f JobFunc) Run(ctx context.Context) { f(ctx) }

// Scheduler dispara los jobs con robfig/cron. Un job que sigue corriendo
// cuando llega su próximo disparo se salta, así nunca hay dos ciclos del
// mismo job en paralelo.
type Scheduler struct {
	mu     sync.Mutex
	parser cron.Parser
	c      *cron.Cron
	log    logrus.FieldLogger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func New(loc *time.Location, log logrus.FieldLogger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	cl := logger.CronLogger{Log: log}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		parser: parser,
		c: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add registra un job con una expresión cron de 5 campos o un descriptor (@every 1m, @weekly).
func (s *Scheduler) Add(name, spec string, job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.parser.Parse(spec); err != nil {
		return fmt.Errorf("expresión inválida para %s (%q): %w", name, spec, err)
	}
	_, err := s.c.AddFunc(spec, func() {
		s.log.WithField("job", name).Debug("Ejecutando tarea programada")
		job.Run(s.ctx)
	})
	if err != nil {
		return fmt.Errorf("error registrando %s: %w", name, err)
	}
	s.log.Infof("Tarea %s programada: %s", name, spec)
	return nil
}

// RunNow ejecuta un job fuera del calendario, en segundo plano.
func (s *Scheduler) RunNow(name string, job Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				s.log.WithField("job", name).Errorf("panic en tarea: %v", r)
			}
		}()
		job.Run(s.ctx)
	}()
}

func (s *Scheduler) Start() {
	s.c.Start()
	s.log.Info("Scheduler iniciado")
}

// Stop cancela el contexto de los jobs (corta esperas de reintento en curso)
// y espera a que terminen.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.c.Stop().Done()
	s.wg.Wait()
	s.log.Info("Scheduler detenido")
}

// Run arranca el scheduler, lanza los jobs de arranque y para al cancelarse ctx.
func (s *Scheduler) Run(ctx context.Context, startup map[string]Job) error {
	s.Start()
	for name, job := range startup {
		s.RunNow(name, job)
	}
	<-ctx.Done()
	s.Stop()
	return nil
}
