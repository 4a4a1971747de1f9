package webserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"lol-discord-bot/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

// NewHandler expone el health check en / y las métricas en /metrics.
func NewHandler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Discord bot ok"))
	})
	mux.Handle("/metrics", metrics.NewMetricsHandler(gatherer))
	return mux
}

// Run escucha en :port hasta que se cancele ctx.
func Run(ctx context.Context, port string, gatherer prometheus.Gatherer, log logrus.FieldLogger) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           NewHandler(gatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Webserver escuchando en %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("error en webserver: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error cerrando webserver: %w", err)
	}
	log.Info("Webserver cerrado")
	return nil
}
