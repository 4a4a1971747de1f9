package riot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"lol-discord-bot/metrics"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// DefaultRegion es la región de enrutamiento de account-v1 y match-v5
	DefaultRegion = "europe"
	// DefaultRetryDelay es la espera fija entre reintentos tras un 429
	DefaultRetryDelay = 5 * time.Second
	// MaxMatchCount es el máximo de ids que acepta match-v5 por request
	MaxMatchCount = 100
)

// Client es el cliente HTTP de la API de Riot. No guarda estado entre llamadas,
// así que puede usarse desde el poller y desde los comandos a la vez.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	retryDelay time.Duration
	limiter    *rate.Limiter
	log        logrus.FieldLogger
	metrics    metrics.Metrics
}

type Option func(*Client)

// WithBaseURL reemplaza https://{region}.api.riotgames.com (tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.retryDelay = d
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRequestsPerSecond limita el ritmo de requests salientes; 0 o negativo lo desactiva.
func WithRequestsPerSecond(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

func WithMetrics(m metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient crea un cliente para la región dada (vacía = europe).
func NewClient(apiKey, region string, opts ...Option) *Client {
	if region == "" {
		region = DefaultRegion
	}
	c := &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		apiKey:     apiKey,
		baseURL:    fmt.Sprintf("https://%s.api.riotgames.com", region),
		retryDelay: DefaultRetryDelay,
		log:        logrus.StandardLogger(),
		metrics:    metrics.Noop{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ResolveHandle obtiene el puuid de un Riot ID.
func (c *Client) ResolveHandle(ctx context.Context, id Identity) (string, error) {
	path := fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s", url.PathEscape(id.Name), url.PathEscape(id.Tag))
	var account AccountResponse
	if err := c.makeRequest(ctx, "account", path, nil, &account); err != nil {
		return "", fmt.Errorf("invocador %s: %w", id, err)
	}
	if account.PUUID == "" {
		return "", fmt.Errorf("invocador %s: %w", id, ErrNotFound)
	}
	return account.PUUID, nil
}

// ListMatchIDs devuelve ids de partidas de la más reciente a la más antigua.
// Con windowStart nil trae las últimas limit partidas sin importar su fecha.
func (c *Client) ListMatchIDs(ctx context.Context, puuid string, windowStart *time.Time, limit int) ([]string, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > MaxMatchCount {
		limit = MaxMatchCount
	}
	query := url.Values{}
	query.Set("count", strconv.Itoa(limit))
	if windowStart != nil {
		query.Set("startTime", strconv.FormatInt(windowStart.Unix(), 10))
	}

	path := fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids", url.PathEscape(puuid))
	var ids []string
	if err := c.makeRequest(ctx, "match_ids", path, query, &ids); err != nil {
		return nil, fmt.Errorf("historial de partidas: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// LatestMatchID devuelve la partida más reciente; false si la cuenta no tiene partidas.
func (c *Client) LatestMatchID(ctx context.Context, puuid string) (string, bool, error) {
	ids, err := c.ListMatchIDs(ctx, puuid, nil, 1)
	if err != nil {
		return "", false, err
	}
	if len(ids) == 0 {
		return "", false, nil
	}
	return ids[0], true, nil
}

// FetchMatch obtiene el detalle completo de una partida.
func (c *Client) FetchMatch(ctx context.Context, matchID string) (*Match, error) {
	path := fmt.Sprintf("/lol/match/v5/matches/%s", url.PathEscape(matchID))
	var match Match
	if err := c.makeRequest(ctx, "match", path, nil, &match); err != nil {
		return nil, fmt.Errorf("partida %s: %w", matchID, err)
	}
	return &match, nil
}

// makeRequest hace un GET y decodifica el JSON en result. Un 429 se reintenta
// con la misma request tras retryDelay hasta que la API responda otra cosa o
// se cancele ctx.
func (c *Client) makeRequest(ctx context.Context, endpoint, path string, query url.Values, result interface{}) error {
	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("api_key", c.apiKey)
	fullURL := c.baseURL + path + "?" + q.Encode()

	log := c.log.WithField("endpoint", endpoint)
	for attempt := 1; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return &TransientError{Op: endpoint, Cause: err}
			}
		}

		log.Debugf("GET %s (intento %d)", path, attempt)
		status, body, err := c.do(ctx, fullURL)
		c.metrics.IncRiotRequest(endpoint, status)
		if err != nil {
			return &TransientError{Op: endpoint, Cause: err}
		}

		err = classify(endpoint, status, body)
		if errors.Is(err, ErrRateLimited) {
			c.metrics.IncRateLimited(endpoint)
			log.Warnf("Rate limited (429). Reintentando en %s...", c.retryDelay)
			if werr := c.wait(ctx); werr != nil {
				return &TransientError{Op: endpoint, Cause: fmt.Errorf("espera tras 429 cancelada: %w", werr)}
			}
			continue
		}
		if err != nil {
			return err
		}

		if len(bytes.TrimSpace(body)) == 0 {
			return &UnexpectedError{Op: endpoint, Status: status, Cause: fmt.Errorf("respuesta vacía")}
		}
		if err := json.Unmarshal(body, result); err != nil {
			return &UnexpectedError{Op: endpoint, Cause: fmt.Errorf("error decodificando respuesta: %w", err)}
		}
		return nil
	}
}

// classify traduce un status HTTP a la taxonomía de errores del paquete.
func classify(endpoint string, status int, body []byte) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusTooManyRequests:
		return ErrRateLimited
	case status == http.StatusNotFound:
		return fmt.Errorf("%s: %w", endpoint, ErrNotFound)
	case status >= 500 || status == http.StatusRequestTimeout:
		return &TransientError{Op: endpoint, Cause: fmt.Errorf("API retornó status %d: %s", status, truncate(body))}
	default:
		return &UnexpectedError{Op: endpoint, Status: status, Cause: fmt.Errorf("%s", truncate(body))}
	}
}

func (c *Client) do(ctx context.Context, fullURL string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("error creando request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("error en request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("error leyendo respuesta: %w", err)
	}
	return resp.StatusCode, body, nil
}

// wait duerme retryDelay o hasta que se cancele ctx.
func (c *Client) wait(ctx context.Context) error {
	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(body []byte) string {
	const limit = 200
	s := string(bytes.TrimSpace(body))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
