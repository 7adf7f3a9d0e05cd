// Package upstream implementa los puertos de parcerias, OSCs, lojas y campanhas sobre la API
// REST del backend (JSON sobre HTTP, respuestas envueltas en {success, data, message}).
package upstream

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
	"strings"
	"time"

	"github.com/jhoicas/parcerias-admin/internal/domain"
	"github.com/jhoicas/parcerias-admin/pkg/metrics"
)

// DefaultMaxResponseBytes tope de cuerpo cuando Config.MaxResponseBytes es cero.
const DefaultMaxResponseBytes int64 = 32 << 20

// Config conexión con el backend.
type Config struct {
	BaseURL          string
	APIToken         string
	Timeout          time.Duration
	MaxResponseBytes int64
}

// Client transporte HTTP compartido por los gateways.
type Client struct {
	baseURL          string
	apiToken         string
	maxResponseBytes int64
	httpClient       *http.Client
	metrics          *metrics.Metrics
}

// NewClient construye el cliente. Un timeout cero usa 15 s; un tope cero usa DefaultMaxResponseBytes.
func NewClient(cfg Config, m *metrics.Metrics) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxBytes := cfg.MaxResponseBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxResponseBytes
	}
	return &Client{
		baseURL:          strings.TrimRight(cfg.BaseURL, "/"),
		apiToken:         cfg.APIToken,
		maxResponseBytes: maxBytes,
		httpClient:       &http.Client{Timeout: timeout},
		metrics:          m,
	}
}

// HTTPError respuesta del backend con estado no exitoso o success=false.
type HTTPError struct {
	Operation string
	Status    int
	Message   string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream %s: HTTP %d: %s", e.Operation, e.Status, e.Message)
	}
	return fmt.Sprintf("upstream %s: HTTP %d", e.Operation, e.Status)
}

// PublicMessage mensaje del backend apto para el operador (puede ser vacío).
func (e *HTTPError) PublicMessage() string { return e.Message }

// Unwrap permite errors.Is(err, domain.ErrNotFound) para 404 y domain.ErrUpstream para el resto.
func (e *HTTPError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return domain.ErrUpstream
}

// envelope respuesta estándar del backend. Success nil significa que el cuerpo no viene envuelto.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do ejecuta la llamada y devuelve el campo data (o el cuerpo completo si no viene envuelto).
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, body any) (json.RawMessage, error) {
	start := time.Now()
	data, status, err := c.roundTrip(ctx, operation, method, path, query, body)
	c.metrics.ObserveUpstream(operation, outcomeLabel(status, err), time.Since(start))
	return data, err
}

func (c *Client) roundTrip(ctx context.Context, operation, method, path string, query url.Values, body any) (json.RawMessage, int, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("upstream %s: serializar request: %w", operation, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("upstream %s: crear HTTP request: %w", operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, 0, fmt.Errorf("upstream %s: timeout o cancelación: %w: %w", operation, domain.ErrUpstream, ctx.Err())
		}
		return nil, 0, fmt.Errorf("upstream %s: llamada HTTP fallida: %w: %w", operation, domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	// un byte de más distingue un cuerpo en el tope de uno truncado
	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBytes+1))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("upstream %s: leer respuesta: %w: %w", operation, domain.ErrUpstream, err)
	}
	if int64(len(raw)) > c.maxResponseBytes {
		return nil, resp.StatusCode, fmt.Errorf("upstream %s: respuesta excede %d bytes: %w", operation, c.maxResponseBytes, domain.ErrUpstream)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{Operation: operation, Status: resp.StatusCode}
		if decodeErr == nil {
			httpErr.Message = env.Message
		}
		return nil, resp.StatusCode, httpErr
	}
	if decodeErr != nil || env.Success == nil {
		// cuerpo sin envoltorio: el JSON completo es el dato
		if len(bytes.TrimSpace(raw)) == 0 {
			return nil, resp.StatusCode, nil
		}
		if !json.Valid(raw) {
			return nil, resp.StatusCode, fmt.Errorf("upstream %s: respuesta no es JSON: %w", operation, domain.ErrMalformedRecord)
		}
		return raw, resp.StatusCode, nil
	}
	if !*env.Success {
		return nil, resp.StatusCode, &HTTPError{Operation: operation, Status: resp.StatusCode, Message: env.Message}
	}
	return env.Data, resp.StatusCode, nil
}

// decode interpreta data en out; data vacío o null devuelve errEmptyData.
func decode(operation string, data json.RawMessage, out any) error {
	if isNull(data) {
		return errEmptyData
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("upstream %s: decodificar data: %v: %w", operation, err, domain.ErrMalformedRecord)
	}
	return nil
}

var errEmptyData = errors.New("upstream: data vacío")

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func outcomeLabel(status int, err error) string {
	switch {
	case status == 0 && err != nil:
		return "transport_error"
	case status >= 500:
		return "5xx"
	case status >= 400:
		return strconv.Itoa(status)
	case err != nil:
		return "rejected"
	default:
		return "ok"
	}
}
