// Package gateway es el adaptador HTTP hacia el backend de GroceryMate: agrega el token
// de la sesión, desenvuelve las respuestas {"data": ...} y normaliza los nombres de campo.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/grocerymate-pos/internal/application/ports"
	"github.com/jhoicas/grocerymate-pos/internal/domain"
)

var (
	_ ports.AuthGateway    = (*Client)(nil)
	_ ports.CatalogGateway = (*Client)(nil)
	_ ports.SalesGateway   = (*Client)(nil)
)

// maxBody límite de lectura de respuestas del backend.
const maxBody = 2 << 20

// Client cliente del backend. Usa net/http directamente; no hay reintentos.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     ports.TokenSource
	log        zerolog.Logger
}

// NewClient construye el adaptador. tokens puede ser nil (sin sesión, p. ej. solo login).
func NewClient(baseURL string, timeout time.Duration, tokens ports.TokenSource, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		log:        log.With().Str("component", "gateway").Logger(),
	}
}

// SetTokenSource asigna la sesión después de construir (session y gateway se referencian mutuamente).
func (c *Client) SetTokenSource(tokens ports.TokenSource) {
	c.tokens = tokens
}

// StatusError respuesta no exitosa del backend.
type StatusError struct {
	Status  int
	Message string
	kind    error
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend HTTP %d", e.Status)
	}
	return fmt.Sprintf("backend HTTP %d: %s", e.Status, e.Message)
}

func (e *StatusError) Unwrap() error { return e.kind }

type request struct {
	method  string
	path    string
	body    any
	headers map[string]string
	auth    bool
}

// do ejecuta la llamada y devuelve el payload ya desenvuelto. Un 401 descarta la sesión.
func (c *Client) do(ctx context.Context, r request) (json.RawMessage, error) {
	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("gateway: serializar request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, body)
	if err != nil {
		return nil, fmt.Errorf("gateway: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if r.auth {
		if c.tokens == nil {
			return nil, domain.ErrUnauthorized
		}
		token, ok := c.tokens.BearerToken(ctx)
		if !ok {
			return nil, domain.ErrUnauthorized
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: timeout o cancelación: %v", domain.ErrGateway, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrGateway, err)
	}
	c.log.Debug().
		Str("method", r.method).
		Str("path", r.path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("backend")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.statusError(ctx, resp.StatusCode, raw)
	}
	return unwrapData(raw), nil
}

func (c *Client) statusError(ctx context.Context, status int, raw []byte) error {
	se := &StatusError{Status: status, Message: errorMessage(raw), kind: domain.ErrGateway}
	switch {
	case status == http.StatusUnauthorized:
		if c.tokens != nil {
			c.tokens.Invalidate(ctx)
		}
		se.kind = domain.ErrUnauthorized
	case status == http.StatusNotFound:
		se.kind = domain.ErrNotFound
	case status >= 400 && status < 500:
		se.kind = domain.ErrInvalidInput
	}
	return se
}

// unwrapData devuelve el contenido de {"data": ...} cuando la respuesta viene envuelta.
func unwrapData(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return trimmed
	}
	if data, ok := env["data"]; ok && !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return data
	}
	return trimmed
}

// errorMessage extrae un mensaje legible del cuerpo de error (error|message|title).
func errorMessage(raw []byte) string {
	obj, err := decodeObject(raw)
	if err != nil {
		s := strings.TrimSpace(string(raw))
		if len(s) > 200 {
			s = s[:200]
		}
		return s
	}
	return obj.str("error", "message", "title", "detail")
}

// isNotFound reporta si el error del backend equivale a "no existe".
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
