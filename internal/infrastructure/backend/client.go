// Package backend implementa los puertos de la aplicación sobre la API REST externa que es dueña
// de empresas, hardware y usuarios. Todas las respuestas usan el envelope {success, data, errors}.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/application/ports"
	"github.com/jhoicas/consola-hardware/internal/domain"
	"github.com/jhoicas/consola-hardware/pkg/config"
)

// Verificar en tiempo de compilación que Client implementa los puertos.
var (
	_ ports.HardwareAPI = (*Client)(nil)
	_ ports.EmpresaAPI  = (*Client)(nil)
	_ ports.UsuarioAPI  = (*Client)(nil)
	_ ports.StatusAPI   = (*Client)(nil)
	_ ports.AuthAPI     = (*Client)(nil)
)

const maxBodyBytes = 2 << 20

// Client adaptador HTTP del backend. Usa net/http de la librería estándar.
type Client struct {
	baseURL       string
	sessionCookie string
	serviceToken  string
	httpClient    *http.Client
}

// NewClient construye el cliente con el timeout de la configuración.
func NewClient(cfg config.BackendConfig) *Client {
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		sessionCookie: cfg.SessionCookie,
		serviceToken:  cfg.ServiceToken,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
	}
}

type rawResponse struct {
	status  int
	body    []byte
	cookies []*http.Cookie
}

// send ejecuta la petición con las credenciales del contexto y devuelve el cuerpo crudo.
func (c *Client) send(ctx context.Context, method, path string, in any) (*rawResponse, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("backend: serializar request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("backend: crear HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s := ports.SessionFrom(ctx); s != "" {
		req.AddCookie(&http.Cookie{Name: c.sessionCookie, Value: s})
	} else if c.serviceToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("backend: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("backend: leer respuesta: %w", err)
	}
	return &rawResponse{status: resp.StatusCode, body: raw, cookies: resp.Cookies()}, nil
}

// do ejecuta la petición, valida el envelope y decodifica data en out (si no es nil).
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	data, err := unwrap(resp)
	if err != nil {
		return err
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("backend: deserializar %s %s: %w", method, path, err)
	}
	return nil
}

// unwrap convierte la respuesta en data o en *domain.APIError.
// Si el cuerpo no es un envelope (p. ej. un arreglo suelto), el cuerpo completo es data.
func unwrap(resp *rawResponse) (json.RawMessage, error) {
	var env dto.BackendEnvelope
	trimmed := bytes.TrimSpace(resp.body)
	isObject := len(trimmed) > 0 && trimmed[0] == '{'
	if isObject {
		if err := json.Unmarshal(trimmed, &env); err != nil {
			isObject = false
		}
	}

	if resp.status >= 400 {
		apiErr := &domain.APIError{Status: resp.status}
		if isObject {
			apiErr.Message = firstNonEmpty(env.Message, env.Error)
			apiErr.Fields = env.FieldErrors()
		}
		return nil, apiErr
	}
	if !isObject {
		return trimmed, nil
	}
	if env.Success != nil && !*env.Success {
		return nil, &domain.APIError{
			Status:  http.StatusUnprocessableEntity,
			Message: firstNonEmpty(env.Message, env.Error),
			Fields:  env.FieldErrors(),
		}
	}
	if env.Success == nil && len(env.Data) == 0 {
		return trimmed, nil
	}
	return env.Data, nil
}

// decodeList acepta data como arreglo o como objeto que envuelve el arreglo bajo alguna de keys.
func decodeList(data json.RawMessage, out any, keys ...string) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '[' {
		return json.Unmarshal(data, out)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	for _, k := range append(keys, "items", "results") {
		if v, ok := obj[k]; ok {
			return json.Unmarshal(v, out)
		}
	}
	return fmt.Errorf("backend: lista no encontrada en la respuesta")
}

func (c *Client) list(ctx context.Context, path string, out any, keys ...string) error {
	var data json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return err
	}
	if err := decodeList(data, out, keys...); err != nil {
		return fmt.Errorf("backend: deserializar GET %s: %w", path, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func seg(id string) string { return url.PathEscape(id) }
