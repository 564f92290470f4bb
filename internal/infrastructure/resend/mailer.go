// Package resend envía el formulario de contacto a través de la API HTTP de Resend.
package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/application/ports"
	"github.com/jhoicas/consola-hardware/internal/domain"
	"github.com/jhoicas/consola-hardware/pkg/config"
)

var _ ports.Mailer = (*Mailer)(nil)

// Mailer adaptador de ports.Mailer sobre POST {BaseURL}/emails.
// Sin API key o sin destinatario las llamadas devuelven domain.ErrUnavailable.
type Mailer struct {
	apiKey     string
	baseURL    string
	from       string
	to         string
	httpClient *http.Client
}

// NewMailer construye el adaptador con la configuración de Resend.
func NewMailer(cfg config.ResendConfig) *Mailer {
	return &Mailer{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		from:       cfg.From,
		to:         cfg.To,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled indica si hay credenciales para enviar.
func (m *Mailer) Enabled() bool {
	return m.apiKey != "" && m.to != ""
}

type emailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	Text    string   `json:"text"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

type emailError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

var emailTmpl = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html><body style="font-family: Arial, sans-serif; color: #1f2937;">
<h2>Nuevo mensaje de contacto</h2>
<p><strong>Nombre:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Asunto:</strong> {{.Subject}}</p>
<hr>
<p style="white-space: pre-wrap;">{{.Message}}</p>
</body></html>`))

// SendContact envía el mensaje al buzón configurado con reply_to al remitente.
func (m *Mailer) SendContact(ctx context.Context, in dto.ContactRequest) error {
	if !m.Enabled() {
		return fmt.Errorf("%w: RESEND_API_KEY o CONTACT_TO no configurado", domain.ErrUnavailable)
	}

	var html bytes.Buffer
	if err := emailTmpl.Execute(&html, in); err != nil {
		return fmt.Errorf("resend: armar HTML: %w", err)
	}
	payload := emailRequest{
		From:    m.from,
		To:      []string{m.to},
		Subject: in.Subject,
		HTML:    html.String(),
		Text:    fmt.Sprintf("Nombre: %s\nEmail: %s\n\n%s", in.Name, in.Email, in.Message),
		ReplyTo: in.Email,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("resend: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("resend: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("resend: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("%w: resend: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("resend: leer respuesta: %w", err)
	}
	if resp.StatusCode >= 300 {
		var e emailError
		if jsonErr := json.Unmarshal(raw, &e); jsonErr == nil && e.Message != "" {
			return fmt.Errorf("%w: resend %d (%s): %s", domain.ErrUpstream, resp.StatusCode, e.Name, e.Message)
		}
		return fmt.Errorf("%w: resend HTTP %d", domain.ErrUpstream, resp.StatusCode)
	}
	return nil
}
