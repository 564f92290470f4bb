package resend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/consola-hardware/internal/application/dto"
	"github.com/jhoicas/consola-hardware/internal/domain"
	"github.com/jhoicas/consola-hardware/internal/infrastructure/resend"
	"github.com/jhoicas/consola-hardware/pkg/config"
)

var contacto = dto.ContactRequest{
	Name:    "Ana <script>",
	Email:   "ana@acme.co",
	Subject: "Cotización",
	Message: "Necesito 10 cámaras",
}

func TestSendContact_EnviaPayload(t *testing.T) {
	var got map[string]any
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/emails", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"abc"}`))
	}))
	defer srv.Close()

	m := resend.NewMailer(config.ResendConfig{APIKey: "re_test", BaseURL: srv.URL + "/", From: "Consola <a@b.co>", To: "ventas@b.co"})
	require.NoError(t, m.SendContact(context.Background(), contacto))

	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, "Cotización", got["subject"])
	assert.Equal(t, "ana@acme.co", got["reply_to"])
	assert.Equal(t, []any{"ventas@b.co"}, got["to"])
	assert.Contains(t, got["html"], "Ana &lt;script&gt;", "el HTML escapa la entrada")
}

func TestSendContact_SinAPIKey(t *testing.T) {
	m := resend.NewMailer(config.ResendConfig{To: "ventas@b.co"})
	assert.False(t, m.Enabled())
	err := m.SendContact(context.Background(), contacto)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestSendContact_ErrorAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"name":"validation_error","message":"from inválido"}`))
	}))
	defer srv.Close()

	m := resend.NewMailer(config.ResendConfig{APIKey: "k", BaseURL: srv.URL, To: "x@y.co"})
	err := m.SendContact(context.Background(), contacto)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "from inválido")
}
