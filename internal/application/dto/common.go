package dto

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Envelope cuerpo estándar de las respuestas JSON de la consola: {success, data, message, errors}.
// Redirect se usa cuando la sesión expiró o el usuario no tiene permisos.
type Envelope struct {
	Success  bool              `json:"success"`
	Data     any               `json:"data,omitempty"`
	Message  string            `json:"message,omitempty"`
	Errors   map[string]string `json:"errors,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
}

// BackendEnvelope respuesta cruda del backend REST: {success, data, errors, message}.
// Errors puede venir como lista de strings o como mapa campo -> mensaje.
type BackendEnvelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// FieldErrors normaliza Errors a un mapa. Las listas se indexan como "0", "1"...
func (e BackendEnvelope) FieldErrors() map[string]string {
	raw := bytes.TrimSpace(e.Errors)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var asMap map[string]any
	if err := json.Unmarshal(raw, &asMap); err == nil {
		out := make(map[string]string, len(asMap))
		for k, v := range asMap {
			out[k] = flattenMessage(v)
		}
		return out
	}
	var asList []any
	if err := json.Unmarshal(raw, &asList); err == nil {
		out := make(map[string]string, len(asList))
		for i, v := range asList {
			out[itoa(i)] = flattenMessage(v)
		}
		return out
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil && asString != "" {
		return map[string]string{"0": asString}
	}
	return nil
}

func flattenMessage(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			parts = append(parts, flattenMessage(p))
		}
		return strings.Join(parts, "; ")
	default:
		b, _ := json.Marshal(t)
		return string(b)
	}
}

func itoa(i int) string {
	b, _ := json.Marshal(i)
	return string(b)
}

// FlexString acepta ids que el backend envía como número o como string.
type FlexString string

// UnmarshalJSON implementa json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// String devuelve el valor como string.
func (f FlexString) String() string { return string(f) }
