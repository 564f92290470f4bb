package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// fields objeto del backend decodificado a medias. El backend usa claves en español
// (nombre, activa, ubicacion) y algunas rutas devuelven las inglesas; se lee la primera
// clave presente.
type fields map[string]json.RawMessage

func decodeFields(b []byte) (fields, error) {
	var f fields
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	return f, nil
}

func (f fields) raw(keys ...string) json.RawMessage {
	for _, k := range keys {
		v := bytes.TrimSpace(f[k])
		if len(v) > 0 && !bytes.Equal(v, []byte("null")) {
			return v
		}
	}
	return nil
}

// str primer valor string o numérico no vacío.
func (f fields) str(keys ...string) string {
	for _, k := range keys {
		var v FlexString
		if raw := f.raw(k); raw != nil && json.Unmarshal(raw, &v) == nil {
			if s := strings.TrimSpace(v.String()); s != "" {
				return s
			}
		}
	}
	return ""
}

func (f fields) id(keys ...string) FlexString { return FlexString(f.str(keys...)) }

// boolOr acepta true/false, "true"/"false" y 1/0. Sin la clave devuelve def.
func (f fields) boolOr(def bool, keys ...string) bool {
	raw := f.raw(keys...)
	if raw == nil {
		return def
	}
	var b bool
	if json.Unmarshal(raw, &b) == nil {
		return b
	}
	var s FlexString
	if json.Unmarshal(raw, &s) == nil {
		if v, err := strconv.ParseBool(strings.TrimSpace(s.String())); err == nil {
			return v
		}
	}
	return def
}

func (f fields) int(keys ...string) int {
	s := f.str(keys...)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return int(d.IntPart())
	}
	return 0
}

func (f fields) decimal(keys ...string) decimal.Decimal {
	if s := f.str(keys...); s != "" {
		if d, err := decimal.NewFromString(s); err == nil {
			return d
		}
	}
	return decimal.Zero
}

func (f fields) strings(keys ...string) []string {
	raw := f.raw(keys...)
	if raw == nil {
		return nil
	}
	var out []string
	if json.Unmarshal(raw, &out) == nil {
		return out
	}
	return nil
}

// object valor anidado como objeto o como string con JSON dentro. Vacío si no es ninguno.
func (f fields) object(keys ...string) fields {
	raw := f.raw(keys...)
	if raw == nil {
		return fields{}
	}
	if raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return fields{}
		}
		raw = []byte(s)
	}
	inner, err := decodeFields(raw)
	if err != nil || inner == nil {
		return fields{}
	}
	return inner
}

// either lee de primary y, si no hay valor, de fallback.
func either(primary, fallback fields, keys ...string) string {
	if v := primary.str(keys...); v != "" {
		return v
	}
	return fallback.str(keys...)
}
