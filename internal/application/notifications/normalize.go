// Package notifications implementa el chequeo periódico del estado físico del hardware:
// normalización de respuestas, detección de alertas nuevas, poller y difusión a pestañas.
package notifications

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/consola-hardware/internal/domain/entity"
)

// ErrMalformed la respuesta del chequeo no tiene ninguna de las formas conocidas.
var ErrMalformed = errors.New("respuesta de estado físico con formato desconocido")

// listKeys claves bajo las que el backend ha enviado la lista de alertas.
var listKeys = []string{"inactive_hardware", "hardware", "alerts", "notifications", "items", "data", "result", "results"}

// Textos para los campos que la alerta no trae.
const (
	DefaultHardwareName = "Hardware sin nombre"
	DefaultEmpresaName  = "Empresa sin nombre"
	DefaultSedeName     = "Sede no especificada"
)

var spaces = regexp.MustCompile(`\s+`)

// Normalize convierte las distintas formas de respuesta del chequeo en alertas uniformes.
// Acepta un arreglo suelto, {data: [...]}, {data: {items|hardware|...: [...]}} o
// {inactive_hardware: [...]}.
//
// El id de la alerta es el del hardware (hardware_id, hardwareId, id, _id). Si el
// elemento no trae ninguno se arma uno estable con nombre, empresa y sede, así el mismo
// equipo conserva su id entre chequeos. Los ids repetidos se descartan (gana el primero).
func Normalize(raw []byte) ([]entity.HardwareAlert, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	list, err := findList(root, 0)
	if err != nil {
		return nil, err
	}

	out := make([]entity.HardwareAlert, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, el := range list {
		obj, ok := el.(map[string]any)
		if !ok {
			continue
		}
		a := toAlert(obj)
		if seen[a.ID] {
			continue
		}
		seen[a.ID] = true
		out = append(out, a)
	}
	return out, nil
}

func findList(v any, depth int) ([]any, error) {
	switch t := v.(type) {
	case []any:
		return t, nil
	case map[string]any:
		if depth > 2 {
			return nil, ErrMalformed
		}
		if ok, isBool := t["success"].(bool); isBool && !ok {
			msg, _ := t["message"].(string)
			if msg == "" {
				msg, _ = t["error"].(string)
			}
			return nil, fmt.Errorf("chequeo rechazado por el backend: %s", msg)
		}
		for _, k := range listKeys {
			inner, ok := t[k]
			if !ok || inner == nil {
				continue
			}
			return findList(inner, depth+1)
		}
		// Respuesta sin alertas: {"success": true} o {"count": 0}.
		if _, ok := t["success"]; ok {
			return []any{}, nil
		}
		if _, ok := t["count"]; ok {
			return []any{}, nil
		}
		return nil, ErrMalformed
	case nil:
		return []any{}, nil
	default:
		return nil, ErrMalformed
	}
}

func toAlert(obj map[string]any) entity.HardwareAlert {
	hw, _ := obj["hardware"].(map[string]any)
	hardwareID := firstString(
		str(obj["hardware_id"]), str(obj["hardwareId"]),
		str(hw["_id"]), str(hw["id"]),
		str(obj["id"]), str(obj["_id"]),
	)

	name := orDefault(firstString(
		str(obj["hardware_nombre"]), str(obj["hardwareName"]), str(obj["hardware_name"]),
		str(obj["nombre_hardware"]),
		str(hw["nombre"]), str(hw["name"]),
		str(obj["nombre"]), str(obj["name"]),
	), DefaultHardwareName)
	empresa := orDefault(firstString(
		str(obj["empresa_nombre"]), str(obj["empresaName"]), str(obj["empresa_name"]),
		nameOf(obj["empresa"]),
		str(obj["company_name"]),
	), DefaultEmpresaName)
	sede := orDefault(firstString(
		nameOf(obj["sede"]),
		str(obj["sede_nombre"]), str(obj["sede_name"]), str(obj["sedeName"]),
		str(obj["site"]), str(obj["location"]),
	), DefaultSedeName)

	id := hardwareID
	if id == "" {
		id = strings.ToLower(spaces.ReplaceAllString(name+"-"+empresa+"-"+sede, "_"))
	}

	return entity.HardwareAlert{
		ID:           id,
		HardwareID:   hardwareID,
		HardwareName: name,
		EmpresaID: firstString(
			str(obj["empresa_id"]), str(obj["empresaId"]),
			idOf(obj["empresa"]), str(hw["empresa_id"]),
		),
		EmpresaName: empresa,
		SedeName:    sede,
	}
}

// nameOf acepta el valor como string o como objeto {nombre|name}.
func nameOf(v any) string {
	switch t := v.(type) {
	case map[string]any:
		return firstString(str(t["nombre"]), str(t["name"]))
	default:
		return str(v)
	}
}

// idOf id de un objeto anidado {_id|id}.
func idOf(v any) string {
	if t, ok := v.(map[string]any); ok {
		return firstString(str(t["_id"]), str(t["id"]))
	}
	return ""
}

func str(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
