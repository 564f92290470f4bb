package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator envuelve go-playground/validator y traduce los errores a mensajes en español
// por campo, con el nombre del tag json para que el modal los pinte junto al input.
type Validator struct {
	v *validator.Validate
}

// NewValidator construye el validador.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{v: v}
}

// Validate devuelve nil si in es válido o un mapa campo -> mensaje.
func (val *Validator) Validate(in any) map[string]string {
	err := val.v.Struct(in)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return map[string]string{"_": err.Error()}
	}
	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		key := fieldKey(fe)
		if _, dup := out[key]; dup {
			continue
		}
		out[key] = fieldError(fe)
	}
	return out
}

// fieldKey ruta del campo sin el nombre del struct raíz: "sedes[1]", "email".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func fieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Este campo es obligatorio"
	case "email":
		return "Ingrese un correo válido"
	case "numeric":
		return "Solo se permiten números"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("Debe tener al menos %s caracteres", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("Debe tener al menos %s elementos", fe.Param())
		}
		return fmt.Sprintf("Debe ser mayor o igual a %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("No puede superar %s caracteres", fe.Param())
		}
		return fmt.Sprintf("Debe ser menor o igual a %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Valor no permitido (opciones: %s)", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("Valor inválido (%s)", fe.Tag())
	}
}
