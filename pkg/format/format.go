// Package format reúne los formatos de presentación compartidos por plantillas y reportes.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de fecha de la consola (dd/mm/aaaa).
const DateLayout = "02/01/2006"

// Currency formatea con separador de miles y dos decimales: 1234.5 -> "$1,234.50".
func Currency(v decimal.Decimal) string {
	s := v.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	sign := ""
	if v.IsNegative() && !v.Round(2).IsZero() {
		sign = "-"
	}
	return sign + "$" + groupThousands(intPart) + "." + frac
}

// Date formatea t con layout (DateLayout si está vacío). La fecha cero queda vacía.
func Date(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	if layout == "" {
		layout = DateLayout
	}
	return t.Format(layout)
}

func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var b strings.Builder
	b.Grow(n + n/3)
	for i, c := range s {
		if i > 0 && (n-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}
