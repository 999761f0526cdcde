// Package money reúne los helpers de montos compartidos por el motor de costeo:
// parseo de entradas del formulario, redondeo a 2 decimales y comparación con tolerancia.
package money

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Scale decimales con que se persiste cualquier monto.
const Scale = 2

// QuantityScale decimales con que se persisten cantidades y tarifas (NUMERIC(14,4)).
const QuantityScale = 4

// Tolerance diferencia máxima aceptada entre la suma de una categoría y su total.
var Tolerance = decimal.New(1, -Scale)

// Round redondea a 2 decimales (mitad hacia arriba para valores no negativos).
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Scale)
}

// ParseLenient interpreta una entrada para el recálculo en vivo:
// vacío, no numérico o negativo se trata como 0 para que el formulario siga respondiendo.
// El resultado queda redondeado a QuantityScale, igual que lo guardaría la base de datos.
func ParseLenient(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(normalize(raw))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d.Round(QuantityScale)
}

// ParseStrict interpreta una entrada al enviar el formulario.
// Con positive=true el valor debe ser > 0; si no, basta con que sea >= 0.
// Más de QuantityScale decimales significativos es un error: el valor guardado ya no
// reproduciría los montos calculados con él.
func ParseStrict(field, raw string, positive bool) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(normalize(raw))
	if err != nil || d.IsNegative() || (positive && !d.IsPositive()) {
		return decimal.Zero, &domain.InvalidNumericInputError{Field: field, Value: raw}
	}
	if !FitsQuantityScale(d) {
		return decimal.Zero, &domain.InvalidNumericInputError{
			Field: field, Value: raw, Reason: fmt.Sprintf("máximo %d decimales", QuantityScale),
		}
	}
	return d, nil
}

// FitsQuantityScale indica si d se guarda sin pérdida con QuantityScale decimales.
func FitsQuantityScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(QuantityScale))
}

// ParseOptional como ParseStrict, pero una entrada vacía vale 0.
func ParseOptional(field, raw string) (decimal.Decimal, error) {
	if normalize(raw) == "" {
		return decimal.Zero, nil
	}
	return ParseStrict(field, raw, false)
}

// NonNegative devuelve d, o 0 si d es negativo.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Sum suma una lista de montos.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// WithinTolerance indica si |a - b| <= Tolerance.
func WithinTolerance(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(Tolerance)
}

// Format representación fija con 2 decimales (p. ej. "1000.00").
func Format(d decimal.Decimal) string {
	return Round(d).StringFixed(Scale)
}

func normalize(raw string) string {
	return strings.TrimSpace(raw)
}
