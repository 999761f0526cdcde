// Package costing contiene los cálculos derivados de una entrada:
// montos cantidad × tarifa, comisión del agente y resultado neto.
package costing

import (
	"github.com/jhoicas/Reciclaje-api/internal/domain/money"
	"github.com/shopspring/decimal"
)

// ComputeAmount devuelve round(quantity × ratePerUnit, 2).
// Entradas negativas cuentan como 0; sin estado compartido entre llamadas.
func ComputeAmount(quantity, ratePerUnit decimal.Decimal) decimal.Decimal {
	return money.Round(money.NonNegative(quantity).Mul(money.NonNegative(ratePerUnit)))
}
