package costing

import (
	"github.com/jhoicas/Reciclaje-api/internal/domain/money"
	"github.com/shopspring/decimal"
)

// ComputeNet resultado neto con signo, solo para mostrar (nunca se persiste).
//
//	gasto:   -total - Σcostos
//	ingreso:  total - Σcostos
func ComputeNet(totalAmount decimal.Decimal, costAmounts []decimal.Decimal, isExpense bool) decimal.Decimal {
	costs := money.Sum(costAmounts...)
	if isExpense {
		return totalAmount.Neg().Sub(costs)
	}
	return totalAmount.Sub(costs)
}
