package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// KindTotals montos acumulados de las entradas de un tipo en un periodo.
type KindTotals struct {
	Kind        string
	Entries     int
	Quantity    decimal.Decimal
	Total       decimal.Decimal
	Labor       decimal.Decimal
	Segregation decimal.Decimal
	Bailing     decimal.Decimal
	Loading     decimal.Decimal
	Commission  decimal.Decimal
}

// MaterialVolume cantidades movidas de un material en un periodo.
type MaterialVolume struct {
	MaterialID string
	Code       string
	Name       string
	Inward     decimal.Decimal
	Outward    decimal.Decimal
}

// DashboardRepository consultas de solo lectura para el tablero. Periodo [from, to] inclusivo.
type DashboardRepository interface {
	KindTotals(ctx context.Context, companyID string, from, to time.Time) ([]KindTotals, error)
	TopMaterials(ctx context.Context, companyID string, from, to time.Time, limit int) ([]MaterialVolume, error)
}
