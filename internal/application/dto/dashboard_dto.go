package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// KindSummary totales de un tipo de entrada en el periodo.
type KindSummary struct {
	Kind     string          `json:"kind"`
	Entries  int             `json:"entries"`
	Quantity decimal.Decimal `json:"quantity"`
	Total    decimal.Decimal `json:"total_amount"`
	Costs    decimal.Decimal `json:"costs_amount"` // mano de obra + segregación + embalaje + cargue + comisión
	Net      decimal.Decimal `json:"net_amount"`
}

// PeriodSummary resultado del periodo. Net = Σ neto de cada tipo (entradas restan, salidas suman).
type PeriodSummary struct {
	From  time.Time       `json:"from"`
	To    time.Time       `json:"to"`
	Kinds []KindSummary   `json:"kinds"`
	Net   decimal.Decimal `json:"net_amount"`
}

// MaterialVolumeResponse volumen movido de un material.
type MaterialVolumeResponse struct {
	MaterialID string          `json:"material_id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Inward     decimal.Decimal `json:"inward_qty"`
	Outward    decimal.Decimal `json:"outward_qty"`
}

// DashboardSummaryResponse tablero: hoy, mes en curso y materiales con más movimiento del mes.
type DashboardSummaryResponse struct {
	Today        PeriodSummary            `json:"today"`
	Month        PeriodSummary            `json:"month"`
	TopMaterials []MaterialVolumeResponse `json:"top_materials"`
	DateLabel    string                   `json:"date_label"` // ej: "Marzo 2024"
}
