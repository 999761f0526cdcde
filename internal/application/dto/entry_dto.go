package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryRequest body para POST /api/entries y /api/entries/preview.
// Cantidades y tarifas llegan crudas: en la vista previa lo inválido cuenta como 0,
// al guardar bloquea el envío.
type EntryRequest struct {
	Kind            string              `json:"kind" validate:"required"`
	Quantity        NumericInput        `json:"quantity"`
	Rate            NumericInput        `json:"rate"`
	LaborRate       NumericInput        `json:"labor_rate,omitempty"`
	SegregationRate NumericInput        `json:"segregation_rate,omitempty"`
	BailingRate     NumericInput        `json:"bailing_rate,omitempty"`
	LoadingRate     NumericInput        `json:"loading_rate,omitempty"`
	AgentID         string              `json:"agent_id,omitempty"`
	PartyID         string              `json:"party_id,omitempty"` // comprador o receptor
	MaterialID      string              `json:"material_id"`
	LocationID      string              `json:"location_id"`
	VoucherNo       string              `json:"voucher_no,omitempty" validate:"max=50"`
	Notes           string              `json:"notes,omitempty" validate:"max=1000"`
	EntryDate       *time.Time          `json:"entry_date,omitempty"`
	Allocations     []AllocationRequest `json:"allocations,omitempty" validate:"dive"`
}

// AllocationRequest trabajador asignado a una categoría. Amount opcional: si viene,
// reemplaza el reparto igualitario para ese trabajador.
type AllocationRequest struct {
	StaffID  string           `json:"staff_id" validate:"required"`
	Category string           `json:"category" validate:"required,oneof=labor segregation bailing loading"`
	Amount   *decimal.Decimal `json:"amount,omitempty"`
}

// AmountsResponse montos derivados de una entrada.
type AmountsResponse struct {
	Total          decimal.Decimal `json:"total_amount"`
	Labor          decimal.Decimal `json:"labor_amount"`
	Segregation    decimal.Decimal `json:"segregation_amount"`
	Bailing        decimal.Decimal `json:"bailing_amount"`
	Loading        decimal.Decimal `json:"loading_amount"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Commission     decimal.Decimal `json:"commission_amount"`
	Net            decimal.Decimal `json:"net_amount"` // negativo = gasto
}

// AllocationResponse asignación de un trabajador.
type AllocationResponse struct {
	ID       string          `json:"id"`
	StaffID  string          `json:"staff_id"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// PreviewResponse resultado del recálculo en vivo.
type PreviewResponse struct {
	Kind        string                     `json:"kind"`
	Amounts     AmountsResponse            `json:"amounts"`
	Targets     map[string]decimal.Decimal `json:"targets"`
	Allocations []AllocationResponse       `json:"allocations"`
	Valid       bool                       `json:"valid"`
	Errors      []FieldError               `json:"errors,omitempty"`
}

// EntryResponse salida de una entrada persistida.
type EntryResponse struct {
	ID              string               `json:"id"`
	Kind            string               `json:"kind"`
	VoucherNo       string               `json:"voucher_no"`
	EntryDate       time.Time            `json:"entry_date"`
	MaterialID      string               `json:"material_id"`
	LocationID      string               `json:"location_id"`
	PartyID         string               `json:"party_id,omitempty"`
	AgentID         string               `json:"agent_id,omitempty"`
	Quantity        decimal.Decimal      `json:"quantity"`
	Rate            decimal.Decimal      `json:"rate"`
	LaborRate       decimal.Decimal      `json:"labor_rate"`
	SegregationRate decimal.Decimal      `json:"segregation_rate"`
	BailingRate     decimal.Decimal      `json:"bailing_rate"`
	LoadingRate     decimal.Decimal      `json:"loading_rate"`
	Amounts         AmountsResponse      `json:"amounts"`
	Notes           string               `json:"notes,omitempty"`
	Allocations     []AllocationResponse `json:"allocations,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	CreatedBy       string               `json:"created_by,omitempty"`
}

// EntryListResponse lista paginada de entradas.
type EntryListResponse struct {
	Items []EntryResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
