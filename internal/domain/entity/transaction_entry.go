package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de entrada.
const (
	EntryKindInward            = "INWARD"             // ingreso de material (compra/recolección)
	EntryKindSegregatedOutward = "SEGREGATED_OUTWARD" // venta de material segregado
	EntryKindRejectedOutward   = "REJECTED_OUTWARD"   // salida de rechazo
)

// TransactionEntry entrada o salida de material con sus montos derivados.
// Cada *Amount es siempre Quantity × su tarifa redondeado a 2 decimales.
type TransactionEntry struct {
	ID                string
	CompanyID         string
	Kind              string
	VoucherNo         string
	EntryDate         time.Time
	MaterialID        string
	LocationID        string
	PartyID           string // comprador o receptor; vacío en entradas
	AgentID           string // agente de recolección; vacío = sin comisión
	Quantity          decimal.Decimal
	Rate              decimal.Decimal
	TotalAmount       decimal.Decimal
	LaborRate         decimal.Decimal
	LaborAmount       decimal.Decimal
	SegregationRate   decimal.Decimal
	SegregationAmount decimal.Decimal
	BailingRate       decimal.Decimal
	BailingAmount     decimal.Decimal
	LoadingRate       decimal.Decimal
	LoadingAmount     decimal.Decimal
	CommissionRate    decimal.Decimal
	CommissionAmount  decimal.Decimal
	Notes             string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	CreatedBy         string
}

// LaborAllocation porción de un costo asignada a un trabajador. Pertenece a una única entrada
// y se elimina con ella.
type LaborAllocation struct {
	ID        string
	EntryID   string
	StaffID   string
	Category  string // labor, segregation, bailing, loading
	Amount    decimal.Decimal
	CreatedAt time.Time
}
