package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryAdjustment registro de auditoría inmutable de un ajuste de inventario.
// Cada cambio de InventoryRecord deja exactamente uno; nunca se actualiza ni se borra.
type InventoryAdjustment struct {
	ID             string
	CompanyID      string
	LocationID     string
	MaterialID     string
	AdjustmentType string          // COUNT, ADD, REMOVE, LOSS
	Quantity       decimal.Decimal // valor ingresado (delta o conteo)
	PreviousQty    decimal.Decimal
	NewQty         decimal.Decimal
	Reason         string
	Notes          string
	EntryID        string // entrada que originó el ajuste, vacío si fue manual
	AdjustmentDate time.Time
	CreatedAt      time.Time
	CreatedBy      string
}
