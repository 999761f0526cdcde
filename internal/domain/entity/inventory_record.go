package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord stock actual de un material en una ubicación (clave natural: LocationID + MaterialID).
// Solo se modifica a través del motor de ajustes; nunca queda negativo.
type InventoryRecord struct {
	CompanyID  string
	LocationID string
	MaterialID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
