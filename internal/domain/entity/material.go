package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa un tipo de residuo o material reciclable (cartón, PET, chatarra...).
// DefaultRate es la tarifa por unidad sugerida al abrir un formulario de entrada.
type Material struct {
	ID          string
	CompanyID   string
	Code        string // código único por empresa
	Name        string
	UnitMeasure string // kg, ton, unidad
	DefaultRate decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
