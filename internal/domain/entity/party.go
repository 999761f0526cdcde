package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles de un tercero.
const (
	PartyRoleBuyer     = "buyer"     // compra material segregado
	PartyRoleRecipient = "recipient" // recibe material rechazado
	PartyRoleAgent     = "agent"     // agente de recolección con comisión
)

// Party representa un tercero: comprador, receptor de rechazo o agente de recolección.
// CommissionRate solo aplica a agentes; nil = sin tarifa configurada.
type Party struct {
	ID             string
	CompanyID      string
	Name           string
	Role           string
	Phone          string
	CommissionRate *decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
