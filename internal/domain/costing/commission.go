package costing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AgentDirectory consulta de solo lectura de la tarifa de comisión de un agente de recolección.
// ok=false cuando el agente no existe o no tiene tarifa configurada.
type AgentDirectory interface {
	CommissionRate(agentID string) (rate decimal.Decimal, ok bool)
}

// StaticAgentDirectory directorio en memoria (agentID → tarifa por unidad).
type StaticAgentDirectory map[string]decimal.Decimal

// CommissionRate implementa AgentDirectory.
func (d StaticAgentDirectory) CommissionRate(agentID string) (decimal.Decimal, bool) {
	rate, ok := d[agentID]
	return rate, ok
}

// ResolveCommissionRate busca la tarifa del agente seleccionado.
// Devuelve nil si no hay agente, si el directorio no lo conoce o si no tiene tarifa.
func ResolveCommissionRate(agentID string, dir AgentDirectory) *decimal.Decimal {
	if strings.TrimSpace(agentID) == "" || dir == nil {
		return nil
	}
	rate, ok := dir.CommissionRate(agentID)
	if !ok {
		return nil
	}
	return &rate
}

// CommissionAmount monto de comisión para la cantidad dada; 0 si no se resuelve tarifa.
func CommissionAmount(quantity decimal.Decimal, agentID string, dir AgentDirectory) decimal.Decimal {
	rate := ResolveCommissionRate(agentID, dir)
	if rate == nil {
		return decimal.Zero
	}
	return ComputeAmount(quantity, *rate)
}
