package costing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reciclaje-api/internal/domain/costing"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeAmount(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		rate     string
		want     string
	}{
		{"total entrada", "500", "10", "5000"},
		{"mano de obra", "500", "2", "1000"},
		{"redondeo mitad arriba", "3", "0.335", "1.01"},
		{"redondeo hacia abajo", "1.333", "1", "1.33"},
		{"cantidad cero", "0", "15", "0"},
		{"tarifa negativa cuenta como cero", "10", "-2", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := costing.ComputeAmount(dec(tt.quantity), dec(tt.rate))
			assert.True(t, got.Equal(dec(tt.want)), "obtenido %s, esperado %s", got, tt.want)
		})
	}
}

// La función equivale siempre a round(q × r, 2) para q, r >= 0.
func TestComputeAmount_ConsistenteConProducto(t *testing.T) {
	for q := 0; q <= 40; q += 7 {
		for r := 0; r <= 300; r += 37 {
			quantity := decimal.New(int64(q*13), -1)
			rate := decimal.New(int64(r), -3)
			want := quantity.Mul(rate).Round(2)
			assert.True(t, costing.ComputeAmount(quantity, rate).Equal(want))
		}
	}
}

func TestResolveCommissionRate(t *testing.T) {
	dir := costing.StaticAgentDirectory{"agente-1": dec("0.5")}

	assert.Nil(t, costing.ResolveCommissionRate("", dir), "sin agente seleccionado")
	assert.Nil(t, costing.ResolveCommissionRate("desconocido", dir))
	assert.Nil(t, costing.ResolveCommissionRate("agente-1", nil))

	rate := costing.ResolveCommissionRate("agente-1", dir)
	require.NotNil(t, rate)
	assert.True(t, rate.Equal(dec("0.5")))
}

func TestCommissionAmount(t *testing.T) {
	dir := costing.StaticAgentDirectory{"agente-1": dec("0.5")}

	assert.True(t, costing.CommissionAmount(dec("500"), "agente-1", dir).Equal(dec("250")))
	assert.True(t, costing.CommissionAmount(dec("500"), "", dir).IsZero(), "sin agente la comisión es 0")
	assert.True(t, costing.CommissionAmount(dec("500"), "otro", dir).IsZero())
}

func TestComputeNet_ConvencionDeSigno(t *testing.T) {
	costs := []decimal.Decimal{dec("100"), dec("50")}

	assert.True(t, costing.ComputeNet(dec("1000"), costs, true).Equal(dec("-1150")))
	assert.True(t, costing.ComputeNet(dec("1000"), costs, false).Equal(dec("850")))
	assert.True(t, costing.ComputeNet(dec("1000"), nil, false).Equal(dec("1000")))
}
