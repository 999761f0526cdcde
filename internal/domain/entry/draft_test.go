package entry_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/jhoicas/Reciclaje-api/internal/domain/allocation"
	"github.com/jhoicas/Reciclaje-api/internal/domain/costing"
	"github.com/jhoicas/Reciclaje-api/internal/domain/entry"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var agents = costing.StaticAgentDirectory{"agente-1": dec("0.5")}

func inwardInputs() entry.Inputs {
	return entry.Inputs{
		Quantity:   "500",
		Rate:       "10",
		LaborRate:  "2",
		MaterialID: "mat-carton",
		LocationID: "patio-1",
		EntryDate:  time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
	}
}

func laborAmounts(d entry.Draft) []string {
	var out []string
	for _, a := range d.Pool.Members(allocation.CategoryLabor) {
		out = append(out, a.Amount.StringFixed(2))
	}
	return out
}

// Escenario completo de una entrada: 500 kg × 10 = 5000, mano de obra 2/kg = 1000,
// dos trabajadores reciben 500 cada uno y al quitar uno el otro recibe los 1000.
func TestEscenarioEntradaConManoDeObra(t *testing.T) {
	d := entry.Recompute(entry.NewDraft(entry.KindInward, inwardInputs()), agents)
	assert.Equal(t, "5000.00", d.Amounts.Total.StringFixed(2))
	assert.Equal(t, "1000.00", d.Amounts.Labor.StringFixed(2))

	pool, _, err := d.Pool.AddMember("staff-1", allocation.CategoryLabor)
	require.NoError(t, err)
	pool, second, err := pool.AddMember("staff-2", allocation.CategoryLabor)
	require.NoError(t, err)
	d = d.WithPool(pool)
	assert.Equal(t, []string{"500.00", "500.00"}, laborAmounts(d))

	pool, err = d.Pool.RemoveMember(second.ID)
	require.NoError(t, err)
	d = d.WithPool(pool)
	assert.Equal(t, []string{"1000.00"}, laborAmounts(d))

	fin, err := entry.Validate(d, agents)
	require.NoError(t, err)
	assert.Equal(t, "5000.00", fin.Entry.TotalAmount.StringFixed(2))
	assert.Equal(t, "1000.00", fin.Entry.LaborAmount.StringFixed(2))
	require.Len(t, fin.Allocations, 1)
	assert.Equal(t, "staff-1", fin.Allocations[0].StaffID)
	assert.Equal(t, "-6000.00", fin.Net.StringFixed(2))
}

func TestRecompute_CambioDeCantidadReajustaAsignaciones(t *testing.T) {
	d := entry.Recompute(entry.NewDraft(entry.KindInward, inwardInputs()), agents)
	pool, _, err := d.Pool.AddMember("a", allocation.CategoryLabor)
	require.NoError(t, err)
	pool, _, err = pool.AddMember("b", allocation.CategoryLabor)
	require.NoError(t, err)
	d = d.WithPool(pool)

	in := d.Inputs
	in.Quantity = "300"
	d = entry.Recompute(d.WithInputs(in), agents)

	assert.Equal(t, "3000.00", d.Amounts.Total.StringFixed(2))
	assert.Equal(t, []string{"300.00", "300.00"}, laborAmounts(d))
}

func TestRecompute_SinCambioDeTotalConservaMontosManuales(t *testing.T) {
	d := entry.Recompute(entry.NewDraft(entry.KindInward, inwardInputs()), agents)
	pool, a, err := d.Pool.AddMember("a", allocation.CategoryLabor)
	require.NoError(t, err)
	pool, _, err = pool.AddMember("b", allocation.CategoryLabor)
	require.NoError(t, err)
	pool, err = pool.UpdateMemberAmount(a.ID, dec("600"))
	require.NoError(t, err)
	d = d.WithPool(pool)

	in := d.Inputs
	in.Notes = "camión 2"
	d = entry.Recompute(d.WithInputs(in), agents)

	assert.Equal(t, []string{"600.00", "500.00"}, laborAmounts(d))
}

func TestRecompute_EntradaInvalidaCuentaComoCero(t *testing.T) {
	in := inwardInputs()
	in.Quantity = "abc"
	d := entry.Recompute(entry.NewDraft(entry.KindInward, in), agents)

	assert.True(t, d.Amounts.Total.IsZero())
	assert.True(t, d.Amounts.Labor.IsZero())
}

func TestRecompute_Comision(t *testing.T) {
	in := inwardInputs()
	in.AgentID = "agente-1"
	d := entry.Recompute(entry.NewDraft(entry.KindInward, in), agents)
	assert.Equal(t, "250.00", d.Amounts.Commission.StringFixed(2))
	assert.Equal(t, "-6250.00", d.Net().StringFixed(2))

	in.AgentID = ""
	d = entry.Recompute(d.WithInputs(in), agents)
	assert.True(t, d.Amounts.Commission.IsZero(), "sin agente la comisión vuelve a 0")
}

func TestRecompute_SalidaSegregada(t *testing.T) {
	in := entry.Inputs{
		Quantity:        "200",
		Rate:            "15",
		SegregationRate: "1.5",
		BailingRate:     "0.5",
		LoadingRate:     "0.25",
		LaborRate:       "9", // no aplica a salidas
		PartyID:         "comprador-1",
		MaterialID:      "mat-pet",
		LocationID:      "patio-1",
	}
	d := entry.Recompute(entry.NewDraft(entry.KindSegregatedOutward, in), agents)

	assert.Equal(t, "3000.00", d.Amounts.Total.StringFixed(2))
	assert.Equal(t, "300.00", d.Amounts.Segregation.StringFixed(2))
	assert.Equal(t, "100.00", d.Amounts.Bailing.StringFixed(2))
	assert.Equal(t, "50.00", d.Amounts.Loading.StringFixed(2))
	assert.True(t, d.Amounts.Labor.IsZero())
	assert.Equal(t, "2550.00", d.Net().StringFixed(2))
}

func TestValidate_AcumulaErrores(t *testing.T) {
	in := entry.Inputs{Quantity: "", Rate: "-3", SegregationRate: "x"}
	d := entry.Recompute(entry.NewDraft(entry.KindSegregatedOutward, in), agents)

	_, err := entry.Validate(d, agents)
	require.Error(t, err)

	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := map[string]bool{}
	for _, e := range verrs {
		var num *domain.InvalidNumericInputError
		var missing *domain.MissingRequiredSelectionError
		switch {
		case errors.As(e, &num):
			fields[num.Field] = true
		case errors.As(e, &missing):
			fields[missing.Field] = true
		}
	}
	for _, f := range []string{"quantity", "rate", "segregation_rate", "material_id", "location_id", "buyer_id"} {
		assert.True(t, fields[f], "falta error para %s", f)
	}
}

func TestValidate_CategoriaConTotalSinPersonal(t *testing.T) {
	d := entry.Recompute(entry.NewDraft(entry.KindInward, inwardInputs()), agents)

	_, err := entry.Validate(d, agents)
	assert.ErrorIs(t, err, domain.ErrMissingRequiredSelection)
}

func TestValidate_SinManoDeObraNoExigePersonal(t *testing.T) {
	in := inwardInputs()
	in.LaborRate = ""
	d := entry.Recompute(entry.NewDraft(entry.KindInward, in), agents)

	fin, err := entry.Validate(d, agents)
	require.NoError(t, err)
	assert.Empty(t, fin.Allocations)
	assert.True(t, strings.HasPrefix(fin.Entry.VoucherNo, "INW-20240315-"), fin.Entry.VoucherNo)
}

func TestValidate_RepartoManualQueNoCuadra(t *testing.T) {
	d := entry.Recompute(entry.NewDraft(entry.KindInward, inwardInputs()), agents)
	pool, a, err := d.Pool.AddMember("a", allocation.CategoryLabor)
	require.NoError(t, err)
	pool, err = pool.UpdateMemberAmount(a.ID, dec("900"))
	require.NoError(t, err)

	_, err = entry.Validate(d.WithPool(pool), agents)
	var mismatch *domain.LaborAllocationMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "labor", mismatch.Category)
	assert.Equal(t, "1000.00", mismatch.Target.StringFixed(2))
	assert.Equal(t, "900.00", mismatch.Actual.StringFixed(2))
}

func TestValidate_CategoriaAjenaAlTipo(t *testing.T) {
	d := entry.Recompute(entry.NewDraft(entry.KindRejectedOutward, entry.Inputs{
		Quantity: "10", Rate: "1", PartyID: "r-1", MaterialID: "m", LocationID: "l",
	}), agents)
	pool, _, err := d.Pool.AddMember("a", allocation.CategoryLabor)
	require.NoError(t, err)

	_, err = entry.Validate(d.WithPool(pool), agents)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidate_ConservaComprobanteIngresado(t *testing.T) {
	in := inwardInputs()
	in.LaborRate = "0"
	in.VoucherNo = " V-001 "
	fin, err := entry.Validate(entry.NewDraft(entry.KindInward, in), agents)
	require.NoError(t, err)
	assert.Equal(t, "V-001", fin.Entry.VoucherNo)
}

func TestNetResult_DesdeMontosGuardados(t *testing.T) {
	in := inwardInputs()
	in.LaborRate = "0"
	fin, err := entry.Validate(entry.NewDraft(entry.KindInward, in), agents)
	require.NoError(t, err)

	assert.True(t, entry.NetResult(&fin.Entry).Equal(fin.Net))
}

func TestParseKind(t *testing.T) {
	k, err := entry.ParseKind("segregated_outward")
	require.NoError(t, err)
	assert.Equal(t, entry.KindSegregatedOutward, k)
	assert.False(t, k.IsExpense())

	_, err = entry.ParseKind("TRANSFER")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidate_TarifaConMasDecimalesDeLosQueSeGuardan(t *testing.T) {
	in := inwardInputs()
	in.Quantity = "1000"
	in.Rate = "0.00004"
	in.LaborRate = "0.00004"
	d := entry.Recompute(entry.NewDraft(entry.KindInward, in), agents)
	assert.True(t, d.Amounts.Total.IsZero(), "el recálculo usa la tarifa como se guardaría")

	_, err := entry.Validate(d, agents)
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs), "%v", err)
	fields := map[string]bool{}
	for _, e := range verrs {
		var num *domain.InvalidNumericInputError
		if errors.As(e, &num) {
			fields[num.Field] = true
		}
	}
	assert.True(t, fields["rate"])
	assert.True(t, fields["labor_rate"])
}

func TestValidate_CantidadQueSeRedondeariaACero(t *testing.T) {
	in := inwardInputs()
	in.Quantity = "0.00001"
	in.LaborRate = ""
	d := entry.Recompute(entry.NewDraft(entry.KindInward, in), agents)

	_, err := entry.Validate(d, agents)
	var num *domain.InvalidNumericInputError
	require.True(t, errors.As(err, &num), "%v", err)
	assert.Equal(t, "quantity", num.Field)
}

func TestValidate_ErroresDeEntradaIncluyenElReparto(t *testing.T) {
	d := entry.Recompute(entry.NewDraft(entry.KindInward, inwardInputs()), agents)
	pool, a, err := d.Pool.AddMember("a", allocation.CategoryLabor)
	require.NoError(t, err)
	pool, err = pool.UpdateMemberAmount(a.ID, dec("900"))
	require.NoError(t, err)

	in := inwardInputs()
	in.MaterialID = ""
	d = d.WithPool(pool).WithInputs(in)

	_, err = entry.Validate(d, agents)
	assert.ErrorIs(t, err, domain.ErrMissingRequiredSelection)
	var mismatch *domain.LaborAllocationMismatchError
	require.True(t, errors.As(err, &mismatch), "el reparto que no cuadra se informa en el mismo envío")
	assert.Equal(t, "900.00", mismatch.Actual.StringFixed(2))
}
