package allocation_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/jhoicas/Reciclaje-api/internal/domain/allocation"
	"github.com/jhoicas/Reciclaje-api/internal/domain/money"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func amounts(p allocation.Pool, c allocation.Category) []string {
	var out []string
	for _, a := range p.Members(c) {
		out = append(out, a.Amount.StringFixed(2))
	}
	return out
}

func addAll(t *testing.T, p allocation.Pool, c allocation.Category, staff ...string) allocation.Pool {
	t.Helper()
	for _, s := range staff {
		var err error
		p, _, err = p.AddMember(s, c)
		require.NoError(t, err)
	}
	return p
}

func TestAddMember_RepartoIgual(t *testing.T) {
	p := allocation.NewPool().Retarget(allocation.CategoryLabor, dec("1000"))

	p, first, err := p.AddMember("staff-1", allocation.CategoryLabor)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", first.Amount.StringFixed(2))

	p, second, err := p.AddMember("staff-2", allocation.CategoryLabor)
	require.NoError(t, err)
	assert.Equal(t, "500.00", second.Amount.StringFixed(2))
	assert.Equal(t, []string{"500.00", "500.00"}, amounts(p, allocation.CategoryLabor))
}

func TestAddMember_Duplicado(t *testing.T) {
	p := addAll(t, allocation.NewPool(), allocation.CategoryLabor, "staff-1")

	_, _, err := p.AddMember("staff-1", allocation.CategoryLabor)
	assert.ErrorIs(t, err, allocation.ErrDuplicateMember)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El mismo miembro puede estar en otra categoría.
	_, _, err = p.AddMember("staff-1", allocation.CategoryBailing)
	assert.NoError(t, err)
}

func TestAddMember_EntradasInvalidas(t *testing.T) {
	_, _, err := allocation.NewPool().AddMember("  ", allocation.CategoryLabor)
	assert.ErrorIs(t, err, domain.ErrMissingRequiredSelection)

	_, _, err = allocation.NewPool().AddMember("staff-1", allocation.Category("transporte"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddMember_SobrescribeMontosManuales(t *testing.T) {
	p := allocation.NewPool().Retarget(allocation.CategoryLabor, dec("900"))
	p = addAll(t, p, allocation.CategoryLabor, "staff-1", "staff-2")
	first := p.Members(allocation.CategoryLabor)[0]

	p, err := p.UpdateMemberAmount(first.ID, dec("800"))
	require.NoError(t, err)
	p = addAll(t, p, allocation.CategoryLabor, "staff-3")

	assert.Equal(t, []string{"300.00", "300.00", "300.00"}, amounts(p, allocation.CategoryLabor))
}

func TestOperaciones_NoMutanElOriginal(t *testing.T) {
	original := allocation.NewPool().Retarget(allocation.CategoryLabor, dec("100"))
	original = addAll(t, original, allocation.CategoryLabor, "staff-1")

	_ = original.Retarget(allocation.CategoryLabor, dec("500"))
	_, _, _ = original.AddMember("staff-2", allocation.CategoryLabor)

	assert.Equal(t, "100.00", original.Target(allocation.CategoryLabor).StringFixed(2))
	assert.Equal(t, []string{"100.00"}, amounts(original, allocation.CategoryLabor))
}

// Con n miembros y total T, la suma queda dentro de la tolerancia de T.
func TestRepartoIgual_SumaDentroDeTolerancia(t *testing.T) {
	targets := []string{"0", "0.01", "0.05", "1", "100", "333.33", "1000", "999.99", "12345.67"}
	for _, target := range targets {
		for n := 1; n <= 9; n++ {
			p := allocation.NewPool().Retarget(allocation.CategorySegregation, dec(target))
			for i := 0; i < n; i++ {
				var err error
				p, _, err = p.AddMember(string(rune('a'+i)), allocation.CategorySegregation)
				require.NoError(t, err)
			}
			sum := p.Sum(allocation.CategorySegregation)
			assert.True(t, money.WithinTolerance(sum, dec(target)), "T=%s n=%d suma=%s", target, n, sum)
			for _, a := range p.Members(allocation.CategorySegregation) {
				assert.False(t, a.Amount.IsNegative())
			}
			assert.NoError(t, p.Validate())
		}
	}
}

func TestRepartoIgual_CentavosSobrantes(t *testing.T) {
	p := allocation.NewPool().Retarget(allocation.CategoryLoading, dec("100"))
	p = addAll(t, p, allocation.CategoryLoading, "a", "b", "c")

	assert.Equal(t, []string{"33.34", "33.33", "33.33"}, amounts(p, allocation.CategoryLoading))
	assert.True(t, p.Sum(allocation.CategoryLoading).Equal(dec("100")))
}

func TestRemoveMember_Redistribuye(t *testing.T) {
	p := allocation.NewPool().Retarget(allocation.CategoryLabor, dec("900"))
	p = addAll(t, p, allocation.CategoryLabor, "a", "b", "c")
	removed := p.Members(allocation.CategoryLabor)[1]

	p, err := p.RemoveMember(removed.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"450.00", "450.00"}, amounts(p, allocation.CategoryLabor))
	for _, a := range p.Members(allocation.CategoryLabor) {
		assert.NotEqual(t, removed.ID, a.ID)
	}
}

func TestRemoveMember_UltimoDejaTotalSinMiembros(t *testing.T) {
	p := allocation.NewPool().Retarget(allocation.CategoryLabor, dec("50"))
	p, a, err := p.AddMember("a", allocation.CategoryLabor)
	require.NoError(t, err)

	p, err = p.RemoveMember(a.ID)
	require.NoError(t, err)

	assert.Empty(t, p.Members(allocation.CategoryLabor))
	assert.Equal(t, "50.00", p.Target(allocation.CategoryLabor).StringFixed(2))

	err = p.Validate()
	require.Error(t, err)
	var missing *domain.MissingRequiredSelectionError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "staff.labor", missing.Field)
}

func TestRemoveMember_Desconocido(t *testing.T) {
	_, err := allocation.NewPool().RemoveMember("no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateMemberAmount_SinReequilibrio(t *testing.T) {
	p := allocation.NewPool().Retarget(allocation.CategoryLabor, dec("1000"))
	p = addAll(t, p, allocation.CategoryLabor, "a", "b")
	first := p.Members(allocation.CategoryLabor)[0]

	p, err := p.UpdateMemberAmount(first.ID, dec("700"))
	require.NoError(t, err)
	assert.Equal(t, []string{"700.00", "500.00"}, amounts(p, allocation.CategoryLabor))

	err = p.Validate()
	var mismatch *domain.LaborAllocationMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "labor", mismatch.Category)
	assert.True(t, mismatch.Target.Equal(dec("1000")))
	assert.True(t, mismatch.Actual.Equal(dec("1200")))

	second := p.Members(allocation.CategoryLabor)[1]
	p, err = p.UpdateMemberAmount(second.ID, dec("300"))
	require.NoError(t, err)
	assert.NoError(t, p.Validate(), "reparto desigual que cuadra es válido")
}

func TestUpdateMemberAmount_Invalido(t *testing.T) {
	p := addAll(t, allocation.NewPool(), allocation.CategoryLabor, "a")
	id := p.Members(allocation.CategoryLabor)[0].ID

	_, err := p.UpdateMemberAmount(id, dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidNumericInput)

	_, err = p.UpdateMemberAmount("otro", dec("1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRetarget_DescartaManualesYEsIdempotente(t *testing.T) {
	p := allocation.NewPool().Retarget(allocation.CategoryLabor, dec("1000"))
	p = addAll(t, p, allocation.CategoryLabor, "a", "b", "c")
	p, err := p.UpdateMemberAmount(p.Members(allocation.CategoryLabor)[0].ID, dec("10"))
	require.NoError(t, err)

	once := p.Retarget(allocation.CategoryLabor, dec("200"))
	twice := once.Retarget(allocation.CategoryLabor, dec("200"))

	assert.Equal(t, []string{"66.67", "66.67", "66.66"}, amounts(once, allocation.CategoryLabor))
	assert.Equal(t, amounts(once, allocation.CategoryLabor), amounts(twice, allocation.CategoryLabor))
}

func TestRetarget_NoAfectaOtrasCategorias(t *testing.T) {
	p := allocation.NewPool().
		Retarget(allocation.CategorySegregation, dec("300")).
		Retarget(allocation.CategoryBailing, dec("90"))
	p = addAll(t, p, allocation.CategorySegregation, "a", "b")
	p = addAll(t, p, allocation.CategoryBailing, "a")

	p = p.Retarget(allocation.CategorySegregation, dec("100"))

	assert.Equal(t, []string{"50.00", "50.00"}, amounts(p, allocation.CategorySegregation))
	assert.Equal(t, []string{"90.00"}, amounts(p, allocation.CategoryBailing))
}

func TestValidate_CategoriaVaciaConTotalCeroEsValida(t *testing.T) {
	p := allocation.NewPool().Retarget(allocation.CategoryLabor, decimal.Zero)
	assert.NoError(t, p.Validate())
}

func TestValidate_ToleranciaDeUnCentavo(t *testing.T) {
	targets := map[allocation.Category]decimal.Decimal{allocation.CategoryLabor: dec("100")}
	ok := allocation.FromAllocations(targets, []allocation.Allocation{
		{ID: "1", StaffID: "a", Category: allocation.CategoryLabor, Amount: dec("33.33")},
		{ID: "2", StaffID: "b", Category: allocation.CategoryLabor, Amount: dec("33.33")},
		{ID: "3", StaffID: "c", Category: allocation.CategoryLabor, Amount: dec("33.33")},
	})
	assert.NoError(t, ok.Validate())

	off := allocation.FromAllocations(targets, []allocation.Allocation{
		{ID: "1", StaffID: "a", Category: allocation.CategoryLabor, Amount: dec("99.98")},
	})
	assert.ErrorIs(t, off.Validate(), domain.ErrLaborAllocationMismatch)
}

func TestParseCategory(t *testing.T) {
	c, err := allocation.ParseCategory(" Labor ")
	require.NoError(t, err)
	assert.Equal(t, allocation.CategoryLabor, c)

	_, err = allocation.ParseCategory("commission")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
