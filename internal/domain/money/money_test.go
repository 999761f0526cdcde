package money_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/jhoicas/Reciclaje-api/internal/domain/money"
)

func TestParseLenient(t *testing.T) {
	cases := map[string]string{
		"":      "0",
		"   ":   "0",
		"abc":   "0",
		"-5":    "0",
		"12.5":  "12.5",
		" 500 ": "500",
	}
	for in, want := range cases {
		got := money.ParseLenient(in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "entrada %q: obtenido %s", in, got)
	}
}

func TestParseStrict_RechazaNegativosYVacios(t *testing.T) {
	_, err := money.ParseStrict("quantity", "", true)
	require.Error(t, err)
	var numErr *domain.InvalidNumericInputError
	require.True(t, errors.As(err, &numErr))
	assert.Equal(t, "quantity", numErr.Field)
	assert.ErrorIs(t, err, domain.ErrInvalidNumericInput)

	_, err = money.ParseStrict("rate", "-1", false)
	assert.ErrorIs(t, err, domain.ErrInvalidNumericInput)

	_, err = money.ParseStrict("quantity", "0", true)
	assert.ErrorIs(t, err, domain.ErrInvalidNumericInput, "positive exige > 0")

	d, err := money.ParseStrict("rate", "0", false)
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}

func TestParseOptional_VacioEsCero(t *testing.T) {
	d, err := money.ParseOptional("labor_rate", "")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = money.ParseOptional("labor_rate", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidNumericInput)
}

func TestRoundMitadHaciaArriba(t *testing.T) {
	assert.Equal(t, "2.35", money.Format(decimal.RequireFromString("2.345")))
	assert.Equal(t, "2.34", money.Format(decimal.RequireFromString("2.344")))
	assert.Equal(t, "1000.00", money.Format(decimal.NewFromInt(1000)))
}

func TestWithinTolerance(t *testing.T) {
	target := decimal.NewFromInt(100)
	assert.True(t, money.WithinTolerance(decimal.RequireFromString("99.99"), target))
	assert.True(t, money.WithinTolerance(decimal.RequireFromString("100.01"), target))
	assert.False(t, money.WithinTolerance(decimal.RequireFromString("99.98"), target))
}

func TestParseStrict_MaximoCuatroDecimales(t *testing.T) {
	_, err := money.ParseStrict("rate", "0.00004", false)
	var numErr *domain.InvalidNumericInputError
	require.True(t, errors.As(err, &numErr), "%v", err)
	assert.Equal(t, "rate", numErr.Field)
	assert.NotEmpty(t, numErr.Reason)

	_, err = money.ParseStrict("quantity", "0.00001", true)
	assert.ErrorIs(t, err, domain.ErrInvalidNumericInput, "se guardaría como 0.0000")

	d, err := money.ParseStrict("quantity", "1.50000", true)
	require.NoError(t, err, "ceros a la derecha no cuentan")
	assert.True(t, d.Equal(decimal.RequireFromString("1.5")))

	d, err = money.ParseStrict("rate", "0.0001", false)
	require.NoError(t, err)
	assert.Equal(t, "0.0001", d.String())
}

func TestParseLenient_RedondeaACuatroDecimales(t *testing.T) {
	assert.True(t, money.ParseLenient("0.00004").IsZero())
	assert.Equal(t, "2.1235", money.ParseLenient("2.12345").String())
}
