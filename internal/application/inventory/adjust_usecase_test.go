package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reciclaje-api/internal/application/dto"
	"github.com/jhoicas/Reciclaje-api/internal/application/inventory"
	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
	"github.com/jhoicas/Reciclaje-api/internal/infrastructure/memory"
)

const company = "empresa-1"

func setup(t *testing.T) *inventory.AdjustUseCase {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Locations().Create(ctx, &entity.Location{ID: "patio-1", CompanyID: company, Name: "Patio 1"}))
	require.NoError(t, store.Materials().Create(ctx, &entity.Material{ID: "mat-pet", CompanyID: company, Code: "PET", Name: "PET", UnitMeasure: "kg"}))
	return inventory.NewAdjustUseCase(store, store.Records(), store.Adjustments(), store.Locations(), store.Materials(), zerolog.Nop())
}

func request(typ, qty string) dto.AdjustInventoryRequest {
	return dto.AdjustInventoryRequest{
		LocationID:     "patio-1",
		MaterialID:     "mat-pet",
		AdjustmentType: typ,
		Quantity:       dto.NumericInput(qty),
		Reason:         "conteo semanal",
	}
}

func TestAdjust_Secuencia(t *testing.T) {
	uc := setup(t)
	ctx := context.Background()

	steps := []struct {
		typ, qty, previous, next string
	}{
		{"COUNT", "100", "0", "100"},
		{"ADD", "25.5", "100", "125.5"},
		{"REMOVE", "20", "125.5", "105.5"},
		{"LOSS", "5.5", "105.5", "100"},
		{"COUNT", "0", "100", "0"},
	}
	for _, s := range steps {
		out, err := uc.Adjust(ctx, company, "user-1", request(s.typ, s.qty))
		require.NoError(t, err, s.typ)
		assert.Equal(t, s.previous, out.PreviousQty.String(), s.typ)
		assert.Equal(t, s.next, out.NewQty.String(), s.typ)
	}

	ledger, err := uc.ListAdjustments(ctx, company, repository.AdjustmentFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, ledger.Items, len(steps))
	assert.Equal(t, "COUNT", ledger.Items[0].AdjustmentType, "más reciente primero")

	records, err := uc.ListRecords(ctx, company, "", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, records.Items, 1)
	assert.True(t, records.Items[0].Quantity.IsZero())
}

func TestAdjust_SalidaMayorAlStock(t *testing.T) {
	uc := setup(t)
	ctx := context.Background()
	_, err := uc.Adjust(ctx, company, "user-1", request("ADD", "10"))
	require.NoError(t, err)

	_, err = uc.Adjust(ctx, company, "user-1", request("REMOVE", "15"))
	var insufficient *domain.InsufficientInventoryError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "10", insufficient.Current.String())

	ledger, err := uc.ListAdjustments(ctx, company, repository.AdjustmentFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, ledger.Items, 1, "el ajuste rechazado no deja auditoría")
}

func TestAdjust_Validaciones(t *testing.T) {
	uc := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.AdjustInventoryRequest
		want error
	}{
		{"cantidad cero en ADD", request("ADD", "0"), domain.ErrInvalidNumericInput},
		{"cantidad no numérica", request("REMOVE", "diez"), domain.ErrInvalidNumericInput},
		{"tipo desconocido", request("TRANSFER", "1"), domain.ErrInvalidInput},
		{"sin motivo", func() dto.AdjustInventoryRequest {
			r := request("ADD", "1")
			r.Reason = "  "
			return r
		}(), domain.ErrMissingRequiredSelection},
		{"material inexistente", func() dto.AdjustInventoryRequest {
			r := request("ADD", "1")
			r.MaterialID = "mat-x"
			return r
		}(), domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Adjust(ctx, company, "user-1", tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAdjust_ReferenciaDesconocidaIndicaElCampo(t *testing.T) {
	uc := setup(t)
	r := request("ADD", "1")
	r.LocationID = "patio-x"
	r.MaterialID = "mat-x"

	_, err := uc.Adjust(context.Background(), company, "user-1", r)
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs), "%v", err)
	var fields []string
	for _, e := range verrs {
		var unknown *domain.UnknownReferenceError
		require.True(t, errors.As(e, &unknown))
		fields = append(fields, unknown.Field)
	}
	assert.Equal(t, []string{"location_id", "material_id"}, fields)
}
