package entry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reciclaje-api/internal/application/dto"
	"github.com/jhoicas/Reciclaje-api/internal/application/entry"
	"github.com/jhoicas/Reciclaje-api/internal/application/inventory"
	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
	"github.com/jhoicas/Reciclaje-api/internal/infrastructure/memory"
)

const company = "empresa-1"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

func setup(t *testing.T) (*entry.UseCase, *memory.Store) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	require.NoError(t, store.Locations().Create(ctx, &entity.Location{ID: "patio-1", CompanyID: company, Name: "Patio 1"}))
	require.NoError(t, store.Materials().Create(ctx, &entity.Material{ID: "mat-carton", CompanyID: company, Code: "CART", Name: "Cartón", UnitMeasure: "kg"}))
	require.NoError(t, store.Parties().Create(ctx, &entity.Party{ID: "agente-1", CompanyID: company, Name: "Agente", Role: entity.PartyRoleAgent, CommissionRate: ptr(dec("0.5"))}))
	require.NoError(t, store.Parties().Create(ctx, &entity.Party{ID: "comprador-1", CompanyID: company, Name: "Comprador", Role: entity.PartyRoleBuyer}))
	require.NoError(t, store.Parties().Create(ctx, &entity.Party{ID: "receptor-1", CompanyID: company, Name: "Receptor", Role: entity.PartyRoleRecipient}))
	for _, s := range []entity.Staff{
		{ID: "staff-1", CompanyID: company, Name: "Ana", Status: entity.StaffStatusActive},
		{ID: "staff-2", CompanyID: company, Name: "Luis", Status: entity.StaffStatusActive},
		{ID: "staff-3", CompanyID: company, Name: "Pedro", Status: entity.StaffStatusInactive},
	} {
		s := s
		require.NoError(t, store.Staff().Create(ctx, &s))
	}

	inv := inventory.NewAdjustUseCase(store, store.Records(), store.Adjustments(), store.Locations(), store.Materials(), zerolog.Nop())
	uc := entry.NewUseCase(entry.Deps{
		TxRunner:    store,
		Entries:     store.Entries(),
		Allocations: store.Allocations(),
		Locations:   store.Locations(),
		Materials:   store.Materials(),
		Parties:     store.Parties(),
		Staff:       store.Staff(),
		Inventory:   inv,
		Log:         zerolog.Nop(),
	})
	return uc, store
}

func inwardRequest() dto.EntryRequest {
	return dto.EntryRequest{
		Kind:       "INWARD",
		Quantity:   "500",
		Rate:       "10",
		LaborRate:  "2",
		MaterialID: "mat-carton",
		LocationID: "patio-1",
		EntryDate:  ptr(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)),
		Allocations: []dto.AllocationRequest{
			{StaffID: "staff-1", Category: "labor"},
			{StaffID: "staff-2", Category: "labor"},
		},
	}
}

func stock(t *testing.T, store *memory.Store) decimal.Decimal {
	t.Helper()
	rec, err := store.Records().Get(context.Background(), company, "patio-1", "mat-carton")
	require.NoError(t, err)
	return rec.Quantity
}

func TestPreview_MontosYRepartoIgualitario(t *testing.T) {
	uc, _ := setup(t)
	req := inwardRequest()
	req.AgentID = "agente-1"

	out, err := uc.Preview(context.Background(), company, req)
	require.NoError(t, err)

	assert.True(t, out.Valid, "%v", out.Errors)
	assert.Equal(t, "5000.00", out.Amounts.Total.StringFixed(2))
	assert.Equal(t, "1000.00", out.Amounts.Labor.StringFixed(2))
	assert.Equal(t, "250.00", out.Amounts.Commission.StringFixed(2))
	assert.Equal(t, "-6250.00", out.Amounts.Net.StringFixed(2))
	assert.Equal(t, "1000.00", out.Targets["labor"].StringFixed(2))
	require.Len(t, out.Allocations, 2)
	assert.Equal(t, "500.00", out.Allocations[0].Amount.StringFixed(2))
	assert.Equal(t, "500.00", out.Allocations[1].Amount.StringFixed(2))
}

func TestPreview_EntradaInvalidaNoFalla(t *testing.T) {
	uc, _ := setup(t)
	req := inwardRequest()
	req.Quantity = "abc"

	out, err := uc.Preview(context.Background(), company, req)
	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.True(t, out.Amounts.Total.IsZero())

	var fields []string
	for _, fe := range out.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "quantity")
}

func TestPreview_MontoManualQueNoCuadra(t *testing.T) {
	uc, _ := setup(t)
	req := inwardRequest()
	req.Allocations[0].Amount = ptr(dec("700"))

	out, err := uc.Preview(context.Background(), company, req)
	require.NoError(t, err)
	assert.False(t, out.Valid)
	require.Len(t, out.Errors, 1)
	assert.Equal(t, dto.CodeAllocationMismatch, out.Errors[0].Code)
	assert.Equal(t, "allocations.labor", out.Errors[0].Field)
}

func TestSubmit_EntradaGuardaAsignacionesYSumaStock(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	out, err := uc.Submit(ctx, company, "user-1", inwardRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Contains(t, out.VoucherNo, "INW-20240315-")
	assert.Equal(t, "-6000.00", out.Amounts.Net.StringFixed(2))
	require.Len(t, out.Allocations, 2)

	saved, err := uc.Get(ctx, company, out.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Len(t, saved.Allocations, 2)
	assert.Equal(t, "500.00", saved.Allocations[0].Amount.StringFixed(2))

	assert.Equal(t, "500", stock(t, store).String())
	adjs, err := store.Adjustments().List(ctx, company, repository.AdjustmentFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, adjs, 1)
	assert.Equal(t, "ADD", adjs[0].AdjustmentType)
	assert.Equal(t, out.ID, adjs[0].EntryID)
}

func TestSubmit_SalidaSinStockSeRevierte(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Submit(ctx, company, "user-1", dto.EntryRequest{
		Kind:        "REJECTED_OUTWARD",
		Quantity:    "50",
		Rate:        "1",
		LoadingRate: "0",
		PartyID:     "receptor-1",
		MaterialID:  "mat-carton",
		LocationID:  "patio-1",
	})
	var insufficient *domain.InsufficientInventoryError
	require.True(t, errors.As(err, &insufficient), "%v", err)
	assert.True(t, insufficient.Current.IsZero())

	list, err := uc.List(ctx, company, repository.EntryFilter{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items, "la entrada no debe quedar guardada")
}

func TestSubmit_SalidaSegregadaDescuentaStock(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	_, err := uc.Submit(ctx, company, "user-1", inwardRequest())
	require.NoError(t, err)

	out, err := uc.Submit(ctx, company, "user-1", dto.EntryRequest{
		Kind:            "SEGREGATED_OUTWARD",
		Quantity:        "200",
		Rate:            "15",
		SegregationRate: "1.5",
		PartyID:         "comprador-1",
		MaterialID:      "mat-carton",
		LocationID:      "patio-1",
		Allocations:     []dto.AllocationRequest{{StaffID: "staff-1", Category: "segregation"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "2700.00", out.Amounts.Net.StringFixed(2))
	assert.Equal(t, "300", stock(t, store).String())
}

func TestSubmit_ReferenciasInexistentes(t *testing.T) {
	uc, _ := setup(t)
	req := inwardRequest()
	req.MaterialID = "mat-x"
	req.Allocations[1].StaffID = "staff-3" // inactivo

	_, err := uc.Submit(context.Background(), company, "user-1", req)
	require.Error(t, err)

	fields := map[string]bool{}
	for _, fe := range dto.FieldErrors(err) {
		fields[fe.Field] = true
	}
	assert.True(t, fields["material_id"])
	assert.True(t, fields["allocations.staff_id"])
}

func TestSubmit_CompradorConRolIncorrecto(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.Submit(context.Background(), company, "user-1", dto.EntryRequest{
		Kind:       "SEGREGATED_OUTWARD",
		Quantity:   "1",
		Rate:       "1",
		PartyID:    "receptor-1",
		MaterialID: "mat-carton",
		LocationID: "patio-1",
	})
	var unknown *domain.UnknownReferenceError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "buyer_id", unknown.Field)
}

func TestSubmit_ComprobanteDuplicado(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	req := inwardRequest()
	req.VoucherNo = "V-100"

	_, err := uc.Submit(ctx, company, "user-1", req)
	require.NoError(t, err)
	_, err = uc.Submit(ctx, company, "user-1", req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSubmit_PersonalRepetido(t *testing.T) {
	uc, _ := setup(t)
	req := inwardRequest()
	req.Allocations[1].StaffID = "staff-1"

	_, err := uc.Submit(context.Background(), company, "user-1", req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestDelete_RevierteStock(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	out, err := uc.Submit(ctx, company, "user-1", inwardRequest())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, company, "user-1", out.ID))

	got, err := uc.Get(ctx, company, out.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.True(t, stock(t, store).IsZero())
	allocs, err := store.Allocations().ListByEntry(ctx, out.ID)
	require.NoError(t, err)
	assert.Empty(t, allocs)

	assert.ErrorIs(t, uc.Delete(ctx, company, "user-1", out.ID), domain.ErrNotFound)
}

func TestList_FiltraPorTipo(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	_, err := uc.Submit(ctx, company, "user-1", inwardRequest())
	require.NoError(t, err)

	list, err := uc.List(ctx, company, repository.EntryFilter{Kind: "inward"}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 20, list.Page.Limit)

	list, err = uc.List(ctx, company, repository.EntryFilter{Kind: "REJECTED_OUTWARD"}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	_, err = uc.List(ctx, company, repository.EntryFilter{Kind: "otro"}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// materialsDown simula una caída de la base de datos al consultar materiales.
type materialsDown struct {
	repository.MaterialRepository
}

func (materialsDown) GetByID(context.Context, string, string) (*entity.Material, error) {
	return nil, errors.New("connection refused")
}

func TestSubmit_FalloDelRepositorioNoEsValidacion(t *testing.T) {
	uc, store := setup(t)
	uc.Materials = materialsDown{store.Materials()}

	_, err := uc.Submit(context.Background(), company, "user-1", inwardRequest())
	require.Error(t, err)
	var verrs domain.ValidationErrors
	assert.False(t, errors.As(err, &verrs), "un fallo de infraestructura no es un error de validación")
	assert.Contains(t, err.Error(), "connection refused")
	assert.True(t, stock(t, store).IsZero())
}

func TestSubmit_RechazaDecimalesQueNoSeGuardan(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	req := inwardRequest()
	req.Quantity = "1000"
	req.Rate = "0.00004"
	req.LaborRate = "0.00004"
	req.Allocations = nil
	_, err := uc.Submit(ctx, company, "user-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidNumericInput)

	req = inwardRequest()
	req.Quantity = "0.00001"
	_, err = uc.Submit(ctx, company, "user-1", req)
	assert.ErrorIs(t, err, domain.ErrInvalidNumericInput)

	assert.True(t, stock(t, store).IsZero())
}
