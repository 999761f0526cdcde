package entry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Reciclaje-api/internal/application/dto"
	"github.com/jhoicas/Reciclaje-api/internal/application/inventory"
	"github.com/jhoicas/Reciclaje-api/internal/application/ports"
	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/jhoicas/Reciclaje-api/internal/domain/allocation"
	"github.com/jhoicas/Reciclaje-api/internal/domain/costing"
	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
	domainentry "github.com/jhoicas/Reciclaje-api/internal/domain/entry"
	domaininv "github.com/jhoicas/Reciclaje-api/internal/domain/inventory"
	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// InventoryApplier aplica un ajuste de inventario con los repositorios de una transacción abierta.
type InventoryApplier interface {
	ApplyInTx(ctx context.Context, repos ports.TxRepos, input inventory.AdjustInput) (*entity.InventoryAdjustment, error)
}

// Deps dependencias del caso de uso de entradas.
type Deps struct {
	TxRunner    ports.TxRunner
	Entries     repository.EntryRepository
	Allocations repository.AllocationRepository
	Locations   repository.LocationRepository
	Materials   repository.MaterialRepository
	Parties     repository.PartyRepository
	Staff       repository.StaffRepository
	Inventory   InventoryApplier
	Log         zerolog.Logger
}

// UseCase registra entradas y salidas de material: vista previa, envío, consulta y borrado.
type UseCase struct {
	Deps
}

// NewUseCase construye el caso de uso.
func NewUseCase(deps Deps) *UseCase {
	return &UseCase{Deps: deps}
}

// Preview recálculo en vivo del formulario. Nunca falla por valores del usuario:
// lo inválido cuenta como 0 y los errores de validación vuelven en la respuesta con Valid=false.
func (uc *UseCase) Preview(ctx context.Context, companyID string, req dto.EntryRequest) (*dto.PreviewResponse, error) {
	kind, err := domainentry.ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}
	dir, err := uc.agentDirectory(ctx, companyID, req.AgentID)
	if err != nil {
		return nil, err
	}
	draft, buildErrs := buildDraft(kind, req, dir)

	var problems domain.ValidationErrors
	problems = append(problems, buildErrs...)
	if _, err := domainentry.Validate(draft, dir); err != nil {
		problems = append(problems, err)
	}

	targets := make(map[string]decimal.Decimal, len(kind.Categories()))
	for _, c := range kind.Categories() {
		targets[string(c)] = draft.Pool.Target(c)
	}
	return &dto.PreviewResponse{
		Kind:        string(kind),
		Amounts:     toAmountsResponse(draft.Amounts, draft.Net()),
		Targets:     targets,
		Allocations: toPoolResponse(draft.Pool.Allocations()),
		Valid:       len(problems) == 0,
		Errors:      dto.FieldErrors(problems.OrNil()),
	}, nil
}

// Submit valida el borrador completo y guarda entrada, asignaciones y movimiento de inventario
// en una sola transacción. Las entradas suman stock en la ubicación y las salidas lo descuentan.
func (uc *UseCase) Submit(ctx context.Context, companyID, userID string, req dto.EntryRequest) (*dto.EntryResponse, error) {
	kind, err := domainentry.ParseKind(req.Kind)
	if err != nil {
		return nil, err
	}
	dir, err := uc.agentDirectory(ctx, companyID, req.AgentID)
	if err != nil {
		return nil, err
	}
	draft, buildErrs := buildDraft(kind, req, dir)
	if len(buildErrs) > 0 {
		return nil, buildErrs
	}
	fin, err := domainentry.Validate(draft, dir)
	if err != nil {
		return nil, err
	}
	unknown, err := uc.checkReferences(ctx, companyID, kind, fin)
	if err != nil {
		return nil, err
	}
	if err := unknown.OrNil(); err != nil {
		return nil, err
	}

	now := time.Now()
	e := fin.Entry
	e.ID = uuid.New().String()
	e.CompanyID = companyID
	e.CreatedAt = now
	e.UpdatedAt = now
	e.CreatedBy = userID
	allocs := fin.Allocations
	for i := range allocs {
		allocs[i].EntryID = e.ID
		allocs[i].CreatedAt = now
	}

	err = uc.TxRunner.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		if err := repos.Entries.Create(ctx, &e); err != nil {
			return err
		}
		if len(allocs) > 0 {
			if err := repos.Allocations.CreateBatch(ctx, allocs); err != nil {
				return err
			}
		}
		_, err := uc.Inventory.ApplyInTx(ctx, repos, stockMovement(&e, userID, false))
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.Log.Info().
		Str("company_id", companyID).
		Str("entry_id", e.ID).
		Str("kind", e.Kind).
		Str("voucher_no", e.VoucherNo).
		Str("net", fin.Net.StringFixed(2)).
		Int("allocations", len(allocs)).
		Msg("entrada registrada")
	return toEntryResponse(&e, allocs), nil
}

// Get obtiene una entrada con sus asignaciones. nil si no existe en la empresa.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.EntryResponse, error) {
	e, err := uc.Entries.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, nil
	}
	allocs, err := uc.Allocations.ListByEntry(ctx, e.ID)
	if err != nil {
		return nil, err
	}
	return toEntryResponse(e, allocs), nil
}

// List entradas paginadas, más recientes primero.
func (uc *UseCase) List(ctx context.Context, companyID string, filter repository.EntryFilter, page dto.PageRequest) (*dto.EntryListResponse, error) {
	page.DefaultPage()
	if filter.Kind != "" {
		kind, err := domainentry.ParseKind(filter.Kind)
		if err != nil {
			return nil, err
		}
		filter.Kind = string(kind)
	}
	list, err := uc.Entries.List(ctx, companyID, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EntryResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEntryResponse(e, nil))
	}
	return &dto.EntryListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete borra la entrada y sus asignaciones, y revierte su movimiento de inventario.
// Revertir una entrada cuyo material ya salió falla con inventario insuficiente.
func (uc *UseCase) Delete(ctx context.Context, companyID, userID, id string) error {
	err := uc.TxRunner.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		e, err := repos.Entries.GetByID(ctx, companyID, id)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.ErrNotFound
		}
		if err := repos.Allocations.DeleteByEntry(ctx, e.ID); err != nil {
			return err
		}
		if err := repos.Entries.Delete(ctx, companyID, e.ID); err != nil {
			return err
		}
		_, err = uc.Inventory.ApplyInTx(ctx, repos, stockMovement(e, userID, true))
		return err
	})
	if err != nil {
		return err
	}
	uc.Log.Info().Str("company_id", companyID).Str("entry_id", id).Msg("entrada eliminada")
	return nil
}

// agentDirectory directorio con la tarifa del agente seleccionado (vacío si no hay agente o no es agente).
func (uc *UseCase) agentDirectory(ctx context.Context, companyID, agentID string) (costing.AgentDirectory, error) {
	dir := costing.StaticAgentDirectory{}
	agentID = strings.TrimSpace(agentID)
	if agentID == "" {
		return dir, nil
	}
	p, err := uc.Parties.GetByID(ctx, companyID, agentID)
	if err != nil {
		return nil, err
	}
	if p != nil && p.Role == entity.PartyRoleAgent && p.CommissionRate != nil {
		dir[agentID] = *p.CommissionRate
	}
	return dir, nil
}

// checkReferences verifica que material, ubicación, tercero y personal existan en la empresa.
// Las referencias desconocidas se acumulan; un fallo del repositorio corta y se devuelve tal cual.
func (uc *UseCase) checkReferences(ctx context.Context, companyID string, kind domainentry.Kind, fin *domainentry.Finalized) (domain.ValidationErrors, error) {
	var errs domain.ValidationErrors
	e := fin.Entry

	m, err := uc.Materials.GetByID(ctx, companyID, e.MaterialID)
	if err != nil {
		return nil, fmt.Errorf("entry: material: %w", err)
	}
	if m == nil {
		errs = append(errs, &domain.UnknownReferenceError{Field: "material_id", ID: e.MaterialID})
	}
	l, err := uc.Locations.GetByID(ctx, companyID, e.LocationID)
	if err != nil {
		return nil, fmt.Errorf("entry: ubicación: %w", err)
	}
	if l == nil {
		errs = append(errs, &domain.UnknownReferenceError{Field: "location_id", ID: e.LocationID})
	}
	if e.AgentID != "" {
		p, err := uc.Parties.GetByID(ctx, companyID, e.AgentID)
		if err != nil {
			return nil, fmt.Errorf("entry: agente: %w", err)
		}
		if p == nil || p.Role != entity.PartyRoleAgent {
			errs = append(errs, &domain.UnknownReferenceError{Field: "agent_id", ID: e.AgentID})
		}
	}
	if role, field := partyRole(kind); role != "" {
		p, err := uc.Parties.GetByID(ctx, companyID, e.PartyID)
		if err != nil {
			return nil, fmt.Errorf("entry: tercero: %w", err)
		}
		if p == nil || p.Role != role {
			errs = append(errs, &domain.UnknownReferenceError{Field: field, ID: e.PartyID})
		}
	}

	if len(fin.Allocations) > 0 {
		ids := make([]string, 0, len(fin.Allocations))
		for _, a := range fin.Allocations {
			ids = append(ids, a.StaffID)
		}
		staff, err := uc.Staff.GetByIDs(ctx, companyID, ids)
		if err != nil {
			return nil, fmt.Errorf("entry: personal: %w", err)
		}
		for _, a := range fin.Allocations {
			if !staff[a.StaffID].IsActive() {
				errs = append(errs, &domain.UnknownReferenceError{Field: "allocations.staff_id", ID: a.StaffID})
			}
		}
	}
	return errs, nil
}

func partyRole(kind domainentry.Kind) (role, field string) {
	switch kind {
	case domainentry.KindSegregatedOutward:
		return entity.PartyRoleBuyer, "buyer_id"
	case domainentry.KindRejectedOutward:
		return entity.PartyRoleRecipient, "recipient_id"
	}
	return "", ""
}

// stockMovement ajuste de inventario que corresponde a la entrada; reverse para deshacerla.
func stockMovement(e *entity.TransactionEntry, userID string, reverse bool) inventory.AdjustInput {
	in := e.Kind == entity.EntryKindInward
	if reverse {
		in = !in
	}
	typ, reason := domaininv.AdjustmentRemove, "salida "+e.VoucherNo
	if in {
		typ, reason = domaininv.AdjustmentAdd, "entrada "+e.VoucherNo
	}
	if reverse {
		reason = "anulación " + e.VoucherNo
	}
	return inventory.AdjustInput{
		CompanyID:  e.CompanyID,
		UserID:     userID,
		LocationID: e.LocationID,
		MaterialID: e.MaterialID,
		Type:       typ,
		Quantity:   e.Quantity,
		Reason:     reason,
		EntryID:    e.ID,
		Date:       e.EntryDate,
	}
}

// buildDraft arma el borrador desde la petición: recalcula montos, agrega el personal
// (reparto igualitario) y aplica los montos manuales al final.
func buildDraft(kind domainentry.Kind, req dto.EntryRequest, dir costing.AgentDirectory) (domainentry.Draft, domain.ValidationErrors) {
	in := domainentry.Inputs{
		Quantity:        req.Quantity.String(),
		Rate:            req.Rate.String(),
		LaborRate:       req.LaborRate.String(),
		SegregationRate: req.SegregationRate.String(),
		BailingRate:     req.BailingRate.String(),
		LoadingRate:     req.LoadingRate.String(),
		AgentID:         req.AgentID,
		PartyID:         req.PartyID,
		MaterialID:      req.MaterialID,
		LocationID:      req.LocationID,
		VoucherNo:       req.VoucherNo,
		Notes:           req.Notes,
	}
	if req.EntryDate != nil {
		in.EntryDate = *req.EntryDate
	}
	d := domainentry.Recompute(domainentry.NewDraft(kind, in), dir)

	var errs domain.ValidationErrors
	type override struct {
		id     string
		amount decimal.Decimal
	}
	var overrides []override
	pool := d.Pool
	for i, a := range req.Allocations {
		cat, err := allocation.ParseCategory(a.Category)
		if err != nil {
			errs = append(errs, fmt.Errorf("allocations[%d]: %w", i, err))
			continue
		}
		next, added, err := pool.AddMember(a.StaffID, cat)
		if err != nil {
			errs = append(errs, fmt.Errorf("allocations[%d]: %w", i, err))
			continue
		}
		pool = next
		if a.Amount != nil {
			overrides = append(overrides, override{id: added.ID, amount: *a.Amount})
		}
	}
	for _, o := range overrides {
		next, err := pool.UpdateMemberAmount(o.id, o.amount)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pool = next
	}
	return d.WithPool(pool), errs
}

func toAmountsResponse(a domainentry.Amounts, net decimal.Decimal) dto.AmountsResponse {
	return dto.AmountsResponse{
		Total:          a.Total,
		Labor:          a.Labor,
		Segregation:    a.Segregation,
		Bailing:        a.Bailing,
		Loading:        a.Loading,
		CommissionRate: a.CommissionRate,
		Commission:     a.Commission,
		Net:            net,
	}
}

func toPoolResponse(list []allocation.Allocation) []dto.AllocationResponse {
	out := make([]dto.AllocationResponse, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AllocationResponse{
			ID:       a.ID,
			StaffID:  a.StaffID,
			Category: string(a.Category),
			Amount:   a.Amount,
		})
	}
	return out
}

func toEntryResponse(e *entity.TransactionEntry, allocs []entity.LaborAllocation) *dto.EntryResponse {
	if e == nil {
		return nil
	}
	amounts := domainentry.Amounts{
		Total:          e.TotalAmount,
		Labor:          e.LaborAmount,
		Segregation:    e.SegregationAmount,
		Bailing:        e.BailingAmount,
		Loading:        e.LoadingAmount,
		CommissionRate: e.CommissionRate,
		Commission:     e.CommissionAmount,
	}
	resp := &dto.EntryResponse{
		ID:              e.ID,
		Kind:            e.Kind,
		VoucherNo:       e.VoucherNo,
		EntryDate:       e.EntryDate,
		MaterialID:      e.MaterialID,
		LocationID:      e.LocationID,
		PartyID:         e.PartyID,
		AgentID:         e.AgentID,
		Quantity:        e.Quantity,
		Rate:            e.Rate,
		LaborRate:       e.LaborRate,
		SegregationRate: e.SegregationRate,
		BailingRate:     e.BailingRate,
		LoadingRate:     e.LoadingRate,
		Amounts:         toAmountsResponse(amounts, domainentry.NetResult(e)),
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
	for _, a := range allocs {
		resp.Allocations = append(resp.Allocations, dto.AllocationResponse{
			ID:       a.ID,
			StaffID:  a.StaffID,
			Category: a.Category,
			Amount:   a.Amount,
		})
	}
	return resp
}
