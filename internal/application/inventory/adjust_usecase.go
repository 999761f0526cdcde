package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Reciclaje-api/internal/application/dto"
	"github.com/jhoicas/Reciclaje-api/internal/application/ports"
	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Reciclaje-api/internal/domain/inventory"
	"github.com/jhoicas/Reciclaje-api/internal/domain/money"
	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// AdjustUseCase aplica ajustes de inventario de forma transaccional (COUNT, ADD, REMOVE, LOSS)
// con bloqueo de fila (SELECT FOR UPDATE) y registro de auditoría en el mismo Commit.
type AdjustUseCase struct {
	txRunner     ports.TxRunner
	records      repository.InventoryRecordRepository
	adjustments  repository.InventoryAdjustmentRepository
	locationRepo repository.LocationRepository
	materialRepo repository.MaterialRepository
	log          zerolog.Logger
}

// NewAdjustUseCase construye el caso de uso.
func NewAdjustUseCase(
	txRunner ports.TxRunner,
	records repository.InventoryRecordRepository,
	adjustments repository.InventoryAdjustmentRepository,
	locationRepo repository.LocationRepository,
	materialRepo repository.MaterialRepository,
	log zerolog.Logger,
) *AdjustUseCase {
	return &AdjustUseCase{
		txRunner:     txRunner,
		records:      records,
		adjustments:  adjustments,
		locationRepo: locationRepo,
		materialRepo: materialRepo,
		log:          log,
	}
}

// AdjustInput ajuste ya interpretado, listo para aplicarse dentro de una transacción.
type AdjustInput struct {
	CompanyID  string
	UserID     string
	LocationID string
	MaterialID string
	Type       domaininv.AdjustmentType
	Quantity   decimal.Decimal
	Reason     string
	Notes      string
	EntryID    string
	Date       time.Time
}

// Adjust valida la petición, comprueba ubicación y material y aplica el ajuste en una transacción.
func (uc *AdjustUseCase) Adjust(ctx context.Context, companyID, userID string, in dto.AdjustInventoryRequest) (*dto.AdjustmentResponse, error) {
	var errs domain.ValidationErrors
	typ, err := domaininv.ParseAdjustmentType(in.AdjustmentType)
	if err != nil {
		return nil, err
	}
	qty, err := money.ParseStrict("quantity", in.Quantity.String(), typ != domaininv.AdjustmentCount)
	if err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(in.Reason) == "" {
		errs = append(errs, &domain.MissingRequiredSelectionError{Field: "reason"})
	}
	if strings.TrimSpace(in.LocationID) == "" {
		errs = append(errs, &domain.MissingRequiredSelectionError{Field: "location_id"})
	}
	if strings.TrimSpace(in.MaterialID) == "" {
		errs = append(errs, &domain.MissingRequiredSelectionError{Field: "material_id"})
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	loc, err := uc.locationRepo.GetByID(ctx, companyID, in.LocationID)
	if err != nil {
		return nil, err
	}
	mat, err := uc.materialRepo.GetByID(ctx, companyID, in.MaterialID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		errs = append(errs, &domain.UnknownReferenceError{Field: "location_id", ID: in.LocationID})
	}
	if mat == nil {
		errs = append(errs, &domain.UnknownReferenceError{Field: "material_id", ID: in.MaterialID})
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	date := time.Now()
	if in.AdjustmentDate != nil && !in.AdjustmentDate.IsZero() {
		date = *in.AdjustmentDate
	}
	input := AdjustInput{
		CompanyID:  companyID,
		UserID:     userID,
		LocationID: in.LocationID,
		MaterialID: in.MaterialID,
		Type:       typ,
		Quantity:   qty,
		Reason:     strings.TrimSpace(in.Reason),
		Notes:      strings.TrimSpace(in.Notes),
		Date:       date,
	}

	var adj *entity.InventoryAdjustment
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		var err error
		adj, err = uc.ApplyInTx(ctx, repos, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("location_id", adj.LocationID).
		Str("material_id", adj.MaterialID).
		Str("type", adj.AdjustmentType).
		Str("previous_qty", adj.PreviousQty.String()).
		Str("new_qty", adj.NewQty.String()).
		Msg("ajuste de inventario aplicado")
	return toAdjustmentResponse(adj), nil
}

// ApplyInTx bloquea el registro (lo crea en 0 si no existe), aplica el ajuste y guarda la auditoría
// usando los repositorios de la transacción del caller. Lo usa también el registro de entradas.
func (uc *AdjustUseCase) ApplyInTx(ctx context.Context, repos ports.TxRepos, input AdjustInput) (*entity.InventoryAdjustment, error) {
	rec, err := repos.Records.GetForUpdate(ctx, input.CompanyID, input.LocationID, input.MaterialID)
	if err != nil {
		return nil, err
	}
	previous := rec.Quantity
	next, err := domaininv.Apply(previous, input.Type, input.Quantity)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	rec.Quantity = next
	rec.UpdatedAt = now
	if err := repos.Records.Upsert(ctx, rec); err != nil {
		return nil, err
	}
	adj := &entity.InventoryAdjustment{
		ID:             uuid.New().String(),
		CompanyID:      input.CompanyID,
		LocationID:     input.LocationID,
		MaterialID:     input.MaterialID,
		AdjustmentType: string(input.Type),
		Quantity:       input.Quantity,
		PreviousQty:    previous,
		NewQty:         next,
		Reason:         input.Reason,
		Notes:          input.Notes,
		EntryID:        input.EntryID,
		AdjustmentDate: input.Date,
		CreatedAt:      now,
		CreatedBy:      input.UserID,
	}
	if err := repos.Adjustments.Create(ctx, adj); err != nil {
		return nil, err
	}
	return adj, nil
}

// ListAdjustments libro de ajustes con filtros y paginación.
func (uc *AdjustUseCase) ListAdjustments(ctx context.Context, companyID string, filter repository.AdjustmentFilter, page dto.PageRequest) (*dto.AdjustmentListResponse, error) {
	page.DefaultPage()
	list, err := uc.adjustments.List(ctx, companyID, filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AdjustmentResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAdjustmentResponse(a))
	}
	return &dto.AdjustmentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListRecords stock actual, opcionalmente de una sola ubicación.
func (uc *AdjustUseCase) ListRecords(ctx context.Context, companyID, locationID string, page dto.PageRequest) (*dto.InventoryRecordListResponse, error) {
	page.DefaultPage()
	list, err := uc.records.List(ctx, companyID, locationID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.InventoryRecordResponse, 0, len(list))
	for _, r := range list {
		items = append(items, dto.InventoryRecordResponse{
			LocationID: r.LocationID,
			MaterialID: r.MaterialID,
			Quantity:   r.Quantity,
			UpdatedAt:  r.UpdatedAt,
		})
	}
	return &dto.InventoryRecordListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toAdjustmentResponse(a *entity.InventoryAdjustment) *dto.AdjustmentResponse {
	return &dto.AdjustmentResponse{
		ID:             a.ID,
		LocationID:     a.LocationID,
		MaterialID:     a.MaterialID,
		AdjustmentType: a.AdjustmentType,
		Quantity:       a.Quantity,
		PreviousQty:    a.PreviousQty,
		NewQty:         a.NewQty,
		Reason:         a.Reason,
		Notes:          a.Notes,
		EntryID:        a.EntryID,
		AdjustmentDate: a.AdjustmentDate,
		CreatedBy:      a.CreatedBy,
	}
}
