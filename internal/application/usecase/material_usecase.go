package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Reciclaje-api/internal/application/dto"
	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
	"github.com/jhoicas/Reciclaje-api/internal/domain/money"
	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
)

// MaterialUseCase casos de uso para el catálogo de materiales. El stock se maneja vía ajustes y entradas.
type MaterialUseCase struct {
	repo repository.MaterialRepository
}

// NewMaterialUseCase construye el caso de uso.
func NewMaterialUseCase(repo repository.MaterialRepository) *MaterialUseCase {
	return &MaterialUseCase{repo: repo}
}

// Create crea un material. El código es único por empresa.
func (uc *MaterialUseCase) Create(ctx context.Context, companyID string, in dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.DefaultRate.IsNegative() || !money.FitsQuantityScale(in.DefaultRate) {
		return nil, &domain.InvalidNumericInputError{Field: "default_rate", Value: in.DefaultRate.String()}
	}
	if in.UnitMeasure == "" {
		in.UnitMeasure = "kg"
	}
	now := time.Now()
	material := &entity.Material{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Code:        strings.ToUpper(strings.TrimSpace(in.Code)),
		Name:        strings.TrimSpace(in.Name),
		UnitMeasure: in.UnitMeasure,
		DefaultRate: in.DefaultRate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, material); err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// GetByID obtiene un material. nil si no existe.
func (uc *MaterialUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.MaterialResponse, error) {
	material, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toMaterialResponse(material), nil
}

// List lista materiales por empresa.
func (uc *MaterialUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) (*dto.MaterialListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MaterialResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMaterialResponse(m))
	}
	return &dto.MaterialListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toMaterialResponse(m *entity.Material) *dto.MaterialResponse {
	if m == nil {
		return nil
	}
	return &dto.MaterialResponse{
		ID:          m.ID,
		Code:        m.Code,
		Name:        m.Name,
		UnitMeasure: m.UnitMeasure,
		DefaultRate: m.DefaultRate,
		CreatedAt:   m.CreatedAt,
	}
}
