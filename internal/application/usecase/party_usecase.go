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

// PartyUseCase casos de uso para terceros: compradores, receptores de rechazo y agentes de recolección.
type PartyUseCase struct {
	repo repository.PartyRepository
}

// NewPartyUseCase construye el caso de uso.
func NewPartyUseCase(repo repository.PartyRepository) *PartyUseCase {
	return &PartyUseCase{repo: repo}
}

// Create registra un tercero. Solo los agentes llevan tarifa de comisión.
func (uc *PartyUseCase) Create(ctx context.Context, companyID string, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	switch in.Role {
	case entity.PartyRoleBuyer, entity.PartyRoleRecipient:
		in.CommissionRate = nil
	case entity.PartyRoleAgent:
		if in.CommissionRate != nil && (in.CommissionRate.IsNegative() || !money.FitsQuantityScale(*in.CommissionRate)) {
			return nil, &domain.InvalidNumericInputError{Field: "commission_rate", Value: in.CommissionRate.String()}
		}
	default:
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	party := &entity.Party{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Name:           strings.TrimSpace(in.Name),
		Role:           in.Role,
		Phone:          in.Phone,
		CommissionRate: in.CommissionRate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, party); err != nil {
		return nil, err
	}
	return toPartyResponse(party), nil
}

// GetByID obtiene un tercero. nil si no existe.
func (uc *PartyUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.PartyResponse, error) {
	party, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toPartyResponse(party), nil
}

// List lista terceros de la empresa; role vacío = todos.
func (uc *PartyUseCase) List(ctx context.Context, companyID, role string, page dto.PageRequest) (*dto.PartyListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, role, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartyResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartyResponse(p))
	}
	return &dto.PartyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toPartyResponse(p *entity.Party) *dto.PartyResponse {
	if p == nil {
		return nil
	}
	return &dto.PartyResponse{
		ID:             p.ID,
		Name:           p.Name,
		Role:           p.Role,
		Phone:          p.Phone,
		CommissionRate: p.CommissionRate,
		CreatedAt:      p.CreatedAt,
	}
}
