package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Reciclaje-api/internal/application/dto"
	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
)

// StaffUseCase casos de uso para el personal que recibe asignaciones.
type StaffUseCase struct {
	repo repository.StaffRepository
}

// NewStaffUseCase construye el caso de uso.
func NewStaffUseCase(repo repository.StaffRepository) *StaffUseCase {
	return &StaffUseCase{repo: repo}
}

// Create registra un trabajador activo.
func (uc *StaffUseCase) Create(ctx context.Context, companyID string, in dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	staff := &entity.Staff{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(in.Name),
		Phone:     in.Phone,
		Status:    entity.StaffStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return toStaffResponse(staff), nil
}

// Update actualiza nombre, teléfono o estado. Un trabajador inactivo conserva sus asignaciones
// pasadas pero no puede recibir nuevas.
func (uc *StaffUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	staff, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, nil
	}
	if in.Name != nil {
		staff.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		staff.Phone = *in.Phone
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.StaffStatusActive, entity.StaffStatusInactive:
			staff.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	staff.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, staff); err != nil {
		return nil, err
	}
	return toStaffResponse(staff), nil
}

// List lista el personal; activeOnly filtra los que pueden recibir asignaciones.
func (uc *StaffUseCase) List(ctx context.Context, companyID string, activeOnly bool, page dto.PageRequest) (*dto.StaffListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, activeOnly, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StaffResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStaffResponse(s))
	}
	return &dto.StaffListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toStaffResponse(s *entity.Staff) *dto.StaffResponse {
	if s == nil {
		return nil
	}
	return &dto.StaffResponse{
		ID:        s.ID,
		Name:      s.Name,
		Phone:     s.Phone,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}
