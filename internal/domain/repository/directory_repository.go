package repository

import (
	"context"

	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Location, error)
	Delete(ctx context.Context, companyID, id string) error
}

// MaterialRepository define el puerto de persistencia para Material (DIP).
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Material, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Material, error)
}

// PartyRepository define el puerto de persistencia para terceros (compradores, receptores, agentes).
type PartyRepository interface {
	Create(ctx context.Context, party *entity.Party) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Party, error)
	ListByCompany(ctx context.Context, companyID, role string, limit, offset int) ([]*entity.Party, error)
}

// StaffRepository define el puerto de persistencia para el personal.
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Staff, error)
	Update(ctx context.Context, staff *entity.Staff) error
	// GetByIDs devuelve solo los encontrados, indexados por ID.
	GetByIDs(ctx context.Context, companyID string, ids []string) (map[string]*entity.Staff, error)
	ListByCompany(ctx context.Context, companyID string, activeOnly bool, limit, offset int) ([]*entity.Staff, error)
}
