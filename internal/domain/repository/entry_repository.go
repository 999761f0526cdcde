package repository

import (
	"context"

	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
)

// EntryFilter filtros del listado de entradas.
type EntryFilter struct {
	Kind       string
	LocationID string
	MaterialID string
}

// EntryRepository define el puerto de persistencia para TransactionEntry (DIP).
// Create devuelve domain.ErrDuplicate si el comprobante ya existe en la empresa.
type EntryRepository interface {
	Create(ctx context.Context, entry *entity.TransactionEntry) error
	GetByID(ctx context.Context, companyID, id string) (*entity.TransactionEntry, error)
	List(ctx context.Context, companyID string, filter EntryFilter, limit, offset int) ([]*entity.TransactionEntry, error)
	Delete(ctx context.Context, companyID, id string) error
}

// AllocationRepository persistencia de las asignaciones de una entrada.
type AllocationRepository interface {
	CreateBatch(ctx context.Context, allocations []entity.LaborAllocation) error
	ListByEntry(ctx context.Context, entryID string) ([]entity.LaborAllocation, error)
	DeleteByEntry(ctx context.Context, entryID string) error
}
