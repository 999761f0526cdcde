package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
)

// InventoryRecordRepository define el puerto para consultar/actualizar el stock por ubicación+material.
// Get y GetForUpdate devuelven un registro en 0 si aún no existe (creación perezosa).
type InventoryRecordRepository interface {
	Get(ctx context.Context, companyID, locationID, materialID string) (*entity.InventoryRecord, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar dentro de una transacción.
	GetForUpdate(ctx context.Context, companyID, locationID, materialID string) (*entity.InventoryRecord, error)
	Upsert(ctx context.Context, record *entity.InventoryRecord) error
	List(ctx context.Context, companyID, locationID string, limit, offset int) ([]*entity.InventoryRecord, error)
}

// AdjustmentFilter filtros del libro de ajustes.
type AdjustmentFilter struct {
	LocationID string
	MaterialID string
	From       *time.Time
	To         *time.Time
}

// InventoryAdjustmentRepository libro de ajustes de solo inserción.
type InventoryAdjustmentRepository interface {
	Create(ctx context.Context, adjustment *entity.InventoryAdjustment) error
	List(ctx context.Context, companyID string, filter AdjustmentFilter, limit, offset int) ([]*entity.InventoryAdjustment, error)
}
