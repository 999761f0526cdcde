package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

// InventoryRecordRepo stock por (ubicación, material) sobre PostgreSQL (usable con pool o tx).
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

// Get obtiene el stock actual; si no hay fila devuelve un registro en 0.
func (r *InventoryRecordRepo) Get(ctx context.Context, companyID, locationID, materialID string) (*entity.InventoryRecord, error) {
	return r.get(ctx, companyID, locationID, materialID, "")
}

// GetForUpdate obtiene el stock y bloquea la fila para update (SELECT FOR UPDATE).
// Si la fila no existe la crea en 0 primero, para que dos transacciones concurrentes
// sobre un registro nuevo también se serialicen.
func (r *InventoryRecordRepo) GetForUpdate(ctx context.Context, companyID, locationID, materialID string) (*entity.InventoryRecord, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_records (company_id, location_id, material_id, quantity, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (company_id, location_id, material_id) DO NOTHING`,
		companyID, locationID, materialID)
	if err != nil {
		return nil, fmt.Errorf("ensure inventory record: %w", err)
	}
	return r.get(ctx, companyID, locationID, materialID, " FOR UPDATE")
}

func (r *InventoryRecordRepo) get(ctx context.Context, companyID, locationID, materialID, lock string) (*entity.InventoryRecord, error) {
	query := `
		SELECT company_id, location_id, material_id, quantity, updated_at
		FROM inventory_records
		WHERE company_id = $1 AND location_id = $2 AND material_id = $3` + lock
	var rec entity.InventoryRecord
	err := r.q.QueryRow(ctx, query, companyID, locationID, materialID).Scan(
		&rec.CompanyID, &rec.LocationID, &rec.MaterialID, &rec.Quantity, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.InventoryRecord{CompanyID: companyID, LocationID: locationID, MaterialID: materialID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get inventory record: %w", err)
	}
	return &rec, nil
}

// Upsert inserta o actualiza la cantidad en stock.
func (r *InventoryRecordRepo) Upsert(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (company_id, location_id, material_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (company_id, location_id, material_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(ctx, query, rec.CompanyID, rec.LocationID, rec.MaterialID, rec.Quantity)
	if err != nil {
		return fmt.Errorf("upsert inventory record: %w", err)
	}
	return nil
}

// List stock de la empresa; locationID vacío = todas las ubicaciones.
func (r *InventoryRecordRepo) List(ctx context.Context, companyID, locationID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT company_id, location_id, material_id, quantity, updated_at
		FROM inventory_records
		WHERE company_id = $1 AND ($2 = '' OR location_id::text = $2)
		ORDER BY location_id, material_id LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list inventory records: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		var rec entity.InventoryRecord
		if err := rows.Scan(&rec.CompanyID, &rec.LocationID, &rec.MaterialID, &rec.Quantity, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory record: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}
