package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
)

var _ repository.InventoryAdjustmentRepository = (*InventoryAdjustmentRepo)(nil)

const adjustmentColumns = `
	id, company_id, location_id, material_id, adjustment_type, quantity, previous_qty, new_qty,
	reason, notes, entry_id, adjustment_date, created_at, created_by`

// InventoryAdjustmentRepo libro de ajustes sobre PostgreSQL (usable con pool o tx). Solo inserción.
type InventoryAdjustmentRepo struct {
	q Querier
}

// NewInventoryAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryAdjustmentRepository(q Querier) *InventoryAdjustmentRepo {
	return &InventoryAdjustmentRepo{q: q}
}

// Create persiste un ajuste de inventario.
func (r *InventoryAdjustmentRepo) Create(ctx context.Context, a *entity.InventoryAdjustment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `INSERT INTO inventory_adjustments (` + adjustmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.LocationID, a.MaterialID, a.AdjustmentType,
		a.Quantity, a.PreviousQty, a.NewQty, a.Reason, a.Notes,
		nullable(a.EntryID), a.AdjustmentDate, a.CreatedAt, nullable(a.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create inventory adjustment: %w", err)
	}
	return nil
}

// List ajustes de la empresa con filtros opcionales, más recientes primero.
func (r *InventoryAdjustmentRepo) List(ctx context.Context, companyID string, f repository.AdjustmentFilter, limit, offset int) ([]*entity.InventoryAdjustment, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM inventory_adjustments WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if f.LocationID != "" {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, f.LocationID)
		pos++
	}
	if f.MaterialID != "" {
		query += fmt.Sprintf(" AND material_id = $%d", pos)
		args = append(args, f.MaterialID)
		pos++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND adjustment_date >= $%d", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND adjustment_date <= $%d", pos)
		args = append(args, *f.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory adjustments: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryAdjustment
	for rows.Next() {
		var a entity.InventoryAdjustment
		var entryID, createdBy *string
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.LocationID, &a.MaterialID, &a.AdjustmentType,
			&a.Quantity, &a.PreviousQty, &a.NewQty, &a.Reason, &a.Notes,
			&entryID, &a.AdjustmentDate, &a.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan inventory adjustment: %w", err)
		}
		a.EntryID = deref(entryID)
		a.CreatedBy = deref(createdBy)
		list = append(list, &a)
	}
	return list, rows.Err()
}
