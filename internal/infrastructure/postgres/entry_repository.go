package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
)

var (
	_ repository.EntryRepository      = (*EntryRepo)(nil)
	_ repository.AllocationRepository = (*AllocationRepo)(nil)
)

const entryColumns = `
	id, company_id, kind, voucher_no, entry_date, material_id, location_id, party_id, agent_id,
	quantity, rate, total_amount, labor_rate, labor_amount, segregation_rate, segregation_amount,
	bailing_rate, bailing_amount, loading_rate, loading_amount, commission_rate, commission_amount,
	notes, created_at, updated_at, created_by`

// EntryRepo implementación de EntryRepository sobre PostgreSQL (usable con pool o tx).
type EntryRepo struct {
	q Querier
}

// NewEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntryRepository(q Querier) *EntryRepo {
	return &EntryRepo{q: q}
}

// Create persiste una entrada. Comprobante repetido en la empresa → domain.ErrDuplicate.
func (r *EntryRepo) Create(ctx context.Context, e *entity.TransactionEntry) error {
	query := `INSERT INTO transaction_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.CompanyID, e.Kind, e.VoucherNo, e.EntryDate, e.MaterialID, e.LocationID,
		nullable(e.PartyID), nullable(e.AgentID),
		e.Quantity, e.Rate, e.TotalAmount, e.LaborRate, e.LaborAmount,
		e.SegregationRate, e.SegregationAmount, e.BailingRate, e.BailingAmount,
		e.LoadingRate, e.LoadingAmount, e.CommissionRate, e.CommissionAmount,
		e.Notes, e.CreatedAt, e.UpdatedAt, nullable(e.CreatedBy),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: comprobante %s", domain.ErrDuplicate, e.VoucherNo)
		}
		return fmt.Errorf("insert transaction entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada de la empresa. nil si no existe.
func (r *EntryRepo) GetByID(ctx context.Context, companyID, id string) (*entity.TransactionEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM transaction_entries WHERE company_id = $1 AND id = $2`
	e, err := scanEntry(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction entry: %w", err)
	}
	return e, nil
}

// List entradas de la empresa, más recientes primero.
func (r *EntryRepo) List(ctx context.Context, companyID string, f repository.EntryFilter, limit, offset int) ([]*entity.TransactionEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM transaction_entries WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if f.Kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", pos)
		args = append(args, f.Kind)
		pos++
	}
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
	query += fmt.Sprintf(" ORDER BY entry_date DESC, voucher_no DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transaction entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransactionEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Delete elimina la entrada. Las asignaciones caen por ON DELETE CASCADE.
func (r *EntryRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM transaction_entries WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete transaction entry: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanEntry(row pgx.Row) (*entity.TransactionEntry, error) {
	var e entity.TransactionEntry
	var partyID, agentID, createdBy *string
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.Kind, &e.VoucherNo, &e.EntryDate, &e.MaterialID, &e.LocationID,
		&partyID, &agentID,
		&e.Quantity, &e.Rate, &e.TotalAmount, &e.LaborRate, &e.LaborAmount,
		&e.SegregationRate, &e.SegregationAmount, &e.BailingRate, &e.BailingAmount,
		&e.LoadingRate, &e.LoadingAmount, &e.CommissionRate, &e.CommissionAmount,
		&e.Notes, &e.CreatedAt, &e.UpdatedAt, &createdBy,
	)
	if err != nil {
		return nil, err
	}
	e.PartyID = deref(partyID)
	e.AgentID = deref(agentID)
	e.CreatedBy = deref(createdBy)
	return &e, nil
}

// AllocationRepo implementación de AllocationRepository sobre PostgreSQL.
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

// CreateBatch inserta las asignaciones de una entrada. Se llama dentro de la tx de la entrada.
func (r *AllocationRepo) CreateBatch(ctx context.Context, allocations []entity.LaborAllocation) error {
	query := `
		INSERT INTO labor_allocations (id, entry_id, staff_id, category, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, a := range allocations {
		_, err := r.q.Exec(ctx, query, a.ID, a.EntryID, a.StaffID, a.Category, a.Amount, a.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: personal %s repetido en %s", domain.ErrDuplicate, a.StaffID, a.Category)
			}
			return fmt.Errorf("insert labor allocation: %w", err)
		}
	}
	return nil
}

// ListByEntry asignaciones de una entrada en orden de alta.
func (r *AllocationRepo) ListByEntry(ctx context.Context, entryID string) ([]entity.LaborAllocation, error) {
	query := `
		SELECT id, entry_id, staff_id, category, amount, created_at
		FROM labor_allocations WHERE entry_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("list labor allocations: %w", err)
	}
	defer rows.Close()
	var list []entity.LaborAllocation
	for rows.Next() {
		var a entity.LaborAllocation
		if err := rows.Scan(&a.ID, &a.EntryID, &a.StaffID, &a.Category, &a.Amount, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan labor allocation: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// DeleteByEntry elimina las asignaciones de una entrada.
func (r *AllocationRepo) DeleteByEntry(ctx context.Context, entryID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM labor_allocations WHERE entry_id = $1`, entryID); err != nil {
		return fmt.Errorf("delete labor allocations: %w", err)
	}
	return nil
}
