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

var _ repository.StaffRepository = (*StaffRepo)(nil)

// StaffRepo implementación del puerto StaffRepository sobre PostgreSQL.
type StaffRepo struct {
	q Querier
}

// NewStaffRepository construye el adaptador de persistencia para el personal.
func NewStaffRepository(q Querier) *StaffRepo {
	return &StaffRepo{q: q}
}

// Create persiste un trabajador.
func (r *StaffRepo) Create(ctx context.Context, s *entity.Staff) error {
	query := `
		INSERT INTO staff (id, company_id, name, phone, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, s.ID, s.CompanyID, s.Name, s.Phone, s.Status, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert staff: %w", err)
	}
	return nil
}

// GetByID obtiene un trabajador de la empresa.
func (r *StaffRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Staff, error) {
	query := `
		SELECT id, company_id, name, phone, status, created_at, updated_at
		FROM staff WHERE company_id = $1 AND id = $2`
	var s entity.Staff
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(
		&s.ID, &s.CompanyID, &s.Name, &s.Phone, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return &s, nil
}

// Update actualiza nombre, teléfono y estado.
func (r *StaffRepo) Update(ctx context.Context, s *entity.Staff) error {
	query := `
		UPDATE staff SET name = $3, phone = $4, status = $5, updated_at = $6
		WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query, s.CompanyID, s.ID, s.Name, s.Phone, s.Status, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update staff: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByIDs carga varios trabajadores en una consulta (ANY($2)). Los que no existen no aparecen en el mapa.
func (r *StaffRepo) GetByIDs(ctx context.Context, companyID string, ids []string) (map[string]*entity.Staff, error) {
	out := make(map[string]*entity.Staff, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `
		SELECT id, company_id, name, phone, status, created_at, updated_at
		FROM staff WHERE company_id = $1 AND id::text = ANY($2)`
	rows, err := r.q.Query(ctx, query, companyID, ids)
	if err != nil {
		return nil, fmt.Errorf("get staff by ids: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s entity.Staff
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Phone, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		out[s.ID] = &s
	}
	return out, rows.Err()
}

// ListByCompany lista el personal de la empresa; activeOnly filtra status = 'active'.
func (r *StaffRepo) ListByCompany(ctx context.Context, companyID string, activeOnly bool, limit, offset int) ([]*entity.Staff, error) {
	query := `
		SELECT id, company_id, name, phone, status, created_at, updated_at
		FROM staff WHERE company_id = $1 AND (NOT $2 OR status = 'active')
		ORDER BY name LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, activeOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()
	var list []*entity.Staff
	for rows.Next() {
		var s entity.Staff
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Name, &s.Phone, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
