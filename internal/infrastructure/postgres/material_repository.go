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

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación del puerto MaterialRepository sobre PostgreSQL.
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de persistencia para materiales.
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// Create persiste un material. Código repetido en la empresa → domain.ErrDuplicate.
func (r *MaterialRepo) Create(ctx context.Context, m *entity.Material) error {
	query := `
		INSERT INTO materials (id, company_id, code, name, unit_measure, default_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.Code, m.Name, m.UnitMeasure, m.DefaultRate, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID obtiene un material de la empresa.
func (r *MaterialRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Material, error) {
	query := `
		SELECT id, company_id, code, name, unit_measure, default_rate, created_at, updated_at
		FROM materials WHERE company_id = $1 AND id = $2`
	var m entity.Material
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(
		&m.ID, &m.CompanyID, &m.Code, &m.Name, &m.UnitMeasure, &m.DefaultRate, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return &m, nil
}

// ListByCompany lista materiales por empresa, ordenados por código.
func (r *MaterialRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Material, error) {
	query := `
		SELECT id, company_id, code, name, unit_measure, default_rate, created_at, updated_at
		FROM materials WHERE company_id = $1 ORDER BY code LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.Code, &m.Name, &m.UnitMeasure, &m.DefaultRate, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
