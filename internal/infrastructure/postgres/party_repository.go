package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
)

var _ repository.PartyRepository = (*PartyRepo)(nil)

// PartyRepo terceros (compradores, receptores, agentes) sobre PostgreSQL.
type PartyRepo struct {
	q Querier
}

// NewPartyRepository construye el adaptador.
func NewPartyRepository(q Querier) *PartyRepo {
	return &PartyRepo{q: q}
}

// Create persiste un tercero. commission_rate NULL = sin tarifa configurada.
func (r *PartyRepo) Create(ctx context.Context, p *entity.Party) error {
	query := `
		INSERT INTO parties (id, company_id, name, role, phone, commission_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.CompanyID, p.Name, p.Role, p.Phone, p.CommissionRate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert party: %w", err)
	}
	return nil
}

// GetByID obtiene un tercero de la empresa.
func (r *PartyRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Party, error) {
	query := `
		SELECT id, company_id, name, role, phone, commission_rate, created_at, updated_at
		FROM parties WHERE company_id = $1 AND id = $2`
	var p entity.Party
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.Role, &p.Phone, &p.CommissionRate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get party: %w", err)
	}
	return &p, nil
}

// ListByCompany lista terceros de la empresa; role vacío = todos los roles.
func (r *PartyRepo) ListByCompany(ctx context.Context, companyID, role string, limit, offset int) ([]*entity.Party, error) {
	query := `
		SELECT id, company_id, name, role, phone, commission_rate, created_at, updated_at
		FROM parties WHERE company_id = $1 AND ($2 = '' OR role = $2)
		ORDER BY name LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, companyID, role, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list parties: %w", err)
	}
	defer rows.Close()
	var list []*entity.Party
	for rows.Next() {
		var p entity.Party
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Role, &p.Phone, &p.CommissionRate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan party: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
