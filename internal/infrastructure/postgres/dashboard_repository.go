package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el tablero (totales por tipo, materiales más movidos).
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del tablero.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// KindTotals suma montos por tipo de entrada. Los tipos sin movimientos en el periodo no aparecen.
func (r *DashboardRepo) KindTotals(ctx context.Context, companyID string, from, to time.Time) ([]repository.KindTotals, error) {
	const query = `
	SELECT
	    kind,
	    COUNT(*)                             AS entries,
	    COALESCE(SUM(quantity),           0) AS quantity,
	    COALESCE(SUM(total_amount),       0) AS total,
	    COALESCE(SUM(labor_amount),       0) AS labor,
	    COALESCE(SUM(segregation_amount), 0) AS segregation,
	    COALESCE(SUM(bailing_amount),     0) AS bailing,
	    COALESCE(SUM(loading_amount),     0) AS loading,
	    COALESCE(SUM(commission_amount),  0) AS commission
	FROM transaction_entries
	WHERE company_id = $1
	  AND entry_date BETWEEN $2 AND $3
	GROUP BY kind
	ORDER BY kind`

	rows, err := r.q.Query(ctx, query, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("dashboard.KindTotals: %w", err)
	}
	defer rows.Close()

	var results []repository.KindTotals
	for rows.Next() {
		var row repository.KindTotals
		if err := rows.Scan(
			&row.Kind,
			&row.Entries,
			&row.Quantity,
			&row.Total,
			&row.Labor,
			&row.Segregation,
			&row.Bailing,
			&row.Loading,
			&row.Commission,
		); err != nil {
			return nil, fmt.Errorf("dashboard.KindTotals scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopMaterials materiales con más volumen (entradas + salidas) en el periodo.
func (r *DashboardRepo) TopMaterials(ctx context.Context, companyID string, from, to time.Time, limit int) ([]repository.MaterialVolume, error) {
	const query = `
	SELECT
	    m.id,
	    m.code,
	    m.name,
	    COALESCE(SUM(e.quantity) FILTER (WHERE e.kind = 'INWARD'),  0) AS inward,
	    COALESCE(SUM(e.quantity) FILTER (WHERE e.kind <> 'INWARD'), 0) AS outward
	FROM transaction_entries e
	JOIN materials m ON m.id = e.material_id
	WHERE e.company_id = $1
	  AND e.entry_date BETWEEN $2 AND $3
	GROUP BY m.id, m.code, m.name
	ORDER BY SUM(e.quantity) DESC, m.code
	LIMIT $4`

	rows, err := r.q.Query(ctx, query, companyID, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.TopMaterials: %w", err)
	}
	defer rows.Close()

	var results []repository.MaterialVolume
	for rows.Next() {
		var row repository.MaterialVolume
		if err := rows.Scan(&row.MaterialID, &row.Code, &row.Name, &row.Inward, &row.Outward); err != nil {
			return nil, fmt.Errorf("dashboard.TopMaterials scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
