// Package analytics contiene los casos de uso del tablero de operación: resultado neto
// por tipo de entrada y materiales con más movimiento.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Reciclaje-api/internal/application/dto"
	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
	domainentry "github.com/jhoicas/Reciclaje-api/internal/domain/entry"
	"github.com/jhoicas/Reciclaje-api/internal/domain/money"
	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dashboardTopMaterials = 5 // número de materiales en el widget del tablero

// DashboardUseCase genera el resumen del día y del mes en curso.
//
// Fuente de datos: DashboardRepository (consultas read-only). El neto se calcula aquí con la
// misma regla que cada entrada (domainentry.NetResult) sobre los montos acumulados.
type DashboardUseCase struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// GetSummary construye el DashboardSummaryResponse para la empresa indicada.
//
// Tres llamadas en paralelo:
//  1. KindTotals(hoy)
//  2. KindTotals(mes)
//  3. TopMaterials(mes, top 5)
func (uc *DashboardUseCase) GetSummary(ctx context.Context, companyID string) (*dto.DashboardSummaryResponse, error) {
	now := uc.now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type totalsResult struct {
		rows []repository.KindTotals
		err  error
	}
	type topResult struct {
		rows []repository.MaterialVolume
		err  error
	}
	todayCh := make(chan totalsResult, 1)
	monthCh := make(chan totalsResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		rows, err := uc.repo.KindTotals(ctx, companyID, todayStart, todayEnd)
		todayCh <- totalsResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.KindTotals(ctx, companyID, monthStart, todayEnd)
		monthCh <- totalsResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.TopMaterials(ctx, companyID, monthStart, todayEnd, dashboardTopMaterials)
		topCh <- topResult{rows, err}
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: totales de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: totales del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: materiales: %w", top.err)
	}

	materials := make([]dto.MaterialVolumeResponse, 0, len(top.rows))
	for _, m := range top.rows {
		materials = append(materials, dto.MaterialVolumeResponse{
			MaterialID: m.MaterialID,
			Code:       m.Code,
			Name:       m.Name,
			Inward:     m.Inward,
			Outward:    m.Outward,
		})
	}
	return &dto.DashboardSummaryResponse{
		Today:        summarize(todayStart, todayEnd, today.rows),
		Month:        summarize(monthStart, todayEnd, month.rows),
		TopMaterials: materials,
		DateLabel:    monthLabel(now),
	}, nil
}

// GetPeriod resumen de un periodo arbitrario [from, to].
func (uc *DashboardUseCase) GetPeriod(ctx context.Context, companyID string, from, to time.Time) (*dto.PeriodSummary, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: el periodo termina antes de empezar", domain.ErrInvalidInput)
	}
	rows, err := uc.repo.KindTotals(ctx, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("dashboard: totales del periodo: %w", err)
	}
	out := summarize(from, to, rows)
	return &out, nil
}

func summarize(from, to time.Time, rows []repository.KindTotals) dto.PeriodSummary {
	out := dto.PeriodSummary{From: from, To: to, Kinds: make([]dto.KindSummary, 0, len(rows)), Net: decimal.Zero}
	for _, r := range rows {
		// Entrada sintética con los montos acumulados: el neto es lineal en los montos.
		net := domainentry.NetResult(&entity.TransactionEntry{
			Kind:              r.Kind,
			TotalAmount:       r.Total,
			LaborAmount:       r.Labor,
			SegregationAmount: r.Segregation,
			BailingAmount:     r.Bailing,
			LoadingAmount:     r.Loading,
			CommissionAmount:  r.Commission,
		})
		out.Kinds = append(out.Kinds, dto.KindSummary{
			Kind:     r.Kind,
			Entries:  r.Entries,
			Quantity: r.Quantity,
			Total:    money.Round(r.Total),
			Costs:    money.Round(money.Sum(r.Labor, r.Segregation, r.Bailing, r.Loading, r.Commission)),
			Net:      money.Round(net),
		})
		out.Net = out.Net.Add(net)
	}
	out.Net = money.Round(out.Net)
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
