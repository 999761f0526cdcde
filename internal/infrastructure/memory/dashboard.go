package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo agregados del tablero sobre el estado en memoria.
type DashboardRepo struct{ s *Store }

func inPeriod(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}

// KindTotals suma montos por tipo de entrada en [from, to].
func (r *DashboardRepo) KindTotals(_ context.Context, companyID string, from, to time.Time) ([]repository.KindTotals, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byKind := map[string]*repository.KindTotals{}
	for _, e := range r.s.data.entries {
		if e.CompanyID != companyID || !inPeriod(e.EntryDate, from, to) {
			continue
		}
		t, ok := byKind[e.Kind]
		if !ok {
			t = &repository.KindTotals{Kind: e.Kind}
			byKind[e.Kind] = t
		}
		t.Entries++
		t.Quantity = t.Quantity.Add(e.Quantity)
		t.Total = t.Total.Add(e.TotalAmount)
		t.Labor = t.Labor.Add(e.LaborAmount)
		t.Segregation = t.Segregation.Add(e.SegregationAmount)
		t.Bailing = t.Bailing.Add(e.BailingAmount)
		t.Loading = t.Loading.Add(e.LoadingAmount)
		t.Commission = t.Commission.Add(e.CommissionAmount)
	}
	out := make([]repository.KindTotals, 0, len(byKind))
	for _, t := range byKind {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out, nil
}

// TopMaterials materiales con más volumen movido en [from, to].
func (r *DashboardRepo) TopMaterials(_ context.Context, companyID string, from, to time.Time, limit int) ([]repository.MaterialVolume, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	byMaterial := map[string]*repository.MaterialVolume{}
	for _, e := range r.s.data.entries {
		if e.CompanyID != companyID || !inPeriod(e.EntryDate, from, to) {
			continue
		}
		v, ok := byMaterial[e.MaterialID]
		if !ok {
			m := r.s.data.materials[e.MaterialID]
			v = &repository.MaterialVolume{MaterialID: e.MaterialID, Code: m.Code, Name: m.Name}
			byMaterial[e.MaterialID] = v
		}
		if e.Kind == entity.EntryKindInward {
			v.Inward = v.Inward.Add(e.Quantity)
		} else {
			v.Outward = v.Outward.Add(e.Quantity)
		}
	}
	out := make([]repository.MaterialVolume, 0, len(byMaterial))
	for _, v := range byMaterial {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Inward.Add(out[i].Outward), out[j].Inward.Add(out[j].Outward)
		if !a.Equal(b) {
			return a.GreaterThan(b)
		}
		return out[i].Code < out[j].Code
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
