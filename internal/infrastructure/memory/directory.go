package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
)

var (
	_ repository.LocationRepository = (*LocationRepo)(nil)
	_ repository.MaterialRepository = (*MaterialRepo)(nil)
	_ repository.PartyRepository    = (*PartyRepo)(nil)
	_ repository.StaffRepository    = (*StaffRepo)(nil)
)

// LocationRepo ubicaciones en memoria.
type LocationRepo struct{ s *Store }

// Create guarda la ubicación.
func (r *LocationRepo) Create(_ context.Context, l *entity.Location) error {
	defer r.s.lockDirectory()()
	r.s.data.locations[l.ID] = *l
	return nil
}

// GetByID nil si no existe en la empresa.
func (r *LocationRepo) GetByID(_ context.Context, companyID, id string) (*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.data.locations[id]
	if !ok || l.CompanyID != companyID {
		return nil, nil
	}
	return &l, nil
}

func (r *LocationRepo) Update(_ context.Context, l *entity.Location) error {
	defer r.s.lockDirectory()()
	if _, ok := r.s.data.locations[l.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.data.locations[l.ID] = *l
	return nil
}

// ListByCompany ordenado por nombre.
func (r *LocationRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Location
	for _, l := range r.s.data.locations {
		if l.CompanyID == companyID {
			l := l
			list = append(list, &l)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

// Delete falla con ErrConflict si la ubicación tiene entradas o stock.
func (r *LocationRepo) Delete(_ context.Context, companyID, id string) error {
	defer r.s.lockDirectory()()
	l, ok := r.s.data.locations[id]
	if !ok || l.CompanyID != companyID {
		return nil
	}
	for _, e := range r.s.data.entries {
		if e.LocationID == id {
			return domain.ErrConflict
		}
	}
	for _, rec := range r.s.data.records {
		if rec.LocationID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.data.locations, id)
	return nil
}

// MaterialRepo materiales en memoria.
type MaterialRepo struct{ s *Store }

// Create rechaza códigos repetidos dentro de la empresa.
func (r *MaterialRepo) Create(_ context.Context, m *entity.Material) error {
	defer r.s.lockDirectory()()
	for _, existing := range r.s.data.materials {
		if existing.CompanyID == m.CompanyID && existing.Code == m.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.data.materials[m.ID] = *m
	return nil
}

func (r *MaterialRepo) GetByID(_ context.Context, companyID, id string) (*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.data.materials[id]
	if !ok || m.CompanyID != companyID {
		return nil, nil
	}
	return &m, nil
}

// ListByCompany ordenado por código.
func (r *MaterialRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Material, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Material
	for _, m := range r.s.data.materials {
		if m.CompanyID == companyID {
			m := m
			list = append(list, &m)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	return page(list, limit, offset), nil
}

// PartyRepo terceros en memoria.
type PartyRepo struct{ s *Store }

func (r *PartyRepo) Create(_ context.Context, p *entity.Party) error {
	defer r.s.lockDirectory()()
	r.s.data.parties[p.ID] = *p
	return nil
}

func (r *PartyRepo) GetByID(_ context.Context, companyID, id string) (*entity.Party, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.data.parties[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return &p, nil
}

// ListByCompany filtra por rol si role no está vacío.
func (r *PartyRepo) ListByCompany(_ context.Context, companyID, role string, limit, offset int) ([]*entity.Party, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Party
	for _, p := range r.s.data.parties {
		if p.CompanyID == companyID && (role == "" || p.Role == role) {
			p := p
			list = append(list, &p)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}

// StaffRepo personal en memoria.
type StaffRepo struct{ s *Store }

func (r *StaffRepo) Create(_ context.Context, st *entity.Staff) error {
	defer r.s.lockDirectory()()
	r.s.data.staff[st.ID] = *st
	return nil
}

func (r *StaffRepo) GetByID(_ context.Context, companyID, id string) (*entity.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.data.staff[id]
	if !ok || st.CompanyID != companyID {
		return nil, nil
	}
	return &st, nil
}

func (r *StaffRepo) Update(_ context.Context, st *entity.Staff) error {
	defer r.s.lockDirectory()()
	if _, ok := r.s.data.staff[st.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.data.staff[st.ID] = *st
	return nil
}

// GetByIDs omite los ids que no existen.
func (r *StaffRepo) GetByIDs(_ context.Context, companyID string, ids []string) (map[string]*entity.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]*entity.Staff, len(ids))
	for _, id := range ids {
		if st, ok := r.s.data.staff[id]; ok && st.CompanyID == companyID {
			st := st
			out[id] = &st
		}
	}
	return out, nil
}

func (r *StaffRepo) ListByCompany(_ context.Context, companyID string, activeOnly bool, limit, offset int) ([]*entity.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Staff
	for _, st := range r.s.data.staff {
		if st.CompanyID != companyID || (activeOnly && !st.IsActive()) {
			continue
		}
		st := st
		list = append(list, &st)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return page(list, limit, offset), nil
}
