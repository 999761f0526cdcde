// Package memory implementa los puertos de persistencia en memoria.
// Se usa en pruebas y con DB_DRIVER=memory para levantar la API sin PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Reciclaje-api/internal/application/ports"
	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	entries     map[string]entity.TransactionEntry
	allocations map[string][]entity.LaborAllocation // por entryID
	records     map[string]entity.InventoryRecord   // por company|location|material
	adjustments []entity.InventoryAdjustment
	locations   map[string]entity.Location
	materials   map[string]entity.Material
	parties     map[string]entity.Party
	staff       map[string]entity.Staff
}

func newState() state {
	return state{
		entries:     map[string]entity.TransactionEntry{},
		allocations: map[string][]entity.LaborAllocation{},
		records:     map[string]entity.InventoryRecord{},
		locations:   map[string]entity.Location{},
		materials:   map[string]entity.Material{},
		parties:     map[string]entity.Party{},
		staff:       map[string]entity.Staff{},
	}
}

func (s state) clone() state {
	out := newState()
	for k, v := range s.entries {
		out.entries[k] = v
	}
	for k, v := range s.allocations {
		out.allocations[k] = append([]entity.LaborAllocation(nil), v...)
	}
	for k, v := range s.records {
		out.records[k] = v
	}
	out.adjustments = append(out.adjustments, s.adjustments...)
	for k, v := range s.locations {
		out.locations[k] = v
	}
	for k, v := range s.materials {
		out.materials[k] = v
	}
	for k, v := range s.parties {
		out.parties[k] = v
	}
	for k, v := range s.staff {
		out.staff[k] = v
	}
	return out
}

// Store estado en memoria compartido por todos los repositorios.
type Store struct {
	txMu sync.Mutex   // serializa transacciones
	mu   sync.RWMutex // protege data
	data state
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Run implementa ports.TxRunner: si fn falla, el estado vuelve a la foto tomada al inicio.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos ports.TxRepos) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(ctx, s.TxRepos()); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// TxRepos repositorios sobre este store.
func (s *Store) TxRepos() ports.TxRepos {
	return ports.TxRepos{
		Entries:     s.Entries(),
		Allocations: s.Allocations(),
		Records:     s.Records(),
		Adjustments: s.Adjustments(),
	}
}

// Entries repositorio de entradas.
func (s *Store) Entries() *EntryRepo { return &EntryRepo{s: s} }

// Allocations repositorio de asignaciones de mano de obra.
func (s *Store) Allocations() *AllocationRepo { return &AllocationRepo{s: s} }

// Records repositorio de stock por ubicación y material.
func (s *Store) Records() *RecordRepo { return &RecordRepo{s: s} }

// Adjustments libro de ajustes.
func (s *Store) Adjustments() *AdjustmentRepo { return &AdjustmentRepo{s: s} }

// Locations, Materials, Parties y Staff son el catálogo; sus escrituras no participan de Run.
func (s *Store) Locations() *LocationRepo { return &LocationRepo{s: s} }
func (s *Store) Materials() *MaterialRepo { return &MaterialRepo{s: s} }
func (s *Store) Parties() *PartyRepo      { return &PartyRepo{s: s} }
func (s *Store) Staff() *StaffRepo        { return &StaffRepo{s: s} }

// Dashboard agregados de solo lectura.
func (s *Store) Dashboard() *DashboardRepo { return &DashboardRepo{s: s} }

// lockDirectory bloquea una escritura de catálogo. Toma también txMu para que el
// rollback de un Run en curso no la pise al restaurar la foto.
func (s *Store) lockDirectory() func() {
	s.txMu.Lock()
	s.mu.Lock()
	return func() {
		s.mu.Unlock()
		s.txMu.Unlock()
	}
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	end := len(list)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return list[offset:end]
}

var (
	_ repository.EntryRepository               = (*EntryRepo)(nil)
	_ repository.AllocationRepository          = (*AllocationRepo)(nil)
	_ repository.InventoryRecordRepository     = (*RecordRepo)(nil)
	_ repository.InventoryAdjustmentRepository = (*AdjustmentRepo)(nil)
)

// EntryRepo entradas en memoria.
type EntryRepo struct{ s *Store }

// Create rechaza un voucher repetido dentro de la empresa.
func (r *EntryRepo) Create(_ context.Context, e *entity.TransactionEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.data.entries {
		if existing.CompanyID == e.CompanyID && existing.VoucherNo == e.VoucherNo {
			return domain.ErrDuplicate
		}
	}
	r.s.data.entries[e.ID] = *e
	return nil
}

// GetByID nil si no existe en la empresa.
func (r *EntryRepo) GetByID(_ context.Context, companyID, id string) (*entity.TransactionEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.data.entries[id]
	if !ok || e.CompanyID != companyID {
		return nil, nil
	}
	return &e, nil
}

// List más recientes primero.
func (r *EntryRepo) List(_ context.Context, companyID string, f repository.EntryFilter, limit, offset int) ([]*entity.TransactionEntry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.TransactionEntry
	for _, e := range r.s.data.entries {
		if e.CompanyID != companyID ||
			(f.Kind != "" && e.Kind != f.Kind) ||
			(f.LocationID != "" && e.LocationID != f.LocationID) ||
			(f.MaterialID != "" && e.MaterialID != f.MaterialID) {
			continue
		}
		e := e
		list = append(list, &e)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].EntryDate.Equal(list[j].EntryDate) {
			return list[i].VoucherNo > list[j].VoucherNo
		}
		return list[i].EntryDate.After(list[j].EntryDate)
	})
	return page(list, limit, offset), nil
}

// Delete también quita las asignaciones de la entrada.
func (r *EntryRepo) Delete(_ context.Context, companyID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.data.entries[id]
	if !ok || e.CompanyID != companyID {
		return domain.ErrNotFound
	}
	delete(r.s.data.entries, id)
	delete(r.s.data.allocations, id)
	return nil
}

// AllocationRepo asignaciones en memoria.
type AllocationRepo struct{ s *Store }

func (r *AllocationRepo) CreateBatch(_ context.Context, allocations []entity.LaborAllocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range allocations {
		r.s.data.allocations[a.EntryID] = append(r.s.data.allocations[a.EntryID], a)
	}
	return nil
}

// ListByEntry devuelve una copia.
func (r *AllocationRepo) ListByEntry(_ context.Context, entryID string) ([]entity.LaborAllocation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return append([]entity.LaborAllocation(nil), r.s.data.allocations[entryID]...), nil
}

func (r *AllocationRepo) DeleteByEntry(_ context.Context, entryID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.allocations, entryID)
	return nil
}

// RecordRepo stock en memoria.
type RecordRepo struct{ s *Store }

func recordKey(companyID, locationID, materialID string) string {
	return companyID + "|" + locationID + "|" + materialID
}

// Get devuelve stock cero si no hay registro.
func (r *RecordRepo) Get(_ context.Context, companyID, locationID, materialID string) (*entity.InventoryRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if rec, ok := r.s.data.records[recordKey(companyID, locationID, materialID)]; ok {
		return &rec, nil
	}
	return &entity.InventoryRecord{CompanyID: companyID, LocationID: locationID, MaterialID: materialID, Quantity: decimal.Zero}, nil
}

// GetForUpdate en memoria el bloqueo lo da Store.Run.
func (r *RecordRepo) GetForUpdate(ctx context.Context, companyID, locationID, materialID string) (*entity.InventoryRecord, error) {
	return r.Get(ctx, companyID, locationID, materialID)
}

func (r *RecordRepo) Upsert(_ context.Context, rec *entity.InventoryRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.records[recordKey(rec.CompanyID, rec.LocationID, rec.MaterialID)] = *rec
	return nil
}

// List ordenado por ubicación y material.
func (r *RecordRepo) List(_ context.Context, companyID, locationID string, limit, offset int) ([]*entity.InventoryRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.InventoryRecord
	for _, rec := range r.s.data.records {
		if rec.CompanyID != companyID || (locationID != "" && rec.LocationID != locationID) {
			continue
		}
		rec := rec
		list = append(list, &rec)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].LocationID == list[j].LocationID {
			return list[i].MaterialID < list[j].MaterialID
		}
		return list[i].LocationID < list[j].LocationID
	})
	return page(list, limit, offset), nil
}

// AdjustmentRepo libro de ajustes en memoria (solo inserción).
type AdjustmentRepo struct{ s *Store }

func (r *AdjustmentRepo) Create(_ context.Context, a *entity.InventoryAdjustment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.adjustments = append(r.s.data.adjustments, *a)
	return nil
}

// List más recientes primero.
func (r *AdjustmentRepo) List(_ context.Context, companyID string, f repository.AdjustmentFilter, limit, offset int) ([]*entity.InventoryAdjustment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.InventoryAdjustment
	// más recientes primero
	for i := len(r.s.data.adjustments) - 1; i >= 0; i-- {
		a := r.s.data.adjustments[i]
		if a.CompanyID != companyID ||
			(f.LocationID != "" && a.LocationID != f.LocationID) ||
			(f.MaterialID != "" && a.MaterialID != f.MaterialID) ||
			(f.From != nil && a.AdjustmentDate.Before(*f.From)) ||
			(f.To != nil && a.AdjustmentDate.After(*f.To)) {
			continue
		}
		list = append(list, &a)
	}
	return page(list, limit, offset), nil
}
