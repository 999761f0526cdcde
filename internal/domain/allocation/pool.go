// Package allocation mantiene la distribución de un costo (mano de obra, segregación,
// embalaje, cargue) entre el personal asignado a una entrada.
//
// Pool es un valor inmutable: cada operación devuelve un pool nuevo y deja intacto
// el original, de modo que el controlador del formulario decide cuándo reemplazar su borrador.
package allocation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/jhoicas/Reciclaje-api/internal/domain/money"
	"github.com/shopspring/decimal"
)

// Category bolsa de costo con su propio total y sus propias asignaciones.
type Category string

// Categorías de costo soportadas.
const (
	CategoryLabor       Category = "labor"
	CategorySegregation Category = "segregation"
	CategoryBailing     Category = "bailing"
	CategoryLoading     Category = "loading"
)

// ErrDuplicateMember el miembro ya tiene una asignación en la categoría.
var ErrDuplicateMember = fmt.Errorf("%w: el miembro ya está asignado a la categoría", domain.ErrDuplicate)

// ParseCategory valida el nombre de una categoría.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryLabor, CategorySegregation, CategoryBailing, CategoryLoading:
		return c, nil
	}
	return "", fmt.Errorf("%w: categoría desconocida %q", domain.ErrInvalidInput, s)
}

// Allocation porción del costo de una categoría asignada a un miembro del personal.
type Allocation struct {
	ID       string
	StaffID  string
	Category Category
	Amount   decimal.Decimal
}

// Pool conjunto de asignaciones de una entrada, con el total objetivo de cada categoría.
type Pool struct {
	targets     map[Category]decimal.Decimal
	allocations []Allocation
}

// NewPool pool vacío.
func NewPool() Pool {
	return Pool{targets: map[Category]decimal.Decimal{}}
}

// FromAllocations reconstruye un pool a partir de datos persistidos, sin redistribuir.
// Útil para editar una entrada existente conservando sus montos manuales.
func FromAllocations(targets map[Category]decimal.Decimal, allocations []Allocation) Pool {
	p := NewPool()
	for c, t := range targets {
		p.targets[c] = money.Round(money.NonNegative(t))
	}
	p.allocations = append(p.allocations, allocations...)
	return p
}

func (p Pool) clone() Pool {
	out := Pool{
		targets:     make(map[Category]decimal.Decimal, len(p.targets)),
		allocations: make([]Allocation, len(p.allocations)),
	}
	for c, t := range p.targets {
		out.targets[c] = t
	}
	copy(out.allocations, p.allocations)
	return out
}

// Target total objetivo de la categoría (0 si no se ha fijado).
func (p Pool) Target(category Category) decimal.Decimal {
	if t, ok := p.targets[category]; ok {
		return t
	}
	return decimal.Zero
}

// Allocations copia de todas las asignaciones, en orden de alta.
func (p Pool) Allocations() []Allocation {
	out := make([]Allocation, len(p.allocations))
	copy(out, p.allocations)
	return out
}

// Members asignaciones de una categoría, en orden de alta.
func (p Pool) Members(category Category) []Allocation {
	var out []Allocation
	for _, a := range p.allocations {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// Sum suma de los montos asignados en la categoría.
func (p Pool) Sum(category Category) decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.allocations {
		if a.Category == category {
			total = total.Add(a.Amount)
		}
	}
	return total
}

// Categories categorías con total fijado o con asignaciones, en orden alfabético.
func (p Pool) Categories() []Category {
	seen := map[Category]struct{}{}
	for c := range p.targets {
		seen[c] = struct{}{}
	}
	for _, a := range p.allocations {
		seen[a.Category] = struct{}{}
	}
	out := make([]Category, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddMember asigna un miembro a la categoría y reparte el total en partes iguales
// entre todos sus miembros. Los montos manuales previos de la categoría se pierden.
func (p Pool) AddMember(staffID string, category Category) (Pool, Allocation, error) {
	staffID = strings.TrimSpace(staffID)
	if staffID == "" {
		return p, Allocation{}, &domain.MissingRequiredSelectionError{Field: "staff_id"}
	}
	if _, err := ParseCategory(string(category)); err != nil {
		return p, Allocation{}, err
	}
	for _, a := range p.allocations {
		if a.StaffID == staffID && a.Category == category {
			return p, Allocation{}, ErrDuplicateMember
		}
	}
	out := p.clone()
	added := Allocation{ID: uuid.New().String(), StaffID: staffID, Category: category}
	out.allocations = append(out.allocations, added)
	out.split(category)
	for _, a := range out.allocations {
		if a.ID == added.ID {
			added = a
		}
	}
	return out, added, nil
}

// RemoveMember elimina la asignación y reparte el total entre los miembros restantes.
// Si no queda ninguno, la categoría conserva su total sin asignaciones.
func (p Pool) RemoveMember(allocationID string) (Pool, error) {
	idx := p.indexOf(allocationID)
	if idx < 0 {
		return p, domain.ErrNotFound
	}
	category := p.allocations[idx].Category
	out := p.clone()
	out.allocations = append(out.allocations[:idx], out.allocations[idx+1:]...)
	out.split(category)
	return out, nil
}

// UpdateMemberAmount fija a mano el monto de una asignación, sin reequilibrar a los demás.
// La suma de la categoría solo se verifica en Validate.
func (p Pool) UpdateMemberAmount(allocationID string, amount decimal.Decimal) (Pool, error) {
	idx := p.indexOf(allocationID)
	if idx < 0 {
		return p, domain.ErrNotFound
	}
	if amount.IsNegative() {
		return p, &domain.InvalidNumericInputError{Field: "amount", Value: amount.String()}
	}
	out := p.clone()
	out.allocations[idx].Amount = money.Round(amount)
	return out, nil
}

// Retarget fija un nuevo total para la categoría y lo reparte en partes iguales,
// descartando los montos manuales. Llamarlo dos veces con el mismo total da el mismo resultado.
func (p Pool) Retarget(category Category, target decimal.Decimal) Pool {
	out := p.clone()
	out.targets[category] = money.Round(money.NonNegative(target))
	out.split(category)
	return out
}

// Validate verifica, antes de persistir, que cada categoría cuadre con su total:
// una categoría con total distinto de 0 necesita al menos un miembro y
// |Σmontos - total| <= money.Tolerance.
func (p Pool) Validate() error {
	var errs domain.ValidationErrors
	for _, c := range p.Categories() {
		target := p.Target(c)
		members := p.Members(c)
		if len(members) == 0 {
			if !target.IsZero() {
				errs = append(errs, &domain.MissingRequiredSelectionError{Field: "staff." + string(c)})
			}
			continue
		}
		sum := p.Sum(c)
		if !money.WithinTolerance(sum, target) {
			errs = append(errs, &domain.LaborAllocationMismatchError{Category: string(c), Target: target, Actual: sum})
		}
	}
	return errs.OrNil()
}

func (p Pool) indexOf(allocationID string) int {
	for i, a := range p.allocations {
		if a.ID == allocationID {
			return i
		}
	}
	return -1
}

// split reparte el total de la categoría en partes iguales trabajando en centavos:
// cada miembro recibe floor(total/n) y los centavos sobrantes van a los primeros miembros,
// así la suma es exacta y ningún monto queda negativo.
// Debe llamarse sobre un pool ya clonado.
func (p Pool) split(category Category) {
	var idx []int
	for i, a := range p.allocations {
		if a.Category == category {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return
	}
	cents := p.Target(category).Shift(money.Scale).IntPart()
	n := int64(len(idx))
	base, rem := cents/n, cents%n
	for k, i := range idx {
		share := base
		if int64(k) < rem {
			share++
		}
		p.allocations[i].Amount = decimal.New(share, -money.Scale)
	}
}
