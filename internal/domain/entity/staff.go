package entity

import "time"

// Estados del personal.
const (
	StaffStatusActive   = "active"
	StaffStatusInactive = "inactive"
)

// Staff representa un trabajador al que se le puede asignar mano de obra, segregación, embalaje o cargue.
type Staff struct {
	ID        string
	CompanyID string
	Name      string
	Phone     string
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el trabajador puede recibir asignaciones nuevas.
func (s *Staff) IsActive() bool {
	return s != nil && s.Status == StaffStatusActive
}
