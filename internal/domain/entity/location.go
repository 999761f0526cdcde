package entity

import "time"

// Location representa un patio o centro de acopio donde se almacena material.
type Location struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
