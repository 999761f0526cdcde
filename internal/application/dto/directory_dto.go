package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMaterialRequest entrada para crear un material.
type CreateMaterialRequest struct {
	Code        string          `json:"code" validate:"required,min=1,max=50"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	UnitMeasure string          `json:"unit_measure" validate:"required"`
	DefaultRate decimal.Decimal `json:"default_rate"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	UnitMeasure string          `json:"unit_measure"`
	DefaultRate decimal.Decimal `json:"default_rate"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreatePartyRequest entrada para crear un comprador, receptor o agente.
type CreatePartyRequest struct {
	Name           string           `json:"name" validate:"required,min=1,max=200"`
	Role           string           `json:"role" validate:"required,oneof=buyer recipient agent"`
	Phone          string           `json:"phone"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
}

// PartyResponse salida de un tercero.
type PartyResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Role           string           `json:"role"`
	Phone          string           `json:"phone,omitempty"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// CreateStaffRequest entrada para registrar un trabajador.
type CreateStaffRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=200"`
	Phone string `json:"phone"`
}

// StaffResponse salida de un trabajador.
type StaffResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// MaterialListResponse lista paginada de materiales.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// PartyListResponse lista paginada de terceros.
type PartyListResponse struct {
	Items []PartyResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// UpdateStaffRequest entrada para actualizar un trabajador (p. ej. desactivarlo).
type UpdateStaffRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=200"`
	Phone  *string `json:"phone"`
	Status *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// StaffListResponse lista paginada de personal.
type StaffListResponse struct {
	Items []StaffResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
