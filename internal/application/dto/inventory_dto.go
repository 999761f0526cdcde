package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustInventoryRequest body para POST /api/inventory/adjustments.
type AdjustInventoryRequest struct {
	LocationID     string       `json:"location_id" validate:"required"`
	MaterialID     string       `json:"material_id" validate:"required"`
	AdjustmentType string       `json:"adjustment_type" validate:"required"`
	Quantity       NumericInput `json:"quantity"`
	Reason         string       `json:"reason" validate:"required,max=255"`
	Notes          string       `json:"notes,omitempty" validate:"max=1000"`
	AdjustmentDate *time.Time   `json:"adjustment_date,omitempty"`
}

// AdjustmentResponse registro del libro de ajustes.
type AdjustmentResponse struct {
	ID             string          `json:"id"`
	LocationID     string          `json:"location_id"`
	MaterialID     string          `json:"material_id"`
	AdjustmentType string          `json:"adjustment_type"`
	Quantity       decimal.Decimal `json:"quantity"`
	PreviousQty    decimal.Decimal `json:"previous_qty"`
	NewQty         decimal.Decimal `json:"new_qty"`
	Reason         string          `json:"reason"`
	Notes          string          `json:"notes,omitempty"`
	EntryID        string          `json:"entry_id,omitempty"`
	AdjustmentDate time.Time       `json:"adjustment_date"`
	CreatedBy      string          `json:"created_by,omitempty"`
}

// AdjustmentListResponse lista paginada del libro de ajustes.
type AdjustmentListResponse struct {
	Items []AdjustmentResponse `json:"items"`
	Page  PageResponse         `json:"page"`
}

// InventoryRecordResponse stock actual de un material en una ubicación.
type InventoryRecordResponse struct {
	LocationID string          `json:"location_id"`
	MaterialID string          `json:"material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// InventoryRecordListResponse lista paginada de stock.
type InventoryRecordListResponse struct {
	Items []InventoryRecordResponse `json:"items"`
	Page  PageResponse              `json:"page"`
}
