package ports

import (
	"context"

	"github.com/jhoicas/Reciclaje-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Entries     repository.EntryRepository
	Allocations repository.AllocationRepository
	Records     repository.InventoryRecordRepository
	Adjustments repository.InventoryAdjustmentRepository
}

// TxRunner ejecuta fn dentro de una transacción: Commit si fn devuelve nil, Rollback si no.
// Garantiza que una entrada, sus asignaciones y su movimiento de inventario se guarden como una unidad.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}
