package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Reciclaje-api/internal/application/ports"
	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
)

func TestRun_RollbackRestauraLaFoto(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.Run(ctx, func(ctx context.Context, repos ports.TxRepos) error {
		require.NoError(t, repos.Records.Upsert(ctx, &entity.InventoryRecord{
			CompanyID: "empresa-1", LocationID: "patio-1", MaterialID: "mat-pet", Quantity: decimal.NewFromInt(10),
		}))
		return errors.New("falla")
	})
	require.Error(t, err)

	rec, err := s.Records().Get(ctx, "empresa-1", "patio-1", "mat-pet")
	require.NoError(t, err)
	assert.True(t, rec.Quantity.IsZero())
}

func TestRun_EscrituraDeCatalogoSobreviveAlRollback(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	done := make(chan error, 1)

	err := s.Run(ctx, func(ctx context.Context, _ ports.TxRepos) error {
		go func() {
			done <- s.Locations().Create(context.Background(), &entity.Location{ID: "patio-2", CompanyID: "empresa-1", Name: "Patio 2"})
		}()
		// Sin el bloqueo de transacción la escritura entraría antes del rollback.
		time.Sleep(20 * time.Millisecond)
		return errors.New("falla")
	})
	require.Error(t, err)
	require.NoError(t, <-done)

	loc, err := s.Locations().GetByID(ctx, "empresa-1", "patio-2")
	require.NoError(t, err)
	require.NotNil(t, loc)
	assert.Equal(t, "Patio 2", loc.Name)
}
