package inventory

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/shopspring/decimal"
)

// AdjustmentType tipo de ajuste de inventario.
type AdjustmentType string

// Tipos de ajuste.
const (
	AdjustmentCount  AdjustmentType = "COUNT"  // conteo físico: la cantidad ingresada es el nuevo stock
	AdjustmentAdd    AdjustmentType = "ADD"    // entrada
	AdjustmentRemove AdjustmentType = "REMOVE" // salida
	AdjustmentLoss   AdjustmentType = "LOSS"   // merma
)

// ParseAdjustmentType valida el tipo recibido (sin distinguir mayúsculas).
func ParseAdjustmentType(s string) (AdjustmentType, error) {
	switch t := AdjustmentType(strings.ToUpper(strings.TrimSpace(s))); t {
	case AdjustmentCount, AdjustmentAdd, AdjustmentRemove, AdjustmentLoss:
		return t, nil
	}
	return "", fmt.Errorf("%w: tipo de ajuste desconocido %q", domain.ErrInvalidInput, s)
}

// Decrements indica si el tipo descuenta stock.
func (t AdjustmentType) Decrements() bool {
	return t == AdjustmentRemove || t == AdjustmentLoss
}

// ValidateAdjustment prevalidación obligatoria antes de aplicar un ajuste:
//   - amount > 0 para ADD/REMOVE/LOSS; COUNT admite 0 para dejar el registro en cero.
//   - REMOVE/LOSS con amount > current falla con InsufficientInventoryError.
func ValidateAdjustment(current decimal.Decimal, t AdjustmentType, amount decimal.Decimal) error {
	if _, err := ParseAdjustmentType(string(t)); err != nil {
		return err
	}
	if t == AdjustmentCount {
		if amount.IsNegative() {
			return &domain.InvalidNumericInputError{Field: "quantity", Value: amount.String()}
		}
		return nil
	}
	if !amount.IsPositive() {
		return &domain.InvalidNumericInputError{Field: "quantity", Value: amount.String()}
	}
	if t.Decrements() && amount.GreaterThan(current) {
		return &domain.InsufficientInventoryError{Current: current, Requested: amount}
	}
	return nil
}

// Apply valida y calcula el nuevo stock. Es la entrada normal del motor.
func Apply(current decimal.Decimal, t AdjustmentType, amount decimal.Decimal) (decimal.Decimal, error) {
	if err := ValidateAdjustment(current, t, amount); err != nil {
		return current, err
	}
	return ApplyUnchecked(current, t, amount), nil
}

// ApplyUnchecked calcula el nuevo stock sin prevalidar.
// El piso en 0 de REMOVE/LOSS es solo una red para cuando se omite ValidateAdjustment.
func ApplyUnchecked(current decimal.Decimal, t AdjustmentType, amount decimal.Decimal) decimal.Decimal {
	switch t {
	case AdjustmentCount:
		return amount
	case AdjustmentAdd:
		return current.Add(amount)
	case AdjustmentRemove, AdjustmentLoss:
		next := current.Sub(amount)
		if next.IsNegative() {
			return decimal.Zero
		}
		return next
	}
	return current
}
