package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Sentinelas para los errores tipados de validación: permiten errors.Is
	// sin conocer el detalle que transporta cada uno.
	ErrInvalidNumericInput      = errors.New("valor numérico inválido")
	ErrInsufficientInventory    = errors.New("inventario insuficiente")
	ErrLaborAllocationMismatch  = errors.New("la distribución de mano de obra no cuadra con el total")
	ErrMissingRequiredSelection = errors.New("falta una selección obligatoria")
)

// InvalidNumericInputError cantidad o tarifa ausente, no numérica, negativa o con más
// decimales de los que se guardan.
type InvalidNumericInputError struct {
	Field  string
	Value  string
	Reason string // opcional
}

func (e *InvalidNumericInputError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: valor numérico inválido %q (%s)", e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s: valor numérico inválido %q", e.Field, e.Value)
}

func (e *InvalidNumericInputError) Unwrap() error { return ErrInvalidNumericInput }

// InsufficientInventoryError una salida (REMOVE/LOSS) dejaría el stock en negativo.
type InsufficientInventoryError struct {
	Current   decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("inventario insuficiente: disponible %s, solicitado %s",
		e.Current.StringFixed(2), e.Requested.StringFixed(2))
}

func (e *InsufficientInventoryError) Unwrap() error { return ErrInsufficientInventory }

// LaborAllocationMismatchError la suma de una categoría no coincide con su total.
type LaborAllocationMismatchError struct {
	Category string
	Target   decimal.Decimal
	Actual   decimal.Decimal
}

func (e *LaborAllocationMismatchError) Error() string {
	return fmt.Sprintf("categoría %s: total %s, distribuido %s",
		e.Category, e.Target.StringFixed(2), e.Actual.StringFixed(2))
}

func (e *LaborAllocationMismatchError) Unwrap() error { return ErrLaborAllocationMismatch }

// MissingRequiredSelectionError referencia obligatoria ausente (personal, comprador, material...).
type MissingRequiredSelectionError struct {
	Field string
}

func (e *MissingRequiredSelectionError) Error() string {
	return fmt.Sprintf("%s es obligatorio", e.Field)
}

func (e *MissingRequiredSelectionError) Unwrap() error { return ErrMissingRequiredSelection }

// UnknownReferenceError la referencia seleccionada no existe en el directorio de la empresa
// (material, ubicación, tercero o trabajador).
type UnknownReferenceError struct {
	Field string
	ID    string
}

func (e *UnknownReferenceError) Error() string {
	return fmt.Sprintf("%s: %q no existe", e.Field, e.ID)
}

func (e *UnknownReferenceError) Unwrap() error { return ErrNotFound }

// ValidationErrors agrupa todos los errores de validación de un envío.
// Se devuelve completo para que el formulario marque todos los campos a la vez.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, err := range v {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Unwrap expone los errores individuales a errors.Is / errors.As.
func (v ValidationErrors) Unwrap() []error { return v }

// OrNil devuelve nil si no hay errores acumulados.
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}
