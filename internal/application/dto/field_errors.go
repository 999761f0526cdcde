package dto

import (
	"errors"

	"github.com/jhoicas/Reciclaje-api/internal/domain"
)

// Códigos de error por campo.
const (
	CodeInvalidNumeric     = "INVALID_NUMERIC_INPUT"
	CodeMissingSelection   = "MISSING_REQUIRED_SELECTION"
	CodeAllocationMismatch = "LABOR_ALLOCATION_MISMATCH"
	CodeInsufficientStock  = "INSUFFICIENT_INVENTORY"
	CodeUnknownReference   = "UNKNOWN_REFERENCE"
	CodeDuplicate          = "DUPLICATE"
	CodeInvalidInput       = "INVALID_INPUT"
)

// FieldErrors aplana un error de dominio (o un domain.ValidationErrors anidado) en errores por campo.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	var verrs domain.ValidationErrors
	if errors.As(err, &verrs) {
		var out []FieldError
		for _, e := range verrs {
			out = append(out, FieldErrors(e)...)
		}
		return out
	}
	return []FieldError{fieldError(err)}
}

func fieldError(err error) FieldError {
	var (
		num      *domain.InvalidNumericInputError
		missing  *domain.MissingRequiredSelectionError
		mismatch *domain.LaborAllocationMismatchError
		stock    *domain.InsufficientInventoryError
		unknown  *domain.UnknownReferenceError
	)
	switch {
	case errors.As(err, &num):
		return FieldError{Field: num.Field, Code: CodeInvalidNumeric, Message: err.Error()}
	case errors.As(err, &missing):
		return FieldError{Field: missing.Field, Code: CodeMissingSelection, Message: err.Error()}
	case errors.As(err, &mismatch):
		return FieldError{Field: "allocations." + mismatch.Category, Code: CodeAllocationMismatch, Message: err.Error()}
	case errors.As(err, &stock):
		return FieldError{Field: "quantity", Code: CodeInsufficientStock, Message: err.Error()}
	case errors.As(err, &unknown):
		return FieldError{Field: unknown.Field, Code: CodeUnknownReference, Message: err.Error()}
	case errors.Is(err, domain.ErrDuplicate):
		return FieldError{Code: CodeDuplicate, Message: err.Error()}
	}
	return FieldError{Code: CodeInvalidInput, Message: err.Error()}
}
