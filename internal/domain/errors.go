package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrStore        = errors.New("error del almacén de datos")
)

// ValidationError campo rechazado. errors.Is(err, ErrInvalidInput) es true.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError envuelve ErrInvalidInput indicando el campo rechazado.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// StoreError envuelve un error del almacén conservando la causa original.
func StoreError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}
