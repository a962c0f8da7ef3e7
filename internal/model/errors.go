package model

import (
	"errors"
	"fmt"
)

// Business errors surfaced to the client as 400 responses.
var (
	ErrCustomerNotFound  = errors.New("cliente no encontrado")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrDuplicateEmail    = errors.New("este email ya está registrado")
)

// FieldIssue is a single field-level validation failure.
type FieldIssue struct {
	Campo   string `json:"campo"`
	Mensaje string `json:"mensaje"`
}

// ValidationError carries the field-level issues of a rejected input.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("datos inválidos (%d problemas)", len(e.Issues))
}

// StorageError wraps a storage-layer failure. Callers see a generic error;
// the driver detail stays server-side for logging.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
