// Package httpapi exposes the HTTP API layer of the service.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/matiasrv/tienda-api/internal/model"
	"github.com/matiasrv/tienda-api/internal/obs"
)

// successResponse is the happy-path envelope. Data is always present so list
// endpoints return data:[] rather than omitting the field.
type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data"`
}

// errorResponse is the failure envelope: {success:false, error[, detalles]}.
type errorResponse struct {
	Success  bool               `json:"success"`
	Error    string             `json:"error"`
	Detalles []model.FieldIssue `json:"detalles,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteData writes a success envelope.
func WriteData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successResponse{Success: true, Data: data})
}

// WriteCreated writes a success envelope with a confirmation message.
func WriteCreated(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, successResponse{Success: true, Message: message, Data: data})
}

// WriteError writes a failure envelope.
func WriteError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Error: message})
}

// WriteValidationError writes the 400 envelope with field-level details.
func WriteValidationError(w http.ResponseWriter, detalles []model.FieldIssue) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Success:  false,
		Error:    "Datos inválidos",
		Detalles: detalles,
	})
}

// WriteServiceError maps a service error onto the wire contract. Business
// errors become 400s with their own messages; anything else is a storage
// failure, logged server-side and reported with the endpoint's generic
// message.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error, storageMsg string) {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		WriteValidationError(w, ve.Issues)
		return
	}
	switch {
	case errors.Is(err, model.ErrDuplicateEmail):
		WriteError(w, http.StatusBadRequest, "Este email ya está registrado")
	case errors.Is(err, model.ErrCustomerNotFound):
		WriteError(w, http.StatusBadRequest, "Cliente no encontrado")
	case errors.Is(err, model.ErrProductNotFound):
		WriteError(w, http.StatusBadRequest, "Producto no encontrado")
	case errors.Is(err, model.ErrInsufficientStock):
		WriteError(w, http.StatusBadRequest, "Stock insuficiente")
	default:
		obs.Logger.Error("storage_error",
			"error", err,
			"path", r.URL.Path,
			"request_id", RequestIDFromContext(r.Context()),
		)
		WriteError(w, http.StatusInternalServerError, storageMsg)
	}
}
