// Package respond concentra la escritura de respuestas JSON. Antes cada módulo
// tenía su writeJSON; con animals, species y users se extrajo acá.
package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"animal-registry/internal/domain/apperr"
	"animal-registry/internal/platform/logger"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type errorBody struct {
	Detail any `json:"detail"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Detail escribe {"detail": msg} con el status indicado.
func Detail(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Detail: msg})
}

// StatusFor traduce un error de dominio a status HTTP.
func StatusFor(err error) int {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error escribe err y devuelve el status usado. Los 500 no exponen el mensaje.
func Error(w http.ResponseWriter, err error) int {
	status := StatusFor(err)

	var verrs validation.Errors
	switch {
	case status == http.StatusInternalServerError:
		Detail(w, status, "internal error")
	case errors.As(err, &verrs):
		JSON(w, status, errorBody{Detail: verrs})
	default:
		Detail(w, status, err.Error())
	}
	return status
}

// Fail escribe err y, si terminó en 500, lo registra con el logger del módulo.
func Fail(w http.ResponseWriter, log logger.Logger, err error) {
	if Error(w, err) == http.StatusInternalServerError && log != nil {
		log.Error("request failed", map[string]any{"error": err.Error()})
	}
}
