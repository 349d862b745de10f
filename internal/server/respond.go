package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"mindverse/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeFieldError(w http.ResponseWriter, status int, message, field string) {
	writeJSON(w, status, errorResponse{Error: message, Field: field})
}

// writeCoreError maps engine errors onto HTTP statuses: misuse is the
// client's fault, missing documents are 404, adapter failures are upstream
// errors.
func writeCoreError(w http.ResponseWriter, err error) {
	var embErr *domain.EmbeddingError
	var ansErr *domain.AnswerError

	switch {
	case errors.Is(err, domain.ErrDocumentNotFound):
		writeError(w, http.StatusNotFound, "document not found, please upload it first")
	case errors.Is(err, domain.ErrInvalidConfiguration):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &embErr), errors.As(err, &ansErr):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
