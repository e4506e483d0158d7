package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"partybets/domain/entities"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string             `json:"error"`
	Kind  entities.ErrorKind `json:"kind"`
}

var errInvalidBody = entities.NewValidationError("invalid request body")

// statusForKind maps a domain error kind to an HTTP status code
func statusForKind(kind entities.ErrorKind) int {
	switch kind {
	case entities.ErrorKindValidation, entities.ErrorKindInvalidInput:
		return http.StatusBadRequest
	case entities.ErrorKindAuthorization:
		return http.StatusForbidden
	case entities.ErrorKindNotFound:
		return http.StatusNotFound
	case entities.ErrorKindState:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondWithJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

func respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	kind := entities.KindOf(err)
	status := statusForKind(kind)

	message := err.Error()
	var domainErr *entities.DomainError
	if errors.As(err, &domainErr) {
		message = domainErr.Message
	}

	if status == http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
			"error":  err,
		}).Error("Request failed")
		message = "internal server error"
	}

	respondWithJSON(w, status, ErrorResponse{Error: message, Kind: kind})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidBody
	}
	return nil
}

// int64Param reads a numeric chi URL parameter
func int64Param(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, entities.NewValidationError("invalid " + name)
	}
	return id, nil
}
