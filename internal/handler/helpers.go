package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"planforge/internal/domain"
	"planforge/internal/domain/models/planning"
	"planforge/internal/httputil"
)

// statusFor maps a domain error to its HTTP status
func statusFor(err error) int {
	var httpErr domain.HTTPError

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.As(err, &httpErr):
		return httpErr.StatusCode()
	default:
		return http.StatusInternalServerError
	}
}

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		httputil.RespondError(w, status, "internal server error")
		return
	}
	httputil.RespondError(w, status, err.Error())
}

// HandleConflict answers a ConflictError with the current state of the
// resource and 409, so the client can merge and retry.
func HandleConflict[T any](w http.ResponseWriter, err error, fetchFn func() (*T, error)) {
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		current, fetchErr := fetchFn()
		if fetchErr != nil {
			handleError(w, fetchErr)
			return
		}
		httputil.RespondJSON(w, http.StatusConflict, current)
		return
	}

	handleError(w, err)
}

// pathID returns the named path value, which must be a UUID
func pathID(r *http.Request, name string) (string, error) {
	value := r.PathValue(name)
	if value == "" {
		return "", fmt.Errorf("%w: %s is required", domain.ErrValidation, name)
	}
	if _, err := uuid.Parse(value); err != nil {
		return "", fmt.Errorf("%w: %s must be a UUID", domain.ErrValidation, name)
	}
	return value, nil
}

// pathDocumentType returns the {type} path value as a document type
func pathDocumentType(r *http.Request) (planning.DocumentType, error) {
	docType, err := planning.ParseDocumentType(r.PathValue("type"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return docType, nil
}

// projectDocument reads the {id} and {type} path values
func projectDocument(r *http.Request) (string, planning.DocumentType, error) {
	projectID, err := pathID(r, "id")
	if err != nil {
		return "", "", err
	}
	docType, err := pathDocumentType(r)
	if err != nil {
		return "", "", err
	}
	return projectID, docType, nil
}
