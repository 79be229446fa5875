package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rentwise/accessgate/pkg/access"
)

// envelope is the body of every JSON response.
type envelope struct {
	Data  any          `json:"data,omitempty"`
	Error *errorDetail `json:"error,omitempty"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var (
	errInvalidOwnerID    = errors.New("owner id must be a uuid")
	errInvalidResourceID = errors.New("resource id must be a uuid")
)

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Data: data})
}

// writeError maps engine errors to statuses. Store failures are reported as
// 503 so clients deny the action instead of assuming it is allowed.
func writeError(w http.ResponseWriter, err error) {
	status, code := http.StatusInternalServerError, "internal_error"
	message := http.StatusText(status)

	switch {
	case errors.Is(err, errInvalidOwnerID), errors.Is(err, errInvalidResourceID):
		status, code, message = http.StatusBadRequest, "invalid_id", err.Error()
	case errors.Is(err, access.ErrInvalidResource):
		status, code, message = http.StatusBadRequest, "invalid_resource", "unsupported resource kind"
	case errors.Is(err, access.ErrStoreUnavailable):
		status, code, message = http.StatusServiceUnavailable, "store_unavailable", "access data is temporarily unavailable"
	}

	writeJSON(w, status, envelope{Error: &errorDetail{Code: code, Message: message}})
}
