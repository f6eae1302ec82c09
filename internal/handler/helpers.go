// Package handler holds the JSON API handlers. Handlers stay thin: they
// decode, call a store or the chore service, map domain errors to HTTP
// statuses and encode the result.
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/perryvale/hearth/internal/chore"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps a chore.Error kind to an HTTP status. Anything
// without a kind is a server fault.
func writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch chore.Kind(err) {
	case chore.KindNotFound:
		status = http.StatusNotFound
	case chore.KindConflict, chore.KindInvalidState:
		status = http.StatusConflict
	case chore.KindValidation:
		status = http.StatusBadRequest
	}
	writeError(w, status, err.Error())
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// parseHouseholdID reads the household_id query parameter used by the
// list endpoints.
func parseHouseholdID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.URL.Query().Get("household_id"), 10, 64)
}

func isDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
