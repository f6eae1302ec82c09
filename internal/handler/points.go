package handler

import (
	"net/http"

	"github.com/perryvale/hearth/internal/chore"
)

type PointsHandler struct {
	svc *chore.Service
}

func NewPointsHandler(svc *chore.Service) *PointsHandler {
	return &PointsHandler{svc: svc}
}

func (h *PointsHandler) WeeklyStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	status, err := h.svc.WeeklyStatus(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// Allowance calculates and persists the member's allowance for the month
// given as ?month=YYYY-MM.
func (h *PointsHandler) Allowance(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, http.StatusBadRequest, "month is required")
		return
	}

	calc, err := h.svc.CalculateAllowance(id, month)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calc)
}
