package handler

import (
	"encoding/json"
	"net/http"

	"github.com/perryvale/hearth/internal/chore"
	"github.com/perryvale/hearth/internal/model"
)

type CompletionHandler struct {
	svc *chore.Service
}

func NewCompletionHandler(svc *chore.Service) *CompletionHandler {
	return &CompletionHandler{svc: svc}
}

// Confirm resolves a single pending completion. confirmed=false rejects it.
func (h *CompletionHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		Confirmed  bool  `json:"confirmed"`
		ApproverID int64 `json:"approver_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.ApproverID == 0 {
		writeError(w, http.StatusBadRequest, "approver_id is required")
		return
	}

	var completion *model.Completion
	if req.Confirmed {
		completion, err = h.svc.Confirm(id, req.ApproverID)
	} else {
		completion, err = h.svc.Reject(id, req.ApproverID)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, completion)
}

// BatchConfirm resolves several completions in one call. Failures are
// reported per item; the call itself succeeds as long as the request is
// well formed.
func (h *CompletionHandler) BatchConfirm(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CompletionIDs []int64 `json:"completion_ids"`
		Confirmed     bool    `json:"confirmed"`
		ApproverID    int64   `json:"approver_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if len(req.CompletionIDs) == 0 {
		writeError(w, http.StatusBadRequest, "completion_ids is required")
		return
	}
	if req.ApproverID == 0 {
		writeError(w, http.StatusBadRequest, "approver_id is required")
		return
	}

	result := h.svc.BatchResolve(req.CompletionIDs, req.Confirmed, req.ApproverID)
	writeJSON(w, http.StatusOK, result)
}

// Pending lists the household's completions awaiting parent review.
func (h *CompletionHandler) Pending(w http.ResponseWriter, r *http.Request) {
	householdID, err := parseHouseholdID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "household_id is required")
		return
	}

	completions, err := h.svc.PendingCompletions(householdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list pending completions")
		return
	}
	if completions == nil {
		completions = []model.Completion{}
	}
	writeJSON(w, http.StatusOK, completions)
}
