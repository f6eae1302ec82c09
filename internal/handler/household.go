package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/perryvale/hearth/internal/store"
)

type HouseholdHandler struct {
	households *store.HouseholdStore
}

func NewHouseholdHandler(s *store.HouseholdStore) *HouseholdHandler {
	return &HouseholdHandler{households: s}
}

func (h *HouseholdHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	house, err := h.households.Create(req.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create household")
		return
	}
	writeJSON(w, http.StatusCreated, house)
}

func (h *HouseholdHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	house, err := h.households.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get household")
		return
	}
	if house == nil {
		writeError(w, http.StatusNotFound, "household not found")
		return
	}
	writeJSON(w, http.StatusOK, house)
}
