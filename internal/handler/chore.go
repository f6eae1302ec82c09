package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/perryvale/hearth/internal/chore"
	"github.com/perryvale/hearth/internal/model"
	"github.com/perryvale/hearth/internal/store"
	"github.com/perryvale/hearth/internal/websocket"
)

type ChoreHandler struct {
	svc    *chore.Service
	chores *store.ChoreStore
	rooms  *store.RoomStore
	hub    *websocket.Hub
}

func NewChoreHandler(svc *chore.Service, cs *store.ChoreStore, rs *store.RoomStore, hub *websocket.Hub) *ChoreHandler {
	return &ChoreHandler{svc: svc, chores: cs, rooms: rs, hub: hub}
}

type choreRequest struct {
	HouseholdID int64           `json:"household_id"`
	RoomID      int64           `json:"room_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Points      int             `json:"points"`
	Frequency   model.Frequency `json:"frequency"`
}

func (req *choreRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	if req.Points <= 0 {
		return "points must be positive"
	}
	if !req.Frequency.Valid() {
		return "frequency must be daily, weekly or monthly"
	}
	return ""
}

// checkRoom verifies the room exists and belongs to the given household.
func (h *ChoreHandler) checkRoom(roomID, householdID int64) (string, error) {
	room, err := h.rooms.GetByID(roomID)
	if err != nil {
		return "", err
	}
	if room == nil {
		return "room not found", nil
	}
	if room.HouseholdID != householdID {
		return "room belongs to a different household", nil
	}
	return "", nil
}

func (h *ChoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.HouseholdID == 0 {
		writeError(w, http.StatusBadRequest, "household_id is required")
		return
	}

	msg, err := h.checkRoom(req.RoomID, req.HouseholdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check room")
		return
	}
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	c, err := h.chores.Create(req.HouseholdID, req.RoomID, req.Name, req.Description, req.Points, req.Frequency)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create chore")
		return
	}

	h.hub.Publish(c.HouseholdID, websocket.NewChoreEvent(websocket.EventChoreCreated, *c))
	writeJSON(w, http.StatusCreated, c)
}

// List returns the household's chores with their derived display status.
func (h *ChoreHandler) List(w http.ResponseWriter, r *http.Request) {
	householdID, err := parseHouseholdID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "household_id is required")
		return
	}

	chores, err := h.svc.ChoresWithStatus(householdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list chores")
		return
	}
	if chores == nil {
		chores = []chore.ChoreWithStatus{}
	}
	writeJSON(w, http.StatusOK, chores)
}

func (h *ChoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	c, err := h.chores.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get chore")
		return
	}
	if c == nil {
		writeError(w, http.StatusNotFound, "chore not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ChoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.chores.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get chore")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "chore not found")
		return
	}

	var req choreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	msg, err := h.checkRoom(req.RoomID, existing.HouseholdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to check room")
		return
	}
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	c, err := h.chores.Update(id, req.RoomID, req.Name, req.Description, req.Points, req.Frequency)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update chore")
		return
	}

	h.hub.Publish(c.HouseholdID, websocket.NewChoreEvent(websocket.EventChoreUpdated, *c))
	writeJSON(w, http.StatusOK, c)
}

func (h *ChoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.chores.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get chore")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "chore not found")
		return
	}

	if err := h.chores.Deactivate(id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete chore")
		return
	}

	existing.IsActive = false
	h.hub.Publish(existing.HouseholdID, websocket.NewChoreEvent(websocket.EventChoreUpdated, *existing))
	w.WriteHeader(http.StatusNoContent)
}

// Complete records a pending completion for the chore. The service emits
// the chore_completed event itself.
func (h *ChoreHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		MemberID int64 `json:"member_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.MemberID == 0 {
		writeError(w, http.StatusBadRequest, "member_id is required")
		return
	}

	completion, err := h.svc.Complete(id, req.MemberID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, completion)
}
