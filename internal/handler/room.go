package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/perryvale/hearth/internal/model"
	"github.com/perryvale/hearth/internal/store"
	"github.com/perryvale/hearth/internal/websocket"
)

var hexColorRegexp = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type RoomHandler struct {
	rooms *store.RoomStore
	hub   *websocket.Hub
}

func NewRoomHandler(s *store.RoomStore, hub *websocket.Hub) *RoomHandler {
	return &RoomHandler{rooms: s, hub: hub}
}

type roomRequest struct {
	HouseholdID int64  `json:"household_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ColorCode   string `json:"color_code"`
}

func (req *roomRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return "name is required"
	}
	if req.ColorCode == "" {
		req.ColorCode = "#3B82F6"
	}
	if !hexColorRegexp.MatchString(req.ColorCode) {
		return "color_code must be a #RRGGBB hex color"
	}
	return ""
}

func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req roomRequest
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

	room, err := h.rooms.Create(req.HouseholdID, req.Name, req.Description, req.ColorCode)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create room")
		return
	}

	h.hub.Publish(room.HouseholdID, websocket.NewRoomEvent(websocket.EventRoomCreated, *room))
	writeJSON(w, http.StatusCreated, room)
}

func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	householdID, err := parseHouseholdID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "household_id is required")
		return
	}

	rooms, err := h.rooms.ListByHousehold(householdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list rooms")
		return
	}
	if rooms == nil {
		rooms = []model.Room{}
	}
	writeJSON(w, http.StatusOK, rooms)
}

func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	room, err := h.rooms.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get room")
		return
	}
	if room == nil {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.rooms.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get room")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}

	var req roomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	room, err := h.rooms.Update(id, req.Name, req.Description, req.ColorCode)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update room")
		return
	}

	h.hub.Publish(room.HouseholdID, websocket.NewRoomEvent(websocket.EventRoomUpdated, *room))
	writeJSON(w, http.StatusOK, room)
}

func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.rooms.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get room")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "room not found")
		return
	}

	if err := h.rooms.Deactivate(id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete room")
		return
	}

	existing.IsActive = false
	h.hub.Publish(existing.HouseholdID, websocket.NewRoomEvent(websocket.EventRoomUpdated, *existing))
	w.WriteHeader(http.StatusNoContent)
}
