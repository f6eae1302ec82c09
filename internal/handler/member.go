package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/perryvale/hearth/internal/model"
	"github.com/perryvale/hearth/internal/store"
	"github.com/perryvale/hearth/internal/websocket"
)

type MemberHandler struct {
	members *store.MemberStore
	hub     *websocket.Hub
}

func NewMemberHandler(s *store.MemberStore, hub *websocket.Hub) *MemberHandler {
	return &MemberHandler{members: s, hub: hub}
}

type memberRequest struct {
	HouseholdID int64  `json:"household_id"`
	Name        string `json:"name"`
	BirthDate   string `json:"birth_date"`
	IsParent    bool   `json:"is_parent"`
}

func (req *memberRequest) validate() (time.Time, string) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return time.Time{}, "name is required"
	}
	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return time.Time{}, "birth_date must be YYYY-MM-DD"
	}
	return birthDate, ""
}

// memberResponse decorates a member with its derived age category so
// clients never recompute the allowance tier.
type memberResponse struct {
	model.Member
	AgeCategory model.AgeCategory `json:"age_category"`
}

func toResponse(m model.Member) memberResponse {
	return memberResponse{Member: m, AgeCategory: m.Category(time.Now())}
}

func (h *MemberHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	birthDate, msg := req.validate()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.HouseholdID == 0 {
		writeError(w, http.StatusBadRequest, "household_id is required")
		return
	}

	member, err := h.members.Create(req.HouseholdID, req.Name, birthDate, req.IsParent)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create member")
		return
	}

	h.hub.Publish(member.HouseholdID, websocket.NewMemberEvent(websocket.EventMemberCreated, *member))
	writeJSON(w, http.StatusCreated, toResponse(*member))
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	householdID, err := parseHouseholdID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "household_id is required")
		return
	}

	members, err := h.members.ListByHousehold(householdID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}

	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toResponse(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	member, err := h.members.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get member")
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}
	writeJSON(w, http.StatusOK, toResponse(*member))
}

func (h *MemberHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.members.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get member")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}

	var req memberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	birthDate, msg := req.validate()
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	member, err := h.members.Update(id, req.Name, birthDate, req.IsParent)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to update member")
		return
	}

	h.hub.Publish(member.HouseholdID, websocket.NewMemberEvent(websocket.EventMemberUpdated, *member))
	writeJSON(w, http.StatusOK, toResponse(*member))
}

func (h *MemberHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existing, err := h.members.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get member")
		return
	}
	if existing == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}

	if err := h.members.Deactivate(id); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete member")
		return
	}

	existing.IsActive = false
	h.hub.Publish(existing.HouseholdID, websocket.NewMemberEvent(websocket.EventMemberUpdated, *existing))
	w.WriteHeader(http.StatusNoContent)
}

// SetPIN sets or clears a parent approval PIN. A four digit PIN is
// bcrypt-hashed before storage; an empty PIN clears it.
func (h *MemberHandler) SetPIN(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	member, err := h.members.GetByID(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get member")
		return
	}
	if member == nil {
		writeError(w, http.StatusNotFound, "member not found")
		return
	}

	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.PIN == "" {
		if err := h.members.SetPINHash(id, ""); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to clear PIN")
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"has_pin": false})
		return
	}

	if len(req.PIN) != 4 || !isDigits(req.PIN) {
		writeError(w, http.StatusBadRequest, "pin must be exactly 4 digits")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.PIN), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to hash PIN")
		return
	}
	if err := h.members.SetPINHash(id, string(hash)); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to set PIN")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"has_pin": true})
}

func (h *MemberHandler) VerifyPIN(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req struct {
		PIN string `json:"pin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	hash, err := h.members.GetPINHash(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to verify PIN")
		return
	}
	if hash == "" {
		writeError(w, http.StatusNotFound, "member has no PIN")
		return
	}

	valid := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.PIN)) == nil
	writeJSON(w, http.StatusOK, map[string]bool{"valid": valid})
}
