package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/perryvale/hearth/internal/chore"
	"github.com/perryvale/hearth/internal/database"
	"github.com/perryvale/hearth/internal/model"
	"github.com/perryvale/hearth/internal/store"
	"github.com/perryvale/hearth/internal/websocket"
)

type testEnv struct {
	choreH      *ChoreHandler
	completionH *CompletionHandler
	memberH     *MemberHandler
	house       *model.Household
	parent      *model.Member
	kid         *model.Member
	chore       *model.Chore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	hub := websocket.NewHub(slog.Default())
	svc := chore.NewService(db, hub, slog.Default())

	house, err := store.NewHouseholdStore(db).Create("Testers")
	if err != nil {
		t.Fatalf("create household: %v", err)
	}
	members := store.NewMemberStore(db)
	parent, err := members.Create(house.ID, "Dana", time.Date(1988, 6, 1, 0, 0, 0, 0, time.UTC), true)
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	kid, err := members.Create(house.ID, "Riley", time.Date(2014, 4, 2, 0, 0, 0, 0, time.UTC), false)
	if err != nil {
		t.Fatalf("create kid: %v", err)
	}
	rooms := store.NewRoomStore(db)
	room, err := rooms.Create(house.ID, "Kitchen", "", "#3B82F6")
	if err != nil {
		t.Fatalf("create room: %v", err)
	}
	chores := store.NewChoreStore(db)
	c, err := chores.Create(house.ID, room.ID, "Dishes", "", 5, model.FrequencyDaily)
	if err != nil {
		t.Fatalf("create chore: %v", err)
	}

	return &testEnv{
		choreH:      NewChoreHandler(svc, chores, rooms, hub),
		completionH: NewCompletionHandler(svc),
		memberH:     NewMemberHandler(members, hub),
		house:       house,
		parent:      parent,
		kid:         kid,
		chore:       c,
	}
}

func postJSON(t *testing.T, h http.HandlerFunc, path, id, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	if id != "" {
		req.SetPathValue("id", id)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func TestCompleteEndpoint(t *testing.T) {
	env := newTestEnv(t)

	body := fmt.Sprintf(`{"member_id": %d}`, env.kid.ID)
	rec := postJSON(t, env.choreH.Complete, "/api/chores/1/complete", fmt.Sprint(env.chore.ID), body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (body: %s)", rec.Code, rec.Body.String())
	}

	var completion model.Completion
	if err := json.NewDecoder(rec.Body).Decode(&completion); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if completion.Status != model.CompletionPending {
		t.Errorf("status = %q, want pending", completion.Status)
	}
	if completion.PointsEarned != 5 {
		t.Errorf("points_earned = %d, want 5", completion.PointsEarned)
	}
}

func TestCompleteEndpointErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		id   string
		body string
		want int
	}{
		{"unknown chore", "9999", fmt.Sprintf(`{"member_id": %d}`, env.kid.ID), http.StatusNotFound},
		{"missing member", fmt.Sprint(env.chore.ID), `{}`, http.StatusBadRequest},
		{"bad json", fmt.Sprint(env.chore.ID), `{`, http.StatusBadRequest},
		{"bad id", "abc", `{"member_id": 1}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, env.choreH.Complete, "/api/chores/x/complete", tt.id, tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestCompleteEndpointConflict(t *testing.T) {
	env := newTestEnv(t)

	body := fmt.Sprintf(`{"member_id": %d}`, env.kid.ID)
	id := fmt.Sprint(env.chore.ID)
	if rec := postJSON(t, env.choreH.Complete, "/x", id, body); rec.Code != http.StatusCreated {
		t.Fatalf("first complete: status = %d", rec.Code)
	}
	// A second claim while the first is pending maps to 409.
	rec := postJSON(t, env.choreH.Complete, "/x", id, body)
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestConfirmEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := postJSON(t, env.choreH.Complete, "/x", fmt.Sprint(env.chore.ID),
		fmt.Sprintf(`{"member_id": %d}`, env.kid.ID))
	var completion model.Completion
	if err := json.NewDecoder(rec.Body).Decode(&completion); err != nil {
		t.Fatalf("decode completion: %v", err)
	}

	confirmBody := fmt.Sprintf(`{"confirmed": true, "approver_id": %d}`, env.parent.ID)
	rec = postJSON(t, env.completionH.Confirm, "/x", fmt.Sprint(completion.ID), confirmBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm: status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	var confirmed model.Completion
	if err := json.NewDecoder(rec.Body).Decode(&confirmed); err != nil {
		t.Fatalf("decode confirmed: %v", err)
	}
	if confirmed.Status != model.CompletionCompleted {
		t.Errorf("status = %q, want completed", confirmed.Status)
	}

	// Confirming again is no longer pending: 409.
	rec = postJSON(t, env.completionH.Confirm, "/x", fmt.Sprint(completion.ID), confirmBody)
	if rec.Code != http.StatusConflict {
		t.Errorf("second confirm: status = %d, want 409", rec.Code)
	}

	// A non-parent approver is a validation error: 400.
	kidBody := fmt.Sprintf(`{"confirmed": true, "approver_id": %d}`, env.kid.ID)
	rec = postJSON(t, env.completionH.Confirm, "/x", fmt.Sprint(completion.ID), kidBody)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("kid approver: status = %d, want 400", rec.Code)
	}
}

func TestBatchConfirmEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := postJSON(t, env.choreH.Complete, "/x", fmt.Sprint(env.chore.ID),
		fmt.Sprintf(`{"member_id": %d}`, env.kid.ID))
	var completion model.Completion
	if err := json.NewDecoder(rec.Body).Decode(&completion); err != nil {
		t.Fatalf("decode completion: %v", err)
	}

	body := fmt.Sprintf(`{"completion_ids": [%d, 9999], "confirmed": true, "approver_id": %d}`,
		completion.ID, env.parent.ID)
	rec = postJSON(t, env.completionH.BatchConfirm, "/api/completions/batch-confirm", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	var result chore.BatchResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.ProcessedCount != 2 || result.SuccessfulCount != 1 || result.FailedCount != 1 {
		t.Errorf("result = %d/%d/%d, want 2/1/1",
			result.ProcessedCount, result.SuccessfulCount, result.FailedCount)
	}
}

func TestSetAndVerifyPIN(t *testing.T) {
	env := newTestEnv(t)
	id := fmt.Sprint(env.parent.ID)

	rec := postJSON(t, env.memberH.SetPIN, "/x", id, `{"pin": "1234"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("set pin: status = %d (body: %s)", rec.Code, rec.Body.String())
	}

	rec = postJSON(t, env.memberH.VerifyPIN, "/x", id, `{"pin": "1234"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("verify pin: status = %d", rec.Code)
	}
	var resp map[string]bool
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp["valid"] {
		t.Error("correct PIN reported invalid")
	}

	rec = postJSON(t, env.memberH.VerifyPIN, "/x", id, `{"pin": "9999"}`)
	json.NewDecoder(rec.Body).Decode(&resp)
	if resp["valid"] {
		t.Error("wrong PIN reported valid")
	}

	// Non-digit PINs are rejected before hashing.
	rec = postJSON(t, env.memberH.SetPIN, "/x", id, `{"pin": "12ab"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad pin: status = %d, want 400", rec.Code)
	}
}
