package websocket

import "github.com/perryvale/hearth/internal/model"

// EventType tags the closed set of live events a household subscriber can
// receive. Anything else on the wire is a bug.
type EventType string

const (
	EventChoreCompleted      EventType = "chore_completed"
	EventCompletionConfirmed EventType = "completion_confirmed"
	EventCompletionRejected  EventType = "completion_rejected"
	EventChoreCreated        EventType = "chore_created"
	EventChoreUpdated        EventType = "chore_updated"
	EventRoomCreated         EventType = "room_created"
	EventRoomUpdated         EventType = "room_updated"
	EventMemberCreated       EventType = "member_created"
	EventMemberUpdated       EventType = "member_updated"
)

// Event is the envelope delivered to subscribers. Data carries only the
// changed entity (or a CompletionEvent), never a full snapshot: clients
// re-fetch state on reconnect instead of relying on replay.
type Event struct {
	Type EventType `json:"event_type"`
	Data any       `json:"data"`
}

// CompletionEvent is the payload for the three completion lifecycle events.
type CompletionEvent struct {
	CompletionID int64                  `json:"completion_id"`
	ChoreID      int64                  `json:"chore_id"`
	ChoreName    string                 `json:"chore_name"`
	MemberID     int64                  `json:"member_id"`
	MemberName   string                 `json:"member_name"`
	PointsEarned int                    `json:"points_earned"`
	Status       model.CompletionStatus `json:"status"`
	RoomName     string                 `json:"room_name,omitempty"`
}

// NewChoreEvent builds an entity event for chore create/update.
func NewChoreEvent(t EventType, c model.Chore) Event {
	return Event{Type: t, Data: c}
}

// NewRoomEvent builds an entity event for room create/update.
func NewRoomEvent(t EventType, r model.Room) Event {
	return Event{Type: t, Data: r}
}

// NewMemberEvent builds an entity event for member create/update.
func NewMemberEvent(t EventType, m model.Member) Event {
	return Event{Type: t, Data: m}
}
