package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/perryvale/hearth/internal/database"
	"github.com/perryvale/hearth/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

type seeded struct {
	house  *model.Household
	member *model.Member
	room   *model.Room
	chore  *model.Chore
}

// seed creates a household with one member, one room and one chore.
func seed(t *testing.T, db *sql.DB) seeded {
	t.Helper()

	house, err := NewHouseholdStore(db).Create("Testers")
	if err != nil {
		t.Fatalf("seed household: %v", err)
	}
	member, err := NewMemberStore(db).Create(house.ID, "Riley", time.Date(2012, 1, 15, 0, 0, 0, 0, time.UTC), false)
	if err != nil {
		t.Fatalf("seed member: %v", err)
	}
	room, err := NewRoomStore(db).Create(house.ID, "Kitchen", "", "#3B82F6")
	if err != nil {
		t.Fatalf("seed room: %v", err)
	}
	chore, err := NewChoreStore(db).Create(house.ID, room.ID, "Dishes", "", 5, model.FrequencyDaily)
	if err != nil {
		t.Fatalf("seed chore: %v", err)
	}
	return seeded{house: house, member: member, room: room, chore: chore}
}
