package registry

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates an in-memory SQLite database with the registry schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Create registry tables matching the schema
	schema := `
		CREATE TABLE device_types (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);
		CREATE TABLE rooms (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);
		CREATE TABLE devices (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			device_type_id INTEGER NOT NULL REFERENCES device_types (id),
			name TEXT NOT NULL,
			pattern TEXT NOT NULL DEFAULT '[]',
			device_attributes TEXT,
			room_id INTEGER REFERENCES rooms (id),
			skill_id INTEGER
		);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// insertDeviceType inserts a device type row and returns its id.
func insertDeviceType(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()

	result, err := db.Exec("INSERT INTO device_types (name) VALUES (?)", name)
	if err != nil {
		t.Fatalf("inserting device type: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("device type id: %v", err)
	}
	return id
}

// insertRoom inserts a room row and returns its id.
func insertRoom(t *testing.T, db *sql.DB, name string) int64 {
	t.Helper()

	result, err := db.Exec("INSERT INTO rooms (name) VALUES (?)", name)
	if err != nil {
		t.Fatalf("inserting room: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("room id: %v", err)
	}
	return id
}

// insertDevice inserts a device row. roomID may be nil for roomless devices.
func insertDevice(t *testing.T, db *sql.DB, typeID int64, name, patternJSON string, attrsJSON *string, roomID *int64) {
	t.Helper()

	_, err := db.Exec(
		"INSERT INTO devices (device_type_id, name, pattern, device_attributes, room_id) VALUES (?, ?, ?, ?, ?)",
		typeID, name, patternJSON, attrsJSON, roomID,
	)
	if err != nil {
		t.Fatalf("inserting device: %v", err)
	}
}

func strPtr(s string) *string { return &s }

func TestSQLiteRepository_ListByType(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	sceneType := insertDeviceType(t, db, "scene")
	lightType := insertDeviceType(t, db, "light")
	living := insertRoom(t, db, "livingroom")

	attrs := `{"device_actions": [{"topic": "zigbee2mqtt/light/set", "payload": "ON"}]}`
	insertDevice(t, db, sceneType, "romantic", `["romantic", "romantic scene"]`, strPtr(attrs), &living)
	insertDevice(t, db, lightType, "desk lamp", `["desk lamp"]`, nil, &living)

	devices, err := repo.ListByType(ctx, "scene")
	if err != nil {
		t.Fatalf("ListByType() error = %v", err)
	}

	if len(devices) != 1 {
		t.Fatalf("len(devices) = %d, want 1", len(devices))
	}

	got := devices[0]
	if got.Name != "romantic" {
		t.Errorf("Name = %q, want %q", got.Name, "romantic")
	}
	if got.DeviceType != "scene" {
		t.Errorf("DeviceType = %q, want %q", got.DeviceType, "scene")
	}
	if got.Room == nil || *got.Room != "livingroom" {
		t.Errorf("Room = %v, want livingroom", got.Room)
	}
	if len(got.Patterns) != 2 || got.Patterns[0] != "romantic" {
		t.Errorf("Patterns = %v, want [romantic, romantic scene]", got.Patterns)
	}
	if _, ok := got.Attributes["device_actions"]; !ok {
		t.Error("Attributes missing device_actions")
	}
}

func TestSQLiteRepository_ListByType_RoomlessDevice(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	sceneType := insertDeviceType(t, db, "scene")
	attrs := `{"device_actions": [{"topic": "zigbee2mqtt/all/set"}]}`
	insertDevice(t, db, sceneType, "all off", `["all off"]`, strPtr(attrs), nil)

	devices, err := repo.ListByType(ctx, "scene")
	if err != nil {
		t.Fatalf("ListByType() error = %v", err)
	}

	if len(devices) != 1 {
		t.Fatalf("len(devices) = %d, want 1", len(devices))
	}
	if devices[0].Room != nil {
		t.Errorf("Room = %v, want nil", devices[0].Room)
	}
}

func TestSQLiteRepository_ListByType_NullAttributes(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	sceneType := insertDeviceType(t, db, "scene")
	insertDevice(t, db, sceneType, "bare", `["bare"]`, nil, nil)

	devices, err := repo.ListByType(ctx, "scene")
	if err != nil {
		t.Fatalf("ListByType() error = %v", err)
	}

	if len(devices) != 1 {
		t.Fatalf("len(devices) = %d, want 1", len(devices))
	}
	if devices[0].Attributes != nil {
		t.Errorf("Attributes = %v, want nil", devices[0].Attributes)
	}
}

func TestSQLiteRepository_ListByType_Order(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	sceneType := insertDeviceType(t, db, "scene")
	bedroom := insertRoom(t, db, "bedroom")

	attrs := `{"device_actions": [{"topic": "zigbee2mqtt/light/set"}]}`
	insertDevice(t, db, sceneType, "evening", `[]`, strPtr(attrs), &bedroom)
	insertDevice(t, db, sceneType, "romantic", `[]`, strPtr(attrs), &bedroom)
	insertDevice(t, db, sceneType, "morning", `[]`, strPtr(attrs), &bedroom)

	devices, err := repo.ListByType(ctx, "scene")
	if err != nil {
		t.Fatalf("ListByType() error = %v", err)
	}

	want := []string{"evening", "romantic", "morning"}
	if len(devices) != len(want) {
		t.Fatalf("len(devices) = %d, want %d", len(devices), len(want))
	}
	for i, name := range want {
		if devices[i].Name != name {
			t.Errorf("devices[%d].Name = %q, want %q", i, devices[i].Name, name)
		}
	}
}

func TestSQLiteRepository_ListByType_NoMatches(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	insertDeviceType(t, db, "light")

	devices, err := repo.ListByType(ctx, "scene")
	if err != nil {
		t.Fatalf("ListByType() error = %v", err)
	}
	if len(devices) != 0 {
		t.Errorf("len(devices) = %d, want 0", len(devices))
	}
}

func TestSQLiteRepository_ListByType_BadPatternJSON(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	sceneType := insertDeviceType(t, db, "scene")
	insertDevice(t, db, sceneType, "broken", `not-json`, nil, nil)

	_, err := repo.ListByType(ctx, "scene")
	if err == nil {
		t.Fatal("ListByType() expected error for malformed pattern JSON")
	}
}
