package registry

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// MockRepository is a test implementation of Repository.
type MockRepository struct {
	mu      sync.Mutex
	devices []Device
	// For testing error paths
	listErr error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

func (m *MockRepository) ListByType(_ context.Context, deviceType string) ([]Device, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.listErr != nil {
		return nil, m.listErr
	}

	var devices []Device
	for i := range m.devices {
		if m.devices[i].DeviceType == deviceType {
			devices = append(devices, *m.devices[i].DeepCopy())
		}
	}
	return devices, nil
}

// setDevices replaces the mock's backing rows for test setup.
func (m *MockRepository) setDevices(devices []Device) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.devices = devices
}

// setListErr injects an error returned by subsequent ListByType calls.
func (m *MockRepository) setListErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErr = err
}

// testScene builds a scene device for test setup.
func testScene(id int64, name, room string) Device {
	d := Device{
		ID:         id,
		Name:       name,
		DeviceType: DeviceTypeScene,
		Patterns:   []string{name, name + " scene"},
		Attributes: map[string]any{
			"device_actions": []any{
				map[string]any{"topic": "zigbee2mqtt/light/set", "payload": "ON"},
			},
		},
	}
	if room != "" {
		d.Room = &room
	}
	return d
}

func TestRegistry_Refresh(t *testing.T) {
	repo := NewMockRepository()
	reg := NewRegistry(repo, DeviceTypeScene)
	ctx := context.Background()

	repo.setDevices([]Device{
		testScene(1, "romantic", "livingroom"),
		testScene(2, "morning", "bedroom"),
		{ID: 3, Name: "desk lamp", DeviceType: "light"},
	})

	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	// Only scene-typed rows make it into the snapshot
	if reg.Count() != 2 {
		t.Errorf("Count() = %d, want 2", reg.Count())
	}
}

func TestRegistry_RefreshError(t *testing.T) {
	repo := NewMockRepository()
	reg := NewRegistry(repo, DeviceTypeScene)
	ctx := context.Background()

	repo.setDevices([]Device{testScene(1, "romantic", "livingroom")})
	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	// A failing refresh keeps the previous snapshot in service
	repo.setListErr(errors.New("database is locked"))
	if err := reg.Refresh(ctx); err == nil {
		t.Fatal("Refresh() expected error, got nil")
	}

	snapshot := reg.Snapshot()
	if len(snapshot) != 1 {
		t.Fatalf("Snapshot() len = %d, want 1 (previous snapshot)", len(snapshot))
	}
	if snapshot[0].Name != "romantic" {
		t.Errorf("Name = %q, want %q", snapshot[0].Name, "romantic")
	}
}

func TestRegistry_RefreshReplacesSnapshot(t *testing.T) {
	repo := NewMockRepository()
	reg := NewRegistry(repo, DeviceTypeScene)
	ctx := context.Background()

	repo.setDevices([]Device{testScene(1, "romantic", "livingroom")})
	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	repo.setDevices([]Device{
		testScene(1, "romantic", "livingroom"),
		testScene(2, "morning", "bedroom"),
	})
	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}

	snapshot := reg.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("Snapshot() len = %d, want 2", len(snapshot))
	}
	if snapshot[1].Name != "morning" {
		t.Errorf("Name = %q, want %q", snapshot[1].Name, "morning")
	}
}

func TestRegistry_SnapshotOrder(t *testing.T) {
	repo := NewMockRepository()
	reg := NewRegistry(repo, DeviceTypeScene)
	ctx := context.Background()

	repo.setDevices([]Device{
		testScene(10, "evening", "livingroom"),
		testScene(11, "romantic", "livingroom"),
		testScene(12, "morning", "bedroom"),
	})
	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	snapshot := reg.Snapshot()
	want := []string{"evening", "romantic", "morning"}
	if len(snapshot) != len(want) {
		t.Fatalf("Snapshot() len = %d, want %d", len(snapshot), len(want))
	}
	for i, name := range want {
		if snapshot[i].Name != name {
			t.Errorf("snapshot[%d].Name = %q, want %q", i, snapshot[i].Name, name)
		}
	}
}

func TestRegistry_SnapshotIsolation(t *testing.T) {
	repo := NewMockRepository()
	reg := NewRegistry(repo, DeviceTypeScene)
	ctx := context.Background()

	repo.setDevices([]Device{testScene(1, "romantic", "livingroom")})
	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	// Mutating a returned snapshot must not reach the registry's copy
	first := reg.Snapshot()
	first[0].Name = "mutated"
	first[0].Patterns[0] = "mutated"
	first[0].Attributes["device_actions"] = nil

	second := reg.Snapshot()
	if second[0].Name != "romantic" {
		t.Errorf("Name = %q, want %q", second[0].Name, "romantic")
	}
	if second[0].Patterns[0] != "romantic" {
		t.Errorf("Patterns[0] = %q, want %q", second[0].Patterns[0], "romantic")
	}
	if second[0].Attributes["device_actions"] == nil {
		t.Error("Attributes mutation leaked into registry snapshot")
	}
}

func TestRegistry_SnapshotEmpty(t *testing.T) {
	repo := NewMockRepository()
	reg := NewRegistry(repo, DeviceTypeScene)

	// Before any refresh the snapshot is empty, not nil-panicking
	snapshot := reg.Snapshot()
	if len(snapshot) != 0 {
		t.Errorf("Snapshot() len = %d, want 0", len(snapshot))
	}
	if reg.Count() != 0 {
		t.Errorf("Count() = %d, want 0", reg.Count())
	}
}

func TestDevice_DeepCopy(t *testing.T) {
	t.Run("nil device", func(t *testing.T) {
		var d *Device
		if d.DeepCopy() != nil {
			t.Error("DeepCopy() of nil should be nil")
		}
	})

	t.Run("nested attributes are cloned", func(t *testing.T) {
		d := testScene(1, "romantic", "livingroom")
		cpy := d.DeepCopy()

		actions, ok := cpy.Attributes["device_actions"].([]any)
		if !ok || len(actions) == 0 {
			t.Fatal("copied attributes missing device_actions")
		}
		action, ok := actions[0].(map[string]any)
		if !ok {
			t.Fatal("copied action has unexpected shape")
		}
		action["payload"] = "OFF"

		origActions := d.Attributes["device_actions"].([]any)
		origAction := origActions[0].(map[string]any)
		if origAction["payload"] != "ON" {
			t.Errorf("original payload = %v, want ON", origAction["payload"])
		}
	})

	t.Run("room pointer is carried over", func(t *testing.T) {
		d := testScene(1, "romantic", "livingroom")
		cpy := d.DeepCopy()
		if cpy.Room == nil || *cpy.Room != "livingroom" {
			t.Errorf("Room = %v, want livingroom", cpy.Room)
		}
	})
}
