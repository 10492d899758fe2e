package registry

import (
	"context"
	"fmt"
	"sync"
)

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry maintains an in-memory snapshot of registry devices of one
// device type.
//
// The snapshot is populated on startup via Refresh and replaced wholesale
// whenever the platform announces a registry change. Readers get isolated
// copies, so a snapshot can be treated as immutable for the duration of
// one resolution call.
//
// All public methods are thread-safe.
type Registry struct {
	repo       Repository
	deviceType string
	devices    []Device // Current snapshot, replaced wholesale by Refresh
	mu         sync.RWMutex
	logger     Logger
}

// NewRegistry creates a registry for devices of the given type.
// The repository is used for loading; the registry adds the snapshot.
func NewRegistry(repo Repository, deviceType string) *Registry {
	return &Registry{
		repo:       repo,
		deviceType: deviceType,
		logger:     noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// Refresh reloads the snapshot from the repository.
// This should be called on startup and whenever the platform signals a
// registry change. On failure the previous snapshot stays in service.
func (r *Registry) Refresh(ctx context.Context) error {
	devices, err := r.repo.ListByType(ctx, r.deviceType)
	if err != nil {
		return fmt.Errorf("loading %s devices: %w", r.deviceType, err)
	}

	// Store deep copies so later repository mutations cannot reach the snapshot
	snapshot := make([]Device, 0, len(devices))
	for i := range devices {
		snapshot = append(snapshot, *devices[i].DeepCopy())
	}

	r.mu.Lock()
	r.devices = snapshot
	r.mu.Unlock()

	r.logger.Info("device snapshot refreshed", "device_type", r.deviceType, "count", len(devices))
	return nil
}

// Snapshot returns an isolated copy of the current device list.
// Order matches the repository's listing order. Callers can safely modify
// the returned devices.
func (r *Registry) Snapshot() []Device {
	r.mu.RLock()
	defer r.mu.RUnlock()

	devices := make([]Device, 0, len(r.devices))
	for i := range r.devices {
		devices = append(devices, *r.devices[i].DeepCopy())
	}
	return devices
}

// Count returns the number of devices in the current snapshot.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.devices)
}
