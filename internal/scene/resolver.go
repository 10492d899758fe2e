package scene

import (
	"strings"

	"github.com/nerrad567/gray-logic-scenes/internal/registry"
)

// Logger defines the logging interface used by the Resolver.
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

// Resolver filters a registry snapshot into validated scene targets.
type Resolver struct {
	logger Logger
}

// NewResolver creates a resolver with a no-op logger.
func NewResolver() *Resolver {
	return &Resolver{logger: noopLogger{}}
}

// SetLogger sets the logger for the resolver.
func (r *Resolver) SetLogger(logger Logger) {
	r.logger = logger
}

// Resolve filters the snapshot and converts matches into scene targets.
//
// An empty or nil rooms slice means no room filter; likewise for names.
// Room matching is exact and case-sensitive, and records without a room
// never match a room filter. Name matching is case-insensitive. When both
// filters are supplied a record must satisfy both. A record that fails
// conversion is dropped with a warning so one malformed scene never blocks
// activation of its siblings. Result order preserves snapshot order; no
// sort is applied.
func (r *Resolver) Resolve(devices []registry.Device, rooms, names []string) []SceneDevice {
	roomSet := make(map[string]struct{}, len(rooms))
	for _, room := range rooms {
		roomSet[room] = struct{}{}
	}

	nameSet := make(map[string]struct{}, len(names))
	for _, name := range names {
		nameSet[strings.ToLower(name)] = struct{}{}
	}

	var targets []SceneDevice
	for i := range devices {
		d := &devices[i]

		if len(roomSet) > 0 {
			if d.Room == nil {
				continue
			}
			if _, ok := roomSet[*d.Room]; !ok {
				continue
			}
		}

		if len(nameSet) > 0 {
			if _, ok := nameSet[strings.ToLower(d.Name)]; !ok {
				continue
			}
		}

		target, err := FromDevice(*d)
		if err != nil {
			r.logger.Warn("skipping scene device", "device", d.Name, "error", err)
			continue
		}
		targets = append(targets, *target)
	}

	r.logger.Debug("resolved scenes", "count", len(targets), "rooms", rooms, "names", names)
	return targets
}
