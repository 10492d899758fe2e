// Package registry provides the skill's read-side view of the shared
// device registry.
//
// The assistant platform maintains a catalogue of devices in a SQLite
// database; scenes are rows whose device type is "scene" and whose
// attribute bag carries the device actions to publish on activation.
// This package loads those rows and maintains an in-memory snapshot that
// is replaced wholesale when the platform announces a registry change on
// the bus.
//
// # Usage
//
//	repo := registry.NewSQLiteRepository(db.DB)
//	scenes := registry.NewRegistry(repo, registry.DeviceTypeScene)
//	scenes.SetLogger(log)
//
//	// Load the snapshot on startup
//	if err := scenes.Refresh(ctx); err != nil {
//	    return err
//	}
//
//	// Per-call reads work on an isolated copy
//	devices := scenes.Snapshot()
//
// # Thread Safety
//
// The Registry is safe for concurrent use. Refresh swaps the snapshot
// under a write lock; Snapshot hands out isolated deep copies under a
// read lock. The Repository implementation must be safe for concurrent
// readers.
package registry
