// Package database provides SQLite connectivity for the device registry.
//
// This package manages:
//   - Database connection with WAL mode for concurrent access
//   - Schema migrations compiled into the binary
//   - Connection pooling and lifecycle management
//
// The registry is shared with the wider assistant platform: the device
// manager writes device, room, and device type rows, while skills mostly
// read them. Migrations here bootstrap the schema so the skill can run
// against a fresh database in standalone and development deployments.
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Performance Characteristics:
//   - WAL mode allows concurrent reads during writes
//   - Busy timeout prevents lock contention errors
//
// Usage:
//
//	db, err := database.Open(cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	// Run migrations
//	if err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Migration Strategy:
//
// Migrations are additive-only to support safe rollbacks:
//   - New columns must be NULLABLE or have DEFAULT values
//   - Never DROP or RENAME columns
//   - Each migration file has both .up.sql and .down.sql
package database
