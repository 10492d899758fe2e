// Package influxdb provides optional activation history for the scene skill.
//
// It wraps the official influxdb-client-go v2 library with the connection
// management, batched writing, and health monitoring the skill needs.
//
// # Purpose
//
// This package handles time-series storage for:
//   - Scene activation history (what was activated, where, how confident)
//   - Ad-hoc skill measurements via the generic point writers
//
// The integration is disabled by default; when config leaves it off no
// client is constructed and the skill runs without history.
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    Enabled: true,
//	    URL:     "http://localhost:8086",
//	    Token:   "your-token",
//	    Org:     "assistant",
//	    Bucket:  "scene_history",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Record an activation
//	client.RecordActivation([]string{"romantic"}, 3, 0.92, "livingroom")
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are delivered via the
// SetOnError callback. Connection and health check errors are returned
// directly.
//
// # Performance
//
// Writes are batched according to config.yaml settings (batch_size,
// flush_interval), so recording an activation never blocks intent handling.
package influxdb
