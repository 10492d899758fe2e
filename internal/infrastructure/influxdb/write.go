package influxdb

import (
	"strings"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// RecordActivation writes one scene activation to the history bucket.
//
// This is the primary method for recording what the skill did and when.
// The write is non-blocking; points are batched and sent asynchronously.
//
// Parameters:
//   - sceneNames: Activated scene names in dispatch order
//   - deviceCount: Total device actions published for this activation
//   - confidence: Classifier confidence of the triggering intent
//   - room: Room the request originated from (empty tag omitted)
//
// Example:
//
//	client.RecordActivation([]string{"romantic"}, 3, 0.92, "livingroom")
func (c *Client) RecordActivation(sceneNames []string, deviceCount int, confidence float64, room string) {
	if !c.IsConnected() {
		return
	}

	tags := map[string]string{}
	if room != "" {
		tags["room"] = room
	}

	point := write.NewPoint(
		"scene_activation",
		tags,
		map[string]interface{}{
			"scenes":       strings.Join(sceneNames, ","),
			"scene_count":  len(sceneNames),
			"device_count": deviceCount,
			"confidence":   confidence,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for measurements that don't fit RecordActivation.
//
// Parameters:
//   - measurement: The measurement name (table)
//   - tags: Key-value pairs for indexing (low cardinality)
//   - fields: Key-value pairs for the actual data
//
// Example:
//
//	client.WritePoint("skill_stats",
//	    map[string]string{"skill": "scene"},
//	    map[string]interface{}{"snapshot_devices": 12})
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}

// WritePointWithTime writes a custom point with a specific timestamp.
//
// Use this when the timestamp is not "now" (e.g., delayed data).
//
// Parameters:
//   - measurement: The measurement name
//   - tags: Key-value pairs for indexing
//   - fields: Key-value pairs for the data
//   - timestamp: The exact time for this data point
func (c *Client) WritePointWithTime(measurement string, tags map[string]string, fields map[string]interface{}, timestamp time.Time) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, timestamp)
	c.writeAPI.WritePoint(point)
}
