package mqtt

import (
	"fmt"
	"strings"
)

// DefaultBaseTopic is the assistant namespace root used when none is configured.
const DefaultBaseTopic = "assistant"

// Topics provides builders for the assistant's MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
//
// All assistant topics hang off a single configurable base:
//
//	topics := mqtt.NewTopics("assistant")
//	intentTopic := topics.IntentResult()
//	// Returns: "assistant/intent_engine/result"
type Topics struct {
	base string
}

// NewTopics creates a topic builder rooted at the given base topic.
// An empty base falls back to DefaultBaseTopic. A trailing slash is trimmed.
func NewTopics(base string) Topics {
	if base == "" {
		base = DefaultBaseTopic
	}
	return Topics{base: strings.TrimSuffix(base, "/")}
}

// Base returns the configured base topic.
func (t Topics) Base() string {
	if t.base == "" {
		return DefaultBaseTopic
	}
	return t.base
}

// IntentResult returns the topic the intent engine publishes classified
// intents on. Every skill subscribes here.
//
// Example: assistant/intent_engine/result
func (t Topics) IntentResult() string {
	return fmt.Sprintf("%s/intent_engine/result", t.Base())
}

// DeviceUpdate returns the broadcast topic for device registry changes.
// Any payload on this topic signals that the registry snapshot is stale.
//
// Example: assistant/global_device_update
func (t Topics) DeviceUpdate() string {
	return fmt.Sprintf("%s/global_device_update", t.Base())
}

// SkillStatus returns the status topic for a specific skill instance.
// Online/offline payloads (including the LWT) are published here, retained.
//
// Example: assistant/skill/scene-skill/status
func (t Topics) SkillStatus(clientID string) string {
	return fmt.Sprintf("%s/skill/%s/status", t.Base(), clientID)
}

// AllSkillStatuses returns a pattern matching every skill's status topic.
//
// Pattern: assistant/skill/+/status
func (t Topics) AllSkillStatuses() string {
	return fmt.Sprintf("%s/skill/+/status", t.Base())
}

// AllTopics returns a pattern matching the whole assistant namespace.
// Use with caution - this receives ALL traffic.
//
// Pattern: assistant/#
func (t Topics) AllTopics() string {
	return fmt.Sprintf("%s/#", t.Base())
}
