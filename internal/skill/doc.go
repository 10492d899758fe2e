// Package skill implements the scene skill's intent handling.
//
// The skill subscribes to the intent engine's result topic, routes each
// classified intent, resolves the named scenes against the device
// registry snapshot, publishes one MQTT command per device action, and
// answers the requesting client with a templated confirmation.
//
// Processing pipeline per intent:
//
//	┌────────────────────────────────────────────────────────┐
//	│                 Skill (skill.go)                        │
//	│  1. Decode IntentRequest JSON (drop if malformed)       │
//	│  2. Route by intent type and confidence                 │
//	│  3. Extract rooms and scene names from entities         │
//	│  4. Resolve targets from the registry snapshot          │
//	│  5. Fan out device commands ∥ send confirmation         │
//	└────────────────────────────────────────────────────────┘
//
// # Key Types
//
//   - Skill: Routes intents and supervises the publish/respond pair
//   - Parameters: Rooms, scene names, and resolved targets for one call
//   - Publisher, DeviceSource, HistoryRecorder: Narrow dependency
//     interfaces satisfied by the mqtt, registry, and influxdb packages
//
// # Responses
//
// Every handled request produces exactly one response on the client's
// output topic: the rendered confirmation, the fixed not-found text, the
// help text, or the fallback. Confirmations come from templates embedded
// at build time and validated during construction.
//
// # Thread Safety
//
// Handle is safe for concurrent use. Each call owns its Parameters and
// reads an isolated registry snapshot; publishes within one activation
// are strictly ordered, across activations no order is promised.
//
// # Usage
//
//	sceneSkill, err := skill.New(mqttClient, deviceRegistry, history, cfg.Skill.ConfidenceThreshold, log)
//	if err != nil {
//	    return err
//	}
//
//	err = mqttClient.Subscribe(topics.IntentResult(), 1, sceneSkill.OnIntentMessage)
package skill
