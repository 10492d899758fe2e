package scene

import (
	"encoding/json"
	"fmt"

	"github.com/nerrad567/gray-logic-scenes/internal/registry"
)

// ActionsAttribute is the registry attribute key holding a scene's device actions.
const ActionsAttribute = "device_actions"

// defaultPayload is published when an action entry carries no payload.
const defaultPayload = "ON"

// DeviceAction is one (topic, payload) command published when a scene activates.
type DeviceAction struct {
	Topic   string
	Payload string
}

// SceneDevice is the skill-side representation of one activatable scene.
// Built fresh from a registry row per resolution call; never persisted.
// Actions is non-empty for any SceneDevice produced by FromDevice.
type SceneDevice struct {
	Name    string
	Room    string // empty when the registry row has no room
	Actions []DeviceAction
}

// FromDevice converts a registry row into a SceneDevice.
//
// The registry's attribute bag is untyped; this conversion is the one place
// it crosses into the skill. The device_actions attribute may be a list of
// action objects or a JSON-encoded string of the same. Payloads default to
// "ON" when absent. Any invalid action fails the whole record.
func FromDevice(d registry.Device) (*SceneDevice, error) {
	raw, ok := d.Attributes[ActionsAttribute]
	if !ok || raw == nil {
		return nil, fmt.Errorf("%w: device %q", ErrNoActions, d.Name)
	}

	// JSON-encoded string form
	if s, isString := raw.(string); isString {
		if s == "" {
			return nil, fmt.Errorf("%w: device %q", ErrNoActions, d.Name)
		}
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return nil, fmt.Errorf("scene: parsing device_actions for device %q: %w", d.Name, err)
		}
		raw = decoded
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: device %q carries %T", ErrActionsNotList, d.Name, raw)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: device %q has an empty action list", ErrNoActions, d.Name)
	}

	actions := make([]DeviceAction, 0, len(list))
	for i, entry := range list {
		obj, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: device %q action %d is not an object", ErrInvalidAction, d.Name, i)
		}

		topicVal, ok := obj["topic"]
		if !ok {
			return nil, fmt.Errorf("%w: device %q action %d", ErrMissingTopic, d.Name, i)
		}
		topic, ok := topicVal.(string)
		if !ok {
			return nil, fmt.Errorf("%w: device %q action %d topic is %T", ErrInvalidAction, d.Name, i, topicVal)
		}
		if err := ValidateTopic(topic); err != nil {
			return nil, fmt.Errorf("device %q action %d: %w", d.Name, i, err)
		}

		payload := defaultPayload
		if p, present := obj["payload"]; present {
			s, ok := p.(string)
			if !ok {
				return nil, fmt.Errorf("%w: device %q action %d payload is %T", ErrInvalidAction, d.Name, i, p)
			}
			payload = s
		}

		actions = append(actions, DeviceAction{Topic: topic, Payload: payload})
	}

	scene := &SceneDevice{Name: d.Name, Actions: actions}
	if d.Room != nil {
		scene.Room = *d.Room
	}
	return scene, nil
}
