package scene

import "errors"

// Domain errors for the scene package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, scene.ErrNoActions) {
//	    // handle missing actions case
//	}
var (
	// ErrNoActions is returned when a registry row has no device_actions
	// attribute, or the attribute resolves to an empty list.
	ErrNoActions = errors.New("scene: missing device_actions")

	// ErrActionsNotList is returned when the device_actions attribute is
	// neither a list nor a JSON-encoded list.
	ErrActionsNotList = errors.New("scene: device_actions is not a list")

	// ErrInvalidAction is returned when an action entry is malformed
	// (not an object, or a field has the wrong type).
	ErrInvalidAction = errors.New("scene: invalid device action")

	// ErrMissingTopic is returned when an action entry lacks a topic field.
	ErrMissingTopic = errors.New("scene: device action missing topic")

	// ErrInvalidTopic is returned when a topic fails validation
	// (wildcards, whitespace, control characters, or too long).
	ErrInvalidTopic = errors.New("scene: invalid topic")
)
