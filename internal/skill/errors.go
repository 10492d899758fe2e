package skill

import "errors"

// Domain errors for the skill package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, skill.ErrTemplateNotFound) {
//	    // handle missing template case
//	}
var (
	// ErrTemplateNotFound is returned when a required response template
	// is missing from the embedded set.
	ErrTemplateNotFound = errors.New("skill: template not found")

	// ErrMQTTUnavailable is returned when constructing a skill without
	// a bus publisher.
	ErrMQTTUnavailable = errors.New("skill: MQTT unavailable")

	// ErrNoDeviceSource is returned when constructing a skill without
	// a device snapshot source.
	ErrNoDeviceSource = errors.New("skill: device source required")
)
