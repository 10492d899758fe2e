package registry

// DeviceTypeScene is the registry device type this skill consumes.
const DeviceTypeScene = "scene"

// Device is one row of the shared device registry as the skill sees it.
// The platform's device manager owns these rows; the skill only reads them.
type Device struct {
	// Identity
	ID   int64
	Name string

	// Room is the joined room name; nil for devices not assigned to a room.
	Room *string

	// DeviceType is the joined device type name (e.g. "scene").
	DeviceType string

	// Patterns are the spoken-form aliases the intent engine matches against.
	Patterns []string

	// Attributes is the free-form attribute bag. Scenes keep their device
	// actions under the "device_actions" key, either as a list of action
	// objects or a JSON-encoded string of the same.
	Attributes map[string]any
}

// DeepCopy creates a complete independent copy of the Device.
// The patterns slice and attribute map are cloned so modifications to the
// copy do not affect the original. This is essential for snapshot isolation.
func (d *Device) DeepCopy() *Device {
	if d == nil {
		return nil
	}

	cpy := *d // Shallow copy of value fields

	if d.Patterns != nil {
		cpy.Patterns = make([]string, len(d.Patterns))
		copy(cpy.Patterns, d.Patterns)
	}

	cpy.Attributes = deepCopyMap(d.Attributes)

	// Pointer fields (*string) don't need deep copy because strings are
	// immutable in Go

	return &cpy
}

// deepCopyMap creates a deep copy of a map[string]any.
// Nested maps and slices are recursively copied.
func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	cpy := make(map[string]any, len(m))
	for k, v := range m {
		cpy[k] = deepCopyValue(v)
	}
	return cpy
}

// deepCopyValue recursively copies a value, handling nested maps and slices.
func deepCopyValue(v any) any {
	if v == nil {
		return nil
	}
	switch val := v.(type) {
	case map[string]any:
		return deepCopyMap(val)
	case []any:
		cpy := make([]any, len(val))
		for i, elem := range val {
			cpy[i] = deepCopyValue(elem)
		}
		return cpy
	default:
		// Primitives (string, bool, int, float64, etc.) are safe to copy by value
		return v
	}
}
