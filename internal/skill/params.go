package skill

import (
	"github.com/nerrad567/gray-logic-scenes/internal/intent"
	"github.com/nerrad567/gray-logic-scenes/internal/registry"
	"github.com/nerrad567/gray-logic-scenes/internal/scene"
)

// Parameters carries everything extracted from one classified intent.
// Constructed fresh per handled request and discarded with it.
type Parameters struct {
	SceneNames []string
	Rooms      []string
	Targets    []scene.SceneDevice
}

// TargetNames returns the resolved scene names in activation order.
func (p Parameters) TargetNames() []string {
	names := make([]string, len(p.Targets))
	for i, target := range p.Targets {
		names[i] = target.Name
	}
	return names
}

// DeviceCount returns the total number of device actions across all targets.
func (p Parameters) DeviceCount() int {
	count := 0
	for _, target := range p.Targets {
		count += len(target.Actions)
	}
	return count
}

// extractParameters pulls rooms and scene names out of the classified
// intent's entities.
//
// Rooms come from room entities, falling back to the requester's current
// room when none are present. Scene names come from device entities whose
// metadata tags them as scenes; other device entities are ignored. The
// boolean returns report whether room and device entities were explicitly
// present, which decides whether the corresponding resolver filter is
// applied at all.
func extractParameters(ci intent.ClassifiedIntent, currentRoom string) (params Parameters, roomsExplicit, namesExplicit bool) {
	roomEntities := ci.Entities[intent.EntityKeyRoom]
	if len(roomEntities) > 0 {
		roomsExplicit = true
		params.Rooms = make([]string, 0, len(roomEntities))
		for _, entity := range roomEntities {
			params.Rooms = append(params.Rooms, entity.NormalizedValue)
		}
	} else {
		params.Rooms = []string{currentRoom}
	}

	deviceEntities := ci.Entities[intent.EntityKeyDevice]
	if len(deviceEntities) > 0 {
		namesExplicit = true
		for _, entity := range deviceEntities {
			if entity.Metadata[intent.MetadataDeviceType] == registry.DeviceTypeScene {
				params.SceneNames = append(params.SceneNames, entity.NormalizedValue)
			}
		}
	}

	return params, roomsExplicit, namesExplicit
}
