// Package scene resolves named scenes from the device registry snapshot.
//
// A scene is a registry device whose attribute bag carries a list of
// device actions: (topic, payload) pairs published to the bus when the
// scene activates. The registry hands the skill untyped attribute maps;
// this package defines the narrow typed view (SceneDevice) and the
// fallible boundary conversion (FromDevice) so nothing untyped travels
// further into the skill.
//
// Resolution is a pure filter: optional room and name filters AND-compose
// over the snapshot (rooms case-sensitive, names case-insensitive), and
// each surviving record is converted with per-record failure isolation.
// A malformed scene is logged and dropped without affecting its siblings.
//
// # Usage
//
//	resolver := scene.NewResolver()
//	resolver.SetLogger(log)
//
//	targets := resolver.Resolve(scenes.Snapshot(), []string{"livingroom"}, []string{"romantic"})
//	for _, target := range targets {
//	    for _, action := range target.Actions {
//	        // publish action.Topic / action.Payload
//	    }
//	}
package scene
