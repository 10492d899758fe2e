// Package mqtt provides MQTT client connectivity for the scene skill.
//
// This package manages:
//   - Connection to the assistant's Mosquitto broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// The assistant platform uses MQTT as the message bus connecting the intent
// engine, the device registry and the individual skills. The broker decouples
// the skill from the rest of the platform.
//
//	Intent Engine → MQTT Broker → Scene Skill → MQTT Broker → Devices
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Performance Characteristics
//
//   - Connection: <1 second to local broker
//   - Publish latency: <10ms for QoS 1 to local broker
//   - Reconnect: Exponential backoff 1s-60s with jitter
//   - Message throughput: Broker-limited (typically 10K+ msg/sec)
//
// # Usage
//
//	topics := mqtt.NewTopics(cfg.Skill.BaseTopic)
//	client, err := mqtt.Connect(cfg.MQTT, topics)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Subscribe to classified intents
//	err = client.Subscribe(topics.IntentResult(), 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
//
//	// Publish a device command
//	client.Publish("zigbee2mqtt/light-living/set", []byte("ON"), 1, false)
package mqtt
