package skill

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nerrad567/gray-logic-scenes/internal/intent"
	"github.com/nerrad567/gray-logic-scenes/internal/registry"
	"github.com/nerrad567/gray-logic-scenes/internal/scene"
)

// Fixed responses used when no template applies.
const (
	responseNoScenes = "I couldn't find any scenes to activate."
	responseFallback = "I'm not sure how to handle that request."
	responseError    = "Sorry, I couldn't process your request."
)

// DefaultConfidenceThreshold gates scene_apply intents when no threshold
// is configured.
const DefaultConfidenceThreshold = 0.8

// Publisher is the interface for sending messages on the assistant bus.
type Publisher interface {
	// PublishString sends a message to the specified MQTT topic.
	PublishString(topic, payload string, qos byte, retained bool) error
}

// DeviceSource provides the current scene device snapshot.
type DeviceSource interface {
	// Snapshot returns an isolated copy of the known scene devices.
	Snapshot() []registry.Device
}

// HistoryRecorder receives one record per successfully dispatched scene
// activation. Implementations must not block the caller. May be nil.
type HistoryRecorder interface {
	RecordActivation(sceneNames []string, deviceCount int, confidence float64, room string)
}

// Logger defines the logging interface used by the Skill.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Skill routes classified intents to scene activation.
//
// It decodes intent requests from the bus, resolves the named scenes
// against the registry snapshot, fans out one MQTT command per device
// action, and answers the requesting client with a templated
// confirmation. Every handled request produces exactly one response:
// a confirmation, the not-found text, the help text, or the fallback.
//
// Thread Safety: Handle is safe for concurrent use. Each call owns its
// Parameters and reads an isolated registry snapshot.
type Skill struct {
	publisher Publisher
	devices   DeviceSource
	resolver  *scene.Resolver
	renderer  *renderer
	history   HistoryRecorder // may be nil
	threshold float64
	logger    Logger
}

// New creates a scene skill.
//
// Response templates are parsed from the embedded set here; a missing or
// unparsable template fails construction so the process never starts with
// a broken response path.
//
// Parameters:
//   - publisher: Bus publisher for device commands and client responses
//   - devices: Registry snapshot source for scene devices
//   - history: Activation history recorder (may be nil)
//   - threshold: Minimum scene_apply confidence; <= 0 uses DefaultConfidenceThreshold
//   - logger: Logger instance (nil for no logging)
//
// Returns:
//   - *Skill: Ready-to-subscribe skill
//   - error: ErrMQTTUnavailable, ErrNoDeviceSource, or a template error
func New(publisher Publisher, devices DeviceSource, history HistoryRecorder, threshold float64, logger Logger) (*Skill, error) {
	if publisher == nil {
		return nil, ErrMQTTUnavailable
	}
	if devices == nil {
		return nil, ErrNoDeviceSource
	}
	if logger == nil {
		logger = noopLogger{}
	}
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}

	renderer, err := newRenderer(templateFS)
	if err != nil {
		return nil, err
	}

	resolver := scene.NewResolver()
	resolver.SetLogger(logger)

	return &Skill{
		publisher: publisher,
		devices:   devices,
		resolver:  resolver,
		renderer:  renderer,
		history:   history,
		threshold: threshold,
		logger:    logger,
	}, nil
}

// OnIntentMessage is the MQTT handler for the intent result topic.
//
// Malformed payloads are dropped with an error return; there is no reply
// destination to be had from garbage, so no response is sent.
func (s *Skill) OnIntentMessage(topic string, payload []byte) error {
	req, err := intent.DecodeRequest(payload)
	if err != nil {
		return fmt.Errorf("dropping payload on %s: %w", topic, err)
	}
	s.Handle(req)
	return nil
}

// Handle routes one decoded intent request.
//
// Routing is a closed classification: scene_apply at or above the
// confidence threshold activates scenes, system_help answers with usage
// text, and everything else (including below-threshold scene_apply)
// receives the fixed fallback.
func (s *Skill) Handle(req *intent.Request) {
	ci := req.ClassifiedIntent
	s.logger.Debug("processing intent",
		"request_id", req.ID,
		"intent_type", ci.IntentType,
		"confidence", ci.Confidence,
	)

	switch {
	case ci.IntentType == intent.TypeSceneApply && ci.Confidence >= s.threshold:
		s.handleSceneApply(req)
	case ci.IntentType == intent.TypeSystemHelp:
		s.handleHelp(req)
	default:
		s.logger.Warn("unsupported intent",
			"intent_type", ci.IntentType,
			"confidence", ci.Confidence,
		)
		s.respond(responseFallback, req.ClientRequest)
	}
}

// handleSceneApply activates the scenes named by the intent.
//
// With no matching targets the not-found response is sent and no bus
// traffic occurs. Otherwise the command fan-out and the confirmation
// send run as two supervised tasks; the handler returns once both are
// scheduled. The supervisor logs task failures, they never reach the
// requesting client.
func (s *Skill) handleSceneApply(req *intent.Request) {
	ci := req.ClassifiedIntent
	clientRequest := req.ClientRequest

	params, roomsExplicit, namesExplicit := extractParameters(ci, clientRequest.Room)

	// Filters apply only when the intent carried the matching entities.
	// A bare "activate the scenes" in a room resolves everything there.
	var roomFilter, nameFilter []string
	if roomsExplicit {
		roomFilter = params.Rooms
	}
	if namesExplicit {
		nameFilter = params.SceneNames
	}
	params.Targets = s.resolver.Resolve(s.devices.Snapshot(), roomFilter, nameFilter)

	if len(params.Targets) == 0 {
		s.logger.Info("no scenes matched",
			"rooms", params.Rooms,
			"names", params.SceneNames,
		)
		s.respond(responseNoScenes, clientRequest)
		return
	}

	answer, err := s.renderer.renderApply(params)
	if err != nil {
		s.logger.Error("rendering scene confirmation", "error", err)
		answer = responseError
	}

	group := new(errgroup.Group)
	group.Go(func() error {
		return s.sendResponse(answer, clientRequest)
	})
	group.Go(func() error {
		return s.sendSceneCommands(params)
	})

	requestID := req.ID
	confidence := ci.Confidence
	go func() {
		if waitErr := group.Wait(); waitErr != nil {
			s.logger.Error("scene activation task failed",
				"request_id", requestID,
				"error", waitErr,
			)
			return
		}
		if s.history != nil {
			s.history.RecordActivation(params.TargetNames(), params.DeviceCount(), confidence, clientRequest.Room)
		}
		s.logger.Debug("scene activation dispatched",
			"request_id", requestID,
			"scenes", len(params.Targets),
		)
	}()
}

// handleHelp answers a help intent with the rendered usage text.
func (s *Skill) handleHelp(req *intent.Request) {
	answer, err := s.renderer.renderHelp()
	if err != nil {
		s.logger.Error("rendering help response", "error", err)
		answer = responseError
	}
	s.respond(answer, req.ClientRequest)
}

// sendSceneCommands publishes every device action for the resolved targets.
//
// Targets fan out in order, actions in order, one publish per action at
// QoS 1. No batching or coalescing: two scenes naming the same topic
// publish in sequence and the device keeps the last write.
func (s *Skill) sendSceneCommands(params Parameters) error {
	for _, target := range params.Targets {
		s.logger.Info("activating scene",
			"scene", target.Name,
			"actions", len(target.Actions),
		)

		for _, action := range target.Actions {
			if action.Topic == "" {
				s.logger.Warn("device action missing topic", "scene", target.Name)
				continue
			}
			if err := s.publisher.PublishString(action.Topic, action.Payload, 1, false); err != nil {
				return fmt.Errorf("publishing to %q: %w", action.Topic, err)
			}
			s.logger.Debug("scene command published",
				"scene", target.Name,
				"topic", action.Topic,
				"payload", action.Payload,
			)
		}
	}
	return nil
}

// sendResponse publishes rendered text to the client's output topic.
func (s *Skill) sendResponse(answer string, clientRequest intent.ClientRequest) error {
	if clientRequest.OutputTopic == "" {
		return fmt.Errorf("client request %s has no output topic", clientRequest.ID)
	}
	if err := s.publisher.PublishString(clientRequest.OutputTopic, answer, 1, false); err != nil {
		return fmt.Errorf("sending response to %q: %w", clientRequest.OutputTopic, err)
	}
	return nil
}

// respond sends an answer on the synchronous path and logs a delivery
// failure instead of surfacing it.
func (s *Skill) respond(answer string, clientRequest intent.ClientRequest) {
	if err := s.sendResponse(answer, clientRequest); err != nil {
		s.logger.Error("sending response", "request_id", clientRequest.ID, "error", err)
	}
}
