package intent

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

// resultPayload mirrors what the intent engine publishes on its result
// topic for "activate the romantic scene in the livingroom".
const resultPayload = `{
  "id": "5f0c3f0a-8a69-4b9e-9a59-0b6c1a2d3e4f",
  "classified_intent": {
    "id": "1f7f9a3c-2b4d-4f6e-8a90-123456789abc",
    "intent_type": "scene_apply",
    "confidence": 0.92,
    "entities": {
      "room": [
        {
          "id": "aaaaaaaa-bbbb-cccc-dddd-eeeeffff0001",
          "type": "room",
          "raw_text": "livingroom",
          "normalized_value": "livingroom",
          "confidence": 0.88,
          "metadata": {},
          "linked_to": []
        }
      ],
      "device": [
        {
          "id": "aaaaaaaa-bbbb-cccc-dddd-eeeeffff0002",
          "type": "scene",
          "raw_text": "romantic",
          "normalized_value": "romantic",
          "confidence": 0.9,
          "metadata": {"device_type": "scene"},
          "linked_to": []
        }
      ]
    },
    "alternative_intents": [
      {"intent_type": "system_help", "confidence": 0.05}
    ],
    "raw_text": "activate the romantic scene in the livingroom",
    "timestamp": "2026-03-01T10:15:30.000123456Z"
  },
  "client_request": {
    "id": "99999999-8888-7777-6666-555544443333",
    "text": "activate the romantic scene in the livingroom",
    "room": "livingroom",
    "output_topic": "assistant/comms_bridge/client-7/output"
  }
}`

func TestDecodeRequest(t *testing.T) {
	req, err := DecodeRequest([]byte(resultPayload))
	if err != nil {
		t.Fatalf("DecodeRequest() error = %v", err)
	}

	wantID := uuid.MustParse("5f0c3f0a-8a69-4b9e-9a59-0b6c1a2d3e4f")
	if req.ID != wantID {
		t.Errorf("ID = %v, want %v", req.ID, wantID)
	}

	ci := req.ClassifiedIntent
	if ci.IntentType != TypeSceneApply {
		t.Errorf("IntentType = %q, want %q", ci.IntentType, TypeSceneApply)
	}
	if ci.Confidence != 0.92 {
		t.Errorf("Confidence = %v, want 0.92", ci.Confidence)
	}
	if ci.RawText != "activate the romantic scene in the livingroom" {
		t.Errorf("RawText = %q", ci.RawText)
	}
	if ci.Timestamp.IsZero() {
		t.Error("Timestamp should not be zero")
	}
	if len(ci.AlternativeIntents) != 1 {
		t.Fatalf("AlternativeIntents count = %d, want 1", len(ci.AlternativeIntents))
	}
	if alt := ci.AlternativeIntents[0]; alt.IntentType != TypeSystemHelp || alt.Confidence != 0.05 {
		t.Errorf("AlternativeIntents[0] = %+v", alt)
	}

	rooms := ci.Entities[EntityKeyRoom]
	if len(rooms) != 1 {
		t.Fatalf("room entities = %d, want 1", len(rooms))
	}
	if rooms[0].NormalizedValue != "livingroom" {
		t.Errorf("room NormalizedValue = %q, want %q", rooms[0].NormalizedValue, "livingroom")
	}

	devices := ci.Entities[EntityKeyDevice]
	if len(devices) != 1 {
		t.Fatalf("device entities = %d, want 1", len(devices))
	}
	dev := devices[0]
	if dev.NormalizedValue != "romantic" {
		t.Errorf("device NormalizedValue = %q, want %q", dev.NormalizedValue, "romantic")
	}
	if got := dev.Metadata[MetadataDeviceType]; got != "scene" {
		t.Errorf("device metadata %s = %v, want %q", MetadataDeviceType, got, "scene")
	}
	if len(dev.LinkedTo) != 0 {
		t.Errorf("device LinkedTo = %v, want empty", dev.LinkedTo)
	}

	cr := req.ClientRequest
	if cr.Room != "livingroom" {
		t.Errorf("ClientRequest.Room = %q, want %q", cr.Room, "livingroom")
	}
	if cr.OutputTopic != "assistant/comms_bridge/client-7/output" {
		t.Errorf("ClientRequest.OutputTopic = %q", cr.OutputTopic)
	}
}

func TestDecodeRequest_MissingEntityGroups(t *testing.T) {
	payload := `{
	  "id": "5f0c3f0a-8a69-4b9e-9a59-0b6c1a2d3e4f",
	  "classified_intent": {
	    "id": "1f7f9a3c-2b4d-4f6e-8a90-123456789abc",
	    "intent_type": "system_help",
	    "confidence": 1.0,
	    "entities": {},
	    "alternative_intents": [],
	    "raw_text": "help",
	    "timestamp": "2026-03-01T10:15:30Z"
	  },
	  "client_request": {
	    "id": "99999999-8888-7777-6666-555544443333",
	    "text": "help",
	    "room": "kitchen",
	    "output_topic": "assistant/comms_bridge/client-7/output"
	  }
	}`

	req, err := DecodeRequest([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeRequest() error = %v", err)
	}
	if req.ClassifiedIntent.IntentType != TypeSystemHelp {
		t.Errorf("IntentType = %q, want %q", req.ClassifiedIntent.IntentType, TypeSystemHelp)
	}
	if got := req.ClassifiedIntent.Entities[EntityKeyDevice]; len(got) != 0 {
		t.Errorf("device entities = %v, want none", got)
	}
}

func TestDecodeRequest_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"truncated json", `{"id": "5f0c3f0a-`},
		{"wrong type", `{"id": 12}`},
		{"bad uuid", `{"id": "not-a-uuid"}`},
		{"empty payload", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRequest([]byte(tt.payload))
			if err == nil {
				t.Fatal("DecodeRequest() expected error, got nil")
			}
			if !strings.Contains(err.Error(), "intent: decoding request") {
				t.Errorf("error = %v, want decode context", err)
			}
		})
	}
}
