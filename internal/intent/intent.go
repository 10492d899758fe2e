// Package intent defines the wire model of the assistant intent bus.
//
// The intent engine classifies user utterances and publishes one Request
// per utterance to its result topic. Skills decode the envelope, inspect
// the classified intent and its entities, and answer on the client
// request's output topic. Field names follow the platform's snake_case
// JSON convention.
package intent

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type identifies the classified kind of a user request.
type Type string

// Intent types this skill distinguishes. Anything else routes to the
// fallback response.
const (
	TypeSceneApply Type = "scene_apply"
	TypeSystemHelp Type = "system_help"
)

// Entity map keys and metadata fields used for parameter extraction.
const (
	// EntityKeyRoom holds room entities extracted from the utterance.
	EntityKeyRoom = "room"

	// EntityKeyDevice holds device entities; scene names arrive here with
	// MetadataDeviceType set to "scene".
	EntityKeyDevice = "device"

	// MetadataDeviceType tags a device entity with its registry device type.
	MetadataDeviceType = "device_type"
)

// Entity is one extracted span of the user's utterance.
type Entity struct {
	ID              uuid.UUID      `json:"id"`
	Type            string         `json:"type"`
	RawText         string         `json:"raw_text"`
	NormalizedValue string         `json:"normalized_value"`
	Confidence      float64        `json:"confidence"`
	Metadata        map[string]any `json:"metadata,omitempty"`
	LinkedTo        []uuid.UUID    `json:"linked_to,omitempty"`
}

// AlternativeIntent is a lower-ranked classification candidate.
type AlternativeIntent struct {
	IntentType Type    `json:"intent_type"`
	Confidence float64 `json:"confidence"`
}

// ClassifiedIntent is the intent engine's interpretation of one utterance.
type ClassifiedIntent struct {
	ID                 uuid.UUID           `json:"id"`
	IntentType         Type                `json:"intent_type"`
	Confidence         float64             `json:"confidence"`
	Entities           map[string][]Entity `json:"entities"`
	AlternativeIntents []AlternativeIntent `json:"alternative_intents"`
	RawText            string              `json:"raw_text"`
	Timestamp          time.Time           `json:"timestamp"`
}

// ClientRequest describes the requesting client and where to answer it.
type ClientRequest struct {
	ID          uuid.UUID `json:"id"`
	Text        string    `json:"text"`
	Room        string    `json:"room"`
	OutputTopic string    `json:"output_topic"`
}

// Request is the envelope the intent engine publishes per utterance.
type Request struct {
	ID               uuid.UUID        `json:"id"`
	ClassifiedIntent ClassifiedIntent `json:"classified_intent"`
	ClientRequest    ClientRequest    `json:"client_request"`
}

// DecodeRequest parses an intent engine result payload.
func DecodeRequest(payload []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, fmt.Errorf("intent: decoding request: %w", err)
	}
	return &req, nil
}
