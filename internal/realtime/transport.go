package realtime

import (
	"context"
	"encoding/json"
	"fmt"
)

// ListenerID identifies a registered listener so it can be removed
type ListenerID uint64

// Listener receives the raw data of one incoming message
type Listener func(data json.RawMessage)

// Transport is the one real-time capability set shared by the slot engine,
// the balance mirror and notification consumers.
//
// Connect and Disconnect are idempotent. Send drops the message when not
// connected. Incoming messages reach every listener registered for their
// type, in the order they arrived from the network.
type Transport interface {
	Connect(ctx context.Context) error
	Disconnect()
	Send(eventType string, payload any)
	On(eventType string, l Listener) ListenerID
	Off(eventType string, id ListenerID)
}

// Envelope is the JSON frame exchanged over the socket
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Encode builds a wire frame for eventType with payload as data
func Encode(eventType string, payload any) ([]byte, error) {
	var data json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
		}
		data = b
	}
	return json.Marshal(Envelope{Type: eventType, Data: data})
}

// Decode parses a wire frame
func Decode(frame []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return env, fmt.Errorf("failed to decode envelope: %w", err)
	}
	if env.Type == "" {
		return env, fmt.Errorf("envelope has no type")
	}
	return env, nil
}
