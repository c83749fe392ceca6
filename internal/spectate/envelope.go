package spectate

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Message types sent to spectators.
const (
	MsgSnapshot = "snapshot"
	MsgSessions = "sessions"
)

// Envelope wraps every message on the wire as {"t": type, "p": payload}.
type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"`
}

// Encode marshals payload inside an envelope of type t.
func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, errors.New("spectate: empty envelope type")
	}
	if payload == nil {
		return nil, errors.New("spectate: nil payload")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("spectate: encode %s: %w", t, err)
	}
	return json.Marshal(Envelope{T: t, P: pb})
}

// Decode splits a wire message into its envelope.
func Decode(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, errors.New("spectate: empty message")
	}
	var e Envelope
	if err := json.Unmarshal(b, &e); err != nil {
		return Envelope{}, fmt.Errorf("spectate: decode envelope: %w", err)
	}
	return e, nil
}

// DecodePayload unmarshals the envelope payload into T.
func DecodePayload[T any](e Envelope) (T, error) {
	var out T
	if len(e.P) == 0 {
		return out, fmt.Errorf("spectate: empty payload for type %q", e.T)
	}
	err := json.Unmarshal(e.P, &out)
	return out, err
}
