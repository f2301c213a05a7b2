package lobby

import (
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/vi-racer/engine"
)

// Text message types
const (
	TypeResult = "result"
	TypeHello  = "hello"
)

// Envelope wraps every text message
type Envelope[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// Hello is sent once when a client connects
type Hello struct {
	Clients int `json:"clients"`
}

// EncodeHUD packs a HUD snapshot into a binary frame
func EncodeHUD(hud engine.HUDSnapshot) ([]byte, error) {
	data, err := msgpack.Marshal(&hud)
	if err != nil {
		return nil, fmt.Errorf("encode hud: %w", err)
	}
	return data, nil
}

// DecodeHUD unpacks a binary HUD frame
func DecodeHUD(data []byte) (engine.HUDSnapshot, error) {
	var hud engine.HUDSnapshot
	if err := msgpack.Unmarshal(data, &hud); err != nil {
		return hud, fmt.Errorf("decode hud: %w", err)
	}
	return hud, nil
}

// encodeText marshals a typed envelope
func encodeText[T any](typ string, payload T) ([]byte, error) {
	data, err := json.Marshal(Envelope[T]{Type: typ, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", typ, err)
	}
	return data, nil
}

// DecodeText unmarshals a typed envelope
func DecodeText[T any](data []byte) (Envelope[T], error) {
	var env Envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}
