package tv

import (
	"encoding/json"
	"fmt"
)

// emitMessage is the envelope for requests sent over the channel.
type emitMessage struct {
	Method string     `json:"method"`
	Params emitParams `json:"params"`
}

type emitParams struct {
	Event string `json:"event"`
	To    string `json:"to"`
	// Data is the art request, JSON-encoded into a string by the vendor
	// protocol.
	Data string `json:"data"`
}

// channelEvent is the envelope for events received from the TV.
type channelEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// artEvent is the payload of a d2d_service_message event.
type artEvent struct {
	Event     string          `json:"event"`
	ContentID string          `json:"content_id"`
	ErrorCode json.Number     `json:"error_code"`
	ConnInfo  json.RawMessage `json:"conn_info"`
}

// connInfo describes the side socket the TV opens for binary transfers.
type connInfo struct {
	IP   string      `json:"ip"`
	Port json.Number `json:"port"`
	Key  string      `json:"key"`
}

// decodeArtEvent unwraps a d2d_service_message payload. The TV double-encodes
// it: data arrives as a JSON string containing JSON.
func decodeArtEvent(raw json.RawMessage) (*artEvent, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		raw = json.RawMessage(s)
	}
	var ev artEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}

// connInfo unwraps the transfer endpoint, which the TV may also
// double-encode.
func (e *artEvent) connInfo() (*connInfo, error) {
	if len(e.ConnInfo) == 0 {
		return nil, fmt.Errorf("event carried no conn_info")
	}
	raw := e.ConnInfo
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		raw = json.RawMessage(s)
	}
	var info connInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, err
	}
	if info.IP == "" || info.Port.String() == "" {
		return nil, fmt.Errorf("incomplete conn_info")
	}
	return &info, nil
}
