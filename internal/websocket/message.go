package websocket

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Message defines the structure for websocket messages.
type Message struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// NewMessage encodes an action and its payload.
func NewMessage(action string, payload interface{}) []byte {
	b, err := json.Marshal(Message{Action: action, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("action", action).Msg("Failed to encode websocket message")
		b, _ = json.Marshal(Message{Action: "error", Payload: map[string]string{"message": "encoding failed"}})
	}
	return b
}

// NewErrorMessage encodes an error notice for a client.
func NewErrorMessage(message string) []byte {
	return NewMessage("error", map[string]string{"message": message})
}
