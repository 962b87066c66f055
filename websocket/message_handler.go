package websocket

import (
	"encoding/json"
	"log"
)

// HandleIncomingMessage processes an incoming WebSocket message
func HandleIncomingMessage(client *Client, messageBytes []byte) {
	var msg Message
	if err := json.Unmarshal(messageBytes, &msg); err != nil {
		log.Printf("error unmarshaling message: %v", err)
		return
	}

	switch msg.Type {
	case "join_room":
		if room, ok := msg.Payload.(string); ok && room != "" {
			client.joinRoom(room)
		}
	case "join-recruiter":
		// Legacy dashboard clients join the recruiters room without a payload
		client.joinRoom(RecruiterRoom)
	case "leave_room":
		if room, ok := msg.Payload.(string); ok && room != "" {
			client.leaveRoom(room)
		}
	default:
		log.Printf("unknown message type: %s", msg.Type)
	}
}
