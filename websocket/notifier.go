package websocket

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Event is the wire envelope for broadcast events.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

const channelPrefix = "broadcast:"

// rdb, when set, carries broadcasts across instances via redis pub/sub.
var rdb *redis.Client

// InitBackplane wires an optional redis pub/sub backplane into the hub, so
// events published by any instance reach locally connected sessions. A nil
// client disables the backplane and broadcasts go to the local hub directly.
func InitBackplane(ctx context.Context, client *redis.Client) {
	rdb = client
	if rdb == nil {
		return
	}

	sub := rdb.PSubscribe(ctx, channelPrefix+"*")
	ch := sub.Channel()

	go func() {
		for msg := range ch {
			room := strings.TrimPrefix(msg.Channel, channelPrefix)
			hub.broadcastToRoom(room, []byte(msg.Payload))
		}
	}()
}

// BroadcastToRoom publishes an event to every session joined to the room.
// Delivery is best-effort: no acknowledgment, no ordering guarantee and no
// replay on reconnect.
func BroadcastToRoom(room, eventType string, data interface{}) {
	msgBytes, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		log.Printf("error marshaling event: %v", err)
		return
	}

	if rdb != nil {
		err := rdb.Publish(context.Background(), channelPrefix+room, msgBytes).Err()
		if err == nil {
			return
		}
		log.Printf("redis publish failed, broadcasting locally: %v", err)
	}

	hub.broadcastToRoom(room, msgBytes)
}
