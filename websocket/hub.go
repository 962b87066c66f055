package websocket

import (
	"sync"
)

// RecruiterRoom is the broadcast audience dashboard sessions join to receive
// interview request updates.
const RecruiterRoom = "recruiters"

// Event types published to joined sessions.
const (
	EventNewRequest     = "newInterviewRequest"
	EventStatusUpdate   = "requestStatusUpdate"
	EventRequestDeleted = "requestDeleted"
)

// Hub maintains the set of active clients and fans events out to rooms
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Rooms mapping (room name -> clients)
	rooms map[string]map[*Client]bool

	// Mutex for rooms map
	roomsMux sync.RWMutex

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a new hub instance
func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
	}
}

// Run starts the hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)

				// Remove client from all rooms, then close its send
				// channel inside the critical section so an in-flight
				// broadcast cannot send on the closed channel
				h.roomsMux.Lock()
				for room, clients := range h.rooms {
					if _, ok := clients[client]; ok {
						delete(h.rooms[room], client)
						// Clean up empty rooms
						if len(h.rooms[room]) == 0 {
							delete(h.rooms, room)
						}
					}
				}
				close(client.send)
				h.roomsMux.Unlock()
			}
		}
	}
}

// joinRoom adds a client to a room
func (h *Hub) joinRoom(client *Client, room string) {
	h.roomsMux.Lock()
	defer h.roomsMux.Unlock()

	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Client]bool)
	}
	h.rooms[room][client] = true
}

// leaveRoom removes a client from a room
func (h *Hub) leaveRoom(client *Client, room string) {
	h.roomsMux.Lock()
	defer h.roomsMux.Unlock()

	if _, ok := h.rooms[room]; ok {
		delete(h.rooms[room], client)
		// Clean up empty rooms
		if len(h.rooms[room]) == 0 {
			delete(h.rooms, room)
		}
	}
}

// broadcastToRoom sends a message to all clients in a room. Delivery is
// best-effort: a client whose send buffer is full misses the event rather
// than blocking the fan-out.
func (h *Hub) broadcastToRoom(room string, message []byte) {
	h.roomsMux.Lock()
	defer h.roomsMux.Unlock()

	if clients, ok := h.rooms[room]; ok {
		for client := range clients {
			select {
			case client.send <- message:
			default:
				delete(clients, client)
			}
		}
		if len(clients) == 0 {
			delete(h.rooms, room)
		}
	}
}

// Global hub instance
var hub *Hub

// InitHub initializes the global hub
func InitHub() {
	hub = NewHub()
	go hub.Run()
}
