package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// FeedRoom receives every scored show.
const FeedRoom = "shows:feed"

// Hub manages websocket clients and room-based broadcasts.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan Broadcast
	count      chan countReq

	done     chan struct{}
	stopOnce sync.Once

	rooms map[string]map[*Client]bool
}

type countReq struct {
	Room  string
	Reply chan int
}

type Broadcast struct {
	Room    string
	Type    string
	Payload any
}

// Envelope is the JSON frame written to clients.
type Envelope struct {
	Type      string `json:"type"`
	Payload   any    `json:"payload"`
	Timestamp string `json:"timestamp"`
}

func NewEnvelope(typ string, payload any) Envelope {
	return Envelope{Type: typ, Payload: payload, Timestamp: time.Now().UTC().Format(time.RFC3339Nano)}
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Broadcast, 256),
		count:      make(chan countReq),
		done:       make(chan struct{}),
		rooms:      map[string]map[*Client]bool{},
	}
}

// Run processes hub events until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for _, clients := range h.rooms {
				for c := range clients {
					c.closeSend()
				}
			}
			h.rooms = map[string]map[*Client]bool{}
			return
		case c := <-h.register:
			h.moveClientToRoom(c, c.Room)
		case c := <-h.unregister:
			h.removeClient(c)
		case b := <-h.broadcast:
			h.broadcastToRoom(b.Room, b.Type, b.Payload)
		case cr := <-h.count:
			cr.Reply <- len(h.rooms[cr.Room])
		}
	}
}

// Stop ends Run. Calls made after Stop are dropped instead of blocking.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

func (h *Hub) Broadcast(room, typ string, payload any) {
	select {
	case h.broadcast <- Broadcast{Room: room, Type: typ, Payload: payload}:
	case <-h.done:
	}
}

// ClientCount reports how many clients are in room, or 0 once stopped.
func (h *Hub) ClientCount(room string) int {
	reply := make(chan int, 1)
	select {
	case h.count <- countReq{Room: room, Reply: reply}:
		return <-reply
	case <-h.done:
		return 0
	}
}

func (h *Hub) removeClient(c *Client) {
	if c == nil {
		return
	}
	h.leaveRoom(c)
	c.closeSend()
}

func (h *Hub) leaveRoom(c *Client) {
	if c.Room != "" && h.rooms[c.Room] != nil {
		delete(h.rooms[c.Room], c)
		if len(h.rooms[c.Room]) == 0 {
			delete(h.rooms, c.Room)
		}
	}
}

func (h *Hub) moveClientToRoom(c *Client, room string) {
	if c == nil {
		return
	}
	if room == "" {
		room = FeedRoom
	}
	h.leaveRoom(c)
	c.Room = room
	if h.rooms[room] == nil {
		h.rooms[room] = map[*Client]bool{}
	}
	h.rooms[room][c] = true
}

func (h *Hub) broadcastToRoom(room, typ string, payload any) {
	clients := h.rooms[room]
	if len(clients) == 0 {
		return
	}

	data, err := json.Marshal(NewEnvelope(typ, payload))
	if err != nil {
		log.Printf("ws broadcast marshal error: room=%s type=%s err=%v", room, typ, err)
		return
	}

	for c := range clients {
		select {
		case c.Send <- data:
		default:
			// Backpressure / dead client.
			h.removeClient(c)
		}
	}
}
